package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/rs/zerolog"

	"github.com/nurpe/rumbos-envios/internal/validation"
)

const (
	routesReasoningFallback = "La IA no pudo proporcionar un razonamiento detallado."
	summaryFallback         = "La IA no pudo generar un resumen."
	optionsDisclaimer       = "Estas son sugerencias generadas por IA. Por favor, selecciona el tipo de servicio oficial en el formulario para confirmar todos los detalles y costos."
	optionsUnavailable      = "No se pudieron generar sugerencias en este momento. Por favor, selecciona manualmente un tipo de servicio."
)

// Assistant wraps the prompt-completion service with one typed call per
// suggestion flow. Each call is a single round trip without retries.
type Assistant struct {
	completer Completer
	log       zerolog.Logger
}

func NewAssistant(completer Completer, log zerolog.Logger) *Assistant {
	return &Assistant{completer: completer, log: log.With().Str("component", "ai").Logger()}
}

type RoutesInput struct {
	CurrentLocation   string   `json:"currentLocation" validate:"required"`
	Destinations      []string `json:"destinations" validate:"required,min=1,dive,required"`
	TrafficConditions string   `json:"trafficConditions"`
	WeatherConditions string   `json:"weatherConditions"`
	DeliveryDeadlines []string `json:"deliveryDeadlines"`
}

type RoutesOutput struct {
	SuggestedRoutes []string `json:"suggestedRoutes"`
	Reasoning       string   `json:"reasoning"`
}

func (a *Assistant) SuggestDeliveryRoutes(ctx context.Context, input RoutesInput) (*RoutesOutput, error) {
	var out *RoutesOutput
	if err := a.complete(ctx, "routes", routesPrompt, input, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = &RoutesOutput{}
	}
	if out.SuggestedRoutes == nil {
		out.SuggestedRoutes = []string{}
	}
	if strings.TrimSpace(out.Reasoning) == "" {
		out.Reasoning = routesReasoningFallback
	}
	return out, nil
}

type DeliverySpeed string

const (
	SpeedAny      DeliverySpeed = "any"
	SpeedFast     DeliverySpeed = "fast"
	SpeedStandard DeliverySpeed = "standard"
	SpeedEconomic DeliverySpeed = "economic"
)

type OptionsInput struct {
	PackageDescription string        `json:"packageDescription" validate:"required"`
	OriginAddress      string        `json:"originAddress"`
	DestinationAddress string        `json:"destinationAddress"`
	DesiredSpeed       DeliverySpeed `json:"desiredSpeed" validate:"omitempty,oneof=any fast standard economic"`
}

type OptionSuggestion struct {
	OptionName    string `json:"optionName"`
	Description   string `json:"description"`
	EstimatedTime string `json:"estimatedTime,omitempty"`
	IconHint      string `json:"iconHint,omitempty"`
}

type OptionsOutput struct {
	Suggestions []OptionSuggestion `json:"suggestions"`
	Disclaimer  string             `json:"disclaimer,omitempty"`
}

var iconHints = map[string]struct{}{"Truck": {}, "Bike": {}, "Zap": {}, "Package": {}}

func (a *Assistant) SuggestDeliveryOptions(ctx context.Context, input OptionsInput) (*OptionsOutput, error) {
	if input.DesiredSpeed == "" {
		input.DesiredSpeed = SpeedAny
	}
	var out *OptionsOutput
	if err := a.complete(ctx, "options", optionsPrompt, input, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return &OptionsOutput{Suggestions: []OptionSuggestion{}, Disclaimer: optionsUnavailable}, nil
	}

	suggestions := make([]OptionSuggestion, 0, len(out.Suggestions))
	for _, s := range out.Suggestions {
		if s.OptionName == "" {
			continue
		}
		if _, ok := iconHints[s.IconHint]; !ok {
			s.IconHint = ""
		}
		suggestions = append(suggestions, s)
	}
	out.Suggestions = suggestions
	if out.Disclaimer == "" {
		out.Disclaimer = optionsDisclaimer
	}
	return out, nil
}

type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

type ScheduledDelivery struct {
	DeliveryID      string  `json:"deliveryId" validate:"required"`
	Address         string  `json:"address" validate:"required"`
	Urgency         Urgency `json:"urgency" validate:"required,oneof=high medium low"`
	PackageType     string  `json:"packageType"`
	TimeWindowStart string  `json:"timeWindowStart"`
	TimeWindowEnd   string  `json:"timeWindowEnd"`
}

type AvailableDriver struct {
	DriverID          string `json:"driverId" validate:"required"`
	CurrentLocation   string `json:"currentLocation"`
	AvailabilityStart string `json:"availabilityStart"`
	AvailabilityEnd   string `json:"availabilityEnd"`
}

type PrioritizeInput struct {
	Deliveries        []ScheduledDelivery `json:"deliveries" validate:"required,min=1,dive"`
	Drivers           []AvailableDriver   `json:"drivers" validate:"dive"`
	CurrentConditions string              `json:"currentConditions"`
}

type Priority struct {
	DeliveryID       string  `json:"deliveryId"`
	PriorityScore    float64 `json:"priorityScore"`
	Reason           string  `json:"reason"`
	AssignedDriverID string  `json:"assignedDriverId,omitempty"`
}

// PrioritizeDeliverySchedule scores deliveries. Entries naming unknown
// deliveries are dropped and unknown driver assignments cleared.
func (a *Assistant) PrioritizeDeliverySchedule(ctx context.Context, input PrioritizeInput) ([]Priority, error) {
	var out []Priority
	if err := a.complete(ctx, "prioritize", prioritizePrompt, input, &out); err != nil {
		return nil, err
	}

	deliveries := make(map[string]struct{}, len(input.Deliveries))
	for _, d := range input.Deliveries {
		deliveries[d.DeliveryID] = struct{}{}
	}
	drivers := make(map[string]struct{}, len(input.Drivers))
	for _, d := range input.Drivers {
		drivers[d.DriverID] = struct{}{}
	}

	result := make([]Priority, 0, len(out))
	for _, p := range out {
		if _, ok := deliveries[p.DeliveryID]; !ok {
			continue
		}
		if _, ok := drivers[p.AssignedDriverID]; !ok {
			p.AssignedDriverID = ""
		}
		result = append(result, p)
	}
	return result, nil
}

type SummaryInput struct {
	DeliveryData string `json:"deliveryData" validate:"required"`
}

type SummaryOutput struct {
	Summary string `json:"summary"`
}

func (a *Assistant) SummarizeDeliveryData(ctx context.Context, input SummaryInput) (*SummaryOutput, error) {
	var out *SummaryOutput
	if err := a.complete(ctx, "summary", summaryPrompt, input, &out); err != nil {
		return nil, err
	}
	if out == nil || strings.TrimSpace(out.Summary) == "" {
		return &SummaryOutput{Summary: summaryFallback}, nil
	}
	return out, nil
}

// complete validates the input, renders the prompt and decodes the answer
// into target. Completion and decoding failures become ErrAIService.
func (a *Assistant) complete(ctx context.Context, flow string, tmpl *template.Template, input, target any) error {
	if err := validation.Struct(input); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	prompt, err := render(tmpl, input)
	if err != nil {
		return fmt.Errorf("render %s prompt: %w", flow, err)
	}

	answer, err := a.completer.Complete(ctx, prompt)
	if err != nil {
		a.log.Error().Err(err).Str("flow", flow).Msg("prompt completion failed")
		return ErrAIService
	}
	if err := json.Unmarshal([]byte(answer), target); err != nil {
		a.log.Error().Err(err).Str("flow", flow).Str("answer", answer).Msg("unreadable completion")
		return ErrAIService
	}
	return nil
}
