package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nurpe/rumbos-envios/internal/model"
	"github.com/nurpe/rumbos-envios/internal/validation"
)

type RateService struct {
	entity[model.Rate, model.RateFilter]
	rates RateStore
}

func NewRateService(store RateStore, pager Pager) *RateService {
	return &RateService{
		entity: entity[model.Rate, model.RateFilter]{
			store: store, schema: validation.Rate, pager: pager, label: "tarifa",
		},
		rates: store,
	}
}

type QuoteInput struct {
	Calculator model.CalculatorType `json:"tipo_calculadora_servicio" binding:"required"`
	DistanceKm float64              `json:"distancia_km"`
	WeightKg   float64              `json:"peso_kg"`
}

type Quote struct {
	RateID         string          `json:"tarifa_id"`
	Calculator     string          `json:"tipo_calculadora_servicio"`
	DistanceKm     float64         `json:"distancia_km"`
	WeightKg       float64         `json:"peso_kg"`
	BaseFare       decimal.Decimal `json:"tarifa_base"`
	DistanceCharge decimal.Decimal `json:"cargo_distancia"`
	WeightCharge   decimal.Decimal `json:"cargo_peso"`
	Total          decimal.Decimal `json:"total"`
}

// Quote prices a delivery with the active band of a calculator that
// contains the distance, or the highest band starting below it.
func (s *RateService) Quote(ctx context.Context, input QuoteInput) (*Quote, error) {
	if input.DistanceKm < 0 || input.WeightKg < 0 {
		return nil, fmt.Errorf("%w: distance and weight must be non-negative", ErrInvalidInput)
	}
	if !validCalculator(input.Calculator) {
		return nil, fmt.Errorf("%w: unknown calculator %q", ErrInvalidInput, input.Calculator)
	}

	rates, err := s.rates.ListActiveByCalculator(ctx, input.Calculator)
	if err != nil {
		return nil, gateway(err, "list tarifas")
	}
	rate, ok := pickBand(rates, input.DistanceKm)
	if !ok {
		return nil, fmt.Errorf("%w: no rate for %s at %.2f km", ErrNotFound, input.Calculator, input.DistanceKm)
	}
	return price(rate, input), nil
}

func validCalculator(c model.CalculatorType) bool {
	switch c {
	case model.CalculatorExpressMoto, model.CalculatorExpressAuto, model.CalculatorScheduled24,
		model.CalculatorLowCost72, model.CalculatorCustom:
		return true
	}
	return false
}

func pickBand(rates []model.Rate, distance float64) (model.Rate, bool) {
	var fallback *model.Rate
	for i := range rates {
		rate := rates[i]
		if rate.MinDistanceKm <= distance && distance < rate.MaxDistanceKm {
			return rate, true
		}
		if rate.MinDistanceKm <= distance && (fallback == nil || rate.MinDistanceKm > fallback.MinDistanceKm) {
			fallback = &rates[i]
		}
	}
	if fallback == nil {
		return model.Rate{}, false
	}
	return *fallback, true
}

func price(rate model.Rate, input QuoteInput) *Quote {
	distance := decimal.NewFromFloat(input.DistanceKm)
	weight := decimal.NewFromFloat(input.WeightKg)
	base := decimal.NewFromFloat(rate.BaseFare)

	distanceCharge := decimal.Zero
	if rate.ExtraKmFare != nil {
		extraKm := decimal.Max(decimal.Zero, distance.Sub(decimal.NewFromFloat(rate.MinDistanceKm)))
		distanceCharge = extraKm.Mul(decimal.NewFromFloat(*rate.ExtraKmFare))
	}

	weightCharge := decimal.Zero
	if rate.ExtraKgFare != nil {
		included := decimal.Zero
		if rate.IncludedWeightKg != nil {
			included = decimal.NewFromFloat(*rate.IncludedWeightKg)
		}
		extraKg := decimal.Max(decimal.Zero, weight.Sub(included))
		weightCharge = extraKg.Mul(decimal.NewFromFloat(*rate.ExtraKgFare))
	}

	return &Quote{
		RateID:         rate.ID.String(),
		Calculator:     string(rate.CalculatorType),
		DistanceKm:     input.DistanceKm,
		WeightKg:       input.WeightKg,
		BaseFare:       base.Round(2),
		DistanceCharge: distanceCharge.Round(2),
		WeightCharge:   weightCharge.Round(2),
		Total:          base.Add(distanceCharge).Add(weightCharge).Round(2),
	}
}
