package ai

import (
	"strings"
	"text/template"
)

var funcs = template.FuncMap{"join": strings.Join}

var routesPrompt = template.Must(template.New("routes").Funcs(funcs).Parse(
	`You are an AI logistics expert. Your goal is to suggest the most efficient delivery routes based on real-time conditions and deadlines.

You will be provided with the current location, a list of destinations, traffic conditions, weather conditions, and delivery deadlines.
Consider all factors to minimize delivery times and improve efficiency.

Current Location: {{.CurrentLocation}}
Destinations: {{join .Destinations ", "}}
Traffic Conditions: {{.TrafficConditions}}
Weather Conditions: {{.WeatherConditions}}
Delivery Deadlines: {{join .DeliveryDeadlines ", "}}

Answer with a JSON object:
{"suggestedRoutes": [string], "reasoning": string}
`))

var optionsPrompt = template.Must(template.New("options").Parse(
	`Eres un asistente experto en logística para "Rumbos Envíos" en Mar del Plata, Argentina.
Tu tarea es sugerir opciones de servicio de entrega basadas en la descripción del paquete y las preferencias del usuario.
Considera factores como urgencia, tamaño, peso y si es en Mar del Plata. No calcules precios exactos, enfócate en el tipo de servicio.

Descripción del Paquete: {{.PackageDescription}}
{{if .OriginAddress}}Origen: {{.OriginAddress}}
{{end}}{{if .DestinationAddress}}Destino: {{.DestinationAddress}}
{{end}}Preferencia de Velocidad: {{.DesiredSpeed}}

Proporciona 2-3 sugerencias de tipos de servicio. Para cada sugerencia incluye:
- optionName: un nombre descriptivo y corto (ej: "Moto Express", "Flete Programado", "Bici Rápida").
- description: una breve explicación de por qué es una buena opción.
- estimatedTime: (opcional) una estimación general del tiempo de entrega (ej: "Menos de 2hs", "Durante el día", "24hs").
- iconHint: (opcional) 'Truck' para vehículos grandes, 'Bike' para bicicletas/motos pequeñas, 'Zap' para velocidad, 'Package' para general.

Ofrece un breve descargo de responsabilidad indicando que son sugerencias y que los detalles finales se confirman al seleccionar el servicio.

Responde con un objeto JSON:
{"suggestions": [{"optionName": string, "description": string, "estimatedTime": string, "iconHint": string}], "disclaimer": string}
`))

var prioritizePrompt = template.Must(template.New("prioritize").Parse(
	`You are an expert delivery dispatcher optimizing delivery schedules.

Given the following deliveries, drivers, and current conditions, prioritize the delivery schedule based on urgency, location, and driver availability.

Deliveries:
{{range .Deliveries}}  - Delivery ID: {{.DeliveryID}}, Address: {{.Address}}, Urgency: {{.Urgency}}, Package Type: {{.PackageType}}, Time Window: {{.TimeWindowStart}} - {{.TimeWindowEnd}}
{{end}}
Drivers:
{{range .Drivers}}  - Driver ID: {{.DriverID}}, Location: {{.CurrentLocation}}, Availability: {{.AvailabilityStart}} - {{.AvailabilityEnd}}
{{end}}
Current Conditions: {{.CurrentConditions}}

Assign a priority score (higher is more urgent) and a reason to every delivery, and assign a driver when possible.

Answer with a JSON array:
[{"deliveryId": string, "priorityScore": number, "reason": string, "assignedDriverId": string}]
`))

var summaryPrompt = template.Must(template.New("summary").Parse(
	`You are an AI assistant helping managers understand delivery performance.

Provide a concise summary of the following delivery data, highlighting key performance indicators and potential issues:

{{.DeliveryData}}

Answer with a JSON object:
{"summary": string}
`))

func render(tmpl *template.Template, input any) (string, error) {
	var b strings.Builder
	if err := tmpl.Execute(&b, input); err != nil {
		return "", err
	}
	return b.String(), nil
}
