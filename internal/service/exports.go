package service

import (
	"strings"

	"github.com/nurpe/rumbos-envios/internal/model"
)

type ExportResult struct {
	FileName string
	Content  []byte
}

func runSheetFileName(run model.DeliveryRun) string {
	name := ""
	if run.Name != nil {
		name = sanitizeFileName(strings.ToLower(*run.Name))
	}
	if name == "" {
		name = run.ID.String()[:8]
	}
	return "hoja-ruta-" + name + "-" + run.Date.Format("20060102") + ".pdf"
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
