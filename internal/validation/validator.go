package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/nurpe/rumbos-envios/internal/model"
)

var (
	phonePattern = regexp.MustCompile(`^[0-9+\-\s()]*$`)
	hhmmPattern  = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

	once     sync.Once
	instance *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})
		mustRegister(v, "hhmm", func(fl validator.FieldLevel) bool {
			return hhmmPattern.MatchString(fl.Field().String())
		})
		mustRegister(v, "shipment_status", func(fl validator.FieldLevel) bool {
			return model.ShipmentStatus(fl.Field().String()).AllowedForShipment()
		})
		mustRegister(v, "run_status", func(fl validator.FieldLevel) bool {
			return model.ShipmentStatus(fl.Field().String()).AllowedForRun()
		})
		mustRegister(v, "stop_status", func(fl validator.FieldLevel) bool {
			return model.ShipmentStatus(fl.Field().String()).AllowedForStop()
		})
		instance = v
	})
	return instance
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validator: %v", tag, err))
	}
}

func jsonName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// Struct validates a whole value.
func Struct(value any) error {
	return translate(engine().Struct(value))
}

// Partial validates only the listed Go fields of value.
func partial(value any, goFields []string) error {
	if len(goFields) == 0 {
		return nil
	}
	return translate(engine().StructPartial(value, goFields...))
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := Errors{}
	for _, fe := range fieldErrs {
		out.Add(fieldKey(fe.Namespace()), message(fe))
	}
	return out
}

// fieldKey drops the root struct name and embedded struct segments, which
// are the only parts of a namespace that keep their Go names.
func fieldKey(namespace string) string {
	segments := strings.Split(namespace, ".")
	kept := make([]string, 0, len(segments))
	for i, segment := range segments {
		if i == 0 {
			continue
		}
		if segment != "" && segment[0] >= 'A' && segment[0] <= 'Z' {
			continue
		}
		kept = append(kept, segment)
	}
	return strings.Join(kept, ".")
}

func message(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return "Este campo es requerido."
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Debe tener al menos %s caracteres.", param)
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Debe contener al menos %s elementos.", param)
		}
		return fmt.Sprintf("Debe ser mayor o igual a %s.", param)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Debe tener como máximo %s caracteres.", param)
		}
		return fmt.Sprintf("Debe ser menor o igual a %s.", param)
	case "gt":
		return "Debe ser positivo."
	case "gte":
		return "Debe ser no negativo."
	case "email":
		return "Email inválido."
	case "url":
		return "URL inválida."
	case "latitude":
		return "Latitud inválida."
	case "longitude":
		return "Longitud inválida."
	case "phone":
		return "Teléfono contiene caracteres inválidos."
	case "hhmm":
		return "Formato HH:MM inválido"
	case "oneof":
		return fmt.Sprintf("Valor inválido, opciones: %s.", strings.ReplaceAll(param, " ", ", "))
	case "shipment_status", "run_status", "stop_status":
		return "Estatus inválido."
	default:
		return "Valor inválido."
	}
}
