package validation

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Rule is a cross-field refinement. present reports whether a JSON field
// takes part in the check: always true on create, only the submitted fields
// on update.
type Rule[T any] func(value *T, present func(field string) bool, errs Errors)

// Schema validates one entity type on create and on partial update.
type Schema[T any] struct {
	initial  func() T
	defaults func(*T)
	rules    []Rule[T]
	fields   map[string]fieldInfo
}

type fieldInfo struct {
	index  []int
	goName string
	column string
}

// readOnly lists JSON fields that an update can never write.
var readOnly = map[string]struct{}{
	"id":              {},
	"created_at":      {},
	"updated_at":      {},
	"tracking_number": {},
}

func NewSchema[T any](initial func() T, defaults func(*T), rules ...Rule[T]) *Schema[T] {
	var zero T
	return &Schema[T]{
		initial:  initial,
		defaults: defaults,
		rules:    rules,
		fields:   indexFields(reflect.TypeOf(zero)),
	}
}

func indexFields(typ reflect.Type) map[string]fieldInfo {
	out := make(map[string]fieldInfo)
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name := jsonName(field)
		column := gormColumn(field.Tag.Get("gorm"))
		if name == "" || column == "" {
			continue
		}
		out[name] = fieldInfo{index: field.Index, goName: field.Name, column: column}
	}
	return out
}

func gormColumn(tag string) string {
	for _, part := range strings.Split(tag, ";") {
		if value, ok := strings.CutPrefix(part, "column:"); ok {
			return value
		}
	}
	return ""
}

// New returns a value pre-filled with decode-time defaults, ready to be
// used as a JSON decode target.
func (s *Schema[T]) New() T {
	if s.initial == nil {
		var zero T
		return zero
	}
	return s.initial()
}

// Create applies defaults then checks every field and rule.
func (s *Schema[T]) Create(value T) (T, error) {
	if s.defaults != nil {
		s.defaults(&value)
	}

	errs := Errors{}
	if err := Struct(value); err != nil {
		fieldErrs, ok := err.(Errors)
		if !ok {
			return value, err
		}
		errs = fieldErrs
	}
	always := func(string) bool { return true }
	for _, rule := range s.rules {
		rule(&value, always, errs)
	}
	return value, errs.orNil()
}

// Patch is a partial update: the decoded value plus the JSON fields that
// were actually sent.
type Patch[T any] struct {
	Value  T
	Fields []string
}

// DecodePatch reads a JSON object into a Patch. Unknown and read-only keys
// are dropped.
func (s *Schema[T]) DecodePatch(data []byte) (Patch[T], error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Patch[T]{}, fmt.Errorf("invalid json body: %w", err)
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return Patch[T]{}, fmt.Errorf("invalid json body: %w", err)
	}

	fields := make([]string, 0, len(raw))
	for key := range raw {
		if _, skip := readOnly[key]; skip {
			continue
		}
		if _, known := s.fields[key]; known {
			fields = append(fields, key)
		}
	}
	return Patch[T]{Value: value, Fields: fields}, nil
}

// Update validates only the submitted fields and returns them as a
// column -> value map ready for the persistence layer.
func (s *Schema[T]) Update(patch Patch[T]) (map[string]any, error) {
	present := make(map[string]struct{}, len(patch.Fields))
	goFields := make([]string, 0, len(patch.Fields))
	for _, name := range patch.Fields {
		info, ok := s.fields[name]
		if !ok {
			continue
		}
		present[name] = struct{}{}
		goFields = append(goFields, info.goName)
	}

	errs := Errors{}
	if err := partial(patch.Value, goFields); err != nil {
		fieldErrs, ok := err.(Errors)
		if !ok {
			return nil, err
		}
		errs = fieldErrs
	}
	isPresent := func(field string) bool {
		_, ok := present[field]
		return ok
	}
	for _, rule := range s.rules {
		rule(&patch.Value, isPresent, errs)
	}
	if !errs.Empty() {
		return nil, errs
	}

	value := reflect.ValueOf(patch.Value)
	changes := make(map[string]any, len(present))
	for name := range present {
		info := s.fields[name]
		changes[info.column] = value.FieldByIndex(info.index).Interface()
	}
	return changes, nil
}
