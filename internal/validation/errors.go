package validation

import (
	"sort"
	"strings"
)

// Errors maps a JSON field name to the messages produced for it.
type Errors map[string][]string

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e Errors) Empty() bool {
	return len(e) == 0
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e[field], ", "))
	}
	return strings.Join(parts, "; ")
}

// orNil keeps callers from returning a typed nil inside an error interface.
func (e Errors) orNil() error {
	if e.Empty() {
		return nil
	}
	return e
}
