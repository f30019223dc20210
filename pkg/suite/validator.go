package suite

import (
	"fmt"
)

// ValidationError represents a validation issue found in a suite file.
type ValidationError struct {
	Field   string
	Message string
	Index   int // -1 if not applicable
}

func (e ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf(
			"benchmarks[%d].%s: %s", e.Index, e.Field, e.Message,
		)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateFile validates a suite file and returns all errors found.
// Beyond structural decoding, each definition is checked for
// identity fields, counter declarations, and parseable assertions
// that reference declared counters.
func ValidateFile(path string) []ValidationError {
	var errors []ValidationError

	file, err := ParseFile(path)
	if err != nil {
		return []ValidationError{{
			Field: "file", Message: err.Error(), Index: -1,
		}}
	}

	if file.Version == "" {
		errors = append(errors, ValidationError{
			Field: "version", Message: "version is required", Index: -1,
		})
	}

	ids := make(map[string]bool)
	for i, def := range file.Benchmarks {
		if def.ID == "" {
			errors = append(errors, ValidationError{
				Field: "id", Message: "benchmark ID is required", Index: i,
			})
			continue
		}
		if ids[string(def.ID)] {
			errors = append(errors, ValidationError{
				Field:   "id",
				Message: fmt.Sprintf("duplicate ID: %s", def.ID),
				Index:   i,
			})
		} else {
			ids[string(def.ID)] = true
		}

		if err := def.Validate(); err != nil {
			errors = append(errors, ValidationError{
				Field: "definition", Message: err.Error(), Index: i,
			})
		}
	}

	return errors
}
