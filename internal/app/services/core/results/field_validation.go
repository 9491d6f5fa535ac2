package results

import (
	"fmt"
	"labtrail-service/internal/app/models"
	"strconv"
)

// ValidateFieldValues checks submitted values against the test type's field
// schema. All violations are collected so the client sees the full list in
// one round trip. Warnings carry non-fatal findings such as values outside
// the normal range and never block submission.
func ValidateFieldValues(definitions []models.FieldDefinition, values map[string]interface{}) (violations, warnings []string) {
	byName := make(map[string]models.FieldDefinition, len(definitions))
	for _, definition := range definitions {
		byName[definition.Name] = definition
	}

	for name := range values {
		if _, ok := byName[name]; !ok {
			violations = append(violations, fmt.Sprintf("field %s is not part of the test type", name))
		}
	}

	for _, definition := range definitions {
		value, present := values[definition.Name]
		if !present || value == nil {
			if definition.Required {
				violations = append(violations, fmt.Sprintf("field %s is required", definition.Name))
			}
			continue
		}

		switch definition.Kind {
		case models.FieldKindNumeric:
			number, ok := toFloat(value)
			if !ok {
				violations = append(violations, fmt.Sprintf("field %s must be numeric", definition.Name))
				continue
			}
			if definition.Min != nil && number < *definition.Min {
				violations = append(violations, fmt.Sprintf("field %s must be at least %v", definition.Name, *definition.Min))
				continue
			}
			if definition.Max != nil && number > *definition.Max {
				violations = append(violations, fmt.Sprintf("field %s must be at most %v", definition.Name, *definition.Max))
				continue
			}
			if definition.NormalMin != nil && number < *definition.NormalMin {
				warnings = append(warnings, fmt.Sprintf("field %s is below the normal range", definition.Name))
			}
			if definition.NormalMax != nil && number > *definition.NormalMax {
				warnings = append(warnings, fmt.Sprintf("field %s is above the normal range", definition.Name))
			}
		case models.FieldKindChoice:
			text, ok := value.(string)
			if !ok {
				violations = append(violations, fmt.Sprintf("field %s must be one of the allowed values", definition.Name))
				continue
			}
			if !containsString(definition.AllowedValues, text) {
				violations = append(violations, fmt.Sprintf("field %s must be one of the allowed values", definition.Name))
			}
		case models.FieldKindText:
			if _, ok := value.(string); !ok {
				violations = append(violations, fmt.Sprintf("field %s must be text", definition.Name))
			}
		}
	}

	return violations, warnings
}

// toFloat accepts the shapes a decoded JSON body can carry for a number,
// including numeric strings from instrument exports.
func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		number, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return number, true
	default:
		return 0, false
	}
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
