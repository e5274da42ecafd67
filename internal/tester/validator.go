package tester

import (
	"fmt"
	"slices"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/moamenhredeen/oastester/internal/models"
)

// CompareResponse reports where actual differs from expected. Objects are compared as a
// subset: keys present in actual but not in expected are ignored. Arrays must match in
// length and element-wise.
func CompareResponse(expected, actual any) []models.ValidationError {
	return compareValues("body", ldvalue.CopyArbitraryValue(expected), ldvalue.CopyArbitraryValue(actual))
}

func compareValues(field string, expected, actual ldvalue.Value) []models.ValidationError {
	if expected.Type() != actual.Type() {
		return []models.ValidationError{{
			Field:   field,
			Message: fmt.Sprintf("expected %s, got %s", expected.Type(), actual.Type()),
		}}
	}

	switch expected.Type() {
	case ldvalue.ObjectType:
		var errs []models.ValidationError
		actualKeys := actual.Keys()
		for _, key := range expected.Keys() {
			path := field + "." + key
			if !slices.Contains(actualKeys, key) {
				errs = append(errs, models.ValidationError{
					Field:   path,
					Message: "missing field",
				})
				continue
			}
			errs = append(errs, compareValues(path, expected.GetByKey(key), actual.GetByKey(key))...)
		}
		return errs

	case ldvalue.ArrayType:
		if expected.Count() != actual.Count() {
			return []models.ValidationError{{
				Field:   field,
				Message: fmt.Sprintf("expected %d elements, got %d", expected.Count(), actual.Count()),
			}}
		}
		var errs []models.ValidationError
		for i := 0; i < expected.Count(); i++ {
			path := fmt.Sprintf("%s[%d]", field, i)
			errs = append(errs, compareValues(path, expected.GetByIndex(i), actual.GetByIndex(i))...)
		}
		return errs

	default:
		if !expected.Equal(actual) {
			return []models.ValidationError{{
				Field:   field,
				Message: fmt.Sprintf("expected %s, got %s", expected.JSONString(), actual.JSONString()),
			}}
		}
		return nil
	}
}
