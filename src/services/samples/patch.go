package samples

import (
	"fmt"

	"samplecatalog/src/domain"
	"samplecatalog/src/domain/entities"
)

// Patches travel as field maps keyed by the stored field names. Validation
// runs over the whole map before anything is applied, so a patch either
// lands completely or not at all. A nil value means "leave the field
// alone", same as omitting it.

var samplePatchFields = map[string]struct{}{
	"name":            {},
	"description":     {},
	"available_date":  {},
	"expiration_date": {},
}

var embeddedPatchFields = map[string]struct{}{
	"embedded_type": {},
	"value":         {},
}

func validatePatch(patch map[string]any, allowed map[string]struct{}) error {
	for field := range patch {
		if _, ok := allowed[field]; !ok {
			return fmt.Errorf("%w: unknown field %q in patch", domain.ErrValidation, field)
		}
	}
	return nil
}

// applySamplePatch assumes the patch already passed validatePatch; a value
// of the wrong type still fails, before any field was modified.
func applySamplePatch(sample *entities.Sample, patch map[string]any) error {
	name, hasName, err := stringField(patch, "name")
	if err != nil {
		return err
	}
	description, hasDescription, err := stringField(patch, "description")
	if err != nil {
		return err
	}
	availableDate, hasAvailable, err := int64Field(patch, "available_date")
	if err != nil {
		return err
	}
	expirationDate, hasExpiration, err := int64Field(patch, "expiration_date")
	if err != nil {
		return err
	}

	if hasName {
		sample.Name = name
	}
	if hasDescription {
		sample.Description = &description
	}
	if hasAvailable {
		sample.AvailableDate = &availableDate
	}
	if hasExpiration {
		sample.ExpirationDate = &expirationDate
	}
	return nil
}

func applyEmbeddedPatch(value *entities.Embedded, patch map[string]any) error {
	rawType, hasType, err := stringField(patch, "embedded_type")
	if err != nil {
		return err
	}
	embeddedType := entities.EmbeddedType(rawType)
	if hasType {
		if err := embeddedType.Validate(); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
	}
	newValue, hasValue, err := float64Field(patch, "value")
	if err != nil {
		return err
	}

	if hasType {
		value.EmbeddedType = embeddedType
	}
	if hasValue {
		value.Value = &newValue
	}
	return nil
}

func stringField(patch map[string]any, field string) (string, bool, error) {
	raw, present := patch[field]
	if !present || raw == nil {
		return "", false, nil
	}
	switch v := raw.(type) {
	case string:
		return v, true, nil
	case entities.EmbeddedType:
		return string(v), true, nil
	}
	return "", false, fmt.Errorf("%w: field %q expects a string", domain.ErrValidation, field)
}

func int64Field(patch map[string]any, field string) (int64, bool, error) {
	raw, present := patch[field]
	if !present || raw == nil {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case int:
		return int64(v), true, nil
	case int32:
		return int64(v), true, nil
	case int64:
		return v, true, nil
	case float64:
		return int64(v), true, nil
	}
	return 0, false, fmt.Errorf("%w: field %q expects a unix timestamp", domain.ErrValidation, field)
}

func float64Field(patch map[string]any, field string) (float64, bool, error) {
	raw, present := patch[field]
	if !present || raw == nil {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case int:
		return float64(v), true, nil
	case float64:
		return v, true, nil
	}
	return 0, false, fmt.Errorf("%w: field %q expects a number", domain.ErrValidation, field)
}
