package model

import (
	"strings"
	"unicode"

	"foodgram-backend/internal/shared/apperror"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Ingredient is admin-managed reference data; (name, measurement_unit) is unique.
type Ingredient struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// ========== Requests ==========

type CreateIngredientRequest struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func (r *CreateIngredientRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.MeasurementUnit = strings.TrimSpace(r.MeasurementUnit)
}

func (r CreateIngredientRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, 200), validation.By(singleLine)),
		validation.Field(&r.MeasurementUnit, validation.Required, validation.RuneLength(1, 10), validation.By(singleLine)),
	)
}

// UpdateIngredientRequest is a PATCH: nil fields are left unchanged.
type UpdateIngredientRequest struct {
	Name            *string `json:"name"`
	MeasurementUnit *string `json:"measurement_unit"`
}

func (r *UpdateIngredientRequest) Normalize() {
	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
	}
	if r.MeasurementUnit != nil {
		*r.MeasurementUnit = strings.TrimSpace(*r.MeasurementUnit)
	}
}

func (r UpdateIngredientRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.RuneLength(1, 200), validation.By(singleLine)),
		validation.Field(&r.MeasurementUnit, validation.NilOrNotEmpty, validation.RuneLength(1, 10), validation.By(singleLine)),
	)
}

// Apply merges a normalized patch into i.
func (r UpdateIngredientRequest) Apply(i *Ingredient) {
	if r.Name != nil {
		i.Name = *r.Name
	}
	if r.MeasurementUnit != nil {
		i.MeasurementUnit = *r.MeasurementUnit
	}
}

// singleLine rejects control characters; names end up one per line in the shopping list.
func singleLine(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case *string:
		if v == nil {
			return nil
		}
		s = *v
	}
	if strings.IndexFunc(s, unicode.IsControl) >= 0 {
		return validation.NewError("validation_control_characters", "must not contain control characters")
	}
	return nil
}

// Filter for GET /ingredients?name=
type Filter struct {
	NamePrefix string
}

// ========== Errors ==========

var (
	ErrIngredientNotFound = apperror.NotFound("INGREDIENT_NOT_FOUND", "ingredient not found")
	ErrIngredientExists   = apperror.AlreadyExists("INGREDIENT_EXISTS", "ingredient with this name and unit already exists")
)
