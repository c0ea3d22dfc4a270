// Package services contains stateless domain services for the fridge bounded
// context. They operate purely on domain types and carry no infrastructure.
package services

import (
	"math"
	"strings"

	"github.com/google/uuid"

	pkgvalidator "github.com/ghuser/smartfridge/pkg/validator"
	"github.com/ghuser/smartfridge/services/fridge/domain"
	"github.com/ghuser/smartfridge/services/fridge/domain/models"
)

// NewItemInput is the raw, unchecked input of an add. Pointer fields are
// nullable; nil fails the required rules.
type NewItemInput struct {
	TypeID     int64    `json:"type_id"     validate:"gt=0"`
	ItemID     string   `json:"item_id"     validate:"notblank"`
	TypeName   *string  `json:"type_name"   validate:"required,notblank"`
	FillFactor *float64 `json:"fill_factor" validate:"required,gte=0,lte=1"`
}

// ValidateNewItem checks every field of in and builds the item and type to
// store.
//
// A non-blank item id that does not parse as a UUID fails alone with
// *domain.InvalidIDError. Every other violation is collected into one
// *domain.ValidationError.
func ValidateNewItem(in NewItemInput) (*models.FridgeItem, *models.ItemType, error) {
	var id uuid.UUID
	if strings.TrimSpace(in.ItemID) != "" {
		parsed, err := uuid.Parse(in.ItemID)
		if err != nil {
			return nil, nil, domain.NewInvalidIDError(in.ItemID, err)
		}
		id = parsed
	}

	if err := pkgvalidator.Validate(&in); err != nil {
		violations := pkgvalidator.Violations(err)
		if violations == nil {
			return nil, nil, err
		}
		return nil, nil, &domain.ValidationError{Violations: violations}
	}

	return models.NewFridgeItem(id, in.TypeID, *in.FillFactor),
		models.NewItemType(in.TypeID, *in.TypeName),
		nil
}

// ParseItemID parses a raw item id, failing with *domain.InvalidIDError.
func ParseItemID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewInvalidIDError(raw, err)
	}
	return id, nil
}

// ValidThreshold reports whether f is usable as a below-threshold filter,
// i.e. in (0, 1].
func ValidThreshold(f *float64) bool {
	return f != nil && !math.IsNaN(*f) && *f > 0 && *f <= 1
}
