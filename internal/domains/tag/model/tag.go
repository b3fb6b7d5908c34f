package model

import (
	"regexp"
	"strings"

	"foodgram-backend/internal/shared/apperror"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

var (
	colorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	slugRe  = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// ========== Requests ==========

// CreateTagRequest: an empty slug is generated from the name.
type CreateTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

func (r *CreateTagRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Color = strings.ToUpper(strings.TrimSpace(r.Color))
	r.Slug = strings.TrimSpace(r.Slug)
}

func (r CreateTagRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&r.Color, validation.Required, validation.Match(colorRe).Error("must be a hex color like #E26C2D")),
		validation.Field(&r.Slug, validation.Required, validation.Length(1, 50), validation.Match(slugRe)),
	)
}

type UpdateTagRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
	Slug  *string `json:"slug"`
}

func (r *UpdateTagRequest) Normalize() {
	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
	}
	if r.Color != nil {
		*r.Color = strings.ToUpper(strings.TrimSpace(*r.Color))
	}
	if r.Slug != nil {
		*r.Slug = strings.TrimSpace(*r.Slug)
	}
}

func (r UpdateTagRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.RuneLength(1, 200)),
		validation.Field(&r.Color, validation.NilOrNotEmpty, validation.Match(colorRe).Error("must be a hex color like #E26C2D")),
		validation.Field(&r.Slug, validation.NilOrNotEmpty, validation.Length(1, 50), validation.Match(slugRe)),
	)
}

func (r UpdateTagRequest) Apply(t *Tag) {
	if r.Name != nil {
		t.Name = *r.Name
	}
	if r.Color != nil {
		t.Color = *r.Color
	}
	if r.Slug != nil {
		t.Slug = *r.Slug
	}
}

// ========== Errors ==========

var (
	ErrTagNotFound = apperror.NotFound("TAG_NOT_FOUND", "tag not found")
	ErrTagExists   = apperror.AlreadyExists("TAG_EXISTS", "tag with this name, color or slug already exists")
)
