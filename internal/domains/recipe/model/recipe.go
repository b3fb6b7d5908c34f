package model

import (
	"math"
	"strings"
	"time"

	tagmodel "foodgram-backend/internal/domains/tag/model"
	usermodel "foodgram-backend/internal/domains/user/model"
	"foodgram-backend/internal/shared/apperror"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Recipe is the stored row. PubDate is assigned by the database on insert.
type Recipe struct {
	ID          int64
	AuthorID    int64
	Name        string
	Text        string
	Image       string
	CookingTime int
	PubDate     time.Time
}

func (r Recipe) Short() ShortRecipe {
	return ShortRecipe{ID: r.ID, Name: r.Name, Image: r.Image, CookingTime: r.CookingTime}
}

// IngredientAmount is one ingredient line of a recipe as returned to clients.
type IngredientAmount struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeResponse is the full representation relative to the caller.
type RecipeResponse struct {
	ID               int64                  `json:"id"`
	Tags             []tagmodel.Tag         `json:"tags"`
	Author           usermodel.UserResponse `json:"author"`
	Ingredients      []IngredientAmount     `json:"ingredients"`
	IsFavorited      bool                   `json:"is_favorited"`
	IsInShoppingCart bool                   `json:"is_in_shopping_cart"`
	Name             string                 `json:"name"`
	Image            string                 `json:"image"`
	Text             string                 `json:"text"`
	CookingTime      int                    `json:"cooking_time"`
	PubDate          time.Time              `json:"pub_date"`
}

// ShortRecipe is returned by favorite/cart toggles and subscription listings.
type ShortRecipe struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// RecipeRow is a recipe joined with its author and the caller's flags,
// before tags and ingredients are attached.
type RecipeRow struct {
	Recipe
	Author           usermodel.UserWithSubscription
	IsFavorited      bool
	IsInShoppingCart bool
}

func (r RecipeRow) Response(tags []tagmodel.Tag, ingredients []IngredientAmount) RecipeResponse {
	if tags == nil {
		tags = []tagmodel.Tag{}
	}
	if ingredients == nil {
		ingredients = []IngredientAmount{}
	}
	return RecipeResponse{
		ID:               r.ID,
		Tags:             tags,
		Author:           r.Author.Response(),
		Ingredients:      ingredients,
		IsFavorited:      r.IsFavorited,
		IsInShoppingCart: r.IsInShoppingCart,
		Name:             r.Name,
		Image:            r.Image,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
		PubDate:          r.PubDate,
	}
}

// ========================================
// REQUESTS
// ========================================

type IngredientInput struct {
	ID     int64 `json:"id"`
	Amount int   `json:"amount"`
}

func (i IngredientInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.ID, validation.Required, validation.Min(int64(1))),
		validation.Field(&i.Amount, validation.Required, validation.Min(1), validation.Max(math.MaxInt32)),
	)
}

type CreateRecipeRequest struct {
	Ingredients []IngredientInput `json:"ingredients"`
	Tags        []int64           `json:"tags"`
	Image       string            `json:"image"`
	Name        string            `json:"name"`
	Text        string            `json:"text"`
	CookingTime int               `json:"cooking_time"`
}

func (r *CreateRecipeRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Text = strings.TrimSpace(r.Text)
	r.Image = strings.TrimSpace(r.Image)
}

func (r CreateRecipeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Ingredients, validation.Required.Error("at least one ingredient is required"), validation.By(uniqueIngredients)),
		validation.Field(&r.Tags, validation.Required.Error("at least one tag is required"), validation.By(uniqueIDs)),
		validation.Field(&r.Image, validation.Required),
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&r.Text, validation.Required),
		validation.Field(&r.CookingTime, validation.Required, validation.Min(1), validation.Max(math.MaxInt32)),
	)
}

// UpdateRecipeRequest is a PATCH. Ingredients and Tags, when present,
// replace the whole association set.
type UpdateRecipeRequest struct {
	Ingredients *[]IngredientInput `json:"ingredients"`
	Tags        *[]int64           `json:"tags"`
	Image       *string            `json:"image"`
	Name        *string            `json:"name"`
	Text        *string            `json:"text"`
	CookingTime *int               `json:"cooking_time"`
}

// Normalize trims the present string fields; must run before Validate.
func (r *UpdateRecipeRequest) Normalize() {
	for _, f := range []*string{r.Image, r.Name, r.Text} {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}

func (r UpdateRecipeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Ingredients, validation.NilOrNotEmpty.Error("at least one ingredient is required"), validation.By(uniqueIngredients)),
		validation.Field(&r.Tags, validation.NilOrNotEmpty.Error("at least one tag is required"), validation.By(uniqueIDs)),
		validation.Field(&r.Image, validation.NilOrNotEmpty),
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.RuneLength(1, 200)),
		validation.Field(&r.Text, validation.NilOrNotEmpty),
		validation.Field(&r.CookingTime, validation.By(positiveIfSet), validation.Max(math.MaxInt32)),
	)
}

// Apply merges the scalar fields of a normalized patch into rec.
func (r UpdateRecipeRequest) Apply(rec *Recipe) {
	if r.Name != nil {
		rec.Name = *r.Name
	}
	if r.Text != nil {
		rec.Text = *r.Text
	}
	if r.Image != nil {
		rec.Image = *r.Image
	}
	if r.CookingTime != nil {
		rec.CookingTime = *r.CookingTime
	}
}

func positiveIfSet(value interface{}) error {
	if v, ok := value.(*int); ok && v != nil && *v < 1 {
		return validation.NewError("validation_min_greater_equal_than_required", "must be no less than 1")
	}
	return nil
}

func uniqueIngredients(value interface{}) error {
	var items []IngredientInput
	switch v := value.(type) {
	case []IngredientInput:
		items = v
	case *[]IngredientInput:
		if v == nil {
			return nil
		}
		items = *v
	}

	seen := make(map[int64]struct{}, len(items))
	for _, i := range items {
		if _, dup := seen[i.ID]; dup {
			return validation.NewError("validation_duplicate_ingredient", "ingredients must not repeat")
		}
		seen[i.ID] = struct{}{}
	}
	return nil
}

func uniqueIDs(value interface{}) error {
	var ids []int64
	switch v := value.(type) {
	case []int64:
		ids = v
	case *[]int64:
		if v == nil {
			return nil
		}
		ids = *v
	}

	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return validation.NewError("validation_invalid_id", "ids must be positive")
		}
		if _, dup := seen[id]; dup {
			return validation.NewError("validation_duplicate_tag", "tags must not repeat")
		}
		seen[id] = struct{}{}
	}
	return nil
}

// ========================================
// FILTER
// ========================================

// Filter for GET /recipes. The caller-relative flags are ignored for anonymous callers.
type Filter struct {
	AuthorID         int64
	TagSlugs         []string
	IsFavorited      bool
	IsInShoppingCart bool
	Limit            int
	Offset           int
}

// ========================================
// ERRORS
// ========================================

var (
	ErrRecipeNotFound     = apperror.NotFound("RECIPE_NOT_FOUND", "recipe not found")
	ErrIngredientNotFound = apperror.NotFound("INGREDIENT_NOT_FOUND", "one of the ingredients does not exist")
	ErrTagNotFound        = apperror.NotFound("TAG_NOT_FOUND", "one of the tags does not exist")
)
