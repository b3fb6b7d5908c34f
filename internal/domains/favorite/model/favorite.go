package model

import "foodgram-backend/internal/shared/apperror"

var (
	ErrAlreadyFavorited = apperror.AlreadyExists("ALREADY_FAVORITED", "recipe is already in favorites")
	ErrNotFavorited     = apperror.NotFound("NOT_FAVORITED", "recipe is not in favorites")
)
