package model

import "foodgram-backend/internal/shared/apperror"

var (
	ErrAlreadyInCart = apperror.AlreadyExists("ALREADY_IN_CART", "recipe is already in the shopping cart")
	ErrNotInCart     = apperror.NotFound("NOT_IN_CART", "recipe is not in the shopping cart")
)
