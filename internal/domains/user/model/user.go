package model

import (
	"regexp"
	"strings"
	"time"

	"foodgram-backend/internal/shared/apperror"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// User is a local account. Credentials live with the external identity provider.
type User struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Role        string    `json:"role"`
	IsSuperuser bool      `json:"is_superuser"`
	DateJoined  time.Time `json:"date_joined"`
}

// UserResponse is the public representation, relative to the caller.
type UserResponse struct {
	Email        string `json:"email"`
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// UserWithSubscription is a user row plus the caller's subscription flag.
type UserWithSubscription struct {
	User
	IsSubscribed bool
}

func (u UserWithSubscription) Response() UserResponse {
	return UserResponse{
		Email:        u.Email,
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: u.IsSubscribed,
	}
}

// ========================================
// REQUESTS
// ========================================

var usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

type RegisterRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (r *RegisterRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Username = strings.TrimSpace(r.Username)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			validation.RuneLength(3, 254),
			is.EmailFormat.Error("invalid email format"),
		),
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.RuneLength(1, 150),
			validation.Match(usernameRe).Error("allowed characters: letters, digits and @/./+/-/_"),
			validation.By(notReserved),
		),
		validation.Field(&r.FirstName, validation.Required, validation.RuneLength(1, 150)),
		validation.Field(&r.LastName, validation.Required, validation.RuneLength(1, 150)),
	)
}

func notReserved(value interface{}) error {
	if s, _ := value.(string); strings.EqualFold(s, "me") {
		return validation.NewError("validation_username_reserved", "username is reserved")
	}
	return nil
}

// ListFilter for GET /users?page=&limit=
type ListFilter struct {
	Limit  int
	Offset int
}

// SubscriptionFilter for GET /users/subscriptions
type SubscriptionFilter struct {
	Limit        int
	Offset       int
	RecipesLimit int // < 0 means all recipes
}

// ========================================
// ERRORS
// ========================================

var (
	ErrUserNotFound      = apperror.NotFound("USER_NOT_FOUND", "user not found")
	ErrUsernameTaken     = apperror.AlreadyExists("USERNAME_TAKEN", "a user with this username already exists")
	ErrEmailTaken        = apperror.AlreadyExists("EMAIL_TAKEN", "a user with this email already exists")
	ErrAlreadySubscribed = apperror.AlreadyExists("ALREADY_SUBSCRIBED", "already subscribed to this author")
	ErrNotSubscribed     = apperror.NotFound("NOT_SUBSCRIBED", "not subscribed to this author")
	ErrSelfSubscription  = apperror.InvalidState("SELF_SUBSCRIPTION", "cannot subscribe to yourself")
	ErrAuthorNotFound    = apperror.NotFound("AUTHOR_NOT_FOUND", "author not found")
)
