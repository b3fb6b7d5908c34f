package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert favorite: %w", &pgconn.PgError{Code: UniqueViolation, ConstraintName: "uq_favorites_user_recipe"})

	assert.True(t, IsUniqueViolation(err))
	assert.True(t, IsUniqueViolation(err, "uq_favorites_user_recipe"))
	assert.False(t, IsUniqueViolation(err, "uq_tags_slug"))
	assert.False(t, IsForeignKeyViolation(err))
}

func TestIsForeignKeyViolation(t *testing.T) {
	err := &pgconn.PgError{Code: ForeignKeyViolation, ConstraintName: "fk_recipe_tags_tag"}

	assert.True(t, IsForeignKeyViolation(err, "fk_recipe_ingredients_ingredient", "fk_recipe_tags_tag"))
	assert.False(t, IsUniqueViolation(err))
}

func TestIsCheckViolation(t *testing.T) {
	err := &pgconn.PgError{Code: CheckViolation, ConstraintName: "ck_subscriptions_no_self"}

	assert.True(t, IsCheckViolation(err, "ck_subscriptions_no_self"))
	assert.False(t, IsCheckViolation(err, "ck_recipes_cooking_time"))
}

func TestNonPgErrors(t *testing.T) {
	plain := errors.New("boom")
	assert.False(t, IsUniqueViolation(plain))
	assert.False(t, IsCheckViolation(plain))
	assert.True(t, IsNoRows(fmt.Errorf("get: %w", pgx.ErrNoRows)))
}

func TestDBConfig_DSN(t *testing.T) {
	c := &DBConfig{Host: "db", Port: 5432, Username: "foodgram", Password: "p@ss", DBName: "foodgram", SSLMode: "disable"}
	assert.Equal(t, "postgresql://foodgram:p%40ss@db:5432/foodgram?sslmode=disable", c.DSN())
}
