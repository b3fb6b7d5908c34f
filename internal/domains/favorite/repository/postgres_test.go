package repository

import (
	"context"
	"testing"

	"foodgram-backend/internal/domains/favorite/model"
	recipemodel "foodgram-backend/internal/domains/recipe/model"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd_DuplicateLeavesOneRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO favorites \(user_id, recipe_id\) VALUES \(\$1, \$2\)`).
		WithArgs(int64(1), int64(5)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO favorites`).
		WithArgs(int64(1), int64(5)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_favorites_user_recipe"})

	repo := NewPostgresRepository(mock)
	require.NoError(t, repo.Add(context.Background(), 1, 5))
	assert.ErrorIs(t, repo.Add(context.Background(), 1, 5), model.ErrAlreadyFavorited)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdd_RecipeDeletedConcurrently(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO favorites`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_favorites_recipe"})

	err = NewPostgresRepository(mock).Add(context.Background(), 1, 5)
	assert.ErrorIs(t, err, recipemodel.ErrRecipeNotFound)
}

func TestRemove_Absent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM favorites WHERE user_id = \$1 AND recipe_id = \$2`).
		WithArgs(int64(1), int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, NewPostgresRepository(mock).Remove(context.Background(), 1, 5), model.ErrNotFavorited)
	require.NoError(t, mock.ExpectationsWereMet())
}
