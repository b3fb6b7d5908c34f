package repository

import (
	"context"
	"testing"
	"time"

	"foodgram-backend/internal/domains/recipe/model"
	"foodgram-backend/internal/shared/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	published = time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	rowCols   = []string{
		"id", "author_id", "name", "text", "image", "cooking_time", "pub_date",
		"u_id", "username", "email", "first_name", "last_name", "role", "is_superuser", "date_joined",
		"is_subscribed", "is_favorited", "is_in_shopping_cart",
	}
)

func soupRow(rows *pgxmock.Rows, id int64, favorited bool) *pgxmock.Rows {
	return rows.AddRow(id, int64(2), "Soup", "Boil it", "soup.png", 30, published,
		int64(2), "chef", "chef@example.com", "Ann", "Lee", "user", false, published,
		true, favorited, false)
}

func TestList_AllFilters(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	slugs := []string{"breakfast", "lunch"}
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM recipes r WHERE r\.author_id = \$1 AND EXISTS \(SELECT 1 FROM recipe_tags rt JOIN tags t ON t\.id = rt\.tag_id WHERE rt\.recipe_id = r\.id AND t\.slug = ANY\(\$2\)\) AND EXISTS \(SELECT 1 FROM favorites ff WHERE ff\.user_id = \$3 AND ff\.recipe_id = r\.id\)`).
		WithArgs(int64(2), slugs, int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(9)))
	mock.ExpectQuery(`FROM recipes r JOIN users u ON u\.id = r\.author_id WHERE r\.author_id = \$4 AND .* ORDER BY r\.pub_date DESC, r\.id DESC LIMIT 6 OFFSET 6`).
		WithArgs(int64(7), int64(7), int64(7), int64(2), slugs, int64(7)).
		WillReturnRows(soupRow(pgxmock.NewRows(rowCols), 11, true))

	repo := NewPostgresRepository(mock)
	rows, total, err := repo.List(context.Background(), 7, model.Filter{
		AuthorID:    2,
		TagSlugs:    slugs,
		IsFavorited: true,
		Limit:       6,
		Offset:      6,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), total)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].IsFavorited)
	assert.True(t, rows[0].Author.IsSubscribed)
	assert.Equal(t, "chef", rows[0].Author.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_AnonymousIgnoresCallerFilters(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM recipes r`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(`FROM recipes r JOIN users u ON u\.id = r\.author_id ORDER BY`).
		WithArgs(int64(0), int64(0), int64(0)).
		WillReturnRows(pgxmock.NewRows(rowCols))

	rows, total, err := NewPostgresRepository(mock).List(context.Background(), 0, model.Filter{
		IsFavorited:      true,
		IsInShoppingCart: true,
		Limit:            6,
	})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`WHERE r\.id = \$4`).
		WithArgs(int64(1), int64(1), int64(1), int64(404)).
		WillReturnError(pgx.ErrNoRows)

	_, err = NewPostgresRepository(mock).GetByID(context.Background(), 404, 1)
	assert.ErrorIs(t, err, model.ErrRecipeNotFound)
}

func TestIngredients_BatchLoad(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM recipe_ingredients ri JOIN ingredients i ON i\.id = ri\.ingredient_id WHERE ri\.recipe_id = ANY\(\$1\)`).
		WithArgs([]int64{1, 2}).
		WillReturnRows(pgxmock.NewRows([]string{"recipe_id", "id", "name", "measurement_unit", "amount"}).
			AddRow(int64(1), int64(10), "Flour", "g", 200).
			AddRow(int64(1), int64(12), "Salt", "g", 5).
			AddRow(int64(2), int64(10), "Flour", "g", 100))

	got, err := NewPostgresRepository(mock).Ingredients(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	assert.Len(t, got[1], 2)
	assert.Equal(t, 100, got[2][0].Amount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_WritesAssociationsInTransaction(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO recipes \(author_id, name, text, image, cooking_time\)`).
		WithArgs(int64(2), "Soup", "Boil it", "soup.png", 30).
		WillReturnRows(pgxmock.NewRows([]string{"id", "pub_date"}).AddRow(int64(11), published))
	mock.ExpectExec(`DELETE FROM recipe_ingredients\s+WHERE recipe_id = \$1 AND NOT \(ingredient_id = ANY\(\$2\)\)`).
		WithArgs(int64(11), []int64{10, 12}).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`INSERT INTO recipe_ingredients \(recipe_id, ingredient_id, amount\)\s+SELECT \$1, unnest\(\$2::bigint\[\]\), unnest\(\$3::int\[\]\)\s+ON CONFLICT ON CONSTRAINT uq_recipe_ingredients\s+DO UPDATE SET amount = EXCLUDED\.amount`).
		WithArgs(int64(11), []int64{10, 12}, []int32{200, 5}).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectExec(`DELETE FROM recipe_tags\s+WHERE recipe_id = \$1 AND NOT \(tag_id = ANY\(\$2\)\)`).
		WithArgs(int64(11), []int64{1}).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`INSERT INTO recipe_tags \(recipe_id, tag_id\)\s+SELECT \$1, unnest\(\$2::bigint\[\]\)\s+ON CONFLICT ON CONSTRAINT uq_recipe_tags DO NOTHING`).
		WithArgs(int64(11), []int64{1}).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	rec, err := NewPostgresRepository(mock).Create(context.Background(),
		&model.Recipe{AuthorID: 2, Name: "Soup", Text: "Boil it", Image: "soup.png", CookingTime: 30},
		[]model.IngredientInput{{ID: 10, Amount: 200}, {ID: 12, Amount: 5}},
		[]int64{1},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(11), rec.ID)
	assert.Equal(t, published, rec.PubDate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UnknownIngredientRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO recipes`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "pub_date"}).AddRow(int64(11), published))
	mock.ExpectExec(`DELETE FROM recipe_ingredients`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`INSERT INTO recipe_ingredients`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_recipe_ingredients_ingredient"})
	mock.ExpectRollback()

	_, err = NewPostgresRepository(mock).Create(context.Background(),
		&model.Recipe{AuthorID: 2, Name: "Soup", Text: "t", Image: "i", CookingTime: 1},
		[]model.IngredientInput{{ID: 999, Amount: 1}},
		[]int64{1},
	)
	assert.ErrorIs(t, err, model.ErrIngredientNotFound)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_KeepsAssociationsWhenAbsent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	tags := []int64{3}
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE recipes\s+SET name = \$2, text = \$3, image = \$4, cooking_time = \$5\s+WHERE id = \$1`).
		WithArgs(int64(11), "Soup", "Boil it", "soup.png", 45).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`DELETE FROM recipe_tags`).
		WithArgs(int64(11), tags).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`INSERT INTO recipe_tags`).
		WithArgs(int64(11), tags).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_recipe_tags_tag"})
	mock.ExpectRollback()

	_, err = NewPostgresRepository(mock).Update(context.Background(),
		&model.Recipe{ID: 11, Name: "Soup", Text: "Boil it", Image: "soup.png", CookingTime: 45},
		nil, &tags,
	)
	assert.ErrorIs(t, err, model.ErrTagNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_MissingRecipe(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE recipes`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	_, err = NewPostgresRepository(mock).Update(context.Background(), &model.Recipe{ID: 404}, nil, nil)
	assert.ErrorIs(t, err, model.ErrRecipeNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM recipes WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, NewPostgresRepository(mock).Delete(context.Background(), 404), model.ErrRecipeNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
