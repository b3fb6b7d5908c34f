package repository

import (
	"context"
	"fmt"

	recipemodel "foodgram-backend/internal/domains/recipe/model"
	"foodgram-backend/internal/domains/user/model"
	"foodgram-backend/internal/infrastructure/database"
	"foodgram-backend/internal/shared/relation"
	pkgdb "foodgram-backend/pkg/database"

	sq "github.com/Masterminds/squirrel"
)

var subscriptions = relation.Pair{
	Table:             "subscriptions",
	OwnerColumn:       "user_id",
	TargetColumn:      "author_id",
	TargetFK:          "fk_subscriptions_author",
	SelfCheck:         "ck_subscriptions_no_self",
	ErrExists:         model.ErrAlreadySubscribed,
	ErrMissing:        model.ErrNotSubscribed,
	ErrTargetNotFound: model.ErrAuthorNotFound,
	ErrSelf:           model.ErrSelfSubscription,
}

var userColumns = []string{
	"u.id", "u.username", "u.email", "u.first_name", "u.last_name",
	"u.role", "u.is_superuser", "u.date_joined",
}

const recipesCountExpr = "(SELECT COUNT(*) FROM recipes r WHERE r.author_id = u.id) AS recipes_count"

const isSubscribedExpr = "EXISTS (SELECT 1 FROM subscriptions s WHERE s.user_id = ? AND s.author_id = u.id) AS is_subscribed"

type postgresRepository struct {
	db   pkgdb.DBTX
	psql sq.StatementBuilderType
}

func NewPostgresRepository(db pkgdb.DBTX) Repository {
	return &postgresRepository{
		db:   db,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func userDest(u *model.User) []any {
	return []any{&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.IsSuperuser, &u.DateJoined}
}

func (r *postgresRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	query := `
        INSERT INTO users (username, email, first_name, last_name, role, is_superuser)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, username, email, first_name, last_name, role, is_superuser, date_joined
    `

	var created model.User
	err := r.db.QueryRow(ctx, query, u.Username, u.Email, u.FirstName, u.LastName, u.Role, u.IsSuperuser).
		Scan(userDest(&created)...)
	if err != nil {
		switch {
		case database.IsUniqueViolation(err, "uq_users_username"):
			return nil, model.ErrUsernameTaken.Wrap(err)
		case database.IsUniqueViolation(err, "uq_users_email"):
			return nil, model.ErrEmailTaken.Wrap(err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id, viewerID int64) (*model.UserWithSubscription, error) {
	query, args, err := r.psql.
		Select(userColumns...).
		Column(sq.Expr(isSubscribedExpr, viewerID)).
		From("users u").
		Where(sq.Eq{"u.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user query: %w", err)
	}

	var u model.UserWithSubscription
	if err := r.db.QueryRow(ctx, query, args...).Scan(append(userDest(&u.User), &u.IsSubscribed)...); err != nil {
		if database.IsNoRows(err) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &u, nil
}

func (r *postgresRepository) List(ctx context.Context, viewerID int64, filter model.ListFilter) ([]model.UserWithSubscription, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query, args, err := r.psql.
		Select(userColumns...).
		Column(sq.Expr(isSubscribedExpr, viewerID)).
		From("users u").
		OrderBy("u.username ASC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build user list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]model.UserWithSubscription, 0, filter.Limit)
	for rows.Next() {
		var u model.UserWithSubscription
		if err := rows.Scan(append(userDest(&u.User), &u.IsSubscribed)...); err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, total, nil
}

// Delete cascades to the user's recipes, favorites, cart and subscriptions.
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *postgresRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) Subscribe(ctx context.Context, userID, authorID int64) error {
	return subscriptions.Add(ctx, r.db, userID, authorID)
}

func (r *postgresRepository) Unsubscribe(ctx context.Context, userID, authorID int64) error {
	return subscriptions.Remove(ctx, r.db, userID, authorID)
}

func (r *postgresRepository) GetSubscription(ctx context.Context, authorID int64) (*SubscriptionRow, error) {
	query, args, err := r.psql.
		Select(userColumns...).
		Column(recipesCountExpr).
		From("users u").
		Where(sq.Eq{"u.id": authorID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build subscription query: %w", err)
	}

	var s SubscriptionRow
	if err := r.db.QueryRow(ctx, query, args...).Scan(append(userDest(&s.User), &s.RecipesCount)...); err != nil {
		if database.IsNoRows(err) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return &s, nil
}

func (r *postgresRepository) ListSubscriptions(ctx context.Context, userID int64, filter model.SubscriptionFilter) ([]SubscriptionRow, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM subscriptions WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	query, args, err := r.psql.
		Select(userColumns...).
		Column(recipesCountExpr).
		From("users u").
		Join("subscriptions s ON s.author_id = u.id").
		Where(sq.Eq{"s.user_id": userID}).
		OrderBy("u.username ASC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build subscription query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	out := make([]SubscriptionRow, 0, filter.Limit)
	for rows.Next() {
		var s SubscriptionRow
		if err := rows.Scan(append(userDest(&s.User), &s.RecipesCount)...); err != nil {
			return nil, 0, fmt.Errorf("failed to scan subscription: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate subscriptions: %w", err)
	}

	return out, total, nil
}

func (r *postgresRepository) RecipesByAuthors(ctx context.Context, authorIDs []int64, limit int) (map[int64][]recipemodel.ShortRecipe, error) {
	out := make(map[int64][]recipemodel.ShortRecipe, len(authorIDs))
	if len(authorIDs) == 0 {
		return out, nil
	}

	query := `
        SELECT author_id, id, name, image, cooking_time
        FROM (
            SELECT r.author_id, r.id, r.name, r.image, r.cooking_time, r.pub_date,
                   ROW_NUMBER() OVER (PARTITION BY r.author_id ORDER BY r.pub_date DESC, r.id DESC) AS rn
            FROM recipes r
            WHERE r.author_id = ANY($1)
        ) ranked
        WHERE $2::int < 0 OR rn <= $2
        ORDER BY author_id, pub_date DESC, id DESC
    `

	rows, err := r.db.Query(ctx, query, authorIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list author recipes: %w", err)
	}

	defer rows.Close()

	for rows.Next() {
		var (
			authorID int64
			sr       recipemodel.ShortRecipe
		)
		if err := rows.Scan(&authorID, &sr.ID, &sr.Name, &sr.Image, &sr.CookingTime); err != nil {
			return nil, fmt.Errorf("failed to scan author recipe: %w", err)
		}
		out[authorID] = append(out[authorID], sr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate author recipes: %w", err)
	}

	return out, nil
}
