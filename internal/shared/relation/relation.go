package relation

import (
	"context"
	"fmt"

	"foodgram-backend/internal/infrastructure/database"
	"foodgram-backend/internal/shared/apperror"
	pkgdb "foodgram-backend/pkg/database"
)

// Pair is a presence table of (owner, target) rows with a unique constraint
// on the pair: favorites, shopping_cart, subscriptions.
//
// State per pair: absent -> Add -> present -> Remove -> absent.
// Add on present and Remove on absent fail; the unique constraint is the
// only arbiter between concurrent adds.
type Pair struct {
	Table        string
	OwnerColumn  string
	TargetColumn string

	// TargetFK is the FK constraint from TargetColumn to its table.
	TargetFK string

	// SelfCheck, when set, is the CHECK constraint forbidding owner == target.
	SelfCheck string

	ErrExists         *apperror.Error
	ErrMissing        *apperror.Error
	ErrTargetNotFound *apperror.Error
	ErrSelf           *apperror.Error
}

// Add inserts the pair.
func (p Pair) Add(ctx context.Context, db pkgdb.DBTX, ownerID, targetID int64) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`, p.Table, p.OwnerColumn, p.TargetColumn)

	if _, err := db.Exec(ctx, query, ownerID, targetID); err != nil {
		switch {
		case database.IsUniqueViolation(err):
			return p.ErrExists.Wrap(err)
		case p.TargetFK != "" && database.IsForeignKeyViolation(err, p.TargetFK):
			return p.ErrTargetNotFound.Wrap(err)
		case p.SelfCheck != "" && database.IsCheckViolation(err, p.SelfCheck):
			return p.ErrSelf.Wrap(err)
		}
		return fmt.Errorf("insert into %s: %w", p.Table, err)
	}
	return nil
}

// Remove deletes the pair; removing an absent pair is ErrMissing.
func (p Pair) Remove(ctx context.Context, db pkgdb.DBTX, ownerID, targetID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, p.Table, p.OwnerColumn, p.TargetColumn)

	tag, err := db.Exec(ctx, query, ownerID, targetID)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", p.Table, err)
	}
	if tag.RowsAffected() == 0 {
		return p.ErrMissing
	}
	return nil
}
