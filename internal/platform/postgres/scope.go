package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/store"
)

// currentUserSetting is the session variable read by the row-level security policies.
const currentUserSetting = "app.current_user_id"

// psql builds PostgreSQL-flavoured statements. UUIDs are passed to squirrel.Eq
// as strings; array values would otherwise expand into IN lists.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// errNilUserID is returned when a scoped operation is attempted without an actor.
var errNilUserID = errors.New("user scope requires a non-nil user ID")

// withUserScope runs fn with app.current_user_id set to userID for the
// duration of a transaction. When db is a *sql.DB a new transaction is
// opened; otherwise db is assumed to already be a transaction.
func withUserScope(
	ctx context.Context,
	db store.DBTX,
	userID uuid.UUID,
	fn func(ctx context.Context, q store.DBTX) error,
) error {
	if userID == uuid.Nil {
		return errNilUserID
	}

	scoped := func(ctx context.Context, q store.DBTX) error {
		if _, err := q.ExecContext(ctx,
			"SELECT set_config($1, $2, true)", currentUserSetting, userID.String(),
		); err != nil {
			return fmt.Errorf("failed to set user scope: %w", err)
		}
		return fn(ctx, q)
	}

	if sqlDB, ok := db.(*sql.DB); ok {
		return store.RunInTransaction(ctx, sqlDB, func(ctx context.Context, tx *sql.Tx) error {
			return scoped(ctx, tx)
		})
	}

	return scoped(ctx, db)
}
