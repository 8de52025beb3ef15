package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mixdeck/trackdb/internal/database"
)

// withTx runs fn inside a single transaction on dbCtx. Every statement fn
// issues must go through tx: the pool holds one connection, so a statement
// on the bare *sql.DB would wait for the transaction forever.
func withTx(ctx context.Context, dbCtx *database.Context, name string, fn func(*sql.Tx) error) error {
	if dbCtx == nil || dbCtx.DB == nil {
		return fmt.Errorf("%s: missing database context", name)
	}

	tx, err := dbCtx.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w: %w", name, database.ErrStoreFailure, err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w (rollback error: %w)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%s: commit: %w: %w", name, database.ErrStoreFailure, err)
	}

	return nil
}
