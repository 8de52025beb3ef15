package database

import (
	"database/sql"

	sqldb "github.com/mixdeck/trackdb/internal/database/sqlc"
)

func boolToInt64(value bool) int64 {
	if value {
		return 1
	}
	return 0
}

func int64ToBool(value int64) bool {
	return value != 0
}

func queriesFromContext(ctx *Context) *sqldb.Queries {
	if ctx == nil {
		return nil
	}
	if ctx.Queries != nil {
		return ctx.Queries
	}
	if ctx.DB == nil {
		return nil
	}
	return sqldb.New(ctx.DB)
}

// txContext returns a Context whose queries run on tx.
func txContext(ctx *Context, tx *sql.Tx) *Context {
	if ctx == nil {
		return &Context{Queries: sqldb.New(tx)}
	}
	return &Context{DB: ctx.DB, Queries: sqldb.New(tx)}
}
