package db

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type contextKey string

const TxKey contextKey = "db_tx"

// WithTx returns a context carrying an open transaction. Repositories prefer
// it over the shared pool so multi-statement operations stay on one connection.
func WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, TxKey, tx)
}

// TxFromContext retrieves the transaction from context, if any.
func TxFromContext(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(TxKey).(pgx.Tx)
	return tx
}
