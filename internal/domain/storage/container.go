package storage

import (
	"context"
	"fmt"

	"github.com/heart0018/OriginalProduct/internal/domain/cards"
	"github.com/heart0018/OriginalProduct/internal/domain/users"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Container struct {
	pool  *pgxpool.Pool // IMPORTANT: set the pool so WithTx works
	Cards cards.Store
	Users users.Store
}

func NewContainer(db *pgxpool.Pool) *Container {
	return &Container{
		pool:  db,
		Cards: cards.NewRepository(db),
		Users: users.NewRepository(db),
	}
}

// Tx is a temporary, tx-scoped set of repos for atomic units of work.
type Tx struct {
	Cards cards.Store
	Users users.Store
}

// WithTx runs fn atomically; any error returned by fn rolls back.
func (c *Container) WithTx(ctx context.Context, fn func(s *Tx) error) error {
	if c.pool == nil {
		return fmt.Errorf("storage container pool is nil (did you forget to set pool in NewContainer?)")
	}

	tx, err := c.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback(ctx) // safe even if already committed
	}()

	s := &Tx{
		Cards: cards.NewRepository(tx),
		Users: users.NewRepository(tx),
	}

	if err := fn(s); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
