package main

import (
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heart0018/OriginalProduct/internal/db"
)

func openPool() (*pgxpool.Pool, error) {
	addr := os.Getenv("DB_ADDR")
	if addr == "" {
		return nil, errors.New("DB_ADDR is not set")
	}
	return db.New(addr, 4, "")
}
