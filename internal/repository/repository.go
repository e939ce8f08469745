package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository serves the recommendation tables from PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}
