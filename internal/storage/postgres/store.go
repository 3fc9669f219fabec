// Package postgres persists placed orders in PostgreSQL through pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-pizzaform/pkg/order"
	"github.com/goliatone/go-pizzaform/pkg/orderapi"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicateOrder is returned when an order id is saved twice.
var ErrDuplicateOrder = errors.New("postgres: order already exists")

// Store implements orderapi.Store on an orders table.
type Store struct {
	pool *pgxpool.Pool
}

var (
	_ orderapi.Store  = (*Store)(nil)
	_ orderapi.Lister = (*Store)(nil)
)

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Open parses dsn, verifies the connection and applies migrations. The caller
// owns the returned pool.
func Open(ctx context.Context, dsn string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func (s *Store) Save(ctx context.Context, placed order.Placed) error {
	const stmt = `
INSERT INTO orders (id, full_name, size, toppings, created_at)
VALUES ($1, $2, $3, $4, $5)`

	toppings := placed.Draft.Toppings
	if toppings == nil {
		toppings = []string{}
	}
	createdAt := placed.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx, stmt,
		placed.ID, placed.Draft.FullName, string(placed.Draft.Size), toppings, createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateOrder
		}
		return fmt.Errorf("postgres: save order: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (order.Placed, error) {
	const query = `SELECT id, full_name, size, toppings, created_at FROM orders WHERE id = $1`

	var (
		placed order.Placed
		size   string
	)
	err := s.pool.QueryRow(ctx, query, id).
		Scan(&placed.ID, &placed.Draft.FullName, &size, &placed.Draft.Toppings, &placed.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return order.Placed{}, orderapi.ErrOrderNotFound
		}
		return order.Placed{}, fmt.Errorf("postgres: get order: %w", err)
	}
	placed.Draft.Size = order.Size(size)
	placed.CreatedAt = placed.CreatedAt.UTC()
	return placed, nil
}

// Recent returns up to limit orders, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]order.Placed, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `
SELECT id, full_name, size, toppings, created_at
FROM orders
ORDER BY created_at DESC, id
LIMIT $1`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: list orders: %w", err)
	}
	defer rows.Close()

	var out []order.Placed
	for rows.Next() {
		var (
			placed order.Placed
			size   string
		)
		if err := rows.Scan(&placed.ID, &placed.Draft.FullName, &size, &placed.Draft.Toppings, &placed.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan order: %w", err)
		}
		placed.Draft.Size = order.Size(size)
		placed.CreatedAt = placed.CreatedAt.UTC()
		out = append(out, placed)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list orders: %w", err)
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
