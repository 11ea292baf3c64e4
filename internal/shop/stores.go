package shop

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is satisfied by *pgxpool.Pool.
type DB interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type ProductStore interface {
	Categories(ctx context.Context) ([]string, error)
	Search(ctx context.Context, query, category string) ([]Product, error)
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p Product) error
	Delete(ctx context.Context, id int64) error
	SetRating(ctx context.Context, id int64, rating float64) error
}

type UserStore interface {
	Create(ctx context.Context, u *User) error
	ByEmail(ctx context.Context, email string) (User, error)
}

type OrderStore interface {
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, id int64) (Order, error)
	ByEmail(ctx context.Context, email string) ([]Order, error)
}

type StatsStore interface {
	Dashboard(ctx context.Context) (Dashboard, error)
}
