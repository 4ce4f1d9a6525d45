package crm

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Repository is the entity store. List methods return lazy sequences: the
// store is queried anew every time the sequence is ranged over, so a
// sequence held across writes always reflects the current rows.
type Repository interface {
	CreateCustomer(ctx context.Context, c *Customer) error
	EmailExists(ctx context.Context, email string) (bool, error)
	CustomerByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	Customers(ctx context.Context, f CustomerFilter, orderBy string) (iter.Seq2[*Customer, error], error)

	CreateProduct(ctx context.Context, p *Product) error
	ProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	ProductsByOrderID(ctx context.Context, orderID uuid.UUID) ([]Product, error)
	UpdateLowStock(ctx context.Context, threshold, increment int32) ([]Product, error)
	Products(ctx context.Context, f ProductFilter, orderBy string) (iter.Seq2[*Product, error], error)

	CreateOrder(ctx context.Context, o *Order) error
	Orders(ctx context.Context, f OrderFilter, orderBy string) (iter.Seq2[*Order, error], error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func newID() (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, fmt.Errorf("repository: failed to generate id: %w", err)
	}
	return id, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func (r *postgresRepository) CreateCustomer(ctx context.Context, c *Customer) error {
	id, err := newID()
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	query := `
		INSERT INTO customers (id, name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.db.Exec(ctx, query, id, c.Name, c.Email, c.Phone, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("repository: failed to insert customer: %w", err)
	}

	c.ID = id
	c.CreatedAt = now
	c.UpdatedAt = now
	return nil
}

func (r *postgresRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM customers WHERE lower(email) = lower($1))`
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("repository: failed to check email existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) CustomerByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	query := `
		SELECT id, name, email, phone, created_at, updated_at
		FROM customers
		WHERE id = $1
	`
	var c Customer
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("repository: failed to select customer by id %s: %w", id, err)
	}
	return &c, nil
}

func (r *postgresRepository) CreateProduct(ctx context.Context, p *Product) error {
	id, err := newID()
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	query := `
		INSERT INTO products (id, name, price, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.db.Exec(ctx, query, id, p.Name, p.Price, p.Stock, now, now)
	if err != nil {
		return fmt.Errorf("repository: failed to insert product: %w", err)
	}

	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

func (r *postgresRepository) ProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}

	query := `
		SELECT id, name, price, stock, created_at, updated_at
		FROM products
		WHERE id = ANY($1)
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query products by ids: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *postgresRepository) ProductsByOrderID(ctx context.Context, orderID uuid.UUID) ([]Product, error) {
	query := `
		SELECT p.id, p.name, p.price, p.stock, p.created_at, p.updated_at
		FROM products p
		JOIN order_products op ON op.product_id = p.id
		WHERE op.order_id = $1
		ORDER BY p.name, p.id
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query products for order %s: %w", orderID, err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]Product, error) {
	products := make([]Product, 0)
	for rows.Next() {
		var p Product
		err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating products: %w", err)
	}
	return products, nil
}

// UpdateLowStock raises the stock of every product below threshold by
// increment. A single UPDATE keeps the sweep atomic.
func (r *postgresRepository) UpdateLowStock(ctx context.Context, threshold, increment int32) ([]Product, error) {
	query := `
		UPDATE products
		SET stock = stock + $2, updated_at = $3
		WHERE stock < $1
		RETURNING id, name, price, stock, created_at, updated_at
	`
	rows, err := r.db.Query(ctx, query, threshold, increment, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("repository: failed to update low stock products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// CreateOrder inserts the order row, its product associations and the
// derived total as one transaction. The order and its association rows
// never exist independently of each other.
func (r *postgresRepository) CreateOrder(ctx context.Context, o *Order) (err error) {
	id, err := newID()
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Stringer("order_id", id).Msg("failed to rollback transaction after panic")
			}
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Stringer("order_id", id).Msg("failed to rollback transaction")
			}
		} else {
			if commitErr := tx.Commit(ctx); commitErr != nil {
				err = fmt.Errorf("repository: failed to commit transaction: %w", commitErr)
			}
		}
	}()

	orderQuery := `
		INSERT INTO orders (id, customer_id, total_amount, order_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = tx.Exec(ctx, orderQuery, id, o.CustomerID, o.TotalAmount, o.OrderDate, now, now)
	if err != nil {
		return fmt.Errorf("repository: failed to insert order: %w", err)
	}

	assocQuery := `INSERT INTO order_products (order_id, product_id) VALUES ($1, $2)`
	for _, p := range o.Products {
		if _, err = tx.Exec(ctx, assocQuery, id, p.ID); err != nil {
			return fmt.Errorf("repository: failed to insert order product %s: %w", p.ID, err)
		}
	}

	o.ID = id
	o.CreatedAt = now
	o.UpdatedAt = now
	return nil
}

// querySeq wraps a compiled query in a restartable sequence. Every range
// runs the query from scratch against the pool with the captured context.
func querySeq[T any](ctx context.Context, db *pgxpool.Pool, q query, scan func(pgx.Rows) (*T, error)) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		rows, err := db.Query(ctx, q.sql, q.args...)
		if err != nil {
			yield(nil, fmt.Errorf("repository: failed to run list query: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			v, err := scan(rows)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(v, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, fmt.Errorf("repository: error iterating rows: %w", err))
		}
	}
}

func (r *postgresRepository) Customers(ctx context.Context, f CustomerFilter, orderBy string) (iter.Seq2[*Customer, error], error) {
	q, err := buildCustomerQuery(f, orderBy)
	if err != nil {
		return nil, err
	}
	return querySeq(ctx, r.db, q, func(rows pgx.Rows) (*Customer, error) {
		var c Customer
		err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan customer: %w", err)
		}
		return &c, nil
	}), nil
}

func (r *postgresRepository) Products(ctx context.Context, f ProductFilter, orderBy string) (iter.Seq2[*Product, error], error) {
	q, err := buildProductQuery(f, orderBy)
	if err != nil {
		return nil, err
	}
	return querySeq(ctx, r.db, q, func(rows pgx.Rows) (*Product, error) {
		var p Product
		err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan product: %w", err)
		}
		return &p, nil
	}), nil
}

func (r *postgresRepository) Orders(ctx context.Context, f OrderFilter, orderBy string) (iter.Seq2[*Order, error], error) {
	q, err := buildOrderQuery(f, orderBy)
	if err != nil {
		return nil, err
	}
	return querySeq(ctx, r.db, q, func(rows pgx.Rows) (*Order, error) {
		var o Order
		err := rows.Scan(&o.ID, &o.CustomerID, &o.TotalAmount, &o.OrderDate, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order: %w", err)
		}
		return &o, nil
	}), nil
}
