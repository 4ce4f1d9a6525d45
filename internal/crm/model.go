package crm

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

// Customer is a person we sell to. Email is stored lower-cased and is
// unique across the table.
type Customer struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone,omitempty" db:"phone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type Product struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Stock     int32           `json:"stock" db:"stock"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// Order references one customer and at least one product. TotalAmount is
// derived: the sum of the associated products' prices at creation time.
// It is never settable by callers.
type Order struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	CustomerID  uuid.UUID       `json:"customer_id" db:"customer_id"`
	Customer    *Customer       `json:"customer,omitempty" db:"-"`
	Products    []Product       `json:"products,omitempty" db:"-"`
	TotalAmount decimal.Decimal `json:"total_amount" db:"total_amount"`
	OrderDate   time.Time       `json:"order_date" db:"order_date"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// CustomerInput carries the raw field values of a customer creation
// request. Phone is optional; empty means absent.
type CustomerInput struct {
	Name  string
	Email string
	Phone string
}

type ProductInput struct {
	Name  string
	Price decimal.Decimal
	Stock *int32
}

// OrderInput keeps the referenced ids as raw strings: unparseable ids are
// a validation problem, not a transport one, and are reported alongside
// the other violations.
type OrderInput struct {
	CustomerID string
	ProductIDs []string
	OrderDate  *time.Time
}
