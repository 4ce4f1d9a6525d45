package crm

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

// Filter criteria for list queries. Every set field becomes a predicate;
// all predicates are combined with AND. Zero values impose no constraint.

type CustomerFilter struct {
	NameContains  string
	EmailContains string
	CreatedAtGte  *time.Time
	CreatedAtLte  *time.Time
	PhonePrefix   string
}

type ProductFilter struct {
	NameContains string
	PriceGte     *decimal.Decimal
	PriceLte     *decimal.Decimal
	StockGte     *int32
	StockLte     *int32
}

type OrderFilter struct {
	TotalAmountGte *decimal.Decimal
	TotalAmountLte *decimal.Decimal
	OrderDateGte   *time.Time
	OrderDateLte   *time.Time
	CustomerName   string
	ProductName    string
	ProductID      string
}

// query is a compiled list query: SQL text plus positional args. It is
// built once per list call and re-executed on every consumption of the
// resulting sequence.
type query struct {
	sql  string
	args []any
}

// predicates accumulates WHERE expressions. Each expr must contain a
// single %d placeholder for the positional parameter index.
type predicates struct {
	exprs []string
	args  []any
}

func (p *predicates) add(expr string, arg any) {
	p.args = append(p.args, arg)
	p.exprs = append(p.exprs, fmt.Sprintf(expr, len(p.args)))
}

func (p *predicates) whereClause() string {
	if len(p.exprs) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.exprs, " AND ")
}

func containsArg(v string) string { return "%" + v + "%" }

// Sortable columns per entity. The caller-facing names follow the
// original API (snake_case); anything else is rejected.
var (
	customerOrderFields = map[string]string{
		"name":       "name",
		"email":      "email",
		"created_at": "created_at",
	}
	productOrderFields = map[string]string{
		"name":       "name",
		"price":      "price",
		"stock":      "stock",
		"created_at": "created_at",
	}
	orderOrderFields = map[string]string{
		"total_amount": "total_amount",
		"order_date":   "order_date",
		"created_at":   "created_at",
	}
)

// orderClause resolves an orderBy directive ("field" or "-field") against
// the entity's sortable columns. Unknown fields are a caller error. The id
// column is always appended as a tie-break so repeated queries return rows
// in a stable order.
func orderClause(fields map[string]string, orderBy, qualifier string) (string, error) {
	if orderBy == "" {
		return fmt.Sprintf(" ORDER BY %screated_at, %sid", qualifier, qualifier), nil
	}

	dir := "ASC"
	name := orderBy
	if strings.HasPrefix(orderBy, "-") {
		dir = "DESC"
		name = orderBy[1:]
	}

	col, ok := fields[name]
	if !ok {
		return "", fmt.Errorf("unknown order field %q", name)
	}

	return fmt.Sprintf(" ORDER BY %s%s %s, %sid", qualifier, col, dir, qualifier), nil
}

func buildCustomerQuery(f CustomerFilter, orderBy string) (query, error) {
	var p predicates
	if f.NameContains != "" {
		p.add("name ILIKE $%d", containsArg(f.NameContains))
	}
	if f.EmailContains != "" {
		p.add("email ILIKE $%d", containsArg(f.EmailContains))
	}
	if f.CreatedAtGte != nil {
		p.add("created_at >= $%d", *f.CreatedAtGte)
	}
	if f.CreatedAtLte != nil {
		p.add("created_at <= $%d", *f.CreatedAtLte)
	}
	if f.PhonePrefix != "" {
		p.add("phone LIKE $%d", f.PhonePrefix+"%")
	}

	order, err := orderClause(customerOrderFields, orderBy, "")
	if err != nil {
		return query{}, err
	}

	sql := "SELECT id, name, email, phone, created_at, updated_at FROM customers" +
		p.whereClause() + order
	return query{sql: sql, args: p.args}, nil
}

func buildProductQuery(f ProductFilter, orderBy string) (query, error) {
	var p predicates
	if f.NameContains != "" {
		p.add("name ILIKE $%d", containsArg(f.NameContains))
	}
	if f.PriceGte != nil {
		p.add("price >= $%d", *f.PriceGte)
	}
	if f.PriceLte != nil {
		p.add("price <= $%d", *f.PriceLte)
	}
	if f.StockGte != nil {
		p.add("stock >= $%d", *f.StockGte)
	}
	if f.StockLte != nil {
		p.add("stock <= $%d", *f.StockLte)
	}

	order, err := orderClause(productOrderFields, orderBy, "")
	if err != nil {
		return query{}, err
	}

	sql := "SELECT id, name, price, stock, created_at, updated_at FROM products" +
		p.whereClause() + order
	return query{sql: sql, args: p.args}, nil
}

// buildOrderQuery joins through customers and the order_products table
// only when a related-field filter asks for it. A product-side join can
// match one order several times, so the select collapses duplicates with
// DISTINCT: one row per order, always.
func buildOrderQuery(f OrderFilter, orderBy string) (query, error) {
	var p predicates
	joinCustomer := f.CustomerName != ""
	joinProducts := f.ProductName != "" || f.ProductID != ""

	if f.TotalAmountGte != nil {
		p.add("o.total_amount >= $%d", *f.TotalAmountGte)
	}
	if f.TotalAmountLte != nil {
		p.add("o.total_amount <= $%d", *f.TotalAmountLte)
	}
	if f.OrderDateGte != nil {
		p.add("o.order_date >= $%d", *f.OrderDateGte)
	}
	if f.OrderDateLte != nil {
		p.add("o.order_date <= $%d", *f.OrderDateLte)
	}
	if f.CustomerName != "" {
		p.add("c.name ILIKE $%d", containsArg(f.CustomerName))
	}
	if f.ProductName != "" {
		p.add("p.name ILIKE $%d", containsArg(f.ProductName))
	}
	if f.ProductID != "" {
		id, err := uuid.FromString(f.ProductID)
		if err != nil {
			return query{}, fmt.Errorf("invalid product id %q", f.ProductID)
		}
		p.add("op.product_id = $%d", id)
	}

	order, err := orderClause(orderOrderFields, orderBy, "o.")
	if err != nil {
		return query{}, err
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	if joinProducts {
		b.WriteString("DISTINCT ")
	}
	b.WriteString("o.id, o.customer_id, o.total_amount, o.order_date, o.created_at, o.updated_at FROM orders o")
	if joinCustomer {
		b.WriteString(" JOIN customers c ON c.id = o.customer_id")
	}
	if joinProducts {
		b.WriteString(" JOIN order_products op ON op.order_id = o.id")
	}
	if f.ProductName != "" {
		b.WriteString(" JOIN products p ON p.id = op.product_id")
	}
	b.WriteString(p.whereClause())
	b.WriteString(order)

	return query{sql: b.String(), args: p.args}, nil
}
