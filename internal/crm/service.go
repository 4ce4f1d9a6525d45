package crm

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Stock-replenishment policy: every product below the threshold gets the
// increment added when updateLowStockProducts runs.
const (
	lowStockThreshold = 10
	lowStockIncrement = 10
)

// Result payloads. Each is either fully populated (entity set, Errors
// empty) or fully empty (entity nil, Errors non-empty), never a hybrid.

type CreateCustomerResult struct {
	Customer *Customer
	Message  string
	Errors   []string
}

type BulkCreateCustomersResult struct {
	Customers []*Customer
	Errors    []string
}

type CreateProductResult struct {
	Product *Product
	Errors  []string
}

type CreateOrderResult struct {
	Order  *Order
	Errors []string
}

type UpdateLowStockResult struct {
	Products []Product
	Message  string
}

// Service coordinates validation, persistence and derived-field
// computation. Domain violations land in the result payloads; an error
// return always means the operation could not be attempted safely.
type Service interface {
	CreateCustomer(ctx context.Context, in CustomerInput) (*CreateCustomerResult, error)
	BulkCreateCustomers(ctx context.Context, in []CustomerInput) (*BulkCreateCustomersResult, error)
	CreateProduct(ctx context.Context, in ProductInput) (*CreateProductResult, error)
	CreateOrder(ctx context.Context, in OrderInput) (*CreateOrderResult, error)
	UpdateLowStockProducts(ctx context.Context) (*UpdateLowStockResult, error)

	ListCustomers(ctx context.Context, f CustomerFilter, orderBy string) (iter.Seq2[*Customer, error], error)
	ListProducts(ctx context.Context, f ProductFilter, orderBy string) (iter.Seq2[*Product, error], error)
	ListOrders(ctx context.Context, f OrderFilter, orderBy string) (iter.Seq2[*Order, error], error)

	CustomerByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	OrderProducts(ctx context.Context, orderID uuid.UUID) ([]Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// customerViolations runs the field-level rules plus the uniqueness check
// so the caller sees every problem at once. The uniqueness probe is
// skipped for syntactically invalid emails.
func (s *service) customerViolations(ctx context.Context, in CustomerInput) ([]string, error) {
	violations := ValidateCustomerInput(in)

	emailValid := true
	for _, v := range violations {
		if v == MsgInvalidEmail {
			emailValid = false
		}
	}
	if emailValid {
		exists, err := s.repo.EmailExists(ctx, NormalizeEmail(in.Email))
		if err != nil {
			return nil, fmt.Errorf("service: failed to check email uniqueness: %w", err)
		}
		if exists {
			violations = append(violations, MsgEmailExists)
		}
	}

	return violations, nil
}

func (s *service) CreateCustomer(ctx context.Context, in CustomerInput) (*CreateCustomerResult, error) {
	violations, err := s.customerViolations(ctx, in)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		return &CreateCustomerResult{Errors: violations}, nil
	}

	c := &Customer{
		Name:  strings.TrimSpace(in.Name),
		Email: NormalizeEmail(in.Email),
		Phone: in.Phone,
	}
	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		// A concurrent insert can still win the uniqueness race.
		if errors.Is(err, ErrEmailExists) {
			return &CreateCustomerResult{Errors: []string{MsgEmailExists}}, nil
		}
		return nil, fmt.Errorf("service: failed to create customer: %w", err)
	}

	log.Info().Stringer("customer_id", c.ID).Str("email", c.Email).Msg("customer created")

	return &CreateCustomerResult{
		Customer: c,
		Message:  "Customer created successfully!",
	}, nil
}

// BulkCreateCustomers persists each entry independently: valid rows go in,
// invalid rows are skipped and reported with their index. A row failing
// validation never aborts the batch; only store-level failures do.
func (s *service) BulkCreateCustomers(ctx context.Context, in []CustomerInput) (*BulkCreateCustomersResult, error) {
	result := &BulkCreateCustomersResult{
		Customers: make([]*Customer, 0, len(in)),
		Errors:    make([]string, 0),
	}

	for idx, entry := range in {
		violations, err := s.customerViolations(ctx, entry)
		if err != nil {
			return nil, err
		}
		if len(violations) > 0 {
			result.Errors = append(result.Errors, bulkRowError(idx, entry.Email, violations))
			continue
		}

		c := &Customer{
			Name:  strings.TrimSpace(entry.Name),
			Email: NormalizeEmail(entry.Email),
			Phone: entry.Phone,
		}
		if err := s.repo.CreateCustomer(ctx, c); err != nil {
			if errors.Is(err, ErrEmailExists) {
				// Duplicate within the batch itself, or a concurrent
				// writer. Report the row, keep going.
				result.Errors = append(result.Errors, bulkRowError(idx, entry.Email, []string{MsgEmailExists}))
				continue
			}
			return nil, fmt.Errorf("service: failed to create customer at index %d: %w", idx, err)
		}
		result.Customers = append(result.Customers, c)
	}

	log.Info().
		Int("created", len(result.Customers)).
		Int("failed", len(result.Errors)).
		Msg("bulk customer creation finished")

	return result, nil
}

func bulkRowError(idx int, email string, violations []string) string {
	return fmt.Sprintf("Error at index %d (%s): %s", idx, email, strings.Join(violations, " "))
}

func (s *service) CreateProduct(ctx context.Context, in ProductInput) (*CreateProductResult, error) {
	violations := ValidateProductInput(in)
	if len(violations) > 0 {
		return &CreateProductResult{Errors: violations}, nil
	}

	p := &Product{
		Name:  strings.TrimSpace(in.Name),
		Price: in.Price,
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("service: failed to create product: %w", err)
	}

	log.Info().Stringer("product_id", p.ID).Str("name", p.Name).Msg("product created")

	return &CreateProductResult{Product: p}, nil
}

// CreateOrder resolves the referenced customer and products, then
// persists the order, its associations and the derived total atomically.
// The total is the sum of the resolved products' prices at this moment;
// it is not recomputed afterwards.
func (s *service) CreateOrder(ctx context.Context, in OrderInput) (*CreateOrderResult, error) {
	var violations []string

	customer, err := s.resolveCustomer(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		violations = append(violations, MsgCustomerNotFound)
	}

	products, productViolations, err := s.resolveProducts(ctx, in.ProductIDs)
	if err != nil {
		return nil, err
	}
	violations = append(violations, productViolations...)

	if len(violations) > 0 {
		return &CreateOrderResult{Errors: violations}, nil
	}

	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}

	orderDate := time.Now().UTC()
	if in.OrderDate != nil {
		orderDate = in.OrderDate.UTC()
	}

	o := &Order{
		CustomerID:  customer.ID,
		Customer:    customer,
		Products:    products,
		TotalAmount: total,
		OrderDate:   orderDate,
	}
	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("service: failed to create order: %w", err)
	}

	log.Info().
		Stringer("order_id", o.ID).
		Stringer("customer_id", o.CustomerID).
		Str("total_amount", o.TotalAmount.StringFixed(2)).
		Msg("order created")

	return &CreateOrderResult{Order: o}, nil
}

// resolveCustomer returns nil (not an error) when the id is malformed or
// unknown; both cases read as "Customer not found" to the caller.
func (s *service) resolveCustomer(ctx context.Context, rawID string) (*Customer, error) {
	id, err := uuid.FromString(rawID)
	if err != nil {
		return nil, nil
	}
	customer, err := s.repo.CustomerByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("service: failed to resolve customer: %w", err)
	}
	return customer, nil
}

// resolveProducts parses and resolves every product id. Any id that does
// not parse or does not exist invalidates the whole order; the violation
// enumerates the offending ids.
func (s *service) resolveProducts(ctx context.Context, rawIDs []string) ([]Product, []string, error) {
	if len(rawIDs) == 0 {
		return nil, []string{MsgProductsRequired}, nil
	}

	var bad []string
	ids := make([]uuid.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := uuid.FromString(raw)
		if err != nil {
			bad = append(bad, raw)
			continue
		}
		ids = append(ids, id)
	}

	products, err := s.repo.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("service: failed to resolve products: %w", err)
	}

	found := make(map[uuid.UUID]bool, len(products))
	for _, p := range products {
		found[p.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			bad = append(bad, id.String())
		}
	}

	if len(bad) > 0 {
		return nil, []string{fmt.Sprintf("Invalid product ID(s): %s", strings.Join(bad, ", "))}, nil
	}
	return products, nil, nil
}

func (s *service) UpdateLowStockProducts(ctx context.Context) (*UpdateLowStockResult, error) {
	products, err := s.repo.UpdateLowStock(ctx, lowStockThreshold, lowStockIncrement)
	if err != nil {
		return nil, fmt.Errorf("service: failed to update low stock products: %w", err)
	}

	log.Info().Int("updated", len(products)).Msg("low stock products replenished")

	return &UpdateLowStockResult{
		Products: products,
		Message:  fmt.Sprintf("Updated %d low stock product(s)", len(products)),
	}, nil
}

func (s *service) ListCustomers(ctx context.Context, f CustomerFilter, orderBy string) (iter.Seq2[*Customer, error], error) {
	return s.repo.Customers(ctx, f, orderBy)
}

func (s *service) ListProducts(ctx context.Context, f ProductFilter, orderBy string) (iter.Seq2[*Product, error], error) {
	return s.repo.Products(ctx, f, orderBy)
}

func (s *service) ListOrders(ctx context.Context, f OrderFilter, orderBy string) (iter.Seq2[*Order, error], error) {
	return s.repo.Orders(ctx, f, orderBy)
}

func (s *service) CustomerByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	return s.repo.CustomerByID(ctx, id)
}

func (s *service) OrderProducts(ctx context.Context, orderID uuid.UUID) ([]Product, error) {
	return s.repo.ProductsByOrderID(ctx, orderID)
}
