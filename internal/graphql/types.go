package graphql

import (
	"context"

	gql "github.com/graph-gophers/graphql-go"

	"github.com/WuorBhang/alx-backend-graphql-crm/internal/crm"
)

type customerResolver struct {
	c *crm.Customer
}

func (r *customerResolver) ID() gql.ID          { return gql.ID(r.c.ID.String()) }
func (r *customerResolver) Name() string        { return r.c.Name }
func (r *customerResolver) Email() string       { return r.c.Email }
func (r *customerResolver) CreatedAt() gql.Time { return gql.Time{Time: r.c.CreatedAt} }
func (r *customerResolver) UpdatedAt() gql.Time { return gql.Time{Time: r.c.UpdatedAt} }

func (r *customerResolver) Phone() *string {
	if r.c.Phone == "" {
		return nil
	}
	phone := r.c.Phone
	return &phone
}

type productResolver struct {
	p crm.Product
}

func (r *productResolver) ID() gql.ID          { return gql.ID(r.p.ID.String()) }
func (r *productResolver) Name() string        { return r.p.Name }
func (r *productResolver) Price() Decimal      { return Decimal{r.p.Price} }
func (r *productResolver) Stock() int32        { return r.p.Stock }
func (r *productResolver) CreatedAt() gql.Time { return gql.Time{Time: r.p.CreatedAt} }
func (r *productResolver) UpdatedAt() gql.Time { return gql.Time{Time: r.p.UpdatedAt} }

// orderResolver loads its relations on demand: list queries return plain
// order rows, and the customer/products edges are only fetched when the
// query selects them.
type orderResolver struct {
	svc crm.Service
	o   *crm.Order
}

func (r *orderResolver) ID() gql.ID           { return gql.ID(r.o.ID.String()) }
func (r *orderResolver) TotalAmount() Decimal { return Decimal{r.o.TotalAmount} }
func (r *orderResolver) OrderDate() gql.Time  { return gql.Time{Time: r.o.OrderDate} }
func (r *orderResolver) CreatedAt() gql.Time  { return gql.Time{Time: r.o.CreatedAt} }
func (r *orderResolver) UpdatedAt() gql.Time  { return gql.Time{Time: r.o.UpdatedAt} }

func (r *orderResolver) Customer(ctx context.Context) (*customerResolver, error) {
	if r.o.Customer != nil {
		return &customerResolver{c: r.o.Customer}, nil
	}
	c, err := r.svc.CustomerByID(ctx, r.o.CustomerID)
	if err != nil {
		return nil, err
	}
	return &customerResolver{c: c}, nil
}

func (r *orderResolver) Products(ctx context.Context) ([]*productResolver, error) {
	products := r.o.Products
	if products == nil {
		loaded, err := r.svc.OrderProducts(ctx, r.o.ID)
		if err != nil {
			return nil, err
		}
		products = loaded
	}

	out := make([]*productResolver, 0, len(products))
	for _, p := range products {
		out = append(out, &productResolver{p: p})
	}
	return out, nil
}

// ---- mutation payloads ----

type createCustomerPayload struct {
	res *crm.CreateCustomerResult
}

func (p *createCustomerPayload) Customer() *customerResolver {
	if p.res.Customer == nil {
		return nil
	}
	return &customerResolver{c: p.res.Customer}
}

func (p *createCustomerPayload) Message() *string {
	if p.res.Message == "" {
		return nil
	}
	msg := p.res.Message
	return &msg
}

func (p *createCustomerPayload) Errors() []string {
	return nonNil(p.res.Errors)
}

type bulkCreateCustomersPayload struct {
	res *crm.BulkCreateCustomersResult
}

func (p *bulkCreateCustomersPayload) Customers() []*customerResolver {
	out := make([]*customerResolver, 0, len(p.res.Customers))
	for _, c := range p.res.Customers {
		out = append(out, &customerResolver{c: c})
	}
	return out
}

func (p *bulkCreateCustomersPayload) Errors() []string {
	return nonNil(p.res.Errors)
}

type createProductPayload struct {
	res *crm.CreateProductResult
}

func (p *createProductPayload) Product() *productResolver {
	if p.res.Product == nil {
		return nil
	}
	return &productResolver{p: *p.res.Product}
}

func (p *createProductPayload) Errors() []string {
	return nonNil(p.res.Errors)
}

type createOrderPayload struct {
	svc crm.Service
	res *crm.CreateOrderResult
}

func (p *createOrderPayload) Order() *orderResolver {
	if p.res.Order == nil {
		return nil
	}
	return &orderResolver{svc: p.svc, o: p.res.Order}
}

func (p *createOrderPayload) Errors() []string {
	return nonNil(p.res.Errors)
}

type updateLowStockPayload struct {
	res *crm.UpdateLowStockResult
}

func (p *updateLowStockPayload) Products() []*productResolver {
	out := make([]*productResolver, 0, len(p.res.Products))
	for _, prod := range p.res.Products {
		out = append(out, &productResolver{p: prod})
	}
	return out
}

func (p *updateLowStockPayload) Message() string {
	return p.res.Message
}

func nonNil(errs []string) []string {
	if errs == nil {
		return []string{}
	}
	return errs
}
