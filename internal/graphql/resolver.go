package graphql

import (
	"context"

	gql "github.com/graph-gophers/graphql-go"

	"github.com/WuorBhang/alx-backend-graphql-crm/internal/crm"
)

type Resolver struct {
	svc crm.Service
}

func NewResolver(svc crm.Service) *Resolver {
	return &Resolver{svc: svc}
}

func (r *Resolver) Hello() string {
	return "Hello, GraphQL!"
}

// ---- query arguments ----

type customerFilterArgs struct {
	NameContains  *string
	EmailContains *string
	CreatedAtGte  *gql.Time
	CreatedAtLte  *gql.Time
	PhonePrefix   *string
}

type productFilterArgs struct {
	NameContains *string
	PriceGte     *Decimal
	PriceLte     *Decimal
	StockGte     *int32
	StockLte     *int32
}

type orderFilterArgs struct {
	TotalAmountGte *Decimal
	TotalAmountLte *Decimal
	OrderDateGte   *gql.Time
	OrderDateLte   *gql.Time
	CustomerName   *string
	ProductName    *string
	ProductID      *gql.ID
}

func strOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (a *customerFilterArgs) toFilter() crm.CustomerFilter {
	if a == nil {
		return crm.CustomerFilter{}
	}
	f := crm.CustomerFilter{
		NameContains:  strOf(a.NameContains),
		EmailContains: strOf(a.EmailContains),
		PhonePrefix:   strOf(a.PhonePrefix),
	}
	if a.CreatedAtGte != nil {
		f.CreatedAtGte = &a.CreatedAtGte.Time
	}
	if a.CreatedAtLte != nil {
		f.CreatedAtLte = &a.CreatedAtLte.Time
	}
	return f
}

func (a *productFilterArgs) toFilter() crm.ProductFilter {
	if a == nil {
		return crm.ProductFilter{}
	}
	f := crm.ProductFilter{
		NameContains: strOf(a.NameContains),
		StockGte:     a.StockGte,
		StockLte:     a.StockLte,
	}
	if a.PriceGte != nil {
		f.PriceGte = &a.PriceGte.Decimal
	}
	if a.PriceLte != nil {
		f.PriceLte = &a.PriceLte.Decimal
	}
	return f
}

func (a *orderFilterArgs) toFilter() crm.OrderFilter {
	if a == nil {
		return crm.OrderFilter{}
	}
	f := crm.OrderFilter{
		CustomerName: strOf(a.CustomerName),
		ProductName:  strOf(a.ProductName),
	}
	if a.TotalAmountGte != nil {
		f.TotalAmountGte = &a.TotalAmountGte.Decimal
	}
	if a.TotalAmountLte != nil {
		f.TotalAmountLte = &a.TotalAmountLte.Decimal
	}
	if a.OrderDateGte != nil {
		f.OrderDateGte = &a.OrderDateGte.Time
	}
	if a.OrderDateLte != nil {
		f.OrderDateLte = &a.OrderDateLte.Time
	}
	if a.ProductID != nil {
		f.ProductID = string(*a.ProductID)
	}
	return f
}

// ---- queries ----

func (r *Resolver) AllCustomers(ctx context.Context, args struct {
	Filter  *customerFilterArgs
	OrderBy *string
}) ([]*customerResolver, error) {
	seq, err := r.svc.ListCustomers(ctx, args.Filter.toFilter(), strOf(args.OrderBy))
	if err != nil {
		return nil, err
	}

	out := make([]*customerResolver, 0)
	for c, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, &customerResolver{c: c})
	}
	return out, nil
}

func (r *Resolver) AllProducts(ctx context.Context, args struct {
	Filter  *productFilterArgs
	OrderBy *string
}) ([]*productResolver, error) {
	seq, err := r.svc.ListProducts(ctx, args.Filter.toFilter(), strOf(args.OrderBy))
	if err != nil {
		return nil, err
	}

	out := make([]*productResolver, 0)
	for p, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, &productResolver{p: *p})
	}
	return out, nil
}

func (r *Resolver) AllOrders(ctx context.Context, args struct {
	Filter  *orderFilterArgs
	OrderBy *string
}) ([]*orderResolver, error) {
	seq, err := r.svc.ListOrders(ctx, args.Filter.toFilter(), strOf(args.OrderBy))
	if err != nil {
		return nil, err
	}

	out := make([]*orderResolver, 0)
	for o, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, &orderResolver{svc: r.svc, o: o})
	}
	return out, nil
}

// ---- mutation arguments ----

type customerInputArgs struct {
	Name  string
	Email string
	Phone *string
}

func (a customerInputArgs) toInput() crm.CustomerInput {
	return crm.CustomerInput{
		Name:  a.Name,
		Email: a.Email,
		Phone: strOf(a.Phone),
	}
}

type productInputArgs struct {
	Name  string
	Price Decimal
	Stock *int32
}

type orderInputArgs struct {
	CustomerID gql.ID
	ProductIDs []gql.ID
	OrderDate  *gql.Time
}

// ---- mutations ----

func (r *Resolver) CreateCustomer(ctx context.Context, args struct{ Input customerInputArgs }) (*createCustomerPayload, error) {
	res, err := r.svc.CreateCustomer(ctx, args.Input.toInput())
	if err != nil {
		return nil, err
	}
	return &createCustomerPayload{res: res}, nil
}

func (r *Resolver) BulkCreateCustomers(ctx context.Context, args struct{ Input []customerInputArgs }) (*bulkCreateCustomersPayload, error) {
	in := make([]crm.CustomerInput, 0, len(args.Input))
	for _, entry := range args.Input {
		in = append(in, entry.toInput())
	}

	res, err := r.svc.BulkCreateCustomers(ctx, in)
	if err != nil {
		return nil, err
	}
	return &bulkCreateCustomersPayload{res: res}, nil
}

func (r *Resolver) CreateProduct(ctx context.Context, args struct{ Input productInputArgs }) (*createProductPayload, error) {
	res, err := r.svc.CreateProduct(ctx, crm.ProductInput{
		Name:  args.Input.Name,
		Price: args.Input.Price.Decimal,
		Stock: args.Input.Stock,
	})
	if err != nil {
		return nil, err
	}
	return &createProductPayload{res: res}, nil
}

func (r *Resolver) CreateOrder(ctx context.Context, args struct{ Input orderInputArgs }) (*createOrderPayload, error) {
	in := crm.OrderInput{
		CustomerID: string(args.Input.CustomerID),
		ProductIDs: make([]string, 0, len(args.Input.ProductIDs)),
	}
	for _, id := range args.Input.ProductIDs {
		in.ProductIDs = append(in.ProductIDs, string(id))
	}
	if args.Input.OrderDate != nil {
		in.OrderDate = &args.Input.OrderDate.Time
	}

	res, err := r.svc.CreateOrder(ctx, in)
	if err != nil {
		return nil, err
	}
	return &createOrderPayload{svc: r.svc, res: res}, nil
}

func (r *Resolver) UpdateLowStockProducts(ctx context.Context) (*updateLowStockPayload, error) {
	res, err := r.svc.UpdateLowStockProducts(ctx)
	if err != nil {
		return nil, err
	}
	return &updateLowStockPayload{res: res}, nil
}
