// crm-seed loads a fixed sample data set through the service layer so
// the seeded rows pass the same validation as API traffic.
package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/WuorBhang/alx-backend-graphql-crm/internal/config"
	"github.com/WuorBhang/alx-backend-graphql-crm/internal/crm"
	"github.com/WuorBhang/alx-backend-graphql-crm/internal/db"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "crm-seed").Logger()

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	ctx := context.Background()

	dbConn, err := db.New(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbConn.Close()

	svc := crm.NewService(crm.NewRepository(dbConn.Pool))

	customers := []crm.CustomerInput{
		{Name: "Alice", Email: "alice@example.com", Phone: "+1234567890"},
		{Name: "Bob", Email: "bob@example.com", Phone: "123-456-7890"},
	}
	customerIDs := make([]string, 0, len(customers))
	for _, in := range customers {
		res, err := svc.CreateCustomer(ctx, in)
		if err != nil {
			log.Fatal().Err(err).Str("email", in.Email).Msg("Failed to seed customer")
		}
		if len(res.Errors) > 0 {
			log.Warn().Strs("errors", res.Errors).Str("email", in.Email).Msg("Customer skipped")
			continue
		}
		customerIDs = append(customerIDs, res.Customer.ID.String())
	}

	stock5 := int32(5)
	stock50 := int32(50)
	products := []crm.ProductInput{
		{Name: "Laptop", Price: decimal.RequireFromString("999.99"), Stock: &stock5},
		{Name: "Mouse", Price: decimal.RequireFromString("25.50"), Stock: &stock50},
	}
	productIDs := make([]string, 0, len(products))
	for _, in := range products {
		res, err := svc.CreateProduct(ctx, in)
		if err != nil {
			log.Fatal().Err(err).Str("name", in.Name).Msg("Failed to seed product")
		}
		if len(res.Errors) > 0 {
			log.Warn().Strs("errors", res.Errors).Str("name", in.Name).Msg("Product skipped")
			continue
		}
		productIDs = append(productIDs, res.Product.ID.String())
	}

	if len(customerIDs) > 0 && len(productIDs) > 0 {
		res, err := svc.CreateOrder(ctx, crm.OrderInput{
			CustomerID: customerIDs[0],
			ProductIDs: productIDs,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to seed order")
		}
		if len(res.Errors) > 0 {
			log.Warn().Strs("errors", res.Errors).Msg("Order skipped")
		} else {
			log.Info().
				Stringer("order_id", res.Order.ID).
				Str("total_amount", res.Order.TotalAmount.StringFixed(2)).
				Msg("Order seeded")
		}
	}

	log.Info().Msg("Database seeded with sample data")
}
