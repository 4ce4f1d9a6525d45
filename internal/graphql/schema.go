// Package graphql exposes the CRM service over GraphQL. Resolvers are
// thin glue: they convert scalars and delegate every decision to the
// service layer.
package graphql

import (
	graphqlgo "github.com/graph-gophers/graphql-go"

	"github.com/WuorBhang/alx-backend-graphql-crm/internal/crm"
)

// Schema is the full SDL served at /graphql.
const Schema = `
	schema {
		query: Query
		mutation: Mutation
	}

	scalar Time
	scalar Decimal

	type Query {
		hello: String!
		allCustomers(filter: CustomerFilter, orderBy: String): [Customer!]!
		allProducts(filter: ProductFilter, orderBy: String): [Product!]!
		allOrders(filter: OrderFilter, orderBy: String): [Order!]!
	}

	type Mutation {
		createCustomer(input: CustomerInput!): CreateCustomerPayload!
		bulkCreateCustomers(input: [CustomerInput!]!): BulkCreateCustomersPayload!
		createProduct(input: ProductInput!): CreateProductPayload!
		createOrder(input: OrderInput!): CreateOrderPayload!
		updateLowStockProducts: UpdateLowStockPayload!
	}

	type Customer {
		id: ID!
		name: String!
		email: String!
		phone: String
		createdAt: Time!
		updatedAt: Time!
	}

	type Product {
		id: ID!
		name: String!
		price: Decimal!
		stock: Int!
		createdAt: Time!
		updatedAt: Time!
	}

	type Order {
		id: ID!
		customer: Customer!
		products: [Product!]!
		totalAmount: Decimal!
		orderDate: Time!
		createdAt: Time!
		updatedAt: Time!
	}

	input CustomerInput {
		name: String!
		email: String!
		phone: String
	}

	input ProductInput {
		name: String!
		price: Decimal!
		stock: Int
	}

	input OrderInput {
		customerId: ID!
		productIds: [ID!]!
		orderDate: Time
	}

	input CustomerFilter {
		nameContains: String
		emailContains: String
		createdAtGte: Time
		createdAtLte: Time
		phonePrefix: String
	}

	input ProductFilter {
		nameContains: String
		priceGte: Decimal
		priceLte: Decimal
		stockGte: Int
		stockLte: Int
	}

	input OrderFilter {
		totalAmountGte: Decimal
		totalAmountLte: Decimal
		orderDateGte: Time
		orderDateLte: Time
		customerName: String
		productName: String
		productId: ID
	}

	type CreateCustomerPayload {
		customer: Customer
		message: String
		errors: [String!]!
	}

	type BulkCreateCustomersPayload {
		customers: [Customer!]!
		errors: [String!]!
	}

	type CreateProductPayload {
		product: Product
		errors: [String!]!
	}

	type CreateOrderPayload {
		order: Order
		errors: [String!]!
	}

	type UpdateLowStockPayload {
		products: [Product!]!
		message: String!
	}
`

// NewSchema parses the SDL against a resolver bound to svc.
func NewSchema(svc crm.Service) (*graphqlgo.Schema, error) {
	return graphqlgo.ParseSchema(Schema, NewResolver(svc))
}
