package crm

import "errors"

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrEmailExists      = errors.New("email already exists")
)

// Violation messages returned to callers. Validation, not-found and
// conflict problems are collected into the payload's error list; only
// infrastructure failures propagate as Go errors.
const (
	MsgNameRequired     = "Name is required."
	MsgInvalidEmail     = "Invalid email address."
	MsgEmailExists      = "Email already exists."
	MsgInvalidPhone     = "Invalid phone number format. Use +1234567890 or 123-456-7890."
	MsgPricePositive    = "Price must be positive."
	MsgStockNegative    = "Stock cannot be negative."
	MsgCustomerNotFound = "Customer not found."
	MsgProductsRequired = "At least one product is required."
)
