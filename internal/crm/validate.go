package crm

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Accepted phone formats: +<country><digits> (1-15 digits total) or
// NNN-NNN-NNNN.
var phonePattern = regexp.MustCompile(`^(\+\d{1,15}|\d{3}-\d{3}-\d{4})$`)

var validate = validator.New()

// NormalizeEmail lower-cases and trims an email so uniqueness checks and
// storage are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateCustomerInput checks the field-level rules for a customer
// creation request and returns every violation found. Uniqueness of the
// email is a store-level check and is handled by the service.
func ValidateCustomerInput(in CustomerInput) []string {
	var violations []string

	if strings.TrimSpace(in.Name) == "" {
		violations = append(violations, MsgNameRequired)
	}
	if err := validate.Var(NormalizeEmail(in.Email), "required,email"); err != nil {
		violations = append(violations, MsgInvalidEmail)
	}
	if in.Phone != "" && !phonePattern.MatchString(in.Phone) {
		violations = append(violations, MsgInvalidPhone)
	}

	return violations
}

// ValidateProductInput checks name, price and stock bounds.
func ValidateProductInput(in ProductInput) []string {
	var violations []string

	if strings.TrimSpace(in.Name) == "" {
		violations = append(violations, MsgNameRequired)
	}
	if !in.Price.IsPositive() {
		violations = append(violations, MsgPricePositive)
	}
	if in.Stock != nil && *in.Stock < 0 {
		violations = append(violations, MsgStockNegative)
	}

	return violations
}
