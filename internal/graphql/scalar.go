package graphql

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Decimal maps the Decimal scalar onto shopspring/decimal so monetary
// values never pass through binary floating point on the way to or from
// the store. Serialized as a string with two fractional digits.
type Decimal struct {
	decimal.Decimal
}

func (Decimal) ImplementsGraphQLType(name string) bool {
	return name == "Decimal"
}

func (d *Decimal) UnmarshalGraphQL(input interface{}) error {
	switch v := input.(type) {
	case string:
		dec, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("invalid decimal %q: %w", v, err)
		}
		d.Decimal = dec
	case int32:
		d.Decimal = decimal.NewFromInt32(v)
	case int:
		d.Decimal = decimal.NewFromInt(int64(v))
	case float64:
		d.Decimal = decimal.NewFromFloat(v)
	default:
		return fmt.Errorf("cannot unmarshal %T into Decimal", input)
	}
	return nil
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.StringFixed(2) + `"`), nil
}
