package allocation

import "fmt"

// AssetClass is the category of an asset. It is informative only, the optimizer works on
// statistics and never on classes.
type AssetClass int

const (
	Other AssetClass = iota
	Stock
	ETF
	Bond
	Crypto
	Commodity
	Option
	Cash
)

func (c AssetClass) String() string {
	switch c {
	case Stock:
		return "stock"
	case ETF:
		return "etf"
	case Bond:
		return "bond"
	case Crypto:
		return "crypto"
	case Commodity:
		return "commodity"
	case Option:
		return "option"
	case Cash:
		return "cash"
	default:
		return "other"
	}
}

// ParseAssetClass parses a string into an AssetClass. The empty string is Other.
func ParseAssetClass(s string) (AssetClass, error) {
	switch s {
	case "", "other":
		return Other, nil
	case "stock":
		return Stock, nil
	case "etf":
		return ETF, nil
	case "bond":
		return Bond, nil
	case "crypto":
		return Crypto, nil
	case "commodity":
		return Commodity, nil
	case "option":
		return Option, nil
	case "cash":
		return Cash, nil
	default:
		return 0, fmt.Errorf("unknown asset class: %q", s)
	}
}

func (c AssetClass) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *AssetClass) UnmarshalText(text []byte) (err error) {
	*c, err = ParseAssetClass(string(text))
	return err
}
