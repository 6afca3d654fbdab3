package wallet

import (
	"fmt"
	"math/big"
	"strings"
)

// FormatUnits converts a raw token amount to a human-readable decimal string.
// Example: amount=1234500000000000000, decimals=18 => "1.2345".
func FormatUnits(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	if decimals == 0 {
		return amount.String()
	}

	divisor := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	value := new(big.Float).Quo(new(big.Float).SetInt(amount), divisor)

	s := value.Text('f', int(decimals))
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// ParseUnits converts a decimal string ("1.5") to a raw token amount at the
// given decimals. Rejects negative values and excess fractional digits.
func ParseUnits(value string, decimals uint8) (*big.Int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, fmt.Errorf("amount is empty")
	}
	if strings.HasPrefix(trimmed, "-") {
		return nil, fmt.Errorf("amount must be positive: %s", value)
	}

	whole := trimmed
	frac := ""
	if idx := strings.IndexByte(trimmed, '.'); idx >= 0 {
		whole, frac = trimmed[:idx], trimmed[idx+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > int(decimals) {
		return nil, fmt.Errorf("amount %s has more than %d decimal places", value, decimals)
	}

	digits := whole + frac + strings.Repeat("0", int(decimals)-len(frac))
	out, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount: %s", value)
	}
	return out, nil
}
