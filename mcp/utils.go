package mcp

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

func toString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	}
	return 0
}

func toMap(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}

// parseAddress validates and converts a tool argument into an address.
func parseAddress(v interface{}) (common.Address, bool) {
	s := toString(v)
	if !common.IsHexAddress(s) {
		return common.Address{}, false
	}
	return common.HexToAddress(s), true
}

// parseTxHash validates a 0x-prefixed 32-byte transaction hash argument.
func parseTxHash(v interface{}) (common.Hash, bool) {
	s := toString(v)
	if len(s) != 66 || !strings.HasPrefix(s, "0x") {
		return common.Hash{}, false
	}
	for _, c := range s[2:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return common.Hash{}, false
		}
	}
	return common.HexToHash(s), true
}
