package contracts

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	cache "github.com/patrickmn/go-cache"
)

// TokenMetadata is the immutable-ish token info handlers attach to results.
type TokenMetadata struct {
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// MetadataCache memoizes symbol/decimals lookups per (chain, token). Token
// metadata never changes in practice, so a long TTL is fine.
type MetadataCache struct {
	cache *cache.Cache
}

func NewMetadataCache() *MetadataCache {
	return &MetadataCache{
		cache: cache.New(time.Hour, 10*time.Minute),
	}
}

// Lookup returns the token's symbol and decimals, hitting the chain only on
// cache miss.
func (c *MetadataCache) Lookup(ctx context.Context, chainID int64, token common.Address, backend bind.ContractBackend) (TokenMetadata, error) {
	key := fmt.Sprintf("%d:%s", chainID, token.Hex())
	if cached, ok := c.cache.Get(key); ok {
		return cached.(TokenMetadata), nil
	}

	erc20 := NewERC20(token, backend)
	symbol, err := erc20.Symbol(ctx)
	if err != nil {
		return TokenMetadata{}, err
	}
	decimals, err := erc20.Decimals(ctx)
	if err != nil {
		return TokenMetadata{}, err
	}

	meta := TokenMetadata{Symbol: symbol, Decimals: decimals}
	c.cache.Set(key, meta, cache.DefaultExpiration)
	return meta, nil
}
