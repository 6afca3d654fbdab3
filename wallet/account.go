package wallet

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Account is the single EVM keypair the agent signs with. Lifetime is the
// process lifetime; ephemeral keys are never persisted.
type Account struct {
	key       *ecdsa.PrivateKey
	Address   common.Address
	Ephemeral bool
}

// LoadAccount parses a hex-encoded private key (with or without 0x prefix).
func LoadAccount(hexKey string) (*Account, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	if trimmed == "" {
		return nil, fmt.Errorf("private key is empty")
	}
	key, err := crypto.HexToECDSA(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return &Account{
		key:     key,
		Address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// GenerateAccount creates a fresh ephemeral keypair.
func GenerateAccount() (*Account, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return &Account{
		key:       key,
		Address:   crypto.PubkeyToAddress(key.PublicKey),
		Ephemeral: true,
	}, nil
}

// PrivateKey exposes the signing key for transactor construction.
func (a *Account) PrivateKey() *ecdsa.PrivateKey {
	return a.key
}
