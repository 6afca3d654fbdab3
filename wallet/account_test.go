package wallet

import (
	"strings"
	"testing"
)

func TestLoadAccount(t *testing.T) {
	// Well-known anvil/hardhat dev key, account #0.
	const devKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	const devAddr = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

	t.Run("plain_hex", func(t *testing.T) {
		acct, err := LoadAccount(devKey)
		if err != nil {
			t.Fatalf("LoadAccount: %v", err)
		}
		if acct.Address.Hex() != devAddr {
			t.Fatalf("derived address %s, want %s", acct.Address.Hex(), devAddr)
		}
		if acct.Ephemeral {
			t.Fatal("loaded account must not be marked ephemeral")
		}
	})

	t.Run("0x_prefix", func(t *testing.T) {
		acct, err := LoadAccount("0x" + devKey)
		if err != nil {
			t.Fatalf("LoadAccount with prefix: %v", err)
		}
		if acct.Address.Hex() != devAddr {
			t.Fatalf("derived address %s, want %s", acct.Address.Hex(), devAddr)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, v := range []string{"", "  ", "0x", "zzzz", devKey[:10]} {
			if _, err := LoadAccount(v); err == nil {
				t.Fatalf("expected error for %q", v)
			}
		}
	})
}

func TestGenerateAccount(t *testing.T) {
	a, err := GenerateAccount()
	if err != nil {
		t.Fatalf("GenerateAccount: %v", err)
	}
	if !a.Ephemeral {
		t.Fatal("generated account must be ephemeral")
	}
	if !strings.HasPrefix(a.Address.Hex(), "0x") || len(a.Address.Hex()) != 42 {
		t.Fatalf("unexpected address: %s", a.Address.Hex())
	}

	b, _ := GenerateAccount()
	if a.Address == b.Address {
		t.Fatal("two generated accounts share an address")
	}
}
