package chains

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	t.Run("known_networks", func(t *testing.T) {
		for _, key := range []string{"avalancheFuji", "ethereumSepolia", "arbitrumSepolia"} {
			net, err := Get(key)
			if err != nil {
				t.Fatalf("Get(%s): %v", key, err)
			}
			if net.RPCURL == "" || net.ChainID == 0 {
				t.Fatalf("incomplete config for %s: %+v", key, net)
			}
			if net.Chainlink.Router == "" || net.Chainlink.ChainSelector == 0 {
				t.Fatalf("incomplete chainlink config for %s", key)
			}
			if net.Contracts.RWAManager == "" || net.Contracts.TokenFactory == "" {
				t.Fatalf("incomplete contract addresses for %s", key)
			}
		}
	})

	t.Run("case_insensitive", func(t *testing.T) {
		if _, err := Get("AVALANCHEFUJI"); err != nil {
			t.Fatalf("expected case-insensitive lookup: %v", err)
		}
	})

	t.Run("unknown_network", func(t *testing.T) {
		_, err := Get("mainnet")
		if err == nil {
			t.Fatal("expected error for unsupported network")
		}
		if !strings.Contains(err.Error(), "supported:") {
			t.Fatalf("error should list supported networks, got: %v", err)
		}
	})
}

func TestBySelector(t *testing.T) {
	fuji, _ := Get("avalancheFuji")
	net, err := BySelector(fuji.Chainlink.ChainSelector)
	if err != nil {
		t.Fatalf("BySelector: %v", err)
	}
	if net.Key != AvalancheFuji {
		t.Fatalf("expected avalancheFuji, got %s", net.Key)
	}

	if _, err := BySelector(1); err == nil {
		t.Fatal("expected error for unknown selector")
	}
}

func TestExplorerURLs(t *testing.T) {
	net, _ := Get("ethereumSepolia")
	tx := net.TxURL("0xabc")
	if tx != "https://sepolia.etherscan.io/tx/0xabc" {
		t.Fatalf("unexpected tx url: %s", tx)
	}
	addr := net.AddressURL("0xdef")
	if addr != "https://sepolia.etherscan.io/address/0xdef" {
		t.Fatalf("unexpected address url: %s", addr)
	}
}

func TestApplyOverrides(t *testing.T) {
	orig, _ := Get("avalancheFuji")
	defer func() { networks[AvalancheFuji] = orig }()

	dir := t.TempDir()
	path := filepath.Join(dir, "networks.yaml")
	content := `networks:
  avalancheFuji:
    rpcUrl: https://fuji.example.test/rpc
    contracts:
      rwaManager: "0x0000000000000000000000000000000000000001"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ApplyOverrides(path); err != nil {
		t.Fatalf("ApplyOverrides: %v", err)
	}

	net, _ := Get("avalancheFuji")
	if net.RPCURL != "https://fuji.example.test/rpc" {
		t.Fatalf("rpc override not applied: %s", net.RPCURL)
	}
	if net.Contracts.RWAManager != "0x0000000000000000000000000000000000000001" {
		t.Fatalf("contract override not applied: %s", net.Contracts.RWAManager)
	}
	// Untouched fields keep their defaults.
	if net.ChainID != orig.ChainID || net.Chainlink.Router != orig.Chainlink.Router {
		t.Fatal("override clobbered unrelated fields")
	}

	t.Run("unknown_key_rejected", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(bad, []byte("networks:\n  mainnet:\n    rpcUrl: x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := ApplyOverrides(bad); err == nil {
			t.Fatal("expected error for unknown network key")
		}
	})
}
