package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"asetta-mcp/api"
	"asetta-mcp/chains"
	"asetta-mcp/contracts"
	"asetta-mcp/logging"
	"asetta-mcp/mcp"
	"asetta-mcp/metrics"
	"asetta-mcp/services"
	"asetta-mcp/storage/journal"
	"asetta-mcp/wallet"
)

type config struct {
	Network       string
	PrivateKey    string
	AgentMode     string
	AccessKey     string
	APIBaseURL    string
	OverridesFile string
	StoreDriver   string
	PGDSN         string
	MetricsAddr   string
	LogLevel      string
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func loadConfig() config {
	cfg := config{}
	flag.StringVar(&cfg.Network, "network", envDefault("ASETTA_NETWORK", string(chains.AvalancheFuji)),
		"active network: "+fmt.Sprint(chains.Keys()))
	flag.StringVar(&cfg.PrivateKey, "wallet_private_key", os.Getenv("WALLET_PRIVATE_KEY"),
		"hex private key; an ephemeral key is generated when empty")
	flag.StringVar(&cfg.AgentMode, "agent_mode", envDefault("AGENT_MODE", mcp.AgentModeTokenization),
		"agent mode: legal (read-only + backend) or tokenization (full)")
	flag.StringVar(&cfg.AccessKey, "access_key", os.Getenv("ASETTA_ACCESS_KEY"),
		"Asetta backend access key")
	flag.Parse()

	cfg.APIBaseURL = os.Getenv("ASETTA_API_BASE_URL")
	cfg.OverridesFile = os.Getenv("ASETTA_NETWORK_OVERRIDES")
	cfg.StoreDriver = envDefault("ASETTA_STORE_DRIVER", "memory")
	cfg.PGDSN = os.Getenv("ASETTA_PG_DSN")
	cfg.MetricsAddr = os.Getenv("ASETTA_METRICS_ADDR")
	cfg.LogLevel = envDefault("ASETTA_LOG_LEVEL", "info")
	return cfg
}

func main() {
	cfg := loadConfig()
	log := logging.New(cfg.LogLevel)
	defer log.Sync()

	if cfg.AgentMode != mcp.AgentModeLegal && cfg.AgentMode != mcp.AgentModeTokenization {
		log.Fatal("invalid agent mode", zap.String("agent_mode", cfg.AgentMode))
	}

	if cfg.OverridesFile != "" {
		if err := chains.ApplyOverrides(cfg.OverridesFile); err != nil {
			log.Fatal("failed to apply network overrides", zap.String("file", cfg.OverridesFile), zap.Error(err))
		}
		log.Info("network overrides applied", zap.String("file", cfg.OverridesFile))
	}

	network, err := chains.Get(cfg.Network)
	if err != nil {
		log.Fatal("invalid network", zap.String("network", cfg.Network), zap.Error(err))
	}

	var account *wallet.Account
	if cfg.PrivateKey != "" {
		account, err = wallet.LoadAccount(cfg.PrivateKey)
		if err != nil {
			log.Fatal("invalid wallet private key", zap.Error(err))
		}
	} else {
		account, err = wallet.GenerateAccount()
		if err != nil {
			log.Fatal("failed to generate ephemeral key", zap.Error(err))
		}
		log.Warn("no private key configured, generated ephemeral wallet",
			zap.String("address", account.Address.Hex()))
	}

	ctx := context.Background()
	store, err := journal.Open(ctx, cfg.StoreDriver, cfg.PGDSN)
	if err != nil {
		log.Fatal("failed to open journal store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer store.Close()

	m := metrics.New()
	m.Serve(ctx, cfg.MetricsAddr, log)

	srv := mcp.NewServer(mcp.Deps{
		Network:   network,
		Account:   account,
		API:       api.NewClient(cfg.APIBaseURL, cfg.AccessKey, log),
		Journal:   store,
		Metrics:   m,
		QR:        services.NewQRCodeService(),
		Metadata:  contracts.NewMetadataCache(),
		AgentMode: cfg.AgentMode,
		Log:       log,
	})

	log.Info("Asetta MCP server starting",
		zap.String("network", string(network.Key)),
		zap.String("agent_mode", cfg.AgentMode),
		zap.String("wallet", account.Address.Hex()),
		zap.String("journal_driver", cfg.StoreDriver))

	if err := server.ServeStdio(srv.MCPServer()); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
