package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"asetta-mcp/api"
	"asetta-mcp/chains"
	"asetta-mcp/contracts"
	"asetta-mcp/metrics"
	"asetta-mcp/services"
	"asetta-mcp/storage/journal"
	"asetta-mcp/wallet"
)

// Agent modes gate which tool groups register. Legal agents only talk to
// the project backend and read chain state; tokenization agents get the
// full write surface.
const (
	AgentModeLegal        = "legal"
	AgentModeTokenization = "tokenization"
)

// Deps carries everything the tool handlers need.
type Deps struct {
	Network   chains.Network
	Account   *wallet.Account
	API       *api.Client
	Journal   journal.Store
	Metrics   *metrics.Metrics
	QR        *services.QRCodeService
	Metadata  *contracts.MetadataCache
	AgentMode string
	Log       *zap.Logger
}

// Server wraps the mcp-go server with the Asetta tool catalog.
type Server struct {
	mcpServer *server.MCPServer
	deps      Deps
}

// NewServer builds the MCP server and registers the tool catalog for the
// configured agent mode.
func NewServer(deps Deps) *Server {
	mcpServer := server.NewMCPServer(
		"Asetta RWA MCP Server",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s := &Server{
		mcpServer: mcpServer,
		deps:      deps,
	}
	s.registerTools()
	return s
}

// MCPServer returns the underlying server for transport setup.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// registerTools registers the catalog. Read-only and backend tools are
// available in every mode; on-chain writes require tokenization mode.
func (s *Server) registerTools() {
	// Project backend tools
	s.registerCreateProjectTool()
	s.registerListProjectsTool()
	s.registerGetProjectTool()
	s.registerUpdateProjectTool()
	s.registerGetUserProfileTool()

	// Network / wallet read tools
	s.registerListNetworksTool()
	s.registerNetworkInfoTool()
	s.registerWalletInfoTool()
	s.registerNativeBalanceTool()
	s.registerAddressQRCodeTool()
	s.registerTxStatusTool()

	// Token read tools
	s.registerTokenInfoTool()
	s.registerTokenBalanceTool()
	s.registerTokenAllowanceTool()
	s.registerOnchainProjectInfoTool()
	s.registerGetSaleTool()

	// CCIP read tools
	s.registerGetCCIPPoolTool()
	s.registerValidateCCIPSetupTool()

	// Journal tools
	s.registerDeploymentHistoryTool()
	s.registerGetDeploymentTool()

	if s.deps.AgentMode != AgentModeTokenization {
		s.deps.Log.Info("write tools disabled", zap.String("agent_mode", s.deps.AgentMode))
		return
	}

	// Wallet write tools
	s.registerTransferNativeTool()
	s.registerTransferTokenTool()
	s.registerApproveTokenTool()

	// RWA token lifecycle tools
	s.registerCreateRWATokenTool()
	s.registerMintRWATokenTool()
	s.registerMarkCCIPConfiguredTool()
	s.registerRegisterPrimarySalesTool()
	s.registerActivatePrimarySalesTool()
	s.registerPurchaseTokensTool()

	// CCIP setup tools
	s.registerSetupCCIPPoolTool()
	s.registerDeployCCIPPoolTool()
	s.registerGrantPoolRolesTool()
	s.registerRegisterCCIPAdminTool()
	s.registerConnectCCIPChainsTool()
}

type toolHandler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// addTool registers a tool with invocation metrics around the handler.
// Handlers that return a *ToolError as their error still produce the
// structured error envelope instead of a bare protocol error.
func (s *Server) addTool(tool mcp.Tool, handler toolHandler) {
	s.mcpServer.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		result, err := handler(ctx, request)
		if err != nil {
			if toolErr, ok := IsToolError(err); ok {
				result, err = errorResult(toolErr), nil
			}
		}

		status := "success"
		if err != nil || (result != nil && result.IsError) {
			status = "error"
		}
		if s.deps.Metrics != nil {
			s.deps.Metrics.Observe(tool.Name, status, time.Since(start))
		}
		s.deps.Log.Debug("tool invoked",
			zap.String("tool", tool.Name),
			zap.String("status", status),
			zap.Duration("elapsed", time.Since(start)))
		return result, err
	})
}

// resolveNetwork maps an optional "network" argument to a configuration,
// defaulting to the network the process was started with.
func (s *Server) resolveNetwork(toolName string, args map[string]interface{}) (chains.Network, *ToolError) {
	key := toString(args["network"])
	if key == "" {
		return s.deps.Network, nil
	}
	net, err := chains.Get(key)
	if err != nil {
		return chains.Network{}, NewInvalidNetworkError(toolName, key, chains.Keys())
	}
	return net, nil
}

// dial connects a wallet agent to the requested network for the duration of
// one tool invocation. Callers must Close it.
func (s *Server) dial(ctx context.Context, toolName string, args map[string]interface{}) (*wallet.Agent, *ToolError) {
	net, toolErr := s.resolveNetwork(toolName, args)
	if toolErr != nil {
		return nil, toolErr
	}
	agent, err := wallet.Dial(ctx, net, s.deps.Account, s.deps.Log)
	if err != nil {
		return nil, NewRPCError(toolName, err)
	}
	return agent, nil
}

// journalWrite records a state-changing invocation. Journal failures are
// logged, never surfaced; the chain write already happened.
func (s *Server) journalWrite(ctx context.Context, rec *journal.Record) {
	if s.deps.Journal == nil {
		return
	}
	if err := s.deps.Journal.Append(ctx, rec); err != nil {
		s.deps.Log.Warn("journal append failed", zap.String("tool", rec.Tool), zap.Error(err))
	}
}
