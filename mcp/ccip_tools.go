package mcp

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mark3labs/mcp-go/mcp"

	"asetta-mcp/ccip"
	"asetta-mcp/chains"
	"asetta-mcp/contracts"
	"asetta-mcp/storage/journal"
	"asetta-mcp/wallet"
)

// remoteLinkFromArgs builds the optional remote side of a CCIP connection
// from tool arguments. Returns nil when no remote fields were provided.
func remoteLinkFromArgs(toolName string, args map[string]interface{}) (*ccip.RemoteLink, *ToolError) {
	remoteNetwork := toString(args["remote_network"])
	remotePool := toString(args["remote_pool"])
	remoteToken := toString(args["remote_token"])
	if remoteNetwork == "" && remotePool == "" && remoteToken == "" {
		return nil, nil
	}

	net, err := chains.Get(remoteNetwork)
	if err != nil {
		return nil, NewInvalidNetworkError(toolName, remoteNetwork, chains.Keys())
	}
	pool, ok := parseAddress(remotePool)
	if !ok {
		return nil, NewInvalidAddressError(toolName, "remote_pool", remotePool)
	}
	token, ok := parseAddress(remoteToken)
	if !ok {
		return nil, NewInvalidAddressError(toolName, "remote_token", remoteToken)
	}

	return &ccip.RemoteLink{
		ChainSelector: net.Chainlink.ChainSelector,
		Pool:          pool,
		Token:         token,
	}, nil
}

// registerSetupCCIPPoolTool runs the full five-step setup: deploy pool,
// grant roles, register admin, connect the remote chain, validate.
func (s *Server) registerSetupCCIPPoolTool() {
	tool := mcp.NewTool("asetta_setup_ccip_pool",
		mcp.WithDescription("Run the full CCIP setup for an RWA token: deploy pool, grant mint/burn roles, register the token admin, connect the remote chain, and validate. Failed steps are reported and the rest continue; rerun individual step tools to repair a partial setup."),
		mcp.WithString("token", mcp.Required(), mcp.Description("RWA token contract address on the local chain")),
		mcp.WithString("network", mcp.Description("Local network key; defaults to the active network")),
		mcp.WithString("remote_network", mcp.Description("Remote network key (omit to connect chains later)")),
		mcp.WithString("remote_pool", mcp.Description("Remote pool address (required with remote_network)")),
		mcp.WithString("remote_token", mcp.Description("Remote token address (required with remote_network)")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		token, ok := parseAddress(args["token"])
		if !ok {
			return errorResult(NewInvalidAddressError("asetta_setup_ccip_pool", "token", args["token"])), nil
		}
		remote, toolErr := remoteLinkFromArgs("asetta_setup_ccip_pool", args)
		if toolErr != nil {
			return errorResult(toolErr), nil
		}

		agent, toolErr := s.dial(ctx, "asetta_setup_ccip_pool", args)
		if toolErr != nil {
			return errorResult(toolErr), nil
		}
		defer agent.Close()
		net := agent.Network()

		workflow := ccip.NewWorkflow(agent, s.deps.Log)
		result := workflow.Setup(ctx, token, remote)

		var hashes []string
		for _, step := range result.Steps {
			hashes = append(hashes, step.TxHashes...)
		}
		addresses := map[string]string{"token": token.Hex()}
		if result.PoolAddress != "" {
			addresses["pool"] = result.PoolAddress
		}
		s.journalWrite(ctx, &journal.Record{
			Tool:      "asetta_setup_ccip_pool",
			Network:   string(net.Key),
			Status:    result.Status,
			TxHashes:  hashes,
			Addresses: addresses,
		})

		message := "CCIP setup completed"
		switch result.Status {
		case ccip.StatusPartial:
			message = "CCIP setup partially completed; failed steps need a retry"
		case ccip.StatusFailed:
			message = "CCIP setup failed"
		}

		env := newEnvelope(result.Status, message).
			With("token", token.Hex()).
			With("network", string(net.Key)).
			With("steps", result.Steps)
		if result.PoolAddress != "" {
			env.With("pool", result.PoolAddress)
		}
		if failed := ccip.FailedSteps(result.Steps); len(failed) > 0 {
			env.With("failed_steps", failed)
		}
		return env.Result(), nil
	})
}

// registerDeployCCIPPoolTool runs only the pool deployment step.
func (s *Server) registerDeployCCIPPoolTool() {
	tool := mcp.NewTool("asetta_deploy_ccip_pool",
		mcp.WithDescription("Deploy a BurnMintTokenPool for an RWA token via the token factory"),
		mcp.WithString("token", mcp.Required(), mcp.Description("RWA token contract address")),
		mcp.WithString("network", mcp.Description("Network key; defaults to the active network")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		token, ok := parseAddress(args["token"])
		if !ok {
			return errorResult(NewInvalidAddressError("asetta_deploy_ccip_pool", "token", args["token"])), nil
		}

		agent, toolErr := s.dial(ctx, "asetta_deploy_ccip_pool", args)
		if toolErr != nil {
			return errorResult(toolErr), nil
		}
		defer agent.Close()
		net := agent.Network()

		workflow := ccip.NewWorkflow(agent, s.deps.Log)
		pool, txHash, err := workflow.DeployPool(ctx, token)
		if err != nil {
			return errorResult(NewRPCError("asetta_deploy_ccip_pool", err)), nil
		}

		s.journalWrite(ctx, &journal.Record{
			Tool:     "asetta_deploy_ccip_pool",
			Network:  string(net.Key),
			Status:   "success",
			TxHashes: []string{txHash},
			Addresses: map[string]string{
				"token": token.Hex(),
				"pool":  pool.Hex(),
			},
		})

		return newEnvelope("success", "CCIP pool deployed at "+pool.Hex()).
			With("token", token.Hex()).
			With("pool", pool.Hex()).
			With("network", string(net.Key)).
			With("tx", txReport{Hash: txHash, ExplorerURL: net.TxURL(txHash)}).
			With("pool_explorer_url", net.AddressURL(pool.Hex())).
			Result(), nil
	})
}

// registerGrantPoolRolesTool runs only the role grant step.
func (s *Server) registerGrantPoolRolesTool() {
	tool := mcp.NewTool("asetta_grant_pool_roles",
		mcp.WithDescription("Grant mint and burn roles on an RWA token to its CCIP pool"),
		mcp.WithString("token", mcp.Required(), mcp.Description("RWA token contract address")),
		mcp.WithString("pool", mcp.Required(), mcp.Description("CCIP pool address")),
		mcp.WithString("network", mcp.Description("Network key; defaults to the active network")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		token, ok := parseAddress(args["token"])
		if !ok {
			return errorResult(NewInvalidAddressError("asetta_grant_pool_roles", "token", args["token"])), nil
		}
		pool, ok := parseAddress(args["pool"])
		if !ok {
			return errorResult(NewInvalidAddressError("asetta_grant_pool_roles", "pool", args["pool"])), nil
		}

		agent, toolErr := s.dial(ctx, "asetta_grant_pool_roles", args)
		if toolErr != nil {
			return errorResult(toolErr), nil
		}
		defer agent.Close()
		net := agent.Network()

		workflow := ccip.NewWorkflow(agent, s.deps.Log)
		hashes, err := workflow.GrantPoolRoles(ctx, token, pool)
		if err != nil {
			return errorResult(NewRPCError("asetta_grant_pool_roles", err)), nil
		}

		s.journalWrite(ctx, &journal.Record{
			Tool:     "asetta_grant_pool_roles",
			Network:  string(net.Key),
			Status:   "success",
			TxHashes: hashes,
			Addresses: map[string]string{
				"token": token.Hex(),
				"pool":  pool.Hex(),
			},
		})

		return newEnvelope("success", "Mint and burn roles granted to "+pool.Hex()).
			With("token", token.Hex()).
			With("pool", pool.Hex()).
			With("tx_hashes", hashes).
			Result(), nil
	})
}

// registerRegisterCCIPAdminTool runs only the admin registration step.
func (s *Server) registerRegisterCCIPAdminTool() {
	tool := mcp.NewTool("asetta_register_ccip_admin",
		mcp.WithDescription("Register the agent as CCIP token admin and point the registry at the pool (registerAdminViaOwner, acceptAdminRole, setPool)"),
		mcp.WithString("token", mcp.Required(), mcp.Description("RWA token contract address")),
		mcp.WithString("pool", mcp.Required(), mcp.Description("CCIP pool address")),
		mcp.WithString("network", mcp.Description("Network key; defaults to the active network")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		token, ok := parseAddress(args["token"])
		if !ok {
			return errorResult(NewInvalidAddressError("asetta_register_ccip_admin", "token", args["token"])), nil
		}
		pool, ok := parseAddress(args["pool"])
		if !ok {
			return errorResult(NewInvalidAddressError("asetta_register_ccip_admin", "pool", args["pool"])), nil
		}

		agent, toolErr := s.dial(ctx, "asetta_register_ccip_admin", args)
		if toolErr != nil {
			return errorResult(toolErr), nil
		}
		defer agent.Close()
		net := agent.Network()

		workflow := ccip.NewWorkflow(agent, s.deps.Log)
		hashes, err := workflow.RegisterAdmin(ctx, token, pool)
		if err != nil {
			return errorResult(NewRPCError("asetta_register_ccip_admin", err)), nil
		}

		s.journalWrite(ctx, &journal.Record{
			Tool:     "asetta_register_ccip_admin",
			Network:  string(net.Key),
			Status:   "success",
			TxHashes: hashes,
			Addresses: map[string]string{
				"token": token.Hex(),
				"pool":  pool.Hex(),
			},
		})

		return newEnvelope("success", "Token admin registered; registry points at "+pool.Hex()).
			With("token", token.Hex()).
			With("pool", pool.Hex()).
			With("tx_hashes", hashes).
			Result(), nil
	})
}

// registerConnectCCIPChainsTool links a local pool to a remote pool/token.
func (s *Server) registerConnectCCIPChainsTool() {
	tool := mcp.NewTool("asetta_connect_ccip_chains",
		mcp.WithDescription("Connect a local CCIP pool to a remote chain's pool and token (applyChainUpdates). Run once per direction."),
		mcp.WithString("pool", mcp.Required(), mcp.Description("Local CCIP pool address")),
		mcp.WithString("remote_network", mcp.Required(), mcp.Description("Remote network key")),
		mcp.WithString("remote_pool", mcp.Required(), mcp.Description("Remote pool address")),
		mcp.WithString("remote_token", mcp.Required(), mcp.Description("Remote token address")),
		mcp.WithString("network", mcp.Description("Local network key; defaults to the active network")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		pool, ok := parseAddress(args["pool"])
		if !ok {
			return errorResult(NewInvalidAddressError("asetta_connect_ccip_chains", "pool", args["pool"])), nil
		}
		remote, toolErr := remoteLinkFromArgs("asetta_connect_ccip_chains", args)
		if toolErr != nil {
			return errorResult(toolErr), nil
		}
		if remote == nil {
			return errorResult(NewMissingFieldError("asetta_connect_ccip_chains", "remote_network")), nil
		}

		agent, toolErr := s.dial(ctx, "asetta_connect_ccip_chains", args)
		if toolErr != nil {
			return errorResult(toolErr), nil
		}
		defer agent.Close()
		net := agent.Network()

		workflow := ccip.NewWorkflow(agent, s.deps.Log)
		txHash, err := workflow.ConnectChain(ctx, pool, *remote)
		if err != nil {
			return errorResult(NewRPCError("asetta_connect_ccip_chains", err)), nil
		}

		s.journalWrite(ctx, &journal.Record{
			Tool:     "asetta_connect_ccip_chains",
			Network:  string(net.Key),
			Status:   "success",
			TxHashes: []string{txHash},
			Addresses: map[string]string{
				"pool":        pool.Hex(),
				"remote_pool": remote.Pool.Hex(),
			},
		})

		return newEnvelope("success", "Pool "+pool.Hex()+" connected to remote chain").
			With("pool", pool.Hex()).
			With("remote_network", toString(args["remote_network"])).
			With("remote_pool", remote.Pool.Hex()).
			With("remote_token", remote.Token.Hex()).
			With("tx", txReport{Hash: txHash, ExplorerURL: net.TxURL(txHash)}).
			Result(), nil
	})
}

// registerGetCCIPPoolTool looks up the registered pool for a token.
func (s *Server) registerGetCCIPPoolTool() {
	tool := mcp.NewTool("asetta_get_ccip_pool",
		mcp.WithDescription("Look up the CCIP pool and admin registered for a token in the TokenAdminRegistry"),
		mcp.WithString("token", mcp.Required(), mcp.Description("Token contract address")),
		mcp.WithString("network", mcp.Description("Network key; defaults to the active network")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		token, ok := parseAddress(args["token"])
		if !ok {
			return errorResult(NewInvalidAddressError("asetta_get_ccip_pool", "token", args["token"])), nil
		}

		agent, toolErr := s.dial(ctx, "asetta_get_ccip_pool", args)
		if toolErr != nil {
			return errorResult(toolErr), nil
		}
		defer agent.Close()
		net := agent.Network()

		registry := contracts.NewTokenAdminRegistry(common.HexToAddress(net.Chainlink.TokenAdminRegistry), agent.Client())
		config, err := registry.GetTokenConfig(ctx, token)
		if err != nil {
			return errorResult(NewRPCError("asetta_get_ccip_pool", err)), nil
		}

		if config.TokenPool == (common.Address{}) {
			return newEnvelope("success", "No CCIP pool registered for "+token.Hex()).
				With("token", token.Hex()).
				With("network", string(net.Key)).
				With("registered", false).
				Result(), nil
		}

		return newEnvelope("success", "Pool "+config.TokenPool.Hex()+" registered for "+token.Hex()).
			With("token", token.Hex()).
			With("network", string(net.Key)).
			With("registered", true).
			With("pool", config.TokenPool.Hex()).
			With("administrator", config.Administrator.Hex()).
			With("pending_administrator", config.PendingAdministrator.Hex()).
			With("pool_explorer_url", net.AddressURL(config.TokenPool.Hex())).
			Result(), nil
	})
}

// registerValidateCCIPSetupTool reads back both sides of a cross-chain link
// concurrently and reports per-check booleans.
func (s *Server) registerValidateCCIPSetupTool() {
	tool := mcp.NewTool("asetta_validate_ccip_setup",
		mcp.WithDescription("Validate a cross-chain CCIP link by reading back pool registration, chain support, remote token wiring, and token roles on both chains"),
		mcp.WithString("token", mcp.Required(), mcp.Description("Local token address")),
		mcp.WithString("pool", mcp.Required(), mcp.Description("Local pool address")),
		mcp.WithString("remote_network", mcp.Required(), mcp.Description("Remote network key")),
		mcp.WithString("remote_token", mcp.Required(), mcp.Description("Remote token address")),
		mcp.WithString("remote_pool", mcp.Required(), mcp.Description("Remote pool address")),
		mcp.WithString("network", mcp.Description("Local network key; defaults to the active network")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		token, ok := parseAddress(args["token"])
		if !ok {
			return errorResult(NewInvalidAddressError("asetta_validate_ccip_setup", "token", args["token"])), nil
		}
		pool, ok := parseAddress(args["pool"])
		if !ok {
			return errorResult(NewInvalidAddressError("asetta_validate_ccip_setup", "pool", args["pool"])), nil
		}
		remote, toolErr := remoteLinkFromArgs("asetta_validate_ccip_setup", args)
		if toolErr != nil {
			return errorResult(toolErr), nil
		}
		if remote == nil {
			return errorResult(NewMissingFieldError("asetta_validate_ccip_setup", "remote_network")), nil
		}
		remoteNet, err := chains.Get(toString(args["remote_network"]))
		if err != nil {
			return errorResult(NewInvalidNetworkError("asetta_validate_ccip_setup", args["remote_network"], chains.Keys())), nil
		}

		localAgent, toolErr := s.dial(ctx, "asetta_validate_ccip_setup", args)
		if toolErr != nil {
			return errorResult(toolErr), nil
		}
		defer localAgent.Close()

		remoteAgent, err := wallet.Dial(ctx, remoteNet, s.deps.Account, s.deps.Log)
		if err != nil {
			return errorResult(NewRPCError("asetta_validate_ccip_setup", err)), nil
		}
		defer remoteAgent.Close()

		localReport, remoteReport, err := ccip.Validate(ctx, localAgent, remoteAgent, token, pool, remote.Token, remote.Pool)
		if err != nil {
			return errorResult(NewRPCError("asetta_validate_ccip_setup", err)), nil
		}

		healthy := localReport.Healthy() && remoteReport.Healthy()
		status := "success"
		message := "Cross-chain link fully configured"
		if !healthy {
			status = ccip.StatusPartial
			message = "Cross-chain link incomplete; check the per-side reports"
		}

		return newEnvelope(status, message).
			With("healthy", healthy).
			With("local", localReport).
			With("remote", remoteReport).
			Result(), nil
	})
}
