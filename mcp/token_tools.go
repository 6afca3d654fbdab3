package mcp

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mark3labs/mcp-go/mcp"

	"asetta-mcp/contracts"
	"asetta-mcp/storage/journal"
	"asetta-mcp/wallet"
)

// registerTokenInfoTool reads symbol, decimals, and supply of any ERC20.
func (s *Server) registerTokenInfoTool() {
	tool := mcp.NewTool("asetta_token_info",
		mcp.WithDescription("Get symbol, decimals, and total supply of an ERC20 token"),
		mcp.WithString("token", mcp.Required(), mcp.Description("Token contract address")),
		mcp.WithString("network", mcp.Description("Network key; defaults to the active network")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		token, ok := parseAddress(args["token"])
		if !ok {
			return errorResult(NewInvalidAddressError("asetta_token_info", "token", args["token"])), nil
		}

		agent, toolErr := s.dial(ctx, "asetta_token_info", args)
		if toolErr != nil {
			return errorResult(toolErr), nil
		}
		defer agent.Close()
		net := agent.Network()

		meta, err := s.deps.Metadata.Lookup(ctx, net.ChainID, token, agent.Client())
		if err != nil {
			return errorResult(NewRPCError("asetta_token_info", err)), nil
		}
		supply, err := contracts.NewERC20(token, agent.Client()).TotalSupply(ctx)
		if err != nil {
			return errorResult(NewRPCError("asetta_token_info", err)), nil
		}

		return newEnvelope("success", meta.Symbol+" token at "+token.Hex()).
			With("token", token.Hex()).
			With("network", string(net.Key)).
			With("symbol", meta.Symbol).
			With("decimals", meta.Decimals).
			With("total_supply", wallet.FormatUnits(supply, meta.Decimals)).
			With("explorer_url", net.AddressURL(token.Hex())).
			Result(), nil
	})
}

// registerTokenBalanceTool reads an ERC20 balance.
func (s *Server) registerTokenBalanceTool() {
	tool := mcp.NewTool("asetta_token_balance",
		mcp.WithDescription("Get the ERC20 token balance of an address"),
		mcp.WithString("token", mcp.Required(), mcp.Description("Token contract address")),
		mcp.WithString("address", mcp.Description("Holder address; defaults to the agent wallet")),
		mcp.WithString("network", mcp.Description("Network key; defaults to the active network")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		token, ok := parseAddress(args["token"])
		if !ok {
			return errorResult(NewInvalidAddressError("asetta_token_balance", "token", args["token"])), nil
		}

		agent, toolErr := s.dial(ctx, "asetta_token_balance", args)
		if toolErr != nil {
			return errorResult(toolErr), nil
		}
		defer agent.Close()
		net := agent.Network()

		holder := agent.Address()
		if raw := toString(args["address"]); raw != "" {
			parsed, ok := parseAddress(raw)
			if !ok {
				return errorResult(NewInvalidAddressError("asetta_token_balance", "address", raw)), nil
			}
			holder = parsed
		}

		meta, err := s.deps.Metadata.Lookup(ctx, net.ChainID, token, agent.Client())
		if err != nil {
			return errorResult(NewRPCError("asetta_token_balance", err)), nil
		}
		balance, err := contracts.NewERC20(token, agent.Client()).BalanceOf(ctx, holder)
		if err != nil {
			return errorResult(NewRPCError("asetta_token_balance", err)), nil
		}

		return newEnvelope("success", wallet.FormatUnits(balance, meta.Decimals)+" "+meta.Symbol).
			With("token", token.Hex()).
			With("address", holder.Hex()).
			With("network", string(net.Key)).
			With("symbol", meta.Symbol).
			With("balance", wallet.FormatUnits(balance, meta.Decimals)).
			With("balance_raw", balance.String()).
			Result(), nil
	})
}

// registerTokenAllowanceTool reads an ERC20 allowance.
func (s *Server) registerTokenAllowanceTool() {
	tool := mcp.NewTool("asetta_token_allowance",
		mcp.WithDescription("Get the ERC20 allowance granted by an owner to a spender"),
		mcp.WithString("token", mcp.Required(), mcp.Description("Token contract address")),
		mcp.WithString("spender", mcp.Required(), mcp.Description("Spender address")),
		mcp.WithString("owner", mcp.Description("Owner address; defaults to the agent wallet")),
		mcp.WithString("network", mcp.Description("Network key; defaults to the active network")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		token, ok := parseAddress(args["token"])
		if !ok {
			return errorResult(NewInvalidAddressError("asetta_token_allowance", "token", args["token"])), nil
		}
		spender, ok := parseAddress(args["spender"])
		if !ok {
			return errorResult(NewInvalidAddressError("asetta_token_allowance", "spender", args["spender"])), nil
		}

		agent, toolErr := s.dial(ctx, "asetta_token_allowance", args)
		if toolErr != nil {
			return errorResult(toolErr), nil
		}
		defer agent.Close()
		net := agent.Network()

		owner := agent.Address()
		if raw := toString(args["owner"]); raw != "" {
			parsed, ok := parseAddress(raw)
			if !ok {
				return errorResult(NewInvalidAddressError("asetta_token_allowance", "owner", raw)), nil
			}
			owner = parsed
		}

		meta, err := s.deps.Metadata.Lookup(ctx, net.ChainID, token, agent.Client())
		if err != nil {
			return errorResult(NewRPCError("asetta_token_allowance", err)), nil
		}
		allowance, err := contracts.NewERC20(token, agent.Client()).Allowance(ctx, owner, spender)
		if err != nil {
			return errorResult(NewRPCError("asetta_token_allowance", err)), nil
		}

		return newEnvelope("success", owner.Hex()+" allows "+spender.Hex()+" to spend "+wallet.FormatUnits(allowance, meta.Decimals)+" "+meta.Symbol).
			With("token", token.Hex()).
			With("owner", owner.Hex()).
			With("spender", spender.Hex()).
			With("allowance", wallet.FormatUnits(allowance, meta.Decimals)).
			With("allowance_raw", allowance.String()).
			Result(), nil
	})
}

// registerTransferTokenTool sends an ERC20 transfer from the agent wallet.
func (s *Server) registerTransferTokenTool() {
	tool := mcp.NewTool("asetta_transfer_token",
		mcp.WithDescription("Transfer ERC20 tokens from the agent wallet"),
		mcp.WithString("token", mcp.Required(), mcp.Description("Token contract address")),
		mcp.WithString("to", mcp.Required(), mcp.Description("Recipient address")),
		mcp.WithString("amount", mcp.Required(), mcp.Description("Amount in token units, e.g. \"100.5\"")),
		mcp.WithString("network", mcp.Description("Network key; defaults to the active network")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.runTokenWrite(ctx, request, "asetta_transfer_token", "to",
			func(erc20 *contracts.ERC20, agent *wallet.Agent, counterparty common.Address, amount *big.Int) (txHash string, err error) {
				opts, err := agent.TransactOpts(ctx)
				if err != nil {
					return "", err
				}
				tx, err := erc20.Transfer(opts, counterparty, amount)
				if err != nil {
					return "", err
				}
				_, err = agent.SubmitAndWait(ctx, tx)
				return tx.Hash().Hex(), err
			})
	})
}

// registerApproveTokenTool approves a spender for the agent wallet.
func (s *Server) registerApproveTokenTool() {
	tool := mcp.NewTool("asetta_approve_token",
		mcp.WithDescription("Approve a spender to transfer ERC20 tokens on behalf of the agent wallet"),
		mcp.WithString("token", mcp.Required(), mcp.Description("Token contract address")),
		mcp.WithString("spender", mcp.Required(), mcp.Description("Spender address, e.g. the primary distribution contract")),
		mcp.WithString("amount", mcp.Required(), mcp.Description("Amount in token units")),
		mcp.WithString("network", mcp.Description("Network key; defaults to the active network")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.runTokenWrite(ctx, request, "asetta_approve_token", "spender",
			func(erc20 *contracts.ERC20, agent *wallet.Agent, counterparty common.Address, amount *big.Int) (txHash string, err error) {
				opts, err := agent.TransactOpts(ctx)
				if err != nil {
					return "", err
				}
				tx, err := erc20.Approve(opts, counterparty, amount)
				if err != nil {
					return "", err
				}
				_, err = agent.SubmitAndWait(ctx, tx)
				return tx.Hash().Hex(), err
			})
	})
}

// runTokenWrite is the shared transfer/approve path: validate, dial, resolve
// decimals, submit, wait, journal.
func (s *Server) runTokenWrite(ctx context.Context, request mcp.CallToolRequest, toolName, counterpartyField string,
	submit func(erc20 *contracts.ERC20, agent *wallet.Agent, counterparty common.Address, amount *big.Int) (string, error)) (*mcp.CallToolResult, error) {

	args := request.GetArguments()

	token, ok := parseAddress(args["token"])
	if !ok {
		return errorResult(NewInvalidAddressError(toolName, "token", args["token"])), nil
	}
	counterparty, ok := parseAddress(args[counterpartyField])
	if !ok {
		return errorResult(NewInvalidAddressError(toolName, counterpartyField, args[counterpartyField])), nil
	}

	agent, toolErr := s.dial(ctx, toolName, args)
	if toolErr != nil {
		return errorResult(toolErr), nil
	}
	defer agent.Close()
	net := agent.Network()

	meta, err := s.deps.Metadata.Lookup(ctx, net.ChainID, token, agent.Client())
	if err != nil {
		return errorResult(NewRPCError(toolName, err)), nil
	}
	amount, err := wallet.ParseUnits(toString(args["amount"]), meta.Decimals)
	if err != nil {
		return errorResult(NewInvalidAmountError(toolName, "amount", err)), nil
	}

	erc20 := contracts.NewERC20(token, agent.Client())
	txHash, err := submit(erc20, agent, counterparty, amount)
	if err != nil {
		return errorResult(NewRPCError(toolName, err)), nil
	}

	s.journalWrite(ctx, &journal.Record{
		Tool:     toolName,
		Network:  string(net.Key),
		Status:   "success",
		TxHashes: []string{txHash},
		Addresses: map[string]string{
			"token":           token.Hex(),
			counterpartyField: counterparty.Hex(),
		},
	})

	return newEnvelope("success", fmt.Sprintf("%s %s %s (%s)", toolName, toString(args["amount"]), meta.Symbol, counterparty.Hex())).
		With("token", token.Hex()).
		With("symbol", meta.Symbol).
		With(counterpartyField, counterparty.Hex()).
		With("amount", toString(args["amount"])).
		With("tx", txReport{Hash: txHash, ExplorerURL: net.TxURL(txHash)}).
		Result(), nil
}

// registerCreateRWATokenTool deploys an RWA token via the on-chain manager
// and reports the project ID and token address from the creation event.
func (s *Server) registerCreateRWATokenTool() {
	tool := mcp.NewTool("asetta_create_rwa_token",
		mcp.WithDescription("Deploy a new RWA token through the RWAManager contract"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Token name")),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Token symbol")),
		mcp.WithString("total_supply", mcp.Required(), mcp.Description("Total supply in whole tokens")),
		mcp.WithString("price_per_token", mcp.Required(), mcp.Description("Price per token in USDC")),
		mcp.WithString("network", mcp.Description("Network key; defaults to the active network")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		name := toString(args["name"])
		symbol := toString(args["symbol"])
		if name == "" {
			return errorResult(NewMissingFieldError("asetta_create_rwa_token", "name")), nil
		}
		if symbol == "" {
			return errorResult(NewMissingFieldError("asetta_create_rwa_token", "symbol")), nil
		}

		totalSupply, err := wallet.ParseUnits(toString(args["total_supply"]), 18)
		if err != nil {
			return errorResult(NewInvalidAmountError("asetta_create_rwa_token", "total_supply", err)), nil
		}
		// USDC prices use 6 decimals.
		price, err := wallet.ParseUnits(toString(args["price_per_token"]), 6)
		if err != nil {
			return errorResult(NewInvalidAmountError("asetta_create_rwa_token", "price_per_token", err)), nil
		}

		agent, toolErr := s.dial(ctx, "asetta_create_rwa_token", args)
		if toolErr != nil {
			return errorResult(toolErr), nil
		}
		defer agent.Close()
		net := agent.Network()

		manager := contracts.NewRWAManager(common.HexToAddress(net.Contracts.RWAManager), agent.Client())
		opts, err := agent.TransactOpts(ctx)
		if err != nil {
			return errorResult(NewRPCError("asetta_create_rwa_token", err)), nil
		}
		tx, err := manager.CreateRWAToken(opts, name, symbol, totalSupply, price)
		if err != nil {
			return errorResult(NewRPCError("asetta_create_rwa_token", err)), nil
		}
		receipt, err := agent.SubmitAndWait(ctx, tx)
		if err != nil {
			return errorResult(NewRPCError("asetta_create_rwa_token", err)), nil
		}
		created, err := manager.ParseTokenCreated(receipt)
		if err != nil {
			return errorResult(NewRPCError("asetta_create_rwa_token", err)), nil
		}

		s.journalWrite(ctx, &journal.Record{
			Tool:     "asetta_create_rwa_token",
			Network:  string(net.Key),
			Status:   "success",
			TxHashes: []string{tx.Hash().Hex()},
			Addresses: map[string]string{
				"token": created.Token.Hex(),
			},
			Detail: fmt.Sprintf("onchain project %s, token %s", created.ProjectID, symbol),
		})

		return newEnvelope("success", "RWA token "+symbol+" deployed at "+created.Token.Hex()).
			With("onchain_project_id", created.ProjectID.String()).
			With("token", created.Token.Hex()).
			With("creator", created.Creator.Hex()).
			With("network", string(net.Key)).
			With("tx", txReport{Hash: tx.Hash().Hex(), ExplorerURL: net.TxURL(tx.Hash().Hex())}).
			With("token_explorer_url", net.AddressURL(created.Token.Hex())).
			Result(), nil
	})
}

// registerMintRWATokenTool mints RWA tokens to a recipient. The agent
// wallet must hold the minter role.
func (s *Server) registerMintRWATokenTool() {
	tool := mcp.NewTool("asetta_mint_rwa_token",
		mcp.WithDescription("Mint RWA tokens to a recipient (requires minter role)"),
		mcp.WithString("token", mcp.Required(), mcp.Description("RWA token contract address")),
		mcp.WithString("to", mcp.Required(), mcp.Description("Recipient address")),
		mcp.WithString("amount", mcp.Required(), mcp.Description("Amount in token units")),
		mcp.WithString("network", mcp.Description("Network key; defaults to the active network")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		token, ok := parseAddress(args["token"])
		if !ok {
			return errorResult(NewInvalidAddressError("asetta_mint_rwa_token", "token", args["token"])), nil
		}
		to, ok := parseAddress(args["to"])
		if !ok {
			return errorResult(NewInvalidAddressError("asetta_mint_rwa_token", "to", args["to"])), nil
		}

		agent, toolErr := s.dial(ctx, "asetta_mint_rwa_token", args)
		if toolErr != nil {
			return errorResult(toolErr), nil
		}
		defer agent.Close()
		net := agent.Network()

		meta, err := s.deps.Metadata.Lookup(ctx, net.ChainID, token, agent.Client())
		if err != nil {
			return errorResult(NewRPCError("asetta_mint_rwa_token", err)), nil
		}
		amount, err := wallet.ParseUnits(toString(args["amount"]), meta.Decimals)
		if err != nil {
			return errorResult(NewInvalidAmountError("asetta_mint_rwa_token", "amount", err)), nil
		}

		rwaToken := contracts.NewRWAToken(token, agent.Client())
		opts, err := agent.TransactOpts(ctx)
		if err != nil {
			return errorResult(NewRPCError("asetta_mint_rwa_token", err)), nil
		}
		tx, err := rwaToken.Mint(opts, to, amount)
		if err != nil {
			return errorResult(NewRPCError("asetta_mint_rwa_token", err)), nil
		}
		if _, err := agent.SubmitAndWait(ctx, tx); err != nil {
			return errorResult(NewRPCError("asetta_mint_rwa_token", err)), nil
		}

		s.journalWrite(ctx, &journal.Record{
			Tool:     "asetta_mint_rwa_token",
			Network:  string(net.Key),
			Status:   "success",
			TxHashes: []string{tx.Hash().Hex()},
			Addresses: map[string]string{
				"token": token.Hex(),
				"to":    to.Hex(),
			},
		})

		return newEnvelope("success", "Minted "+toString(args["amount"])+" "+meta.Symbol+" to "+to.Hex()).
			With("token", token.Hex()).
			With("to", to.Hex()).
			With("amount", toString(args["amount"])).
			With("tx", txReport{Hash: tx.Hash().Hex(), ExplorerURL: net.TxURL(tx.Hash().Hex())}).
			Result(), nil
	})
}

// registerOnchainProjectInfoTool reads the manager's project record.
func (s *Server) registerOnchainProjectInfoTool() {
	tool := mcp.NewTool("asetta_onchain_project_info",
		mcp.WithDescription("Read the on-chain RWAManager record for a project"),
		mcp.WithNumber("onchain_project_id", mcp.Required(), mcp.Description("On-chain project ID")),
		mcp.WithString("network", mcp.Description("Network key; defaults to the active network")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		projectID := big.NewInt(toInt64(args["onchain_project_id"]))

		agent, toolErr := s.dial(ctx, "asetta_onchain_project_info", args)
		if toolErr != nil {
			return errorResult(toolErr), nil
		}
		defer agent.Close()
		net := agent.Network()

		manager := contracts.NewRWAManager(common.HexToAddress(net.Contracts.RWAManager), agent.Client())
		info, err := manager.GetProjectInfo(ctx, projectID)
		if err != nil {
			return errorResult(NewRPCError("asetta_onchain_project_info", err)), nil
		}

		return newEnvelope("success", "On-chain project "+projectID.String()).
			With("onchain_project_id", projectID.String()).
			With("network", string(net.Key)).
			With("token", info.Token.Hex()).
			With("creator", info.Creator.Hex()).
			With("onchain_status", info.Status).
			With("ccip_configured", info.CCIPConfigured).
			Result(), nil
	})
}

// registerMarkCCIPConfiguredTool flips the manager's CCIP-configured flag
// once the cross-chain setup validated on every chain.
func (s *Server) registerMarkCCIPConfiguredTool() {
	tool := mcp.NewTool("asetta_mark_ccip_configured",
		mcp.WithDescription("Mark an on-chain project as CCIP-configured in the RWAManager"),
		mcp.WithNumber("onchain_project_id", mcp.Required(), mcp.Description("On-chain project ID")),
		mcp.WithString("network", mcp.Description("Network key; defaults to the active network")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		projectID := big.NewInt(toInt64(args["onchain_project_id"]))

		agent, toolErr := s.dial(ctx, "asetta_mark_ccip_configured", args)
		if toolErr != nil {
			return errorResult(toolErr), nil
		}
		defer agent.Close()
		net := agent.Network()

		manager := contracts.NewRWAManager(common.HexToAddress(net.Contracts.RWAManager), agent.Client())
		opts, err := agent.TransactOpts(ctx)
		if err != nil {
			return errorResult(NewRPCError("asetta_mark_ccip_configured", err)), nil
		}
		tx, err := manager.MarkCCIPConfigured(opts, projectID)
		if err != nil {
			return errorResult(NewRPCError("asetta_mark_ccip_configured", err)), nil
		}
		if _, err := agent.SubmitAndWait(ctx, tx); err != nil {
			return errorResult(NewRPCError("asetta_mark_ccip_configured", err)), nil
		}

		s.journalWrite(ctx, &journal.Record{
			Tool:     "asetta_mark_ccip_configured",
			Network:  string(net.Key),
			Status:   "success",
			TxHashes: []string{tx.Hash().Hex()},
			Detail:   "onchain project " + projectID.String(),
		})

		return newEnvelope("success", "Project "+projectID.String()+" marked CCIP-configured").
			With("onchain_project_id", projectID.String()).
			With("tx", txReport{Hash: tx.Hash().Hex(), ExplorerURL: net.TxURL(tx.Hash().Hex())}).
			Result(), nil
	})
}

// registerRegisterPrimarySalesTool lists project tokens for primary sale.
func (s *Server) registerRegisterPrimarySalesTool() {
	tool := mcp.NewTool("asetta_register_primary_sales",
		mcp.WithDescription("Register an on-chain project for primary sales with a token amount and USDC price"),
		mcp.WithNumber("onchain_project_id", mcp.Required(), mcp.Description("On-chain project ID")),
		mcp.WithString("tokens_for_sale", mcp.Required(), mcp.Description("Token amount to list for sale")),
		mcp.WithString("price_per_token", mcp.Required(), mcp.Description("Price per token in USDC")),
		mcp.WithString("network", mcp.Description("Network key; defaults to the active network")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		projectID := big.NewInt(toInt64(args["onchain_project_id"]))

		tokensForSale, err := wallet.ParseUnits(toString(args["tokens_for_sale"]), 18)
		if err != nil {
			return errorResult(NewInvalidAmountError("asetta_register_primary_sales", "tokens_for_sale", err)), nil
		}
		price, err := wallet.ParseUnits(toString(args["price_per_token"]), 6)
		if err != nil {
			return errorResult(NewInvalidAmountError("asetta_register_primary_sales", "price_per_token", err)), nil
		}

		agent, toolErr := s.dial(ctx, "asetta_register_primary_sales", args)
		if toolErr != nil {
			return errorResult(toolErr), nil
		}
		defer agent.Close()
		net := agent.Network()

		manager := contracts.NewRWAManager(common.HexToAddress(net.Contracts.RWAManager), agent.Client())
		opts, err := agent.TransactOpts(ctx)
		if err != nil {
			return errorResult(NewRPCError("asetta_register_primary_sales", err)), nil
		}
		tx, err := manager.RegisterForPrimarySales(opts, projectID, tokensForSale, price)
		if err != nil {
			return errorResult(NewRPCError("asetta_register_primary_sales", err)), nil
		}
		if _, err := agent.SubmitAndWait(ctx, tx); err != nil {
			return errorResult(NewRPCError("asetta_register_primary_sales", err)), nil
		}

		s.journalWrite(ctx, &journal.Record{
			Tool:     "asetta_register_primary_sales",
			Network:  string(net.Key),
			Status:   "success",
			TxHashes: []string{tx.Hash().Hex()},
			Detail:   "onchain project " + projectID.String(),
		})

		return newEnvelope("success", "Project "+projectID.String()+" registered for primary sales").
			With("onchain_project_id", projectID.String()).
			With("tokens_for_sale", toString(args["tokens_for_sale"])).
			With("price_per_token_usdc", toString(args["price_per_token"])).
			With("tx", txReport{Hash: tx.Hash().Hex(), ExplorerURL: net.TxURL(tx.Hash().Hex())}).
			Result(), nil
	})
}

// registerActivatePrimarySalesTool opens the sale to buyers.
func (s *Server) registerActivatePrimarySalesTool() {
	tool := mcp.NewTool("asetta_activate_primary_sales",
		mcp.WithDescription("Activate primary sales for an on-chain project"),
		mcp.WithNumber("onchain_project_id", mcp.Required(), mcp.Description("On-chain project ID")),
		mcp.WithString("network", mcp.Description("Network key; defaults to the active network")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		projectID := big.NewInt(toInt64(args["onchain_project_id"]))

		agent, toolErr := s.dial(ctx, "asetta_activate_primary_sales", args)
		if toolErr != nil {
			return errorResult(toolErr), nil
		}
		defer agent.Close()
		net := agent.Network()

		manager := contracts.NewRWAManager(common.HexToAddress(net.Contracts.RWAManager), agent.Client())
		opts, err := agent.TransactOpts(ctx)
		if err != nil {
			return errorResult(NewRPCError("asetta_activate_primary_sales", err)), nil
		}
		tx, err := manager.ActivatePrimarySales(opts, projectID)
		if err != nil {
			return errorResult(NewRPCError("asetta_activate_primary_sales", err)), nil
		}
		if _, err := agent.SubmitAndWait(ctx, tx); err != nil {
			return errorResult(NewRPCError("asetta_activate_primary_sales", err)), nil
		}

		s.journalWrite(ctx, &journal.Record{
			Tool:     "asetta_activate_primary_sales",
			Network:  string(net.Key),
			Status:   "success",
			TxHashes: []string{tx.Hash().Hex()},
			Detail:   "onchain project " + projectID.String(),
		})

		return newEnvelope("success", "Primary sales active for project "+projectID.String()).
			With("onchain_project_id", projectID.String()).
			With("tx", txReport{Hash: tx.Hash().Hex(), ExplorerURL: net.TxURL(tx.Hash().Hex())}).
			Result(), nil
	})
}

// registerGetSaleTool reads the primary distribution sale state.
func (s *Server) registerGetSaleTool() {
	tool := mcp.NewTool("asetta_get_sale",
		mcp.WithDescription("Read the primary sale state of an on-chain project"),
		mcp.WithNumber("onchain_project_id", mcp.Required(), mcp.Description("On-chain project ID")),
		mcp.WithString("network", mcp.Description("Network key; defaults to the active network")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		projectID := big.NewInt(toInt64(args["onchain_project_id"]))

		agent, toolErr := s.dial(ctx, "asetta_get_sale", args)
		if toolErr != nil {
			return errorResult(toolErr), nil
		}
		defer agent.Close()
		net := agent.Network()

		distribution := contracts.NewPrimaryDistribution(common.HexToAddress(net.Contracts.PrimaryDistribution), agent.Client())
		sale, err := distribution.GetSale(ctx, projectID)
		if err != nil {
			return errorResult(NewRPCError("asetta_get_sale", err)), nil
		}

		return newEnvelope("success", "Sale state for project "+projectID.String()).
			With("onchain_project_id", projectID.String()).
			With("network", string(net.Key)).
			With("token", sale.Token.Hex()).
			With("price_per_token_usdc", wallet.FormatUnits(sale.PricePerTokenUSDC, 6)).
			With("tokens_remaining", wallet.FormatUnits(sale.TokensRemaining, 18)).
			With("active", sale.Active).
			Result(), nil
	})
}

// registerPurchaseTokensTool buys from a primary sale with USDC.
func (s *Server) registerPurchaseTokensTool() {
	tool := mcp.NewTool("asetta_purchase_tokens",
		mcp.WithDescription("Purchase RWA tokens from a primary sale using USDC (approve the distribution contract first)"),
		mcp.WithNumber("onchain_project_id", mcp.Required(), mcp.Description("On-chain project ID")),
		mcp.WithString("usdc_amount", mcp.Required(), mcp.Description("USDC amount to spend")),
		mcp.WithString("network", mcp.Description("Network key; defaults to the active network")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		projectID := big.NewInt(toInt64(args["onchain_project_id"]))

		usdcAmount, err := wallet.ParseUnits(toString(args["usdc_amount"]), 6)
		if err != nil {
			return errorResult(NewInvalidAmountError("asetta_purchase_tokens", "usdc_amount", err)), nil
		}

		agent, toolErr := s.dial(ctx, "asetta_purchase_tokens", args)
		if toolErr != nil {
			return errorResult(toolErr), nil
		}
		defer agent.Close()
		net := agent.Network()

		distribution := contracts.NewPrimaryDistribution(common.HexToAddress(net.Contracts.PrimaryDistribution), agent.Client())
		opts, err := agent.TransactOpts(ctx)
		if err != nil {
			return errorResult(NewRPCError("asetta_purchase_tokens", err)), nil
		}
		tx, err := distribution.PurchaseTokens(opts, projectID, usdcAmount)
		if err != nil {
			return errorResult(NewRPCError("asetta_purchase_tokens", err)), nil
		}
		if _, err := agent.SubmitAndWait(ctx, tx); err != nil {
			return errorResult(NewRPCError("asetta_purchase_tokens", err)), nil
		}

		s.journalWrite(ctx, &journal.Record{
			Tool:     "asetta_purchase_tokens",
			Network:  string(net.Key),
			Status:   "success",
			TxHashes: []string{tx.Hash().Hex()},
			Detail:   "onchain project " + projectID.String(),
		})

		return newEnvelope("success", "Purchased tokens from project "+projectID.String()+" for "+toString(args["usdc_amount"])+" USDC").
			With("onchain_project_id", projectID.String()).
			With("usdc_spent", toString(args["usdc_amount"])).
			With("tx", txReport{Hash: tx.Hash().Hex(), ExplorerURL: net.TxURL(tx.Hash().Hex())}).
			Result(), nil
	})
}
