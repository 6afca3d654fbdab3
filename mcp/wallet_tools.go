package mcp

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/mark3labs/mcp-go/mcp"

	"asetta-mcp/chains"
	"asetta-mcp/storage/journal"
	"asetta-mcp/wallet"
)

// registerListNetworksTool lists the supported testnets.
func (s *Server) registerListNetworksTool() {
	tool := mcp.NewTool("asetta_list_networks",
		mcp.WithDescription("List the supported networks with chain IDs and contract addresses"),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return newEnvelope("success", "Supported networks").
			With("default_network", string(s.deps.Network.Key)).
			With("networks", chains.All()).
			Result(), nil
	})
}

// registerNetworkInfoTool shows one network's full configuration.
func (s *Server) registerNetworkInfoTool() {
	tool := mcp.NewTool("asetta_network_info",
		mcp.WithDescription("Get RPC endpoint, explorer, chain ID, and Asetta/Chainlink contract addresses for a network"),
		mcp.WithString("network", mcp.Description("Network key; defaults to the active network")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		net, toolErr := s.resolveNetwork("asetta_network_info", request.GetArguments())
		if toolErr != nil {
			return errorResult(toolErr), nil
		}

		return newEnvelope("success", net.Name+" configuration").
			With("network", net).
			Result(), nil
	})
}

// registerWalletInfoTool reports the agent wallet address and balance.
func (s *Server) registerWalletInfoTool() {
	tool := mcp.NewTool("asetta_wallet_info",
		mcp.WithDescription("Get the agent wallet address, active network, and native balance"),
		mcp.WithString("network", mcp.Description("Network key; defaults to the active network")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		agent, toolErr := s.dial(ctx, "asetta_wallet_info", request.GetArguments())
		if toolErr != nil {
			return errorResult(toolErr), nil
		}
		defer agent.Close()

		net := agent.Network()
		balance, err := agent.NativeBalance(ctx, agent.Address())
		if err != nil {
			return errorResult(NewRPCError("asetta_wallet_info", err)), nil
		}

		return newEnvelope("success", "Wallet "+agent.Address().Hex()+" on "+net.Name).
			With("address", agent.Address().Hex()).
			With("network", string(net.Key)).
			With("chain_id", net.ChainID).
			With("balance", wallet.FormatUnits(balance, net.NativeDecimals)+" "+net.NativeCurrency).
			With("ephemeral", s.deps.Account.Ephemeral).
			With("explorer_url", net.AddressURL(agent.Address().Hex())).
			Result(), nil
	})
}

// registerNativeBalanceTool reads any address's native balance.
func (s *Server) registerNativeBalanceTool() {
	tool := mcp.NewTool("asetta_native_balance",
		mcp.WithDescription("Get the native coin balance of an address"),
		mcp.WithString("address", mcp.Description("Address to query; defaults to the agent wallet")),
		mcp.WithString("network", mcp.Description("Network key; defaults to the active network")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		agent, toolErr := s.dial(ctx, "asetta_native_balance", args)
		if toolErr != nil {
			return errorResult(toolErr), nil
		}
		defer agent.Close()

		addr := agent.Address()
		if raw := toString(args["address"]); raw != "" {
			parsed, ok := parseAddress(raw)
			if !ok {
				return errorResult(NewInvalidAddressError("asetta_native_balance", "address", raw)), nil
			}
			addr = parsed
		}

		net := agent.Network()
		balance, err := agent.NativeBalance(ctx, addr)
		if err != nil {
			return errorResult(NewRPCError("asetta_native_balance", err)), nil
		}

		return newEnvelope("success", wallet.FormatUnits(balance, net.NativeDecimals)+" "+net.NativeCurrency).
			With("address", addr.Hex()).
			With("network", string(net.Key)).
			With("balance", wallet.FormatUnits(balance, net.NativeDecimals)).
			With("balance_wei", balance.String()).
			With("currency", net.NativeCurrency).
			Result(), nil
	})
}

// registerAddressQRCodeTool renders the wallet address as a QR code so a
// human can fund the agent from a mobile wallet.
func (s *Server) registerAddressQRCodeTool() {
	tool := mcp.NewTool("asetta_address_qr_code",
		mcp.WithDescription("Generate a QR code for funding the agent wallet (or any address)"),
		mcp.WithString("address", mcp.Description("Address to encode; defaults to the agent wallet")),
		mcp.WithString("amount", mcp.Description("Optional native amount to request")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		addr := s.deps.Account.Address
		if raw := toString(args["address"]); raw != "" {
			parsed, ok := parseAddress(raw)
			if !ok {
				return errorResult(NewInvalidAddressError("asetta_address_qr_code", "address", raw)), nil
			}
			addr = parsed
		}

		uri, err := s.deps.QR.AddressDataURI(addr.Hex(), toString(args["amount"]))
		if err != nil {
			return errorResult(&ToolError{Code: ErrCodeInternal, Message: err.Error(), Tool: "asetta_address_qr_code"}), nil
		}

		return newEnvelope("success", "QR code for "+addr.Hex()).
			With("address", addr.Hex()).
			With("qr_png_data_uri", uri).
			Result(), nil
	})
}

// registerTxStatusTool looks up the receipt of an already submitted
// transaction, so a journaled tx hash can be checked later.
func (s *Server) registerTxStatusTool() {
	tool := mcp.NewTool("asetta_tx_status",
		mcp.WithDescription("Get the mining status and receipt of a transaction by hash"),
		mcp.WithString("tx_hash", mcp.Required(), mcp.Description("Transaction hash to look up")),
		mcp.WithString("network", mcp.Description("Network key; defaults to the active network")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		hash, ok := parseTxHash(args["tx_hash"])
		if !ok {
			return errorResult(&ToolError{
				Code:    ErrCodeInvalidValue,
				Message: fmt.Sprintf("'%v' is not a transaction hash", args["tx_hash"]),
				Tool:    "asetta_tx_status",
				Field:   "tx_hash",
				Hint:    "Transaction hashes are 0x-prefixed 64-hex-character strings",
			}), nil
		}

		agent, toolErr := s.dial(ctx, "asetta_tx_status", args)
		if toolErr != nil {
			return errorResult(toolErr), nil
		}
		defer agent.Close()
		net := agent.Network()

		receipt, err := agent.Receipt(ctx, hash)
		if err != nil {
			return errorResult(NewRPCError("asetta_tx_status", err)), nil
		}

		txStatus := "success"
		if receipt.Status != types.ReceiptStatusSuccessful {
			txStatus = "reverted"
		}

		return newEnvelope("success", "Transaction "+hash.Hex()+" "+txStatus).
			With("tx_hash", hash.Hex()).
			With("tx_status", txStatus).
			With("block_number", receipt.BlockNumber.Uint64()).
			With("gas_used", receipt.GasUsed).
			With("explorer_url", net.TxURL(hash.Hex())).
			Result(), nil
	})
}

// registerTransferNativeTool sends native currency from the agent wallet.
func (s *Server) registerTransferNativeTool() {
	tool := mcp.NewTool("asetta_transfer_native",
		mcp.WithDescription("Transfer native currency from the agent wallet"),
		mcp.WithString("to", mcp.Required(), mcp.Description("Recipient address")),
		mcp.WithString("amount", mcp.Required(), mcp.Description("Amount in native units, e.g. \"0.1\"")),
		mcp.WithString("network", mcp.Description("Network key; defaults to the active network")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		to, ok := parseAddress(args["to"])
		if !ok {
			return errorResult(NewInvalidAddressError("asetta_transfer_native", "to", args["to"])), nil
		}

		agent, toolErr := s.dial(ctx, "asetta_transfer_native", args)
		if toolErr != nil {
			return errorResult(toolErr), nil
		}
		defer agent.Close()
		net := agent.Network()

		amount, err := wallet.ParseUnits(toString(args["amount"]), net.NativeDecimals)
		if err != nil {
			return errorResult(NewInvalidAmountError("asetta_transfer_native", "amount", err)), nil
		}

		tx, err := agent.TransferNative(ctx, to, amount)
		if err != nil {
			return errorResult(NewRPCError("asetta_transfer_native", err)), nil
		}
		if _, err := agent.SubmitAndWait(ctx, tx); err != nil {
			return errorResult(NewRPCError("asetta_transfer_native", err)), nil
		}

		s.journalWrite(ctx, &journal.Record{
			Tool:     "asetta_transfer_native",
			Network:  string(net.Key),
			Status:   "success",
			TxHashes: []string{tx.Hash().Hex()},
			Addresses: map[string]string{
				"to": to.Hex(),
			},
		})

		return newEnvelope("success", "Sent "+toString(args["amount"])+" "+net.NativeCurrency+" to "+to.Hex()).
			With("tx", txReport{Hash: tx.Hash().Hex(), ExplorerURL: net.TxURL(tx.Hash().Hex())}).
			Result(), nil
	})
}
