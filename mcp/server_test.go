package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	mcpgo "github.com/mark3labs/mcp-go/mcp"

	"asetta-mcp/api"
	"asetta-mcp/chains"
	"asetta-mcp/contracts"
	"asetta-mcp/logging"
	"asetta-mcp/services"
	"asetta-mcp/storage/journal"
	"asetta-mcp/wallet"
)

func testServer(t *testing.T, mode string, backend http.Handler) (*Server, *journal.MemoryStore) {
	t.Helper()

	baseURL := ""
	if backend != nil {
		srv := httptest.NewServer(backend)
		t.Cleanup(srv.Close)
		baseURL = srv.URL
	}

	account, err := wallet.GenerateAccount()
	if err != nil {
		t.Fatalf("generate account: %v", err)
	}
	net, err := chains.Get("avalancheFuji")
	if err != nil {
		t.Fatalf("get network: %v", err)
	}

	store := journal.NewMemoryStore()
	s := NewServer(Deps{
		Network:   net,
		Account:   account,
		API:       api.NewClient(baseURL, "test-key", logging.Nop()),
		Journal:   store,
		QR:        services.NewQRCodeService(),
		Metadata:  contracts.NewMetadataCache(),
		AgentMode: mode,
		Log:       logging.Nop(),
	})
	return s, store
}

// callTool drives a tool through the JSON-RPC entry point and returns the
// text payload plus the isError flag.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) (string, bool) {
	t.Helper()

	params := map[string]interface{}{"name": name}
	if args != nil {
		params["arguments"] = args
	}
	request, err := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/call",
		"params":  params,
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	message := s.MCPServer().HandleMessage(context.Background(), request)
	raw, err := json.Marshal(message)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}

	var decoded struct {
		Result struct {
			IsError bool `json:"isError"`
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"result"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode response: %v\n%s", err, raw)
	}
	if decoded.Error != nil {
		t.Fatalf("transport-level error for %s: %s", name, decoded.Error.Message)
	}
	if len(decoded.Result.Content) == 0 {
		t.Fatalf("empty content for %s: %s", name, raw)
	}
	return decoded.Result.Content[0].Text, decoded.Result.IsError
}

func listToolNames(t *testing.T, s *Server) map[string]bool {
	t.Helper()

	request := []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	message := s.MCPServer().HandleMessage(context.Background(), request)
	raw, err := json.Marshal(message)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}

	var decoded struct {
		Result struct {
			Tools []struct {
				Name string `json:"name"`
			} `json:"tools"`
		} `json:"result"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode tools/list: %v", err)
	}

	names := make(map[string]bool, len(decoded.Result.Tools))
	for _, tool := range decoded.Result.Tools {
		names[tool.Name] = true
	}
	return names
}

func TestAgentModeGating(t *testing.T) {
	legal, _ := testServer(t, AgentModeLegal, nil)
	tokenization, _ := testServer(t, AgentModeTokenization, nil)

	legalTools := listToolNames(t, legal)
	allTools := listToolNames(t, tokenization)

	readOnly := []string{
		"asetta_create_rwa_project",
		"asetta_list_networks",
		"asetta_wallet_info",
		"asetta_token_balance",
		"asetta_tx_status",
		"asetta_get_ccip_pool",
		"asetta_deployment_history",
	}
	for _, name := range readOnly {
		if !legalTools[name] {
			t.Errorf("legal mode missing %s", name)
		}
	}

	writes := []string{
		"asetta_transfer_native",
		"asetta_mint_rwa_token",
		"asetta_create_rwa_token",
		"asetta_setup_ccip_pool",
		"asetta_connect_ccip_chains",
	}
	for _, name := range writes {
		if legalTools[name] {
			t.Errorf("legal mode must not expose %s", name)
		}
		if !allTools[name] {
			t.Errorf("tokenization mode missing %s", name)
		}
	}

	if len(allTools) <= len(legalTools) {
		t.Fatalf("tokenization catalog (%d) should exceed legal catalog (%d)", len(allTools), len(legalTools))
	}
}

func TestCreateProjectTool(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/project" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req api.CreateProjectRequest
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(api.Project{ID: "prj-7", Name: req.Name, Status: api.StatusPrepare})
	})
	s, store := testServer(t, AgentModeLegal, backend)

	text, isError := callTool(t, s, "asetta_create_rwa_project", map[string]interface{}{
		"name":     "Harbor Warehouse",
		"category": "real-estate",
	})
	if isError {
		t.Fatalf("unexpected error: %s", text)
	}

	var env map[string]interface{}
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		t.Fatalf("result is not JSON: %v\n%s", err, text)
	}
	if env["status"] != "success" {
		t.Fatalf("status = %v", env["status"])
	}
	project := env["project"].(map[string]interface{})
	if project["id"] != "prj-7" {
		t.Fatalf("project not mapped: %v", project)
	}

	records, _ := store.List(context.Background(), journal.Filter{Tool: "asetta_create_rwa_project"})
	if len(records) != 1 || records[0].ProjectID != "prj-7" {
		t.Fatalf("expected journal record, got %+v", records)
	}
}

func TestCreateProjectToolValidation(t *testing.T) {
	s, _ := testServer(t, AgentModeLegal, nil)

	text, isError := callTool(t, s, "asetta_create_rwa_project", map[string]interface{}{
		"category": "real-estate",
	})
	if !isError {
		t.Fatalf("expected error result, got %s", text)
	}

	var payload struct {
		Status string     `json:"status"`
		Error  *ToolError `json:"error"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		t.Fatalf("error result is not structured JSON: %v\n%s", err, text)
	}
	if payload.Error == nil || payload.Error.Code != ErrCodeMissingRequired || payload.Error.Field != "name" {
		t.Fatalf("unexpected error payload: %+v", payload.Error)
	}
}

func TestListProjectsToolRejectsBadStatus(t *testing.T) {
	s, _ := testServer(t, AgentModeLegal, nil)

	text, isError := callTool(t, s, "asetta_list_rwa_projects", map[string]interface{}{
		"status": "LIVE",
	})
	if !isError {
		t.Fatalf("expected error result, got %s", text)
	}
	if !strings.Contains(text, ErrCodeInvalidValue) {
		t.Fatalf("expected %s in %s", ErrCodeInvalidValue, text)
	}
}

func TestNetworkTools(t *testing.T) {
	s, _ := testServer(t, AgentModeLegal, nil)

	t.Run("list_networks", func(t *testing.T) {
		text, isError := callTool(t, s, "asetta_list_networks", nil)
		if isError {
			t.Fatalf("unexpected error: %s", text)
		}
		var env map[string]interface{}
		json.Unmarshal([]byte(text), &env)
		if env["default_network"] != "avalancheFuji" {
			t.Fatalf("default_network = %v", env["default_network"])
		}
		networks := env["networks"].([]interface{})
		if len(networks) != 3 {
			t.Fatalf("expected 3 networks, got %d", len(networks))
		}
	})

	t.Run("network_info_unknown", func(t *testing.T) {
		text, isError := callTool(t, s, "asetta_network_info", map[string]interface{}{
			"network": "mainnet",
		})
		if !isError {
			t.Fatalf("expected error, got %s", text)
		}
		if !strings.Contains(text, ErrCodeInvalidNetwork) {
			t.Fatalf("expected %s in %s", ErrCodeInvalidNetwork, text)
		}
	})

	t.Run("network_info", func(t *testing.T) {
		text, isError := callTool(t, s, "asetta_network_info", map[string]interface{}{
			"network": "ethereumSepolia",
		})
		if isError {
			t.Fatalf("unexpected error: %s", text)
		}
		if !strings.Contains(text, "11155111") {
			t.Fatalf("expected sepolia chain id in %s", text)
		}
	})
}

func TestAddressQRCodeTool(t *testing.T) {
	s, _ := testServer(t, AgentModeLegal, nil)

	t.Run("default_address", func(t *testing.T) {
		text, isError := callTool(t, s, "asetta_address_qr_code", nil)
		if isError {
			t.Fatalf("unexpected error: %s", text)
		}
		if !strings.Contains(text, "data:image/png;base64,") {
			t.Fatal("expected inline PNG data URI")
		}
	})

	t.Run("invalid_address", func(t *testing.T) {
		text, isError := callTool(t, s, "asetta_address_qr_code", map[string]interface{}{
			"address": "not-an-address",
		})
		if !isError {
			t.Fatalf("expected error, got %s", text)
		}
		if !strings.Contains(text, ErrCodeInvalidAddress) {
			t.Fatalf("expected %s in %s", ErrCodeInvalidAddress, text)
		}
	})
}

func TestJournalTools(t *testing.T) {
	s, store := testServer(t, AgentModeLegal, nil)

	seed := &journal.Record{
		ID:       "jrn-seeded",
		Tool:     "asetta_deploy_ccip_pool",
		Network:  "avalancheFuji",
		Status:   "success",
		TxHashes: []string{"0xdeadbeef"},
	}
	if err := store.Append(context.Background(), seed); err != nil {
		t.Fatalf("seed journal: %v", err)
	}

	t.Run("history", func(t *testing.T) {
		text, isError := callTool(t, s, "asetta_deployment_history", map[string]interface{}{
			"network": "avalancheFuji",
		})
		if isError {
			t.Fatalf("unexpected error: %s", text)
		}
		var env struct {
			Total   int              `json:"total"`
			Records []journal.Record `json:"records"`
		}
		if err := json.Unmarshal([]byte(text), &env); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if env.Total != 1 || env.Records[0].ID != "jrn-seeded" {
			t.Fatalf("unexpected history: %+v", env)
		}
	})

	t.Run("get", func(t *testing.T) {
		text, isError := callTool(t, s, "asetta_get_deployment", map[string]interface{}{
			"record_id": "jrn-seeded",
		})
		if isError {
			t.Fatalf("unexpected error: %s", text)
		}
		if !strings.Contains(text, "0xdeadbeef") {
			t.Fatalf("expected tx hash in %s", text)
		}
	})

	t.Run("get_missing", func(t *testing.T) {
		text, isError := callTool(t, s, "asetta_get_deployment", map[string]interface{}{
			"record_id": "jrn-nope",
		})
		if !isError {
			t.Fatalf("expected error, got %s", text)
		}
		if !strings.Contains(text, ErrCodeNotFound) {
			t.Fatalf("expected %s in %s", ErrCodeNotFound, text)
		}
	})
}

func TestTransferNativeValidation(t *testing.T) {
	s, _ := testServer(t, AgentModeTokenization, nil)

	text, isError := callTool(t, s, "asetta_transfer_native", map[string]interface{}{
		"to":     "0xZZ",
		"amount": "1.0",
	})
	if !isError {
		t.Fatalf("expected error, got %s", text)
	}
	if !strings.Contains(text, ErrCodeInvalidAddress) {
		t.Fatalf("expected %s in %s", ErrCodeInvalidAddress, text)
	}
}

func TestTxStatusToolValidation(t *testing.T) {
	s, _ := testServer(t, AgentModeLegal, nil)

	for name, hash := range map[string]string{
		"too_short":  "0x123",
		"not_hex":    "0x" + strings.Repeat("zz", 32),
		"missing_0x": strings.Repeat("ab", 33),
	} {
		t.Run(name, func(t *testing.T) {
			text, isError := callTool(t, s, "asetta_tx_status", map[string]interface{}{
				"tx_hash": hash,
			})
			if !isError {
				t.Fatalf("expected error, got %s", text)
			}
			if !strings.Contains(text, ErrCodeInvalidValue) {
				t.Fatalf("expected %s in %s", ErrCodeInvalidValue, text)
			}
		})
	}
}

func TestHandlerErrorEnvelope(t *testing.T) {
	s, _ := testServer(t, AgentModeLegal, nil)

	// A handler returning a structured error must still surface the JSON
	// envelope rather than a bare protocol error.
	s.addTool(mcpgo.NewTool("asetta_test_failing"), func(ctx context.Context, request mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		return nil, NewNotFoundError("asetta_test_failing", "Record", "x-1")
	})

	text, isError := callTool(t, s, "asetta_test_failing", nil)
	if !isError {
		t.Fatalf("expected error result, got %s", text)
	}
	var payload struct {
		Status string     `json:"status"`
		Error  *ToolError `json:"error"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		t.Fatalf("error result is not structured JSON: %v\n%s", err, text)
	}
	if payload.Error == nil || payload.Error.Code != ErrCodeNotFound {
		t.Fatalf("unexpected error payload: %+v", payload.Error)
	}
}

func TestRemoteLinkFromArgs(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		link, toolErr := remoteLinkFromArgs("t", map[string]interface{}{})
		if link != nil || toolErr != nil {
			t.Fatalf("expected nil/nil, got %v, %v", link, toolErr)
		}
	})

	t.Run("complete", func(t *testing.T) {
		link, toolErr := remoteLinkFromArgs("t", map[string]interface{}{
			"remote_network": "ethereumSepolia",
			"remote_pool":    "0x1111111111111111111111111111111111111111",
			"remote_token":   "0x2222222222222222222222222222222222222222",
		})
		if toolErr != nil {
			t.Fatalf("unexpected error: %v", toolErr)
		}
		if link.ChainSelector != 16015286601757825753 {
			t.Fatalf("wrong selector: %d", link.ChainSelector)
		}
	})

	t.Run("bad_network", func(t *testing.T) {
		_, toolErr := remoteLinkFromArgs("t", map[string]interface{}{
			"remote_network": "base",
			"remote_pool":    "0x1111111111111111111111111111111111111111",
			"remote_token":   "0x2222222222222222222222222222222222222222",
		})
		if toolErr == nil || toolErr.Code != ErrCodeInvalidNetwork {
			t.Fatalf("expected network error, got %v", toolErr)
		}
	})

	t.Run("partial_fields", func(t *testing.T) {
		_, toolErr := remoteLinkFromArgs("t", map[string]interface{}{
			"remote_network": "ethereumSepolia",
		})
		if toolErr == nil || toolErr.Code != ErrCodeInvalidAddress {
			t.Fatalf("expected address error, got %v", toolErr)
		}
	})
}

func TestEnvelope(t *testing.T) {
	result := newEnvelope("success", "done").With("count", 3).Result()
	if result.IsError {
		t.Fatal("success envelope flagged as error")
	}

	text := resultText(t, result)
	if !strings.Contains(text, `"count": 3`) || !strings.Contains(text, `"status": "success"`) {
		t.Fatalf("unexpected envelope rendering: %s", text)
	}
}

func TestErrorResultShape(t *testing.T) {
	result := errorResult(NewInvalidAddressError("asetta_token_balance", "token", "xyz"))
	if !result.IsError {
		t.Fatal("error result not flagged")
	}
	text := resultText(t, result)
	if !strings.Contains(text, ErrCodeInvalidAddress) || !strings.Contains(text, "asetta_token_balance") {
		t.Fatalf("unexpected error payload: %s", text)
	}
}

func resultText(t *testing.T, result *mcpgo.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcpgo.TextContent)
	if !ok {
		t.Fatalf("content[0] is %T, want text content", result.Content[0])
	}
	return text.Text
}
