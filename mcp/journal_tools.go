package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"asetta-mcp/storage/journal"
)

// registerDeploymentHistoryTool lists journaled deployment actions so the
// agent can resume a partially configured project.
func (s *Server) registerDeploymentHistoryTool() {
	tool := mcp.NewTool("asetta_deployment_history",
		mcp.WithDescription("List journaled deployment and configuration actions, newest first"),
		mcp.WithString("tool", mcp.Description("Filter by tool name")),
		mcp.WithString("network", mcp.Description("Filter by network key")),
		mcp.WithString("project_id", mcp.Description("Filter by backend project ID")),
		mcp.WithNumber("limit", mcp.Description("Maximum records to return")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		records, err := s.deps.Journal.List(ctx, journal.Filter{
			Tool:      toString(args["tool"]),
			Network:   toString(args["network"]),
			ProjectID: toString(args["project_id"]),
			Limit:     int(toInt64(args["limit"])),
		})
		if err != nil {
			return errorResult(&ToolError{Code: ErrCodeInternal, Message: err.Error(), Tool: "asetta_deployment_history"}), nil
		}

		return newEnvelope("success", fmt.Sprintf("Found %d journal records", len(records))).
			With("total", len(records)).
			With("records", records).
			Result(), nil
	})
}

// registerGetDeploymentTool fetches one journal record by ID.
func (s *Server) registerGetDeploymentTool() {
	tool := mcp.NewTool("asetta_get_deployment",
		mcp.WithDescription("Get one journaled deployment record by ID"),
		mcp.WithString("record_id", mcp.Required(), mcp.Description("Journal record ID")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		recordID, err := request.RequireString("record_id")
		if err != nil {
			return errorResult(NewMissingFieldError("asetta_get_deployment", "record_id")), nil
		}

		record, err := s.deps.Journal.Get(ctx, recordID)
		if err != nil {
			return errorResult(NewNotFoundError("asetta_get_deployment", "Journal record", recordID)), nil
		}

		return newEnvelope("success", "Journal record "+record.ID).
			With("record", record).
			Result(), nil
	})
}
