package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"asetta-mcp/api"
	"asetta-mcp/storage/journal"
)

// registerCreateProjectTool creates a backend project record for a new RWA.
func (s *Server) registerCreateProjectTool() {
	tool := mcp.NewTool("asetta_create_rwa_project",
		mcp.WithDescription("Create a new RWA tokenization project record in the Asetta backend"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Project name")),
		mcp.WithString("category", mcp.Required(), mcp.Description("Asset category, e.g. real-estate, commodities, art")),
		mcp.WithString("description", mcp.Description("Free-form project description")),
		mcp.WithString("total_valuation", mcp.Description("Total asset valuation in USD")),
		mcp.WithString("token_symbol", mcp.Description("Planned token symbol")),
		mcp.WithString("total_supply", mcp.Description("Planned total token supply")),
		mcp.WithString("price_per_token", mcp.Description("Planned price per token in USD")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		name := strings.TrimSpace(toString(args["name"]))
		if name == "" {
			return errorResult(NewMissingFieldError("asetta_create_rwa_project", "name")), nil
		}
		category := strings.TrimSpace(toString(args["category"]))
		if category == "" {
			return errorResult(NewMissingFieldError("asetta_create_rwa_project", "category")), nil
		}

		project, err := s.deps.API.CreateProject(ctx, api.CreateProjectRequest{
			Name:           name,
			Category:       category,
			Description:    toString(args["description"]),
			TotalValuation: toString(args["total_valuation"]),
			TokenSymbol:    toString(args["token_symbol"]),
			TotalSupply:    toString(args["total_supply"]),
			PricePerToken:  toString(args["price_per_token"]),
		})
		if err != nil {
			return errorResult(NewBackendError("asetta_create_rwa_project", err)), nil
		}

		s.journalWrite(ctx, &journal.Record{
			Tool:      "asetta_create_rwa_project",
			ProjectID: project.ID,
			Status:    "success",
			Detail:    "created project " + project.Name,
		})

		return newEnvelope("success", "Project '"+project.Name+"' created with status "+project.Status).
			With("project", project).
			Result(), nil
	})
}

// registerListProjectsTool lists backend projects with an optional status
// filter.
func (s *Server) registerListProjectsTool() {
	tool := mcp.NewTool("asetta_list_rwa_projects",
		mcp.WithDescription("List RWA projects from the Asetta backend, optionally filtered by status"),
		mcp.WithString("status", mcp.Description("Filter by status: "+strings.Join(api.Statuses(), ", "))),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		status := toString(args["status"])
		if status != "" && !api.ValidStatus(status) {
			return errorResult(&ToolError{
				Code:    ErrCodeInvalidValue,
				Message: "Unknown status '" + status + "'",
				Tool:    "asetta_list_rwa_projects",
				Field:   "status",
				Hint:    "Accepted statuses: " + strings.Join(api.Statuses(), ", "),
			}), nil
		}

		projects, err := s.deps.API.ListProjects(ctx, status)
		if err != nil {
			return errorResult(NewBackendError("asetta_list_rwa_projects", err)), nil
		}

		return newEnvelope("success", "Found projects").
			With("total", len(projects)).
			With("projects", projects).
			Result(), nil
	})
}

// registerGetProjectTool fetches a single backend project.
func (s *Server) registerGetProjectTool() {
	tool := mcp.NewTool("asetta_get_rwa_project",
		mcp.WithDescription("Get one RWA project record from the Asetta backend"),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("Backend project ID")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return errorResult(NewMissingFieldError("asetta_get_rwa_project", "project_id")), nil
		}

		project, err := s.deps.API.GetProject(ctx, projectID)
		if err != nil {
			return errorResult(NewNotFoundError("asetta_get_rwa_project", "Project", projectID)), nil
		}

		return newEnvelope("success", "Project "+project.ID).
			With("project", project).
			Result(), nil
	})
}

// registerUpdateProjectTool patches a backend project, typically to record
// deployed contract addresses or advance the status.
func (s *Server) registerUpdateProjectTool() {
	tool := mcp.NewTool("asetta_update_rwa_project",
		mcp.WithDescription("Update an RWA project record: status, description, valuation, or deployed on-chain addresses"),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("Backend project ID")),
		mcp.WithString("name", mcp.Description("New project name")),
		mcp.WithString("description", mcp.Description("New description")),
		mcp.WithString("status", mcp.Description("New status: "+strings.Join(api.Statuses(), ", "))),
		mcp.WithString("total_valuation", mcp.Description("New total valuation in USD")),
		mcp.WithString("onchain_project_id", mcp.Description("On-chain project ID from createRWAToken")),
		mcp.WithObject("onchain_addresses", mcp.Description("Deployed addresses for one network: {network, token, ccip_pool, primary_distribution}")),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		projectID, err := request.RequireString("project_id")
		if err != nil {
			return errorResult(NewMissingFieldError("asetta_update_rwa_project", "project_id")), nil
		}

		update := api.UpdateProjectRequest{
			Name:           toString(args["name"]),
			Description:    toString(args["description"]),
			Status:         toString(args["status"]),
			TotalValuation: toString(args["total_valuation"]),
			OnchainProject: toString(args["onchain_project_id"]),
		}
		if addrs := toMap(args["onchain_addresses"]); addrs != nil {
			update.Onchain = []api.OnchainAddresses{{
				Network:             toString(addrs["network"]),
				Token:               toString(addrs["token"]),
				CCIPPool:            toString(addrs["ccip_pool"]),
				PrimaryDistribution: toString(addrs["primary_distribution"]),
			}}
		}

		project, err := s.deps.API.UpdateProject(ctx, projectID, update)
		if err != nil {
			return errorResult(NewBackendError("asetta_update_rwa_project", err)), nil
		}

		s.journalWrite(ctx, &journal.Record{
			Tool:      "asetta_update_rwa_project",
			ProjectID: projectID,
			Status:    "success",
			Detail:    "updated project record",
		})

		return newEnvelope("success", "Project "+projectID+" updated").
			With("project", project).
			Result(), nil
	})
}

// registerGetUserProfileTool fetches the profile behind the access key.
func (s *Server) registerGetUserProfileTool() {
	tool := mcp.NewTool("asetta_get_user_profile",
		mcp.WithDescription("Get the Asetta user profile tied to the configured access key"),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		profile, err := s.deps.API.GetProfile(ctx)
		if err != nil {
			return errorResult(NewUnauthorizedError("asetta_get_user_profile", err.Error())), nil
		}

		return newEnvelope("success", "Profile for "+profile.DisplayName).
			With("profile", profile).
			Result(), nil
	})
}
