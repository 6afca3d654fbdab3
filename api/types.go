package api

import "time"

// Project status lifecycle as the backend models it.
const (
	StatusPrepare       = "PREPARE"
	StatusActive        = "ACTIVE"
	StatusLaunchingSoon = "LAUNCHING_SOON"
	StatusCompleted     = "COMPLETED"
	StatusPaused        = "PAUSED"
	StatusCancelled     = "CANCELLED"
)

// ValidStatus reports whether s is one of the backend's status values.
func ValidStatus(s string) bool {
	switch s {
	case StatusPrepare, StatusActive, StatusLaunchingSoon, StatusCompleted, StatusPaused, StatusCancelled:
		return true
	}
	return false
}

// Statuses lists the accepted project status values.
func Statuses() []string {
	return []string{StatusPrepare, StatusActive, StatusLaunchingSoon, StatusCompleted, StatusPaused, StatusCancelled}
}

// OnchainAddresses are the deployed contract addresses linked to a project,
// keyed per network.
type OnchainAddresses struct {
	Network             string `json:"network,omitempty"`
	Token               string `json:"token,omitempty"`
	CCIPPool            string `json:"ccip_pool,omitempty"`
	PrimaryDistribution string `json:"primary_distribution,omitempty"`
}

// Project is the backend's RWA project record.
type Project struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Category        string             `json:"category"`
	Description     string             `json:"description,omitempty"`
	Status          string             `json:"status"`
	TotalValuation  string             `json:"total_valuation,omitempty"`
	TokenSymbol     string             `json:"token_symbol,omitempty"`
	TotalSupply     string             `json:"total_supply,omitempty"`
	PricePerToken   string             `json:"price_per_token,omitempty"`
	OnchainProject  string             `json:"onchain_project_id,omitempty"`
	Onchain         []OnchainAddresses `json:"onchain_addresses,omitempty"`
	CreatedAt       time.Time          `json:"created_at,omitempty"`
	UpdatedAt       time.Time          `json:"updated_at,omitempty"`
}

// CreateProjectRequest is the POST /api/project payload.
type CreateProjectRequest struct {
	Name           string `json:"name"`
	Category       string `json:"category"`
	Description    string `json:"description,omitempty"`
	TotalValuation string `json:"total_valuation,omitempty"`
	TokenSymbol    string `json:"token_symbol,omitempty"`
	TotalSupply    string `json:"total_supply,omitempty"`
	PricePerToken  string `json:"price_per_token,omitempty"`
}

// UpdateProjectRequest is the PUT /api/project/{id} payload. Nil/empty
// fields are left unchanged by the backend.
type UpdateProjectRequest struct {
	Name           string             `json:"name,omitempty"`
	Category       string             `json:"category,omitempty"`
	Description    string             `json:"description,omitempty"`
	Status         string             `json:"status,omitempty"`
	TotalValuation string             `json:"total_valuation,omitempty"`
	OnchainProject string             `json:"onchain_project_id,omitempty"`
	Onchain        []OnchainAddresses `json:"onchain_addresses,omitempty"`
}

// Profile is the backend's view of the authenticated user.
type Profile struct {
	ID          string `json:"id"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Wallet      string `json:"wallet_address,omitempty"`
	Plan        string `json:"plan,omitempty"`
}
