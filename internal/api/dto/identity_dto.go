package dto

import "github.com/sharath2004-tech/odoo-sub001/internal/domain"

// IdentityResponse is the public view of the authenticated identity.
type IdentityResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// AccessResponse confirms a role policy admitted the caller.
type AccessResponse struct {
	Scope    string           `json:"scope"`
	Granted  bool             `json:"granted"`
	Identity IdentityResponse `json:"identity"`
}

// NewIdentityResponse maps a domain identity to its response payload.
func NewIdentityResponse(identity domain.Identity) IdentityResponse {
	return IdentityResponse{
		ID:       identity.ID,
		FullName: identity.FullName,
		Email:    identity.Email,
		Role:     identity.Role.String(),
	}
}
