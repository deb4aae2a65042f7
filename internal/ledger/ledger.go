// Package ledger is the in-process execution environment the claim oracle and
// the token write to: role-gated authorization, a transaction journal with
// receipts, and compliance-gated value movement. It implements the collaborator
// surface a remote chain would otherwise provide.
package ledger

import (
	"context"

	"claimgate/internal/claims/models"
)

// RoleID is the fixed-width identifier of an authorization role, the
// keccak-256 of the role name.
type RoleID [32]byte

// Well-known roles.
var (
	// AgentRole authorizes an address to relay claim submissions.
	AgentRole = NewRoleID("AGENT_ROLE")
	// AdminRole authorizes role management itself.
	AdminRole = NewRoleID("ADMIN_ROLE")
)

// NewRoleID canonicalizes a role name.
func NewRoleID(name string) RoleID {
	return RoleID(models.Keccak256([]byte(name)))
}

// Roles is the authorization primitive consumed by the claim oracle.
type Roles interface {
	// HasRole reports whether addr holds the role.
	HasRole(ctx context.Context, role RoleID, addr models.Address) (bool, error)

	// GrantRole grants the role to addr. Granting twice is a no-op.
	GrantRole(ctx context.Context, role RoleID, addr models.Address) error

	// RevokeRole removes the role from addr. Revoking an absent role is a
	// no-op.
	RevokeRole(ctx context.Context, role RoleID, addr models.Address) error
}
