package ledger

import (
	"context"
	"sync"

	"claimgate/internal/claims/models"
)

type roleKey struct {
	role RoleID
	addr models.Address
}

// InMemoryRoles is the mutex-guarded role registry.
type InMemoryRoles struct {
	mu    sync.RWMutex
	roles map[roleKey]struct{}
}

// NewInMemoryRoles creates an empty role registry.
func NewInMemoryRoles() *InMemoryRoles {
	return &InMemoryRoles{roles: make(map[roleKey]struct{})}
}

func (r *InMemoryRoles) HasRole(_ context.Context, role RoleID, addr models.Address) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.roles[roleKey{role: role, addr: addr}]
	return ok, nil
}

func (r *InMemoryRoles) GrantRole(_ context.Context, role RoleID, addr models.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roles[roleKey{role: role, addr: addr}] = struct{}{}
	return nil
}

func (r *InMemoryRoles) RevokeRole(_ context.Context, role RoleID, addr models.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.roles, roleKey{role: role, addr: addr})
	return nil
}
