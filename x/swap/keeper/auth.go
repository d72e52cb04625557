package keeper

import (
	"crypto/subtle"

	"github.com/swaptrade/swaptrade/internal/statestore"
	"github.com/swaptrade/swaptrade/x/swap/types"
)

// Authorization gate. The host environment verifies signatures and hands
// the core an attested caller identity; the gate only performs identity
// equality and admin role checks. It never inspects amounts or balances,
// and it runs before any state mutation on every mutating operation.

// requireIdentity fails with ErrUnauthorized unless caller matches
// required. The comparison is constant-time so the failure reveals nothing
// about the required identity.
func requireIdentity(caller, required string) error {
	if caller == "" || required == "" {
		return types.ErrUnauthorized.Wrap("missing identity")
	}
	if subtle.ConstantTimeCompare([]byte(caller), []byte(required)) != 1 {
		return types.ErrUnauthorized.Wrap("caller identity mismatch")
	}
	return nil
}

func requireAdmin(kv statestore.KV, caller string) error {
	admin := getString(kv, AdminKey)
	if admin == "" {
		return types.ErrInvalidState.Wrap("admin identity not initialized")
	}
	return requireIdentity(caller, admin)
}

// GetAdmin returns the current admin identity.
func (k *Keeper) GetAdmin() string {
	return getString(k.base, AdminKey)
}
