// Package statestore abstracts the host-owned key-value storage the ledger
// core runs against. The backing database cannot be assumed enumerable, so
// callers that need full-state audits maintain their own index keys.
package statestore

import (
	"fmt"

	dbm "github.com/cosmos/cosmos-db"
)

// KV is the narrow store surface the ledger mutates. A nil return from Get
// means the key is absent; absence and a stored empty value are not
// distinguished.
type KV interface {
	Get(key []byte) []byte
	Has(key []byte) bool
	Set(key, value []byte)
	Delete(key []byte)
}

// Store adapts a cosmos-db backend to the KV interface. Backend read or
// write failures indicate corrupted host storage and panic; the host
// serializes calls, so there is no partially applied operation to unwind.
type Store struct {
	db dbm.DB
}

// New wraps a cosmos-db database.
func New(db dbm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(key []byte) []byte {
	value, err := s.db.Get(key)
	if err != nil {
		panic(fmt.Errorf("statestore: get %X: %w", key, err))
	}
	return value
}

func (s *Store) Has(key []byte) bool {
	ok, err := s.db.Has(key)
	if err != nil {
		panic(fmt.Errorf("statestore: has %X: %w", key, err))
	}
	return ok
}

func (s *Store) Set(key, value []byte) {
	if err := s.db.Set(key, value); err != nil {
		panic(fmt.Errorf("statestore: set %X: %w", key, err))
	}
}

func (s *Store) Delete(key []byte) {
	if err := s.db.Delete(key); err != nil {
		panic(fmt.Errorf("statestore: delete %X: %w", key, err))
	}
}
