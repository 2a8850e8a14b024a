// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package otp implements one-time-passcode issuance and validation.
package otp

import "sync"

// Store holds at most one pending challenge per identifier.
// Identifiers are case-sensitive. The store carries no policy; expiry and
// attempt limits are evaluated by the Issuer.
type Store struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]Record),
	}
}

// Put stores a record for the identifier, replacing any prior record.
func (s *Store) Put(id string, r Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[id] = r
}

// Get returns the record for the identifier, if one exists.
func (s *Store) Get(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	return r, ok
}

// Remove deletes the record for the identifier. Removing an absent
// identifier is a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, id)
}

// Len returns the number of pending challenges.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}
