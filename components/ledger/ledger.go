// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ledger provides the enumerable-ownership capability: the mapping
// from token id to owner, per-address balances, and per-token approvals.
package ledger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/luxfi/ids"
)

var (
	ErrTokenNotFound = errors.New("token does not exist")
	ErrNotAuthorized = errors.New("caller is neither owner nor approved")

	errTokenExists = errors.New("token already exists")
	errZeroAddress = errors.New("zero address")
	errWrongOwner  = errors.New("from address does not own token")
)

// Ledger records token ownership. Token ids are assigned by the caller and
// are never reused, even after a burn.
type Ledger struct {
	mu        sync.RWMutex
	owners    map[uint64]ids.ShortID
	balances  map[ids.ShortID]uint64
	approvals map[uint64]ids.ShortID
}

func New() *Ledger {
	return &Ledger{
		owners:    make(map[uint64]ids.ShortID),
		balances:  make(map[ids.ShortID]uint64),
		approvals: make(map[uint64]ids.ShortID),
	}
}

// Mint records a new token owned by to.
func (l *Ledger) Mint(to ids.ShortID, tokenID uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if to == ids.ShortEmpty {
		return errZeroAddress
	}
	if _, ok := l.owners[tokenID]; ok {
		return fmt.Errorf("%w: %d", errTokenExists, tokenID)
	}
	l.owners[tokenID] = to
	l.balances[to]++
	return nil
}

// OwnerOf returns the owner of tokenID.
func (l *Ledger) OwnerOf(tokenID uint64) (ids.ShortID, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	owner, ok := l.owners[tokenID]
	if !ok {
		return ids.ShortEmpty, fmt.Errorf("%w: %d", ErrTokenNotFound, tokenID)
	}
	return owner, nil
}

// BalanceOf returns the number of tokens owned by addr.
func (l *Ledger) BalanceOf(addr ids.ShortID) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[addr]
}

// Approve authorizes spender to transfer tokenID. Only the token's owner may
// approve. A zero-address spender clears the approval.
func (l *Ledger) Approve(caller, spender ids.ShortID, tokenID uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	owner, ok := l.owners[tokenID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrTokenNotFound, tokenID)
	}
	if caller != owner {
		return fmt.Errorf("%w: %s", ErrNotAuthorized, caller)
	}
	if spender == ids.ShortEmpty {
		delete(l.approvals, tokenID)
		return nil
	}
	l.approvals[tokenID] = spender
	return nil
}

// GetApproved returns the address approved for tokenID, or the zero address
// if none is set.
func (l *Ledger) GetApproved(tokenID uint64) (ids.ShortID, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, ok := l.owners[tokenID]; !ok {
		return ids.ShortEmpty, fmt.Errorf("%w: %d", ErrTokenNotFound, tokenID)
	}
	return l.approvals[tokenID], nil
}

// Transfer moves tokenID from from to to. The caller must be the owner or
// the approved spender. Any approval is cleared on transfer.
func (l *Ledger) Transfer(caller, from, to ids.ShortID, tokenID uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	owner, ok := l.owners[tokenID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrTokenNotFound, tokenID)
	}
	if owner != from {
		return fmt.Errorf("%w: %s", errWrongOwner, from)
	}
	if to == ids.ShortEmpty {
		return errZeroAddress
	}
	if caller != owner && caller != l.approvals[tokenID] {
		return fmt.Errorf("%w: %s", ErrNotAuthorized, caller)
	}

	delete(l.approvals, tokenID)
	l.owners[tokenID] = to
	l.balances[from]--
	if l.balances[from] == 0 {
		delete(l.balances, from)
	}
	l.balances[to]++
	return nil
}

// Burn removes tokenID. The caller must be the owner or the approved spender.
// The id is retired permanently.
func (l *Ledger) Burn(caller ids.ShortID, tokenID uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	owner, ok := l.owners[tokenID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrTokenNotFound, tokenID)
	}
	if caller != owner && caller != l.approvals[tokenID] {
		return fmt.Errorf("%w: %s", ErrNotAuthorized, caller)
	}

	delete(l.approvals, tokenID)
	delete(l.owners, tokenID)
	l.balances[owner]--
	if l.balances[owner] == 0 {
		delete(l.balances, owner)
	}
	return nil
}

// Len returns the number of live tokens.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.owners)
}
