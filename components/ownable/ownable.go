// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ownable provides a single-owner authorization capability.
package ownable

import (
	"errors"
	"fmt"
	"sync"

	"github.com/luxfi/ids"
)

var (
	// ErrUnauthorized is returned when a caller other than the current owner
	// invokes an owner-only operation. The wrapped error carries the rejected
	// caller's address.
	ErrUnauthorized = errors.New("caller is not the owner")

	errZeroAddressOwner = errors.New("new owner is the zero address")
)

// Ownable tracks the single current owner of a contract instance.
// It is safe for concurrent use.
type Ownable struct {
	mu    sync.RWMutex
	owner ids.ShortID
}

func New(owner ids.ShortID) *Ownable {
	return &Ownable{owner: owner}
}

// Owner returns the current owner.
func (o *Ownable) Owner() ids.ShortID {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.owner
}

// OnlyOwner returns ErrUnauthorized if the caller is not the current owner.
func (o *Ownable) OnlyOwner(caller ids.ShortID) error {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if caller != o.owner {
		return fmt.Errorf("%w: %s", ErrUnauthorized, caller)
	}
	return nil
}

// TransferOwnership hands the contract to newOwner. Only the current owner
// may transfer, and the zero address is rejected.
func (o *Ownable) TransferOwnership(caller, newOwner ids.ShortID) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if caller != o.owner {
		return fmt.Errorf("%w: %s", ErrUnauthorized, caller)
	}
	if newOwner == ids.ShortEmpty {
		return errZeroAddressOwner
	}
	o.owner = newOwner
	return nil
}
