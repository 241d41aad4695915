// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package feestest provides in-memory payment rails for tests.
package feestest

import (
	"sync"

	"github.com/luxfi/ids"

	"github.com/luxfi/nftvm/fees"
)

var (
	_ fees.PaymentToken = (*Token)(nil)
	_ fees.NativeRail   = (*Rail)(nil)
)

// Token is an in-memory fungible token implementing fees.PaymentToken.
type Token struct {
	mu         sync.Mutex
	balances   map[ids.ShortID]uint64
	allowances map[ids.ShortID]map[ids.ShortID]uint64

	// Transfers counts successful TransferFrom calls, letting tests assert
	// the zero-fee path performs no token interaction at all.
	Transfers int
}

func NewToken() *Token {
	return &Token{
		balances:   make(map[ids.ShortID]uint64),
		allowances: make(map[ids.ShortID]map[ids.ShortID]uint64),
	}
}

// Credit adds amount to addr's balance.
func (t *Token) Credit(addr ids.ShortID, amount uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.balances[addr] += amount
}

// Approve lets spender pull up to amount from owner.
func (t *Token) Approve(owner, spender ids.ShortID, amount uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	m := t.allowances[owner]
	if m == nil {
		m = make(map[ids.ShortID]uint64)
		t.allowances[owner] = m
	}
	m[spender] = amount
}

func (t *Token) BalanceOf(addr ids.ShortID) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.balances[addr]
}

func (t *Token) Allowance(owner, spender ids.ShortID) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.allowances[owner][spender]
}

func (t *Token) TransferFrom(spender, from, to ids.ShortID, amount uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.balances[from] < amount {
		return false
	}
	if spender != from {
		allowance := t.allowances[from][spender]
		if allowance < amount {
			return false
		}
		t.allowances[from][spender] = allowance - amount
	}
	t.balances[from] -= amount
	t.balances[to] += amount
	t.Transfers++
	return true
}

// Rail is an in-memory native-coin ledger implementing fees.NativeRail.
type Rail struct {
	mu       sync.Mutex
	balances map[ids.ShortID]uint64

	// Transfers counts successful Transfer calls.
	Transfers int

	// FailNext forces the next Transfer to report failure, simulating a
	// broken payment rail.
	FailNext bool

	// OnTransfer, when set, runs inside every successful Transfer. Tests use
	// it to exercise re-entry paths.
	OnTransfer func()
}

func NewRail() *Rail {
	return &Rail{balances: make(map[ids.ShortID]uint64)}
}

// Credit adds amount to addr's balance.
func (r *Rail) Credit(addr ids.ShortID, amount uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.balances[addr] += amount
}

func (r *Rail) BalanceOf(addr ids.ShortID) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.balances[addr]
}

func (r *Rail) Transfer(from, to ids.ShortID, amount uint64) bool {
	r.mu.Lock()
	if r.FailNext {
		r.FailNext = false
		r.mu.Unlock()
		return false
	}
	if r.balances[from] < amount {
		r.mu.Unlock()
		return false
	}
	r.balances[from] -= amount
	r.balances[to] += amount
	r.Transfers++
	callback := r.OnTransfer
	r.mu.Unlock()

	if callback != nil {
		callback()
	}
	return true
}
