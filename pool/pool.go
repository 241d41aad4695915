// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pool implements the randomized display-number assigner.
//
// A Pool hands out each value in [0, size) exactly once, in an order decided
// by the injected randomness Source. The backing array is kept
// sentinel-compressed: a zero entry at slot i means "slot i still holds the
// value i", so the array never has to be initialized with the full range.
// Each draw swaps the last slot's effective value into the drawn slot and
// shrinks the array, which keeps every draw O(1).
package pool

import "errors"

// ErrEmptyPool is returned by Draw once every value has been handed out.
// Callers that enforce a supply cap before drawing never see it.
var ErrEmptyPool = errors.New("randomization pool is empty")

// Source produces the raw randomness consumed by a draw.
type Source interface {
	Uint64() uint64
}

// Pool assigns each display number in [0, size) exactly once.
type Pool struct {
	ids []uint64
	src Source
}

// New returns a pool over the range [0, size).
func New(size uint64, src Source) *Pool {
	return &Pool{
		ids: make([]uint64, size),
		src: src,
	}
}

// Load restores a pool from a previously exported backing array.
func Load(ids []uint64, src Source) *Pool {
	return &Pool{
		ids: ids,
		src: src,
	}
}

// Remaining returns the number of values not yet drawn.
func (p *Pool) Remaining() uint64 {
	return uint64(len(p.ids))
}

// Export returns the backing array for persistence. The caller must not
// mutate the returned slice.
func (p *Pool) Export() []uint64 {
	return p.ids
}

// Draw removes and returns one not-yet-assigned display number.
//
// A zero slot holds its own index (the sentinel rule). The effective value of
// the last slot is moved into the drawn slot to keep the array dense. A
// literal zero is never written back: the value 0 only ever lives at slot 0,
// and slot 0 is the last slot exactly when one value remains, in which case
// nothing is moved.
func (p *Pool) Draw() (uint64, error) {
	remaining := uint64(len(p.ids))
	if remaining == 0 {
		return 0, ErrEmptyPool
	}

	idx := p.src.Uint64() % remaining
	drawn := p.ids[idx]
	if drawn == 0 {
		drawn = idx
	}

	last := remaining - 1
	if idx != last {
		moved := p.ids[last]
		if moved == 0 {
			moved = last
		}
		p.ids[idx] = moved
	}
	p.ids = p.ids[:last]
	return drawn, nil
}
