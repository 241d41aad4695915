// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pool

import (
	"encoding/binary"

	"github.com/luxfi/crypto/hash"
	"github.com/luxfi/ids"

	"github.com/luxfi/nftvm/utils/timer/mockable"
)

var _ Source = (*ChainSource)(nil)

// CallerSeeder is implemented by sources whose randomness is salted with the
// address that triggered the current operation.
type CallerSeeder interface {
	SeedCaller(ids.ShortID)
}

// ChainSource derives draw randomness from chain-local values: the current
// clock reading, the calling address, and a draw counter. The output is
// unpredictable to an observer outside the call but is NOT cryptographically
// secure; it is unsuitable for high-value adversarial settings.
type ChainSource struct {
	clock  *mockable.Clock
	caller ids.ShortID
	nonce  uint64
}

func NewChainSource(clock *mockable.Clock) *ChainSource {
	return &ChainSource{clock: clock}
}

// SeedCaller salts subsequent draws with addr.
func (s *ChainSource) SeedCaller(addr ids.ShortID) {
	s.caller = addr
}

func (s *ChainSource) Uint64() uint64 {
	s.nonce++

	buf := make([]byte, 0, 8+len(s.caller)+8)
	buf = binary.BigEndian.AppendUint64(buf, s.clock.Unix())
	buf = append(buf, s.caller[:]...)
	buf = binary.BigEndian.AppendUint64(buf, s.nonce)

	digest := hash.ComputeHash256(buf)
	return binary.BigEndian.Uint64(digest)
}
