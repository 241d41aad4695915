// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package royalty

import (
	"math"
	"testing"

	"github.com/luxfi/ids"
	safemath "github.com/luxfi/math"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	require := require.New(t)

	receiver := ids.GenerateTestShortID()

	require.NoError(Info{Receiver: receiver, Numerator: 0}.Verify())
	require.NoError(Info{Receiver: receiver, Numerator: Denominator}.Verify())

	err := Info{Receiver: receiver, Numerator: Denominator + 1}.Verify()
	require.ErrorIs(err, ErrNumeratorTooHigh)
}

func TestRoyaltyInfo(t *testing.T) {
	require := require.New(t)

	receiver := ids.GenerateTestShortID()
	info := Info{Receiver: receiver, Numerator: 250} // 2.5%

	to, amount, err := info.RoyaltyInfo(10_000)
	require.NoError(err)
	require.Equal(receiver, to)
	require.Equal(uint64(250), amount)

	// Rounds down on fractional amounts.
	_, amount, err = info.RoyaltyInfo(39)
	require.NoError(err)
	require.Zero(amount)

	// Overflowing sale prices are rejected rather than wrapped.
	_, _, err = info.RoyaltyInfo(math.MaxUint64)
	require.ErrorIs(err, safemath.ErrOverflow)
}
