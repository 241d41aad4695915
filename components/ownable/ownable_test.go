// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ownable

import (
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

func TestOnlyOwner(t *testing.T) {
	require := require.New(t)

	owner := ids.GenerateTestShortID()
	stranger := ids.GenerateTestShortID()

	o := New(owner)
	require.Equal(owner, o.Owner())
	require.NoError(o.OnlyOwner(owner))

	err := o.OnlyOwner(stranger)
	require.ErrorIs(err, ErrUnauthorized)
	require.Contains(err.Error(), stranger.String())
}

func TestTransferOwnership(t *testing.T) {
	require := require.New(t)

	owner := ids.GenerateTestShortID()
	next := ids.GenerateTestShortID()

	o := New(owner)

	// Only the current owner may transfer.
	err := o.TransferOwnership(next, next)
	require.ErrorIs(err, ErrUnauthorized)

	// The zero address is never a valid owner.
	err = o.TransferOwnership(owner, ids.ShortEmpty)
	require.ErrorIs(err, errZeroAddressOwner)

	require.NoError(o.TransferOwnership(owner, next))
	require.Equal(next, o.Owner())

	// The previous owner is locked out after the transfer.
	err = o.OnlyOwner(owner)
	require.ErrorIs(err, ErrUnauthorized)
}
