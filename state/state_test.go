// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"testing"

	"github.com/luxfi/database"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/nftvm/components/royalty"
)

func TestSingletonRoundTrip(t *testing.T) {
	require := require.New(t)

	s := New(memdb.New())

	// Fresh state has nothing.
	_, err := s.GetPaused()
	require.ErrorIs(err, database.ErrNotFound)
	_, err = s.GetOwner()
	require.ErrorIs(err, database.ErrNotFound)

	owner := ids.GenerateTestShortID()
	feeAddr := ids.GenerateTestShortID()

	require.NoError(s.SetPaused(true))
	require.NoError(s.SetBatchLimit(5))
	require.NoError(s.SetEthFee(100))
	require.NoError(s.SetTokenFee(7))
	require.NoError(s.SetFeeAddress(feeAddr))
	require.NoError(s.SetOwner(owner))
	require.NoError(s.SetCurrentSet(2))
	require.NoError(s.SetTotalMinted(9))
	require.NoError(s.SetContractURI("ipfs://contract"))
	require.NoError(s.SetRoyalty(royalty.Info{Receiver: feeAddr, Numerator: 500}))
	require.NoError(s.SetPool([]uint64{0, 5, 0, 1}))

	paused, err := s.GetPaused()
	require.NoError(err)
	require.True(paused)

	limit, err := s.GetBatchLimit()
	require.NoError(err)
	require.Equal(uint64(5), limit)

	ethFee, err := s.GetEthFee()
	require.NoError(err)
	require.Equal(uint64(100), ethFee)

	tokenFee, err := s.GetTokenFee()
	require.NoError(err)
	require.Equal(uint64(7), tokenFee)

	gotFeeAddr, err := s.GetFeeAddress()
	require.NoError(err)
	require.Equal(feeAddr, gotFeeAddr)

	gotOwner, err := s.GetOwner()
	require.NoError(err)
	require.Equal(owner, gotOwner)

	current, err := s.GetCurrentSet()
	require.NoError(err)
	require.Equal(uint64(2), current)

	total, err := s.GetTotalMinted()
	require.NoError(err)
	require.Equal(uint64(9), total)

	uri, err := s.GetContractURI()
	require.NoError(err)
	require.Equal("ipfs://contract", uri)

	info, err := s.GetRoyalty()
	require.NoError(err)
	require.Equal(royalty.Info{Receiver: feeAddr, Numerator: 500}, info)

	poolIDs, err := s.GetPool()
	require.NoError(err)
	require.Equal([]uint64{0, 5, 0, 1}, poolIDs)
}

func TestSetRecords(t *testing.T) {
	require := require.New(t)

	s := New(memdb.New())

	_, err := s.GetSet(0)
	require.ErrorIs(err, database.ErrNotFound)

	require.NoError(s.PutSet(0, &Set{MaxSupply: 10, BaseURI: "a/"}))
	require.NoError(s.PutSet(1, &Set{MaxSupply: 5, Counter: 2, BaseURI: "b/"}))

	set, err := s.GetSet(1)
	require.NoError(err)
	require.Equal(uint64(5), set.MaxSupply)
	require.Equal(uint64(2), set.Counter)
	require.Equal("b/", set.BaseURI)

	sets, err := s.Sets()
	require.NoError(err)
	require.Len(sets, 2)
	require.Equal("a/", sets[0].BaseURI)
	require.Equal("b/", sets[1].BaseURI)
}

func TestTokenRecords(t *testing.T) {
	require := require.New(t)

	s := New(memdb.New())
	owner := ids.GenerateTestShortID()

	require.NoError(s.PutToken(1, &Token{Set: 0, DisplayNumber: 7, Owner: owner}))
	require.NoError(s.PutToken(2, &Token{Set: 0, DisplayNumber: 3, Owner: owner}))

	token, err := s.GetToken(1)
	require.NoError(err)
	require.Equal(uint64(7), token.DisplayNumber)
	require.Equal(owner, token.Owner)

	tokens, err := s.Tokens()
	require.NoError(err)
	require.Len(tokens, 2)

	require.NoError(s.DeleteToken(1))
	_, err = s.GetToken(1)
	require.ErrorIs(err, database.ErrNotFound)
}

func TestCommitAndAbort(t *testing.T) {
	require := require.New(t)

	baseDB := memdb.New()

	s := New(baseDB)
	require.NoError(s.SetTotalMinted(3))
	require.NoError(s.Commit())

	// Aborted writes never reach the backing database.
	require.NoError(s.SetTotalMinted(99))
	s.Abort()

	reopened := New(baseDB)
	total, err := reopened.GetTotalMinted()
	require.NoError(err)
	require.Equal(uint64(3), total)
}
