// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package nftvm_test

import (
	"testing"

	"github.com/luxfi/log"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/nftvm"
	"github.com/luxfi/nftvm/events"
	"github.com/luxfi/nftvm/utils/json"
)

func newTestService(t *testing.T) (*nftvm.Service, *testEnv) {
	env := newTestEnv(t, defaultTestConfig())
	return nftvm.NewService(env.contract, log.NoLog{}), env
}

func TestServiceCreateHandler(t *testing.T) {
	require := require.New(t)
	service, _ := newTestService(t)

	handler, err := service.CreateHandler()
	require.NoError(err)
	require.NotNil(handler)
}

func TestServiceMint(t *testing.T) {
	require := require.New(t)
	service, env := newTestService(t)

	reply := nftvm.MintReply{}
	err := service.Mint(nil, &nftvm.MintArgs{
		Caller:   env.minter.String(),
		Quantity: 3,
	}, &reply)
	require.NoError(err)
	require.Equal([]json.Uint64{1, 2, 3}, reply.TokenIDs)

	err = service.Mint(nil, &nftvm.MintArgs{
		Caller:   "not an address",
		Quantity: 1,
	}, &reply)
	require.Error(err)

	err = service.Mint(nil, &nftvm.MintArgs{
		Caller:   env.minter.String(),
		Quantity: 0,
	}, &reply)
	require.ErrorIs(err, nftvm.ErrInsufficientMintQuantity)
}

func TestServiceAdminFlow(t *testing.T) {
	require := require.New(t)
	service, env := newTestService(t)
	owner := env.owner.String()

	require.NoError(service.SetBaseURI(nil, &nftvm.SetBaseURIArgs{
		Caller:    owner,
		Set:       1,
		MaxSupply: 5,
		URI:       "b/",
	}, nil))
	require.NoError(service.StartSet(nil, &nftvm.StartSetArgs{
		Caller: owner,
		Set:    1,
	}, nil))
	require.NoError(service.SetTokenFee(nil, &nftvm.SetFeeArgs{
		Caller: owner,
		Fee:    7,
	}, nil))
	require.NoError(service.SetBatchLimit(nil, &nftvm.SetBatchLimitArgs{
		Caller: owner,
		Limit:  3,
	}, nil))

	status := nftvm.StatusReply{}
	require.NoError(service.Status(nil, nil, &status))
	require.False(status.Paused)
	require.Equal(json.Uint64(1), status.CurrentSet)
	require.Equal(json.Uint64(7), status.TokenFee)
	require.Equal(json.Uint64(3), status.BatchLimit)
	require.Equal(json.Uint64(5), status.Remaining)
	require.Equal(owner, status.Owner)

	info := nftvm.SetInfoReply{}
	require.NoError(service.SetInfo(nil, &nftvm.SetInfoArgs{Set: 1}, &info))
	require.Equal("b/", info.BaseURI)
	require.Equal(json.Uint64(5), info.MaxSupply)
	require.Equal(json.Uint64(0), info.Counter)
}

func TestServiceQueries(t *testing.T) {
	require := require.New(t)
	service, env := newTestService(t)

	minted, err := env.mint(env.minter, 2, 0)
	require.NoError(err)

	uriReply := nftvm.TokenURIReply{}
	require.NoError(service.TokenURI(nil, &nftvm.TokenArgs{
		TokenID: json.Uint64(minted[0]),
	}, &uriReply))
	require.Equal("a/", uriReply.URI[:2])

	ownerReply := nftvm.OwnerOfReply{}
	require.NoError(service.OwnerOf(nil, &nftvm.TokenArgs{
		TokenID: json.Uint64(minted[0]),
	}, &ownerReply))
	require.Equal(env.minter.String(), ownerReply.Owner)

	balanceReply := nftvm.BalanceOfReply{}
	require.NoError(service.BalanceOf(nil, &nftvm.BalanceOfArgs{
		Address: env.minter.String(),
	}, &balanceReply))
	require.Equal(json.Uint64(2), balanceReply.Balance)

	collection := nftvm.CollectionReply{}
	require.NoError(service.Collection(nil, nil, &collection))
	require.Equal("Queens", collection.Name)
	require.Equal("QUEEN", collection.Symbol)
	require.Equal(json.Uint64(10), collection.GlobalMaxSupply)

	numEvents := nftvm.NumEventsReply{}
	require.NoError(service.NumEvents(nil, nil, &numEvents))
	require.Equal(json.Uint64(3), numEvents.Count)

	eventReply := nftvm.GetEventReply{}
	require.NoError(service.GetEvent(nil, &nftvm.GetEventArgs{Index: 1}, &eventReply))
	require.Equal((&events.Minted{}).Kind(), eventReply.Kind)
}
