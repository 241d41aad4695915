// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package events

import (
	"errors"

	"github.com/luxfi/codec"
	"github.com/luxfi/codec/linearcodec"
)

const (
	codecVersion = 0

	maxEventSize = 8 * 1024
)

var c codec.Manager

func init() {
	c = codec.NewManager(maxEventSize)
	lc := linearcodec.NewDefault()

	err := errors.Join(
		lc.RegisterType(&Minted{}),
		lc.RegisterType(&SetStarted{}),
		lc.RegisterType(&PauseToggled{}),
		lc.RegisterType(&TokenFeeUpdated{}),
		lc.RegisterType(&EthFeeUpdated{}),
		lc.RegisterType(&FeeAddressUpdated{}),
		lc.RegisterType(&BatchLimitUpdated{}),
		lc.RegisterType(&BaseURIUpdated{}),
		lc.RegisterType(&ContractURIUpdated{}),
		lc.RegisterType(&RoyaltyUpdated{}),
		lc.RegisterType(&OwnershipTransferred{}),
		lc.RegisterType(&NativeWithdrawal{}),
		lc.RegisterType(&TokenWithdrawal{}),
		c.RegisterCodec(codecVersion, lc),
	)
	if err != nil {
		panic(err)
	}
}
