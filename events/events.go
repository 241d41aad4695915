// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package events defines the typed events the contract emits and a durable,
// index-addressed log to hold them. Every mutating admin operation and every
// mint appends exactly one event carrying the actor and the new value.
package events

import "github.com/luxfi/ids"

// Event is one emitted contract event.
type Event interface {
	Kind() string
}

type Minted struct {
	Caller        ids.ShortID `serialize:"true" json:"caller"`
	TokenID       uint64      `serialize:"true" json:"tokenID"`
	Set           uint64      `serialize:"true" json:"set"`
	DisplayNumber uint64      `serialize:"true" json:"displayNumber"`
}

func (*Minted) Kind() string { return "minted" }

type SetStarted struct {
	Actor ids.ShortID `serialize:"true" json:"actor"`
	Set   uint64      `serialize:"true" json:"set"`
}

func (*SetStarted) Kind() string { return "set_started" }

type PauseToggled struct {
	Actor  ids.ShortID `serialize:"true" json:"actor"`
	Paused bool        `serialize:"true" json:"paused"`
}

func (*PauseToggled) Kind() string { return "pause_toggled" }

type TokenFeeUpdated struct {
	Actor ids.ShortID `serialize:"true" json:"actor"`
	Fee   uint64      `serialize:"true" json:"fee"`
}

func (*TokenFeeUpdated) Kind() string { return "token_fee_updated" }

type EthFeeUpdated struct {
	Actor ids.ShortID `serialize:"true" json:"actor"`
	Fee   uint64      `serialize:"true" json:"fee"`
}

func (*EthFeeUpdated) Kind() string { return "eth_fee_updated" }

type FeeAddressUpdated struct {
	Actor   ids.ShortID `serialize:"true" json:"actor"`
	Address ids.ShortID `serialize:"true" json:"address"`
}

func (*FeeAddressUpdated) Kind() string { return "fee_address_updated" }

type BatchLimitUpdated struct {
	Actor ids.ShortID `serialize:"true" json:"actor"`
	Limit uint64      `serialize:"true" json:"limit"`
}

func (*BatchLimitUpdated) Kind() string { return "batch_limit_updated" }

type BaseURIUpdated struct {
	Actor     ids.ShortID `serialize:"true" json:"actor"`
	Set       uint64      `serialize:"true" json:"set"`
	MaxSupply uint64      `serialize:"true" json:"maxSupply"`
	Counter   uint64      `serialize:"true" json:"counter"`
	URI       string      `serialize:"true" json:"uri"`
}

func (*BaseURIUpdated) Kind() string { return "base_uri_updated" }

type ContractURIUpdated struct {
	Actor ids.ShortID `serialize:"true" json:"actor"`
	URI   string      `serialize:"true" json:"uri"`
}

func (*ContractURIUpdated) Kind() string { return "contract_uri_updated" }

type RoyaltyUpdated struct {
	Actor     ids.ShortID `serialize:"true" json:"actor"`
	Receiver  ids.ShortID `serialize:"true" json:"receiver"`
	Numerator uint64      `serialize:"true" json:"numerator"`
}

func (*RoyaltyUpdated) Kind() string { return "royalty_updated" }

type OwnershipTransferred struct {
	Previous ids.ShortID `serialize:"true" json:"previous"`
	New      ids.ShortID `serialize:"true" json:"new"`
}

func (*OwnershipTransferred) Kind() string { return "ownership_transferred" }

type NativeWithdrawal struct {
	Actor    ids.ShortID `serialize:"true" json:"actor"`
	Receiver ids.ShortID `serialize:"true" json:"receiver"`
	Amount   uint64      `serialize:"true" json:"amount"`
}

func (*NativeWithdrawal) Kind() string { return "native_withdrawal" }

type TokenWithdrawal struct {
	Actor    ids.ShortID `serialize:"true" json:"actor"`
	Receiver ids.ShortID `serialize:"true" json:"receiver"`
	Amount   uint64      `serialize:"true" json:"amount"`
}

func (*TokenWithdrawal) Kind() string { return "token_withdrawal" }
