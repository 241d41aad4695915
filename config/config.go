// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config collects the foundational parameters of one drop contract
// instance. Deployment tooling supplies one Config per network.
package config

import (
	"errors"
	"fmt"

	"github.com/luxfi/ids"

	"github.com/luxfi/nftvm/components/royalty"
)

// MaxBatchLimit is the hard upper bound on the per-call mint quantity.
const MaxBatchLimit = 100

var (
	errZeroOwner        = errors.New("owner is the zero address")
	errZeroFeeAddress   = errors.New("fee address is the zero address")
	errZeroMaxSupply    = errors.New("max supply is zero")
	errEmptyBaseURI     = errors.New("base URI is empty")
	errBatchLimitTooBig = errors.New("batch limit exceeds maximum")
)

// Struct collecting all the foundational parameters of the drop contract.
type Config struct {
	// Collection name and symbol.
	Name   string `json:"name"`
	Symbol string `json:"symbol"`

	// Initial contract owner.
	Owner ids.ShortID `json:"owner"`

	// Receiver of all mint fees.
	FeeAddress ids.ShortID `json:"feeAddress"`

	// Address of the fungible token used for token-fee payment.
	PaymentToken ids.ShortID `json:"paymentToken"`

	// Per-unit mint fees. Either may be zero.
	EthFee   uint64 `json:"ethFee"`
	TokenFee uint64 `json:"tokenFee"`

	// Cap and metadata prefix of set 0.
	MaxSupply uint64 `json:"maxSupply"`
	BaseURI   string `json:"baseURI"`

	// Collection-level metadata URI.
	ContractURI string `json:"contractURI"`

	// Royalty rate over royalty.Denominator, reported to marketplaces.
	// Royalties are paid to FeeAddress.
	RoyaltyNumerator uint64 `json:"royaltyNumerator"`

	// Max quantity per mint call.
	BatchLimit uint64 `json:"batchLimit"`
}

func DefaultConfig() Config {
	return Config{
		BatchLimit: 10,
	}
}

func (c *Config) Validate() error {
	switch {
	case c.Owner == ids.ShortEmpty:
		return errZeroOwner
	case c.FeeAddress == ids.ShortEmpty:
		return errZeroFeeAddress
	case c.MaxSupply == 0:
		return errZeroMaxSupply
	case c.BaseURI == "":
		return errEmptyBaseURI
	case c.BatchLimit > MaxBatchLimit:
		return fmt.Errorf("%w: %d > %d", errBatchLimitTooBig, c.BatchLimit, MaxBatchLimit)
	}
	return royalty.Info{Receiver: c.FeeAddress, Numerator: c.RoyaltyNumerator}.Verify()
}
