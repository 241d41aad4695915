// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package nftvm

import "errors"

// Every failure below rejects the whole call; no partial state change
// persists. Payment-rail errors live in the fees package and authorization
// errors in components/ownable.
var (
	ErrContractPaused           = errors.New("minting is paused")
	ErrInsufficientMintQuantity = errors.New("quantity must be at least one")
	ErrExceedsBatchLimit        = errors.New("quantity exceeds batch limit")
	ErrExceedsMaxSupply         = errors.New("mint would exceed the set's max supply")
	ErrBatchLimitTooHigh        = errors.New("batch limit exceeds maximum")
	ErrZeroFeeAddress           = errors.New("fee address is the zero address")
	ErrSetNotConfigured         = errors.New("set has no base URI or max supply")
	ErrSetAlreadyActive         = errors.New("set is already active")
	ErrReentrantCall            = errors.New("reentrant call")

	errCounterExceedsSupply = errors.New("counter exceeds max supply")
)
