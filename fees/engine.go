// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package fees implements the dual-currency payment engine: per-unit fees in
// the native coin and in a fungible payment token, plus full-balance
// withdrawals.
package fees

import (
	"errors"
	"fmt"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	safemath "github.com/luxfi/math"
)

var (
	// Caller-correctable precondition failures.
	ErrInsufficientTokenBalance = errors.New("insufficient payment token balance")
	ErrInsufficientEthFee       = errors.New("insufficient native fee attached")

	// Transport failures: the payment rail itself reported failure. These are
	// distinct from the precondition errors above because they indicate a
	// problem with the rail, not with the request.
	ErrTokenTransferFailed = errors.New("payment token transfer failed")
	ErrEthTransferFailed   = errors.New("native transfer failed")
)

// PaymentToken is the fungible-token collaborator. It follows the standard
// balance/allowance/transfer-from shape and reports success as a boolean
// rather than an error; callers must check the return value. The spender
// argument to TransferFrom is the acting address: spending another address's
// balance requires a prior allowance, spending your own does not.
type PaymentToken interface {
	BalanceOf(addr ids.ShortID) uint64
	Allowance(owner, spender ids.ShortID) uint64
	TransferFrom(spender, from, to ids.ShortID, amount uint64) bool
}

// NativeRail moves native-coin balances between addresses.
type NativeRail interface {
	BalanceOf(addr ids.ShortID) uint64
	Transfer(from, to ids.ShortID, amount uint64) bool
}

// Engine collects mint fees and performs withdrawals on behalf of one
// contract address. Fee parameters are owned by the contract's state and
// passed per call.
type Engine struct {
	log      log.Logger
	token    PaymentToken
	native   NativeRail
	contract ids.ShortID
}

func NewEngine(logger log.Logger, token PaymentToken, native NativeRail, contract ids.ShortID) *Engine {
	return &Engine{
		log:      logger,
		token:    token,
		native:   native,
		contract: contract,
	}
}

// TotalFee returns feePerUnit * quantity, erroring on overflow.
func TotalFee(feePerUnit, quantity uint64) (uint64, error) {
	return safemath.Mul64(feePerUnit, quantity)
}

// CollectTokenFee pulls feePerUnit*quantity payment tokens from the caller to
// feeAddr and returns the amount collected. A zero feePerUnit skips the
// balance check and the transfer entirely.
func (e *Engine) CollectTokenFee(caller, feeAddr ids.ShortID, feePerUnit, quantity uint64) (uint64, error) {
	if feePerUnit == 0 {
		return 0, nil
	}

	total, err := TotalFee(feePerUnit, quantity)
	if err != nil {
		return 0, err
	}
	if balance := e.token.BalanceOf(caller); balance < total {
		return 0, fmt.Errorf("%w: have %d, need %d", ErrInsufficientTokenBalance, balance, total)
	}
	if !e.token.TransferFrom(e.contract, caller, feeAddr, total) {
		return 0, ErrTokenTransferFailed
	}

	e.log.Debug("collected token fee",
		log.Stringer("caller", caller),
		log.Uint64("amount", total),
	)
	return total, nil
}

// CollectNativeFee forwards the exact computed fee out of the attached value
// to feeAddr and returns the amount forwarded. The attached value is already
// credited to the contract address when this runs; any surplus over the
// computed fee stays on the contract balance. A zero feePerUnit accepts any
// attached value, including zero, without forwarding.
func (e *Engine) CollectNativeFee(caller, feeAddr ids.ShortID, value, feePerUnit, quantity uint64) (uint64, error) {
	if feePerUnit == 0 {
		return 0, nil
	}

	total, err := TotalFee(feePerUnit, quantity)
	if err != nil {
		return 0, err
	}
	if value < total {
		return 0, fmt.Errorf("%w: provided %d, required %d", ErrInsufficientEthFee, value, total)
	}
	if !e.native.Transfer(e.contract, feeAddr, total) {
		return 0, ErrEthTransferFailed
	}

	e.log.Debug("collected native fee",
		log.Stringer("caller", caller),
		log.Uint64("amount", total),
	)
	return total, nil
}

// WithdrawNative sweeps the contract's entire native balance to receiver.
func (e *Engine) WithdrawNative(receiver ids.ShortID) (uint64, error) {
	balance := e.native.BalanceOf(e.contract)
	if balance == 0 {
		return 0, nil
	}
	if !e.native.Transfer(e.contract, receiver, balance) {
		return 0, ErrEthTransferFailed
	}
	return balance, nil
}

// WithdrawToken sweeps the contract's entire balance of an arbitrary token
// contract to receiver.
func (e *Engine) WithdrawToken(token PaymentToken, receiver ids.ShortID) (uint64, error) {
	balance := token.BalanceOf(e.contract)
	if balance == 0 {
		return 0, nil
	}
	if !token.TransferFrom(e.contract, e.contract, receiver, balance) {
		return 0, ErrTokenTransferFailed
	}
	return balance, nil
}
