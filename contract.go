// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package nftvm implements a token-sale contract: it mints sequentially
// numbered tokens against payment in the native coin and/or a fungible
// payment token, partitions the mintable supply into successive sets, and
// assigns each minted token a randomized display number unique within its
// set.
package nftvm

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	safemath "github.com/luxfi/math"

	"github.com/luxfi/nftvm/components/ledger"
	"github.com/luxfi/nftvm/components/ownable"
	"github.com/luxfi/nftvm/components/royalty"
	"github.com/luxfi/nftvm/config"
	"github.com/luxfi/nftvm/events"
	"github.com/luxfi/nftvm/fees"
	"github.com/luxfi/nftvm/metrics"
	"github.com/luxfi/nftvm/pool"
	"github.com/luxfi/nftvm/state"
	"github.com/luxfi/nftvm/utils/timer/mockable"
)

// Contract is one drop contract instance.
//
// Execution is serialized: the host ledger never runs two state-changing
// calls concurrently, and every call either commits in full or aborts with
// prior state untouched. The payment rails can execute arbitrary logic
// before returning, so Mint additionally holds a single-entry guard across
// its external calls; rollback of rail transfers on a later failure is the
// host's concern.
type Contract struct {
	lock    sync.RWMutex
	entered atomic.Bool

	name         string
	symbol       string
	paymentToken ids.ShortID
	addr         ids.ShortID

	log     log.Logger
	clock   *mockable.Clock
	state   *state.State
	events  *events.Log
	engine  *fees.Engine
	owner   *ownable.Ownable
	ledger  *ledger.Ledger
	metrics metrics.Metrics

	source pool.Source
	pool   *pool.Pool

	// Cached singleton state; authoritative copies live in c.state.
	paused      bool
	batchLimit  uint64
	ethFee      uint64
	tokenFee    uint64
	feeAddress  ids.ShortID
	royaltyInfo royalty.Info
	currentSet  uint64
	activeSet   *state.Set
	totalMinted uint64
	contractURI string
}

// Mint issues quantity tokens to the caller. value is the attached
// native-coin amount, already credited to the contract address by the host.
// It returns the minted token ids.
func (c *Contract) Mint(caller ids.ShortID, quantity, value uint64) ([]uint64, error) {
	if !c.entered.CompareAndSwap(false, true) {
		return nil, ErrReentrantCall
	}
	defer c.entered.Store(false)

	c.lock.RLock()
	paused := c.paused
	batchLimit := c.batchLimit
	ethFee := c.ethFee
	tokenFee := c.tokenFee
	feeAddress := c.feeAddress
	counter := c.activeSet.Counter
	maxSupply := c.activeSet.MaxSupply
	c.lock.RUnlock()

	switch {
	case paused:
		return nil, ErrContractPaused
	case quantity == 0:
		return nil, ErrInsufficientMintQuantity
	case quantity > batchLimit:
		return nil, fmt.Errorf("%w: %d > %d", ErrExceedsBatchLimit, quantity, batchLimit)
	}

	newCounter, err := safemath.Add64(counter, quantity)
	if err != nil || newCounter > maxSupply {
		return nil, fmt.Errorf("%w: %d + %d > %d",
			ErrExceedsMaxSupply, counter, quantity, maxSupply,
		)
	}

	// Collect payment before touching supply state, so no re-entry path can
	// inflate supply ahead of confirmed payment.
	tokenPaid, err := c.engine.CollectTokenFee(caller, feeAddress, tokenFee, quantity)
	if err != nil {
		return nil, err
	}
	nativePaid, err := c.engine.CollectNativeFee(caller, feeAddress, value, ethFee, quantity)
	if err != nil {
		return nil, err
	}

	if seeder, ok := c.source.(pool.CallerSeeder); ok {
		seeder.SeedCaller(caller)
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	minted := make([]uint64, 0, quantity)
	for i := uint64(0); i < quantity; i++ {
		// The cap check above guarantees the pool is never empty here.
		display, err := c.pool.Draw()
		if err != nil {
			return nil, c.abort(err)
		}

		tokenID := c.totalMinted + 1
		token := &state.Token{
			Set:           c.currentSet,
			DisplayNumber: display,
			Owner:         caller,
		}
		if err := c.state.PutToken(tokenID, token); err != nil {
			return nil, c.abort(err)
		}
		if err := c.ledger.Mint(caller, tokenID); err != nil {
			return nil, c.abort(err)
		}
		if err := c.events.Append(&events.Minted{
			Caller:        caller,
			TokenID:       tokenID,
			Set:           c.currentSet,
			DisplayNumber: display,
		}); err != nil {
			return nil, c.abort(err)
		}

		c.totalMinted++
		minted = append(minted, tokenID)
	}

	c.activeSet.Counter = newCounter
	if err := c.state.PutSet(c.currentSet, c.activeSet); err != nil {
		return nil, c.abort(err)
	}
	if err := c.state.SetTotalMinted(c.totalMinted); err != nil {
		return nil, c.abort(err)
	}
	if err := c.state.SetPool(c.pool.Export()); err != nil {
		return nil, c.abort(err)
	}
	if err := c.state.Commit(); err != nil {
		return nil, c.abort(err)
	}

	c.metrics.MarkMint(quantity, nativePaid, tokenPaid)
	c.metrics.SetRemainingSupply(maxSupply - newCounter)

	c.log.Info("minted",
		log.Stringer("caller", caller),
		log.Uint64("quantity", quantity),
		log.Uint64("set", c.currentSet),
		log.Uint64("counter", newCounter),
	)
	return minted, nil
}

// StartSet activates set setID. Leftover display numbers of the previous set
// are abandoned, not carried over.
func (c *Contract) StartSet(caller ids.ShortID, setID uint64) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if err := c.owner.OnlyOwner(caller); err != nil {
		return err
	}
	if setID == c.currentSet {
		return fmt.Errorf("%w: %d", ErrSetAlreadyActive, setID)
	}

	set, err := c.state.GetSet(setID)
	if err == database.ErrNotFound {
		return fmt.Errorf("%w: %d", ErrSetNotConfigured, setID)
	}
	if err != nil {
		return err
	}
	if set.BaseURI == "" || set.MaxSupply == 0 {
		return fmt.Errorf("%w: %d", ErrSetNotConfigured, setID)
	}

	remaining, err := safemath.Sub(set.MaxSupply, set.Counter)
	if err != nil {
		return fmt.Errorf("%w: set %d", errCounterExceedsSupply, setID)
	}

	c.pool = pool.New(remaining, c.source)
	c.currentSet = setID
	c.activeSet = set

	if err := c.state.SetCurrentSet(setID); err != nil {
		return c.abort(err)
	}
	if err := c.state.SetPool(c.pool.Export()); err != nil {
		return c.abort(err)
	}
	if err := c.events.Append(&events.SetStarted{Actor: caller, Set: setID}); err != nil {
		return c.abort(err)
	}
	if err := c.state.Commit(); err != nil {
		return c.abort(err)
	}

	c.metrics.SetRemainingSupply(remaining)
	c.log.Info("set started",
		log.Stringer("actor", caller),
		log.Uint64("set", setID),
		log.Uint64("remaining", remaining),
	)
	return nil
}

// SetBaseURI configures or reconfigures a set's cap, resume-from counter,
// and metadata prefix in one call. It never touches the randomization pool;
// only StartSet does, so a future set can be staged while another is active.
func (c *Contract) SetBaseURI(caller ids.ShortID, setID, maxSupply, counter uint64, uri string) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if err := c.owner.OnlyOwner(caller); err != nil {
		return err
	}
	if counter > maxSupply {
		return fmt.Errorf("%w: %d > %d", errCounterExceedsSupply, counter, maxSupply)
	}

	set := &state.Set{
		MaxSupply: maxSupply,
		Counter:   counter,
		BaseURI:   uri,
	}
	if err := c.state.PutSet(setID, set); err != nil {
		return c.abort(err)
	}
	if setID == c.currentSet {
		c.activeSet = set
	}
	if err := c.events.Append(&events.BaseURIUpdated{
		Actor:     caller,
		Set:       setID,
		MaxSupply: maxSupply,
		Counter:   counter,
		URI:       uri,
	}); err != nil {
		return c.abort(err)
	}
	return c.commit()
}

// Pause gates or ungates minting.
func (c *Contract) Pause(caller ids.ShortID, paused bool) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if err := c.owner.OnlyOwner(caller); err != nil {
		return err
	}

	c.paused = paused
	if err := c.state.SetPaused(paused); err != nil {
		return c.abort(err)
	}
	if err := c.events.Append(&events.PauseToggled{Actor: caller, Paused: paused}); err != nil {
		return c.abort(err)
	}
	return c.commit()
}

// SetTokenFee sets the per-unit payment-token fee. Zero disables token-fee
// collection entirely.
func (c *Contract) SetTokenFee(caller ids.ShortID, fee uint64) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if err := c.owner.OnlyOwner(caller); err != nil {
		return err
	}

	c.tokenFee = fee
	if err := c.state.SetTokenFee(fee); err != nil {
		return c.abort(err)
	}
	if err := c.events.Append(&events.TokenFeeUpdated{Actor: caller, Fee: fee}); err != nil {
		return c.abort(err)
	}
	return c.commit()
}

// SetEthFee sets the per-unit native-coin fee. Zero disables native-fee
// collection entirely.
func (c *Contract) SetEthFee(caller ids.ShortID, fee uint64) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if err := c.owner.OnlyOwner(caller); err != nil {
		return err
	}

	c.ethFee = fee
	if err := c.state.SetEthFee(fee); err != nil {
		return c.abort(err)
	}
	if err := c.events.Append(&events.EthFeeUpdated{Actor: caller, Fee: fee}); err != nil {
		return c.abort(err)
	}
	return c.commit()
}

// SetFeeAddress redirects fee collection. The zero address is rejected.
func (c *Contract) SetFeeAddress(caller, feeAddress ids.ShortID) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if err := c.owner.OnlyOwner(caller); err != nil {
		return err
	}
	if feeAddress == ids.ShortEmpty {
		return ErrZeroFeeAddress
	}

	c.feeAddress = feeAddress
	if err := c.state.SetFeeAddress(feeAddress); err != nil {
		return c.abort(err)
	}
	if err := c.events.Append(&events.FeeAddressUpdated{Actor: caller, Address: feeAddress}); err != nil {
		return c.abort(err)
	}
	return c.commit()
}

// SetBatchLimit bounds the per-call mint quantity. Values above
// config.MaxBatchLimit are rejected; zero disables minting without pausing.
func (c *Contract) SetBatchLimit(caller ids.ShortID, limit uint64) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if err := c.owner.OnlyOwner(caller); err != nil {
		return err
	}
	if limit > config.MaxBatchLimit {
		return fmt.Errorf("%w: %d > %d", ErrBatchLimitTooHigh, limit, config.MaxBatchLimit)
	}

	c.batchLimit = limit
	if err := c.state.SetBatchLimit(limit); err != nil {
		return c.abort(err)
	}
	if err := c.events.Append(&events.BatchLimitUpdated{Actor: caller, Limit: limit}); err != nil {
		return c.abort(err)
	}
	return c.commit()
}

// SetContractURI replaces the collection-level metadata URI.
func (c *Contract) SetContractURI(caller ids.ShortID, uri string) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if err := c.owner.OnlyOwner(caller); err != nil {
		return err
	}

	c.contractURI = uri
	if err := c.state.SetContractURI(uri); err != nil {
		return c.abort(err)
	}
	if err := c.events.Append(&events.ContractURIUpdated{Actor: caller, URI: uri}); err != nil {
		return c.abort(err)
	}
	return c.commit()
}

// SetRoyalty replaces the reported royalty receiver and rate.
func (c *Contract) SetRoyalty(caller, receiver ids.ShortID, numerator uint64) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if err := c.owner.OnlyOwner(caller); err != nil {
		return err
	}

	info := royalty.Info{Receiver: receiver, Numerator: numerator}
	if err := info.Verify(); err != nil {
		return err
	}

	c.royaltyInfo = info
	if err := c.state.SetRoyalty(info); err != nil {
		return c.abort(err)
	}
	if err := c.events.Append(&events.RoyaltyUpdated{
		Actor:     caller,
		Receiver:  receiver,
		Numerator: numerator,
	}); err != nil {
		return c.abort(err)
	}
	return c.commit()
}

// TransferOwnership hands the contract to newOwner.
func (c *Contract) TransferOwnership(caller, newOwner ids.ShortID) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	previous := c.owner.Owner()
	if err := c.owner.TransferOwnership(caller, newOwner); err != nil {
		return err
	}

	if err := c.state.SetOwner(newOwner); err != nil {
		return c.abort(err)
	}
	if err := c.events.Append(&events.OwnershipTransferred{
		Previous: previous,
		New:      newOwner,
	}); err != nil {
		return c.abort(err)
	}
	return c.commit()
}

// WithdrawETH sweeps the contract's entire native balance to receiver.
func (c *Contract) WithdrawETH(caller, receiver ids.ShortID) (uint64, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if err := c.owner.OnlyOwner(caller); err != nil {
		return 0, err
	}

	amount, err := c.engine.WithdrawNative(receiver)
	if err != nil {
		return 0, err
	}
	if err := c.events.Append(&events.NativeWithdrawal{
		Actor:    caller,
		Receiver: receiver,
		Amount:   amount,
	}); err != nil {
		return 0, c.abort(err)
	}
	return amount, c.commit()
}

// WithdrawTokens sweeps the contract's entire balance of an arbitrary token
// contract to receiver.
func (c *Contract) WithdrawTokens(caller ids.ShortID, token fees.PaymentToken, receiver ids.ShortID) (uint64, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if err := c.owner.OnlyOwner(caller); err != nil {
		return 0, err
	}

	amount, err := c.engine.WithdrawToken(token, receiver)
	if err != nil {
		return 0, err
	}
	if err := c.events.Append(&events.TokenWithdrawal{
		Actor:    caller,
		Receiver: receiver,
		Amount:   amount,
	}); err != nil {
		return 0, c.abort(err)
	}
	return amount, c.commit()
}

// TransferToken moves a token between holders via the ownership ledger and
// keeps the durable token record in step.
func (c *Contract) TransferToken(caller, from, to ids.ShortID, tokenID uint64) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if err := c.ledger.Transfer(caller, from, to, tokenID); err != nil {
		return err
	}

	token, err := c.state.GetToken(tokenID)
	if err != nil {
		return c.abort(err)
	}
	token.Owner = to
	if err := c.state.PutToken(tokenID, token); err != nil {
		return c.abort(err)
	}
	return c.commit()
}

// ApproveToken authorizes spender to transfer tokenID.
func (c *Contract) ApproveToken(caller, spender ids.ShortID, tokenID uint64) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.ledger.Approve(caller, spender, tokenID)
}

// BurnToken retires tokenID. The id is never reused.
func (c *Contract) BurnToken(caller ids.ShortID, tokenID uint64) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if err := c.ledger.Burn(caller, tokenID); err != nil {
		return err
	}
	if err := c.state.DeleteToken(tokenID); err != nil {
		return c.abort(err)
	}
	return c.commit()
}

// commit flushes pending writes, aborting and reloading on failure.
func (c *Contract) commit() error {
	if err := c.state.Commit(); err != nil {
		return c.abort(err)
	}
	return nil
}

// abort discards pending writes and rewinds the in-memory caches to the last
// committed state. It returns err for convenient wrapping at call sites.
func (c *Contract) abort(err error) error {
	c.state.Abort()
	if rerr := c.reload(); rerr != nil {
		c.log.Error("reload after abort failed",
			log.Err(rerr),
		)
	}
	return err
}

// reload rebuilds every in-memory cache from committed state. The caller
// must hold c.lock.
func (c *Contract) reload() error {
	paused, err := c.state.GetPaused()
	if err != nil {
		return err
	}
	batchLimit, err := c.state.GetBatchLimit()
	if err != nil {
		return err
	}
	ethFee, err := c.state.GetEthFee()
	if err != nil {
		return err
	}
	tokenFee, err := c.state.GetTokenFee()
	if err != nil {
		return err
	}
	feeAddress, err := c.state.GetFeeAddress()
	if err != nil {
		return err
	}
	owner, err := c.state.GetOwner()
	if err != nil {
		return err
	}
	royaltyInfo, err := c.state.GetRoyalty()
	if err != nil {
		return err
	}
	currentSet, err := c.state.GetCurrentSet()
	if err != nil {
		return err
	}
	activeSet, err := c.state.GetSet(currentSet)
	if err != nil {
		return err
	}
	totalMinted, err := c.state.GetTotalMinted()
	if err != nil {
		return err
	}
	contractURI, err := c.state.GetContractURI()
	if err != nil {
		return err
	}
	poolIDs, err := c.state.GetPool()
	if err != nil {
		return err
	}
	tokens, err := c.state.Tokens()
	if err != nil {
		return err
	}

	replayed := ledger.New()
	for tokenID, token := range tokens {
		if err := replayed.Mint(token.Owner, tokenID); err != nil {
			return err
		}
	}

	c.paused = paused
	c.batchLimit = batchLimit
	c.ethFee = ethFee
	c.tokenFee = tokenFee
	c.feeAddress = feeAddress
	c.owner = ownable.New(owner)
	c.royaltyInfo = royaltyInfo
	c.currentSet = currentSet
	c.activeSet = activeSet
	c.totalMinted = totalMinted
	c.contractURI = contractURI
	c.pool = pool.Load(poolIDs, c.source)
	c.ledger = replayed
	return c.events.Reset()
}

// TokenURI returns token tokenID's metadata URI: its set's base URI followed
// by its display number.
func (c *Contract) TokenURI(tokenID uint64) (string, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	token, err := c.state.GetToken(tokenID)
	if err != nil {
		return "", err
	}
	set, err := c.state.GetSet(token.Set)
	if err != nil {
		return "", err
	}
	return set.BaseURI + strconv.FormatUint(token.DisplayNumber, 10), nil
}

// RoyaltyInfo reports the royalty receiver and amount owed on salePrice.
func (c *Contract) RoyaltyInfo(salePrice uint64) (ids.ShortID, uint64, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.royaltyInfo.RoyaltyInfo(salePrice)
}

// BaseURI returns set setID's metadata prefix.
func (c *Contract) BaseURI(setID uint64) (string, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	set, err := c.state.GetSet(setID)
	if err != nil {
		return "", err
	}
	return set.BaseURI, nil
}

// MaxSupply returns set setID's cap.
func (c *Contract) MaxSupply(setID uint64) (uint64, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	set, err := c.state.GetSet(setID)
	if err != nil {
		return 0, err
	}
	return set.MaxSupply, nil
}

// Counter returns how many units set setID has minted.
func (c *Contract) Counter(setID uint64) (uint64, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	set, err := c.state.GetSet(setID)
	if err != nil {
		return 0, err
	}
	return set.Counter, nil
}

// GlobalMaxSupply returns the sum of every configured set's cap.
func (c *Contract) GlobalMaxSupply() (uint64, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	sets, err := c.state.Sets()
	if err != nil {
		return 0, err
	}
	var total uint64
	for _, set := range sets {
		total, err = safemath.Add64(total, set.MaxSupply)
		if err != nil {
			return 0, err
		}
	}
	return total, nil
}

// OwnerOf returns the current owner of tokenID.
func (c *Contract) OwnerOf(tokenID uint64) (ids.ShortID, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.ledger.OwnerOf(tokenID)
}

// BalanceOf returns how many tokens addr holds.
func (c *Contract) BalanceOf(addr ids.ShortID) uint64 {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.ledger.BalanceOf(addr)
}

func (c *Contract) Name() string {
	return c.name
}

func (c *Contract) Symbol() string {
	return c.symbol
}

func (c *Contract) Paused() bool {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.paused
}

func (c *Contract) BatchLimit() uint64 {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.batchLimit
}

func (c *Contract) EthFee() uint64 {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.ethFee
}

func (c *Contract) TokenFee() uint64 {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.tokenFee
}

func (c *Contract) FeeAddress() ids.ShortID {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.feeAddress
}

func (c *Contract) PaymentTokenAddress() ids.ShortID {
	return c.paymentToken
}

func (c *Contract) Owner() ids.ShortID {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.owner.Owner()
}

func (c *Contract) CurrentSet() uint64 {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.currentSet
}

func (c *Contract) TotalMinted() uint64 {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.totalMinted
}

// Remaining returns how many units the active set can still mint.
func (c *Contract) Remaining() uint64 {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.activeSet.MaxSupply - c.activeSet.Counter
}

func (c *Contract) ContractURI() string {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.contractURI
}

// EventLog exposes the emitted event log for queries.
func (c *Contract) EventLog() *events.Log {
	return c.events
}
