// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package nftvm

import (
	"errors"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"

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

// Factory builds wired Contract instances from one Config.
type Factory struct {
	Config config.Config

	// Source overrides the chain-entropy randomness source. Tests inject a
	// deterministic one; leave nil for production behavior.
	Source pool.Source
}

// New returns a Contract backed by db. A fresh database is bootstrapped from
// the config; a database that has seen a previous instance resumes from its
// committed state and ignores the config's initial values.
func (f *Factory) New(
	logger log.Logger,
	db database.Database,
	token fees.PaymentToken,
	native fees.NativeRail,
	contractAddr ids.ShortID,
	registerer metric.Registerer,
) (*Contract, error) {
	if err := f.Config.Validate(); err != nil {
		return nil, err
	}

	st := state.New(db)
	clock := &mockable.Clock{}

	source := f.Source
	if source == nil {
		source = pool.NewChainSource(clock)
	}

	if _, err := st.GetOwner(); err == database.ErrNotFound {
		if err := bootstrapState(st, f.Config); err != nil {
			st.Abort()
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	eventLog, err := events.NewLog(st.EventDB(), clock, logger)
	if err != nil {
		return nil, err
	}

	m, err := metrics.New(registerer)
	if err != nil {
		return nil, err
	}

	c := &Contract{
		name:         f.Config.Name,
		symbol:       f.Config.Symbol,
		paymentToken: f.Config.PaymentToken,
		addr:         contractAddr,
		log:          logger,
		clock:        clock,
		state:        st,
		events:       eventLog,
		engine:       fees.NewEngine(logger, token, native, contractAddr),
		owner:        ownable.New(f.Config.Owner),
		metrics:      m,
		source:       source,
	}
	if err := c.reload(); err != nil {
		return nil, err
	}

	c.metrics.SetRemainingSupply(c.activeSet.MaxSupply - c.activeSet.Counter)
	logger.Info("contract initialized",
		log.String("name", c.name),
		log.Uint64("set", c.currentSet),
		log.Uint64("totalMinted", c.totalMinted),
	)
	return c, nil
}

// bootstrapState seeds a fresh database from the config: set 0 is configured
// and active, its randomization pool is full, and minting starts paused.
func bootstrapState(st *state.State, cfg config.Config) error {
	set := &state.Set{
		MaxSupply: cfg.MaxSupply,
		BaseURI:   cfg.BaseURI,
	}

	err := errors.Join(
		st.SetOwner(cfg.Owner),
		st.SetPaused(true),
		st.SetBatchLimit(cfg.BatchLimit),
		st.SetEthFee(cfg.EthFee),
		st.SetTokenFee(cfg.TokenFee),
		st.SetFeeAddress(cfg.FeeAddress),
		st.SetContractURI(cfg.ContractURI),
		st.SetRoyalty(royalty.Info{
			Receiver:  cfg.FeeAddress,
			Numerator: cfg.RoyaltyNumerator,
		}),
		st.SetCurrentSet(0),
		st.SetTotalMinted(0),
		st.PutSet(0, set),
		st.SetPool(make([]uint64, cfg.MaxSupply)),
	)
	if err != nil {
		return err
	}
	return st.Commit()
}
