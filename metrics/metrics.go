// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"errors"

	"github.com/luxfi/metric"
)

var _ Metrics = (*metricsImpl)(nil)

type Metrics interface {
	// MarkMint updates every metric affected by one successful mint call.
	MarkMint(quantity, nativeFee, tokenFee uint64)

	// SetRemainingSupply publishes how many units the active set can still
	// mint.
	SetRemainingSupply(remaining uint64)
}

type metricsImpl struct {
	numMints        metric.Counter
	numTokensMinted metric.Counter
	nativeFees      metric.Counter
	tokenFees       metric.Counter
	remainingSupply metric.Gauge
}

func New(registerer metric.Registerer) (Metrics, error) {
	m := &metricsImpl{
		numMints: metric.NewCounter(metric.CounterOpts{
			Name: "mints",
			Help: "Number of successful mint calls",
		}),
		numTokensMinted: metric.NewCounter(metric.CounterOpts{
			Name: "tokens_minted",
			Help: "Number of tokens minted",
		}),
		nativeFees: metric.NewCounter(metric.CounterOpts{
			Name: "native_fees_collected",
			Help: "Total native fee amount forwarded to the fee address",
		}),
		tokenFees: metric.NewCounter(metric.CounterOpts{
			Name: "token_fees_collected",
			Help: "Total payment token fee amount pulled to the fee address",
		}),
		remainingSupply: metric.NewGauge(metric.GaugeOpts{
			Name: "remaining_supply",
			Help: "Units still mintable in the active set",
		}),
	}

	err := errors.Join(
		registerer.Register(metric.AsCollector(m.numMints)),
		registerer.Register(metric.AsCollector(m.numTokensMinted)),
		registerer.Register(metric.AsCollector(m.nativeFees)),
		registerer.Register(metric.AsCollector(m.tokenFees)),
		registerer.Register(metric.AsCollector(m.remainingSupply)),
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *metricsImpl) MarkMint(quantity, nativeFee, tokenFee uint64) {
	m.numMints.Inc()
	m.numTokensMinted.Add(float64(quantity))
	m.nativeFees.Add(float64(nativeFee))
	m.tokenFees.Add(float64(tokenFee))
}

func (m *metricsImpl) SetRemainingSupply(remaining uint64) {
	m.remainingSupply.Set(float64(remaining))
}
