// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package royalty provides a royalty-reporting capability. It only reports a
// rate; nothing here enforces payment.
package royalty

import (
	"errors"
	"fmt"

	"github.com/luxfi/ids"
	safemath "github.com/luxfi/math"
)

// Denominator is the fixed base every royalty numerator is expressed over.
const Denominator = 10_000

var ErrNumeratorTooHigh = errors.New("royalty numerator exceeds denominator")

// Info reports where royalties should be sent and at what rate.
type Info struct {
	Receiver  ids.ShortID `serialize:"true" json:"receiver"`
	Numerator uint64      `serialize:"true" json:"numerator"`
}

func (i Info) Verify() error {
	if i.Numerator > Denominator {
		return fmt.Errorf("%w: %d > %d", ErrNumeratorTooHigh, i.Numerator, Denominator)
	}
	return nil
}

// RoyaltyInfo returns the receiver and the royalty amount owed on salePrice.
func (i Info) RoyaltyInfo(salePrice uint64) (ids.ShortID, uint64, error) {
	scaled, err := safemath.Mul64(salePrice, i.Numerator)
	if err != nil {
		return ids.ShortEmpty, 0, err
	}
	return i.Receiver, scaled / Denominator, nil
}
