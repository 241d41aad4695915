// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"errors"

	"github.com/luxfi/codec"
	"github.com/luxfi/codec/linearcodec"
)

const (
	CodecVersion = 0

	maxEntrySize = 1 << 20
)

// Codec does serialization and deserialization of every record this package
// persists.
var Codec codec.Manager

func init() {
	Codec = codec.NewManager(maxEntrySize)
	lc := linearcodec.NewDefault()

	err := errors.Join(
		lc.RegisterType(&Set{}),
		lc.RegisterType(&Token{}),
		lc.RegisterType(&poolRecord{}),
		Codec.RegisterCodec(CodecVersion, lc),
	)
	if err != nil {
		panic(err)
	}
}
