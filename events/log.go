// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package events

import (
	"encoding/binary"

	"github.com/luxfi/database"
	"github.com/luxfi/log"

	"github.com/luxfi/nftvm/utils/timer/mockable"
)

var countKey = []byte("count")

// Entry is one appended event with the clock reading at emission.
type Entry struct {
	Timestamp uint64 `serialize:"true" json:"timestamp"`
	Event     Event  `serialize:"true" json:"event"`
}

// Log is a durable, index-addressed event log. Entries share the contract's
// versioned database, so appends commit and abort together with the state
// change that produced them.
type Log struct {
	db    database.Database
	clock *mockable.Clock
	log   log.Logger
	count uint64
}

func NewLog(db database.Database, clock *mockable.Clock, logger log.Logger) (*Log, error) {
	count, err := database.GetUInt64(db, countKey)
	if err == database.ErrNotFound {
		count = 0
	} else if err != nil {
		return nil, err
	}
	return &Log{
		db:    db,
		clock: clock,
		log:   logger,
		count: count,
	}, nil
}

// Append emits ev: persists it at the next index and logs it.
func (l *Log) Append(ev Event) error {
	entry := &Entry{
		Timestamp: l.clock.Unix(),
		Event:     ev,
	}
	bytes, err := c.Marshal(codecVersion, entry)
	if err != nil {
		return err
	}

	key := binary.BigEndian.AppendUint64(nil, l.count)
	if err := l.db.Put(key, bytes); err != nil {
		return err
	}
	l.count++
	if err := database.PutUInt64(l.db, countKey, l.count); err != nil {
		return err
	}

	l.log.Info("event emitted",
		log.String("kind", ev.Kind()),
		log.Uint64("index", l.count-1),
		log.Reflect("event", ev),
	)
	return nil
}

// Len returns the number of appended events.
func (l *Log) Len() uint64 {
	return l.count
}

// Get returns the entry at index i.
func (l *Log) Get(i uint64) (*Entry, error) {
	bytes, err := l.db.Get(binary.BigEndian.AppendUint64(nil, i))
	if err != nil {
		return nil, err
	}
	entry := &Entry{}
	_, err = c.Unmarshal(bytes, entry)
	return entry, err
}

// Reset rewinds the in-memory count to what the database holds. The contract
// calls this after aborting a failed operation.
func (l *Log) Reset() error {
	count, err := database.GetUInt64(l.db, countKey)
	if err == database.ErrNotFound {
		count = 0
	} else if err != nil {
		return err
	}
	l.count = count
	return nil
}
