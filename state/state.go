// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package state persists the contract's durable fields.
//
// All writes land on a versiondb layered over the backing database, so a
// state-changing operation either commits in full or aborts leaving the
// prior state untouched.
//
// Layout:
//
//	baseDB
//	|-. singleton
//	| |-- pausedKey      -> bool
//	| |-- batchLimitKey  -> uint64
//	| |-- ethFeeKey      -> uint64
//	| |-- tokenFeeKey    -> uint64
//	| |-- feeAddressKey  -> ShortID bytes
//	| |-- ownerKey       -> ShortID bytes
//	| |-- currentSetKey  -> uint64
//	| |-- totalMintedKey -> uint64
//	| |-- contractURIKey -> string bytes
//	| |-- royaltyKey     -> codec(royalty.Info)
//	| '-- poolKey        -> codec(poolRecord)
//	|-. sets
//	| '-- set id -> codec(Set)
//	|-. tokens
//	| '-- token id -> codec(Token)
//	'-. events
//	  '-- owned by the events package
package state

import (
	"encoding/binary"

	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/database/versiondb"
	"github.com/luxfi/ids"

	"github.com/luxfi/nftvm/components/royalty"
)

var (
	singletonPrefix = []byte("singleton")
	setPrefix       = []byte("set")
	tokenPrefix     = []byte("token")
	eventPrefix     = []byte("event")

	pausedKey      = []byte("paused")
	batchLimitKey  = []byte("batchLimit")
	ethFeeKey      = []byte("ethFee")
	tokenFeeKey    = []byte("tokenFee")
	feeAddressKey  = []byte("feeAddress")
	ownerKey       = []byte("owner")
	currentSetKey  = []byte("currentSet")
	totalMintedKey = []byte("totalMinted")
	contractURIKey = []byte("contractURI")
	royaltyKey     = []byte("royalty")
	poolKey        = []byte("pool")
)

// Set is one partition of the mintable supply.
type Set struct {
	MaxSupply uint64 `serialize:"true" json:"maxSupply"`
	Counter   uint64 `serialize:"true" json:"counter"`
	BaseURI   string `serialize:"true" json:"baseURI"`
}

// Token is the durable record of one minted token. Owner here is the owner
// at mint time for replay; live ownership is tracked by the ledger.
type Token struct {
	Set           uint64      `serialize:"true" json:"set"`
	DisplayNumber uint64      `serialize:"true" json:"displayNumber"`
	Owner         ids.ShortID `serialize:"true" json:"owner"`
}

type poolRecord struct {
	IDs []uint64 `serialize:"true"`
}

// State is the durable view of one contract instance.
type State struct {
	baseDB      *versiondb.Database
	singletonDB database.Database
	setDB       database.Database
	tokenDB     database.Database
	eventDB     database.Database
}

func New(db database.Database) *State {
	baseDB := versiondb.New(db)
	return &State{
		baseDB:      baseDB,
		singletonDB: prefixdb.New(singletonPrefix, baseDB),
		setDB:       prefixdb.New(setPrefix, baseDB),
		tokenDB:     prefixdb.New(tokenPrefix, baseDB),
		eventDB:     prefixdb.New(eventPrefix, baseDB),
	}
}

// EventDB returns the bucket the event log persists into. It shares this
// state's versioned base, so event appends commit and abort with everything
// else.
func (s *State) EventDB() database.Database {
	return s.eventDB
}

func (s *State) GetPaused() (bool, error) {
	return database.GetBool(s.singletonDB, pausedKey)
}

func (s *State) SetPaused(paused bool) error {
	return database.PutBool(s.singletonDB, pausedKey, paused)
}

func (s *State) GetBatchLimit() (uint64, error) {
	return database.GetUInt64(s.singletonDB, batchLimitKey)
}

func (s *State) SetBatchLimit(limit uint64) error {
	return database.PutUInt64(s.singletonDB, batchLimitKey, limit)
}

func (s *State) GetEthFee() (uint64, error) {
	return database.GetUInt64(s.singletonDB, ethFeeKey)
}

func (s *State) SetEthFee(fee uint64) error {
	return database.PutUInt64(s.singletonDB, ethFeeKey, fee)
}

func (s *State) GetTokenFee() (uint64, error) {
	return database.GetUInt64(s.singletonDB, tokenFeeKey)
}

func (s *State) SetTokenFee(fee uint64) error {
	return database.PutUInt64(s.singletonDB, tokenFeeKey, fee)
}

func (s *State) GetFeeAddress() (ids.ShortID, error) {
	return getShortID(s.singletonDB, feeAddressKey)
}

func (s *State) SetFeeAddress(addr ids.ShortID) error {
	return s.singletonDB.Put(feeAddressKey, addr.Bytes())
}

func (s *State) GetOwner() (ids.ShortID, error) {
	return getShortID(s.singletonDB, ownerKey)
}

func (s *State) SetOwner(owner ids.ShortID) error {
	return s.singletonDB.Put(ownerKey, owner.Bytes())
}

func (s *State) GetCurrentSet() (uint64, error) {
	return database.GetUInt64(s.singletonDB, currentSetKey)
}

func (s *State) SetCurrentSet(set uint64) error {
	return database.PutUInt64(s.singletonDB, currentSetKey, set)
}

func (s *State) GetTotalMinted() (uint64, error) {
	return database.GetUInt64(s.singletonDB, totalMintedKey)
}

func (s *State) SetTotalMinted(total uint64) error {
	return database.PutUInt64(s.singletonDB, totalMintedKey, total)
}

func (s *State) GetContractURI() (string, error) {
	uri, err := s.singletonDB.Get(contractURIKey)
	if err != nil {
		return "", err
	}
	return string(uri), nil
}

func (s *State) SetContractURI(uri string) error {
	return s.singletonDB.Put(contractURIKey, []byte(uri))
}

func (s *State) GetRoyalty() (royalty.Info, error) {
	bytes, err := s.singletonDB.Get(royaltyKey)
	if err != nil {
		return royalty.Info{}, err
	}
	var info royalty.Info
	_, err = Codec.Unmarshal(bytes, &info)
	return info, err
}

func (s *State) SetRoyalty(info royalty.Info) error {
	bytes, err := Codec.Marshal(CodecVersion, &info)
	if err != nil {
		return err
	}
	return s.singletonDB.Put(royaltyKey, bytes)
}

// GetPool returns the persisted randomization pool array.
func (s *State) GetPool() ([]uint64, error) {
	bytes, err := s.singletonDB.Get(poolKey)
	if err != nil {
		return nil, err
	}
	record := poolRecord{}
	_, err = Codec.Unmarshal(bytes, &record)
	return record.IDs, err
}

// SetPool persists the randomization pool array.
func (s *State) SetPool(poolIDs []uint64) error {
	bytes, err := Codec.Marshal(CodecVersion, &poolRecord{IDs: poolIDs})
	if err != nil {
		return err
	}
	return s.singletonDB.Put(poolKey, bytes)
}

// GetSet returns the record for set id, or database.ErrNotFound if the set
// was never configured.
func (s *State) GetSet(id uint64) (*Set, error) {
	bytes, err := s.setDB.Get(uint64Key(id))
	if err != nil {
		return nil, err
	}
	set := &Set{}
	_, err = Codec.Unmarshal(bytes, set)
	return set, err
}

func (s *State) PutSet(id uint64, set *Set) error {
	bytes, err := Codec.Marshal(CodecVersion, set)
	if err != nil {
		return err
	}
	return s.setDB.Put(uint64Key(id), bytes)
}

// Sets returns every configured set keyed by id.
func (s *State) Sets() (map[uint64]*Set, error) {
	sets := make(map[uint64]*Set)

	it := s.setDB.NewIterator()
	defer it.Release()
	for it.Next() {
		set := &Set{}
		if _, err := Codec.Unmarshal(it.Value(), set); err != nil {
			return nil, err
		}
		sets[binary.BigEndian.Uint64(it.Key())] = set
	}
	return sets, it.Error()
}

func (s *State) GetToken(id uint64) (*Token, error) {
	bytes, err := s.tokenDB.Get(uint64Key(id))
	if err != nil {
		return nil, err
	}
	token := &Token{}
	_, err = Codec.Unmarshal(bytes, token)
	return token, err
}

func (s *State) PutToken(id uint64, token *Token) error {
	bytes, err := Codec.Marshal(CodecVersion, token)
	if err != nil {
		return err
	}
	return s.tokenDB.Put(uint64Key(id), bytes)
}

func (s *State) DeleteToken(id uint64) error {
	return s.tokenDB.Delete(uint64Key(id))
}

// Tokens returns every minted token record keyed by token id.
func (s *State) Tokens() (map[uint64]*Token, error) {
	tokens := make(map[uint64]*Token)

	it := s.tokenDB.NewIterator()
	defer it.Release()
	for it.Next() {
		token := &Token{}
		if _, err := Codec.Unmarshal(it.Value(), token); err != nil {
			return nil, err
		}
		tokens[binary.BigEndian.Uint64(it.Key())] = token
	}
	return tokens, it.Error()
}

// Commit atomically flushes every pending write to the backing database.
func (s *State) Commit() error {
	return s.baseDB.Commit()
}

// Abort discards every pending write.
func (s *State) Abort() {
	s.baseDB.Abort()
}

func (s *State) Close() error {
	return s.baseDB.Close()
}

func getShortID(db database.Database, key []byte) (ids.ShortID, error) {
	bytes, err := db.Get(key)
	if err != nil {
		return ids.ShortEmpty, err
	}
	return ids.ToShortID(bytes)
}

func uint64Key(v uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, v)
}
