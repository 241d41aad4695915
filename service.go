// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package nftvm

import (
	"fmt"
	"net/http"

	"github.com/gorilla/rpc/v2"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/nftvm/utils/json"
)

// Service is the JSON-RPC surface over one contract instance.
//
// The RPC layer trusts the transport to have authenticated the caller
// address in each request; authorization against the contract owner happens
// inside the contract itself.
type Service struct {
	contract *Contract
	log      log.Logger
}

func NewService(contract *Contract, logger log.Logger) *Service {
	return &Service{
		contract: contract,
		log:      logger,
	}
}

// CreateHandler returns an http.Handler serving this service under the
// "nft" namespace.
func (s *Service) CreateHandler() (http.Handler, error) {
	server := rpc.NewServer()
	server.RegisterCodec(json.NewCodec(), "application/json")
	server.RegisterCodec(json.NewCodec(), "application/json;charset=UTF-8")
	if err := server.RegisterService(s, "nft"); err != nil {
		return nil, err
	}
	return server, nil
}

func parseAddress(field, str string) (ids.ShortID, error) {
	addr, err := ids.ShortFromString(str)
	if err != nil {
		return ids.ShortEmpty, fmt.Errorf("invalid %s address %q: %w", field, str, err)
	}
	return addr, nil
}

type MintArgs struct {
	Caller   string      `json:"caller"`
	Quantity json.Uint64 `json:"quantity"`
	Value    json.Uint64 `json:"value"`
}

type MintReply struct {
	TokenIDs []json.Uint64 `json:"tokenIDs"`
}

func (s *Service) Mint(_ *http.Request, args *MintArgs, reply *MintReply) error {
	s.log.Debug("API called",
		log.String("service", "nft"),
		log.String("method", "mint"),
		log.String("caller", args.Caller),
	)

	caller, err := parseAddress("caller", args.Caller)
	if err != nil {
		return err
	}

	minted, err := s.contract.Mint(caller, uint64(args.Quantity), uint64(args.Value))
	if err != nil {
		return err
	}
	reply.TokenIDs = make([]json.Uint64, len(minted))
	for i, id := range minted {
		reply.TokenIDs[i] = json.Uint64(id)
	}
	return nil
}

type StartSetArgs struct {
	Caller string      `json:"caller"`
	Set    json.Uint64 `json:"set"`
}

func (s *Service) StartSet(_ *http.Request, args *StartSetArgs, _ *struct{}) error {
	caller, err := parseAddress("caller", args.Caller)
	if err != nil {
		return err
	}
	return s.contract.StartSet(caller, uint64(args.Set))
}

type SetBaseURIArgs struct {
	Caller    string      `json:"caller"`
	Set       json.Uint64 `json:"set"`
	MaxSupply json.Uint64 `json:"maxSupply"`
	Counter   json.Uint64 `json:"counter"`
	URI       string      `json:"uri"`
}

func (s *Service) SetBaseURI(_ *http.Request, args *SetBaseURIArgs, _ *struct{}) error {
	caller, err := parseAddress("caller", args.Caller)
	if err != nil {
		return err
	}
	return s.contract.SetBaseURI(
		caller,
		uint64(args.Set),
		uint64(args.MaxSupply),
		uint64(args.Counter),
		args.URI,
	)
}

type PauseArgs struct {
	Caller string `json:"caller"`
	Paused bool   `json:"paused"`
}

func (s *Service) Pause(_ *http.Request, args *PauseArgs, _ *struct{}) error {
	caller, err := parseAddress("caller", args.Caller)
	if err != nil {
		return err
	}
	return s.contract.Pause(caller, args.Paused)
}

type SetFeeArgs struct {
	Caller string      `json:"caller"`
	Fee    json.Uint64 `json:"fee"`
}

func (s *Service) SetTokenFee(_ *http.Request, args *SetFeeArgs, _ *struct{}) error {
	caller, err := parseAddress("caller", args.Caller)
	if err != nil {
		return err
	}
	return s.contract.SetTokenFee(caller, uint64(args.Fee))
}

func (s *Service) SetEthFee(_ *http.Request, args *SetFeeArgs, _ *struct{}) error {
	caller, err := parseAddress("caller", args.Caller)
	if err != nil {
		return err
	}
	return s.contract.SetEthFee(caller, uint64(args.Fee))
}

type SetFeeAddressArgs struct {
	Caller  string `json:"caller"`
	Address string `json:"address"`
}

func (s *Service) SetFeeAddress(_ *http.Request, args *SetFeeAddressArgs, _ *struct{}) error {
	caller, err := parseAddress("caller", args.Caller)
	if err != nil {
		return err
	}
	addr, err := parseAddress("fee", args.Address)
	if err != nil {
		return err
	}
	return s.contract.SetFeeAddress(caller, addr)
}

type SetBatchLimitArgs struct {
	Caller string      `json:"caller"`
	Limit  json.Uint64 `json:"limit"`
}

func (s *Service) SetBatchLimit(_ *http.Request, args *SetBatchLimitArgs, _ *struct{}) error {
	caller, err := parseAddress("caller", args.Caller)
	if err != nil {
		return err
	}
	return s.contract.SetBatchLimit(caller, uint64(args.Limit))
}

type SetContractURIArgs struct {
	Caller string `json:"caller"`
	URI    string `json:"uri"`
}

func (s *Service) SetContractURI(_ *http.Request, args *SetContractURIArgs, _ *struct{}) error {
	caller, err := parseAddress("caller", args.Caller)
	if err != nil {
		return err
	}
	return s.contract.SetContractURI(caller, args.URI)
}

type SetRoyaltyArgs struct {
	Caller    string      `json:"caller"`
	Receiver  string      `json:"receiver"`
	Numerator json.Uint64 `json:"numerator"`
}

func (s *Service) SetRoyalty(_ *http.Request, args *SetRoyaltyArgs, _ *struct{}) error {
	caller, err := parseAddress("caller", args.Caller)
	if err != nil {
		return err
	}
	receiver, err := parseAddress("receiver", args.Receiver)
	if err != nil {
		return err
	}
	return s.contract.SetRoyalty(caller, receiver, uint64(args.Numerator))
}

type TransferOwnershipArgs struct {
	Caller   string `json:"caller"`
	NewOwner string `json:"newOwner"`
}

func (s *Service) TransferOwnership(_ *http.Request, args *TransferOwnershipArgs, _ *struct{}) error {
	caller, err := parseAddress("caller", args.Caller)
	if err != nil {
		return err
	}
	newOwner, err := parseAddress("new owner", args.NewOwner)
	if err != nil {
		return err
	}
	return s.contract.TransferOwnership(caller, newOwner)
}

type WithdrawETHArgs struct {
	Caller   string `json:"caller"`
	Receiver string `json:"receiver"`
}

type WithdrawETHReply struct {
	Amount json.Uint64 `json:"amount"`
}

func (s *Service) WithdrawETH(_ *http.Request, args *WithdrawETHArgs, reply *WithdrawETHReply) error {
	caller, err := parseAddress("caller", args.Caller)
	if err != nil {
		return err
	}
	receiver, err := parseAddress("receiver", args.Receiver)
	if err != nil {
		return err
	}
	amount, err := s.contract.WithdrawETH(caller, receiver)
	if err != nil {
		return err
	}
	reply.Amount = json.Uint64(amount)
	return nil
}

type TransferTokenArgs struct {
	Caller  string      `json:"caller"`
	From    string      `json:"from"`
	To      string      `json:"to"`
	TokenID json.Uint64 `json:"tokenID"`
}

func (s *Service) TransferToken(_ *http.Request, args *TransferTokenArgs, _ *struct{}) error {
	caller, err := parseAddress("caller", args.Caller)
	if err != nil {
		return err
	}
	from, err := parseAddress("from", args.From)
	if err != nil {
		return err
	}
	to, err := parseAddress("to", args.To)
	if err != nil {
		return err
	}
	return s.contract.TransferToken(caller, from, to, uint64(args.TokenID))
}

type ApproveTokenArgs struct {
	Caller  string      `json:"caller"`
	Spender string      `json:"spender"`
	TokenID json.Uint64 `json:"tokenID"`
}

func (s *Service) ApproveToken(_ *http.Request, args *ApproveTokenArgs, _ *struct{}) error {
	caller, err := parseAddress("caller", args.Caller)
	if err != nil {
		return err
	}
	spender, err := parseAddress("spender", args.Spender)
	if err != nil {
		return err
	}
	return s.contract.ApproveToken(caller, spender, uint64(args.TokenID))
}

type BurnTokenArgs struct {
	Caller  string      `json:"caller"`
	TokenID json.Uint64 `json:"tokenID"`
}

func (s *Service) BurnToken(_ *http.Request, args *BurnTokenArgs, _ *struct{}) error {
	caller, err := parseAddress("caller", args.Caller)
	if err != nil {
		return err
	}
	return s.contract.BurnToken(caller, uint64(args.TokenID))
}

type TokenArgs struct {
	TokenID json.Uint64 `json:"tokenID"`
}

type TokenURIReply struct {
	URI string `json:"uri"`
}

func (s *Service) TokenURI(_ *http.Request, args *TokenArgs, reply *TokenURIReply) error {
	uri, err := s.contract.TokenURI(uint64(args.TokenID))
	if err != nil {
		return err
	}
	reply.URI = uri
	return nil
}

type OwnerOfReply struct {
	Owner string `json:"owner"`
}

func (s *Service) OwnerOf(_ *http.Request, args *TokenArgs, reply *OwnerOfReply) error {
	owner, err := s.contract.OwnerOf(uint64(args.TokenID))
	if err != nil {
		return err
	}
	reply.Owner = owner.String()
	return nil
}

type BalanceOfArgs struct {
	Address string `json:"address"`
}

type BalanceOfReply struct {
	Balance json.Uint64 `json:"balance"`
}

func (s *Service) BalanceOf(_ *http.Request, args *BalanceOfArgs, reply *BalanceOfReply) error {
	addr, err := parseAddress("holder", args.Address)
	if err != nil {
		return err
	}
	reply.Balance = json.Uint64(s.contract.BalanceOf(addr))
	return nil
}

type RoyaltyInfoArgs struct {
	SalePrice json.Uint64 `json:"salePrice"`
}

type RoyaltyInfoReply struct {
	Receiver string      `json:"receiver"`
	Amount   json.Uint64 `json:"amount"`
}

func (s *Service) RoyaltyInfo(_ *http.Request, args *RoyaltyInfoArgs, reply *RoyaltyInfoReply) error {
	receiver, amount, err := s.contract.RoyaltyInfo(uint64(args.SalePrice))
	if err != nil {
		return err
	}
	reply.Receiver = receiver.String()
	reply.Amount = json.Uint64(amount)
	return nil
}

type SetInfoArgs struct {
	Set json.Uint64 `json:"set"`
}

type SetInfoReply struct {
	BaseURI   string      `json:"baseURI"`
	MaxSupply json.Uint64 `json:"maxSupply"`
	Counter   json.Uint64 `json:"counter"`
}

func (s *Service) SetInfo(_ *http.Request, args *SetInfoArgs, reply *SetInfoReply) error {
	setID := uint64(args.Set)
	uri, err := s.contract.BaseURI(setID)
	if err != nil {
		return err
	}
	maxSupply, err := s.contract.MaxSupply(setID)
	if err != nil {
		return err
	}
	counter, err := s.contract.Counter(setID)
	if err != nil {
		return err
	}
	reply.BaseURI = uri
	reply.MaxSupply = json.Uint64(maxSupply)
	reply.Counter = json.Uint64(counter)
	return nil
}

type StatusReply struct {
	Paused      bool        `json:"paused"`
	CurrentSet  json.Uint64 `json:"currentSet"`
	TotalMinted json.Uint64 `json:"totalMinted"`
	Remaining   json.Uint64 `json:"remaining"`
	BatchLimit  json.Uint64 `json:"batchLimit"`
	EthFee      json.Uint64 `json:"ethFee"`
	TokenFee    json.Uint64 `json:"tokenFee"`
	FeeAddress  string      `json:"feeAddress"`
	Owner       string      `json:"owner"`
}

func (s *Service) Status(_ *http.Request, _ *struct{}, reply *StatusReply) error {
	reply.Paused = s.contract.Paused()
	reply.CurrentSet = json.Uint64(s.contract.CurrentSet())
	reply.TotalMinted = json.Uint64(s.contract.TotalMinted())
	reply.Remaining = json.Uint64(s.contract.Remaining())
	reply.BatchLimit = json.Uint64(s.contract.BatchLimit())
	reply.EthFee = json.Uint64(s.contract.EthFee())
	reply.TokenFee = json.Uint64(s.contract.TokenFee())
	reply.FeeAddress = s.contract.FeeAddress().String()
	reply.Owner = s.contract.Owner().String()
	return nil
}

type CollectionReply struct {
	Name            string      `json:"name"`
	Symbol          string      `json:"symbol"`
	ContractURI     string      `json:"contractURI"`
	PaymentToken    string      `json:"paymentToken"`
	GlobalMaxSupply json.Uint64 `json:"globalMaxSupply"`
}

func (s *Service) Collection(_ *http.Request, _ *struct{}, reply *CollectionReply) error {
	total, err := s.contract.GlobalMaxSupply()
	if err != nil {
		return err
	}
	reply.Name = s.contract.Name()
	reply.Symbol = s.contract.Symbol()
	reply.ContractURI = s.contract.ContractURI()
	reply.PaymentToken = s.contract.PaymentTokenAddress().String()
	reply.GlobalMaxSupply = json.Uint64(total)
	return nil
}

type GetEventArgs struct {
	Index json.Uint64 `json:"index"`
}

type GetEventReply struct {
	Timestamp json.Uint64 `json:"timestamp"`
	Kind      string      `json:"kind"`
	Event     interface{} `json:"event"`
}

func (s *Service) GetEvent(_ *http.Request, args *GetEventArgs, reply *GetEventReply) error {
	entry, err := s.contract.EventLog().Get(uint64(args.Index))
	if err != nil {
		return err
	}
	reply.Timestamp = json.Uint64(entry.Timestamp)
	reply.Kind = entry.Event.Kind()
	reply.Event = entry.Event
	return nil
}

type NumEventsReply struct {
	Count json.Uint64 `json:"count"`
}

func (s *Service) NumEvents(_ *http.Request, _ *struct{}, reply *NumEventsReply) error {
	reply.Count = json.Uint64(s.contract.EventLog().Len())
	return nil
}
