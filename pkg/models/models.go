package models

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Listing represents the internal domain model for one marketplace listing.
// The price is in display units (SHM), converted exactly from the on-chain
// native-unit integer. A listing is immutable once sold.
type Listing struct {
	Id     uint64          `json:"id"`
	Seller common.Address  `json:"seller"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Sold   bool            `json:"sold"`
}

// Session represents the live wallet session. A zero Session means no wallet
// account is authorized. Exactly one Session is live per session manager;
// mutation is exclusive to the session manager.
type Session struct {
	Account       common.Address `json:"account"`
	Connected     bool           `json:"connected"`
	ContractBound bool           `json:"contract_bound"`
}
