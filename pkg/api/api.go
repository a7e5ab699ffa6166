// Package api defines the JSON models served by the HTTP facade. Prices
// travel as decimal strings so display amounts stay exact on the wire.
package api

// Session is the API model for the wallet session.
type Session struct {
	Account       string `json:"account,omitempty"`
	Connected     bool   `json:"connected"`
	ContractBound bool   `json:"contract_bound"`
}

// Listing is the API model for one marketplace listing.
type Listing struct {
	Id     uint64 `json:"id"`
	Seller string `json:"seller"`
	Name   string `json:"name"`
	Price  string `json:"price"`
	Sold   bool   `json:"sold"`
}

// Listings is the listing collection plus its cache status flags.
type Listings struct {
	Listings []*Listing `json:"listings"`
	Loading  bool       `json:"loading"`
	Stale    bool       `json:"stale"`
}

// Balance is the marketplace contract's holding balance in display units.
type Balance struct {
	Balance string `json:"balance"`
	Symbol  string `json:"symbol"`
}

// NewListing is the request body for creating a listing.
type NewListing struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// BuyRequest is the request body for purchasing a listing.
type BuyRequest struct {
	Price string `json:"price"`
}
