package mapping

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/chris/shardeum-marketplace/pkg/api"
	"github.com/chris/shardeum-marketplace/pkg/models"
	"github.com/chris/shardeum-marketplace/pkg/state"
)

// ToApiSession converts a domain Session model to an API Session model.
func ToApiSession(sess models.Session) *api.Session {
	out := &api.Session{
		Connected:     sess.Connected,
		ContractBound: sess.ContractBound,
	}
	if sess.Connected {
		out.Account = sess.Account.Hex()
	}
	return out
}

// ToApiListing converts a domain Listing model to an API Listing model.
func ToApiListing(listing *models.Listing) *api.Listing {
	return &api.Listing{
		Id:     listing.Id,
		Seller: listing.Seller.Hex(),
		Name:   listing.Name,
		Price:  listing.Price.String(),
		Sold:   listing.Sold,
	}
}

// ToApiListings converts a state snapshot's listing cache, preserving order.
func ToApiListings(snap state.Snapshot) *api.Listings {
	listings := make([]*api.Listing, len(snap.Listings))
	for i := range snap.Listings {
		listings[i] = ToApiListing(&snap.Listings[i])
	}
	return &api.Listings{
		Listings: listings,
		Loading:  snap.LoadingListings,
		Stale:    snap.Stale,
	}
}

// ToApiBalance converts a display-unit balance.
func ToApiBalance(balance decimal.Decimal, symbol string) *api.Balance {
	return &api.Balance{
		Balance: balance.String(),
		Symbol:  symbol,
	}
}

// ParsePrice parses a decimal price string from an API request.
func ParsePrice(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid price %q: %w", raw, err)
	}
	return d, nil
}
