package contract

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// marketplaceABI is the fixed call surface of the marketplace contract.
var marketplaceABI = mustParseABI(`[
	{"type":"function","name":"itemCount","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"items","stateMutability":"view","inputs":[{"name":"","type":"uint256"}],"outputs":[{"name":"id","type":"uint256"},{"name":"seller","type":"address"},{"name":"name","type":"string"},{"name":"price","type":"uint256"},{"name":"sold","type":"bool"}]},
	{"type":"function","name":"listItem","stateMutability":"nonpayable","inputs":[{"name":"_name","type":"string"},{"name":"_price","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"buyItem","stateMutability":"payable","inputs":[{"name":"_id","type":"uint256"}],"outputs":[]}
]`)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(err)
	}
	return parsed
}
