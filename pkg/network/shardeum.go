package network

// ShardeumLiberty is the Shardeum Liberty 2.X network this client targets by
// default (chain id 0x1f90 = 8080).
var ShardeumLiberty = Descriptor{
	ChainID:   "0x1f90",
	ChainName: "Shardeum Liberty 2.X",
	NativeCurrency: NativeCurrency{
		Name:     "Shardeum",
		Symbol:   "SHM",
		Decimals: 18,
	},
	RPCURLs:           []string{"https://liberty20.shardeum.org/"},
	BlockExplorerURLs: []string{"https://explorer-liberty20.shardeum.org/"},
}
