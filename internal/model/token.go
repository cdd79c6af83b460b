package model

// Token is a fungible currency the marketplace accepts as consideration.
type Token struct {
	Symbol   string `json:"symbol"`
	Address  string `json:"address"`
	Decimals int    `json:"decimals"`
	Name     string `json:"name"`
}

// SupportedTokens lists the currencies accepted on Starknet mainnet.
var SupportedTokens = []Token{
	{Symbol: "STRK", Address: "0x04718f5a0fc34cc1af16a1cdee98ffb20c31f5cd61d6ab07201858f4287c938d", Decimals: 18, Name: "Starknet Token"},
	{Symbol: "ETH", Address: "0x049d36570d4e46f48e99674bd3fcc84644ddd6b96f7c741b1562b82f9e004dc7", Decimals: 18, Name: "Ether"},
	{Symbol: "USDC", Address: "0x053c91253bc9682c04929ca02ed00b3e423f6710d2ee7e0d5ebb06f3ecf368a8", Decimals: 6, Name: "USD Coin"},
	{Symbol: "USDT", Address: "0x068f5c6a61780768455de69077e07e89787839bf8166decfbf92b645209c0fb8", Decimals: 6, Name: "Tether USD"},
}

// TokenBySymbol resolves a currency symbol to a known token.
func TokenBySymbol(symbol string) (Token, bool) {
	for _, t := range SupportedTokens {
		if t.Symbol == symbol {
			return t, true
		}
	}
	return Token{}, false
}
