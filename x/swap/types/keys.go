package types

const (
	// ModuleName is the name of the swap ledger module
	ModuleName = "swap"

	// NativeSymbol is the symbol of the chain-native asset
	NativeSymbol = "XLM"
)
