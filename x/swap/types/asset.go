package types

import (
	"strings"
)

// MaxSymbolLength bounds custom asset symbols so store keys stay small.
const MaxSymbolLength = 12

// Asset identifies a ledger asset: either the native token or a custom
// token tagged by its symbol. Assets are immutable values and are used
// directly as map keys.
type Asset struct {
	Symbol string
	Native bool
}

// NativeAsset returns the native asset (XLM).
func NativeAsset() Asset {
	return Asset{Symbol: NativeSymbol, Native: true}
}

// NewCustomAsset builds a custom asset from a symbol. The symbol must be
// non-empty, at most MaxSymbolLength characters of [A-Z0-9-], and must not
// collide with the native symbol.
func NewCustomAsset(symbol string) (Asset, error) {
	if err := validateSymbol(symbol); err != nil {
		return Asset{}, err
	}
	if symbol == NativeSymbol {
		return Asset{}, ErrInvalidAsset.Wrapf("symbol %q is reserved for the native asset", symbol)
	}
	return Asset{Symbol: symbol}, nil
}

// MustNewCustomAsset is NewCustomAsset that panics on invalid input.
// For use with compile-time constant symbols only.
func MustNewCustomAsset(symbol string) Asset {
	a, err := NewCustomAsset(symbol)
	if err != nil {
		panic(err)
	}
	return a
}

// ParseAsset maps a raw symbol onto an Asset, recognizing the native symbol.
func ParseAsset(symbol string) (Asset, error) {
	if symbol == NativeSymbol {
		return NativeAsset(), nil
	}
	return NewCustomAsset(symbol)
}

// ID returns the store/index identifier of the asset.
func (a Asset) ID() string {
	return a.Symbol
}

func (a Asset) String() string {
	return a.Symbol
}

// Equal reports whether two assets identify the same token.
func (a Asset) Equal(other Asset) bool {
	return a.Symbol == other.Symbol && a.Native == other.Native
}

// Validate checks that the asset was built through a constructor.
func (a Asset) Validate() error {
	if a.Native {
		if a.Symbol != NativeSymbol {
			return ErrInvalidAsset.Wrapf("native asset must use symbol %s, got %q", NativeSymbol, a.Symbol)
		}
		return nil
	}
	if a.Symbol == NativeSymbol {
		return ErrInvalidAsset.Wrap("custom asset cannot use the native symbol")
	}
	return validateSymbol(a.Symbol)
}

func validateSymbol(symbol string) error {
	if symbol == "" {
		return ErrInvalidAsset.Wrap("asset symbol cannot be empty")
	}
	if len(symbol) > MaxSymbolLength {
		return ErrInvalidAsset.Wrapf("asset symbol %q exceeds %d characters", symbol, MaxSymbolLength)
	}
	for _, r := range symbol {
		ok := (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-'
		if !ok {
			return ErrInvalidAsset.Wrapf("asset symbol %q contains invalid character %q", symbol, string(r))
		}
	}
	if strings.HasPrefix(symbol, "-") || strings.HasSuffix(symbol, "-") {
		return ErrInvalidAsset.Wrapf("asset symbol %q cannot start or end with '-'", symbol)
	}
	return nil
}
