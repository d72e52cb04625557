package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swaptrade/swaptrade/x/swap/types"
)

func TestParseAsset(t *testing.T) {
	tests := []struct {
		name    string
		symbol  string
		wantErr bool
		native  bool
	}{
		{"native symbol", "XLM", false, true},
		{"custom symbol", "USDC-SIM", false, false},
		{"single char", "A", false, false},
		{"digits and dash", "WBTC-2", false, false},
		{"max length", "ABCDEFGHIJKL", false, false},
		{"empty", "", true, false},
		{"too long", "ABCDEFGHIJKLM", true, false},
		{"lowercase", "usdc", true, false},
		{"leading dash", "-USDC", true, false},
		{"trailing dash", "USDC-", true, false},
		{"underscore", "US_DC", true, false},
		{"space", "US DC", true, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			asset, err := types.ParseAsset(tc.symbol)
			if tc.wantErr {
				require.ErrorIs(t, err, types.ErrInvalidAsset)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.native, asset.Native)
			require.Equal(t, tc.symbol, asset.ID())
			require.NoError(t, asset.Validate())
		})
	}
}

func TestNewCustomAssetRejectsNativeSymbol(t *testing.T) {
	_, err := types.NewCustomAsset(types.NativeSymbol)
	require.ErrorIs(t, err, types.ErrInvalidAsset)
}

func TestAssetEqual(t *testing.T) {
	native := types.NativeAsset()
	usdc := types.MustNewCustomAsset("USDC-SIM")

	require.True(t, native.Equal(types.NativeAsset()))
	require.True(t, usdc.Equal(types.MustNewCustomAsset("USDC-SIM")))
	require.False(t, native.Equal(usdc))

	// Same symbol with a forged native flag is a different asset.
	forged := types.Asset{Symbol: "USDC-SIM", Native: true}
	require.False(t, usdc.Equal(forged))
	require.Error(t, forged.Validate())
}

func TestAssetValidateForgedValues(t *testing.T) {
	require.Error(t, types.Asset{Symbol: "XLM"}.Validate())
	require.Error(t, types.Asset{Symbol: "bad"}.Validate())
	require.Error(t, types.Asset{}.Validate())
}
