package keeper

import (
	"encoding/binary"

	"github.com/swaptrade/swaptrade/x/swap/types"
)

// Store key layout. Single-byte namespaced prefixes; composite keys
// length-prefix the user identity so user/asset boundaries stay unambiguous.
var (
	BalanceKeyPrefix        = []byte{0x01}
	UserIndexCountKey       = []byte{0x02}
	UserIndexKeyPrefix      = []byte{0x03}
	UserSeenKeyPrefix       = []byte{0x04}
	AssetIndexCountKey      = []byte{0x05}
	AssetIndexKeyPrefix     = []byte{0x06}
	AssetSeenKeyPrefix      = []byte{0x07}
	ReserveAKey             = []byte{0x08}
	ReserveBKey             = []byte{0x09}
	LPPositionKeyPrefix     = []byte{0x0A}
	LPTotalSupplyKey        = []byte{0x0B}
	FeeAccumulatorKey       = []byte{0x0C}
	TradeCountKey           = []byte{0x0D}
	FailedOrderCountKey     = []byte{0x0E}
	VersionKey              = []byte{0x0F}
	LastTimestampKey        = []byte{0x10}
	TotalMintedKey          = []byte{0x11}
	AdminKey                = []byte{0x12}
	PausedKey               = []byte{0x13}
	ParamsKey               = []byte{0x14}
	UserTradeCountKeyPrefix = []byte{0x15}
	CurveWatermarkKey       = []byte{0x16}
)

func lengthPrefixed(s string) []byte {
	out := make([]byte, 0, 1+len(s))
	out = append(out, byte(len(s)))
	out = append(out, s...)
	return out
}

// BalanceKey returns the store key for one (user, asset) balance.
func BalanceKey(user string, asset types.Asset) []byte {
	key := append([]byte{}, BalanceKeyPrefix...)
	key = append(key, lengthPrefixed(user)...)
	return append(key, asset.ID()...)
}

// UserIndexKey returns the key of the i-th entry in the append-only user index.
func UserIndexKey(i uint64) []byte {
	key := append([]byte{}, UserIndexKeyPrefix...)
	return binary.BigEndian.AppendUint64(key, i)
}

// UserSeenKey marks a user as present in the index.
func UserSeenKey(user string) []byte {
	return append(append([]byte{}, UserSeenKeyPrefix...), user...)
}

// AssetIndexKey returns the key of the i-th entry in the append-only asset index.
func AssetIndexKey(i uint64) []byte {
	key := append([]byte{}, AssetIndexKeyPrefix...)
	return binary.BigEndian.AppendUint64(key, i)
}

// AssetSeenKey marks an asset as present in the index.
func AssetSeenKey(asset types.Asset) []byte {
	return append(append([]byte{}, AssetSeenKeyPrefix...), asset.ID()...)
}

// LPPositionKey returns the store key of one user's LP token balance.
func LPPositionKey(user string) []byte {
	return append(append([]byte{}, LPPositionKeyPrefix...), user...)
}

// UserTradeCountKey returns the store key of one user's lifetime trade count.
func UserTradeCountKey(user string) []byte {
	return append(append([]byte{}, UserTradeCountKeyPrefix...), user...)
}
