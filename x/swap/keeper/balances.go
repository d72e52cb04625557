package keeper

import (
	"cosmossdk.io/math"

	"github.com/swaptrade/swaptrade/internal/statestore"
	"github.com/swaptrade/swaptrade/x/swap/types"
)

// Balance ledger: (user, asset) -> non-negative amount. Entries are created
// implicitly on first credit and never deleted; absence means zero. The
// backing store cannot be enumerated, so append-only user and asset indexes
// are maintained alongside the balance map; every full-sum audit walks
// those indexes, never the map itself.

// GetBalance returns the balance of (user, asset), zero for any key never
// credited.
func (k *Keeper) GetBalance(user string, asset types.Asset) math.Int {
	return getInt(k.base, BalanceKey(user, asset))
}

// GetAllUsers returns the append-only index of every user the ledger has
// ever credited or debited.
func (k *Keeper) GetAllUsers() []string {
	return allUsers(k.base)
}

// GetAllAssets returns the append-only index of every asset ever seen.
func (k *Keeper) GetAllAssets() []types.Asset {
	return allAssets(k.base)
}

func allUsers(kv statestore.KV) []string {
	count := getUint64(kv, UserIndexCountKey)
	users := make([]string, 0, count)
	for i := uint64(0); i < count; i++ {
		users = append(users, string(kv.Get(UserIndexKey(i))))
	}
	return users
}

func allAssets(kv statestore.KV) []types.Asset {
	count := getUint64(kv, AssetIndexCountKey)
	assets := make([]types.Asset, 0, count)
	for i := uint64(0); i < count; i++ {
		symbol := string(kv.Get(AssetIndexKey(i)))
		asset, err := types.ParseAsset(symbol)
		if err != nil {
			panic(types.ErrInvalidState.Wrapf("corrupt asset index entry %d: %v", i, err))
		}
		assets = append(assets, asset)
	}
	return assets
}

func indexUser(kv statestore.KV, user string) {
	if kv.Has(UserSeenKey(user)) {
		return
	}
	count := getUint64(kv, UserIndexCountKey)
	kv.Set(UserIndexKey(count), []byte(user))
	setUint64(kv, UserIndexCountKey, count+1)
	kv.Set(UserSeenKey(user), []byte{1})
}

func indexAsset(kv statestore.KV, asset types.Asset) {
	if kv.Has(AssetSeenKey(asset)) {
		return
	}
	count := getUint64(kv, AssetIndexCountKey)
	kv.Set(AssetIndexKey(count), []byte(asset.ID()))
	setUint64(kv, AssetIndexCountKey, count+1)
	kv.Set(AssetSeenKey(asset), []byte{1})
}

// creditBalance increases (user, asset) by amount and registers the user
// and asset in the audit indexes. amount must be non-negative.
func creditBalance(kv statestore.KV, user string, asset types.Asset, amount math.Int) error {
	if amount.IsNegative() {
		return types.ErrInvalidAmount.Wrapf("cannot credit negative amount %s", amount)
	}
	key := BalanceKey(user, asset)
	updated, err := SafeAdd(getInt(kv, key), amount)
	if err != nil {
		return err
	}
	setInt(kv, key, updated)
	indexUser(kv, user)
	indexAsset(kv, asset)
	return nil
}

// debitBalance decreases (user, asset) by exactly amount, failing with
// ErrInsufficientBalance when the balance cannot cover it. The subtraction
// is checked: it never wraps and never saturates.
func debitBalance(kv statestore.KV, user string, asset types.Asset, amount math.Int) error {
	if amount.IsNegative() {
		return types.ErrInvalidAmount.Wrapf("cannot debit negative amount %s", amount)
	}
	key := BalanceKey(user, asset)
	current := getInt(kv, key)
	if amount.GT(current) {
		return types.ErrInsufficientBalance.Wrapf("balance %s %s, need %s", current, asset, amount)
	}
	updated, err := SafeSub(current, amount)
	if err != nil {
		return err
	}
	setInt(kv, key, updated)
	return nil
}
