package token

import (
	"github.com/metpack/mpt-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type (
	// SupplyRecord holds issuance info of a single token symbol.
	SupplyRecord struct {
		// Account allowed to issue and retire the token.
		Issuer interop.Hash160
		// Circulating supply.
		Supply int
		// Hard cap the supply can never exceed.
		MaxSupply int
	}

	// BalanceEntry stores the state of a single (symbol, owner) balance.
	BalanceEntry struct {
		// Current amount, always positive: zero entries are removed
		// except the ones explicitly created with Open.
		Amount int
		// Claimed is false while the storage cost of the entry is still
		// charged to the issuer. It flips to true exactly once, when the
		// owner (or the next transfer touching the entry) claims it.
		Claimed bool
	}
)

const (
	supplyPrefix  = 's'
	balancePrefix = 'b'
	guardPrefix   = 'g'

	// transferHookMethod is invoked on every contract that is a party of a
	// transfer. Delivery is synchronous, a panic in the hook aborts the
	// transfer.
	transferHookMethod = "onTokenTransfer"

	// spendCheckMethod is invoked on the registered sale guard before the
	// sender's balance is touched.
	spendCheckMethod = "checkTransfer"
)

// nolint:unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner interop.Hash160
	})

	ctx := storage.GetContext()
	common.SetContractOwner(ctx, args.owner)

	runtime.Log("token contract initialized")
}

// Update method updates contract source code and manifest. It can be
// invoked only by the contract owner.
func Update(nefFile, manifest []byte, data any) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("token contract updated")
}

// Create registers a new token symbol with zero circulating supply. Can be
// invoked only by the contract owner. The issuer and the hard cap are
// immutable afterwards.
func Create(issuer interop.Hash160, symbol string, maxSupply int) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	if len(issuer) != interop.Hash160Len {
		panic("incorrect length of issuer script hash")
	}
	common.CheckSymbol(symbol)
	if maxSupply <= 0 {
		panic("max supply must be positive")
	}

	key := supplyKey(symbol)
	if storage.Get(ctx, key) != nil {
		panic("token with symbol already exists")
	}

	common.SetSerialized(ctx, key, SupplyRecord{
		Issuer:    issuer,
		Supply:    0,
		MaxSupply: maxSupply,
	})
	runtime.Log("token created")
}

// Issue mints tokens to the issuer's balance and, when the recipient
// differs from the issuer, forwards them with a regular transfer so that
// all transfer invariants and notifications apply uniformly. Can be
// invoked only by the issuer of the symbol.
func Issue(to interop.Hash160, symbol string, amount int, memo []byte) {
	common.CheckMemo(memo)

	ctx := storage.GetContext()
	rec := getSupplyRecord(ctx, symbol)
	common.CheckIssuerWitness(rec.Issuer)

	if amount <= 0 {
		panic("must issue positive quantity")
	}
	if rec.Supply+amount > rec.MaxSupply {
		panic("quantity exceeds available supply")
	}

	rec.Supply += amount
	common.SetSerialized(ctx, supplyKey(symbol), rec)
	addBalance(ctx, symbol, rec.Issuer, amount, true)

	if !common.BytesEqual(to, rec.Issuer) {
		doTransfer(ctx, rec, symbol, rec.Issuer, to, amount, memo)
	}

	runtime.Notify("Issue", to, symbol, amount)
}

// Retire burns tokens from the issuer's own balance and reduces the
// circulating supply. Can be invoked only by the issuer of the symbol.
func Retire(symbol string, amount int, memo []byte) {
	common.CheckMemo(memo)

	ctx := storage.GetContext()
	rec := getSupplyRecord(ctx, symbol)
	common.CheckIssuerWitness(rec.Issuer)

	if amount <= 0 {
		panic("must retire positive quantity")
	}

	subBalance(ctx, symbol, rec.Issuer, amount)
	rec.Supply -= amount
	common.SetSerialized(ctx, supplyKey(symbol), rec)

	runtime.Notify("Retire", symbol, amount)
}

// Transfer moves tokens between accounts. Can be invoked by the balance
// owner or by a contract moving its own balance.
//
// Before the sender's balance is touched, the registered sale guard (if
// any) is consulted, unless the sender is the guard itself. After the
// balances are committed, the onTokenTransfer hook is delivered to every
// party that is a deployed contract; a panic there aborts the whole
// transfer.
func Transfer(from, to interop.Hash160, symbol string, amount int, memo []byte) {
	common.CheckMemo(memo)
	common.CheckAccountWitness(from)

	ctx := storage.GetContext()
	rec := getSupplyRecord(ctx, symbol)
	doTransfer(ctx, rec, symbol, from, to, amount, memo)
}

// Claim reassigns the storage cost of the owner's balance entry from the
// issuer to the owner. No-op if the entry is already claimed. Can be
// invoked only by the owner.
func Claim(owner interop.Hash160, symbol string) {
	common.CheckAccountWitness(owner)

	ctx := storage.GetContext()
	claimBalance(ctx, symbol, owner)
}

// Recover returns a still-unclaimed balance back to the issuer. It is a
// unilateral clawback for airdropped-but-abandoned balances: once the
// owner has claimed the entry, Recover silently does nothing. Can be
// invoked only by the issuer of the symbol.
func Recover(owner interop.Hash160, symbol string) {
	ctx := storage.GetContext()
	rec := getSupplyRecord(ctx, symbol)
	common.CheckIssuerWitness(rec.Issuer)

	key := balanceKey(symbol, owner)
	data := storage.Get(ctx, key)
	if data == nil {
		return
	}

	entry := std.Deserialize(data.([]byte)).(BalanceEntry)
	if entry.Claimed {
		return
	}

	storage.Delete(ctx, key)
	if entry.Amount > 0 {
		addBalance(ctx, symbol, rec.Issuer, entry.Amount, true)
	}

	runtime.Notify("Recover", owner, symbol, entry.Amount)
}

// Open creates a zero balance entry for the owner, claimed from the
// start since the owner pays for it. No-op if the entry already exists.
func Open(owner interop.Hash160, symbol string) {
	common.CheckAccountWitness(owner)

	ctx := storage.GetContext()
	getSupplyRecord(ctx, symbol) // symbol must exist

	key := balanceKey(symbol, owner)
	if storage.Get(ctx, key) != nil {
		return
	}

	common.SetSerialized(ctx, key, BalanceEntry{Amount: 0, Claimed: true})
}

// Close removes the owner's zero balance entry. Fails if the balance is
// not zero.
func Close(owner interop.Hash160, symbol string) {
	common.CheckAccountWitness(owner)

	ctx := storage.GetContext()
	key := balanceKey(symbol, owner)
	data := storage.Get(ctx, key)
	if data == nil {
		panic("balance row already deleted or never existed")
	}

	entry := std.Deserialize(data.([]byte)).(BalanceEntry)
	if entry.Amount != 0 {
		panic("cannot close because the balance is not zero")
	}

	storage.Delete(ctx, key)
}

// SetSaleGuard registers the crowdsale contract consulted before every
// transfer of the symbol whose sender is not the guard itself. Can be
// invoked only by the issuer of the symbol.
func SetSaleGuard(symbol string, guard interop.Hash160) {
	ctx := storage.GetContext()
	rec := getSupplyRecord(ctx, symbol)
	common.CheckIssuerWitness(rec.Issuer)

	if len(guard) != interop.Hash160Len {
		panic("incorrect length of guard script hash")
	}

	storage.Put(ctx, guardKey(symbol), guard)
	runtime.Log("sale guard registered")
}

// BalanceOf returns the current balance of the account, zero if it has
// no entry.
func BalanceOf(owner interop.Hash160, symbol string) int {
	ctx := storage.GetReadOnlyContext()
	return balanceAmount(ctx, symbol, owner)
}

// TotalSupply returns the circulating supply of the symbol.
func TotalSupply(symbol string) int {
	ctx := storage.GetReadOnlyContext()
	return getSupplyRecord(ctx, symbol).Supply
}

// MaxSupply returns the hard cap of the symbol.
func MaxSupply(symbol string) int {
	ctx := storage.GetReadOnlyContext()
	return getSupplyRecord(ctx, symbol).MaxSupply
}

// IssuerOf returns the issuer account of the symbol.
func IssuerOf(symbol string) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getSupplyRecord(ctx, symbol).Issuer
}

// IsClaimed returns true if the owner's balance entry storage cost has
// been reassigned from the issuer to the owner.
func IsClaimed(owner interop.Hash160, symbol string) bool {
	ctx := storage.GetReadOnlyContext()
	data := storage.Get(ctx, balanceKey(symbol, owner))
	if data == nil {
		panic("no balance object found")
	}

	return std.Deserialize(data.([]byte)).(BalanceEntry).Claimed
}

// SaleGuardOf returns the registered sale guard of the symbol, nil if
// there is none.
func SaleGuardOf(symbol string) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getSaleGuard(ctx, symbol)
}

// Holders returns an iterator over the accounts holding a balance entry
// of the symbol.
func Holders(symbol string) iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, holdersPrefix(symbol), storage.KeysOnly|storage.RemovePrefix)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func doTransfer(ctx storage.Context, rec SupplyRecord, symbol string, from, to interop.Hash160, amount int, memo []byte) {
	if common.BytesEqual(from, to) {
		panic("cannot transfer to self")
	}
	if len(to) != interop.Hash160Len {
		panic("to account is not valid")
	}
	if amount <= 0 {
		panic("must transfer positive quantity")
	}

	guard := getSaleGuard(ctx, symbol)
	if guard != nil && !common.BytesEqual(from, guard) {
		contract.Call(interop.Hash160(guard), spendCheckMethod, contract.All,
			from, to, symbol, amount, balanceAmount(ctx, symbol, from))
	}

	// The sender becomes the payer of record for its entry before the
	// debit, so a claimed balance is always paid for by its latest holder.
	claimBalance(ctx, symbol, from)
	subBalance(ctx, symbol, from, amount)
	addBalance(ctx, symbol, to, amount, common.BytesEqual(to, rec.Issuer))

	// Issuer airdrops stay unclaimed so that Recover can still take the
	// balance back; every other transfer claims the recipient entry.
	if !common.BytesEqual(from, rec.Issuer) {
		claimBalance(ctx, symbol, to)
	}

	if management.GetContract(from) != nil {
		contract.Call(from, transferHookMethod, contract.All, from, to, symbol, amount, memo)
	}
	if management.GetContract(to) != nil {
		contract.Call(to, transferHookMethod, contract.All, from, to, symbol, amount, memo)
	}

	runtime.Notify("Transfer", from, to, symbol, amount)
}

func claimBalance(ctx storage.Context, symbol string, owner interop.Hash160) {
	key := balanceKey(symbol, owner)
	data := storage.Get(ctx, key)
	if data == nil {
		panic("no balance object found")
	}

	entry := std.Deserialize(data.([]byte)).(BalanceEntry)
	if entry.Claimed {
		return
	}

	entry.Claimed = true
	common.SetSerialized(ctx, key, entry)
}

func subBalance(ctx storage.Context, symbol string, owner interop.Hash160, amount int) {
	key := balanceKey(symbol, owner)
	data := storage.Get(ctx, key)
	if data == nil {
		panic("no balance object found")
	}

	entry := std.Deserialize(data.([]byte)).(BalanceEntry)
	if entry.Amount < amount {
		panic("overdrawn balance")
	}

	if entry.Amount == amount {
		storage.Delete(ctx, key)
	} else {
		entry.Amount -= amount
		common.SetSerialized(ctx, key, entry)
	}
}

func addBalance(ctx storage.Context, symbol string, owner interop.Hash160, amount int, claimed bool) {
	key := balanceKey(symbol, owner)
	data := storage.Get(ctx, key)
	if data == nil {
		common.SetSerialized(ctx, key, BalanceEntry{Amount: amount, Claimed: claimed})
		return
	}

	entry := std.Deserialize(data.([]byte)).(BalanceEntry)
	entry.Amount += amount
	common.SetSerialized(ctx, key, entry)
}

func balanceAmount(ctx storage.Context, symbol string, owner interop.Hash160) int {
	data := storage.Get(ctx, balanceKey(symbol, owner))
	if data == nil {
		return 0
	}

	return std.Deserialize(data.([]byte)).(BalanceEntry).Amount
}

func getSupplyRecord(ctx storage.Context, symbol string) SupplyRecord {
	data := storage.Get(ctx, supplyKey(symbol))
	if data == nil {
		panic("token with symbol does not exist")
	}

	return std.Deserialize(data.([]byte)).(SupplyRecord)
}

func getSaleGuard(ctx storage.Context, symbol string) interop.Hash160 {
	data := storage.Get(ctx, guardKey(symbol))
	if data == nil {
		return nil
	}

	return data.(interop.Hash160)
}

func supplyKey(symbol string) []byte {
	return append([]byte{supplyPrefix}, []byte(symbol)...)
}

func balanceKey(symbol string, owner interop.Hash160) []byte {
	return append(holdersPrefix(symbol), owner...)
}

// holdersPrefix terminates the symbol with a byte no valid symbol
// contains, so balance keys of a longer symbol never match the prefix
// scan of a shorter one.
func holdersPrefix(symbol string) []byte {
	return append(append([]byte{balancePrefix}, []byte(symbol)...), 0)
}

func guardKey(symbol string) []byte {
	return append([]byte{guardPrefix}, []byte(symbol)...)
}
