package vesting

import (
	"github.com/metpack/mpt-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Listing holds the vesting schedule of a single token symbol.
type Listing struct {
	// Start of the vesting clock, block timestamp in milliseconds.
	AirdropTime int
	// Duration of the lockup in milliseconds.
	Lockup int
	// Sum of grants not withdrawn yet.
	TotalCredit int
}

const (
	listingPrefix = 'l'
	memberPrefix  = 'm'

	tokenContractKey = 'c'
)

// nolint:unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner         interop.Hash160
		tokenContract interop.Hash160
	})

	if len(args.tokenContract) != interop.Hash160Len {
		panic("incorrect length of token contract script hash")
	}

	ctx := storage.GetContext()
	common.SetContractOwner(ctx, args.owner)
	storage.Put(ctx, []byte{tokenContractKey}, args.tokenContract)

	runtime.Log("vesting contract initialized")
}

// Update method updates contract source code and manifest. It can be
// invoked only by the contract owner.
func Update(nefFile, manifest []byte, data any) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("vesting contract updated")
}

// AddToken registers or reconfigures a vesting schedule for a symbol.
// Relisting keeps the accumulated credit, only the clock is replaced.
// Can be invoked only by the contract owner.
func AddToken(symbol string, airdropTime, lockup int) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	common.CheckSymbol(symbol)
	if airdropTime <= 0 {
		panic("airdrop time must be positive")
	}
	if lockup <= 0 {
		panic("lockup must be positive")
	}

	listing := Listing{
		AirdropTime: airdropTime,
		Lockup:      lockup,
		TotalCredit: 0,
	}

	key := listingKey(symbol)
	if data := storage.Get(ctx, key); data != nil {
		listing.TotalCredit = std.Deserialize(data.([]byte)).(Listing).TotalCredit
	}

	common.SetSerialized(ctx, key, listing)
	runtime.Log("vesting schedule configured")
}

// AddMember grants credit of the symbol to the account. Each account can
// hold a single grant per symbol. Can be invoked only by the contract
// owner.
func AddMember(symbol string, account interop.Hash160, credit int) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	if len(account) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}
	if credit <= 0 {
		panic("credit must be positive")
	}

	listing := getListing(ctx, symbol)

	mKey := memberKey(symbol, account)
	if storage.Get(ctx, mKey) != nil {
		panic("member already has a grant")
	}

	storage.Put(ctx, mKey, credit)

	listing.TotalCredit += credit
	common.SetSerialized(ctx, listingKey(symbol), listing)

	runtime.Notify("Grant", symbol, account, credit)
}

// Withdraw pays the whole grant of the account out through the token
// ledger and deletes the grant, so a second call fails the same way as
// for a member that never had one. The lockup must have elapsed. Can be
// invoked only by the grant owner.
func Withdraw(symbol string, account interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckAccountWitness(account)

	listing := getListing(ctx, symbol)
	if runtime.GetTime() < listing.AirdropTime+listing.Lockup {
		panic("lockup has not elapsed")
	}

	mKey := memberKey(symbol, account)
	data := storage.Get(ctx, mKey)
	if data == nil {
		panic("member has no grant")
	}

	credit := data.(int)
	storage.Delete(ctx, mKey)

	listing.TotalCredit -= credit
	common.SetSerialized(ctx, listingKey(symbol), listing)

	contract.Call(tokenContract(ctx), "transfer", contract.All,
		runtime.GetExecutingScriptHash(), account, symbol, credit,
		common.VestingTransferDetails(symbol))

	runtime.Notify("Withdraw", symbol, account, credit)
}

// OnTokenTransfer is a hook invoked by the token ledger for every
// transfer this contract is a party of. The vault only accepts stocking
// transfers of symbols it has a schedule for.
func OnTokenTransfer(from, to interop.Hash160, symbol string, amount int, memo []byte) {
	ctx := storage.GetContext()
	if !common.BytesEqual(runtime.GetCallingScriptHash(), tokenContract(ctx)) {
		panic("transfer hook can be invoked only by the token contract")
	}

	if !common.BytesEqual(to, runtime.GetExecutingScriptHash()) {
		return
	}

	if storage.Get(ctx, listingKey(symbol)) == nil {
		panic("vault has no schedule for the symbol")
	}
}

// ListingOf returns the vesting schedule of the symbol.
func ListingOf(symbol string) Listing {
	ctx := storage.GetReadOnlyContext()
	return getListing(ctx, symbol)
}

// CreditOf returns the outstanding grant of the account, panics if there
// is none.
func CreditOf(symbol string, account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()

	data := storage.Get(ctx, memberKey(symbol, account))
	if data == nil {
		panic("member has no grant")
	}

	return data.(int)
}

// UnlockTime returns the timestamp grants of the symbol become
// withdrawable at, in milliseconds.
func UnlockTime(symbol string) int {
	ctx := storage.GetReadOnlyContext()
	listing := getListing(ctx, symbol)
	return listing.AirdropTime + listing.Lockup
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func getListing(ctx storage.Context, symbol string) Listing {
	data := storage.Get(ctx, listingKey(symbol))
	if data == nil {
		panic("symbol has no vesting schedule")
	}

	return std.Deserialize(data.([]byte)).(Listing)
}

func tokenContract(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, []byte{tokenContractKey}).(interop.Hash160)
}

func listingKey(symbol string) []byte {
	return append([]byte{listingPrefix}, []byte(symbol)...)
}

func memberKey(symbol string, account interop.Hash160) []byte {
	return append(append([]byte{memberPrefix}, []byte(symbol)...), account...)
}
