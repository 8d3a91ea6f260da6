package crowdsale

import (
	"github.com/metpack/mpt-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Listing holds the crowdsale state of a single token symbol. Sale and
// buyback phases are never stored: they are derived from the block clock
// and the four window bounds on every call.
type Listing struct {
	// Account receiving unlocked funds.
	Owner interop.Hash160
	// Tokens still for sale.
	Available int
	// Smallest accepted GAS payment.
	MinimumBuy int
	// GAS received from buyers and not yet refunded or claimed.
	FundsTotal int
	// Part of FundsTotal released to the owner, never exceeds it.
	FundsUnlocked int
	// Tokens per RateDenom units of GAS.
	Rate      int
	RateDenom int
	// Window bounds, block timestamps in milliseconds.
	SaleStart    int
	SaleEnd      int
	BuybackStart int
	BuybackEnd   int
}

const (
	listingPrefix = 't'
	buyerPrefix   = 'u'

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

	runtime.Log("crowdsale contract initialized")
}

// Update method updates contract source code and manifest. It can be
// invoked only by the contract owner.
func Update(nefFile, manifest []byte, data any) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("crowdsale contract updated")
}

// AddToken lists a token symbol for sale. One-shot: a symbol can never be
// listed twice and a listing is never removed. Can be invoked only by the
// contract owner.
//
// The sale windows must be strictly ordered:
// saleStart < saleEnd <= buybackStart < buybackEnd.
func AddToken(owner interop.Hash160, symbol string, available, minimumBuy, rate, rateDenom, saleStart, saleEnd, buybackStart, buybackEnd int) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	if len(owner) != interop.Hash160Len {
		panic("incorrect length of owner script hash")
	}
	common.CheckSymbol(symbol)
	if available <= 0 {
		panic("available tokens must be positive")
	}
	if minimumBuy < 0 {
		panic("minimum buy must not be negative")
	}
	if rate <= 0 || rateDenom <= 0 {
		panic("rate must be positive")
	}
	if saleStart >= saleEnd || saleEnd > buybackStart || buybackStart >= buybackEnd {
		panic("sale windows are not ordered")
	}

	key := listingKey(symbol)
	if storage.Get(ctx, key) != nil {
		panic("token already listed")
	}

	common.SetSerialized(ctx, key, Listing{
		Owner:         owner,
		Available:     available,
		MinimumBuy:    minimumBuy,
		FundsTotal:    0,
		FundsUnlocked: 0,
		Rate:          rate,
		RateDenom:     rateDenom,
		SaleStart:     saleStart,
		SaleEnd:       saleEnd,
		BuybackStart:  buybackStart,
		BuybackEnd:    buybackEnd,
	})
	runtime.Log("token listed for crowdsale")
}

// OnNEP17Payment is a callback for the NEP-17 compatible native GAS
// contract. GAS sent with a symbol string attached buys tokens of that
// symbol; GAS sent without data replenishes the refund reserve and is
// accepted silently.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	caller := runtime.GetCallingScriptHash()
	if !common.BytesEqual(caller, interop.Hash160(gas.Hash)) {
		common.AbortWithMessage("crowdsale contract accepts GAS only")
	}

	if data == nil {
		return
	}

	ctx := storage.GetContext()
	buyTokens(ctx, from, data.(string), amount)
}

// OnTokenTransfer is a hook invoked by the token ledger for every
// transfer this contract is a party of. Incoming tokens from the listing
// owner stock the sale, any other incoming tokens are a buyback return.
// A panic here aborts the underlying ledger transfer.
func OnTokenTransfer(from, to interop.Hash160, symbol string, amount int, memo []byte) {
	ctx := storage.GetContext()
	if !common.BytesEqual(runtime.GetCallingScriptHash(), tokenContract(ctx)) {
		panic("transfer hook can be invoked only by the token contract")
	}

	self := runtime.GetExecutingScriptHash()
	if common.BytesEqual(from, self) || !common.BytesEqual(to, self) {
		return
	}

	listing := getListing(ctx, symbol)
	if common.BytesEqual(from, listing.Owner) {
		// sale stocking
		return
	}

	returnTokens(ctx, listing, from, symbol, amount)
}

// ClaimFunds pays the whole unlocked part of the listing funds out to the
// listing owner. Fails when nothing is unlocked. Can be invoked only by
// the listing owner.
func ClaimFunds(symbol string) {
	ctx := storage.GetContext()
	listing := getListing(ctx, symbol)

	if !runtime.CheckWitness(listing.Owner) {
		panic(common.ErrOwnerWitnessFailed)
	}
	if listing.FundsUnlocked == 0 {
		panic("no unlocked funds to claim")
	}

	paid := listing.FundsUnlocked
	listing.FundsTotal -= paid
	listing.FundsUnlocked = 0
	common.SetSerialized(ctx, listingKey(symbol), listing)

	if !gas.Transfer(runtime.GetExecutingScriptHash(), listing.Owner, paid, nil) {
		panic("failed to transfer unlocked funds")
	}

	runtime.Notify("ClaimFunds", symbol, paid)
}

// CheckTransfer is the spend-limit override consulted by the token
// ledger before every transfer of a listed symbol whose sender is not
// this contract. Tokens bought in the sale and not yet moved (the
// untouched allocation) can still be spent, but spending them releases
// the proportional part of the sale funds to the listing owner, as if
// they had been returned through the formal buyback.
//
// The hook is advisory where state is missing: unlisted symbols,
// transfers addressed to this contract (the buyback path keeps its own
// accounting) and senders that never bought through the sale all pass
// untouched. It does block a spend that would overdraw the untouched
// allocation.
func CheckTransfer(from, to interop.Hash160, symbol string, amount, balance int) {
	ctx := storage.GetContext()
	if !common.BytesEqual(runtime.GetCallingScriptHash(), tokenContract(ctx)) {
		panic("spend check can be invoked only by the token contract")
	}

	if common.BytesEqual(to, runtime.GetExecutingScriptHash()) {
		return
	}

	key := listingKey(symbol)
	data := storage.Get(ctx, key)
	if data == nil {
		return
	}

	bKey := buyerKey(symbol, from)
	bData := storage.Get(ctx, bKey)
	if bData == nil {
		return
	}

	untouched := bData.(int)
	free := balance - untouched
	if amount <= free {
		return
	}

	spent := amount - free
	if spent > untouched {
		panic("transfer exceeds tradable balance")
	}

	if spent == untouched {
		storage.Delete(ctx, bKey)
	} else {
		storage.Put(ctx, bKey, untouched-spent)
	}

	listing := std.Deserialize(data.([]byte)).(Listing)
	unlocked := spent * listing.RateDenom / listing.Rate
	locked := listing.FundsTotal - listing.FundsUnlocked
	if unlocked > locked {
		unlocked = locked
	}
	listing.FundsUnlocked += unlocked
	common.SetSerialized(ctx, key, listing)

	runtime.Notify("Unlock", symbol, from, spent, unlocked)
}

// ListingOf returns the listing of the symbol.
func ListingOf(symbol string) Listing {
	ctx := storage.GetReadOnlyContext()
	return getListing(ctx, symbol)
}

// Untouched returns the amount of tokens the buyer bought in the sale
// and has not resold or returned yet, zero if there is no record.
func Untouched(symbol string, buyer interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, buyerKey(symbol, buyer))
}

// SaleState derives the phase of the listing from the current block
// time: "presale", "sale", "prebuyback", "buyback" or "closed".
func SaleState(symbol string) string {
	ctx := storage.GetReadOnlyContext()
	listing := getListing(ctx, symbol)

	now := runtime.GetTime()
	if now < listing.SaleStart {
		return "presale"
	}
	if now < listing.SaleEnd {
		return "sale"
	}
	if now < listing.BuybackStart {
		return "prebuyback"
	}
	if now < listing.BuybackEnd {
		return "buyback"
	}

	return "closed"
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func buyTokens(ctx storage.Context, buyer interop.Hash160, symbol string, payment int) {
	listing := getListing(ctx, symbol)

	now := runtime.GetTime()
	if now < listing.SaleStart || now >= listing.SaleEnd {
		panic("crowdsale is not active")
	}
	if payment < listing.MinimumBuy {
		panic("payment is below minimum buy")
	}

	bought := payment * listing.Rate / listing.RateDenom
	if bought <= 0 {
		panic("payment is too small")
	}
	if bought > listing.Available {
		panic("not enough tokens available")
	}

	listing.Available -= bought
	listing.FundsTotal += payment
	common.SetSerialized(ctx, listingKey(symbol), listing)

	bKey := buyerKey(symbol, buyer)
	storage.Put(ctx, bKey, common.GetInt(ctx, bKey)+bought)

	contract.Call(tokenContract(ctx), "transfer", contract.All,
		runtime.GetExecutingScriptHash(), buyer, symbol, bought,
		common.SaleTransferDetails(symbol))

	runtime.Notify("Buy", buyer, symbol, payment, bought)
}

func returnTokens(ctx storage.Context, listing Listing, buyer interop.Hash160, symbol string, amount int) {
	now := runtime.GetTime()
	if now < listing.BuybackStart || now >= listing.BuybackEnd {
		panic("buyback is not active")
	}

	bKey := buyerKey(symbol, buyer)
	data := storage.Get(ctx, bKey)
	if data == nil {
		panic("buyer has no untouched tokens")
	}

	untouched := data.(int)
	if amount > untouched {
		panic("amount exceeds untouched tokens")
	}

	refund := amount * listing.RateDenom / listing.Rate
	if refund > listing.FundsTotal-listing.FundsUnlocked {
		panic("insufficient locked funds for refund")
	}

	listing.FundsTotal -= refund
	common.SetSerialized(ctx, listingKey(symbol), listing)

	if amount == untouched {
		storage.Delete(ctx, bKey)
	} else {
		storage.Put(ctx, bKey, untouched-amount)
	}

	if refund > 0 {
		if !gas.Transfer(runtime.GetExecutingScriptHash(), buyer, refund, common.RefundTransferDetails(symbol)) {
			panic("failed to transfer refund")
		}
	}

	runtime.Notify("Return", buyer, symbol, amount, refund)
}

func getListing(ctx storage.Context, symbol string) Listing {
	data := storage.Get(ctx, listingKey(symbol))
	if data == nil {
		panic("token not listed")
	}

	return std.Deserialize(data.([]byte)).(Listing)
}

func tokenContract(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, []byte{tokenContractKey}).(interop.Hash160)
}

func listingKey(symbol string) []byte {
	return append([]byte{listingPrefix}, []byte(symbol)...)
}

func buyerKey(symbol string, buyer interop.Hash160) []byte {
	return append(append([]byte{buyerPrefix}, []byte(symbol)...), buyer...)
}
