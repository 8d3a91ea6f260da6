package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/interop/util"
)

var (
	// ErrOwnerWitnessFailed appears when the method must be called
	// by the contract owner but was not.
	ErrOwnerWitnessFailed = "owner witness check failed"
	// ErrIssuerWitnessFailed appears when the method must be called
	// by the token issuer but was not.
	ErrIssuerWitnessFailed = "issuer witness check failed"
	// ErrWitnessFailed appears when the method must be called
	// by a certain account but was not.
	ErrWitnessFailed = "witness check failed"
)

// OwnerKey is a storage key the contract owner script hash is stored under.
// Every contract of the suite reserves it, so per-contract table prefixes
// must not collide with it.
const OwnerKey = 'o'

// SetContractOwner persists the owner script hash during deployment.
func SetContractOwner(ctx storage.Context, owner interop.Hash160) {
	if len(owner) != interop.Hash160Len {
		panic("incorrect length of owner script hash")
	}
	storage.Put(ctx, []byte{OwnerKey}, owner)
}

// ContractOwner returns the owner script hash stored on deployment.
func ContractOwner(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, []byte{OwnerKey}).(interop.Hash160)
}

// CheckOwnerWitness checks witness of the stored contract owner.
// It panics with ErrOwnerWitnessFailed message on fail.
func CheckOwnerWitness(ctx storage.Context) {
	if !runtime.CheckWitness(ContractOwner(ctx)) {
		panic(ErrOwnerWitnessFailed)
	}
}

// CheckIssuerWitness checks witness of the passed token issuer.
// It panics with ErrIssuerWitnessFailed message on fail.
func CheckIssuerWitness(issuer interop.Hash160) {
	if !runtime.CheckWitness(issuer) {
		panic(ErrIssuerWitnessFailed)
	}
}

// CheckAccountWitness checks that the call is authorized by the passed
// account: either it witnessed the transaction or it is the contract
// directly calling this one. The second case lets contracts of the suite
// move their own balances without a signature.
func CheckAccountWitness(acc interop.Hash160) {
	if runtime.CheckWitness(acc) {
		return
	}
	if BytesEqual(runtime.GetCallingScriptHash(), acc) {
		return
	}
	panic(ErrWitnessFailed)
}

// BytesEqual compares two byte slices.
func BytesEqual(a []byte, b []byte) bool {
	return util.Equals(string(a), string(b))
}
