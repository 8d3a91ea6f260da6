// Package token contains RPC wrappers for the MPT token contract.
package token

import (
	"math/big"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, operation string, maxItems int, params ...any) (*result.Invoke, error)
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
	TerminateSession(sessionID uuid.UUID) error
}

// ContractReader provides an interface to call read-only methods of the
// token contract.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// NewReader creates an instance of ContractReader using the given contract
// hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// BalanceOf invokes `balanceOf` method of the contract.
func (c *ContractReader) BalanceOf(owner util.Uint160, symbol string) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "balanceOf", owner, symbol))
}

// TotalSupply invokes `totalSupply` method of the contract.
func (c *ContractReader) TotalSupply(symbol string) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalSupply", symbol))
}

// MaxSupply invokes `maxSupply` method of the contract.
func (c *ContractReader) MaxSupply(symbol string) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "maxSupply", symbol))
}

// IssuerOf invokes `issuerOf` method of the contract.
func (c *ContractReader) IssuerOf(symbol string) (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "issuerOf", symbol))
}

// IsClaimed invokes `isClaimed` method of the contract.
func (c *ContractReader) IsClaimed(owner util.Uint160, symbol string) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isClaimed", owner, symbol))
}

// SaleGuardOf invokes `saleGuardOf` method of the contract. The zero hash
// is returned for symbols that have no sale guard set.
func (c *ContractReader) SaleGuardOf(symbol string) (util.Uint160, error) {
	itm, err := unwrap.Item(c.invoker.Call(c.hash, "saleGuardOf", symbol))
	if err != nil {
		return util.Uint160{}, err
	}
	if itm.Type() == stackitem.AnyT {
		return util.Uint160{}, nil
	}

	b, err := itm.TryBytes()
	if err != nil {
		return util.Uint160{}, err
	}
	return util.Uint160DecodeBytesBE(b)
}

// Holders invokes `holders` method of the contract, returning an iterator
// session over holder accounts of the symbol.
func (c *ContractReader) Holders(symbol string) (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "holders", symbol))
}

// HoldersExpanded is similar to Holders (uses the same contract method),
// but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the
// specified number of holder accounts from the iterator right in the VM
// and return them to you.
func (c *ContractReader) HoldersExpanded(symbol string, num int) ([]util.Uint160, error) {
	return unwrap.ArrayOfUint160(c.invoker.CallAndExpandIterator(c.hash, "holders", num, symbol))
}

// Version invokes `version` method of the contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}
