package tests

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const (
	tokenPath     = "../token"
	crowdsalePath = "../crowdsale"
	vestingPath   = "../vesting"
)

func iteratorToArray(iter *storage.Iterator) []stackitem.Item {
	stackItems := make([]stackitem.Item, 0)
	for iter.Next() {
		stackItems = append(stackItems, iter.Value())
	}
	return stackItems
}

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

// chainTime returns the chain clock in milliseconds. Window bounds in
// tests are derived from it, not from the wall clock: blocks advance the
// chain clock by one millisecond each, so phases are crossed by
// generating blocks.
func chainTime(t *testing.T, e *neotest.Executor) int64 {
	return int64(e.TopBlock(t).Timestamp)
}

// deployTokenContract deploys the token ledger owned by the committee.
func deployTokenContract(t *testing.T, e *neotest.Executor) util.Uint160 {
	args := make([]interface{}, 1)
	args[0] = e.CommitteeHash

	c := neotest.CompileFile(t, e.CommitteeHash, tokenPath, path.Join(tokenPath, "config.yml"))
	e.DeployContract(t, c, args)
	return c.Hash
}

func deployCrowdsaleContract(t *testing.T, e *neotest.Executor, addrToken util.Uint160) util.Uint160 {
	args := make([]interface{}, 2)
	args[0] = e.CommitteeHash
	args[1] = addrToken

	c := neotest.CompileFile(t, e.CommitteeHash, crowdsalePath, path.Join(crowdsalePath, "config.yml"))
	e.DeployContract(t, c, args)
	return c.Hash
}

func deployVestingContract(t *testing.T, e *neotest.Executor, addrToken util.Uint160) util.Uint160 {
	args := make([]interface{}, 2)
	args[0] = e.CommitteeHash
	args[1] = addrToken

	c := neotest.CompileFile(t, e.CommitteeHash, vestingPath, path.Join(vestingPath, "config.yml"))
	e.DeployContract(t, c, args)
	return c.Hash
}

// gasInvoker returns an invoker of the native GAS contract signed by the
// given account.
func gasInvoker(t *testing.T, e *neotest.Executor, signer neotest.Signer) *neotest.ContractInvoker {
	gasHash, err := e.Chain.GetNativeContractScriptHash(nativenames.Gas)
	require.NoError(t, err)

	return e.CommitteeInvoker(gasHash).WithSigners(signer)
}
