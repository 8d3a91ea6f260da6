package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const tokenSymbol = "MPT"

func newTokenInvoker(t *testing.T) (*neotest.Executor, *neotest.ContractInvoker) {
	e := newExecutor(t)
	h := deployTokenContract(t, e)
	return e, e.CommitteeInvoker(h)
}

// createToken registers the test symbol with the committee as its issuer.
func createToken(t *testing.T, e *neotest.Executor, c *neotest.ContractInvoker, maxSupply int64) {
	c.Invoke(t, stackitem.Null{}, "create", e.CommitteeHash, tokenSymbol, maxSupply)
}

func TestTokenCreate(t *testing.T) {
	e, c := newTokenInvoker(t)

	createToken(t, e, c, 1000)
	c.InvokeFail(t, "token with symbol already exists", "create", e.CommitteeHash, tokenSymbol, int64(1000))
	c.InvokeFail(t, "invalid symbol name", "create", e.CommitteeHash, "mpt", int64(1000))
	c.InvokeFail(t, "invalid symbol name", "create", e.CommitteeHash, "TOOLONGX", int64(1000))
	c.InvokeFail(t, "max supply must be positive", "create", e.CommitteeHash, "OTHER", int64(0))

	user := c.NewAccount(t)
	cUser := c.WithSigners(user)
	cUser.InvokeFail(t, "owner witness check failed", "create", e.CommitteeHash, "OTHER", int64(1000))

	c.Invoke(t, stackitem.Make(1000), "maxSupply", tokenSymbol)
	c.Invoke(t, stackitem.Make(0), "totalSupply", tokenSymbol)
	c.Invoke(t, stackitem.Make(e.CommitteeHash.BytesBE()), "issuerOf", tokenSymbol)
	c.InvokeFail(t, "token with symbol does not exist", "totalSupply", "NONE")
}

func TestTokenIssueRetire(t *testing.T) {
	e, c := newTokenInvoker(t)
	createToken(t, e, c, 1000)

	c.Invoke(t, stackitem.Null{}, "issue", e.CommitteeHash, tokenSymbol, int64(500), []byte{})
	c.Invoke(t, stackitem.Make(500), "balanceOf", e.CommitteeHash, tokenSymbol)
	c.Invoke(t, stackitem.Make(500), "totalSupply", tokenSymbol)
	c.Invoke(t, stackitem.NewBool(true), "isClaimed", e.CommitteeHash, tokenSymbol)

	c.InvokeFail(t, "quantity exceeds available supply", "issue", e.CommitteeHash, tokenSymbol, int64(600), []byte{})
	c.InvokeFail(t, "must issue positive quantity", "issue", e.CommitteeHash, tokenSymbol, int64(0), []byte{})

	user := c.NewAccount(t)
	cUser := c.WithSigners(user)
	cUser.InvokeFail(t, "issuer witness check failed", "issue", e.CommitteeHash, tokenSymbol, int64(1), []byte{})

	c.Invoke(t, stackitem.Null{}, "retire", tokenSymbol, int64(200), []byte{})
	c.Invoke(t, stackitem.Make(300), "balanceOf", e.CommitteeHash, tokenSymbol)
	c.Invoke(t, stackitem.Make(300), "totalSupply", tokenSymbol)

	c.InvokeFail(t, "overdrawn balance", "retire", tokenSymbol, int64(400), []byte{})
	cUser.InvokeFail(t, "issuer witness check failed", "retire", tokenSymbol, int64(1), []byte{})
}

func TestTokenClaimRecover(t *testing.T) {
	e, c := newTokenInvoker(t)
	createToken(t, e, c, 1000)

	user := c.NewAccount(t)
	userHash := user.ScriptHash()

	// issuer airdrops stay unclaimed and can be taken back
	c.Invoke(t, stackitem.Null{}, "issue", userHash, tokenSymbol, int64(100), []byte{})
	c.Invoke(t, stackitem.Make(100), "balanceOf", userHash, tokenSymbol)
	c.Invoke(t, stackitem.NewBool(false), "isClaimed", userHash, tokenSymbol)

	c.Invoke(t, stackitem.Null{}, "recover", userHash, tokenSymbol)
	c.Invoke(t, stackitem.Make(0), "balanceOf", userHash, tokenSymbol)
	c.Invoke(t, stackitem.Make(100), "balanceOf", e.CommitteeHash, tokenSymbol)
	c.Invoke(t, stackitem.Make(100), "totalSupply", tokenSymbol)

	// a claimed balance is out of the issuer's reach
	c.Invoke(t, stackitem.Null{}, "issue", userHash, tokenSymbol, int64(100), []byte{})
	cUser := c.WithSigners(user)
	cUser.Invoke(t, stackitem.Null{}, "claim", userHash, tokenSymbol)
	c.Invoke(t, stackitem.NewBool(true), "isClaimed", userHash, tokenSymbol)

	c.Invoke(t, stackitem.Null{}, "recover", userHash, tokenSymbol)
	c.Invoke(t, stackitem.Make(100), "balanceOf", userHash, tokenSymbol)

	// recover of a missing entry is a silent no-op
	c.Invoke(t, stackitem.Null{}, "recover", c.NewAccount(t).ScriptHash(), tokenSymbol)
}

func TestTokenTransfer(t *testing.T) {
	e, c := newTokenInvoker(t)
	createToken(t, e, c, 1000)

	user := c.NewAccount(t)
	user2 := c.NewAccount(t)
	userHash := user.ScriptHash()
	user2Hash := user2.ScriptHash()

	c.Invoke(t, stackitem.Null{}, "issue", userHash, tokenSymbol, int64(100), []byte{})

	cUser := c.WithSigners(user)
	cUser.Invoke(t, stackitem.Null{}, "transfer", userHash, user2Hash, tokenSymbol, int64(40), []byte{})

	c.Invoke(t, stackitem.Make(60), "balanceOf", userHash, tokenSymbol)
	c.Invoke(t, stackitem.Make(40), "balanceOf", user2Hash, tokenSymbol)

	// the first transfer claims both parties
	c.Invoke(t, stackitem.NewBool(true), "isClaimed", userHash, tokenSymbol)
	c.Invoke(t, stackitem.NewBool(true), "isClaimed", user2Hash, tokenSymbol)

	cUser.InvokeFail(t, "cannot transfer to self", "transfer", userHash, userHash, tokenSymbol, int64(1), []byte{})
	cUser.InvokeFail(t, "must transfer positive quantity", "transfer", userHash, user2Hash, tokenSymbol, int64(0), []byte{})
	cUser.InvokeFail(t, "overdrawn balance", "transfer", userHash, user2Hash, tokenSymbol, int64(100), []byte{})
	cUser.InvokeFail(t, "witness check failed", "transfer", user2Hash, userHash, tokenSymbol, int64(1), []byte{})

	// supply is conserved
	c.Invoke(t, stackitem.Make(100), "totalSupply", tokenSymbol)
}

func TestTokenOpenClose(t *testing.T) {
	e, c := newTokenInvoker(t)
	createToken(t, e, c, 1000)

	user := c.NewAccount(t)
	userHash := user.ScriptHash()
	cUser := c.WithSigners(user)

	cUser.InvokeFail(t, "token with symbol does not exist", "open", userHash, "NONE")

	cUser.Invoke(t, stackitem.Null{}, "open", userHash, tokenSymbol)
	c.Invoke(t, stackitem.Make(0), "balanceOf", userHash, tokenSymbol)
	c.Invoke(t, stackitem.NewBool(true), "isClaimed", userHash, tokenSymbol)

	// reopening is a no-op
	cUser.Invoke(t, stackitem.Null{}, "open", userHash, tokenSymbol)

	cUser.Invoke(t, stackitem.Null{}, "close", userHash, tokenSymbol)
	cUser.InvokeFail(t, "balance row already deleted or never existed", "close", userHash, tokenSymbol)

	c.Invoke(t, stackitem.Null{}, "issue", userHash, tokenSymbol, int64(50), []byte{})
	cUser.InvokeFail(t, "cannot close because the balance is not zero", "close", userHash, tokenSymbol)
}

func TestTokenHolders(t *testing.T) {
	e, c := newTokenInvoker(t)
	createToken(t, e, c, 1000)

	user := c.NewAccount(t)
	user2 := c.NewAccount(t)

	c.Invoke(t, stackitem.Null{}, "issue", user.ScriptHash(), tokenSymbol, int64(100), []byte{})
	c.Invoke(t, stackitem.Null{}, "issue", user2.ScriptHash(), tokenSymbol, int64(200), []byte{})

	// a second symbol sharing the prefix must not leak into the scan
	c.Invoke(t, stackitem.Null{}, "create", e.CommitteeHash, tokenSymbol+"X", int64(1000))
	c.Invoke(t, stackitem.Null{}, "issue", user.ScriptHash(), tokenSymbol+"X", int64(50), []byte{})

	require.Len(t, holderItems(t, c, tokenSymbol), 2)
	require.Len(t, holderItems(t, c, tokenSymbol+"X"), 1)
}

func holderItems(t *testing.T, c *neotest.ContractInvoker, symbol string) []stackitem.Item {
	s, err := c.TestInvoke(t, "holders", symbol)
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	iter, ok := s.Pop().Value().(*storage.Iterator)
	require.True(t, ok)
	return iteratorToArray(iter)
}
