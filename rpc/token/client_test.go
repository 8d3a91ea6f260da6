package token

import (
	"errors"
	"math/big"
	"testing"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

type testInv struct {
	err error
	res *result.Invoke
}

func (t *testInv) Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error) {
	return t.res, t.err
}

func (t *testInv) CallAndExpandIterator(contract util.Uint160, operation string, i int, params ...any) (*result.Invoke, error) {
	return t.res, t.err
}
func (t *testInv) TraverseIterator(uuid.UUID, *result.Iterator, int) ([]stackitem.Item, error) {
	return nil, nil
}
func (t *testInv) TerminateSession(uuid.UUID) error {
	return nil
}

func TestReaderErrors(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	ti.err = errors.New("bad")
	_, err := r.BalanceOf(util.Uint160{}, "MPT")
	require.Error(t, err)
	_, err = r.IssuerOf("MPT")
	require.Error(t, err)
	_, err = r.HoldersExpanded("MPT", 10)
	require.Error(t, err)

	ti.err = nil
	ti.res = &result.Invoke{
		State: "HALT",
		Stack: []stackitem.Item{
			stackitem.Make([]stackitem.Item{}),
		},
	}
	_, err = r.BalanceOf(util.Uint160{}, "MPT")
	require.Error(t, err)
}

func TestReaderValues(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	ti.res = &result.Invoke{
		State: "HALT",
		Stack: []stackitem.Item{
			stackitem.Make(100500),
		},
	}
	v, err := r.BalanceOf(util.Uint160{}, "MPT")
	require.NoError(t, err)
	require.Equal(t, big.NewInt(100500), v)

	v, err = r.TotalSupply("MPT")
	require.NoError(t, err)
	require.Equal(t, big.NewInt(100500), v)

	v, err = r.MaxSupply("MPT")
	require.NoError(t, err)
	require.Equal(t, big.NewInt(100500), v)

	v, err = r.Version()
	require.NoError(t, err)
	require.Equal(t, big.NewInt(100500), v)

	ti.res = &result.Invoke{
		State: "HALT",
		Stack: []stackitem.Item{
			stackitem.Make(true),
		},
	}
	claimed, err := r.IsClaimed(util.Uint160{}, "MPT")
	require.NoError(t, err)
	require.True(t, claimed)

	h := util.Uint160{1, 2, 3, 4, 5}
	ti.res = &result.Invoke{
		State: "HALT",
		Stack: []stackitem.Item{
			stackitem.Make(h.BytesBE()),
		},
	}
	res, err := r.IssuerOf("MPT")
	require.NoError(t, err)
	require.Equal(t, h, res)

	res, err = r.SaleGuardOf("MPT")
	require.NoError(t, err)
	require.Equal(t, h, res)

	ti.res = &result.Invoke{
		State: "HALT",
		Stack: []stackitem.Item{
			stackitem.Make([]stackitem.Item{
				stackitem.Make(h.BytesBE()),
			}),
		},
	}
	holders, err := r.HoldersExpanded("MPT", 10)
	require.NoError(t, err)
	require.Equal(t, []util.Uint160{h}, holders)

	// a symbol without a guard resolves to the zero hash
	ti.res = &result.Invoke{
		State: "HALT",
		Stack: []stackitem.Item{
			stackitem.Null{},
		},
	}
	res, err = r.SaleGuardOf("MPT")
	require.NoError(t, err)
	require.Equal(t, util.Uint160{}, res)
}
