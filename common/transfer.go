package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/util"
)

var (
	salePrefix    = []byte{0x01}
	refundPrefix  = []byte{0x02}
	vestingPrefix = []byte{0x03}
)

// SaleTransferDetails marks tokens forwarded to a buyer during a
// crowdsale.
func SaleTransferDetails(symbol string) []byte {
	return append(salePrefix, []byte(symbol)...)
}

// RefundTransferDetails marks reserve currency returned to a buyer
// during a buyback.
func RefundTransferDetails(symbol string) []byte {
	return append(refundPrefix, []byte(symbol)...)
}

// VestingTransferDetails marks tokens paid out to a team member from the
// vesting vault.
func VestingTransferDetails(symbol string) []byte {
	return append(vestingPrefix, []byte(symbol)...)
}

// AbortWithMessage calls `runtime.Log` with passed message
// and calls `ABORT` opcode.
func AbortWithMessage(msg string) {
	runtime.Log(msg)
	util.Abort()
}
