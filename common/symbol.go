package common

// MaxSymbolLength limits ticker symbols to seven characters.
const MaxSymbolLength = 7

// MaxMemoLength limits transfer memos attached to ledger operations.
const MaxMemoLength = 256

// IsValidSymbol reports whether s is a valid ticker symbol: one to seven
// uppercase latin letters.
func IsValidSymbol(s string) bool {
	if len(s) == 0 || len(s) > MaxSymbolLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 'A' || c > 'Z' {
			return false
		}
	}

	return true
}

// CheckSymbol panics if s is not a valid ticker symbol.
func CheckSymbol(s string) {
	if !IsValidSymbol(s) {
		panic("invalid symbol name")
	}
}

// CheckMemo panics if the memo exceeds MaxMemoLength.
func CheckMemo(memo []byte) {
	if len(memo) > MaxMemoLength {
		panic("memo has more than 256 bytes")
	}
}
