package dialog

import (
	"fmt"
	"strings"
)

// tokenSep separates symbol and timeframe code in a selection token.
// Symbols are uppercase alphanumeric, so the separator can never occur
// inside one.
const tokenSep = "|"

// EncodeToken packs a (symbol, timeframe code) pair into the opaque
// callback token attached to a menu button.
func EncodeToken(symbol, code string) string {
	return symbol + tokenSep + code
}

// DecodeToken is the inverse of EncodeToken. Tokens are generated by the
// bot itself, so a decode failure indicates transport corruption and is
// handled as an internal error.
func DecodeToken(token string) (symbol, code string, err error) {
	symbol, code, ok := strings.Cut(token, tokenSep)
	if !ok || symbol == "" || code == "" {
		return "", "", fmt.Errorf("malformed selection token %q", token)
	}
	return symbol, code, nil
}
