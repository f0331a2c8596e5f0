// Package symbol implements the ticker normalization rule shared by the
// ledger and the watchlist.
package symbol

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalid is returned when a raw symbol cannot be normalized into a
// valid ticker.
var ErrInvalid = errors.New("invalid stock symbol")

// tickerPattern matches a normalized ticker: the base code plus an
// optional exchange suffix (e.g. "RELIANCE.NS", "BHP.AX").
var tickerPattern = regexp.MustCompile(`^[A-Z0-9&]{1,12}(\.[A-Z]{1,6})?$`)

// Normalizer canonicalizes user-entered tickers.
//
// Symbols are trimmed and uppercased. When Suffix is non-empty it is
// appended to symbols that carry no exchange suffix, so a local-market
// deployment can accept bare tickers ("TCS" -> "TCS.NS") while
// suffixed input passes through unchanged.
type Normalizer struct {
	Suffix string
}

// Normalize returns the canonical form of raw, or ErrInvalid when the
// result is not a well-formed ticker.
func (n Normalizer) Normalize(raw string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return "", fmt.Errorf("%w: empty symbol", ErrInvalid)
	}
	if n.Suffix != "" && !strings.Contains(s, ".") {
		s += strings.ToUpper(n.Suffix)
	}
	if !tickerPattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalid, raw)
	}
	return s, nil
}
