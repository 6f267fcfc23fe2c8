// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package wattpeak

import (
	"regexp"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// denoms follow the bank module convention, including factory denoms such as
// "factory/<creator>/uwattpeak".
var reDenom = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9/:._-]{2,127}$`)

// ValidateDenom returns an error if denom is not a well-formed denomination.
func ValidateDenom(denom string) error {
	if !reDenom.MatchString(denom) {
		return errors.Errorf("invalid denom: %q", denom)
	}
	return nil
}

// Coin is an integer amount of a single denomination.
type Coin struct {
	Denom  string
	Amount *uint256.Int
}

// NewCoin creates a coin, copying the amount.
func NewCoin(denom string, amount *uint256.Int) Coin {
	return Coin{Denom: denom, Amount: new(uint256.Int).Set(amount)}
}

// IsZero returns whether the coin carries no value.
func (c Coin) IsZero() bool {
	return c.Amount == nil || c.Amount.IsZero()
}

func (c Coin) String() string {
	if c.Amount == nil {
		return "0" + c.Denom
	}
	return c.Amount.Dec() + c.Denom
}

// Coins is the list of funds attached to a call.
type Coins []Coin

func (cs Coins) String() string {
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, ",")
}

// ParseCoin parses a coin of the form "100uwattpeak".
func ParseCoin(s string) (Coin, error) {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return Coin{}, errors.Errorf("invalid coin %q: missing amount", s)
	}
	amount, err := uint256.FromDecimal(s[:i])
	if err != nil {
		return Coin{}, errors.Wrapf(err, "invalid coin %q", s)
	}
	denom := s[i:]
	if err := ValidateDenom(denom); err != nil {
		return Coin{}, errors.Wrapf(err, "invalid coin %q", s)
	}
	return Coin{Denom: denom, Amount: amount}, nil
}
