// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/wattpeak/staker/builtin/staker/dec"
	"github.com/wattpeak/staker/builtin/staker/reverts"
	"github.com/wattpeak/staker/wattpeak"
)

// Config holds the protocol parameters. Only the admin may change it.
type Config struct {
	Admin                wattpeak.Address
	RewardsPercentage    dec.Dec // yearly interest rate, 0 to 1
	EpochLength          uint64  // seconds
	StakeDenom           string
	StakingFeePercentage dec.Dec // share of each claim paid as fee, 0 to 1
	StakingFeeAddress    wattpeak.Address
}

type configBody struct {
	Admin                wattpeak.Address
	RewardsPercentage    *big.Int
	EpochLength          uint64
	StakeDenom           string
	StakingFeePercentage *big.Int
	StakingFeeAddress    wattpeak.Address
}

// Validate checks the config as a whole.
func (c *Config) Validate() error {
	if c.EpochLength == 0 {
		return reverts.New("epoch length must be greater than zero")
	}
	if err := validateFraction("rewards percentage", c.RewardsPercentage); err != nil {
		return err
	}
	if err := validateFraction("staking fee percentage", c.StakingFeePercentage); err != nil {
		return err
	}
	if c.Admin.IsZero() {
		return reverts.New("admin address must be set")
	}
	if c.StakingFeeAddress.IsZero() {
		return reverts.New("staking fee address must be set")
	}
	if err := wattpeak.ValidateDenom(c.StakeDenom); err != nil {
		return reverts.Newf(reverts.KindInvalid, "%v", err)
	}
	return nil
}

func validateFraction(name string, d dec.Dec) error {
	if d.IsNil() {
		return reverts.Newf(reverts.KindInvalid, "%s must be set", name)
	}
	if d.IsNegative() || d.GT(dec.FromUint64(1)) {
		return reverts.Newf(reverts.KindInvalid, "%s must be between 0 and 1, got %s", name, d)
	}
	return nil
}

// Copy returns a deep copy.
func (c *Config) Copy() *Config {
	cpy := *c
	cpy.RewardsPercentage = cloneDec(c.RewardsPercentage)
	cpy.StakingFeePercentage = cloneDec(c.StakingFeePercentage)
	return &cpy
}

func cloneDec(d dec.Dec) dec.Dec {
	if d.IsNil() {
		return d
	}
	return d.Clone()
}

func (c *Config) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &configBody{
		Admin:                c.Admin,
		RewardsPercentage:    dec.Atomics(c.RewardsPercentage),
		EpochLength:          c.EpochLength,
		StakeDenom:           c.StakeDenom,
		StakingFeePercentage: dec.Atomics(c.StakingFeePercentage),
		StakingFeeAddress:    c.StakingFeeAddress,
	})
}

func (c *Config) DecodeRLP(stream *rlp.Stream) error {
	var b configBody
	if err := stream.Decode(&b); err != nil {
		return err
	}
	*c = Config{
		Admin:                b.Admin,
		RewardsPercentage:    dec.FromAtomics(b.RewardsPercentage),
		EpochLength:          b.EpochLength,
		StakeDenom:           b.StakeDenom,
		StakingFeePercentage: dec.FromAtomics(b.StakingFeePercentage),
		StakingFeeAddress:    b.StakingFeeAddress,
	}
	return nil
}
