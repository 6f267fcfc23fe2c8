// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakers

import (
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"github.com/wattpeak/staker/builtin/staker/dec"
)

// Staker is the ledger record of one participant.
type Staker struct {
	WattpeakStaked   *uint256.Int
	InterestWattpeak dec.Dec // accrued since the last distribution
	ClaimableRewards dec.Dec
	StakeStartTime   uint64
}

// body is the persisted form of Staker, decimals as 18 decimal atomics.
type body struct {
	WattpeakStaked   *uint256.Int
	InterestWattpeak *big.Int
	ClaimableRewards *big.Int
	StakeStartTime   uint64
}

// NewStaker returns an empty record started at the given time.
func NewStaker(startTime uint64) *Staker {
	return &Staker{
		WattpeakStaked:   new(uint256.Int),
		InterestWattpeak: dec.Zero(),
		ClaimableRewards: dec.Zero(),
		StakeStartTime:   startTime,
	}
}

// IsEmpty returns whether all balances are zero.
func (s *Staker) IsEmpty() bool {
	return (s.WattpeakStaked == nil || s.WattpeakStaked.IsZero()) &&
		(s.InterestWattpeak.IsNil() || s.InterestWattpeak.IsZero()) &&
		(s.ClaimableRewards.IsNil() || s.ClaimableRewards.IsZero())
}

// Copy returns a deep copy.
func (s *Staker) Copy() *Staker {
	cpy := NewStaker(s.StakeStartTime)
	if s.WattpeakStaked != nil {
		cpy.WattpeakStaked.Set(s.WattpeakStaked)
	}
	if !s.InterestWattpeak.IsNil() {
		cpy.InterestWattpeak = s.InterestWattpeak.Clone()
	}
	if !s.ClaimableRewards.IsNil() {
		cpy.ClaimableRewards = s.ClaimableRewards.Clone()
	}
	return cpy
}

func (s *Staker) EncodeRLP(w io.Writer) error {
	staked := s.WattpeakStaked
	if staked == nil {
		staked = new(uint256.Int)
	}
	return rlp.Encode(w, &body{
		WattpeakStaked:   staked,
		InterestWattpeak: dec.Atomics(s.InterestWattpeak),
		ClaimableRewards: dec.Atomics(s.ClaimableRewards),
		StakeStartTime:   s.StakeStartTime,
	})
}

func (s *Staker) DecodeRLP(stream *rlp.Stream) error {
	var b body
	if err := stream.Decode(&b); err != nil {
		return err
	}
	*s = Staker{
		WattpeakStaked:   b.WattpeakStaked,
		InterestWattpeak: dec.FromAtomics(b.InterestWattpeak),
		ClaimableRewards: dec.FromAtomics(b.ClaimableRewards),
		StakeStartTime:   b.StakeStartTime,
	}
	return nil
}
