// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package rewards converts deposited funds into claimable balances and splits
// claims into payout and protocol fee.
package rewards

import (
	"github.com/holiman/uint256"

	"github.com/wattpeak/staker/builtin/staker/dec"
	"github.com/wattpeak/staker/builtin/staker/globalstats"
	"github.com/wattpeak/staker/builtin/staker/reverts"
	"github.com/wattpeak/staker/builtin/staker/stakers"
	"github.com/wattpeak/staker/wattpeak"
)

// Distribution describes one deposit.
type Distribution struct {
	Amount        *uint256.Int
	TotalInterest dec.Dec // interest converted by the deposit
	Distributed   dec.Dec // sum of credited rewards, never above Amount
	Dust          dec.Dec // Amount - Distributed, kept by the contract
	Stakers       int
}

// Share returns the reward of one staker: trunc(amount * trunc(interest / total)).
func Share(amount, interest, total dec.Dec) (dec.Dec, error) {
	share, err := dec.Quo(interest, total)
	if err != nil {
		return dec.Dec{}, err
	}
	return dec.Mul(amount, share)
}

// Split divides a claimable balance into the staker's payout and the fee,
// both floored to whole units: fee = trunc(claimable * feeRate),
// payout = claimable - fee.
func Split(claimable, feeRate dec.Dec) (payout, fee *uint256.Int, err error) {
	feeDec, err := dec.Mul(claimable, feeRate)
	if err != nil {
		return nil, nil, err
	}
	payoutDec, err := dec.Sub(claimable, feeDec)
	if err != nil {
		return nil, nil, err
	}
	if payout, err = dec.Floor(payoutDec); err != nil {
		return nil, nil, err
	}
	if fee, err = dec.Floor(feeDec); err != nil {
		return nil, nil, err
	}
	return payout, fee, nil
}

// Service runs distributions over the ledger.
type Service struct {
	stakers     *stakers.Service
	globalStats *globalstats.Service
}

func New(stakers *stakers.Service, globalStats *globalstats.Service) *Service {
	return &Service{
		stakers:     stakers,
		globalStats: globalStats,
	}
}

// Distribute credits amount to stakers in proportion to their outstanding
// interest, and resets all interest to zero.
// All updates are computed before anything is written.
func (s *Service) Distribute(amount *uint256.Int) (*Distribution, error) {
	total, err := s.globalStats.TotalInterest()
	if err != nil {
		return nil, err
	}
	if total.IsZero() {
		return nil, reverts.Newf(reverts.KindNothingToDistribute, "nothing to distribute: no outstanding interest")
	}

	amountDec, err := dec.FromUint256(amount)
	if err != nil {
		return nil, err
	}

	entries, err := s.stakers.All()
	if err != nil {
		return nil, err
	}

	distributed := dec.Zero()
	updated := make([]*stakers.Staker, len(entries))
	for i, entry := range entries {
		reward, err := Share(amountDec, entry.Staker.InterestWattpeak, total)
		if err != nil {
			return nil, err
		}
		cpy := entry.Staker.Copy()
		if cpy.ClaimableRewards, err = dec.Add(cpy.ClaimableRewards, reward); err != nil {
			return nil, err
		}
		cpy.InterestWattpeak = dec.Zero()
		if distributed, err = dec.Add(distributed, reward); err != nil {
			return nil, err
		}
		updated[i] = cpy
	}

	dust, err := dec.Sub(amountDec, distributed)
	if err != nil {
		return nil, err
	}

	// write phase
	for i, entry := range entries {
		if err := s.stakers.Set(entry.Address, updated[i]); err != nil {
			return nil, err
		}
	}
	if err := s.globalStats.SetTotalInterest(dec.Zero()); err != nil {
		return nil, err
	}

	return &Distribution{
		Amount:        amount,
		TotalInterest: total,
		Distributed:   distributed,
		Dust:          dust,
		Stakers:       len(entries),
	}, nil
}

// Claim describes a paid out claimable balance.
type Claim struct {
	Claimable dec.Dec
	Payout    *uint256.Int
	Fee       *uint256.Int
}

// Claim zeroes the claimable balance of addr and returns how it splits.
// Whatever is lost to flooring stays with the contract.
func (s *Service) Claim(addr wattpeak.Address, feeRate dec.Dec) (*Claim, error) {
	st, err := s.stakers.Get(addr)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, reverts.NotFound("staker")
	}
	if st.ClaimableRewards.IsZero() {
		return nil, reverts.Newf(reverts.KindNothingToClaim, "nothing to claim")
	}

	payout, fee, err := Split(st.ClaimableRewards, feeRate)
	if err != nil {
		return nil, err
	}

	claimable := st.ClaimableRewards
	cpy := st.Copy()
	cpy.ClaimableRewards = dec.Zero()
	if err := s.stakers.Set(addr, cpy); err != nil {
		return nil, err
	}
	return &Claim{
		Claimable: claimable,
		Payout:    payout,
		Fee:       fee,
	}, nil
}
