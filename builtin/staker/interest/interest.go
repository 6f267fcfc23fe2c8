// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package interest accrues per-epoch interest on staked balances.
//
// Accrual is driven purely by calls: every AdvanceEpoch adds one epoch worth
// of interest regardless of how much wall clock time has passed. The admin is
// responsible for calling it once per epoch_length.
package interest

import (
	"github.com/holiman/uint256"

	"github.com/wattpeak/staker/builtin/staker/dec"
	"github.com/wattpeak/staker/builtin/staker/globalstats"
	"github.com/wattpeak/staker/builtin/staker/reverts"
	"github.com/wattpeak/staker/builtin/staker/stakers"
	"github.com/wattpeak/staker/wattpeak"
)

// PercentageOfYear returns trunc(epochLength / SecondsPerYear).
func PercentageOfYear(epochLength uint64) (dec.Dec, error) {
	if epochLength == 0 {
		return dec.Dec{}, reverts.New("epoch length must be positive")
	}
	return dec.Quo(dec.FromUint64(epochLength), dec.FromUint64(wattpeak.SecondsPerYear))
}

// Earned returns the interest of one epoch:
// trunc(trunc(staked * rate) * percentageOfYear).
func Earned(staked *uint256.Int, rate, percentageOfYear dec.Dec) (dec.Dec, error) {
	amount, err := dec.FromUint256(staked)
	if err != nil {
		return dec.Dec{}, err
	}
	yearly, err := dec.Mul(amount, rate)
	if err != nil {
		return dec.Dec{}, err
	}
	return dec.Mul(yearly, percentageOfYear)
}

// Result describes one accrual.
type Result struct {
	Epoch         uint64
	PeriodTotal   dec.Dec // interest added during the epoch
	TotalInterest dec.Dec // outstanding interest after the epoch
	Stakers       int
}

// Service runs the accrual over the ledger.
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

// AdvanceEpoch adds one epoch of interest to every staker and to the total,
// then bumps the epoch counter.
// All updates are computed before anything is written, so a failure on any
// staker leaves the ledger untouched.
func (s *Service) AdvanceEpoch(rate, percentageOfYear dec.Dec) (*Result, error) {
	entries, err := s.stakers.All()
	if err != nil {
		return nil, err
	}

	periodTotal := dec.Zero()
	updated := make([]*stakers.Staker, len(entries))
	for i, entry := range entries {
		earned, err := Earned(entry.Staker.WattpeakStaked, rate, percentageOfYear)
		if err != nil {
			return nil, err
		}
		cpy := entry.Staker.Copy()
		if cpy.InterestWattpeak, err = dec.Add(cpy.InterestWattpeak, earned); err != nil {
			return nil, err
		}
		if periodTotal, err = dec.Add(periodTotal, earned); err != nil {
			return nil, err
		}
		updated[i] = cpy
	}

	total, err := s.globalStats.TotalInterest()
	if err != nil {
		return nil, err
	}
	if total, err = dec.Add(total, periodTotal); err != nil {
		return nil, err
	}
	count, err := s.globalStats.EpochCount()
	if err != nil {
		return nil, err
	}
	if count == ^uint64(0) {
		return nil, reverts.Overflow("epoch count")
	}

	// write phase
	for i, entry := range entries {
		if err := s.stakers.Set(entry.Address, updated[i]); err != nil {
			return nil, err
		}
	}
	if err := s.globalStats.SetTotalInterest(total); err != nil {
		return nil, err
	}
	epoch, err := s.globalStats.IncrementEpoch()
	if err != nil {
		return nil, err
	}

	return &Result{
		Epoch:         epoch,
		PeriodTotal:   periodTotal,
		TotalInterest: total,
		Stakers:       len(entries),
	}, nil
}
