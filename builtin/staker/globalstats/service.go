// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package globalstats

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/wattpeak/staker/builtin/solidity"
	"github.com/wattpeak/staker/builtin/staker/dec"
	"github.com/wattpeak/staker/builtin/staker/reverts"
)

var (
	slotTotalStaked   = []byte("total-staked")
	slotTotalInterest = []byte("total-interest")
	slotEpochCount    = []byte("epoch-count")
)

// Service manages contract-wide totals.
// Total staked mirrors the sum of all staked balances, total interest the sum
// of all outstanding interest.
type Service struct {
	totalStaked   *solidity.Raw[*uint256.Int]
	totalInterest *solidity.Raw[*big.Int]
	epochCount    *solidity.Raw[uint64]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		totalStaked:   solidity.NewRaw[*uint256.Int](sctx, slotTotalStaked),
		totalInterest: solidity.NewRaw[*big.Int](sctx, slotTotalInterest),
		epochCount:    solidity.NewRaw[uint64](sctx, slotEpochCount),
	}
}

// Init zeroes all totals.
func (s *Service) Init() error {
	if err := s.totalStaked.Set(new(uint256.Int)); err != nil {
		return err
	}
	if err := s.totalInterest.Set(new(big.Int)); err != nil {
		return err
	}
	return s.epochCount.Set(0)
}

// TotalStaked returns the amount locked by all stakers.
func (s *Service) TotalStaked() (*uint256.Int, error) {
	total, err := s.totalStaked.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get total staked")
	}
	if total == nil {
		return new(uint256.Int), nil
	}
	return total, nil
}

// AddStaked increases total staked.
func (s *Service) AddStaked(amount *uint256.Int) error {
	total, err := s.TotalStaked()
	if err != nil {
		return err
	}
	sum, err := dec.AddUint256(total, amount)
	if err != nil {
		return err
	}
	return s.totalStaked.Set(sum)
}

// SubStaked decreases total staked.
func (s *Service) SubStaked(amount *uint256.Int) error {
	total, err := s.TotalStaked()
	if err != nil {
		return err
	}
	diff, err := dec.SubUint256(total, amount)
	if err != nil {
		return err
	}
	return s.totalStaked.Set(diff)
}

// TotalInterest returns the outstanding interest of all stakers.
func (s *Service) TotalInterest() (dec.Dec, error) {
	atomics, err := s.totalInterest.Get()
	if err != nil {
		return dec.Dec{}, errors.Wrap(err, "failed to get total interest")
	}
	return dec.FromAtomics(atomics), nil
}

// SetTotalInterest overwrites the outstanding interest total.
func (s *Service) SetTotalInterest(total dec.Dec) error {
	if total.IsNegative() {
		return reverts.Newf(reverts.KindInvalid, "negative total interest %s", total)
	}
	return s.totalInterest.Set(dec.Atomics(total))
}

// EpochCount returns the number of accruals run so far.
func (s *Service) EpochCount() (uint64, error) {
	count, err := s.epochCount.Get()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get epoch count")
	}
	return count, nil
}

// IncrementEpoch bumps the epoch counter and returns the new value.
func (s *Service) IncrementEpoch() (uint64, error) {
	count, err := s.EpochCount()
	if err != nil {
		return 0, err
	}
	if count == ^uint64(0) {
		return 0, reverts.Overflow("epoch count")
	}
	count++
	return count, s.epochCount.Set(count)
}
