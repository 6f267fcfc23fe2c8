// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakers

import (
	"github.com/pkg/errors"

	"github.com/wattpeak/staker/builtin/solidity"
	"github.com/wattpeak/staker/wattpeak"
)

var (
	slotStakers = []byte("stakers")
	errStop     = errors.New("stop")
)

// Service manages the participant ledger.
// A record exists only while at least one of its balances is non-zero.
type Service struct {
	stakers *solidity.Mapping[wattpeak.Address, *Staker]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		stakers: solidity.NewMapping[wattpeak.Address, *Staker](sctx, slotStakers),
	}
}

// Get returns the record of addr, or nil if there is none.
func (s *Service) Get(addr wattpeak.Address) (*Staker, error) {
	st, found, err := s.stakers.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get staker")
	}
	if !found {
		return nil, nil
	}
	return st, nil
}

// Set persists the record, removing it if it is empty.
func (s *Service) Set(addr wattpeak.Address, st *Staker) error {
	if st.IsEmpty() {
		s.stakers.Delete(addr)
		return nil
	}
	if err := s.stakers.Set(addr, st); err != nil {
		return errors.Wrap(err, "failed to set staker")
	}
	return nil
}

// Range visits every record in ascending address order.
func (s *Service) Range(fn func(addr wattpeak.Address, st *Staker) error) error {
	return s.stakers.Range(func(key []byte, st *Staker) error {
		return fn(wattpeak.BytesToAddress(key), st)
	})
}

// Any reports whether at least one record exists.
func (s *Service) Any() (bool, error) {
	err := s.stakers.Range(func([]byte, *Staker) error { return errStop })
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, errStop):
		return true, nil
	default:
		return false, errors.Wrap(err, "failed to scan stakers")
	}
}

// Entry is an address with its record.
type Entry struct {
	Address wattpeak.Address
	Staker  *Staker
}

// All returns every record in ascending address order.
func (s *Service) All() ([]Entry, error) {
	var entries []Entry
	if err := s.Range(func(addr wattpeak.Address, st *Staker) error {
		entries = append(entries, Entry{Address: addr, Staker: st})
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "failed to list stakers")
	}
	return entries, nil
}
