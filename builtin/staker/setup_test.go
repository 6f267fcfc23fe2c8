// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"math/big"
	"sync"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wattpeak/staker/builtin/staker/dec"
	"github.com/wattpeak/staker/lvldb"
	"github.com/wattpeak/staker/state"
	"github.com/wattpeak/staker/wattpeak"
)

const testDenom = wattpeak.DefaultStakeDenom

var (
	admin    = wattpeak.BytesToAddress([]byte("admin"))
	feeTo    = wattpeak.BytesToAddress([]byte("fee"))
	alice    = wattpeak.BytesToAddress([]byte{1})
	bob      = wattpeak.BytesToAddress([]byte{2})
	carol    = wattpeak.BytesToAddress([]byte{3})
	stranger = wattpeak.BytesToAddress([]byte("stranger"))
)

func mustParse(t *testing.T, s string) dec.Dec {
	d, err := dec.Parse(s)
	require.NoError(t, err)
	return d
}

func atomics(t *testing.T, s string) dec.Dec {
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, s)
	return dec.FromAtomics(v)
}

func testConfig(t *testing.T) *Config {
	return &Config{
		Admin:                admin,
		RewardsPercentage:    mustParse(t, "0.1"),
		EpochLength:          86000,
		StakeDenom:           testDenom,
		StakingFeePercentage: mustParse(t, "0.05"),
		StakingFeeAddress:    feeTo,
	}
}

func coins(amount uint64) wattpeak.Coins {
	return wattpeak.Coins{wattpeak.NewCoin(testDenom, uint256.NewInt(amount))}
}

func newState(t *testing.T) *state.State {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return state.New(db, nil)
}

// newTestStaker returns an instantiated contract.
func newTestStaker(t *testing.T, cfg *Config) *Staker {
	s := New([]byte("staker."), newState(t))
	_, err := s.Instantiate(&Env{Caller: admin, Time: 1}, cfg)
	require.NoError(t, err)
	return s
}

type TestFunc func(t *testing.T)

type TestSequence struct {
	staker *Staker
	time   uint64

	funcs []TestFunc
	mu    sync.Mutex
}

func NewSequence(staker *Staker) *TestSequence {
	return &TestSequence{funcs: make([]TestFunc, 0), staker: staker, time: 1000}
}

func (st *TestSequence) AddFunc(f TestFunc) *TestSequence {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.funcs = append(st.funcs, f)
	return st
}

func (st *TestSequence) exec(t *testing.T, caller wattpeak.Address, funds wattpeak.Coins, msg Message) *Response {
	st.time++
	res, err := st.staker.Execute(&Env{Caller: caller, Funds: funds, Time: st.time}, msg)
	if err != nil {
		t.Fatalf("%s by %s failed: %v", msg.Action(), caller, err)
	}
	return res
}

func (st *TestSequence) Stake(addr wattpeak.Address, amount uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		st.exec(t, addr, coins(amount), &StakeMsg{})
		t.Logf("%s staked %d", addr, amount)
	})
}

func (st *TestSequence) Unstake(addr wattpeak.Address, amount uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		res := st.exec(t, addr, nil, &UnstakeMsg{Amount: uint256.NewInt(amount)})
		require.Len(t, res.Payments, 1)
		assert.Equal(t, addr, res.Payments[0].Recipient)
		assert.Equal(t, uint256.NewInt(amount), res.Payments[0].Coin.Amount)
	})
}

func (st *TestSequence) AdvanceEpoch() *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		res := st.exec(t, admin, nil, &AdvanceEpochMsg{})
		epoch, _ := res.Attribute("epoch")
		t.Logf("advanced to epoch %s", epoch)
	})
}

func (st *TestSequence) Deposit(amount uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		st.exec(t, admin, coins(amount), &DepositRewardsMsg{})
	})
}

func (st *TestSequence) Claim(addr wattpeak.Address, payout, fee uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		res := st.exec(t, addr, nil, &ClaimRewardsMsg{})
		var gotPayout, gotFee uint64
		for _, p := range res.Payments {
			switch p.Recipient {
			case addr:
				gotPayout = p.Coin.Amount.Uint64()
			case feeTo:
				gotFee = p.Coin.Amount.Uint64()
			}
		}
		assert.Equal(t, payout, gotPayout, "payout")
		assert.Equal(t, fee, gotFee, "fee")
	})
}

func (st *TestSequence) AssertStaked(addr wattpeak.Address, expected uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		rec, err := st.staker.Staker(addr)
		require.NoError(t, err)
		assert.Equal(t, uint256.NewInt(expected), rec.WattpeakStaked)
	})
}

func (st *TestSequence) AssertEpoch(expected uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		epoch, err := st.staker.EpochCount()
		require.NoError(t, err)
		assert.Equal(t, expected, epoch)
	})
}

func (st *TestSequence) AssertInvariants() *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		assertInvariants(t, st.staker)
	})
}

func (st *TestSequence) Run(t *testing.T) {
	for _, f := range st.funcs {
		f(t)
	}
}

// assertInvariants checks that totals match the per staker balances and that
// no empty record is stored.
func assertInvariants(t *testing.T, s *Staker) {
	entries, err := s.Stakers()
	require.NoError(t, err)

	staked := new(uint256.Int)
	interest := dec.Zero()
	for _, e := range entries {
		assert.False(t, e.Staker.IsEmpty(), "empty record for %s", e.Address)
		assert.False(t, e.Staker.InterestWattpeak.IsNegative())
		assert.False(t, e.Staker.ClaimableRewards.IsNegative())
		staked.Add(staked, e.Staker.WattpeakStaked)
		interest = interest.Add(e.Staker.InterestWattpeak)
	}

	totalStaked, err := s.TotalWattpeakStaked()
	require.NoError(t, err)
	assert.Equal(t, staked, totalStaked, "total staked")

	totalInterest, err := s.TotalInterestWattpeak()
	require.NoError(t, err)
	assert.True(t, interest.Equal(totalInterest), "total interest %s != %s", totalInterest, interest)
}
