// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>
package globalstats

import (
	"math"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wattpeak/staker/builtin/solidity"
	"github.com/wattpeak/staker/builtin/staker/dec"
	"github.com/wattpeak/staker/builtin/staker/reverts"
	"github.com/wattpeak/staker/lvldb"
	"github.com/wattpeak/staker/state"
)

func newSvc(t *testing.T) (*Service, *state.State) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := state.New(db, nil)
	return New(solidity.NewContext([]byte("gs."), st)), st
}

func TestService_Empty(t *testing.T) {
	svc, _ := newSvc(t)

	staked, err := svc.TotalStaked()
	assert.NoError(t, err)
	assert.True(t, staked.IsZero())

	interest, err := svc.TotalInterest()
	assert.NoError(t, err)
	assert.True(t, interest.IsZero())

	count, err := svc.EpochCount()
	assert.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, svc.Init())
	staked, err = svc.TotalStaked()
	assert.NoError(t, err)
	assert.True(t, staked.IsZero())
}

func TestService_AddSubStaked(t *testing.T) {
	svc, _ := newSvc(t)

	require.NoError(t, svc.AddStaked(uint256.NewInt(100)))
	require.NoError(t, svc.AddStaked(uint256.NewInt(200)))
	require.NoError(t, svc.SubStaked(uint256.NewInt(50)))

	staked, err := svc.TotalStaked()
	assert.NoError(t, err)
	assert.Equal(t, uint256.NewInt(250), staked)

	err = svc.SubStaked(uint256.NewInt(251))
	assert.True(t, reverts.Is(err, reverts.KindOverflow))

	err = svc.AddStaked(new(uint256.Int).SetAllOne())
	assert.True(t, reverts.Is(err, reverts.KindOverflow))

	staked, err = svc.TotalStaked()
	assert.NoError(t, err)
	assert.Equal(t, uint256.NewInt(250), staked)
}

func TestService_TotalInterest(t *testing.T) {
	svc, _ := newSvc(t)

	total, err := dec.Parse("0.16351402541553")
	require.NoError(t, err)
	require.NoError(t, svc.SetTotalInterest(total))

	got, err := svc.TotalInterest()
	assert.NoError(t, err)
	assert.True(t, total.Equal(got))

	neg, err := dec.Parse("-1")
	require.NoError(t, err)
	assert.True(t, reverts.Is(svc.SetTotalInterest(neg), reverts.KindInvalid))
}

func TestService_IncrementEpoch(t *testing.T) {
	svc, _ := newSvc(t)

	for i := uint64(1); i <= 3; i++ {
		count, err := svc.IncrementEpoch()
		require.NoError(t, err)
		assert.Equal(t, i, count)
	}

	require.NoError(t, svc.epochCount.Set(math.MaxUint64))
	_, err := svc.IncrementEpoch()
	assert.True(t, reverts.Is(err, reverts.KindOverflow))
}

func TestService_CorruptSlot(t *testing.T) {
	svc, st := newSvc(t)
	st.Put([]byte("gs.total-staked"), []byte{0xFF})

	_, err := svc.TotalStaked()
	assert.Error(t, err)
	assert.False(t, reverts.IsRevertErr(err))
}
