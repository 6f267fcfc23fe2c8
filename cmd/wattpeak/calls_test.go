// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wattpeak/staker/lvldb"
	"github.com/wattpeak/staker/runtime"
	"github.com/wattpeak/staker/wattpeak"
)

const testReplay = `
calls:
  - {from: ` + aliceHex + `, action: stake, funds: 100uwattpeak, time: 1}
  - {from: ` + bobHex + `, action: stake, funds: 300uwattpeak, time: 2}
  - {from: ` + bobHex + `, action: advance-epoch, time: 3}
  - {from: ` + adminHex + `, action: advance-epoch, time: 4}
  - {from: ` + adminHex + `, action: deposit-rewards, funds: 400uwattpeak, time: 5}
  - {from: ` + bobHex + `, action: claim, time: 6}
  - {from: ` + aliceHex + `, action: unstake, amount: "40", time: 7}
  - from: ` + adminHex + `
    action: update-config
    time: 8
    config:
      epochLength: 31556926
      stakingFeePercentage: "0.1"
`

func newTestRuntime(t *testing.T) *runtime.Runtime {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rt := runtime.New(db, runtime.Options{})
	gene, err := loadGenesis(strings.NewReader(testGenesis))
	require.NoError(t, err)
	cfg, err := gene.config()
	require.NoError(t, err)
	_, err = rt.Instantiate(cfg.Admin, cfg, gene.Time)
	require.NoError(t, err)
	return rt
}

func TestReplay(t *testing.T) {
	rt := newTestRuntime(t)

	calls, err := loadReplayFile(strings.NewReader(testReplay))
	require.NoError(t, err)
	require.Len(t, calls, 8)

	results, err := replay(rt, calls)
	require.NoError(t, err)
	require.Len(t, results, 8)

	// bob is not the admin
	assert.Equal(t, "unauthorized", results[2].Error)
	assert.Nil(t, results[2].Response)

	claim := results[5].Response
	require.NotNil(t, claim)
	assert.Equal(t, []paymentView{
		{To: bobHex, Coin: "285uwattpeak"},
		{To: feeHex, Coin: "15uwattpeak"},
	}, claim.Payments)
	assert.Equal(t, "claim_rewards", claim.Attributes["action"])

	unstake := results[6].Response
	require.NotNil(t, unstake)
	assert.Equal(t, []paymentView{{To: aliceHex, Coin: "40uwattpeak"}}, unstake.Payments)

	alice, err := rt.Staker().Staker(wattpeak.MustParseAddress(aliceHex))
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(60), alice.WattpeakStaked)
	assert.Equal(t, uint64(1), alice.StakeStartTime)

	cfg, err := rt.Staker().Config()
	require.NoError(t, err)
	assert.Equal(t, uint64(31556926), cfg.EpochLength)
	assert.Equal(t, "0.100000000000000000", cfg.StakingFeePercentage.String())
}

func TestCallEntryErrors(t *testing.T) {
	rt := newTestRuntime(t)

	_, err := (&callEntry{Action: "mint"}).execute(rt)
	assert.ErrorContains(t, err, "unknown action")

	_, err = (&callEntry{Action: "unstake", Amount: "abc"}).execute(rt)
	assert.ErrorContains(t, err, "invalid amount")

	_, err = (&callEntry{Action: "stake", Funds: "100"}).execute(rt)
	assert.Error(t, err)

	_, err = (&callEntry{Action: "update-config"}).execute(rt)
	assert.ErrorContains(t, err, "requires config")

	bad := "x"
	_, err = (&callEntry{Action: "update-config", Config: &configUpdate{RewardsPercentage: &bad}}).execute(rt)
	assert.ErrorContains(t, err, "rewards percentage")

	_, err = loadReplayFile(strings.NewReader("calls:\n  - {from: 0x01}\n"))
	assert.Error(t, err)
}
