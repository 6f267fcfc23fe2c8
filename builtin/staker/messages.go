// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/holiman/uint256"

	"github.com/wattpeak/staker/builtin/staker/dec"
	"github.com/wattpeak/staker/wattpeak"
)

// Action names, as reported in the "action" attribute.
const (
	ActionInstantiate    = "instantiate"
	ActionUpdateConfig   = "update_config"
	ActionStake          = "stake_wattpeak"
	ActionUnstake        = "unstake"
	ActionAdvanceEpoch   = "advance_epoch"
	ActionDepositRewards = "deposit_rewards"
	ActionClaimRewards   = "claim_rewards"
)

// Message is an entry point of the contract. The set of messages is closed:
// every message dispatches itself to its handler.
type Message interface {
	Action() string
	execute(s *Staker, env *Env) (*Response, error)
}

var (
	_ Message = (*StakeMsg)(nil)
	_ Message = (*UnstakeMsg)(nil)
	_ Message = (*AdvanceEpochMsg)(nil)
	_ Message = (*DepositRewardsMsg)(nil)
	_ Message = (*ClaimRewardsMsg)(nil)
	_ Message = (*UpdateConfigMsg)(nil)
)

// StakeMsg locks the attached funds.
type StakeMsg struct{}

// UnstakeMsg releases Amount of the caller's stake.
type UnstakeMsg struct {
	Amount *uint256.Int
}

// AdvanceEpochMsg accrues one epoch of interest. Admin only.
type AdvanceEpochMsg struct{}

// DepositRewardsMsg converts the attached funds into claimable rewards. Admin only.
type DepositRewardsMsg struct{}

// ClaimRewardsMsg pays out the caller's claimable rewards minus the fee.
type ClaimRewardsMsg struct{}

// UpdateConfigMsg changes the non-nil fields of the config. Admin only.
type UpdateConfigMsg struct {
	Admin                *wattpeak.Address
	RewardsPercentage    *dec.Dec
	EpochLength          *uint64
	StakeDenom           *string
	StakingFeePercentage *dec.Dec
	StakingFeeAddress    *wattpeak.Address
}

func (*StakeMsg) Action() string          { return ActionStake }
func (*UnstakeMsg) Action() string        { return ActionUnstake }
func (*AdvanceEpochMsg) Action() string   { return ActionAdvanceEpoch }
func (*DepositRewardsMsg) Action() string { return ActionDepositRewards }
func (*ClaimRewardsMsg) Action() string   { return ActionClaimRewards }
func (*UpdateConfigMsg) Action() string   { return ActionUpdateConfig }

func (m *StakeMsg) execute(s *Staker, env *Env) (*Response, error) {
	return s.stake(env)
}

func (m *UnstakeMsg) execute(s *Staker, env *Env) (*Response, error) {
	return s.unstake(env, m.Amount)
}

func (m *AdvanceEpochMsg) execute(s *Staker, env *Env) (*Response, error) {
	return s.advanceEpoch(env)
}

func (m *DepositRewardsMsg) execute(s *Staker, env *Env) (*Response, error) {
	return s.depositRewards(env)
}

func (m *ClaimRewardsMsg) execute(s *Staker, env *Env) (*Response, error) {
	return s.claimRewards(env)
}

func (m *UpdateConfigMsg) execute(s *Staker, env *Env) (*Response, error) {
	return s.updateConfig(env, m)
}

// apply merges the set fields into a copy of cfg.
func (m *UpdateConfigMsg) apply(cfg *Config) *Config {
	merged := cfg.Copy()
	if m.Admin != nil {
		merged.Admin = *m.Admin
	}
	if m.RewardsPercentage != nil {
		merged.RewardsPercentage = cloneDec(*m.RewardsPercentage)
	}
	if m.EpochLength != nil {
		merged.EpochLength = *m.EpochLength
	}
	if m.StakeDenom != nil {
		merged.StakeDenom = *m.StakeDenom
	}
	if m.StakingFeePercentage != nil {
		merged.StakingFeePercentage = cloneDec(*m.StakingFeePercentage)
	}
	if m.StakingFeeAddress != nil {
		merged.StakingFeeAddress = *m.StakingFeeAddress
	}
	return merged
}
