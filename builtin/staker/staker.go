// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"math/big"
	"strconv"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/wattpeak/staker/builtin/solidity"
	"github.com/wattpeak/staker/builtin/staker/dec"
	"github.com/wattpeak/staker/builtin/staker/globalstats"
	"github.com/wattpeak/staker/builtin/staker/interest"
	"github.com/wattpeak/staker/builtin/staker/reverts"
	"github.com/wattpeak/staker/builtin/staker/rewards"
	"github.com/wattpeak/staker/builtin/staker/stakers"
	"github.com/wattpeak/staker/log"
	"github.com/wattpeak/staker/state"
	"github.com/wattpeak/staker/wattpeak"
)

var (
	logger = log.WithContext("pkg", "staker")

	slotConfig           = []byte("config")
	slotPercentageOfYear = []byte("percentage-of-year")
)

func SetLogger(l log.Logger) {
	logger = l
}

// Staker implements the wattpeak staking contract over a state.
type Staker struct {
	config           *solidity.Raw[*Config]
	percentageOfYear *solidity.Raw[*big.Int]

	stakersService     *stakers.Service
	globalStatsService *globalstats.Service
	interestService    *interest.Service
	rewardsService     *rewards.Service
}

// New create a new instance. All keys are written under prefix.
func New(prefix []byte, state *state.State) *Staker {
	sctx := solidity.NewContext(prefix, state)

	stakersService := stakers.New(sctx)
	globalStatsService := globalstats.New(sctx)

	return &Staker{
		config:           solidity.NewRaw[*Config](sctx, slotConfig),
		percentageOfYear: solidity.NewRaw[*big.Int](sctx, slotPercentageOfYear),

		stakersService:     stakersService,
		globalStatsService: globalStatsService,
		interestService:    interest.New(stakersService, globalStatsService),
		rewardsService:     rewards.New(stakersService, globalStatsService),
	}
}

//
// Getters - no state change
//

// Config returns the current config.
func (s *Staker) Config() (*Config, error) {
	cfg, err := s.config.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get config")
	}
	if cfg == nil {
		return nil, reverts.NotFound("config")
	}
	return cfg, nil
}

// PercentageOfYear returns the cached epoch length as a fraction of a year.
func (s *Staker) PercentageOfYear() (dec.Dec, error) {
	atomics, err := s.percentageOfYear.Get()
	if err != nil {
		return dec.Dec{}, errors.Wrap(err, "failed to get percentage of year")
	}
	if atomics == nil {
		return dec.Dec{}, reverts.NotFound("percentage of year")
	}
	return dec.FromAtomics(atomics), nil
}

// Staker returns the record of addr.
func (s *Staker) Staker(addr wattpeak.Address) (*stakers.Staker, error) {
	st, err := s.stakersService.Get(addr)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, reverts.NotFound("staker")
	}
	return st, nil
}

// Stakers returns all records in ascending address order.
func (s *Staker) Stakers() ([]stakers.Entry, error) {
	return s.stakersService.All()
}

// TotalWattpeakStaked returns the amount locked by all stakers.
func (s *Staker) TotalWattpeakStaked() (*uint256.Int, error) {
	return s.globalStatsService.TotalStaked()
}

// TotalInterestWattpeak returns the interest accrued since the last distribution.
func (s *Staker) TotalInterestWattpeak() (dec.Dec, error) {
	return s.globalStatsService.TotalInterest()
}

// EpochCount returns the number of accrued epochs.
func (s *Staker) EpochCount() (uint64, error) {
	return s.globalStatsService.EpochCount()
}

//
// Setters - state change
//

// Instantiate stores the initial config and zeroes all totals. It can only
// run once.
func (s *Staker) Instantiate(env *Env, cfg *Config) (*Response, error) {
	exists, err := s.config.Exists()
	if err != nil {
		return nil, errors.Wrap(err, "failed to check config")
	}
	if exists {
		return nil, reverts.New("already instantiated")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := s.setConfig(cfg); err != nil {
		return nil, err
	}
	if err := s.globalStatsService.Init(); err != nil {
		return nil, err
	}

	logger.Debug("instantiated", "admin", cfg.Admin, "epochLength", cfg.EpochLength, "denom", cfg.StakeDenom)

	return newResponse(ActionInstantiate, env.Caller).
		addAttribute("admin", cfg.Admin.String()), nil
}

// Execute dispatches msg. Writes made by a failed call are left in the state;
// the host is expected to run each call in a checkpoint.
func (s *Staker) Execute(env *Env, msg Message) (*Response, error) {
	if msg == nil {
		return nil, reverts.New("empty message")
	}
	return msg.execute(s, env)
}

// setConfig persists cfg and the derived percentage of year.
func (s *Staker) setConfig(cfg *Config) error {
	pct, err := interest.PercentageOfYear(cfg.EpochLength)
	if err != nil {
		return err
	}
	if err := s.config.Set(cfg); err != nil {
		return err
	}
	return s.percentageOfYear.Set(dec.Atomics(pct))
}

func (s *Staker) adminConfig(env *Env) (*Config, error) {
	cfg, err := s.Config()
	if err != nil {
		return nil, err
	}
	if env.Caller != cfg.Admin {
		return nil, reverts.Unauthorized()
	}
	return cfg, nil
}

// attachedAmount returns the amount of a single non-zero coin of denom.
func attachedAmount(funds wattpeak.Coins, denom string) (*uint256.Int, error) {
	switch {
	case len(funds) == 0:
		return nil, reverts.New("no funds sent")
	case len(funds) > 1:
		return nil, reverts.New("only one coin may be sent")
	case funds[0].Denom != denom:
		return nil, reverts.Newf(reverts.KindInvalid, "invalid denom %q, expected %q", funds[0].Denom, denom)
	case funds[0].IsZero():
		return nil, reverts.New("amount must be greater than zero")
	}
	return new(uint256.Int).Set(funds[0].Amount), nil
}

func (s *Staker) stake(env *Env) (*Response, error) {
	cfg, err := s.Config()
	if err != nil {
		return nil, err
	}
	amount, err := attachedAmount(env.Funds, cfg.StakeDenom)
	if err != nil {
		return nil, err
	}

	st, err := s.stakersService.Get(env.Caller)
	if err != nil {
		return nil, err
	}
	if st == nil {
		st = stakers.NewStaker(env.Time)
	}
	if st.WattpeakStaked, err = dec.AddUint256(st.WattpeakStaked, amount); err != nil {
		return nil, err
	}

	if err := s.globalStatsService.AddStaked(amount); err != nil {
		return nil, err
	}
	if err := s.stakersService.Set(env.Caller, st); err != nil {
		return nil, err
	}

	logger.Debug("staked", "staker", env.Caller, "amount", amount, "staked", st.WattpeakStaked)

	return newResponse(ActionStake, env.Caller).
		addAttribute("amount", amount.Dec()), nil
}

func (s *Staker) unstake(env *Env, amount *uint256.Int) (*Response, error) {
	cfg, err := s.Config()
	if err != nil {
		return nil, err
	}
	if amount == nil || amount.IsZero() {
		return nil, reverts.New("amount must be greater than zero")
	}

	st, err := s.stakersService.Get(env.Caller)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, reverts.NotFound("staker")
	}
	if amount.Gt(st.WattpeakStaked) {
		return nil, reverts.Newf(reverts.KindInvalid, "insufficient stake: staked %s, requested %s",
			st.WattpeakStaked.Dec(), amount.Dec())
	}
	st.WattpeakStaked = new(uint256.Int).Sub(st.WattpeakStaked, amount)

	if err := s.globalStatsService.SubStaked(amount); err != nil {
		return nil, err
	}
	if err := s.stakersService.Set(env.Caller, st); err != nil {
		return nil, err
	}

	logger.Debug("unstaked", "staker", env.Caller, "amount", amount, "staked", st.WattpeakStaked)

	return newResponse(ActionUnstake, env.Caller).
		addAttribute("amount", amount.Dec()).
		addPayment(env.Caller, cfg.StakeDenom, amount), nil
}

func (s *Staker) advanceEpoch(env *Env) (*Response, error) {
	cfg, err := s.adminConfig(env)
	if err != nil {
		return nil, err
	}
	pct, err := s.PercentageOfYear()
	if err != nil {
		return nil, err
	}

	res, err := s.interestService.AdvanceEpoch(cfg.RewardsPercentage, pct)
	if err != nil {
		return nil, err
	}

	logger.Debug("epoch advanced", "epoch", res.Epoch, "interest", res.PeriodTotal, "stakers", res.Stakers)

	return newResponse(ActionAdvanceEpoch, env.Caller).
		addAttribute("epoch", strconv.FormatUint(res.Epoch, 10)).
		addAttribute("interest", res.PeriodTotal.String()).
		addAttribute("stakers", strconv.Itoa(res.Stakers)), nil
}

func (s *Staker) depositRewards(env *Env) (*Response, error) {
	cfg, err := s.adminConfig(env)
	if err != nil {
		return nil, err
	}
	amount, err := attachedAmount(env.Funds, cfg.StakeDenom)
	if err != nil {
		return nil, err
	}

	d, err := s.rewardsService.Distribute(amount)
	if err != nil {
		return nil, err
	}

	logger.Debug("rewards deposited", "amount", amount, "distributed", d.Distributed, "dust", d.Dust)

	return newResponse(ActionDepositRewards, env.Caller).
		addAttribute("amount", amount.Dec()).
		addAttribute("interest", d.TotalInterest.String()).
		addAttribute("stakers", strconv.Itoa(d.Stakers)).
		addAttribute("dust", d.Dust.String()), nil
}

func (s *Staker) claimRewards(env *Env) (*Response, error) {
	cfg, err := s.Config()
	if err != nil {
		return nil, err
	}

	c, err := s.rewardsService.Claim(env.Caller, cfg.StakingFeePercentage)
	if err != nil {
		return nil, err
	}

	logger.Debug("rewards claimed", "staker", env.Caller, "claimable", c.Claimable, "payout", c.Payout, "fee", c.Fee)

	return newResponse(ActionClaimRewards, env.Caller).
		addAttribute("amount", c.Claimable.String()).
		addAttribute("payout", c.Payout.Dec()).
		addAttribute("fee", c.Fee.Dec()).
		addPayment(env.Caller, cfg.StakeDenom, c.Payout).
		addPayment(cfg.StakingFeeAddress, cfg.StakeDenom, c.Fee), nil
}

// checkNoBalances rejects the call while the ledger still holds balances in
// the current denom.
func (s *Staker) checkNoBalances() error {
	staked, err := s.globalStatsService.TotalStaked()
	if err != nil {
		return err
	}
	interest, err := s.globalStatsService.TotalInterest()
	if err != nil {
		return err
	}
	held, err := s.stakersService.Any()
	if err != nil {
		return err
	}
	if !staked.IsZero() || !interest.IsZero() || held {
		return reverts.New("stake denom is locked while balances are outstanding")
	}
	return nil
}

func (s *Staker) updateConfig(env *Env, msg *UpdateConfigMsg) (*Response, error) {
	cfg, err := s.adminConfig(env)
	if err != nil {
		return nil, err
	}

	merged := msg.apply(cfg)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	if merged.StakeDenom != cfg.StakeDenom {
		if err := s.checkNoBalances(); err != nil {
			return nil, err
		}
	}

	if merged.EpochLength != cfg.EpochLength {
		if err := s.setConfig(merged); err != nil {
			return nil, err
		}
	} else if err := s.config.Set(merged); err != nil {
		return nil, err
	}

	logger.Debug("config updated", "admin", merged.Admin, "epochLength", merged.EpochLength)

	return newResponse(ActionUpdateConfig, env.Caller), nil
}
