// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"io"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/wattpeak/staker/builtin/staker"
	"github.com/wattpeak/staker/builtin/staker/dec"
	"github.com/wattpeak/staker/builtin/staker/reverts"
	"github.com/wattpeak/staker/runtime"
	"github.com/wattpeak/staker/wattpeak"
)

// callEntry is a call as given on the command line or in a replay file.
type callEntry struct {
	From   wattpeak.Address `yaml:"from"`
	Action string           `yaml:"action"`
	Funds  string           `yaml:"funds,omitempty"`
	Amount string           `yaml:"amount,omitempty"`
	Time   uint64           `yaml:"time,omitempty"`
	Config *configUpdate    `yaml:"config,omitempty"`
}

type configUpdate struct {
	Admin                *wattpeak.Address `yaml:"admin,omitempty"`
	RewardsPercentage    *string           `yaml:"rewardsPercentage,omitempty"`
	EpochLength          *uint64           `yaml:"epochLength,omitempty"`
	StakeDenom           *string           `yaml:"stakeDenom,omitempty"`
	StakingFeePercentage *string           `yaml:"stakingFeePercentage,omitempty"`
	StakingFeeAddress    *wattpeak.Address `yaml:"stakingFeeAddress,omitempty"`
}

type replayFile struct {
	Calls []*callEntry `yaml:"calls"`
}

func parseDec(name string, s *string) (*dec.Dec, error) {
	if s == nil {
		return nil, nil
	}
	d, err := dec.Parse(*s)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return &d, nil
}

func (c *callEntry) message() (staker.Message, error) {
	switch c.Action {
	case "stake":
		return &staker.StakeMsg{}, nil
	case "unstake":
		amount, err := uint256.FromDecimal(c.Amount)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid amount %q", c.Amount)
		}
		return &staker.UnstakeMsg{Amount: amount}, nil
	case "advance-epoch":
		return &staker.AdvanceEpochMsg{}, nil
	case "deposit-rewards":
		return &staker.DepositRewardsMsg{}, nil
	case "claim":
		return &staker.ClaimRewardsMsg{}, nil
	case "update-config":
		if c.Config == nil {
			return nil, errors.New("update-config requires config")
		}
		msg := &staker.UpdateConfigMsg{
			Admin:             c.Config.Admin,
			EpochLength:       c.Config.EpochLength,
			StakeDenom:        c.Config.StakeDenom,
			StakingFeeAddress: c.Config.StakingFeeAddress,
		}
		var err error
		if msg.RewardsPercentage, err = parseDec("rewards percentage", c.Config.RewardsPercentage); err != nil {
			return nil, err
		}
		if msg.StakingFeePercentage, err = parseDec("staking fee percentage", c.Config.StakingFeePercentage); err != nil {
			return nil, err
		}
		return msg, nil
	default:
		return nil, errors.Errorf("unknown action %q", c.Action)
	}
}

func (c *callEntry) funds() (wattpeak.Coins, error) {
	if c.Funds == "" {
		return nil, nil
	}
	coin, err := wattpeak.ParseCoin(c.Funds)
	if err != nil {
		return nil, err
	}
	return wattpeak.Coins{coin}, nil
}

func (c *callEntry) execute(rt *runtime.Runtime) (*staker.Response, error) {
	msg, err := c.message()
	if err != nil {
		return nil, err
	}
	funds, err := c.funds()
	if err != nil {
		return nil, err
	}
	return rt.Execute(&runtime.Call{Caller: c.From, Funds: funds, Time: c.Time}, msg)
}

func loadReplayFile(r io.Reader) ([]*callEntry, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var file replayFile
	if err := decoder.Decode(&file); err != nil {
		return nil, errors.Wrap(err, "decode replay file")
	}
	return file.Calls, nil
}

// replayResult is the outcome of one replayed call.
type replayResult struct {
	Index    int           `yaml:"index"`
	Action   string        `yaml:"action"`
	From     string        `yaml:"from"`
	Response *responseView `yaml:"response,omitempty"`
	Error    string        `yaml:"error,omitempty"`
}

// replay executes calls in order. Reverted calls are reported and skipped,
// any other failure stops the replay.
func replay(rt *runtime.Runtime, calls []*callEntry) ([]replayResult, error) {
	results := make([]replayResult, 0, len(calls))
	for i, call := range calls {
		res, err := call.execute(rt)
		result := replayResult{Index: i, Action: call.Action, From: call.From.String()}
		switch {
		case err == nil:
			result.Response = newResponseView(res)
		case reverts.IsRevertErr(err):
			result.Error = err.Error()
		default:
			return results, errors.Wrapf(err, "call %d (%s)", i, call.Action)
		}
		results = append(results, result)
	}
	return results, nil
}
