// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/wattpeak/staker/builtin/staker"
	"github.com/wattpeak/staker/builtin/staker/dec"
	"github.com/wattpeak/staker/wattpeak"
)

// genesis is the initial config of a ledger.
type genesis struct {
	Admin                wattpeak.Address `yaml:"admin"`
	RewardsPercentage    string           `yaml:"rewardsPercentage"`
	EpochLength          uint64           `yaml:"epochLength"`
	StakeDenom           string           `yaml:"stakeDenom"`
	StakingFeePercentage string           `yaml:"stakingFeePercentage"`
	StakingFeeAddress    wattpeak.Address `yaml:"stakingFeeAddress"`
	Time                 uint64           `yaml:"time"`
}

func loadGenesis(r io.Reader) (*genesis, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var gene genesis
	if err := decoder.Decode(&gene); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	if gene.StakeDenom == "" {
		gene.StakeDenom = wattpeak.DefaultStakeDenom
	}
	return &gene, nil
}

func (g *genesis) config() (*staker.Config, error) {
	rate, err := dec.Parse(g.RewardsPercentage)
	if err != nil {
		return nil, errors.Wrap(err, "rewards percentage")
	}
	fee, err := dec.Parse(g.StakingFeePercentage)
	if err != nil {
		return nil, errors.Wrap(err, "staking fee percentage")
	}
	cfg := &staker.Config{
		Admin:                g.Admin,
		RewardsPercentage:    rate,
		EpochLength:          g.EpochLength,
		StakeDenom:           g.StakeDenom,
		StakingFeePercentage: fee,
		StakingFeeAddress:    g.StakingFeeAddress,
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid genesis")
	}
	return cfg, nil
}
