// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/wattpeak/staker/builtin/staker"
	"github.com/wattpeak/staker/builtin/staker/stakers"
	"github.com/wattpeak/staker/logdb"
	"github.com/wattpeak/staker/wattpeak"
)

type paymentView struct {
	To   string `yaml:"to"`
	Coin string `yaml:"coin"`
}

type responseView struct {
	Payments   []paymentView     `yaml:"payments,omitempty"`
	Attributes map[string]string `yaml:"attributes"`
}

func newResponseView(res *staker.Response) *responseView {
	view := &responseView{Attributes: make(map[string]string, len(res.Attributes))}
	for _, p := range res.Payments {
		view.Payments = append(view.Payments, paymentView{To: p.Recipient.String(), Coin: p.Coin.String()})
	}
	for _, attr := range res.Attributes {
		view.Attributes[attr.Key] = attr.Value
	}
	return view
}

type stakerView struct {
	Address          string `yaml:"address"`
	WattpeakStaked   string `yaml:"wattpeakStaked"`
	InterestWattpeak string `yaml:"interestWattpeak"`
	ClaimableRewards string `yaml:"claimableRewards"`
	StakeStartTime   uint64 `yaml:"stakeStartTime"`
}

func newStakerView(addr wattpeak.Address, st *stakers.Staker) *stakerView {
	return &stakerView{
		Address:          addr.String(),
		WattpeakStaked:   st.WattpeakStaked.Dec(),
		InterestWattpeak: st.InterestWattpeak.String(),
		ClaimableRewards: st.ClaimableRewards.String(),
		StakeStartTime:   st.StakeStartTime,
	}
}

func initAction(ctx *cli.Context, inst *instance) error {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		return errors.Errorf("-%s is required", genesisFlag.Name)
	}
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open genesis file")
	}
	defer file.Close()

	gene, err := loadGenesis(file)
	if err != nil {
		return err
	}
	cfg, err := gene.config()
	if err != nil {
		return err
	}
	res, err := inst.rt.Instantiate(cfg.Admin, cfg, gene.Time)
	if err != nil {
		return err
	}
	logger.Info("ledger instantiated", "admin", cfg.Admin, "denom", cfg.StakeDenom)
	return printYAML(os.Stdout, newResponseView(res))
}

// callFromFlags builds the call described by the command line.
func callFromFlags(ctx *cli.Context, action string) (*callEntry, error) {
	from, err := parseFrom(ctx)
	if err != nil {
		return nil, err
	}
	entry := &callEntry{
		From:   from,
		Action: action,
		Funds:  ctx.String(fundsFlag.Name),
		Amount: ctx.String(amountFlag.Name),
		Time:   ctx.Uint64(timeFlag.Name),
	}
	if entry.Time == 0 {
		entry.Time = uint64(time.Now().Unix())
	}
	if action != "update-config" {
		return entry, nil
	}

	update := &configUpdate{}
	for _, addrFlag := range []struct {
		name string
		dst  **wattpeak.Address
	}{
		{adminFlag.Name, &update.Admin},
		{stakingFeeAddressFlag.Name, &update.StakingFeeAddress},
	} {
		if ctx.IsSet(addrFlag.name) {
			addr, err := wattpeak.ParseAddress(ctx.String(addrFlag.name))
			if err != nil {
				return nil, errors.Wrapf(err, "-%s", addrFlag.name)
			}
			*addrFlag.dst = addr
		}
	}
	if ctx.IsSet(rewardsPercentageFlag.Name) {
		v := ctx.String(rewardsPercentageFlag.Name)
		update.RewardsPercentage = &v
	}
	if ctx.IsSet(epochLengthFlag.Name) {
		v := ctx.Uint64(epochLengthFlag.Name)
		update.EpochLength = &v
	}
	if ctx.IsSet(stakeDenomFlag.Name) {
		v := ctx.String(stakeDenomFlag.Name)
		update.StakeDenom = &v
	}
	if ctx.IsSet(stakingFeePercentageFlag.Name) {
		v := ctx.String(stakingFeePercentageFlag.Name)
		update.StakingFeePercentage = &v
	}
	entry.Config = update
	return entry, nil
}

func executeAction(action string) func(ctx *cli.Context, inst *instance) error {
	return func(ctx *cli.Context, inst *instance) error {
		entry, err := callFromFlags(ctx, action)
		if err != nil {
			return err
		}
		res, err := entry.execute(inst.rt)
		if err != nil {
			return err
		}
		return printYAML(os.Stdout, newResponseView(res))
	}
}

func replayAction(ctx *cli.Context, inst *instance) error {
	path := ctx.String(replayFileFlag.Name)
	if path == "" {
		return errors.Errorf("-%s is required", replayFileFlag.Name)
	}
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open replay file")
	}
	defer file.Close()

	calls, err := loadReplayFile(file)
	if err != nil {
		return err
	}
	results, err := replay(inst.rt, calls)
	if printErr := printYAML(os.Stdout, results); printErr != nil && err == nil {
		err = printErr
	}
	return err
}

func configAction(_ *cli.Context, inst *instance) error {
	s := inst.rt.Staker()
	cfg, err := s.Config()
	if err != nil {
		return err
	}
	pct, err := s.PercentageOfYear()
	if err != nil {
		return err
	}
	return printYAML(os.Stdout, map[string]any{
		"admin":                cfg.Admin.String(),
		"rewardsPercentage":    cfg.RewardsPercentage.String(),
		"epochLength":          cfg.EpochLength,
		"percentageOfYear":     pct.String(),
		"stakeDenom":           cfg.StakeDenom,
		"stakingFeePercentage": cfg.StakingFeePercentage.String(),
		"stakingFeeAddress":    cfg.StakingFeeAddress.String(),
	})
}

func stakerAction(ctx *cli.Context, inst *instance) error {
	if ctx.NArg() != 1 {
		return errors.New("expected one ADDRESS argument")
	}
	addr, err := wattpeak.ParseAddress(ctx.Args().First())
	if err != nil {
		return errors.Wrap(err, "address")
	}
	st, err := inst.rt.Staker().Staker(*addr)
	if err != nil {
		return err
	}
	return printYAML(os.Stdout, newStakerView(*addr, st))
}

func stakersAction(_ *cli.Context, inst *instance) error {
	entries, err := inst.rt.Staker().Stakers()
	if err != nil {
		return err
	}
	views := make([]*stakerView, 0, len(entries))
	for _, e := range entries {
		views = append(views, newStakerView(e.Address, e.Staker))
	}
	return printYAML(os.Stdout, views)
}

func totalsAction(_ *cli.Context, inst *instance) error {
	s := inst.rt.Staker()
	staked, err := s.TotalWattpeakStaked()
	if err != nil {
		return err
	}
	interest, err := s.TotalInterestWattpeak()
	if err != nil {
		return err
	}
	epoch, err := s.EpochCount()
	if err != nil {
		return err
	}
	return printYAML(os.Stdout, map[string]any{
		"totalWattpeakStaked":   staked.Dec(),
		"totalInterestWattpeak": interest.String(),
		"epochCount":            epoch,
	})
}

type callView struct {
	Seq        uint64            `yaml:"seq"`
	Time       uint64            `yaml:"time"`
	Caller     string            `yaml:"caller"`
	Action     string            `yaml:"action"`
	Success    bool              `yaml:"success"`
	Error      string            `yaml:"error,omitempty"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
	Payments   []paymentView     `yaml:"payments,omitempty"`
}

func callsAction(ctx *cli.Context, inst *instance) error {
	filter := &logdb.CallFilter{
		Action:  ctx.String(actionFlag.Name),
		Options: &logdb.Options{Limit: ctx.Uint64(limitFlag.Name)},
	}
	if ctx.Bool(descFlag.Name) {
		filter.Order = logdb.DESC
	}
	if ctx.IsSet(fromFlag.Name) {
		from, err := parseFrom(ctx)
		if err != nil {
			return err
		}
		filter.Caller = &from
	}

	calls, err := inst.journal.Filter(context.Background(), filter)
	if err != nil {
		return err
	}
	views := make([]*callView, 0, len(calls))
	for _, c := range calls {
		view := &callView{
			Seq:     c.Seq,
			Time:    c.Time,
			Caller:  c.Caller.String(),
			Action:  c.Action,
			Success: c.Success,
			Error:   c.Error,
		}
		if len(c.Attributes) > 0 {
			view.Attributes = make(map[string]string, len(c.Attributes))
			for _, attr := range c.Attributes {
				view.Attributes[attr.Key] = attr.Value
			}
		}
		for _, p := range c.Payments {
			view.Payments = append(view.Payments, paymentView{To: p.Recipient.String(), Coin: p.Coin.String()})
		}
		views = append(views, view)
	}
	return printYAML(os.Stdout, views)
}
