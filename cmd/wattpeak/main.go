// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// wattpeak operates a local wattpeak staking ledger.
package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version: fullVersion(),
		Name:    "Wattpeak",
		Usage:   "Wattpeak staking ledger",
		Flags: []cli.Flag{
			dataDirFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			cacheFlag,
		},
		Before: beforeAction,
		After:  afterAction,
		Commands: []cli.Command{
			{
				Name:   "init",
				Usage:  "instantiate the ledger from a genesis file",
				Flags:  []cli.Flag{genesisFlag},
				Action: withRuntime(initAction),
			},
			{
				Name:   "stake",
				Usage:  "stake the attached funds",
				Flags:  []cli.Flag{fromFlag, fundsFlag, timeFlag},
				Action: withRuntime(executeAction("stake")),
			},
			{
				Name:   "unstake",
				Usage:  "release part of a stake",
				Flags:  []cli.Flag{fromFlag, amountFlag, timeFlag},
				Action: withRuntime(executeAction("unstake")),
			},
			{
				Name:   "advance-epoch",
				Usage:  "accrue one epoch of interest (admin)",
				Flags:  []cli.Flag{fromFlag, timeFlag},
				Action: withRuntime(executeAction("advance-epoch")),
			},
			{
				Name:   "deposit-rewards",
				Usage:  "distribute the attached funds over accrued interest (admin)",
				Flags:  []cli.Flag{fromFlag, fundsFlag, timeFlag},
				Action: withRuntime(executeAction("deposit-rewards")),
			},
			{
				Name:   "claim",
				Usage:  "claim rewards",
				Flags:  []cli.Flag{fromFlag, timeFlag},
				Action: withRuntime(executeAction("claim")),
			},
			{
				Name:  "update-config",
				Usage: "change protocol parameters (admin)",
				Flags: []cli.Flag{
					fromFlag,
					timeFlag,
					adminFlag,
					rewardsPercentageFlag,
					epochLengthFlag,
					stakeDenomFlag,
					stakingFeePercentageFlag,
					stakingFeeAddressFlag,
				},
				Action: withRuntime(executeAction("update-config")),
			},
			{
				Name:   "replay",
				Usage:  "execute the calls listed in a YAML file",
				Flags:  []cli.Flag{replayFileFlag},
				Action: withRuntime(replayAction),
			},
			{
				Name:   "config",
				Usage:  "show the current config",
				Action: withRuntime(configAction),
			},
			{
				Name:      "staker",
				Usage:     "show a staker",
				ArgsUsage: "ADDRESS",
				Action:    withRuntime(stakerAction),
			},
			{
				Name:   "stakers",
				Usage:  "list all stakers",
				Action: withRuntime(stakersAction),
			},
			{
				Name:   "totals",
				Usage:  "show ledger totals",
				Action: withRuntime(totalsAction),
			},
			{
				Name:   "calls",
				Usage:  "list journaled calls",
				Flags:  []cli.Flag{fromFlag, actionFlag, limitFlag, descFlag},
				Action: withRuntime(callsAction),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
