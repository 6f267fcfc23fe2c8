// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/wattpeak/staker/log"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the ledger and call journal databases",
	}
	verbosityFlag = cli.Uint64Flag{
		Name:  "verbosity",
		Value: log.LegacyLevelInfo,
		Usage: "log verbosity (0-9)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "collect metrics and dump them to stderr on exit",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Value: 4096,
		Usage: "number of ledger entries kept in the read cache",
	}

	// command flags
	fromFlag = cli.StringFlag{
		Name:  "from",
		Usage: "address of the caller",
	}
	fundsFlag = cli.StringFlag{
		Name:  "funds",
		Usage: "coin attached to the call, e.g. 100uwattpeak",
	}
	amountFlag = cli.StringFlag{
		Name:  "amount",
		Usage: "amount to unstake",
	}
	timeFlag = cli.Uint64Flag{
		Name:  "time",
		Usage: "call time in unix seconds (defaults to now)",
	}
	genesisFlag = cli.StringFlag{
		Name:  "genesis",
		Usage: "path to the genesis YAML file",
	}
	replayFileFlag = cli.StringFlag{
		Name:  "file",
		Usage: "path to a YAML file of calls to execute in order",
	}
	actionFlag = cli.StringFlag{
		Name:  "action",
		Usage: "only list calls of this action",
	}
	limitFlag = cli.Uint64Flag{
		Name:  "limit",
		Value: 100,
		Usage: "maximum number of calls listed",
	}
	descFlag = cli.BoolFlag{
		Name:  "desc",
		Usage: "list the latest calls first",
	}

	// update-config flags
	adminFlag = cli.StringFlag{
		Name:  "admin",
		Usage: "new admin address",
	}
	rewardsPercentageFlag = cli.StringFlag{
		Name:  "rewards-percentage",
		Usage: "new yearly rewards rate, e.g. 0.1",
	}
	epochLengthFlag = cli.Uint64Flag{
		Name:  "epoch-length",
		Usage: "new epoch length in seconds",
	}
	stakeDenomFlag = cli.StringFlag{
		Name:  "stake-denom",
		Usage: "new stake denomination",
	}
	stakingFeePercentageFlag = cli.StringFlag{
		Name:  "staking-fee-percentage",
		Usage: "new fee rate applied to claims, e.g. 0.05",
	}
	stakingFeeAddressFlag = cli.StringFlag{
		Name:  "staking-fee-address",
		Usage: "new fee recipient address",
	}
)
