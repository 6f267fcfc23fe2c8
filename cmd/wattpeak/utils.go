// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"io"
	"math"
	"os"
	"os/user"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/wattpeak/staker/cache"
	"github.com/wattpeak/staker/log"
	"github.com/wattpeak/staker/logdb"
	"github.com/wattpeak/staker/lvldb"
	"github.com/wattpeak/staker/metrics"
	"github.com/wattpeak/staker/runtime"
	"github.com/wattpeak/staker/wattpeak"
)

var logger = log.WithContext("pkg", "cmd")

func readIntFromUInt64Flag(val uint64) (int, error) {
	if val > math.MaxInt {
		return 0, errors.Errorf("invalid value %d", val)
	}
	return int(val), nil
}

func initLogger(lvl int, jsonLogs bool) {
	useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
	log.SetHandler(log.NewHandler(os.Stderr, log.FromLegacyLevel(lvl), jsonLogs, useColor && !jsonLogs))
}

func beforeAction(ctx *cli.Context) error {
	lvl, err := readIntFromUInt64Flag(ctx.GlobalUint64(verbosityFlag.Name))
	if err != nil {
		return errors.Wrap(err, "parse verbosity flag")
	}
	initLogger(lvl, ctx.GlobalBool(jsonLogsFlag.Name))

	if ctx.GlobalBool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}
	return nil
}

func afterAction(ctx *cli.Context) error {
	if ctx.GlobalBool(enableMetricsFlag.Name) {
		return metrics.WriteText(os.Stderr)
	}
	return nil
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		return filepath.Join(home, ".wattpeak")
	}
	return ""
}

func makeDataDir(ctx *cli.Context) (string, error) {
	dataDir := ctx.GlobalString(dataDirFlag.Name)
	if dataDir == "" {
		return "", errors.Errorf("unable to infer default data dir, use -%s to specify one", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return "", errors.Wrapf(err, "create data dir at '%v'", dataDir)
	}
	return dataDir, nil
}

// instance bundles the databases backing a runtime.
type instance struct {
	db      *lvldb.LevelDB
	journal *logdb.LogDB
	rt      *runtime.Runtime
}

func openInstance(ctx *cli.Context) (*instance, error) {
	dataDir, err := makeDataDir(ctx)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(dataDir, "ledger.db")
	db, err := lvldb.New(dir, lvldb.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "open ledger database at '%v'", dir)
	}

	path := filepath.Join(dataDir, "calls.db")
	journal, err := logdb.New(path)
	if err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "open call journal at '%v'", path)
	}

	var lru *cache.LRU
	if size := ctx.GlobalInt(cacheFlag.Name); size > 0 {
		if lru, err = cache.NewLRU(size); err != nil {
			db.Close()
			journal.Close()
			return nil, errors.Wrap(err, "create cache")
		}
	}

	logger.Debug("instance opened", "dir", dataDir, "sqlite", journal.DriverVersion())
	return &instance{
		db:      db,
		journal: journal,
		rt:      runtime.New(db, runtime.Options{Cache: lru, Journal: journal}),
	}, nil
}

func (i *instance) Close() {
	if err := i.journal.Close(); err != nil {
		logger.Warn("failed to close call journal", "err", err)
	}
	if err := i.db.Close(); err != nil {
		logger.Warn("failed to close ledger database", "err", err)
	}
}

func withRuntime(fn func(ctx *cli.Context, inst *instance) error) func(ctx *cli.Context) error {
	return func(ctx *cli.Context) error {
		inst, err := openInstance(ctx)
		if err != nil {
			return err
		}
		defer inst.Close()
		return fn(ctx, inst)
	}
}

func parseFrom(ctx *cli.Context) (wattpeak.Address, error) {
	s := ctx.String(fromFlag.Name)
	if s == "" {
		return wattpeak.Address{}, errors.Errorf("-%s is required", fromFlag.Name)
	}
	addr, err := wattpeak.ParseAddress(s)
	if err != nil {
		return wattpeak.Address{}, errors.Wrapf(err, "-%s", fromFlag.Name)
	}
	return *addr, nil
}

func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
