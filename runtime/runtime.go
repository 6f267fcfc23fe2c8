// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/wattpeak/staker/builtin/staker"
	"github.com/wattpeak/staker/builtin/staker/reverts"
	"github.com/wattpeak/staker/cache"
	"github.com/wattpeak/staker/kv"
	"github.com/wattpeak/staker/log"
	"github.com/wattpeak/staker/logdb"
	"github.com/wattpeak/staker/metrics"
	"github.com/wattpeak/staker/state"
	"github.com/wattpeak/staker/wattpeak"
)

var logger = log.WithContext("pkg", "runtime")

// ledgerBucket separates contract keys from anything else kept in the store.
const ledgerBucket = kv.Bucket("staker/")

// Call is an authenticated call submitted to the contract.
type Call struct {
	Caller wattpeak.Address
	Funds  wattpeak.Coins
	Time   uint64
}

type Options struct {
	Cache   *cache.LRU   // read cache of committed values, optional
	Journal *logdb.LogDB // call journal, optional
}

// Runtime executes calls one at a time. Each call runs in a checkpoint of the
// state overlay; it is committed to the store in one batch if the call
// succeeds and reverted otherwise.
type Runtime struct {
	state   *state.State
	staker  *staker.Staker
	journal *logdb.LogDB
}

// New create a Runtime over db.
func New(db kv.Store, opts Options) *Runtime {
	st := state.New(ledgerBucket.NewStore(db), opts.Cache)
	return &Runtime{
		state:   st,
		staker:  staker.New(nil, st),
		journal: opts.Journal,
	}
}

// Staker gives read access to the committed ledger.
func (rt *Runtime) Staker() *staker.Staker { return rt.staker }

// Instantiate initializes the contract.
func (rt *Runtime) Instantiate(caller wattpeak.Address, cfg *staker.Config, blockTime uint64) (*staker.Response, error) {
	call := &Call{Caller: caller, Time: blockTime}
	return rt.run(staker.ActionInstantiate, call, func(env *staker.Env) (*staker.Response, error) {
		return rt.staker.Instantiate(env, cfg)
	})
}

// Execute runs msg on behalf of call.Caller.
func (rt *Runtime) Execute(call *Call, msg staker.Message) (*staker.Response, error) {
	if msg == nil {
		return nil, errors.New("nil message")
	}
	return rt.run(msg.Action(), call, func(env *staker.Env) (*staker.Response, error) {
		return rt.staker.Execute(env, msg)
	})
}

func (rt *Runtime) run(
	action string,
	call *Call,
	fn func(env *staker.Env) (*staker.Response, error),
) (res *staker.Response, err error) {
	start := time.Now()
	env := &staker.Env{
		Caller: call.Caller,
		Funds:  call.Funds,
		Time:   call.Time,
	}

	checkpoint := rt.state.NewCheckpoint()
	res, err = invoke(fn, env)
	if err == nil {
		if err = rt.state.Commit(); err != nil {
			err = errors.Wrap(err, "commit")
		}
	}

	result := "success"
	switch {
	case err == nil:
		logger.Debug("call executed", "action", action, "caller", call.Caller, "elapsed", time.Since(start))
	case reverts.IsRevertErr(err):
		result = "revert"
		rt.state.RevertTo(checkpoint)
		logger.Info("call reverted", "action", action, "caller", call.Caller, "err", err)
	default:
		result = "error"
		rt.state.RevertTo(checkpoint)
		logger.Error("call failed", "action", action, "caller", call.Caller, "err", err)
	}

	metricCalls().AddWithLabel(1, map[string]string{"action": action, "result": result})
	metricCallDuration().ObserveWithLabels(time.Since(start).Microseconds(), map[string]string{"action": action})
	if err == nil {
		rt.updateGauges(action, res)
	}

	rt.record(action, call, res, err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// invoke calls fn, turning a panic into an error.
func invoke(fn func(env *staker.Env) (*staker.Response, error), env *staker.Env) (res *staker.Response, err error) {
	defer func() {
		if e := recover(); e != nil {
			res = nil
			err = fmt.Errorf("call panicked: %v", e)
		}
	}()
	return fn(env)
}

func (rt *Runtime) updateGauges(action string, res *staker.Response) {
	if metrics.NoOp() {
		return
	}
	if total, err := rt.staker.TotalWattpeakStaked(); err == nil {
		if total.IsUint64() && total.Uint64() <= math.MaxInt64 {
			metricTotalStaked().Set(int64(total.Uint64()))
		} else {
			metricTotalStaked().Set(math.MaxInt64)
		}
	}
	if action != staker.ActionAdvanceEpoch {
		return
	}
	if epoch, err := rt.staker.EpochCount(); err == nil && epoch <= math.MaxInt64 {
		metricEpochCount().Set(int64(epoch))
	}
	if v, ok := res.Attribute("stakers"); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			metricStakers().Observe(n)
		}
	}
}

// record appends the call to the journal. The ledger is already settled at
// this point, so journal failures are only logged.
func (rt *Runtime) record(action string, call *Call, res *staker.Response, callErr error) {
	if rt.journal == nil {
		return
	}
	entry := &logdb.Call{
		Time:    call.Time,
		Caller:  call.Caller,
		Action:  action,
		Success: callErr == nil,
	}
	if callErr != nil {
		entry.Error = callErr.Error()
	} else {
		for _, attr := range res.Attributes {
			entry.Attributes = append(entry.Attributes, logdb.Attribute{Key: attr.Key, Value: attr.Value})
		}
		for _, p := range res.Payments {
			entry.Payments = append(entry.Payments, logdb.Payment{Recipient: p.Recipient, Coin: p.Coin})
		}
	}
	if _, err := rt.journal.Insert(entry); err != nil {
		logger.Warn("failed to journal call", "action", action, "err", err)
	}
}
