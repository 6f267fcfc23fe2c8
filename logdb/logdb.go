// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"

	"github.com/holiman/uint256"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/wattpeak/staker/wattpeak"
)

// LogDB is the journal of executed calls.
type LogDB struct {
	path          string
	db            *sql.DB
	stmtCache     *stmtCache
	driverVersion string
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	// an in-memory database lives per connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(callTableSchema + attributeTableSchema + paymentTableSchema); err != nil {
		return nil, errors.Wrap(err, "create tables")
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path:          path,
		db:            db,
		stmtCache:     newStmtCache(db),
		driverVersion: driverVer,
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() error {
	db.stmtCache.Clear()
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

// DriverVersion returns the version of the linked sqlite library.
func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

// Insert appends a call with its attributes and payments, and returns the
// sequence assigned to it.
func (db *LogDB) Insert(call *Call) (seq uint64, err error) {
	err = db.execInTx(func(tx *sql.Tx) error {
		res, err := tx.Exec("INSERT INTO call(time, caller, action, success, error) VALUES (?, ?, ?, ?, ?);",
			call.Time,
			call.Caller.Bytes(),
			call.Action,
			call.Success,
			call.Error,
		)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		seq = uint64(id)

		for i, attr := range call.Attributes {
			if _, err := tx.Exec("INSERT INTO attribute(seq, attrIndex, key, value) VALUES (?, ?, ?, ?);",
				seq, i, attr.Key, attr.Value,
			); err != nil {
				return err
			}
		}
		for i, p := range call.Payments {
			amount := p.Coin.Amount
			if amount == nil {
				amount = new(uint256.Int)
			}
			b := amount.Bytes32()
			if _, err := tx.Exec("INSERT INTO payment(seq, paymentIndex, recipient, denom, amount) VALUES (?, ?, ?, ?, ?);",
				seq, i, p.Recipient.Bytes(), p.Coin.Denom, b[:],
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "insert call")
	}
	call.Seq = seq
	metricInsertCounter().AddWithLabel(1, map[string]string{"action": call.Action})
	return seq, nil
}

// Filter returns calls matching the filter, or all calls if filter is nil.
func (db *LogDB) Filter(ctx context.Context, filter *CallFilter) ([]*Call, error) {
	if filter == nil {
		filter = &CallFilter{}
	}
	metricsHandleFilter(filter)

	var args []any
	stmt := "SELECT seq, time, caller, action, success, error FROM call WHERE 1"
	if filter.Action != "" {
		args = append(args, filter.Action)
		stmt += " AND action = ? "
	}
	if filter.Caller != nil {
		args = append(args, filter.Caller.Bytes())
		stmt += " AND caller = ? "
	}
	if filter.Success != nil {
		args = append(args, *filter.Success)
		stmt += " AND success = ? "
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}

	calls, err := db.queryCalls(ctx, stmt, args...)
	if err != nil {
		return nil, errors.Wrap(err, "filter calls")
	}
	for _, call := range calls {
		if err := db.loadDetails(ctx, call); err != nil {
			return nil, errors.Wrapf(err, "load call %d", call.Seq)
		}
	}
	return calls, nil
}

func (db *LogDB) queryCalls(ctx context.Context, stmt string, args ...any) ([]*Call, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var calls []*Call
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			call   Call
			caller []byte
		)
		if err := rows.Scan(
			&call.Seq,
			&call.Time,
			&caller,
			&call.Action,
			&call.Success,
			&call.Error,
		); err != nil {
			return nil, err
		}
		call.Caller = wattpeak.BytesToAddress(caller)
		calls = append(calls, &call)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return calls, nil
}

func (db *LogDB) loadDetails(ctx context.Context, call *Call) error {
	attrStmt, err := db.stmtCache.Prepare("SELECT key, value FROM attribute WHERE seq = ? ORDER BY attrIndex ASC")
	if err != nil {
		return err
	}
	rows, err := attrStmt.QueryContext(ctx, call.Seq)
	if err != nil {
		return err
	}
	for rows.Next() {
		var attr Attribute
		if err := rows.Scan(&attr.Key, &attr.Value); err != nil {
			rows.Close()
			return err
		}
		call.Attributes = append(call.Attributes, attr)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	payStmt, err := db.stmtCache.Prepare("SELECT recipient, denom, amount FROM payment WHERE seq = ? ORDER BY paymentIndex ASC")
	if err != nil {
		return err
	}
	rows, err = payStmt.QueryContext(ctx, call.Seq)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			recipient []byte
			denom     string
			amount    []byte
		)
		if err := rows.Scan(&recipient, &denom, &amount); err != nil {
			return err
		}
		call.Payments = append(call.Payments, Payment{
			Recipient: wattpeak.BytesToAddress(recipient),
			Coin:      wattpeak.NewCoin(denom, new(uint256.Int).SetBytes(amount)),
		})
	}
	return rows.Err()
}

func (db *LogDB) execInTx(proc func(*sql.Tx) error) (err error) {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
