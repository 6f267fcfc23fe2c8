// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import "github.com/wattpeak/staker/wattpeak"

// Call is an executed call that can be stored in db.
type Call struct {
	Seq        uint64 // assigned on insert
	Time       uint64
	Caller     wattpeak.Address
	Action     string
	Success    bool
	Error      string
	Attributes []Attribute
	Payments   []Payment
}

// Attribute is a key/value pair reported by a call.
type Attribute struct {
	Key   string
	Value string
}

// Payment is a transfer intent emitted by a call.
type Payment struct {
	Recipient wattpeak.Address
	Coin      wattpeak.Coin
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

type Options struct {
	Offset uint64
	Limit  uint64
}

// CallFilter selects calls. Zero fields match everything.
type CallFilter struct {
	Action  string
	Caller  *wattpeak.Address
	Success *bool
	Order   Order // default asc
	Options *Options
}
