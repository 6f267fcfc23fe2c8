// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/holiman/uint256"

	"github.com/wattpeak/staker/wattpeak"
)

// Env is the context of one call, supplied by the host.
type Env struct {
	Caller wattpeak.Address // already authenticated
	Funds  wattpeak.Coins   // attached to the call
	Time   uint64           // unix seconds
}

// Payment is a transfer the host must perform on behalf of the contract.
type Payment struct {
	Recipient wattpeak.Address
	Coin      wattpeak.Coin
}

type Attribute struct {
	Key   string
	Value string
}

// Response is the outcome of a successful call.
type Response struct {
	Payments   []Payment
	Attributes []Attribute
}

func newResponse(action string, from wattpeak.Address) *Response {
	return &Response{
		Attributes: []Attribute{
			{Key: "action", Value: action},
			{Key: "from", Value: from.String()},
		},
	}
}

func (r *Response) addAttribute(key, value string) *Response {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: value})
	return r
}

// addPayment appends a payment unless the amount is zero.
func (r *Response) addPayment(to wattpeak.Address, denom string, amount *uint256.Int) *Response {
	if amount == nil || amount.IsZero() {
		return r
	}
	r.Payments = append(r.Payments, Payment{
		Recipient: to,
		Coin:      wattpeak.NewCoin(denom, amount),
	})
	return r
}

// Attribute returns the value of the first attribute with the given key.
func (r *Response) Attribute(key string) (string, bool) {
	for _, attr := range r.Attributes {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}
