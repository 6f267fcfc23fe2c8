// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// Raw is a single RLP encoded value stored at a fixed slot.
type Raw[T any] struct {
	context *Context
	slot    []byte
}

func NewRaw[T any](context *Context, slot []byte) *Raw[T] {
	return &Raw[T]{context: context, slot: slot}
}

// Get returns the stored value, or the zero value if the slot is empty.
func (r *Raw[T]) Get() (value T, err error) {
	raw, err := r.context.state.Get(r.context.key(r.slot))
	if err != nil {
		return value, err
	}
	if len(raw) == 0 {
		return value, nil
	}
	if err := rlp.DecodeBytes(raw, &value); err != nil {
		return value, errors.Wrapf(err, "decode slot %q", r.slot)
	}
	return value, nil
}

// Exists returns whether the slot holds a value.
func (r *Raw[T]) Exists() (bool, error) {
	return r.context.state.Has(r.context.key(r.slot))
}

func (r *Raw[T]) Set(value T) error {
	val, err := rlp.EncodeToBytes(value)
	if err != nil {
		return errors.Wrapf(err, "encode slot %q", r.slot)
	}
	r.context.state.Put(r.context.key(r.slot), val)
	return nil
}
