// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction for built-in contracts, similar to the mapping in Solidity.
// Unlike Solidity, keys are stored unhashed under the mapping's slot, so a mapping
// can be ranged in ascending key order.
type Mapping[K Key, V any] struct {
	context *Context
	prefix  []byte
}

func NewMapping[K Key, V any](context *Context, slot []byte) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, prefix: context.key(slot, []byte{'/'})}
}

func (m *Mapping[K, V]) position(key K) []byte {
	k := make([]byte, 0, len(m.prefix)+len(key.Bytes()))
	return append(append(k, m.prefix...), key.Bytes()...)
}

// Get returns the value of key. The second return value reports whether the key was found.
func (m *Mapping[K, V]) Get(key K) (value V, found bool, err error) {
	raw, err := m.context.state.Get(m.position(key))
	if err != nil {
		return value, false, err
	}
	if len(raw) == 0 {
		return value, false, nil
	}
	if err := rlp.DecodeBytes(raw, &value); err != nil {
		return value, false, errors.Wrapf(err, "decode %x", key.Bytes())
	}
	return value, true, nil
}

func (m *Mapping[K, V]) Set(key K, value V) error {
	val, err := rlp.EncodeToBytes(value)
	if err != nil {
		return errors.Wrapf(err, "encode %x", key.Bytes())
	}
	m.context.state.Put(m.position(key), val)
	return nil
}

func (m *Mapping[K, V]) Delete(key K) {
	m.context.state.Delete(m.position(key))
}

// Range visits all entries in ascending key order.
// The key passed to fn is the raw key bytes.
func (m *Mapping[K, V]) Range(fn func(key []byte, value V) error) error {
	return m.context.state.Iterate(m.prefix, func(k, raw []byte) error {
		var value V
		if err := rlp.DecodeBytes(raw, &value); err != nil {
			return errors.Wrapf(err, "decode %x", k[len(m.prefix):])
		}
		return fn(k[len(m.prefix):], value)
	})
}
