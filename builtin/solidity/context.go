// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/wattpeak/staker/state"
)

// Context scopes typed storage of one contract instance to a key prefix of
// the state.
type Context struct {
	prefix []byte
	state  *state.State
}

func NewContext(prefix []byte, state *state.State) *Context {
	return &Context{
		prefix: prefix,
		state:  state,
	}
}

func (c *Context) State() *state.State {
	return c.state
}

// key builds prefix || parts...
func (c *Context) key(parts ...[]byte) []byte {
	n := len(c.prefix)
	for _, p := range parts {
		n += len(p)
	}
	k := make([]byte, 0, n)
	k = append(k, c.prefix...)
	for _, p := range parts {
		k = append(k, p...)
	}
	return k
}
