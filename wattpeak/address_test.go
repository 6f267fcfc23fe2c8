// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>
package wattpeak

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0x000000000000000000000000000000000000beef")
	assert.NoError(t, err)
	assert.Equal(t, BytesToAddress([]byte{0xbe, 0xef}), *addr)

	addr, err = ParseAddress("000000000000000000000000000000000000beef")
	assert.NoError(t, err)
	assert.Equal(t, "0x000000000000000000000000000000000000beef", addr.String())

	_, err = ParseAddress("0xbeef")
	assert.EqualError(t, err, "invalid length")

	_, err = ParseAddress("1x000000000000000000000000000000000000beef")
	assert.EqualError(t, err, "invalid prefix")

	_, err = ParseAddress("0x00000000000000000000000000000000000000zz")
	assert.Error(t, err)
}

func TestAddressIsZeroAndCompare(t *testing.T) {
	assert.True(t, Address{}.IsZero())

	a := BytesToAddress([]byte{1})
	b := BytesToAddress([]byte{2})
	assert.False(t, a.IsZero())
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
}

func TestAddressYAML(t *testing.T) {
	var out struct {
		Admin Address `yaml:"admin"`
	}
	err := yaml.Unmarshal([]byte("admin: 0x000000000000000000000000000000000000beef\n"), &out)
	assert.NoError(t, err)
	assert.Equal(t, BytesToAddress([]byte{0xbe, 0xef}), out.Admin)

	err = yaml.Unmarshal([]byte("admin: nope\n"), &out)
	assert.Error(t, err)
}
