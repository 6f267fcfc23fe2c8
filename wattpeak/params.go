// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package wattpeak

// SecondsPerYear is the length of a tropical year in seconds, used to turn an
// epoch length into a fraction of the yearly rewards rate.
const SecondsPerYear uint64 = 31_556_926

// DefaultStakeDenom is the denomination minted by the wattpeak minter.
const DefaultStakeDenom = "uwattpeak"
