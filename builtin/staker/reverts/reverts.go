// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
)

// Kind classifies why a call was rejected.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnauthorized
	KindNotFound
	KindNothingToClaim
	KindNothingToDistribute
	KindOverflow
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not found"
	case KindNothingToClaim:
		return "nothing to claim"
	case KindNothingToDistribute:
		return "nothing to distribute"
	case KindOverflow:
		return "overflow"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

type ErrRevert struct {
	kind    Kind
	message string
}

// New creates a revert of KindInvalid.
func New(message string) *ErrRevert {
	return &ErrRevert{
		kind:    KindInvalid,
		message: message,
	}
}

func Newf(kind Kind, format string, args ...any) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		message: fmt.Sprintf(format, args...),
	}
}

func Unauthorized() *ErrRevert {
	return &ErrRevert{kind: KindUnauthorized, message: "unauthorized"}
}

func NotFound(what string) *ErrRevert {
	return &ErrRevert{kind: KindNotFound, message: what + " not found"}
}

func Overflow(op string) *ErrRevert {
	return &ErrRevert{kind: KindOverflow, message: "arithmetic overflow in " + op}
}

func (e *ErrRevert) Error() string {
	return e.message
}

func (e *ErrRevert) Kind() Kind {
	return e.kind
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// Is reports whether err is a revert of the given kind.
func Is(err error, kind Kind) bool {
	var ve *ErrRevert
	return errors.As(err, &ve) && ve.kind == kind
}
