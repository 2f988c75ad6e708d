// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "errors"

// 通用错误
var (
	ErrNotFound                = errors.New("ErrNotFound")
	ErrDecode                  = errors.New("ErrDecode")
	ErrAmount                  = errors.New("ErrAmount")
	ErrNoBalance               = errors.New("ErrNoBalance")
	ErrSendSameToRecv          = errors.New("ErrSendSameToRecv")
	ErrInvalidAddress          = errors.New("ErrInvalidAddress")
	ErrInvalidParam            = errors.New("ErrInvalidParam")
	ErrActionNotSupport        = errors.New("ErrActionNotSupport")
	ErrQueryNotSupport         = errors.New("ErrQueryNotSupport")
	ErrExecNameNotAllow        = errors.New("ErrExecNameNotAllow")
	ErrExecNotFound            = errors.New("ErrExecNotFound")
	ErrDenom                   = errors.New("ErrDenom")
	ErrDuplicateDenom          = errors.New("ErrDuplicateDenom")
	ErrNoPrivilege             = errors.New("ErrNoPrivilege")
	ErrEmptyTx                 = errors.New("ErrEmptyTx")
	ErrReplyNotSupport         = errors.New("ErrReplyNotSupport")
	ErrSubMsgDepth             = errors.New("ErrSubMsgDepth")
	ErrConfigNotFound          = errors.New("ErrConfigNotFound")
	ErrStoreDriverNotSupported = errors.New("ErrStoreDriverNotSupported")
	ErrLocalPrefix             = errors.New("ErrLocalPrefix")
	ErrNotAllowKey             = errors.New("ErrNotAllowKey")
	ErrTypeAssert              = errors.New("ErrTypeAssert")
)
