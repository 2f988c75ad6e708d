// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "errors"

// drand 错误
var (
	ErrUnknownScheme       = errors.New("ErrUnknownScheme")
	ErrDrandInstantiated   = errors.New("ErrDrandInstantiated")
	ErrDrandNotInitialized = errors.New("ErrDrandNotInitialized")
	ErrInvalidPublicKey    = errors.New("ErrInvalidPublicKey")
	ErrInvalidRound        = errors.New("ErrInvalidRound")
	ErrDrandInvalidParam   = errors.New("ErrDrandInvalidParam")
	ErrDrandUnauthorized   = errors.New("ErrDrandUnauthorized")
)
