// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "errors"

var (
	// ErrCollectionExists 集合已经存在
	ErrCollectionExists = errors.New("ErrCollectionExists")
	// ErrCollectionNotFound 集合不存在
	ErrCollectionNotFound = errors.New("ErrCollectionNotFound")
	// ErrTokenExists token 已经存在
	ErrTokenExists = errors.New("ErrTokenExists")
	// ErrTokenNotFound token 不存在
	ErrTokenNotFound = errors.New("ErrTokenNotFound")
	// ErrNftUnauthorized 没有权限
	ErrNftUnauthorized = errors.New("ErrNftUnauthorized")
	// ErrNftInvalidParam 参数错误
	ErrNftInvalidParam = errors.New("ErrNftInvalidParam")
)
