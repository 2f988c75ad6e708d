// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/raffle/types"
)

//DrandX 执行器名
const DrandX = "drand"

// drand 网络使用的签名方案
const (
	SchemeChained   = "pedersen-bls-chained"
	SchemeUnchained = "pedersen-bls-unchained"
	SchemeQuicknet  = "bls-unchained-g1-rfc9380"
)

// action
const (
	DrandActionInstantiate = 1 + iota
	DrandActionVerify
	DrandActionWithdraw
)

// log
const (
	TyLogDrandInstantiate = 1001
	TyLogDrandVerify      = 1002
	TyLogDrandWithdraw    = 1003
)

// VerifyResult.Status
const (
	VerifyStatusVerified = 1
	VerifyStatusRejected = 2
)

// query
const (
	FuncNameScheme = "Scheme"
	FuncNameVerify = "Verify"
)

//IsValidScheme 是否支持的方案
func IsValidScheme(scheme string) bool {
	switch scheme {
	case SchemeChained, SchemeUnchained, SchemeQuicknet:
		return true
	}
	return false
}

//DrandAction action
type DrandAction struct {
	Ty          int32
	Instantiate *DrandInstantiate
	Verify      *DrandVerify
	Withdraw    *DrandWithdraw
}

//DrandInstantiate 设置签名方案, 发送者成为管理员
type DrandInstantiate struct {
	Scheme string
}

//DrandVerify 验证一个 drand 轮次的签名, RaffleID 和 Owner 原样带回
type DrandVerify struct {
	PublicKey         []byte
	Round             uint64
	PreviousSignature []byte
	Signature         []byte
	RaffleID          uint64
	Owner             string
}

//DrandWithdraw 管理员取回累积的验证费
type DrandWithdraw struct {
	To    string
	Coins types.Coins
}

//VerifyResult 验证结果, 作为回执 Data 回调给调用合约
type VerifyResult struct {
	Status     int32
	Round      uint64
	Randomness []byte
	RaffleID   uint64
	Owner      string
}

//Verified 签名正确
func (r *VerifyResult) Verified() bool {
	return r != nil && r.Status == VerifyStatusVerified
}

//DrandState 合约状态
type DrandState struct {
	Scheme string
	Admin  string
}

//ReceiptDrandVerify log
type ReceiptDrandVerify struct {
	Round    uint64
	RaffleID uint64
	Owner    string
	Status   int32
}

//ReceiptDrandWithdraw log
type ReceiptDrandWithdraw struct {
	To    string
	Coins types.Coins
}

//ReplyScheme query
type ReplyScheme struct {
	Scheme string
	Admin  string
}
