// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// 执行结果
const (
	ExecErr  = 0
	ExecPack = 1
	ExecOk   = 2
)

// MaxCoin 单个账户单个币种的最大余额
const MaxCoin int64 = 1e17

// BankX 内置 bank 执行器
const BankX = "bank"

// bank action
const (
	BankActionMint = 1 + iota
	BankActionSend
)

// bank log
const (
	TyLogMint     = 1
	TyLogTransfer = 2
)

// LocalPrefix 本地数据库 key 前缀
const LocalPrefix = "LODB-"

// StatePrefix 状态数据库 key 前缀
const StatePrefix = "mavl-"

// list direction
const (
	ListDESC = int32(0)
	ListASC  = int32(1)
)

// CheckAmount 检查金额范围
func CheckAmount(amount int64) bool {
	if amount <= 0 || amount >= MaxCoin {
		return false
	}
	return true
}
