// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

//RaffleX 执行器名
const RaffleX = "raffle"

// action
const (
	RaffleActionInstantiate = 1 + iota
	RaffleActionCreate
	RaffleActionModify
	RaffleActionCancel
	RaffleActionBuyTicket
	RaffleActionUpdateRandomness
	RaffleActionClaim
	RaffleActionUpdateConfig
	RaffleActionToggleLock
	RaffleActionFundRandomness
)

// log
const (
	TyLogRaffleInstantiate       = 1101
	TyLogRaffleCreate            = 1102
	TyLogRaffleModify            = 1103
	TyLogRaffleCancel            = 1104
	TyLogRaffleBuyTicket         = 1105
	TyLogRaffleRandomnessRequest = 1106
	TyLogRaffleRandomness        = 1107
	TyLogRaffleClaim             = 1108
	TyLogRaffleUpdateConfig      = 1109
	TyLogRaffleToggleLock        = 1110
	TyLogRaffleFundRandomness    = 1111
)

// 抽奖状态, 由时间和标志位计算得到, 不保存
const (
	StateCreated   = "created"
	StateStarted   = "started"
	StateClosed    = "closed"
	StateFinished  = "finished"
	StateClaimed   = "claimed"
	StateCancelled = "cancelled"
)

// query
const (
	FuncNameConfig      = "Config"
	FuncNameRaffleInfo  = "RaffleInfo"
	FuncNameAllRaffles  = "AllRaffles"
	FuncNameAllTickets  = "AllTickets"
	FuncNameTicketCount = "TicketCount"
)

// 参数限制
const (
	MinNameLength      = 3
	MaxNameLength      = 50
	MaxCommentLength   = 1000
	DefaultQueryLimit  = 10
	MaxQueryLimit      = 100
	DefaultWinnerCount = 1
)

//IsValidState 查询过滤用
func IsValidState(state string) bool {
	switch state {
	case StateCreated, StateStarted, StateClosed, StateFinished, StateClaimed, StateCancelled:
		return true
	}
	return false
}
