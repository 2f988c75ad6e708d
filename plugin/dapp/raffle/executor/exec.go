// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	"github.com/33cn/raffle/types"
)

//Exec_Instantiate 初始化配置
func (r *Raffle) Exec_Instantiate(payload *rty.RaffleInstantiate, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := newRaffleAction(r, tx)
	return action.instantiate(payload)
}

//Exec_Create 创建抽奖
func (r *Raffle) Exec_Create(payload *rty.RaffleCreate, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := newRaffleAction(r, tx)
	return action.create(payload)
}

//Exec_Modify 修改抽奖
func (r *Raffle) Exec_Modify(payload *rty.RaffleModify, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := newRaffleAction(r, tx)
	return action.modify(payload)
}

//Exec_Cancel 取消抽奖
func (r *Raffle) Exec_Cancel(payload *rty.RaffleCancel, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := newRaffleAction(r, tx)
	return action.cancel(payload)
}

//Exec_BuyTicket 买票
func (r *Raffle) Exec_BuyTicket(payload *rty.RaffleBuyTicket, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := newRaffleAction(r, tx)
	return action.buyTicket(payload)
}

//Exec_UpdateRandomness 提交随机数
func (r *Raffle) Exec_UpdateRandomness(payload *rty.RaffleUpdateRandomness, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := newRaffleAction(r, tx)
	return action.updateRandomness(payload)
}

//Exec_Claim 开奖
func (r *Raffle) Exec_Claim(payload *rty.RaffleClaim, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := newRaffleAction(r, tx)
	return action.claim(payload)
}

//Exec_UpdateConfig 修改配置
func (r *Raffle) Exec_UpdateConfig(payload *rty.RaffleUpdateConfig, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := newRaffleAction(r, tx)
	return action.updateConfig(payload)
}

//Exec_ToggleLock 锁定/解锁
func (r *Raffle) Exec_ToggleLock(payload *rty.RaffleToggleLock, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := newRaffleAction(r, tx)
	return action.toggleLock(payload)
}

//Exec_FundRandomness 充值随机数费用池
func (r *Raffle) Exec_FundRandomness(payload *rty.RaffleFundRandomness, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := newRaffleAction(r, tx)
	return action.fundRandomness(payload)
}
