// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dapp

import (
	"github.com/33cn/raffle/types"
)

//NewSubMsg 调用其他执行器的子消息, funds 从当前合约地址转出
func NewSubMsg(execer string, payload types.Message, funds types.Coins) *types.SubMsg {
	return &types.SubMsg{
		Execer:  execer,
		Funds:   funds,
		Payload: types.Encode(payload),
	}
}

//NewReplyMsg 执行成功后需要回调的子消息, id 会原样带回
func NewReplyMsg(id uint64, execer string, payload types.Message, funds types.Coins) *types.SubMsg {
	msg := NewSubMsg(execer, payload, funds)
	msg.ID = id
	msg.ReplyOnSuccess = true
	return msg
}

//BankSendMsg 从合约地址转账, coins 为空时返回 nil
func BankSendMsg(to string, coins types.Coins) *types.SubMsg {
	coins = types.NewCoins(coins...)
	if len(coins) == 0 {
		return nil
	}
	action := &types.BankAction{
		Ty:   types.BankActionSend,
		Send: &types.BankSend{To: to, Coins: coins},
	}
	return NewSubMsg(types.BankX, action, nil)
}
