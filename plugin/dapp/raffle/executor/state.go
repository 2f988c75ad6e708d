// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
)

//MaxTickets 一次抽奖的票数上限, 抽奖参数优先, 否则使用合约配置
func MaxTickets(cfg *rty.Config, raffle *rty.RaffleInfo) uint32 {
	if raffle.RaffleOptions != nil && raffle.RaffleOptions.MaxParticipantNumber > 0 {
		return raffle.RaffleOptions.MaxParticipantNumber
	}
	return cfg.MaxParticipantNumber
}

//RaffleState 状态由标志位和区块时间计算, 不单独保存
//
//	cancelled > claimed > created(now < start) > started(售票中且没有卖完)
//	> closed(随机数更新窗口未结束或者还没有随机数) > finished
func RaffleState(cfg *rty.Config, raffle *rty.RaffleInfo, now int64) string {
	if raffle.IsCancelled {
		return rty.StateCancelled
	}
	if raffle.IsClaimed {
		return rty.StateClaimed
	}
	opts := raffle.RaffleOptions
	if now < opts.RaffleStartTimestamp {
		return rty.StateCreated
	}
	max := MaxTickets(cfg, raffle)
	if now < raffle.EndTimestamp() && (max == 0 || raffle.NumberOfTickets < max) {
		return rty.StateStarted
	}
	if now < raffle.TimeoutTimestamp() || !raffle.HasRandomness() {
		return rty.StateClosed
	}
	return rty.StateFinished
}
