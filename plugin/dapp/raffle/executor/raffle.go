// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

/*
raffle 执行器实现 NFT 和原生币的抽奖

生命周期(由区块时间计算):
created -> started(售票) -> closed(等待随机数) -> finished -> claimed
created/started 且没有卖出票时可以 cancelled

1）创建抽奖, 奖品转入合约托管, 创建费转给手续费地址；
2）买票, 票价乘以数量的原生币转入合约；
3）提交 drand 随机数, 由验证合约验证签名后回调；
4）开奖, 根据随机数选出中奖票号, 奖品转给中奖者, 售票收入扣除手续费后转给创建者。
*/

import (
	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	drivers "github.com/33cn/raffle/system/dapp"
	"github.com/33cn/raffle/types"
	log "github.com/inconshreveable/log15"
	"github.com/rcrowley/go-metrics"
)

var rlog = log.New("module", "execs.raffle")

var (
	createdCounter    = metrics.NewRegisteredCounter("raffle.created", nil)
	ticketCounter     = metrics.NewRegisteredCounter("raffle.tickets", nil)
	claimedCounter    = metrics.NewRegisteredCounter("raffle.claimed", nil)
	cancelledCounter  = metrics.NewRegisteredCounter("raffle.cancelled", nil)
	randomnessCounter = metrics.NewRegisteredCounter("raffle.randomness", nil)
	rejectedCounter   = metrics.NewRegisteredCounter("raffle.randomness.rejected", nil)
)

var driverName = rty.RaffleX

//Init 注册执行器
func Init(name string) {
	if name != driverName {
		panic("raffle dapp can't be rename")
	}
	drivers.Register(name, newRaffle)
}

//GetName 执行器名
func GetName() string {
	return newRaffle().GetName()
}

//GetExecAddress 合约地址, 托管的奖品和售票收入都在这里
func GetExecAddress() string {
	return drivers.ExecAddress(driverName)
}

//Raffle 执行器
type Raffle struct {
	drivers.DriverBase
}

func newRaffle() drivers.Driver {
	r := &Raffle{}
	r.SetChild(r)
	return r
}

//GetDriverName name
func (r *Raffle) GetDriverName() string {
	return driverName
}

//Exec 执行, 只有创建抽奖, 买票和充值费用池可以附带资金
func (r *Raffle) Exec(tx *types.Transaction, index int) (*types.Receipt, error) {
	var action rty.RaffleAction
	err := types.Decode(tx.Payload, &action)
	if err != nil {
		return nil, err
	}
	switch action.Ty {
	case rty.RaffleActionCreate, rty.RaffleActionBuyTicket, rty.RaffleActionFundRandomness:
	default:
		if !tx.Funds.IsZero() {
			return nil, rty.ErrAssetMismatch
		}
	}
	switch action.Ty {
	case rty.RaffleActionInstantiate:
		if action.Instantiate == nil {
			return nil, rty.ErrInvalidInput
		}
		return r.Exec_Instantiate(action.Instantiate, tx, index)
	case rty.RaffleActionCreate:
		if action.Create == nil {
			return nil, rty.ErrInvalidInput
		}
		return r.Exec_Create(action.Create, tx, index)
	case rty.RaffleActionModify:
		if action.Modify == nil {
			return nil, rty.ErrInvalidInput
		}
		return r.Exec_Modify(action.Modify, tx, index)
	case rty.RaffleActionCancel:
		if action.Cancel == nil {
			return nil, rty.ErrInvalidInput
		}
		return r.Exec_Cancel(action.Cancel, tx, index)
	case rty.RaffleActionBuyTicket:
		if action.BuyTicket == nil {
			return nil, rty.ErrInvalidInput
		}
		return r.Exec_BuyTicket(action.BuyTicket, tx, index)
	case rty.RaffleActionUpdateRandomness:
		if action.UpdateRandomness == nil || action.UpdateRandomness.Randomness == nil {
			return nil, rty.ErrInvalidInput
		}
		return r.Exec_UpdateRandomness(action.UpdateRandomness, tx, index)
	case rty.RaffleActionClaim:
		if action.Claim == nil {
			return nil, rty.ErrInvalidInput
		}
		return r.Exec_Claim(action.Claim, tx, index)
	case rty.RaffleActionUpdateConfig:
		if action.UpdateConfig == nil {
			return nil, rty.ErrInvalidInput
		}
		return r.Exec_UpdateConfig(action.UpdateConfig, tx, index)
	case rty.RaffleActionToggleLock:
		if action.ToggleLock == nil {
			return nil, rty.ErrInvalidInput
		}
		return r.Exec_ToggleLock(action.ToggleLock, tx, index)
	case rty.RaffleActionFundRandomness:
		//没有参数, 充值金额就是交易附带的资金
		return r.Exec_FundRandomness(action.FundRandomness, tx, index)
	default:
		return nil, types.ErrActionNotSupport
	}
}

//Reply 验证合约的回调, id 为抽奖 id
func (r *Raffle) Reply(tx *types.Transaction, reply *types.Reply) (*types.Receipt, error) {
	action := newRaffleAction(r, tx)
	return action.randomnessReply(reply)
}
