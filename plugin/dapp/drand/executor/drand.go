// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

/*
drand 执行器验证 drand 随机信标的 BLS12-381 签名

1）Instantiate 设置签名方案, 只能一次；
2）Verify 验证某一轮的签名, 结果放在回执 Data 里, 调用方通过回调拿到；
3）Withdraw 管理员取回验证费。
*/

import (
	dty "github.com/33cn/raffle/plugin/dapp/drand/types"
	drivers "github.com/33cn/raffle/system/dapp"
	"github.com/33cn/raffle/types"
	log "github.com/inconshreveable/log15"
	"github.com/rcrowley/go-metrics"
)

var dlog = log.New("module", "execs.drand")

var (
	verifiedCounter = metrics.NewRegisteredCounter("drand.verify.ok", nil)
	rejectedCounter = metrics.NewRegisteredCounter("drand.verify.rejected", nil)
)

var driverName = dty.DrandX

//Init 注册执行器
func Init(name string) {
	if name != driverName {
		panic("drand dapp can't be rename")
	}
	drivers.Register(name, newDrand)
}

//GetName 执行器名
func GetName() string {
	return newDrand().GetName()
}

//GetExecAddress 合约地址, 验证费存放在这里
func GetExecAddress() string {
	return drivers.ExecAddress(driverName)
}

//Drand 执行器
type Drand struct {
	drivers.DriverBase
}

func newDrand() drivers.Driver {
	d := &Drand{}
	d.SetChild(d)
	return d
}

//GetDriverName name
func (d *Drand) GetDriverName() string {
	return driverName
}

//Exec 执行, 只有 Verify 可以附带资金(验证费)
func (d *Drand) Exec(tx *types.Transaction, index int) (*types.Receipt, error) {
	var action dty.DrandAction
	if err := types.Decode(tx.Payload, &action); err != nil {
		return nil, err
	}
	if action.Ty != dty.DrandActionVerify && !tx.Funds.IsZero() {
		return nil, dty.ErrDrandInvalidParam
	}
	switch action.Ty {
	case dty.DrandActionInstantiate:
		if action.Instantiate == nil {
			return nil, dty.ErrDrandInvalidParam
		}
		return d.Exec_Instantiate(action.Instantiate, tx, index)
	case dty.DrandActionVerify:
		if action.Verify == nil {
			return nil, dty.ErrDrandInvalidParam
		}
		return d.Exec_Verify(action.Verify, tx, index)
	case dty.DrandActionWithdraw:
		if action.Withdraw == nil {
			return nil, dty.ErrDrandInvalidParam
		}
		return d.Exec_Withdraw(action.Withdraw, tx, index)
	default:
		return nil, types.ErrActionNotSupport
	}
}
