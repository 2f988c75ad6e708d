// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bank

/*
bank 是内置的原生币执行器。

主要提供两种操作：
Send -> 转移资产
Mint -> 创世地址发行资产
*/

import (
	"github.com/33cn/raffle/account"
	"github.com/33cn/raffle/common/address"
	dbm "github.com/33cn/raffle/common/db"
	drivers "github.com/33cn/raffle/system/dapp"
	"github.com/33cn/raffle/types"
	log "github.com/inconshreveable/log15"
)

var clog = log.New("module", "execs.bank")

var driverName = types.BankX

// 创世地址保存在状态数据库中, 只有它可以增发
var genesisKey = []byte(types.StatePrefix + types.BankX + "-genesis")

func init() {
	drivers.Register(driverName, newBank)
}

//Bank 执行器
type Bank struct {
	drivers.DriverBase
}

func newBank() drivers.Driver {
	c := &Bank{}
	c.SetChild(c)
	return c
}

//GetDriverName name
func (c *Bank) GetDriverName() string {
	return driverName
}

//Exec 执行
func (c *Bank) Exec(tx *types.Transaction, index int) (*types.Receipt, error) {
	var action types.BankAction
	err := types.Decode(tx.Payload, &action)
	if err != nil {
		return nil, err
	}
	if !tx.Funds.IsZero() {
		return nil, types.ErrInvalidParam
	}
	switch action.Ty {
	case types.BankActionSend:
		if action.Send == nil {
			return nil, types.ErrInvalidParam
		}
		return c.send(tx, action.Send)
	case types.BankActionMint:
		if action.Mint == nil {
			return nil, types.ErrInvalidParam
		}
		return c.mint(tx, action.Mint)
	default:
		return nil, types.ErrActionNotSupport
	}
}

func (c *Bank) send(tx *types.Transaction, send *types.BankSend) (*types.Receipt, error) {
	if err := drivers.CheckAddress(send.To); err != nil {
		return nil, err
	}
	receipt, err := c.GetBank().SendCoins(tx.From, send.To, send.Coins)
	if err != nil {
		clog.Debug("send", "from", tx.From, "to", send.To, "coins", send.Coins.String(), "err", err)
		return nil, err
	}
	return receipt, nil
}

func (c *Bank) mint(tx *types.Transaction, mint *types.BankMint) (*types.Receipt, error) {
	if tx.From != GenesisAddr(c.GetStateDB()) {
		return nil, types.ErrNoPrivilege
	}
	if err := address.CheckAddress(mint.To); err != nil {
		return nil, err
	}
	return c.GetBank().MintCoins(mint.To, mint.Coins)
}

//Query 查询余额
func (c *Bank) Query(funcName string, params []byte) (types.Message, error) {
	switch funcName {
	case "GetBalance":
		var req types.ReqBalance
		if err := types.Decode(params, &req); err != nil {
			return nil, err
		}
		return &types.ReplyBalance{Addr: req.Addr, Coins: c.GetBank().Balances(req.Addr, req.Denoms)}, nil
	case "GetGenesis":
		return &types.ReplyString{Data: GenesisAddr(c.GetStateDB())}, nil
	}
	return nil, types.ErrQueryNotSupport
}

//GenesisAddr 创世地址, 未初始化时为空
func GenesisAddr(db dbm.KV) string {
	value, err := db.Get(genesisKey)
	if err != nil {
		return ""
	}
	return string(value)
}

//Genesis 记录创世地址并发行初始资产, 只能调用一次
func Genesis(db dbm.KV, genesis *types.Genesis) (*types.Receipt, error) {
	if GenesisAddr(db) != "" {
		return nil, types.ErrNoPrivilege
	}
	if err := address.CheckAddress(genesis.Addr); err != nil {
		return nil, err
	}
	if err := db.Set(genesisKey, []byte(genesis.Addr)); err != nil {
		return nil, err
	}
	receipt, err := account.NewBank(db).GenesisInit(genesis)
	if err != nil {
		return nil, err
	}
	receipt.KV = append(receipt.KV, &types.KeyValue{Key: genesisKey, Value: []byte(genesis.Addr)})
	return receipt, nil
}
