// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dapp 执行器驱动的公共接口和基础实现
package dapp

import (
	"github.com/33cn/raffle/account"
	"github.com/33cn/raffle/common/address"
	dbm "github.com/33cn/raffle/common/db"
	"github.com/33cn/raffle/types"
	log "github.com/inconshreveable/log15"
)

var blog = log.New("module", "execs.base")

//Querier 合约执行过程中查询其他合约, 看到的是当前交易未提交的状态
type Querier interface {
	QueryExec(execer string, funcName string, params types.Message) (types.Message, error)
}

//Driver 执行器驱动
type Driver interface {
	SetStateDB(dbm.KV)
	GetStateDB() dbm.KV
	SetLocalDB(dbm.KVDB)
	GetLocalDB() dbm.KVDB
	SetQuerier(Querier)
	//驱动的名字，这个名称是固定的
	GetDriverName() string
	//执行器的名称, 合约地址由它计算
	GetName() string
	SetName(string)
	SetEnv(height, blocktime int64)
	Exec(tx *types.Transaction, index int) (*types.Receipt, error)
	//子消息执行成功后的回调, 只有 ReplyOnSuccess 的子消息会触发
	Reply(tx *types.Transaction, reply *types.Reply) (*types.Receipt, error)
	ExecLocal(tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error)
	Query(funcName string, params []byte) (types.Message, error)
}

//DriverBase 驱动的公共部分, 具体的执行器嵌入它
type DriverBase struct {
	statedb   dbm.KV
	localdb   dbm.KVDB
	querier   Querier
	height    int64
	blocktime int64
	name      string
	child     Driver
}

//SetChild 设置具体的执行器
func (d *DriverBase) SetChild(e Driver) {
	d.child = e
}

//SetEnv 区块高度和时间
func (d *DriverBase) SetEnv(height, blocktime int64) {
	d.height = height
	d.blocktime = blocktime
}

//GetHeight height
func (d *DriverBase) GetHeight() int64 {
	return d.height
}

//GetBlockTime 区块时间, 秒
func (d *DriverBase) GetBlockTime() int64 {
	return d.blocktime
}

//SetStateDB set
func (d *DriverBase) SetStateDB(db dbm.KV) {
	d.statedb = db
}

//GetStateDB get
func (d *DriverBase) GetStateDB() dbm.KV {
	return d.statedb
}

//SetLocalDB set
func (d *DriverBase) SetLocalDB(db dbm.KVDB) {
	d.localdb = db
}

//GetLocalDB get
func (d *DriverBase) GetLocalDB() dbm.KVDB {
	return d.localdb
}

//SetQuerier set
func (d *DriverBase) SetQuerier(q Querier) {
	d.querier = q
}

//GetQuerier get
func (d *DriverBase) GetQuerier() Querier {
	return d.querier
}

//GetName 执行器名称, 没有设置时等于驱动名称
func (d *DriverBase) GetName() string {
	if d.name == "" {
		return d.child.GetDriverName()
	}
	return d.name
}

//SetName set
func (d *DriverBase) SetName(name string) {
	d.name = name
}

//GetExecAddress 合约地址
func (d *DriverBase) GetExecAddress() string {
	return address.ExecAddress(d.GetName())
}

//GetBank 当前状态上的多币种账户
func (d *DriverBase) GetBank() *account.Bank {
	return account.NewBank(d.statedb)
}

//Reply 默认不接受回调
func (d *DriverBase) Reply(tx *types.Transaction, reply *types.Reply) (*types.Receipt, error) {
	blog.Error("Reply", "execer", d.GetName(), "id", reply.ID, "err", types.ErrReplyNotSupport)
	return nil, types.ErrReplyNotSupport
}

//ExecLocal 默认不建本地索引
func (d *DriverBase) ExecLocal(tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	return &types.LocalDBSet{}, nil
}

//Query 默认不支持查询
func (d *DriverBase) Query(funcName string, params []byte) (types.Message, error) {
	return nil, types.ErrQueryNotSupport
}
