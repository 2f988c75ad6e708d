// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/raffle/account"
	"github.com/33cn/raffle/common/address"
	dbm "github.com/33cn/raffle/common/db"
	drivers "github.com/33cn/raffle/system/dapp"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
)

//子消息最大嵌套深度
const maxMsgDepth = 10

// 等待提交后执行 ExecLocal 的交易
type localTask struct {
	driver  drivers.Driver
	tx      *types.Transaction
	receipt *types.ReceiptData
	index   int
}

//执行器 -> db 环境, 一笔交易一个
type executor struct {
	stateDB   *dbm.StateCache
	localDB   *dbm.LocalDB
	height    int64
	blocktime int64
	index     int
	tasks     []*localTask
}

func newExecutor(exec *Executor, stateDB *dbm.StateCache) *executor {
	return &executor{
		stateDB:   stateDB,
		localDB:   exec.localDB,
		height:    exec.height,
		blocktime: exec.blocktime,
		index:     int(exec.index),
	}
}

func (e *executor) setEnv(d drivers.Driver) {
	d.SetStateDB(&guardKV{KV: e.stateDB, execer: d.GetDriverName()})
	d.SetLocalDB(e.localDB)
	d.SetQuerier(e)
	d.SetEnv(e.height, e.blocktime)
}

func (e *executor) loadDriver(execer string) (drivers.Driver, error) {
	d, err := loadDriver(execer)
	if err != nil {
		return nil, err
	}
	e.setEnv(d)
	return d, nil
}

func (e *executor) execTx(tx *types.Transaction) (*types.Receipt, error) {
	if err := address.CheckAddress(tx.From); err != nil {
		return nil, errors.Wrapf(err, "tx from %s", tx.From)
	}
	return e.execMsg(tx, 0)
}

// execMsg 执行一笔交易或子消息, 子消息深度优先执行
func (e *executor) execMsg(tx *types.Transaction, depth int) (*types.Receipt, error) {
	if depth > maxMsgDepth {
		return nil, types.ErrSubMsgDepth
	}
	d, err := e.loadDriver(tx.Execer)
	if err != nil {
		return nil, err
	}
	receipt := types.NewReceipt()
	//先把附带的资金转入合约地址
	if !tx.Funds.IsZero() {
		r, err := account.NewBank(e.stateDB).SendCoins(tx.From, address.ExecAddress(tx.Execer), tx.Funds)
		if err != nil {
			return nil, errors.Wrapf(err, "send funds to %s", tx.Execer)
		}
		receipt.Merge(r)
	}
	r, err := d.Exec(tx, e.index)
	if err != nil {
		elog.Debug("exec tx error", "execer", tx.Execer, "depth", depth, "err", err)
		return nil, err
	}
	if r == nil {
		r = types.NewReceipt()
	}
	receipt.Logs = append(receipt.Logs, r.Logs...)
	receipt.Data = r.Data
	e.addTask(d, tx, r.Logs)

	logs, err := e.execSubMsgs(d, tx, r.Msgs, depth)
	if err != nil {
		return nil, err
	}
	receipt.Logs = append(receipt.Logs, logs...)
	receipt.KV = e.stateDB.KVs()
	return receipt, nil
}

// execSubMsgs 返回子消息和回调产生的日志
func (e *executor) execSubMsgs(d drivers.Driver, tx *types.Transaction, msgs []*types.SubMsg, depth int) ([]*types.ReceiptLog, error) {
	var logs []*types.ReceiptLog
	sender := address.ExecAddress(tx.Execer)
	for _, msg := range msgs {
		if msg == nil {
			continue
		}
		subMsgCounter.Inc(1)
		subtx := &types.Transaction{
			Execer:  msg.Execer,
			From:    sender,
			Funds:   msg.Funds,
			Payload: msg.Payload,
		}
		r, err := e.execMsg(subtx, depth+1)
		if err != nil {
			return nil, errors.Wrapf(err, "submsg %d to %s", msg.ID, msg.Execer)
		}
		logs = append(logs, r.Logs...)
		if !msg.ReplyOnSuccess {
			continue
		}
		reply := &types.Reply{ID: msg.ID, Execer: msg.Execer, Data: r.Data, Logs: r.Logs}
		rr, err := d.Reply(tx, reply)
		if err != nil {
			return nil, err
		}
		if rr == nil {
			continue
		}
		logs = append(logs, rr.Logs...)
		e.addTask(d, tx, rr.Logs)
		sublogs, err := e.execSubMsgs(d, tx, rr.Msgs, depth+1)
		if err != nil {
			return nil, err
		}
		logs = append(logs, sublogs...)
	}
	return logs, nil
}

func (e *executor) addTask(d drivers.Driver, tx *types.Transaction, logs []*types.ReceiptLog) {
	if len(logs) == 0 {
		return
	}
	e.tasks = append(e.tasks, &localTask{
		driver:  d,
		tx:      tx,
		receipt: &types.ReceiptData{Ty: types.ExecOk, Logs: logs},
		index:   e.index,
	})
}

//QueryExec 执行过程中的查询, 看到当前交易未提交的修改
func (e *executor) QueryExec(execer string, funcName string, params types.Message) (types.Message, error) {
	d, err := e.loadDriver(execer)
	if err != nil {
		return nil, err
	}
	var data []byte
	if params != nil {
		data = types.Encode(params)
	}
	return d.Query(funcName, data)
}

func (e *executor) commit() error {
	return e.stateDB.Commit()
}

func (e *executor) rollback() {
	e.stateDB.Rollback()
	e.tasks = nil
}

// execLocalAll 提交以后按执行顺序建立本地索引
func (e *executor) execLocalAll() error {
	for _, task := range e.tasks {
		kvs, err := task.driver.ExecLocal(task.tx, task.receipt, task.index)
		if err != nil {
			return err
		}
		if kvs == nil {
			continue
		}
		for _, kv := range kvs.KV {
			if err := isAllowLocalKey(task.driver.GetDriverName(), kv.Key); err != nil {
				return err
			}
		}
		// 同一笔交易的后续索引需要读到前面的结果
		if err := e.localDB.Apply(kvs); err != nil {
			return err
		}
	}
	return nil
}
