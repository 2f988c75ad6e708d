// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package executor 交易执行宿主: 状态缓存, 资金转移, 子消息, 回调和本地索引
package executor

import (
	"sync"
	"time"

	dbm "github.com/33cn/raffle/common/db"
	"github.com/33cn/raffle/pluginmgr"
	drivers "github.com/33cn/raffle/system/dapp"
	"github.com/33cn/raffle/system/dapp/bank"
	"github.com/33cn/raffle/types"
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

var elog = log.New("module", "execs")

//SetLogLevel set log level
func SetLogLevel(level string) {
	lvl, err := log.LvlFromString(level)
	if err != nil {
		lvl = log.LvlError
	}
	elog.SetHandler(log.LvlFilterHandler(lvl, log.StdoutHandler))
}

//DisableLog disable log
func DisableLog() {
	elog.SetHandler(log.DiscardHandler())
}

//Executor 按顺序执行交易, 同一时间只执行一笔
type Executor struct {
	mu        sync.Mutex
	stateDB   dbm.DB
	localDB   *dbm.LocalDB
	height    int64
	blocktime int64
	index     int64
}

//New stateDB 保存合约状态, localDB 保存可以重建的索引, 两者可以是同一个数据库
func New(stateDB dbm.DB, localDB dbm.DB) *Executor {
	pluginmgr.InitExec()
	return &Executor{
		stateDB: stateDB,
		localDB: dbm.NewLocalDB(localDB),
	}
}

//SetEnv 设置区块高度和时间(秒), 区块内交易序号清零
func (exec *Executor) SetEnv(height, blocktime int64) {
	exec.mu.Lock()
	defer exec.mu.Unlock()
	exec.height = height
	exec.blocktime = blocktime
	exec.index = 0
}

//GetBlockTime block time
func (exec *Executor) GetBlockTime() int64 {
	exec.mu.Lock()
	defer exec.mu.Unlock()
	return exec.blocktime
}

//GetHeight height
func (exec *Executor) GetHeight() int64 {
	exec.mu.Lock()
	defer exec.mu.Unlock()
	return exec.height
}

//Genesis 初始化创世资产
func (exec *Executor) Genesis(genesis *types.Genesis) (*types.Receipt, error) {
	exec.mu.Lock()
	defer exec.mu.Unlock()
	cache := dbm.NewStateCache(exec.stateDB)
	receipt, err := bank.Genesis(cache, genesis)
	if err != nil {
		return nil, errors.Wrap(err, "genesis")
	}
	if err := cache.Commit(); err != nil {
		return nil, err
	}
	return receipt, nil
}

//Exec 原子地执行一笔交易, 返回错误时没有任何状态变化
func (exec *Executor) Exec(tx *types.Transaction) (*types.Receipt, error) {
	exec.mu.Lock()
	defer exec.mu.Unlock()
	if tx == nil || tx.Execer == "" {
		return nil, types.ErrEmptyTx
	}
	start := time.Now()
	e := newExecutor(exec, dbm.NewStateCache(exec.stateDB))
	receipt, err := e.execTx(tx)
	if err != nil {
		e.rollback()
		txFailedCounter.Inc(1)
		elog.Debug("Exec", "execer", tx.Execer, "from", tx.From, "err", err)
		return nil, err
	}
	if err := e.commit(); err != nil {
		return nil, err
	}
	if err := e.execLocalAll(); err != nil {
		// 索引可以重建, 不影响交易结果
		elog.Error("execLocal", "execer", tx.Execer, "err", err)
	}
	if err := exec.saveTxResult(tx, receipt); err != nil {
		elog.Error("saveTxResult", "execer", tx.Execer, "err", err)
	}
	exec.index++
	txOkCounter.Inc(1)
	txTimer.UpdateSince(start)
	return receipt, nil
}

//Query 只读查询, 不会修改状态
func (exec *Executor) Query(execer string, funcName string, params types.Message) (types.Message, error) {
	exec.mu.Lock()
	defer exec.mu.Unlock()
	e := newExecutor(exec, dbm.NewStateCache(exec.stateDB))
	return e.QueryExec(execer, funcName, params)
}

//GetTxResult 按交易 hash 查询执行结果
func (exec *Executor) GetTxResult(hash []byte) (*types.TxResult, error) {
	value, err := exec.localDB.Get(calcTxKey(hash))
	if err != nil {
		return nil, err
	}
	var result types.TxResult
	if err := types.Decode(value, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (exec *Executor) saveTxResult(tx *types.Transaction, receipt *types.Receipt) error {
	result := &types.TxResult{
		Height:    exec.height,
		BlockTime: exec.blocktime,
		Index:     exec.index,
		Tx:        tx,
		Receipt:   &types.ReceiptData{Ty: receipt.Ty, Logs: receipt.Logs},
	}
	return exec.localDB.Set(calcTxKey(tx.Hash()), types.Encode(result))
}

func loadDriver(name string) (drivers.Driver, error) {
	d, err := drivers.LoadDriver(name)
	if err != nil {
		return nil, errors.Wrapf(err, "load driver %s", name)
	}
	return d, nil
}
