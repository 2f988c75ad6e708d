// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testnode 提供一个内存中的单节点链, 用于合约测试
package testnode

import (
	"github.com/33cn/raffle/account"
	dbm "github.com/33cn/raffle/common/db"
	"github.com/33cn/raffle/executor"
	"github.com/33cn/raffle/types"
	"github.com/33cn/raffle/util"
	"github.com/btcsuite/btcd/btcec/v2"
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

var chainlog = log.New("module", "testnode")

//DefaultBlockTime 测试链起始区块时间
const DefaultBlockTime = int64(1700000000)

//ChainMock 内存链: 一个 GoMemDB 同时作为状态和本地数据库
type ChainMock struct {
	cfg         *types.Config
	db          *dbm.GoMemDB
	exec        *executor.Executor
	genesisAddr string
	genesisPriv *btcec.PrivateKey
	height      int64
	blocktime   int64
}

//GetDefaultConfig 默认配置
func GetDefaultConfig() *types.Config {
	cfg, err := types.InitCfgString(types.DefaultCfgString)
	if err != nil {
		panic(err)
	}
	cfg.Store.Driver = "memdb"
	return cfg
}

//New cfg 为空时使用默认配置, 创世地址每次随机生成
func New(cfg *types.Config) *ChainMock {
	if cfg == nil {
		cfg = GetDefaultConfig()
	}
	db, err := dbm.NewGoMemDB("testnode", "", 0)
	if err != nil {
		panic(err)
	}
	mock := &ChainMock{
		cfg:       cfg,
		db:        db,
		exec:      executor.New(db, db),
		blocktime: DefaultBlockTime,
	}
	mock.genesisAddr, mock.genesisPriv = util.Genaddress()
	if cfg.Genesis == nil {
		cfg.Genesis = &types.Genesis{Coins: []string{"100000000000ustars"}}
	}
	cfg.Genesis.Addr = mock.genesisAddr
	mock.exec.SetEnv(0, mock.blocktime)
	if _, err := mock.exec.Genesis(cfg.Genesis); err != nil {
		panic(err)
	}
	chainlog.Debug("New", "genesis", mock.genesisAddr)
	return mock
}

//GetCfg cfg
func (mock *ChainMock) GetCfg() *types.Config {
	return mock.cfg
}

//GetExec 执行器
func (mock *ChainMock) GetExec() *executor.Executor {
	return mock.exec
}

//GetDB 底层数据库
func (mock *ChainMock) GetDB() dbm.DB {
	return mock.db
}

//GetGenesisAddress 创世地址, 持有所有初始资产
func (mock *ChainMock) GetGenesisAddress() string {
	return mock.genesisAddr
}

//GetGenesisKey 创世私钥
func (mock *ChainMock) GetGenesisKey() *btcec.PrivateKey {
	return mock.genesisPriv
}

//GetBlockTime 当前区块时间
func (mock *ChainMock) GetBlockTime() int64 {
	return mock.blocktime
}

//GetHeight 当前高度
func (mock *ChainMock) GetHeight() int64 {
	return mock.height
}

//SetBlockTime 出一个新块, 时间不能倒退
func (mock *ChainMock) SetBlockTime(blocktime int64) {
	if blocktime < mock.blocktime {
		panic("block time go back")
	}
	mock.height++
	mock.blocktime = blocktime
	mock.exec.SetEnv(mock.height, mock.blocktime)
}

//AddTime 区块时间前进 seconds 秒
func (mock *ChainMock) AddTime(seconds int64) {
	mock.SetBlockTime(mock.blocktime + seconds)
}

//NewAccount 新建账户并从创世地址转入 coins
func (mock *ChainMock) NewAccount(coins ...*types.Coin) string {
	addr, _ := util.Genaddress()
	funds := types.NewCoins(coins...)
	if len(funds) == 0 {
		return addr
	}
	_, err := mock.Transfer(mock.genesisAddr, addr, funds)
	if err != nil {
		panic(err)
	}
	return addr
}

//Transfer bank 转账
func (mock *ChainMock) Transfer(from, to string, coins types.Coins) (*types.Receipt, error) {
	action := &types.BankAction{
		Ty:   types.BankActionSend,
		Send: &types.BankSend{To: to, Coins: coins},
	}
	return mock.Send(from, types.BankX, action, nil)
}

//Send 在当前区块执行一笔交易
func (mock *ChainMock) Send(from, execer string, action types.Message, funds types.Coins) (*types.Receipt, error) {
	tx := util.CreateTx(execer, from, action, funds)
	receipt, err := mock.exec.Exec(tx)
	if err != nil {
		return nil, errors.Wrapf(err, "exec %s", execer)
	}
	return receipt, nil
}

//Query 只读查询
func (mock *ChainMock) Query(execer, funcName string, params types.Message) (types.Message, error) {
	return mock.exec.Query(execer, funcName, params)
}

//Balance 地址某个币种的余额
func (mock *ChainMock) Balance(addr, denom string) int64 {
	return account.NewBank(mock.db).Balance(addr, denom)
}

//Close close
func (mock *ChainMock) Close() {
	mock.db.Close()
}
