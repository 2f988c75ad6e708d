// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package account 实现多币种资产账户的操作
*/
package account

//package for account manger
//1. load from db
//2. save to db
//3. KVSet
//4. Transfer
//5. Mint
//6. Account balance query

import (
	"strings"

	dbm "github.com/33cn/raffle/common/db"
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"

	"github.com/33cn/raffle/types"
)

var alog = log.New("module", "account")

// DB 某个执行器下某个币种的账户数据库
type DB struct {
	db               dbm.KV
	accountKeyPerfix []byte
	execer           string
	denom            string
}

//NewAccountDB 账户 key 为 mavl-{execer}-{denom}-{addr}
func NewAccountDB(execer string, denom string, db dbm.KV) (*DB, error) {
	//如果execer 中存在 "-", 那么创建失败
	if strings.ContainsRune(execer, '-') {
		return nil, types.ErrExecNameNotAllow
	}
	if err := types.ValidateDenom(denom); err != nil {
		return nil, err
	}
	acc := &DB{
		accountKeyPerfix: []byte(SymbolPrefix(execer, denom)),
		execer:           execer,
		denom:            denom,
	}
	acc.SetDB(db)
	return acc, nil
}

//SetDB set db
func (acc *DB) SetDB(db dbm.KV) *DB {
	acc.db = db
	return acc
}

//Denom 币种
func (acc *DB) Denom() string {
	return acc.denom
}

//LoadAccount 不存在时返回余额为 0 的账户
func (acc *DB) LoadAccount(addr string) *types.Account {
	value, err := acc.db.Get(acc.AccountKey(addr))
	if err != nil {
		return &types.Account{Addr: addr, Denom: acc.denom}
	}
	var acc1 types.Account
	err = types.Decode(value, &acc1)
	if err != nil {
		panic(err) //数据库已经损坏
	}
	return &acc1
}

//CheckTransfer 检查余额是否足够
func (acc *DB) CheckTransfer(from, to string, amount int64) error {
	if !types.CheckAmount(amount) {
		return types.ErrAmount
	}
	accFrom := acc.LoadAccount(from)
	if accFrom.GetBalance()-amount < 0 {
		return errors.Wrapf(types.ErrNoBalance, "%s: have %d%s, need %d%s", from, accFrom.GetBalance(), acc.denom, amount, acc.denom)
	}
	return nil
}

//Transfer 转账
func (acc *DB) Transfer(from, to string, amount int64) (*types.Receipt, error) {
	if !types.CheckAmount(amount) {
		return nil, types.ErrAmount
	}
	accFrom := acc.LoadAccount(from)
	accTo := acc.LoadAccount(to)
	if accFrom.Addr == accTo.Addr {
		return nil, types.ErrSendSameToRecv
	}
	if accFrom.GetBalance()-amount < 0 {
		alog.Debug("Transfer", "from", from, "balance", accFrom.GetBalance(), "amount", amount, "denom", acc.denom)
		return nil, errors.Wrapf(types.ErrNoBalance, "%s: have %d%s, need %d%s", from, accFrom.GetBalance(), acc.denom, amount, acc.denom)
	}
	copyfrom := *accFrom
	copyto := *accTo

	toBalance, err := safeAdd(accTo.GetBalance(), amount)
	if err != nil {
		return nil, err
	}
	accFrom.Balance = accFrom.GetBalance() - amount
	accTo.Balance = toBalance

	receiptBalanceFrom := &types.ReceiptAccountTransfer{
		Prev:    &copyfrom,
		Current: accFrom,
	}
	receiptBalanceTo := &types.ReceiptAccountTransfer{
		Prev:    &copyto,
		Current: accTo,
	}

	acc.SaveAccount(accFrom)
	acc.SaveAccount(accTo)
	return acc.transferReceipt(accFrom, accTo, receiptBalanceFrom, receiptBalanceTo), nil
}

//Mint 增发
func (acc *DB) Mint(addr string, amount int64) (*types.Receipt, error) {
	if !types.CheckAmount(amount) {
		return nil, types.ErrAmount
	}
	acc1 := acc.LoadAccount(addr)
	copyacc := *acc1
	var err error
	acc1.Balance, err = safeAdd(acc1.GetBalance(), amount)
	if err != nil {
		return nil, err
	}
	receiptBalance := &types.ReceiptAccountMint{
		Prev:    &copyacc,
		Current: acc1,
	}
	acc.SaveAccount(acc1)
	log1 := &types.ReceiptLog{
		Ty:  types.TyLogMint,
		Log: types.Encode(receiptBalance),
	}
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   acc.GetKVSet(acc1),
		Logs: []*types.ReceiptLog{log1},
	}, nil
}

func (acc *DB) transferReceipt(accFrom, accTo *types.Account, receiptFrom, receiptTo types.Message) *types.Receipt {
	log1 := &types.ReceiptLog{
		Ty:  types.TyLogTransfer,
		Log: types.Encode(receiptFrom),
	}
	log2 := &types.ReceiptLog{
		Ty:  types.TyLogTransfer,
		Log: types.Encode(receiptTo),
	}
	kv := acc.GetKVSet(accFrom)
	kv = append(kv, acc.GetKVSet(accTo)...)
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   kv,
		Logs: []*types.ReceiptLog{log1, log2},
	}
}

//SaveAccount save
func (acc *DB) SaveAccount(acc1 *types.Account) {
	set := acc.GetKVSet(acc1)
	for i := 0; i < len(set); i++ {
		err := acc.db.Set(set[i].Key, set[i].Value)
		if err != nil {
			panic(err)
		}
	}
}

//GetKVSet 账户对应的 kv
func (acc *DB) GetKVSet(acc1 *types.Account) (kvset []*types.KeyValue) {
	acc1.Denom = acc.denom
	value := types.Encode(acc1)
	kvset = append(kvset, &types.KeyValue{
		Key:   acc.AccountKey(acc1.Addr),
		Value: value,
	})
	return kvset
}

//AccountKey 账户 key
func (acc *DB) AccountKey(address string) (key []byte) {
	key = make([]byte, 0, len(acc.accountKeyPerfix)+len(address))
	key = append(key, acc.accountKeyPerfix...)
	key = append(key, []byte(address)...)
	return key
}

//SymbolPrefix 账户 key 前缀
func SymbolPrefix(execer string, denom string) string {
	return types.StatePrefix + execer + "-" + denom + "-"
}

func safeAdd(balance, amount int64) (int64, error) {
	if balance+amount < amount || balance+amount > types.MaxCoin {
		return balance, types.ErrAmount
	}
	return balance + amount, nil
}
