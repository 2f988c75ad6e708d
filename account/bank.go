// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package account

import (
	dbm "github.com/33cn/raffle/common/db"
	"github.com/33cn/raffle/types"
)

//Bank 多币种账户, 每个币种对应一个 DB
type Bank struct {
	db     dbm.KV
	execer string
}

//NewBank 使用 bank 执行器的账户空间
func NewBank(db dbm.KV) *Bank {
	return &Bank{db: db, execer: types.BankX}
}

func (b *Bank) accountDB(denom string) (*DB, error) {
	return NewAccountDB(b.execer, denom, b.db)
}

//Balance 单一币种余额, 币种不合法时返回 0
func (b *Bank) Balance(addr, denom string) int64 {
	acc, err := b.accountDB(denom)
	if err != nil {
		return 0
	}
	return acc.LoadAccount(addr).GetBalance()
}

//Balances 多个币种的余额, 余额为 0 的币种不返回
func (b *Bank) Balances(addr string, denoms []string) types.Coins {
	var coins []*types.Coin
	for _, denom := range denoms {
		coins = append(coins, types.NewCoin(denom, b.Balance(addr, denom)))
	}
	return types.NewCoins(coins...)
}

//SendCoins 转账多个币种, coins 为空时返回空收据
func (b *Bank) SendCoins(from, to string, coins types.Coins) (*types.Receipt, error) {
	if err := coins.Validate(); err != nil {
		return nil, err
	}
	receipt := types.NewReceipt()
	for _, coin := range coins {
		acc, err := b.accountDB(coin.Denom)
		if err != nil {
			return nil, err
		}
		r, err := acc.Transfer(from, to, coin.Amount)
		if err != nil {
			alog.Error("SendCoins", "from", from, "to", to, "coin", coin.String(), "err", err)
			return nil, err
		}
		receipt.Merge(r)
	}
	return receipt, nil
}

//MintCoins 增发多个币种
func (b *Bank) MintCoins(to string, coins types.Coins) (*types.Receipt, error) {
	if err := coins.Validate(); err != nil {
		return nil, err
	}
	receipt := types.NewReceipt()
	for _, coin := range coins {
		acc, err := b.accountDB(coin.Denom)
		if err != nil {
			return nil, err
		}
		r, err := acc.Mint(to, coin.Amount)
		if err != nil {
			return nil, err
		}
		receipt.Merge(r)
	}
	return receipt, nil
}
