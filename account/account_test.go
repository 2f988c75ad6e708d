// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package account

import (
	"testing"

	"github.com/33cn/raffle/common/db"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	addr1 = "14ZTV2wHG3uPHnA5cBJmNxAxxvbzS7Z5mE"
	addr2 = "24ZTV2wHG3uPHnA5cBJmNxAxxvbzS7Z5mE"
	addr3 = "34ZTV2wHG3uPHnA5cBJmNxAxxvbzS7Z5mE"
	addr4 = "44ZTV2wHG3uPHnA5cBJmNxAxxvbzS7Z5mE"
)

func GenerAccDb(t *testing.T) (*DB, *DB) {
	//构造账户数据库
	stroedb, err := db.NewGoMemDB("gomemdb", "test", 128)
	require.NoError(t, err)
	accStars, err := NewAccountDB(types.BankX, "ustars", stroedb)
	require.NoError(t, err)
	accAtom, err := NewAccountDB(types.BankX, "uatom", stroedb)
	require.NoError(t, err)
	return accStars, accAtom
}

func (acc *DB) GenerAccData() {
	// 加入账户
	account := &types.Account{
		Balance: 1000 * 1e8,
		Addr:    addr1,
	}
	acc.SaveAccount(account)

	account.Balance = 900 * 1e8
	account.Addr = addr2
	acc.SaveAccount(account)

	account.Balance = 800 * 1e8
	account.Addr = addr3
	acc.SaveAccount(account)

	account.Balance = 700 * 1e8
	account.Addr = addr4
	acc.SaveAccount(account)
}

func TestNewAccountDB(t *testing.T) {
	_, err := NewAccountDB("ba-nk", "ustars", nil)
	assert.Equal(t, types.ErrExecNameNotAllow, err)
	_, err = NewAccountDB(types.BankX, "u-stars", nil)
	assert.Equal(t, types.ErrDenom, err)
	acc, err := NewAccountDB(types.BankX, "ustars", nil)
	require.NoError(t, err)
	assert.Equal(t, "mavl-bank-ustars-"+addr1, string(acc.AccountKey(addr1)))
}

func TestCheckTransfer(t *testing.T) {
	accStars, accAtom := GenerAccDb(t)
	accStars.GenerAccData()

	err := accStars.CheckTransfer(addr1, addr2, 10*1e8)
	require.NoError(t, err)

	err = accAtom.CheckTransfer(addr3, addr4, 10*1e8)
	assert.True(t, errors.Is(err, types.ErrNoBalance))

	err = accStars.CheckTransfer(addr3, addr4, 0)
	assert.Equal(t, types.ErrAmount, err)
}

func TestTransfer(t *testing.T) {
	accStars, accAtom := GenerAccDb(t)
	accStars.GenerAccData()

	receipt, err := accStars.Transfer(addr1, addr2, 10*1e8)
	require.NoError(t, err)
	require.Len(t, receipt.KV, 2)
	require.Len(t, receipt.Logs, 2)
	assert.Equal(t, int32(types.TyLogTransfer), receipt.Logs[0].Ty)

	var log1 types.ReceiptAccountTransfer
	require.NoError(t, types.Decode(receipt.Logs[0].Log, &log1))
	assert.Equal(t, int64(1000*1e8), log1.Prev.Balance)
	assert.Equal(t, int64(990*1e8), log1.Current.Balance)

	assert.Equal(t, int64(990*1e8), accStars.LoadAccount(addr1).Balance)
	assert.Equal(t, int64(910*1e8), accStars.LoadAccount(addr2).Balance)
	// 其他币种不受影响
	assert.Equal(t, int64(0), accAtom.LoadAccount(addr1).Balance)

	_, err = accStars.Transfer(addr1, addr1, 1)
	assert.Equal(t, types.ErrSendSameToRecv, err)
	_, err = accStars.Transfer(addr4, addr1, 701*1e8)
	assert.True(t, errors.Is(err, types.ErrNoBalance))
}

func TestMint(t *testing.T) {
	accStars, _ := GenerAccDb(t)
	receipt, err := accStars.Mint(addr1, 100)
	require.NoError(t, err)
	assert.Equal(t, int32(types.TyLogMint), receipt.Logs[0].Ty)
	assert.Equal(t, int64(100), accStars.LoadAccount(addr1).Balance)
	assert.Equal(t, "ustars", accStars.LoadAccount(addr1).Denom)

	_, err = accStars.Mint(addr1, types.MaxCoin-1)
	assert.Equal(t, types.ErrAmount, err)
}

func TestBank(t *testing.T) {
	stroedb, err := db.NewGoMemDB("gomemdb", "test", 128)
	require.NoError(t, err)
	bank := NewBank(stroedb)

	receipt, err := bank.GenesisInit(&types.Genesis{Addr: addr1, Coins: []string{"1000ustars", "50uatom"}})
	require.NoError(t, err)
	assert.Len(t, receipt.KV, 2)

	coins, err := types.ParseCoins("100ustars,5uatom")
	require.NoError(t, err)
	_, err = bank.SendCoins(addr1, addr2, coins)
	require.NoError(t, err)

	assert.True(t, bank.Balances(addr2, []string{"uatom", "ustars"}).Equal(coins))
	assert.Equal(t, int64(900), bank.Balance(addr1, "ustars"))
	assert.Equal(t, int64(45), bank.Balance(addr1, "uatom"))
	assert.Equal(t, int64(0), bank.Balance(addr1, "x"))

	tooMuch, err := types.ParseCoins("1ustars,46uatom")
	require.NoError(t, err)
	_, err = bank.SendCoins(addr1, addr2, tooMuch)
	assert.True(t, errors.Is(err, types.ErrNoBalance))

	receipt, err = bank.SendCoins(addr1, addr2, nil)
	require.NoError(t, err)
	assert.Empty(t, receipt.KV)

	_, err = bank.GenesisInit(&types.Genesis{Addr: addr1, Coins: []string{"ustars"}})
	assert.True(t, errors.Is(err, types.ErrInvalidParam))
}
