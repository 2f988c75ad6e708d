// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bank

import (
	"testing"

	"github.com/33cn/raffle/common/address"
	dbm "github.com/33cn/raffle/common/db"
	drivers "github.com/33cn/raffle/system/dapp"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBank(t *testing.T) (drivers.Driver, dbm.KV) {
	db, err := dbm.NewGoMemDB("bank", "", 0)
	require.NoError(t, err)
	d, err := drivers.LoadDriver(types.BankX)
	require.NoError(t, err)
	d.SetStateDB(db)
	return d, db
}

func genAddr(t *testing.T) string {
	_, addr, err := address.NewPrivKey()
	require.NoError(t, err)
	return addr
}

func TestBankGenesisAndMint(t *testing.T) {
	d, db := newTestBank(t)
	genesis := genAddr(t)
	user := genAddr(t)

	_, err := Genesis(db, &types.Genesis{Addr: genesis, Coins: []string{"1000ustars"}})
	require.NoError(t, err)
	assert.Equal(t, genesis, GenesisAddr(db))
	_, err = Genesis(db, &types.Genesis{Addr: user})
	assert.Equal(t, types.ErrNoPrivilege, err)

	coins, _ := types.ParseCoins("5uatom")
	mint := &types.BankAction{Ty: types.BankActionMint, Mint: &types.BankMint{To: user, Coins: coins}}
	_, err = d.Exec(&types.Transaction{Execer: types.BankX, From: user, Payload: types.Encode(mint)}, 0)
	assert.Equal(t, types.ErrNoPrivilege, err)
	_, err = d.Exec(&types.Transaction{Execer: types.BankX, From: genesis, Payload: types.Encode(mint)}, 0)
	require.NoError(t, err)

	reply, err := d.Query("GetBalance", types.Encode(&types.ReqBalance{Addr: user, Denoms: []string{"uatom", "ustars"}}))
	require.NoError(t, err)
	assert.True(t, reply.(*types.ReplyBalance).Coins.Equal(coins))
}

func TestBankSend(t *testing.T) {
	d, db := newTestBank(t)
	genesis := genAddr(t)
	user := genAddr(t)
	_, err := Genesis(db, &types.Genesis{Addr: genesis, Coins: []string{"1000ustars"}})
	require.NoError(t, err)

	coins, _ := types.ParseCoins("300ustars")
	send := &types.BankAction{Ty: types.BankActionSend, Send: &types.BankSend{To: user, Coins: coins}}
	receipt, err := d.Exec(&types.Transaction{Execer: types.BankX, From: genesis, Payload: types.Encode(send)}, 0)
	require.NoError(t, err)
	assert.Len(t, receipt.Logs, 2)

	other := genAddr(t)
	forward := &types.BankAction{Ty: types.BankActionSend, Send: &types.BankSend{To: other, Coins: coins}}
	_, err = d.Exec(&types.Transaction{Execer: types.BankX, From: user, Payload: types.Encode(forward)}, 0)
	require.NoError(t, err)
	_, err = d.Exec(&types.Transaction{Execer: types.BankX, From: user, Payload: types.Encode(forward)}, 0)
	assert.True(t, errors.Is(err, types.ErrNoBalance))

	// 不能转给自己
	_, err = d.Exec(&types.Transaction{Execer: types.BankX, From: other, Payload: types.Encode(forward)}, 0)
	assert.True(t, errors.Is(err, types.ErrSendSameToRecv))

	bad := &types.BankAction{Ty: types.BankActionSend, Send: &types.BankSend{To: "nobody", Coins: coins}}
	_, err = d.Exec(&types.Transaction{Execer: types.BankX, From: genesis, Payload: types.Encode(bad)}, 0)
	assert.Error(t, err)

	_, err = d.Exec(&types.Transaction{Execer: types.BankX, From: genesis, Payload: types.Encode(&types.BankAction{Ty: 99})}, 0)
	assert.Equal(t, types.ErrActionNotSupport, err)
}

func TestBankSendMsg(t *testing.T) {
	assert.Nil(t, drivers.BankSendMsg("x", nil))
	coins, _ := types.ParseCoins("3ustars")
	msg := drivers.BankSendMsg("x", coins)
	require.NotNil(t, msg)
	assert.Equal(t, types.BankX, msg.Execer)
	var action types.BankAction
	require.NoError(t, types.Decode(msg.Payload, &action))
	assert.Equal(t, int32(types.BankActionSend), action.Ty)
	assert.Equal(t, "x", action.Send.To)
}
