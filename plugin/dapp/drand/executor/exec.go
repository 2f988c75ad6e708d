// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	dbm "github.com/33cn/raffle/common/db"
	dty "github.com/33cn/raffle/plugin/dapp/drand/types"
	drivers "github.com/33cn/raffle/system/dapp"
	"github.com/33cn/raffle/types"
)

func calcStateKey() []byte {
	return []byte(types.StatePrefix + driverName + "-state")
}

func loadState(db dbm.KV) (*dty.DrandState, error) {
	value, err := db.Get(calcStateKey())
	if err != nil {
		if err == types.ErrNotFound {
			return nil, dty.ErrDrandNotInitialized
		}
		return nil, err
	}
	var state dty.DrandState
	if err := types.Decode(value, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

//Exec_Instantiate 设置签名方案, 空表示 pedersen-bls-chained
func (d *Drand) Exec_Instantiate(payload *dty.DrandInstantiate, tx *types.Transaction, index int) (*types.Receipt, error) {
	db := d.GetStateDB()
	if _, err := loadState(db); err == nil {
		return nil, dty.ErrDrandInstantiated
	}
	scheme := payload.Scheme
	if scheme == "" {
		scheme = dty.SchemeChained
	}
	if !dty.IsValidScheme(scheme) {
		return nil, dty.ErrUnknownScheme
	}
	state := &dty.DrandState{Scheme: scheme, Admin: tx.From}
	kv := &types.KeyValue{Key: calcStateKey(), Value: types.Encode(state)}
	if err := db.Set(kv.Key, kv.Value); err != nil {
		return nil, err
	}
	dlog.Info("Instantiate", "scheme", scheme, "admin", tx.From)
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   []*types.KeyValue{kv},
		Logs: []*types.ReceiptLog{{Ty: dty.TyLogDrandInstantiate, Log: types.Encode(state)}},
	}, nil
}

func verify(state *dty.DrandState, payload *dty.DrandVerify) (*dty.VerifyResult, error) {
	ok, err := VerifyBeacon(state.Scheme, payload.PublicKey, payload.Round, payload.PreviousSignature, payload.Signature)
	if err != nil {
		return nil, err
	}
	result := &dty.VerifyResult{
		Status:   dty.VerifyStatusRejected,
		Round:    payload.Round,
		RaffleID: payload.RaffleID,
		Owner:    payload.Owner,
	}
	if ok {
		result.Status = dty.VerifyStatusVerified
		result.Randomness = Randomness(payload.Signature)
	}
	return result, nil
}

//Exec_Verify 签名错误不会让交易失败, 由调用方根据 Status 决定
func (d *Drand) Exec_Verify(payload *dty.DrandVerify, tx *types.Transaction, index int) (*types.Receipt, error) {
	state, err := loadState(d.GetStateDB())
	if err != nil {
		return nil, err
	}
	result, err := verify(state, payload)
	if err != nil {
		dlog.Error("Verify", "round", payload.Round, "raffleID", payload.RaffleID, "err", err)
		return nil, err
	}
	if result.Verified() {
		verifiedCounter.Inc(1)
	} else {
		rejectedCounter.Inc(1)
	}
	dlog.Debug("Verify", "round", payload.Round, "raffleID", payload.RaffleID, "status", result.Status)
	log := &dty.ReceiptDrandVerify{Round: result.Round, RaffleID: result.RaffleID, Owner: result.Owner, Status: result.Status}
	return &types.Receipt{
		Ty:   types.ExecOk,
		Logs: []*types.ReceiptLog{{Ty: dty.TyLogDrandVerify, Log: types.Encode(log)}},
		Data: types.Encode(result),
	}, nil
}

//Exec_Withdraw 管理员取回验证费
func (d *Drand) Exec_Withdraw(payload *dty.DrandWithdraw, tx *types.Transaction, index int) (*types.Receipt, error) {
	state, err := loadState(d.GetStateDB())
	if err != nil {
		return nil, err
	}
	if tx.From != state.Admin {
		return nil, dty.ErrDrandUnauthorized
	}
	if err := drivers.CheckAddress(payload.To); err != nil {
		return nil, err
	}
	coins := types.NewCoins(payload.Coins...)
	if err := coins.Validate(); err != nil || len(coins) == 0 {
		return nil, dty.ErrDrandInvalidParam
	}
	receipt := types.NewReceipt()
	receipt.Logs = append(receipt.Logs, &types.ReceiptLog{
		Ty:  dty.TyLogDrandWithdraw,
		Log: types.Encode(&dty.ReceiptDrandWithdraw{To: payload.To, Coins: coins}),
	})
	receipt.AddMsg(drivers.BankSendMsg(payload.To, coins))
	return receipt, nil
}
