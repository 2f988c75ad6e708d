// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	dbm "github.com/33cn/raffle/common/db"
	dty "github.com/33cn/raffle/plugin/dapp/drand/types"
	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	drivers "github.com/33cn/raffle/system/dapp"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
)

//一笔交易的执行环境, 修改先写入 db, 同时收集 kv, 日志和子消息
type raffleAction struct {
	db        dbm.KV
	querier   drivers.Querier
	fromaddr  string
	execaddr  string
	blocktime int64
	txhash    []byte
	funds     types.Coins
	payload   []byte

	kvs  []*types.KeyValue
	logs []*types.ReceiptLog
	msgs []*types.SubMsg
}

func newRaffleAction(r *Raffle, tx *types.Transaction) *raffleAction {
	return &raffleAction{
		db:        r.GetStateDB(),
		querier:   r.GetQuerier(),
		fromaddr:  tx.From,
		execaddr:  r.GetExecAddress(),
		blocktime: r.GetBlockTime(),
		txhash:    tx.Hash(),
		funds:     tx.Funds,
		payload:   tx.Payload,
	}
}

func (action *raffleAction) set(key, value []byte) error {
	if err := action.db.Set(key, value); err != nil {
		return err
	}
	action.kvs = append(action.kvs, &types.KeyValue{Key: key, Value: value})
	return nil
}

func (action *raffleAction) addLog(ty int32, log types.Message) {
	action.logs = append(action.logs, &types.ReceiptLog{Ty: ty, Log: types.Encode(log)})
}

func (action *raffleAction) addMsg(msg *types.SubMsg) {
	if msg != nil {
		action.msgs = append(action.msgs, msg)
	}
}

func (action *raffleAction) receipt() *types.Receipt {
	return &types.Receipt{Ty: types.ExecOk, KV: action.kvs, Logs: action.logs, Msgs: action.msgs}
}

func loadConfig(db dbm.KV) (*rty.Config, error) {
	value, err := db.Get(calcConfigKey())
	if err != nil {
		if err == types.ErrNotFound {
			return nil, rty.ErrRaffleNotInitialized
		}
		return nil, err
	}
	var cfg rty.Config
	if err := types.Decode(value, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (action *raffleAction) saveConfig(cfg *rty.Config) error {
	return action.set(calcConfigKey(), types.Encode(cfg))
}

func findRaffle(db dbm.KV, id uint64) (*rty.RaffleInfo, error) {
	value, err := db.Get(calcRaffleKey(id))
	if err != nil {
		if err == types.ErrNotFound {
			return nil, errors.Wrapf(rty.ErrRaffleNotFound, "raffle %d", id)
		}
		return nil, err
	}
	var raffle rty.RaffleInfo
	if err := types.Decode(value, &raffle); err != nil {
		return nil, err
	}
	return &raffle, nil
}

func (action *raffleAction) saveRaffle(raffle *rty.RaffleInfo) error {
	return action.set(calcRaffleKey(raffle.RaffleID), types.Encode(raffle))
}

func getTicketOwner(db dbm.KV, id uint64, index uint32) (string, error) {
	value, err := db.Get(calcTicketKey(id, index))
	if err == types.ErrNotFound {
		return "", errors.Wrapf(rty.ErrContractBug, "ticket %d of raffle %d not found", index, id)
	}
	if err != nil {
		return "", errors.Wrapf(err, "ticket %d of raffle %d", index, id)
	}
	return string(value), nil
}

func getTicketCount(db dbm.KV, id uint64, addr string) (uint32, error) {
	value, err := db.Get(calcTicketCountKey(id, addr))
	if err != nil {
		if err == types.ErrNotFound {
			return 0, nil
		}
		return 0, err
	}
	var count rty.ReplyTicketCount
	if err := types.Decode(value, &count); err != nil {
		return 0, err
	}
	return count.Count, nil
}

func checkAddress(addr string) error {
	if err := drivers.CheckAddress(addr); err != nil {
		return errors.Wrapf(rty.ErrInvalidInput, "address %s: %v", addr, err)
	}
	return nil
}

//ValidateConfig 初始化和修改配置后都要检查
func ValidateConfig(cfg *rty.Config) error {
	if len(cfg.Name) < rty.MinNameLength || len(cfg.Name) > rty.MaxNameLength {
		return rty.ErrInvalidName
	}
	if err := checkAddress(cfg.Owner); err != nil {
		return err
	}
	if err := checkAddress(cfg.FeeAddr); err != nil {
		return err
	}
	if _, err := ParseFeeRate(cfg.RaffleFee); err != nil {
		return err
	}
	if cfg.MinimumRaffleDuration == 0 || cfg.MinimumRaffleTimeout == 0 || cfg.MaxParticipantNumber == 0 {
		return errors.Wrap(rty.ErrInvalidInput, "minimum duration, timeout and max participant number must be positive")
	}
	for _, c := range cfg.CreationCoins {
		if err := c.Validate(); err != nil {
			return errors.Wrapf(rty.ErrInvalidInput, "creation coin %s: %v", c, err)
		}
	}
	if _, err := drivers.LoadDriver(cfg.Verifier); err != nil {
		return errors.Wrapf(rty.ErrVerifierNotFound, "verifier %s", cfg.Verifier)
	}
	if len(cfg.DrandPublicKey) == 0 {
		return errors.Wrap(rty.ErrInvalidInput, "empty drand public key")
	}
	if cfg.RandomnessFee != nil {
		if err := cfg.RandomnessFee.Validate(); err != nil {
			return errors.Wrapf(rty.ErrInvalidInput, "randomness fee %s: %v", cfg.RandomnessFee, err)
		}
	}
	if cfg.DrandGenesis < 0 || cfg.DrandPeriod < 0 {
		return errors.Wrap(rty.ErrInvalidInput, "negative drand timing")
	}
	return nil
}

func (action *raffleAction) instantiate(payload *rty.RaffleInstantiate) (*types.Receipt, error) {
	_, err := loadConfig(action.db)
	if err == nil {
		return nil, rty.ErrAlreadyInstantiated
	}
	if err != rty.ErrRaffleNotInitialized {
		return nil, err
	}
	cfg := &rty.Config{
		Name:                  payload.Name,
		Owner:                 payload.Owner,
		FeeAddr:               payload.FeeAddr,
		MinimumRaffleDuration: payload.MinimumRaffleDuration,
		MinimumRaffleTimeout:  payload.MinimumRaffleTimeout,
		MaxParticipantNumber:  payload.MaxParticipantNumber,
		RaffleFee:             payload.RaffleFee,
		CreationCoins:         payload.CreationCoins,
		Verifier:              payload.Verifier,
		DrandPublicKey:        payload.DrandPublicKey,
		RandomnessFee:         payload.RandomnessFee,
		DrandGenesis:          payload.DrandGenesis,
		DrandPeriod:           payload.DrandPeriod,
	}
	if cfg.Owner == "" {
		cfg.Owner = action.fromaddr
	}
	if cfg.FeeAddr == "" {
		cfg.FeeAddr = cfg.Owner
	}
	if cfg.Verifier == "" {
		cfg.Verifier = dty.DrandX
	}
	if cfg.RaffleFee == "" {
		cfg.RaffleFee = "0"
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if err := action.saveConfig(cfg); err != nil {
		return nil, err
	}
	action.addLog(rty.TyLogRaffleInstantiate, &rty.ReceiptRaffleConfig{Current: cfg})
	rlog.Info("Instantiate", "name", cfg.Name, "owner", cfg.Owner, "verifier", cfg.Verifier, "fee", cfg.RaffleFee)
	return action.receipt(), nil
}

func (action *raffleAction) loadAdminConfig() (*rty.Config, error) {
	cfg, err := loadConfig(action.db)
	if err != nil {
		return nil, err
	}
	if cfg.Owner != action.fromaddr {
		return nil, errors.Wrapf(rty.ErrUnauthorized, "%s is not the admin", action.fromaddr)
	}
	return cfg, nil
}

func (action *raffleAction) updateConfig(payload *rty.RaffleUpdateConfig) (*types.Receipt, error) {
	cfg, err := action.loadAdminConfig()
	if err != nil {
		return nil, err
	}
	prev := *cfg
	if payload.Name != nil {
		cfg.Name = *payload.Name
	}
	if payload.Owner != nil {
		cfg.Owner = *payload.Owner
	}
	if payload.FeeAddr != nil {
		cfg.FeeAddr = *payload.FeeAddr
	}
	if payload.MinimumRaffleDuration != nil {
		cfg.MinimumRaffleDuration = *payload.MinimumRaffleDuration
	}
	if payload.MinimumRaffleTimeout != nil {
		cfg.MinimumRaffleTimeout = *payload.MinimumRaffleTimeout
	}
	if payload.MaxParticipantNumber != nil {
		cfg.MaxParticipantNumber = *payload.MaxParticipantNumber
	}
	if payload.RaffleFee != nil {
		cfg.RaffleFee = *payload.RaffleFee
	}
	if payload.CreationCoins != nil {
		cfg.CreationCoins = payload.CreationCoins.Coins
	}
	if payload.Verifier != nil {
		cfg.Verifier = *payload.Verifier
	}
	if len(payload.DrandPublicKey) > 0 {
		cfg.DrandPublicKey = payload.DrandPublicKey
	}
	if payload.RandomnessFee != nil {
		cfg.RandomnessFee = payload.RandomnessFee
	}
	if payload.DrandGenesis != nil {
		cfg.DrandGenesis = *payload.DrandGenesis
	}
	if payload.DrandPeriod != nil {
		cfg.DrandPeriod = *payload.DrandPeriod
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if err := action.saveConfig(cfg); err != nil {
		return nil, err
	}
	action.addLog(rty.TyLogRaffleUpdateConfig, &rty.ReceiptRaffleConfig{Prev: &prev, Current: cfg})
	rlog.Info("UpdateConfig", "owner", cfg.Owner, "feeAddr", cfg.FeeAddr, "fee", cfg.RaffleFee)
	return action.receipt(), nil
}

func (action *raffleAction) toggleLock(payload *rty.RaffleToggleLock) (*types.Receipt, error) {
	cfg, err := action.loadAdminConfig()
	if err != nil {
		return nil, err
	}
	prev := *cfg
	cfg.Locked = payload.Lock
	if err := action.saveConfig(cfg); err != nil {
		return nil, err
	}
	action.addLog(rty.TyLogRaffleToggleLock, &rty.ReceiptRaffleConfig{Prev: &prev, Current: cfg})
	rlog.Info("ToggleLock", "locked", cfg.Locked)
	return action.receipt(), nil
}

//fundRandomness 只有管理员可以充值, 资金已经转入合约地址
func (action *raffleAction) fundRandomness(payload *rty.RaffleFundRandomness) (*types.Receipt, error) {
	cfg, err := action.loadAdminConfig()
	if err != nil {
		return nil, err
	}
	if action.funds.IsZero() {
		return nil, errors.Wrap(rty.ErrInvalidAmount, "no funds attached")
	}
	prev := *cfg
	cfg.RandomnessPool = types.Coins(cfg.RandomnessPool).Add(action.funds...)
	if err := action.saveConfig(cfg); err != nil {
		return nil, err
	}
	action.addLog(rty.TyLogRaffleFundRandomness, &rty.ReceiptRaffleConfig{Prev: &prev, Current: cfg})
	rlog.Info("FundRandomness", "funds", action.funds, "pool", types.Coins(cfg.RandomnessPool))
	return action.receipt(), nil
}
