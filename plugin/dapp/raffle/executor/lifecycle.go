// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"math"

	nty "github.com/33cn/raffle/plugin/dapp/nft/types"
	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	drivers "github.com/33cn/raffle/system/dapp"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
)

//checkAssets 奖品不能为空, 同一个 NFT 不能出现两次, 相同的币可以
func checkAssets(assets []*rty.AssetInfo) error {
	if len(assets) == 0 {
		return rty.ErrNoAssets
	}
	seen := make(map[string]bool, len(assets))
	for _, asset := range assets {
		if err := asset.Validate(); err != nil {
			return errors.Wrapf(err, "asset %s", asset)
		}
		if asset.IsCoin() {
			continue
		}
		key, err := asset.Key()
		if err != nil {
			return err
		}
		if seen[key] {
			return errors.Wrapf(rty.ErrAssetMismatch, "duplicate asset %s", asset)
		}
		seen[key] = true
	}
	return nil
}

//checkTicketPrice 票价只能是非零的原生币
func checkTicketPrice(price *rty.AssetInfo) error {
	if price == nil {
		return rty.ErrWrongFundsType
	}
	switch price.Ty {
	case rty.AssetCoin:
		if price.Coin == nil {
			return rty.ErrWrongFundsType
		}
		if price.Coin.Amount <= 0 {
			return rty.ErrInvalidAmount
		}
		return price.Validate()
	case rty.AssetCw721, rty.AssetSg721:
		return rty.ErrWrongFundsType
	}
	return rty.ErrWrongAssetType
}

//checkOptions 补全默认值并检查抽奖参数, 0 表示使用默认值
func checkOptions(cfg *rty.Config, in *rty.RaffleOptions, assetCount int, now int64) (*rty.RaffleOptions, error) {
	opts := &rty.RaffleOptions{}
	if in != nil {
		*opts = *in
	}
	if opts.RaffleStartTimestamp == 0 {
		opts.RaffleStartTimestamp = now
	}
	if opts.RaffleStartTimestamp < now {
		return nil, errors.Wrapf(rty.ErrRaffleAlreadyStarted, "start %d before block time %d", opts.RaffleStartTimestamp, now)
	}
	if opts.RaffleDuration == 0 {
		opts.RaffleDuration = cfg.MinimumRaffleDuration
	}
	if opts.RaffleDuration < cfg.MinimumRaffleDuration {
		return nil, errors.Wrapf(rty.ErrInvalidInput, "duration %d below minimum %d", opts.RaffleDuration, cfg.MinimumRaffleDuration)
	}
	if opts.RaffleTimeout == 0 {
		opts.RaffleTimeout = cfg.MinimumRaffleTimeout
	}
	if opts.RaffleTimeout < cfg.MinimumRaffleTimeout {
		return nil, errors.Wrapf(rty.ErrInvalidInput, "timeout %d below minimum %d", opts.RaffleTimeout, cfg.MinimumRaffleTimeout)
	}
	//start + duration + timeout 不能超出 int64
	if opts.RaffleDuration > uint64(math.MaxInt64-opts.RaffleStartTimestamp) {
		return nil, errors.Wrapf(rty.ErrInvalidInput, "duration %d out of range", opts.RaffleDuration)
	}
	if opts.RaffleTimeout > uint64(math.MaxInt64-opts.RaffleStartTimestamp)-opts.RaffleDuration {
		return nil, errors.Wrapf(rty.ErrInvalidInput, "timeout %d out of range", opts.RaffleTimeout)
	}
	if len(opts.Comment) > rty.MaxCommentLength {
		return nil, rty.ErrCommentTooLarge
	}
	if opts.MaxParticipantNumber == 0 {
		opts.MaxParticipantNumber = cfg.MaxParticipantNumber
	}
	if opts.MaxParticipantNumber > cfg.MaxParticipantNumber {
		return nil, errors.Wrapf(rty.ErrInvalidInput, "max participant number %d above %d", opts.MaxParticipantNumber, cfg.MaxParticipantNumber)
	}
	if int(opts.RafflePreview) >= assetCount {
		return nil, errors.Wrapf(rty.ErrInvalidInput, "preview %d out of %d assets", opts.RafflePreview, assetCount)
	}
	if opts.NumberOfWinners == 0 {
		opts.NumberOfWinners = rty.DefaultWinnerCount
	}
	if int(opts.NumberOfWinners) > assetCount {
		return nil, errors.Wrapf(rty.ErrInvalidInput, "%d winners for %d assets", opts.NumberOfWinners, assetCount)
	}
	if opts.MinTicketNumber > opts.MaxParticipantNumber {
		return nil, errors.Wrapf(rty.ErrInvalidInput, "min ticket number %d above max %d", opts.MinTicketNumber, opts.MaxParticipantNumber)
	}
	return opts, nil
}

//checkCreationFee 去掉奖品后剩下的资金必须正好是白名单里的一个币
func checkCreationFee(cfg *rty.Config, rest types.Coins) (types.Coins, error) {
	rest = types.NewCoins(rest...)
	if len(cfg.CreationCoins) == 0 {
		if len(rest) != 0 {
			return nil, errors.Wrapf(rty.ErrInvalidAmount, "unexpected creation fee %s", rest)
		}
		return nil, nil
	}
	if len(rest) != 1 {
		return nil, errors.Wrapf(rty.ErrInvalidAmount, "creation fee %s, want one of %s", rest, types.Coins(cfg.CreationCoins))
	}
	for _, c := range cfg.CreationCoins {
		if c.Equal(rest[0]) {
			return rest, nil
		}
	}
	return nil, errors.Wrapf(rty.ErrInvalidAmount, "creation fee %s, want one of %s", rest, types.Coins(cfg.CreationCoins))
}

func coinAssets(assets []*rty.AssetInfo) types.Coins {
	var coins []*types.Coin
	for _, asset := range assets {
		if asset.IsCoin() {
			coins = append(coins, asset.Coin)
		}
	}
	return types.NewCoins(coins...)
}

//transferAssetMsg 把一个奖品从合约转给 recipient
func transferAssetMsg(asset *rty.AssetInfo, recipient string) (*types.SubMsg, error) {
	switch asset.Ty {
	case rty.AssetCoin:
		return drivers.BankSendMsg(recipient, types.Coins{asset.Coin}), nil
	case rty.AssetCw721, rty.AssetSg721:
		execer, err := asset.NftExecer()
		if err != nil {
			return nil, err
		}
		nft := asset.Nft()
		return drivers.NewSubMsg(execer, nty.NewTransferAction(nft.Address, nft.TokenID, recipient), nil), nil
	}
	return nil, rty.ErrWrongAssetType
}

//custodyNft 发送者必须拥有这个 NFT 并且授权给合约
func (action *raffleAction) custodyNft(asset *rty.AssetInfo) error {
	execer, err := asset.NftExecer()
	if err != nil {
		return err
	}
	nft := asset.Nft()
	msg, err := action.querier.QueryExec(execer, nty.FuncNameOwnerOf, &nty.ReqOwnerOf{Collection: nft.Address, TokenID: nft.TokenID})
	if err != nil {
		return errors.Wrapf(err, "owner of %s", asset)
	}
	owner, ok := msg.(*nty.ReplyOwnerOf)
	if !ok {
		return types.ErrTypeAssert
	}
	if owner.Owner != action.fromaddr {
		return errors.Wrapf(rty.ErrSenderNotOwner, "%s owned by %s", asset, owner.Owner)
	}
	approved := false
	for _, spender := range owner.Approvals {
		if spender == action.execaddr {
			approved = true
			break
		}
	}
	if !approved {
		return errors.Wrapf(rty.ErrNotApproved, "%s", asset)
	}
	transfer, err := transferAssetMsg(asset, action.execaddr)
	if err != nil {
		return err
	}
	action.addMsg(transfer)
	return nil
}

func (action *raffleAction) create(payload *rty.RaffleCreate) (*types.Receipt, error) {
	cfg, err := loadConfig(action.db)
	if err != nil {
		return nil, err
	}
	if cfg.Locked {
		return nil, rty.ErrContractLocked
	}
	owner := payload.Owner
	if owner == "" {
		owner = action.fromaddr
	}
	if err := checkAddress(owner); err != nil {
		return nil, err
	}
	if err := checkAssets(payload.Assets); err != nil {
		return nil, err
	}
	if err := checkTicketPrice(payload.RaffleTicketPrice); err != nil {
		return nil, err
	}
	opts, err := checkOptions(cfg, payload.RaffleOptions, len(payload.Assets), action.blocktime)
	if err != nil {
		return nil, err
	}
	prizes := coinAssets(payload.Assets)
	rest, ok := action.funds.SafeSub(prizes)
	if !ok {
		return nil, errors.Wrapf(rty.ErrAssetMismatch, "sent %s, coin assets %s", action.funds, prizes)
	}
	fee, err := checkCreationFee(cfg, rest)
	if err != nil {
		return nil, err
	}
	for _, asset := range payload.Assets {
		if asset.IsCoin() {
			continue
		}
		if err := action.custodyNft(asset); err != nil {
			return nil, err
		}
	}
	action.addMsg(drivers.BankSendMsg(cfg.FeeAddr, fee))

	cfg.LastRaffleID++
	if err := action.saveConfig(cfg); err != nil {
		return nil, err
	}
	raffle := &rty.RaffleInfo{
		RaffleID:          cfg.LastRaffleID,
		Owner:             owner,
		Assets:            payload.Assets,
		RaffleTicketPrice: payload.RaffleTicketPrice,
		RaffleOptions:     opts,
		CreatedBlockTime:  action.blocktime,
	}
	if err := action.saveRaffle(raffle); err != nil {
		return nil, err
	}
	action.addLog(rty.TyLogRaffleCreate, &rty.ReceiptRaffleCreate{RaffleID: raffle.RaffleID, Owner: owner, Assets: raffle.Assets, Fee: fee})
	createdCounter.Inc(1)
	rlog.Info("CreateRaffle", "id", raffle.RaffleID, "owner", owner, "assets", len(raffle.Assets), "price", raffle.RaffleTicketPrice, "start", opts.RaffleStartTimestamp)
	return action.receipt(), nil
}

func (action *raffleAction) modify(payload *rty.RaffleModify) (*types.Receipt, error) {
	cfg, err := loadConfig(action.db)
	if err != nil {
		return nil, err
	}
	raffle, err := findRaffle(action.db, payload.RaffleID)
	if err != nil {
		return nil, err
	}
	if raffle.Owner != action.fromaddr {
		return nil, errors.Wrapf(rty.ErrUnauthorized, "%s is not the owner of raffle %d", action.fromaddr, raffle.RaffleID)
	}
	if state := RaffleState(cfg, raffle, action.blocktime); state != rty.StateCreated {
		return nil, errors.Wrapf(rty.ErrRaffleAlreadyStarted, "raffle %d is %s", raffle.RaffleID, state)
	}
	opts, err := checkOptions(cfg, payload.RaffleOptions, len(raffle.Assets), action.blocktime)
	if err != nil {
		return nil, err
	}
	if payload.RaffleTicketPrice != nil {
		if err := checkTicketPrice(payload.RaffleTicketPrice); err != nil {
			return nil, err
		}
		raffle.RaffleTicketPrice = payload.RaffleTicketPrice
	}
	raffle.RaffleOptions = opts
	if err := action.saveRaffle(raffle); err != nil {
		return nil, err
	}
	action.addLog(rty.TyLogRaffleModify, &rty.ReceiptRaffleUpdate{RaffleID: raffle.RaffleID, Owner: raffle.Owner, Sender: action.fromaddr})
	rlog.Info("ModifyRaffle", "id", raffle.RaffleID, "price", raffle.RaffleTicketPrice, "start", opts.RaffleStartTimestamp)
	return action.receipt(), nil
}

//cancel 锁定时也可以取消, 奖品退回创建者
func (action *raffleAction) cancel(payload *rty.RaffleCancel) (*types.Receipt, error) {
	cfg, err := loadConfig(action.db)
	if err != nil {
		return nil, err
	}
	raffle, err := findRaffle(action.db, payload.RaffleID)
	if err != nil {
		return nil, err
	}
	if raffle.Owner != action.fromaddr && cfg.Owner != action.fromaddr {
		return nil, errors.Wrapf(rty.ErrUnauthorized, "%s can't cancel raffle %d", action.fromaddr, raffle.RaffleID)
	}
	state := RaffleState(cfg, raffle, action.blocktime)
	if state != rty.StateCreated && state != rty.StateStarted {
		return nil, &rty.WrongStateForCancelError{Status: state}
	}
	if raffle.NumberOfTickets > 0 {
		return nil, errors.Wrapf(&rty.WrongStateForCancelError{Status: state}, "%d tickets sold", raffle.NumberOfTickets)
	}
	for _, asset := range raffle.Assets {
		msg, err := transferAssetMsg(asset, raffle.Owner)
		if err != nil {
			return nil, err
		}
		action.addMsg(msg)
	}
	raffle.IsCancelled = true
	if err := action.saveRaffle(raffle); err != nil {
		return nil, err
	}
	action.addLog(rty.TyLogRaffleCancel, &rty.ReceiptRaffleUpdate{RaffleID: raffle.RaffleID, Owner: raffle.Owner, Sender: action.fromaddr})
	cancelledCounter.Inc(1)
	rlog.Info("CancelRaffle", "id", raffle.RaffleID, "sender", action.fromaddr)
	return action.receipt(), nil
}
