// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"math"
	"sort"

	dty "github.com/33cn/raffle/plugin/dapp/drand/types"
	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	drivers "github.com/33cn/raffle/system/dapp"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
)

//RoundTime drand 某一轮的发布时间, 溢出时返回 false
func RoundTime(genesis, period int64, round uint64) (int64, bool) {
	if period <= 0 || round == 0 {
		return genesis, true
	}
	elapsed := round - 1
	if elapsed > uint64(math.MaxInt64-genesis)/uint64(period) {
		return 0, false
	}
	return genesis + int64(elapsed)*period, true
}

func (action *raffleAction) updateRandomness(payload *rty.RaffleUpdateRandomness) (*types.Receipt, error) {
	cfg, err := loadConfig(action.db)
	if err != nil {
		return nil, err
	}
	raffle, err := findRaffle(action.db, payload.RaffleID)
	if err != nil {
		return nil, err
	}
	switch state := RaffleState(cfg, raffle, action.blocktime); state {
	case rty.StateClosed:
	case rty.StateFinished:
		return nil, rty.ErrImmutableRandomness
	default:
		return nil, &rty.WrongStateForRandomnessError{Status: state}
	}
	beacon := payload.Randomness
	if beacon.Round == 0 || len(beacon.Signature) == 0 {
		return nil, errors.Wrap(rty.ErrInvalidInput, "empty beacon")
	}
	if raffle.HasRandomness() && beacon.Round <= raffle.Randomness.RandomnessRound {
		return nil, &rty.RandomnessNotAcceptedError{CurrentRound: raffle.Randomness.RandomnessRound}
	}
	if cfg.DrandPeriod > 0 {
		published, ok := RoundTime(cfg.DrandGenesis, cfg.DrandPeriod, beacon.Round)
		if ok && published < raffle.EndTimestamp() {
			return nil, errors.Wrapf(rty.ErrRandomnessNotAccepted, "round %d published at %d, raffle ends at %d", beacon.Round, published, raffle.EndTimestamp())
		}
	}
	verify := &dty.DrandAction{
		Ty: dty.DrandActionVerify,
		Verify: &dty.DrandVerify{
			PublicKey:         cfg.DrandPublicKey,
			Round:             beacon.Round,
			PreviousSignature: beacon.PreviousSignature,
			Signature:         beacon.Signature,
			RaffleID:          raffle.RaffleID,
			Owner:             action.fromaddr,
		},
	}
	//验证费用从费用池扣除, 不能动用托管资金
	var fee types.Coins
	if cfg.RandomnessFee != nil && cfg.RandomnessFee.Amount > 0 {
		fee = types.Coins{cfg.RandomnessFee}
		pool, ok := types.Coins(cfg.RandomnessPool).SafeSub(fee)
		if !ok {
			return nil, errors.Wrapf(types.ErrNoBalance, "randomness pool %s, fee %s", types.Coins(cfg.RandomnessPool), cfg.RandomnessFee)
		}
		cfg.RandomnessPool = pool
		if err := action.saveConfig(cfg); err != nil {
			return nil, err
		}
	}
	action.addMsg(drivers.NewReplyMsg(raffle.RaffleID, cfg.Verifier, verify, fee))
	action.addLog(rty.TyLogRaffleRandomnessRequest, &rty.ReceiptRaffleRandomness{RaffleID: raffle.RaffleID, Round: beacon.Round, Sender: action.fromaddr})
	return action.receipt(), nil
}

//randomnessReply 验证通过后保存随机数, 签名错误时整个交易失败
func (action *raffleAction) randomnessReply(reply *types.Reply) (*types.Receipt, error) {
	cfg, err := loadConfig(action.db)
	if err != nil {
		return nil, err
	}
	if reply.Execer != cfg.Verifier {
		return nil, errors.Wrapf(rty.ErrParseReply, "reply from %s", reply.Execer)
	}
	var result dty.VerifyResult
	if err := types.Decode(reply.Data, &result); err != nil {
		return nil, errors.Wrapf(rty.ErrParseReply, "decode verify result: %v", err)
	}
	if result.RaffleID != reply.ID {
		return nil, errors.Wrapf(rty.ErrParseReply, "result for raffle %d, reply id %d", result.RaffleID, reply.ID)
	}
	if !result.Verified() {
		rejectedCounter.Inc(1)
		return nil, errors.Wrapf(rty.ErrInvalidRandomness, "round %d", result.Round)
	}
	var req rty.RaffleAction
	if err := types.Decode(action.payload, &req); err != nil {
		return nil, errors.Wrapf(rty.ErrParseReply, "decode request: %v", err)
	}
	update := req.UpdateRandomness
	if update == nil || update.Randomness == nil || update.RaffleID != reply.ID || update.Randomness.Round != result.Round {
		return nil, errors.Wrap(rty.ErrParseReply, "reply does not match the request")
	}
	raffle, err := findRaffle(action.db, reply.ID)
	if err != nil {
		return nil, err
	}
	if raffle.HasRandomness() && result.Round <= raffle.Randomness.RandomnessRound {
		return nil, errors.Wrapf(rty.ErrRandomnessAlreadyProvided, "round %d, current %d", result.Round, raffle.Randomness.RandomnessRound)
	}
	raffle.Randomness = &rty.RandomnessRecord{
		Randomness:       result.Randomness,
		RandomnessRound:  result.Round,
		RandomnessOwner:  result.Owner,
		Signature:        update.Randomness.Signature,
		UpdatedBlockTime: action.blocktime,
	}
	if err := action.saveRaffle(raffle); err != nil {
		return nil, err
	}
	action.addLog(rty.TyLogRaffleRandomness, &rty.ReceiptRaffleRandomness{RaffleID: raffle.RaffleID, Round: result.Round, Sender: result.Owner})
	randomnessCounter.Inc(1)
	rlog.Info("UpdateRandomness", "id", raffle.RaffleID, "round", result.Round, "provider", result.Owner)
	return action.receipt(), nil
}

//refund 票数不足时按购买记录退款, 地址排序保证子消息顺序确定
func (action *raffleAction) refund(raffle *rty.RaffleInfo) error {
	counts := make(map[string]uint32)
	for i := uint32(0); i < raffle.NumberOfTickets; i++ {
		buyer, err := getTicketOwner(action.db, raffle.RaffleID, i)
		if err != nil {
			return err
		}
		counts[buyer]++
	}
	buyers := make([]string, 0, len(counts))
	for buyer := range counts {
		buyers = append(buyers, buyer)
	}
	sort.Strings(buyers)
	for _, buyer := range buyers {
		cost, err := TicketCost(raffle.RaffleTicketPrice.Coin, counts[buyer])
		if err != nil {
			return err
		}
		action.addMsg(drivers.BankSendMsg(buyer, types.Coins{cost}))
	}
	return nil
}

func (action *raffleAction) returnAssets(raffle *rty.RaffleInfo, recipients []string) error {
	for j, asset := range raffle.Assets {
		msg, err := transferAssetMsg(asset, recipients[j%len(recipients)])
		if err != nil {
			return err
		}
		action.addMsg(msg)
	}
	return nil
}

//claim 锁定时也可以开奖
func (action *raffleAction) claim(payload *rty.RaffleClaim) (*types.Receipt, error) {
	cfg, err := loadConfig(action.db)
	if err != nil {
		return nil, err
	}
	raffle, err := findRaffle(action.db, payload.RaffleID)
	if err != nil {
		return nil, err
	}
	if state := RaffleState(cfg, raffle, action.blocktime); state != rty.StateFinished {
		return nil, &rty.WrongStateForClaimError{Status: state}
	}
	rate, err := ParseFeeRate(cfg.RaffleFee)
	if err != nil {
		return nil, err
	}
	log := &rty.ReceiptRaffleClaim{RaffleID: raffle.RaffleID}
	opts := raffle.RaffleOptions
	switch {
	case raffle.NumberOfTickets == 0:
		raffle.Winners = []string{raffle.Owner}
		if err := action.returnAssets(raffle, raffle.Winners); err != nil {
			return nil, err
		}
	case opts.MinTicketNumber > 0 && raffle.NumberOfTickets < opts.MinTicketNumber:
		if err := action.returnAssets(raffle, []string{raffle.Owner}); err != nil {
			return nil, err
		}
		if err := action.refund(raffle); err != nil {
			return nil, err
		}
		log.Refunded = true
	default:
		if !raffle.HasRandomness() {
			return nil, errors.Wrapf(rty.ErrContractBug, "raffle %d finished without randomness", raffle.RaffleID)
		}
		indices, err := SelectWinners(raffle.Randomness.Randomness, raffle.NumberOfTickets, opts.NumberOfWinners)
		if err != nil {
			return nil, err
		}
		winners := make([]string, 0, len(indices))
		for _, index := range indices {
			owner, err := getTicketOwner(action.db, raffle.RaffleID, index)
			if err != nil {
				return nil, err
			}
			winners = append(winners, owner)
		}
		raffle.Winners = winners
		raffle.WinningTickets = indices
		if err := action.returnAssets(raffle, winners); err != nil {
			return nil, err
		}
		denom := raffle.RaffleTicketPrice.Coin.Denom
		fee, rest := SplitFee(raffle.AccumulatedFees, rate)
		action.addMsg(drivers.BankSendMsg(cfg.FeeAddr, types.Coins{types.NewCoin(denom, fee)}))
		action.addMsg(drivers.BankSendMsg(raffle.Owner, types.Coins{types.NewCoin(denom, rest)}))
		log.Fee, log.Owner = fee, rest
	}
	raffle.IsClaimed = true
	if err := action.saveRaffle(raffle); err != nil {
		return nil, err
	}
	log.Winners = raffle.Winners
	action.addLog(rty.TyLogRaffleClaim, log)
	claimedCounter.Inc(1)
	rlog.Info("ClaimRaffle", "id", raffle.RaffleID, "winners", raffle.Winners, "fee", log.Fee, "refunded", log.Refunded)
	return action.receipt(), nil
}
