// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"math"

	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
)

func sat32(x uint64) uint32 {
	if x > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(x)
}

//checkTicketLimits 先检查单个地址的上限, 再检查总票数
func checkTicketLimits(cfg *rty.Config, raffle *rty.RaffleInfo, before, count uint32) error {
	userAfter := uint64(before) + uint64(count)
	if max := raffle.RaffleOptions.MaxTicketPerAddress; max > 0 && userAfter > uint64(max) {
		return &rty.TooMuchTicketsForUserError{Max: max, NbBefore: before, NbAfter: sat32(userAfter)}
	}
	after := uint64(raffle.NumberOfTickets) + uint64(count)
	if max := raffle.RaffleOptions.MaxParticipantNumber; max > 0 && after > uint64(max) {
		return &rty.TooMuchTicketsError{Max: max, NbBefore: raffle.NumberOfTickets, NbAfter: sat32(after)}
	}
	if max := cfg.MaxParticipantNumber; max > 0 && after > uint64(max) {
		return &rty.TooMuchTicketsError{Max: max, NbBefore: raffle.NumberOfTickets, NbAfter: sat32(after)}
	}
	if after > math.MaxUint32 {
		return &rty.TooMuchTicketsError{Max: math.MaxUint32, NbBefore: raffle.NumberOfTickets, NbAfter: sat32(after)}
	}
	return nil
}

func (action *raffleAction) buyTicket(payload *rty.RaffleBuyTicket) (*types.Receipt, error) {
	cfg, err := loadConfig(action.db)
	if err != nil {
		return nil, err
	}
	if cfg.Locked {
		return nil, rty.ErrContractLocked
	}
	raffle, err := findRaffle(action.db, payload.RaffleID)
	if err != nil {
		return nil, err
	}
	if state := RaffleState(cfg, raffle, action.blocktime); state != rty.StateStarted {
		return nil, errors.Wrapf(rty.ErrCantBuyTickets, "raffle %d is %s", raffle.RaffleID, state)
	}
	if payload.TicketCount == 0 {
		return nil, rty.ErrNoTicketsBought
	}
	cost, err := TicketCost(raffle.RaffleTicketPrice.Coin, payload.TicketCount)
	if err != nil {
		return nil, err
	}
	if !payload.SentAssets.Equal(rty.NewCoinAsset(cost.Denom, cost.Amount)) {
		return nil, errors.Wrapf(rty.ErrPaymentNotSufficient, "declared %s, need %s", payload.SentAssets, cost)
	}
	if !action.funds.Equal(types.Coins{cost}) {
		return nil, errors.Wrapf(rty.ErrPaymentNotSufficient, "sent %s, need %s", action.funds, cost)
	}
	before, err := getTicketCount(action.db, raffle.RaffleID, action.fromaddr)
	if err != nil {
		return nil, err
	}
	if err := checkTicketLimits(cfg, raffle, before, payload.TicketCount); err != nil {
		return nil, err
	}

	first := raffle.NumberOfTickets
	for i := uint32(0); i < payload.TicketCount; i++ {
		if err := action.set(calcTicketKey(raffle.RaffleID, first+i), []byte(action.fromaddr)); err != nil {
			return nil, err
		}
	}
	count := &rty.ReplyTicketCount{Count: before + payload.TicketCount}
	if err := action.set(calcTicketCountKey(raffle.RaffleID, action.fromaddr), types.Encode(count)); err != nil {
		return nil, err
	}
	raffle.NumberOfTickets += payload.TicketCount
	raffle.AccumulatedFees, err = addAmount(raffle.AccumulatedFees, cost.Amount)
	if err != nil {
		return nil, err
	}
	if err := action.saveRaffle(raffle); err != nil {
		return nil, err
	}
	action.addLog(rty.TyLogRaffleBuyTicket, &rty.ReceiptRaffleTicket{
		RaffleID:   raffle.RaffleID,
		Buyer:      action.fromaddr,
		Count:      payload.TicketCount,
		FirstIndex: first,
		Amount:     cost,
	})
	ticketCounter.Inc(int64(payload.TicketCount))
	rlog.Debug("BuyTicket", "id", raffle.RaffleID, "buyer", action.fromaddr, "count", payload.TicketCount, "total", raffle.NumberOfTickets)
	return action.receipt(), nil
}
