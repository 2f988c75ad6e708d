// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"math"
	"strconv"

	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	drivers "github.com/33cn/raffle/system/dapp"
	"github.com/33cn/raffle/types"
)

//Query 查询
func (r *Raffle) Query(funcName string, params []byte) (types.Message, error) {
	switch funcName {
	case rty.FuncNameConfig:
		return r.Query_Config(&rty.ReqConfig{})
	case rty.FuncNameRaffleInfo:
		var req rty.ReqRaffleInfo
		if err := types.Decode(params, &req); err != nil {
			return nil, err
		}
		return r.Query_RaffleInfo(&req)
	case rty.FuncNameAllRaffles:
		var req rty.ReqAllRaffles
		if err := types.Decode(params, &req); err != nil {
			return nil, err
		}
		return r.Query_AllRaffles(&req)
	case rty.FuncNameAllTickets:
		var req rty.ReqAllTickets
		if err := types.Decode(params, &req); err != nil {
			return nil, err
		}
		return r.Query_AllTickets(&req)
	case rty.FuncNameTicketCount:
		var req rty.ReqTicketCount
		if err := types.Decode(params, &req); err != nil {
			return nil, err
		}
		return r.Query_TicketCount(&req)
	}
	return nil, types.ErrQueryNotSupport
}

//Query_Config 配置
func (r *Raffle) Query_Config(req *rty.ReqConfig) (types.Message, error) {
	cfg, err := loadConfig(r.GetStateDB())
	if err != nil {
		return nil, err
	}
	return &rty.ReplyConfig{
		Config:       cfg,
		ContractAddr: r.GetExecAddress(),
		VerifierAddr: drivers.ExecAddress(cfg.Verifier),
	}, nil
}

func (r *Raffle) raffleInfo(cfg *rty.Config, id uint64) (*rty.ReplyRaffleInfo, error) {
	raffle, err := findRaffle(r.GetStateDB(), id)
	if err != nil {
		return nil, err
	}
	return &rty.ReplyRaffleInfo{
		RaffleID:    raffle.RaffleID,
		RaffleState: RaffleState(cfg, raffle, r.GetBlockTime()),
		RaffleInfo:  raffle,
	}, nil
}

//Query_RaffleInfo 抽奖信息和当前状态
func (r *Raffle) Query_RaffleInfo(req *rty.ReqRaffleInfo) (types.Message, error) {
	cfg, err := loadConfig(r.GetStateDB())
	if err != nil {
		return nil, err
	}
	return r.raffleInfo(cfg, req.RaffleID)
}

func queryLimit(limit int32) int32 {
	if limit <= 0 {
		return rty.DefaultQueryLimit
	}
	if limit > rty.MaxQueryLimit {
		return rty.MaxQueryLimit
	}
	return limit
}

func containsToken(raffle *rty.RaffleInfo, token *rty.NftAsset) bool {
	for _, asset := range raffle.Assets {
		if nft := asset.Nft(); nft != nil && nft.Address == token.Address && nft.TokenID == token.TokenID {
			return true
		}
	}
	return false
}

//filterPrefix 选择最窄的索引, 其他条件在读出后过滤
func filterPrefix(filters *rty.RaffleFilters) []byte {
	switch {
	case filters == nil:
		return calcLocalIDPrefix()
	case filters.Owner != "":
		return calcLocalOwnerPrefix(filters.Owner)
	case filters.ContainsToken != nil:
		return calcLocalAssetPrefix(rty.NftKey(filters.ContainsToken.Address, filters.ContainsToken.TokenID))
	case filters.TicketDepositor != "":
		return calcLocalDepositorPrefix(filters.TicketDepositor)
	}
	return calcLocalIDPrefix()
}

func (r *Raffle) match(info *rty.ReplyRaffleInfo, filters *rty.RaffleFilters) (bool, error) {
	if filters == nil {
		return true, nil
	}
	raffle := info.RaffleInfo
	if filters.Owner != "" && raffle.Owner != filters.Owner {
		return false, nil
	}
	if filters.ContainsToken != nil && !containsToken(raffle, filters.ContainsToken) {
		return false, nil
	}
	if filters.RaffleState != "" && info.RaffleState != filters.RaffleState {
		return false, nil
	}
	if filters.TicketDepositor != "" {
		count, err := getTicketCount(r.GetStateDB(), raffle.RaffleID, filters.TicketDepositor)
		if err != nil {
			return false, err
		}
		if count == 0 {
			return false, nil
		}
	}
	return true, nil
}

//Query_AllRaffles 按 id 从新到旧分页
func (r *Raffle) Query_AllRaffles(req *rty.ReqAllRaffles) (types.Message, error) {
	cfg, err := loadConfig(r.GetStateDB())
	if err != nil {
		return nil, err
	}
	if req.Filters != nil && req.Filters.RaffleState != "" && !rty.IsValidState(req.Filters.RaffleState) {
		return nil, rty.ErrInvalidInput
	}
	limit := queryLimit(req.Limit)
	prefix := filterPrefix(req.Filters)
	var start []byte
	if req.StartAfter > 0 {
		start = calcIndexKey(prefix, req.StartAfter)
	}
	reply := &rty.ReplyAllRaffles{}
	for int32(len(reply.Raffles)) < limit {
		values, err := r.GetLocalDB().List(prefix, start, limit, types.ListDESC)
		if err == types.ErrNotFound {
			break
		}
		if err != nil {
			return nil, err
		}
		for _, v := range values {
			id, err := strconv.ParseUint(string(v), 10, 64)
			if err != nil {
				return nil, types.ErrDecode
			}
			start = calcIndexKey(prefix, id)
			info, err := r.raffleInfo(cfg, id)
			if err != nil {
				return nil, err
			}
			ok, err := r.match(info, req.Filters)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			reply.Raffles = append(reply.Raffles, info)
			if int32(len(reply.Raffles)) == limit {
				break
			}
		}
		if int32(len(values)) < limit {
			break
		}
	}
	return reply, nil
}

//Query_AllTickets 按票号升序, 票号是连续的
func (r *Raffle) Query_AllTickets(req *rty.ReqAllTickets) (types.Message, error) {
	db := r.GetStateDB()
	raffle, err := findRaffle(db, req.RaffleID)
	if err != nil {
		return nil, err
	}
	var start uint32
	reply := &rty.ReplyAllTickets{}
	if req.StartAfter != nil {
		if *req.StartAfter == math.MaxUint32 {
			return reply, nil
		}
		start = *req.StartAfter + 1
	}
	limit := uint32(queryLimit(req.Limit))
	for i := start; i < raffle.NumberOfTickets && uint32(len(reply.Tickets)) < limit; i++ {
		owner, err := getTicketOwner(db, raffle.RaffleID, i)
		if err != nil {
			return nil, err
		}
		reply.Tickets = append(reply.Tickets, owner)
	}
	return reply, nil
}

//Query_TicketCount 某个地址的票数
func (r *Raffle) Query_TicketCount(req *rty.ReqTicketCount) (types.Message, error) {
	db := r.GetStateDB()
	if _, err := findRaffle(db, req.RaffleID); err != nil {
		return nil, err
	}
	count, err := getTicketCount(db, req.RaffleID, req.Owner)
	if err != nil {
		return nil, err
	}
	return &rty.ReplyTicketCount{Count: count}, nil
}
