// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"strconv"

	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	"github.com/33cn/raffle/types"
)

func indexKV(prefix []byte, id uint64) *types.KeyValue {
	return &types.KeyValue{Key: calcIndexKey(prefix, id), Value: []byte(strconv.FormatUint(id, 10))}
}

//ExecLocal 维护 AllRaffles 的过滤索引
func (r *Raffle) ExecLocal(tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	set := &types.LocalDBSet{}
	if receipt.GetTy() != types.ExecOk {
		return set, nil
	}
	for _, item := range receipt.Logs {
		switch item.Ty {
		case rty.TyLogRaffleCreate:
			var log rty.ReceiptRaffleCreate
			if err := types.Decode(item.Log, &log); err != nil {
				return nil, err
			}
			set.KV = append(set.KV, indexKV(calcLocalIDPrefix(), log.RaffleID))
			set.KV = append(set.KV, indexKV(calcLocalOwnerPrefix(log.Owner), log.RaffleID))
			for _, asset := range log.Assets {
				nft := asset.Nft()
				if nft == nil {
					continue
				}
				set.KV = append(set.KV, indexKV(calcLocalAssetPrefix(rty.NftKey(nft.Address, nft.TokenID)), log.RaffleID))
			}
		case rty.TyLogRaffleBuyTicket:
			var log rty.ReceiptRaffleTicket
			if err := types.Decode(item.Log, &log); err != nil {
				return nil, err
			}
			set.KV = append(set.KV, indexKV(calcLocalDepositorPrefix(log.Buyer), log.RaffleID))
		}
	}
	return set, nil
}
