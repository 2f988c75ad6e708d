// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	nty "github.com/33cn/raffle/plugin/dapp/nft/types"
	"github.com/33cn/raffle/types"
)

//ExecLocal 维护 owner -> token 索引
func (n *Nft) ExecLocal(tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	set := &types.LocalDBSet{}
	if receipt.GetTy() != types.ExecOk {
		return set, nil
	}
	execer := n.GetDriverName()
	for _, item := range receipt.Logs {
		if item.Ty != nty.TyLogNftMint && item.Ty != nty.TyLogNftTransfer {
			continue
		}
		var r nty.ReceiptNft
		if err := types.Decode(item.Log, &r); err != nil {
			return nil, err
		}
		if r.Prev != "" {
			set.KV = append(set.KV, &types.KeyValue{Key: calcOwnerTokenKey(execer, r.Collection, r.Prev, r.TokenID)})
		}
		set.KV = append(set.KV, &types.KeyValue{Key: calcOwnerTokenKey(execer, r.Collection, r.Owner, r.TokenID), Value: []byte(r.TokenID)})
	}
	return set, nil
}
