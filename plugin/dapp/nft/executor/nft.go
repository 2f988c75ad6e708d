// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

/*
nft 执行器实现两种 NFT 标准(cw721, sg721)的集合管理

主要提供操作有以下几种：
1）创建集合；
2）铸造 token；
3）授权和取消授权；
4）转移 token；
*/

import (
	nty "github.com/33cn/raffle/plugin/dapp/nft/types"
	drivers "github.com/33cn/raffle/system/dapp"
	"github.com/33cn/raffle/types"
	log "github.com/inconshreveable/log15"
)

var nlog = log.New("module", "execs.nft")

//Init 注册执行器, name 只能是 cw721 或者 sg721
func Init(name string) {
	if !nty.IsNftExecer(name) {
		panic("nft dapp can't be rename")
	}
	drivers.Register(name, func() drivers.Driver {
		return newNft(name)
	})
}

//Nft 执行器
type Nft struct {
	drivers.DriverBase
	standard string
}

func newNft(standard string) drivers.Driver {
	n := &Nft{standard: standard}
	n.SetChild(n)
	return n
}

//GetDriverName name
func (n *Nft) GetDriverName() string {
	return n.standard
}

//Exec 执行
func (n *Nft) Exec(tx *types.Transaction, index int) (*types.Receipt, error) {
	var action nty.NftAction
	err := types.Decode(tx.Payload, &action)
	if err != nil {
		return nil, err
	}
	if !tx.Funds.IsZero() {
		return nil, nty.ErrNftInvalidParam
	}
	switch action.Ty {
	case nty.NftActionCreateCollection:
		if action.CreateCollection == nil {
			return nil, nty.ErrNftInvalidParam
		}
		return n.Exec_CreateCollection(action.CreateCollection, tx, index)
	case nty.NftActionMint:
		if action.Mint == nil {
			return nil, nty.ErrNftInvalidParam
		}
		return n.Exec_Mint(action.Mint, tx, index)
	case nty.NftActionApprove:
		if action.Approve == nil {
			return nil, nty.ErrNftInvalidParam
		}
		return n.Exec_Approve(action.Approve, tx, index)
	case nty.NftActionRevoke:
		if action.Revoke == nil {
			return nil, nty.ErrNftInvalidParam
		}
		return n.Exec_Revoke(action.Revoke, tx, index)
	case nty.NftActionTransfer:
		if action.Transfer == nil {
			return nil, nty.ErrNftInvalidParam
		}
		return n.Exec_Transfer(action.Transfer, tx, index)
	default:
		return nil, types.ErrActionNotSupport
	}
}
