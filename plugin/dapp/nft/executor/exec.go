// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	nty "github.com/33cn/raffle/plugin/dapp/nft/types"
	"github.com/33cn/raffle/types"
)

//Exec_CreateCollection 创建集合
func (n *Nft) Exec_CreateCollection(payload *nty.NftCreateCollection, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := newNftAction(n, tx)
	return action.createCollection(payload)
}

//Exec_Mint 铸造
func (n *Nft) Exec_Mint(payload *nty.NftMint, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := newNftAction(n, tx)
	return action.mint(payload)
}

//Exec_Approve 授权
func (n *Nft) Exec_Approve(payload *nty.NftApprove, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := newNftAction(n, tx)
	return action.approve(payload)
}

//Exec_Revoke 取消授权
func (n *Nft) Exec_Revoke(payload *nty.NftRevoke, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := newNftAction(n, tx)
	return action.revoke(payload)
}

//Exec_Transfer 转移
func (n *Nft) Exec_Transfer(payload *nty.NftTransfer, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := newNftAction(n, tx)
	return action.transfer(payload)
}
