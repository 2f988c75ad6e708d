// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	dbm "github.com/33cn/raffle/common/db"
	nty "github.com/33cn/raffle/plugin/dapp/nft/types"
	drivers "github.com/33cn/raffle/system/dapp"
	"github.com/33cn/raffle/types"
)

type nftAction struct {
	db       dbm.KV
	execer   string
	fromaddr string
	txhash   []byte
}

func newNftAction(n *Nft, tx *types.Transaction) *nftAction {
	return &nftAction{
		db:       n.GetStateDB(),
		execer:   n.GetDriverName(),
		fromaddr: tx.From,
		txhash:   tx.Hash(),
	}
}

func findCollection(db dbm.KV, execer, addr string) (*nty.Collection, error) {
	value, err := db.Get(calcCollectionKey(execer, addr))
	if err != nil {
		if err == types.ErrNotFound {
			return nil, nty.ErrCollectionNotFound
		}
		return nil, err
	}
	var coll nty.Collection
	if err := types.Decode(value, &coll); err != nil {
		return nil, err
	}
	return &coll, nil
}

func findToken(db dbm.KV, execer, collection, tokenID string) (*nty.Token, error) {
	value, err := db.Get(calcTokenKey(execer, collection, tokenID))
	if err != nil {
		if err == types.ErrNotFound {
			return nil, nty.ErrTokenNotFound
		}
		return nil, err
	}
	var token nty.Token
	if err := types.Decode(value, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (action *nftAction) saveCollection(coll *nty.Collection) (*types.KeyValue, error) {
	kv := &types.KeyValue{Key: calcCollectionKey(action.execer, coll.Address), Value: types.Encode(coll)}
	return kv, action.db.Set(kv.Key, kv.Value)
}

func (action *nftAction) saveToken(token *nty.Token) (*types.KeyValue, error) {
	kv := &types.KeyValue{Key: calcTokenKey(action.execer, token.Collection, token.TokenID), Value: types.Encode(token)}
	return kv, action.db.Set(kv.Key, kv.Value)
}

func (action *nftAction) receipt(ty int32, kv *types.KeyValue, log types.Message) *types.Receipt {
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   []*types.KeyValue{kv},
		Logs: []*types.ReceiptLog{{Ty: ty, Log: types.Encode(log)}},
	}
}

func (action *nftAction) createCollection(create *nty.NftCreateCollection) (*types.Receipt, error) {
	if len(create.Name) == 0 || len(create.Name) > 64 || create.Symbol == "" {
		return nil, nty.ErrNftInvalidParam
	}
	minter := create.Minter
	if minter == "" {
		minter = action.fromaddr
	}
	if err := drivers.CheckAddress(minter); err != nil {
		return nil, err
	}
	addr := nty.CollectionAddress(action.execer, create.Name)
	if _, err := findCollection(action.db, action.execer, addr); err == nil {
		return nil, nty.ErrCollectionExists
	}
	coll := &nty.Collection{
		Address:  addr,
		Name:     create.Name,
		Symbol:   create.Symbol,
		Minter:   minter,
		Creator:  action.fromaddr,
		Standard: action.execer,
	}
	kv, err := action.saveCollection(coll)
	if err != nil {
		return nil, err
	}
	nlog.Debug("createCollection", "execer", action.execer, "name", create.Name, "addr", addr)
	return action.receipt(nty.TyLogNftCreateCollection, kv, &nty.ReceiptCollection{Address: addr, Name: coll.Name, Creator: coll.Creator}), nil
}

func (action *nftAction) mint(mint *nty.NftMint) (*types.Receipt, error) {
	if mint.TokenID == "" {
		return nil, nty.ErrNftInvalidParam
	}
	coll, err := findCollection(action.db, action.execer, mint.Collection)
	if err != nil {
		return nil, err
	}
	if coll.Minter != action.fromaddr {
		return nil, nty.ErrNftUnauthorized
	}
	owner := mint.Owner
	if owner == "" {
		owner = action.fromaddr
	}
	if err := drivers.CheckAddress(owner); err != nil {
		return nil, err
	}
	if _, err := findToken(action.db, action.execer, mint.Collection, mint.TokenID); err == nil {
		return nil, nty.ErrTokenExists
	}
	token := &nty.Token{Collection: mint.Collection, TokenID: mint.TokenID, Owner: owner}
	kv, err := action.saveToken(token)
	if err != nil {
		return nil, err
	}
	coll.TokenCount++
	kv2, err := action.saveCollection(coll)
	if err != nil {
		return nil, err
	}
	receipt := action.receipt(nty.TyLogNftMint, kv, &nty.ReceiptNft{Collection: token.Collection, TokenID: token.TokenID, Owner: owner})
	receipt.KV = append(receipt.KV, kv2)
	return receipt, nil
}

func (action *nftAction) approve(approve *nty.NftApprove) (*types.Receipt, error) {
	token, err := findToken(action.db, action.execer, approve.Collection, approve.TokenID)
	if err != nil {
		return nil, err
	}
	if token.Owner != action.fromaddr {
		return nil, nty.ErrNftUnauthorized
	}
	if err := drivers.CheckAddress(approve.Spender); err != nil {
		return nil, err
	}
	if !contains(token.Approvals, approve.Spender) {
		token.Approvals = append(token.Approvals, approve.Spender)
	}
	kv, err := action.saveToken(token)
	if err != nil {
		return nil, err
	}
	return action.receipt(nty.TyLogNftApprove, kv, &nty.ReceiptNft{Collection: token.Collection, TokenID: token.TokenID, Owner: token.Owner, Spender: approve.Spender}), nil
}

func (action *nftAction) revoke(revoke *nty.NftRevoke) (*types.Receipt, error) {
	token, err := findToken(action.db, action.execer, revoke.Collection, revoke.TokenID)
	if err != nil {
		return nil, err
	}
	if token.Owner != action.fromaddr {
		return nil, nty.ErrNftUnauthorized
	}
	var approvals []string
	for _, spender := range token.Approvals {
		if spender != revoke.Spender {
			approvals = append(approvals, spender)
		}
	}
	token.Approvals = approvals
	kv, err := action.saveToken(token)
	if err != nil {
		return nil, err
	}
	return action.receipt(nty.TyLogNftRevoke, kv, &nty.ReceiptNft{Collection: token.Collection, TokenID: token.TokenID, Owner: token.Owner, Spender: revoke.Spender}), nil
}

func (action *nftAction) transfer(transfer *nty.NftTransfer) (*types.Receipt, error) {
	token, err := findToken(action.db, action.execer, transfer.Collection, transfer.TokenID)
	if err != nil {
		return nil, err
	}
	if token.Owner != action.fromaddr && !contains(token.Approvals, action.fromaddr) {
		nlog.Debug("transfer", "token", token.TokenID, "owner", token.Owner, "from", action.fromaddr)
		return nil, nty.ErrNftUnauthorized
	}
	if err := drivers.CheckAddress(transfer.Recipient); err != nil {
		return nil, err
	}
	prev := token.Owner
	token.Owner = transfer.Recipient
	token.Approvals = nil
	kv, err := action.saveToken(token)
	if err != nil {
		return nil, err
	}
	return action.receipt(nty.TyLogNftTransfer, kv, &nty.ReceiptNft{Collection: token.Collection, TokenID: token.TokenID, Owner: token.Owner, Prev: prev}), nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
