// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	nty "github.com/33cn/raffle/plugin/dapp/nft/types"
	"github.com/33cn/raffle/types"
)

const (
	defaultTokenLimit = 10
	maxTokenLimit     = 100
)

//Query 查询
func (n *Nft) Query(funcName string, params []byte) (types.Message, error) {
	switch funcName {
	case nty.FuncNameOwnerOf:
		var req nty.ReqOwnerOf
		if err := types.Decode(params, &req); err != nil {
			return nil, err
		}
		return n.Query_OwnerOf(&req)
	case nty.FuncNameTokens:
		var req nty.ReqTokens
		if err := types.Decode(params, &req); err != nil {
			return nil, err
		}
		return n.Query_Tokens(&req)
	case nty.FuncNameCollectionInfo:
		var req nty.ReqCollectionInfo
		if err := types.Decode(params, &req); err != nil {
			return nil, err
		}
		return n.Query_CollectionInfo(&req)
	}
	return nil, types.ErrQueryNotSupport
}

//Query_OwnerOf owner 和授权列表
func (n *Nft) Query_OwnerOf(req *nty.ReqOwnerOf) (types.Message, error) {
	token, err := findToken(n.GetStateDB(), n.GetDriverName(), req.Collection, req.TokenID)
	if err != nil {
		return nil, err
	}
	return &nty.ReplyOwnerOf{Owner: token.Owner, Approvals: token.Approvals}, nil
}

//Query_Tokens 按 token id 升序分页
func (n *Nft) Query_Tokens(req *nty.ReqTokens) (types.Message, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultTokenLimit
	}
	if limit > maxTokenLimit {
		limit = maxTokenLimit
	}
	execer := n.GetDriverName()
	var start []byte
	if req.StartAfter != "" {
		start = calcOwnerTokenKey(execer, req.Collection, req.Owner, req.StartAfter)
	}
	values, err := n.GetLocalDB().List(calcOwnerTokenPrefix(execer, req.Collection, req.Owner), start, limit, types.ListASC)
	if err != nil && err != types.ErrNotFound {
		return nil, err
	}
	reply := &nty.ReplyTokens{}
	for _, v := range values {
		reply.Tokens = append(reply.Tokens, string(v))
	}
	return reply, nil
}

//Query_CollectionInfo 集合信息, cw721 不返回创建者
func (n *Nft) Query_CollectionInfo(req *nty.ReqCollectionInfo) (types.Message, error) {
	coll, err := findCollection(n.GetStateDB(), n.GetDriverName(), req.Collection)
	if err != nil {
		return nil, err
	}
	reply := &nty.ReplyCollectionInfo{
		Name:     coll.Name,
		Symbol:   coll.Symbol,
		Minter:   coll.Minter,
		Standard: coll.Standard,
	}
	if coll.Standard == nty.Sg721X {
		reply.Creator = coll.Creator
	}
	return reply, nil
}
