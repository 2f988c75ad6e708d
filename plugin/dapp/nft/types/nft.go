// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/raffle/common/address"
)

// 两种 NFT 标准, 各自是一个执行器
const (
	Cw721X = "cw721"
	Sg721X = "sg721"
)

// action
const (
	NftActionCreateCollection = 1 + iota
	NftActionMint
	NftActionApprove
	NftActionRevoke
	NftActionTransfer
)

// log
const (
	TyLogNftCreateCollection = 901
	TyLogNftMint             = 902
	TyLogNftApprove          = 903
	TyLogNftRevoke           = 904
	TyLogNftTransfer         = 905
)

// query
const (
	FuncNameOwnerOf        = "OwnerOf"
	FuncNameTokens         = "Tokens"
	FuncNameCollectionInfo = "CollectionInfo"
)

//IsNftExecer 是否是 NFT 执行器
func IsNftExecer(execer string) bool {
	return execer == Cw721X || execer == Sg721X
}

//CollectionAddress 集合地址由执行器名和集合名计算
func CollectionAddress(execer, name string) string {
	return address.ExecAddress(execer + "." + name)
}

//NftAction 交易
type NftAction struct {
	Ty               int32
	CreateCollection *NftCreateCollection
	Mint             *NftMint
	Approve          *NftApprove
	Revoke           *NftRevoke
	Transfer         *NftTransfer
}

//NftCreateCollection Minter 为空时等于创建者
type NftCreateCollection struct {
	Name   string
	Symbol string
	Minter string
}

//NftMint 只有 minter 可以调用
type NftMint struct {
	Collection string
	TokenID    string
	Owner      string
}

//NftApprove 授权 spender 转移某个 token
type NftApprove struct {
	Collection string
	TokenID    string
	Spender    string
}

//NftRevoke 取消授权
type NftRevoke struct {
	Collection string
	TokenID    string
	Spender    string
}

//NftTransfer owner 或者被授权的地址可以转移, 转移后清空授权
type NftTransfer struct {
	Collection string
	TokenID    string
	Recipient  string
}

//NewTransferAction 构造转移交易
func NewTransferAction(collection, tokenID, recipient string) *NftAction {
	return &NftAction{
		Ty:       NftActionTransfer,
		Transfer: &NftTransfer{Collection: collection, TokenID: tokenID, Recipient: recipient},
	}
}

//Collection 状态
type Collection struct {
	Address    string
	Name       string
	Symbol     string
	Minter     string
	Creator    string
	Standard   string
	TokenCount uint64
}

//Token 状态
type Token struct {
	Collection string
	TokenID    string
	Owner      string
	Approvals  []string
}

//ReceiptCollection 创建集合的日志
type ReceiptCollection struct {
	Address string
	Name    string
	Creator string
}

//ReceiptNft token 变动的日志, Prev 为转移前的 owner
type ReceiptNft struct {
	Collection string
	TokenID    string
	Owner      string
	Prev       string
	Spender    string
}

//ReqOwnerOf 查询 owner
type ReqOwnerOf struct {
	Collection string
	TokenID    string
}

//ReplyOwnerOf owner 和授权列表
type ReplyOwnerOf struct {
	Owner     string
	Approvals []string
}

//ReqTokens 查询某个地址在集合中的 token
type ReqTokens struct {
	Collection string
	Owner      string
	StartAfter string
	Limit      int32
}

//ReplyTokens token id 列表
type ReplyTokens struct {
	Tokens []string
}

//ReqCollectionInfo 查询集合
type ReqCollectionInfo struct {
	Collection string
}

//ReplyCollectionInfo sg721 额外返回创建者
type ReplyCollectionInfo struct {
	Name     string
	Symbol   string
	Minter   string
	Creator  string
	Standard string
}
