// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"fmt"

	"github.com/33cn/raffle/common/address"
	nty "github.com/33cn/raffle/plugin/dapp/nft/types"
	"github.com/33cn/raffle/types"
)

// 资产类型, 集合是封闭的
const (
	AssetCoin = 1 + iota
	AssetCw721
	AssetSg721
)

//NftAsset 某个集合里的一个 token
type NftAsset struct {
	Address string
	TokenID string
}

//AssetInfo 原生币或者两种标准的 NFT, 只有和 Ty 对应的字段有效
type AssetInfo struct {
	Ty         int32
	Coin       *types.Coin
	Cw721Coin  *NftAsset
	Sg721Token *NftAsset
}

//NewCoinAsset coin
func NewCoinAsset(denom string, amount int64) *AssetInfo {
	return &AssetInfo{Ty: AssetCoin, Coin: types.NewCoin(denom, amount)}
}

//NewCw721Asset cw721
func NewCw721Asset(collection, tokenID string) *AssetInfo {
	return &AssetInfo{Ty: AssetCw721, Cw721Coin: &NftAsset{Address: collection, TokenID: tokenID}}
}

//NewSg721Asset sg721
func NewSg721Asset(collection, tokenID string) *AssetInfo {
	return &AssetInfo{Ty: AssetSg721, Sg721Token: &NftAsset{Address: collection, TokenID: tokenID}}
}

//Validate 字段和类型一致
func (a *AssetInfo) Validate() error {
	if a == nil {
		return ErrWrongAssetType
	}
	switch a.Ty {
	case AssetCoin:
		if a.Coin == nil {
			return ErrWrongAssetType
		}
		if err := types.ValidateDenom(a.Coin.Denom); err != nil {
			return ErrInvalidInput
		}
		if !types.CheckAmount(a.Coin.Amount) {
			return ErrInvalidAmount
		}
		return nil
	case AssetCw721, AssetSg721:
		nft := a.Nft()
		if nft == nil {
			return ErrWrongAssetType
		}
		if nft.TokenID == "" {
			return ErrInvalidInput
		}
		if err := address.CheckAddress(nft.Address); err != nil {
			return ErrInvalidInput
		}
		return nil
	}
	return ErrWrongAssetType
}

//IsCoin coin
func (a *AssetInfo) IsCoin() bool {
	return a != nil && a.Ty == AssetCoin
}

//Nft nft 资产的集合和 token, coin 返回 nil
func (a *AssetInfo) Nft() *NftAsset {
	if a == nil {
		return nil
	}
	switch a.Ty {
	case AssetCw721:
		return a.Cw721Coin
	case AssetSg721:
		return a.Sg721Token
	}
	return nil
}

//NftExecer nft 资产所在的执行器
func (a *AssetInfo) NftExecer() (string, error) {
	if a == nil {
		return "", ErrWrongAssetType
	}
	switch a.Ty {
	case AssetCw721:
		return nty.Cw721X, nil
	case AssetSg721:
		return nty.Sg721X, nil
	case AssetCoin:
		return "", ErrWrongAssetType
	}
	return "", ErrWrongAssetType
}

//Equal 类型和内容都相同
func (a *AssetInfo) Equal(other *AssetInfo) bool {
	if a == nil || other == nil {
		return a == other
	}
	if a.Ty != other.Ty {
		return false
	}
	switch a.Ty {
	case AssetCoin:
		return a.Coin.Equal(other.Coin)
	case AssetCw721, AssetSg721:
		x, y := a.Nft(), other.Nft()
		if x == nil || y == nil {
			return x == y
		}
		return x.Address == y.Address && x.TokenID == y.TokenID
	}
	return false
}

//Key 资产的唯一标识, 用于查重和索引
func (a *AssetInfo) Key() (string, error) {
	if a == nil {
		return "", ErrWrongAssetType
	}
	switch a.Ty {
	case AssetCoin:
		if a.Coin == nil {
			return "", ErrWrongAssetType
		}
		return fmt.Sprintf("coin:%d%s", a.Coin.Amount, a.Coin.Denom), nil
	case AssetCw721, AssetSg721:
		nft := a.Nft()
		if nft == nil {
			return "", ErrWrongAssetType
		}
		return NftKey(nft.Address, nft.TokenID), nil
	}
	return "", ErrWrongAssetType
}

//NftKey 两种标准的 NFT 使用同一种 key, 集合地址已经区分了标准
func NftKey(collection, tokenID string) string {
	return "nft:" + collection + ":" + tokenID
}

func (a *AssetInfo) String() string {
	if a == nil {
		return "<nil>"
	}
	switch a.Ty {
	case AssetCoin:
		return a.Coin.String()
	case AssetCw721, AssetSg721:
		if nft := a.Nft(); nft != nil {
			return fmt.Sprintf("%s/%s", nft.Address, nft.TokenID)
		}
	}
	return "<invalid asset>"
}
