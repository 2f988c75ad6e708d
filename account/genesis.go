// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package account

import (
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
)

// GenesisInit 按配置给创世地址发行初始资产
func (b *Bank) GenesisInit(genesis *types.Genesis) (*types.Receipt, error) {
	if genesis == nil || genesis.Addr == "" {
		return types.NewReceipt(), nil
	}
	var coins []*types.Coin
	for _, s := range genesis.Coins {
		coin, err := types.ParseCoin(s)
		if err != nil {
			return nil, errors.Wrapf(err, "genesis coin %q", s)
		}
		coins = append(coins, coin)
	}
	receipt, err := b.MintCoins(genesis.Addr, types.NewCoins(coins...))
	if err != nil {
		return nil, errors.Wrap(err, "GenesisInit")
	}
	alog.Info("GenesisInit", "addr", genesis.Addr, "coins", types.NewCoins(coins...).String())
	return receipt, nil
}
