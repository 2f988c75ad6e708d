// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	"github.com/33cn/raffle/types"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

//ParseFeeRate 手续费比例, 空字符串为 0, 必须在 [0, 1) 之间
func ParseFeeRate(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	rate, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrapf(rty.ErrInvalidFeeRate, "parse %q", s)
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(one) {
		return decimal.Zero, errors.Wrapf(rty.ErrInvalidFeeRate, "%s not in [0, 1)", s)
	}
	return rate, nil
}

//SplitFee 手续费向下取整, 剩下的归抽奖创建者
func SplitFee(total int64, rate decimal.Decimal) (fee int64, rest int64) {
	if total <= 0 {
		return 0, 0
	}
	fee = decimal.NewFromInt(total).Mul(rate).Floor().IntPart()
	if fee < 0 {
		fee = 0
	}
	if fee > total {
		fee = total
	}
	return fee, total - fee
}

//TicketCost 票价乘以数量, 结果不能超过 MaxCoin
func TicketCost(price *types.Coin, count uint32) (*types.Coin, error) {
	if price == nil || price.Amount <= 0 {
		return nil, rty.ErrInvalidAmount
	}
	total, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(uint64(price.Amount)), uint256.NewInt(uint64(count)))
	if overflow || !total.IsUint64() || total.Uint64() >= uint64(types.MaxCoin) {
		return nil, errors.Wrapf(rty.ErrInvalidAmount, "%d x %s overflow", count, price)
	}
	return types.NewCoin(price.Denom, int64(total.Uint64())), nil
}

//addAmount 累计售票收入
func addAmount(a, b int64) (int64, error) {
	sum := new(uint256.Int).Add(uint256.NewInt(uint64(a)), uint256.NewInt(uint64(b)))
	if !sum.IsUint64() || sum.Uint64() >= uint64(types.MaxCoin) {
		return 0, errors.Wrapf(rty.ErrInvalidAmount, "%d + %d overflow", a, b)
	}
	return int64(sum.Uint64()), nil
}
