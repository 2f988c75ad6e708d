// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"fmt"
	"sort"
	"strings"
)

// Coin 原生币
type Coin struct {
	Denom  string
	Amount int64
}

// NewCoin new coin
func NewCoin(denom string, amount int64) *Coin {
	return &Coin{Denom: denom, Amount: amount}
}

func (c *Coin) String() string {
	if c == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%d%s", c.Amount, c.Denom)
}

// Validate 币种名称和数量
func (c *Coin) Validate() error {
	if c == nil {
		return ErrInvalidParam
	}
	if err := ValidateDenom(c.Denom); err != nil {
		return err
	}
	if !CheckAmount(c.Amount) {
		return ErrAmount
	}
	return nil
}

// Equal 币种和数量都相同
func (c *Coin) Equal(other *Coin) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.Denom == other.Denom && c.Amount == other.Amount
}

// ValidateDenom 币种名称 2~64 字节，只允许小写字母数字和 "/", 不能含有 "-" (账户 key 用它分隔)
func ValidateDenom(denom string) error {
	if len(denom) < 2 || len(denom) > 64 {
		return ErrDenom
	}
	for _, r := range denom {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '/' {
			return ErrDenom
		}
	}
	return nil
}

// Coins 一组原生币, 规范形式下按币种排序且不重复
type Coins []*Coin

// NewCoins 合并同币种并排序, 数量为 0 的会被丢弃
func NewCoins(coins ...*Coin) Coins {
	merged := make(map[string]int64)
	for _, c := range coins {
		if c == nil {
			continue
		}
		merged[c.Denom] += c.Amount
	}
	var out Coins
	for denom, amount := range merged {
		if amount == 0 {
			continue
		}
		out = append(out, &Coin{Denom: denom, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Denom < out[j].Denom })
	return out
}

// Validate 每个币都合法且没有重复币种
func (cs Coins) Validate() error {
	seen := make(map[string]bool)
	for _, c := range cs {
		if err := c.Validate(); err != nil {
			return err
		}
		if seen[c.Denom] {
			return ErrDuplicateDenom
		}
		seen[c.Denom] = true
	}
	return nil
}

// AmountOf 某个币种的数量
func (cs Coins) AmountOf(denom string) int64 {
	var total int64
	for _, c := range cs {
		if c != nil && c.Denom == denom {
			total += c.Amount
		}
	}
	return total
}

// IsZero 没有任何币
func (cs Coins) IsZero() bool {
	return len(NewCoins(cs...)) == 0
}

// Equal 规范化后逐项比较
func (cs Coins) Equal(other Coins) bool {
	a, b := NewCoins(cs...), NewCoins(other...)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Add 合并
func (cs Coins) Add(other ...*Coin) Coins {
	all := make([]*Coin, 0, len(cs)+len(other))
	all = append(all, cs...)
	all = append(all, other...)
	return NewCoins(all...)
}

// SafeSub 逐币种相减, 任何一个币种不够时返回 false
func (cs Coins) SafeSub(other Coins) (Coins, bool) {
	neg := make([]*Coin, 0, len(other))
	for _, c := range other {
		if c == nil {
			continue
		}
		neg = append(neg, &Coin{Denom: c.Denom, Amount: -c.Amount})
	}
	out := cs.Add(neg...)
	for _, c := range out {
		if c.Amount < 0 {
			return nil, false
		}
	}
	return out, true
}

func (cs Coins) String() string {
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, ",")
}

// ParseCoins 解析 "100ustars,5uatom" 形式的字符串
func ParseCoins(s string) (Coins, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var coins []*Coin
	for _, part := range strings.Split(s, ",") {
		c, err := ParseCoin(part)
		if err != nil {
			return nil, err
		}
		coins = append(coins, c)
	}
	out := NewCoins(coins...)
	return out, out.Validate()
}

// ParseCoin 解析 "100ustars"
func ParseCoin(s string) (*Coin, error) {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i == len(s) {
		return nil, ErrInvalidParam
	}
	var amount int64
	if _, err := fmt.Sscanf(s[:i], "%d", &amount); err != nil {
		return nil, ErrInvalidParam
	}
	c := &Coin{Denom: s[i:], Amount: amount}
	return c, c.Validate()
}
