// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"testing"

	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	"github.com/33cn/raffle/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFeeRate(t *testing.T) {
	rate, err := ParseFeeRate("")
	require.NoError(t, err)
	assert.True(t, rate.IsZero())

	rate, err = ParseFeeRate("0.05")
	require.NoError(t, err)
	assert.Equal(t, "0.05", rate.String())

	for _, bad := range []string{"1", "1.5", "-0.1", "abc"} {
		_, err := ParseFeeRate(bad)
		assert.ErrorIs(t, err, rty.ErrInvalidFeeRate, bad)
	}
}

func TestSplitFee(t *testing.T) {
	rate, err := ParseFeeRate("0.05")
	require.NoError(t, err)
	fee, rest := SplitFee(12, rate)
	assert.Equal(t, int64(0), fee)
	assert.Equal(t, int64(12), rest)

	fee, rest = SplitFee(1000, rate)
	assert.Equal(t, int64(50), fee)
	assert.Equal(t, int64(950), rest)

	rate, err = ParseFeeRate("0.999")
	require.NoError(t, err)
	fee, rest = SplitFee(7, rate)
	assert.Equal(t, int64(6), fee)
	assert.Equal(t, int64(1), rest)

	fee, rest = SplitFee(0, rate)
	assert.Equal(t, int64(0), fee+rest)
}

func TestTicketCost(t *testing.T) {
	cost, err := TicketCost(types.NewCoin("ustars", 4), 3)
	require.NoError(t, err)
	assert.Equal(t, types.NewCoin("ustars", 12), cost)

	_, err = TicketCost(types.NewCoin("ustars", types.MaxCoin/2+1), 2)
	assert.ErrorIs(t, err, rty.ErrInvalidAmount)
	_, err = TicketCost(types.NewCoin("ustars", 0), 2)
	assert.ErrorIs(t, err, rty.ErrInvalidAmount)
}

func TestRoundTime(t *testing.T) {
	ts, ok := RoundTime(1000, 3, 1)
	assert.True(t, ok)
	assert.Equal(t, int64(1000), ts)
	ts, ok = RoundTime(1000, 3, 11)
	assert.True(t, ok)
	assert.Equal(t, int64(1030), ts)
	_, ok = RoundTime(1000, 3, ^uint64(0))
	assert.False(t, ok)
}
