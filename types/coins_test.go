// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCoinsMergeAndSort(t *testing.T) {
	cs := NewCoins(NewCoin("uatom", 5), NewCoin("ustars", 4), NewCoin("uatom", 3), NewCoin("ujuno", 0))
	require.Len(t, cs, 2)
	assert.Equal(t, "uatom", cs[0].Denom)
	assert.Equal(t, int64(8), cs[0].Amount)
	assert.Equal(t, "8uatom,4ustars", cs.String())
	assert.Equal(t, int64(4), cs.AmountOf("ustars"))
	assert.Equal(t, int64(0), cs.AmountOf("ujuno"))
}

func TestCoinsEqual(t *testing.T) {
	a := Coins{NewCoin("ustars", 4), NewCoin("uatom", 1)}
	b := Coins{NewCoin("uatom", 1), NewCoin("ustars", 2), NewCoin("ustars", 2)}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(Coins{NewCoin("ustars", 4)}))
	assert.True(t, Coins(nil).Equal(Coins{}))
	assert.True(t, Coins{NewCoin("ustars", 0)}.IsZero())
}

func TestCoinsSafeSub(t *testing.T) {
	funds := Coins{NewCoin("ustars", 60), NewCoin("uatom", 5)}
	rest, ok := funds.SafeSub(Coins{NewCoin("ustars", 10)})
	require.True(t, ok)
	assert.Equal(t, "5uatom,50ustars", rest.String())

	rest, ok = funds.SafeSub(Coins{NewCoin("uatom", 5)})
	require.True(t, ok)
	assert.Equal(t, "60ustars", rest.String())

	_, ok = funds.SafeSub(Coins{NewCoin("ujuno", 1)})
	assert.False(t, ok)
	_, ok = funds.SafeSub(Coins{NewCoin("ustars", 61)})
	assert.False(t, ok)
}

func TestCoinsValidate(t *testing.T) {
	assert.NoError(t, Coins{NewCoin("ustars", 1)}.Validate())
	assert.Equal(t, ErrDuplicateDenom, Coins{NewCoin("ustars", 1), NewCoin("ustars", 1)}.Validate())
	assert.Equal(t, ErrAmount, Coins{NewCoin("ustars", 0)}.Validate())
	assert.Equal(t, ErrAmount, Coins{NewCoin("ustars", -1)}.Validate())
	assert.Equal(t, ErrDenom, Coins{NewCoin("u-stars", 1)}.Validate())
	assert.Equal(t, ErrDenom, Coins{NewCoin("USTARS", 1)}.Validate())
}

func TestParseCoins(t *testing.T) {
	cs, err := ParseCoins("100ustars, 5uatom")
	require.NoError(t, err)
	assert.Equal(t, "5uatom,100ustars", cs.String())

	cs, err = ParseCoins("")
	require.NoError(t, err)
	assert.Nil(t, cs)

	_, err = ParseCoins("ustars")
	assert.Equal(t, ErrInvalidParam, err)
	_, err = ParseCoins("100")
	assert.Equal(t, ErrInvalidParam, err)
}

func TestEncodeDecodeTransaction(t *testing.T) {
	tx := &Transaction{Execer: "raffle", From: "addr", Funds: Coins{NewCoin("ustars", 4)}, Payload: []byte{1, 2}, Nonce: 7}
	var tx2 Transaction
	require.NoError(t, Decode(Encode(tx), &tx2))
	assert.Equal(t, tx.Execer, tx2.Execer)
	assert.True(t, tx.Funds.Equal(tx2.Funds))
	assert.Equal(t, tx.Hash(), tx2.Hash())

	err := Decode([]byte{0xff, 0xff, 0xff}, &tx2)
	assert.ErrorIs(t, err, ErrDecode)
}
