// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"crypto/sha256"
	"sort"
	"testing"

	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqRandomness() []byte {
	r := make([]byte, 32)
	for i := range r {
		r[i] = byte(i)
	}
	return r
}

func TestSelectWinnersVector(t *testing.T) {
	r := seqRandomness()
	winners, err := SelectWinners(r, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint32{5, 3, 9}, winners)

	winners, err = SelectWinners(r, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint32{5, 3, 9, 8, 0, 7, 1, 2, 6, 4}, winners)

	// w 大于 n 时截断
	winners, err = SelectWinners(r, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint32{2, 1, 0}, winners)
	winners, err = SelectWinners(r, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0}, winners)
}

func TestSelectWinnersDistinct(t *testing.T) {
	seed := sha256.Sum256([]byte("distinct"))
	for n := uint32(1); n <= 40; n++ {
		winners, err := SelectWinners(seed[:], n, n)
		require.NoError(t, err)
		require.Len(t, winners, int(n))
		sorted := append([]uint32{}, winners...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		for i, v := range sorted {
			assert.Equal(t, uint32(i), v, "n=%d", n)
		}
	}
}

func TestSelectWinnersDeterministic(t *testing.T) {
	a := sha256.Sum256([]byte("a"))
	b := sha256.Sum256([]byte("b"))
	w1, err := SelectWinners(a[:], 1000, 5)
	require.NoError(t, err)
	w2, err := SelectWinners(a[:], 1000, 5)
	require.NoError(t, err)
	assert.Equal(t, w1, w2)
	w3, err := SelectWinners(b[:], 1000, 5)
	require.NoError(t, err)
	assert.NotEqual(t, w1, w3)
	for _, v := range w1 {
		assert.Less(t, v, uint32(1000))
	}
}

func TestSelectWinnersErrors(t *testing.T) {
	_, err := SelectWinners(nil, 10, 1)
	assert.Equal(t, rty.ErrInvalidRandomness, err)
	_, err = SelectWinners(seqRandomness(), 0, 1)
	assert.Equal(t, rty.ErrInvalidInput, err)
	_, err = SelectWinners(seqRandomness(), 10, 0)
	assert.Equal(t, rty.ErrInvalidInput, err)
}
