// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"crypto/sha256"
	"encoding/binary"

	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	"github.com/holiman/uint256"
)

const winnerDomain = "raffle-winner"

func drawHash(randomness []byte, i uint32) []byte {
	var counter [8]byte
	binary.BigEndian.PutUint64(counter[:], uint64(i))
	h := sha256.New()
	h.Write(randomness)
	h.Write([]byte(winnerDomain))
	h.Write(counter[:])
	return h.Sum(nil)
}

//SelectWinners 在 [0, n) 中选出 min(w, n) 个不重复的票号
//
//第 i 次从剩下的 n-i 个票号中选择, 选中的和第 i 个位置交换(Fisher-Yates),
//交换记录在 map 里, 不需要分配 n 个元素的数组
func SelectWinners(randomness []byte, n, w uint32) ([]uint32, error) {
	if len(randomness) == 0 {
		return nil, rty.ErrInvalidRandomness
	}
	if n == 0 || w == 0 {
		return nil, rty.ErrInvalidInput
	}
	if w > n {
		w = n
	}
	swaps := make(map[uint32]uint32)
	at := func(i uint32) uint32 {
		if v, ok := swaps[i]; ok {
			return v
		}
		return i
	}
	winners := make([]uint32, 0, w)
	for i := uint32(0); i < w; i++ {
		r := new(uint256.Int).SetBytes32(drawHash(randomness, i))
		offset := new(uint256.Int).Mod(r, uint256.NewInt(uint64(n-i))).Uint64()
		j := i + uint32(offset)
		vi, vj := at(i), at(j)
		winners = append(winners, vj)
		swaps[j] = vi
		swaps[i] = vj
	}
	return winners, nil
}
