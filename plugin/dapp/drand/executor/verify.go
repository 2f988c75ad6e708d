// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"crypto/sha256"
	"encoding/binary"

	dty "github.com/33cn/raffle/plugin/dapp/drand/types"
	blst "github.com/supranational/blst/bindings/go"
)

// drand 签名使用的 DST
var (
	dstG2 = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_NUL_")
	dstG1 = []byte("BLS_SIG_BLS12381G1_XMD:SHA-256_SSWU_RO_NUL_")
)

// 压缩点的长度
const (
	g1Size = 48
	g2Size = 96
)

func roundBytes(round uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], round)
	return buf[:]
}

//BeaconMessage 签名的消息: chained 方案包含上一轮签名
func BeaconMessage(scheme string, round uint64, prev []byte) []byte {
	h := sha256.New()
	if scheme == dty.SchemeChained {
		h.Write(prev)
	}
	h.Write(roundBytes(round))
	return h.Sum(nil)
}

//Randomness drand 的随机数是签名的 sha256
func Randomness(sig []byte) []byte {
	h := sha256.Sum256(sig)
	return h[:]
}

//CheckPublicKey 公钥长度和所在的群要与方案一致
func CheckPublicKey(scheme string, pubkey []byte) error {
	switch scheme {
	case dty.SchemeChained, dty.SchemeUnchained:
		if len(pubkey) != g1Size || new(blst.P1Affine).Uncompress(pubkey) == nil {
			return dty.ErrInvalidPublicKey
		}
	case dty.SchemeQuicknet:
		if len(pubkey) != g2Size || new(blst.P2Affine).Uncompress(pubkey) == nil {
			return dty.ErrInvalidPublicKey
		}
	default:
		return dty.ErrUnknownScheme
	}
	return nil
}

//VerifyBeacon 公钥错误返回 error, 签名不对返回 false
func VerifyBeacon(scheme string, pubkey []byte, round uint64, prev, sig []byte) (bool, error) {
	if round == 0 {
		return false, dty.ErrInvalidRound
	}
	if err := CheckPublicKey(scheme, pubkey); err != nil {
		return false, err
	}
	msg := BeaconMessage(scheme, round, prev)
	switch scheme {
	case dty.SchemeChained, dty.SchemeUnchained:
		if scheme == dty.SchemeChained && len(prev) == 0 {
			return false, nil
		}
		if len(sig) != g2Size {
			return false, nil
		}
		pk := new(blst.P1Affine).Uncompress(pubkey)
		s := new(blst.P2Affine).Uncompress(sig)
		if s == nil {
			return false, nil
		}
		return s.Verify(true, pk, true, msg, dstG2), nil
	case dty.SchemeQuicknet:
		if len(sig) != g1Size {
			return false, nil
		}
		pk := new(blst.P2Affine).Uncompress(pubkey)
		s := new(blst.P1Affine).Uncompress(sig)
		if s == nil {
			return false, nil
		}
		return s.Verify(true, pk, true, msg, dstG1), nil
	}
	return false, dty.ErrUnknownScheme
}
