// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	dty "github.com/33cn/raffle/plugin/dapp/drand/types"
	blst "github.com/supranational/blst/bindings/go"
)

//BeaconSigner 本地模拟 drand 网络出块, 用于测试网和测试
type BeaconSigner struct {
	scheme string
	sk     *blst.SecretKey
}

//NewBeaconSigner seed 至少 32 字节
func NewBeaconSigner(scheme string, seed []byte) (*BeaconSigner, error) {
	if !dty.IsValidScheme(scheme) {
		return nil, dty.ErrUnknownScheme
	}
	if len(seed) < 32 {
		return nil, dty.ErrDrandInvalidParam
	}
	sk := blst.KeyGen(seed)
	if sk == nil {
		return nil, dty.ErrDrandInvalidParam
	}
	return &BeaconSigner{scheme: scheme, sk: sk}, nil
}

//PublicKey 压缩公钥, quicknet 在 G2 上, 其它在 G1 上
func (s *BeaconSigner) PublicKey() []byte {
	if s.scheme == dty.SchemeQuicknet {
		return new(blst.P2Affine).From(s.sk).Compress()
	}
	return new(blst.P1Affine).From(s.sk).Compress()
}

//Sign 某一轮的签名, prev 只在 chained 方案中使用
func (s *BeaconSigner) Sign(round uint64, prev []byte) []byte {
	msg := BeaconMessage(s.scheme, round, prev)
	if s.scheme == dty.SchemeQuicknet {
		return new(blst.P1Affine).Sign(s.sk, msg, dstG1).Compress()
	}
	return new(blst.P2Affine).Sign(s.sk, msg, dstG2).Compress()
}
