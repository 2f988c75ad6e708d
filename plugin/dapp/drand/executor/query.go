// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	dty "github.com/33cn/raffle/plugin/dapp/drand/types"
	"github.com/33cn/raffle/types"
)

//Query 查询
func (d *Drand) Query(funcName string, params []byte) (types.Message, error) {
	switch funcName {
	case dty.FuncNameScheme:
		return d.Query_Scheme()
	case dty.FuncNameVerify:
		var req dty.DrandVerify
		if err := types.Decode(params, &req); err != nil {
			return nil, err
		}
		return d.Query_Verify(&req)
	}
	return nil, types.ErrQueryNotSupport
}

//Query_Scheme 签名方案和管理员
func (d *Drand) Query_Scheme() (types.Message, error) {
	state, err := loadState(d.GetStateDB())
	if err != nil {
		return nil, err
	}
	return &dty.ReplyScheme{Scheme: state.Scheme, Admin: state.Admin}, nil
}

//Query_Verify 只验证, 不收费也不记录
func (d *Drand) Query_Verify(req *dty.DrandVerify) (types.Message, error) {
	state, err := loadState(d.GetStateDB())
	if err != nil {
		return nil, err
	}
	return verify(state, req)
}
