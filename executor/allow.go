// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"bytes"

	"github.com/33cn/raffle/common"
	dbm "github.com/33cn/raffle/common/db"
	"github.com/33cn/raffle/types"
)

/*
权限控制规则:
执行器只能修改 mavl-{execer}- 下面的状态, 本地数据库只能写 LODB-{execer}- 下面的 key
*/
func isAllowKeyWrite(key []byte, execer string) bool {
	return bytes.HasPrefix(key, []byte(types.StatePrefix+execer+"-"))
}

func isAllowLocalKey(execer string, key []byte) error {
	prefix := []byte(types.LocalPrefix + execer + "-")
	if len(key) <= len(prefix) {
		elog.Error("isAllowLocalKey too short", "key", string(key), "exec", execer)
		return types.ErrLocalPrefix
	}
	if !bytes.HasPrefix(key, prefix) {
		elog.Error("isAllowLocalKey key prefix not match", "key", string(key), "exec", execer)
		return types.ErrLocalPrefix
	}
	return nil
}

// guardKV 限制执行器只能写自己的状态
type guardKV struct {
	dbm.KV
	execer string
}

func (g *guardKV) Set(key []byte, value []byte) error {
	if !isAllowKeyWrite(key, g.execer) {
		elog.Error("err receipt key", "key", string(key), "tx.exec", g.execer)
		return types.ErrNotAllowKey
	}
	return g.KV.Set(key, value)
}

func calcTxKey(hash []byte) []byte {
	return []byte(types.LocalPrefix + "tx-" + common.ToHex(hash))
}
