// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"github.com/33cn/raffle/types"
)

//LocalDB 本地索引数据库, 只保存可以由执行结果重建的数据
type LocalDB struct {
	*ListHelper
	maindb DB
}

//NewLocalDB new
func NewLocalDB(maindb DB) *LocalDB {
	return &LocalDB{ListHelper: NewListHelper(maindb), maindb: maindb}
}

//Get get
func (l *LocalDB) Get(key []byte) ([]byte, error) {
	return l.maindb.Get(key)
}

//Set value 为 nil 表示删除
func (l *LocalDB) Set(key []byte, value []byte) error {
	if value == nil {
		return l.maindb.Delete(key)
	}
	return l.maindb.Set(key, value)
}

//Apply 批量写入 ExecLocal 的结果
func (l *LocalDB) Apply(set *types.LocalDBSet) error {
	if set == nil || len(set.KV) == 0 {
		return nil
	}
	batch := l.maindb.NewBatch(true)
	for _, kv := range set.KV {
		if kv.Value == nil {
			batch.Delete(kv.Key)
		} else {
			batch.Set(kv.Key, kv.Value)
		}
	}
	return batch.Write()
}
