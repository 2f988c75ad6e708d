// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"sort"

	"github.com/33cn/raffle/types"
)

//StateCache 一笔交易执行期间使用的状态缓存, Commit 之前所有写入都只在内存中
type StateCache struct {
	parent DB
	cache  map[string][]byte
}

//NewStateCache new
func NewStateCache(parent DB) *StateCache {
	return &StateCache{parent: parent, cache: make(map[string][]byte)}
}

//Get 先查缓存, 再查下层数据库
func (s *StateCache) Get(key []byte) ([]byte, error) {
	if value, ok := s.cache[string(key)]; ok {
		if value == nil {
			return nil, types.ErrNotFound
		}
		return cloneByte(value), nil
	}
	return s.parent.Get(key)
}

//Set value 为 nil 表示删除
func (s *StateCache) Set(key []byte, value []byte) error {
	s.cache[string(key)] = cloneByte(value)
	return nil
}

//KVs 按 key 排序的修改集合
func (s *StateCache) KVs() []*types.KeyValue {
	keys := make([]string, 0, len(s.cache))
	for k := range s.cache {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	kvs := make([]*types.KeyValue, 0, len(keys))
	for _, k := range keys {
		kvs = append(kvs, &types.KeyValue{Key: []byte(k), Value: s.cache[k]})
	}
	return kvs
}

//Commit 写入下层数据库
func (s *StateCache) Commit() error {
	if len(s.cache) == 0 {
		return nil
	}
	batch := s.parent.NewBatch(true)
	for _, kv := range s.KVs() {
		if kv.Value == nil {
			batch.Delete(kv.Key)
		} else {
			batch.Set(kv.Key, kv.Value)
		}
	}
	if err := batch.Write(); err != nil {
		return err
	}
	s.cache = make(map[string][]byte)
	return nil
}

//Rollback 丢弃所有未提交的修改
func (s *StateCache) Rollback() {
	s.cache = make(map[string][]byte)
}
