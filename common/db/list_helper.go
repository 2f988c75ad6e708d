// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"bytes"

	"github.com/33cn/raffle/types"
	log "github.com/inconshreveable/log15"
)

//ListHelper ...
type ListHelper struct {
	db IteratorDB
}

var listlog = log.New("module", "db.ListHelper")

//NewListHelper new
func NewListHelper(db IteratorDB) *ListHelper {
	return &ListHelper{db}
}

//PrefixScan 前缀
func (db *ListHelper) PrefixScan(prefix []byte) (values [][]byte) {
	it := db.db.Iterator(prefix, false)
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		value := it.ValueCopy()
		if it.Error() != nil {
			listlog.Error("PrefixScan it.Value()", "error", it.Error())
			return nil
		}
		values = append(values, value)
	}
	return values
}

//List 列表, key 为空时从头(ListASC)或尾(ListDESC)开始, 否则从 key 之后开始(不含 key)
func (db *ListHelper) List(prefix, key []byte, count, direction int32) ([][]byte, error) {
	var values [][]byte
	if len(key) == 0 {
		values = db.iteratorScanFromEdge(prefix, count, direction)
	} else {
		values = db.IteratorScan(prefix, key, count, direction)
	}
	if len(values) == 0 {
		return nil, types.ErrNotFound
	}
	return values, nil
}

//IteratorScan 迭代
func (db *ListHelper) IteratorScan(prefix []byte, key []byte, count int32, direction int32) (values [][]byte) {
	reverse := direction == types.ListDESC
	it := db.db.Iterator(prefix, reverse)
	defer it.Close()

	if !it.Seek(key) {
		return nil
	}
	if bytes.Equal(it.Key(), key) {
		it.Next()
	}
	var i int32
	for ; it.Valid(); it.Next() {
		value := it.ValueCopy()
		if it.Error() != nil {
			listlog.Error("IteratorScan it.Value()", "error", it.Error())
			return nil
		}
		values = append(values, value)
		i++
		if i == count {
			break
		}
	}
	return values
}

func (db *ListHelper) iteratorScanFromEdge(prefix []byte, count int32, direction int32) (values [][]byte) {
	it := db.db.Iterator(prefix, direction == types.ListDESC)
	defer it.Close()

	var i int32
	for it.Rewind(); it.Valid(); it.Next() {
		value := it.ValueCopy()
		if it.Error() != nil {
			listlog.Error("iteratorScanFromEdge it.Value()", "error", it.Error())
			return nil
		}
		values = append(values, value)
		i++
		if i == count {
			break
		}
	}
	return values
}

//PrefixCount 前缀数量
func (db *ListHelper) PrefixCount(prefix []byte) (count int64) {
	it := db.db.Iterator(prefix, true)
	defer it.Close()
	for it.Rewind(); it.Valid(); it.Next() {
		if it.Error() != nil {
			listlog.Error("PrefixCount it.Value()", "error", it.Error())
			return 0
		}
		count++
	}
	return count
}

//IteratorCallback 按前缀迭代, fn 返回 true 时停止
func (db *ListHelper) IteratorCallback(prefix []byte, direction int32, fn func(key, value []byte) bool) {
	it := db.db.Iterator(prefix, direction == types.ListDESC)
	defer it.Close()
	for it.Rewind(); it.Valid(); it.Next() {
		if fn(cloneByte(it.Key()), it.ValueCopy()) {
			break
		}
	}
}
