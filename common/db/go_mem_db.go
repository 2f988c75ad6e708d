// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"bytes"
	"sort"
	"strconv"
	"sync"

	"github.com/33cn/raffle/types"
	log "github.com/inconshreveable/log15"
)

var mlog = log.New("module", "db.memdb")

// memdb 应该无需区分同步与异步操作

func init() {
	dbCreator := func(name string, dir string, cache int) (DB, error) {
		return NewGoMemDB(name, dir, cache)
	}
	registerDBCreator(MemDBBackendStr, dbCreator, false)
}

//GoMemDB 内存数据库, 主要用于测试
type GoMemDB struct {
	db   map[string][]byte
	lock sync.RWMutex
}

//NewGoMemDB new
func NewGoMemDB(name string, dir string, cache int) (*GoMemDB, error) {
	// memdb 不需要创建文件，后续考虑增加缓存数目
	return &GoMemDB{
		db: make(map[string][]byte),
	}, nil
}

//Get get
func (db *GoMemDB) Get(key []byte) ([]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if entry, ok := db.db[string(key)]; ok {
		return cloneByte(entry), nil
	}
	return nil, types.ErrNotFound
}

//Set set, value 为 nil 时删除
func (db *GoMemDB) Set(key []byte, value []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	if value == nil {
		delete(db.db, string(key))
		return nil
	}
	db.db[string(key)] = cloneByte(value)
	return nil
}

//Delete delete
func (db *GoMemDB) Delete(key []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	delete(db.db, string(key))
	return nil
}

//Close close
func (db *GoMemDB) Close() {
}

//Stats stats
func (db *GoMemDB) Stats() map[string]string {
	db.lock.RLock()
	defer db.lock.RUnlock()
	return map[string]string{"database.type": "memDB", "database.size": strconv.Itoa(len(db.db))}
}

//Iterator 在当前快照上迭代
func (db *GoMemDB) Iterator(prefix []byte, reverse bool) Iterator {
	db.lock.RLock()
	defer db.lock.RUnlock()

	var keys []string
	for k := range db.db {
		if bytes.HasPrefix([]byte(k), prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	values := make([][]byte, len(keys))
	for i, k := range keys {
		values[i] = db.db[k]
	}
	it := &memIterator{keys: keys, values: values, reverse: reverse, index: -1}
	return it
}

//NewBatch new
func (db *GoMemDB) NewBatch(sync bool) Batch {
	return &memBatch{db: db}
}

type memIterator struct {
	keys    []string
	values  [][]byte
	reverse bool
	index   int
}

func (it *memIterator) Rewind() bool {
	if it.reverse {
		it.index = len(it.keys) - 1
	} else {
		it.index = 0
	}
	return it.Valid()
}

func (it *memIterator) Next() bool {
	if it.reverse {
		it.index--
	} else {
		it.index++
	}
	return it.Valid()
}

func (it *memIterator) Valid() bool {
	return it.index >= 0 && it.index < len(it.keys)
}

func (it *memIterator) Seek(key []byte) bool {
	k := string(key)
	i := sort.SearchStrings(it.keys, k)
	if !it.reverse {
		it.index = i
		return it.Valid()
	}
	if i < len(it.keys) && it.keys[i] == k {
		it.index = i
	} else {
		it.index = i - 1
	}
	return it.Valid()
}

func (it *memIterator) Key() []byte {
	if !it.Valid() {
		return nil
	}
	return []byte(it.keys[it.index])
}

func (it *memIterator) Value() []byte {
	if !it.Valid() {
		return nil
	}
	return it.values[it.index]
}

func (it *memIterator) ValueCopy() []byte {
	return cloneByte(it.Value())
}

func (it *memIterator) Error() error {
	return nil
}

func (it *memIterator) Close() {
}

type kv struct {
	k, v []byte
}

type memBatch struct {
	db     *GoMemDB
	writes []kv
	size   int
}

func (b *memBatch) Set(key, value []byte) {
	b.writes = append(b.writes, kv{cloneByte(key), cloneByte(value)})
	b.size += len(value)
}

func (b *memBatch) Delete(key []byte) {
	b.writes = append(b.writes, kv{cloneByte(key), nil})
	b.size++
}

func (b *memBatch) Write() error {
	b.db.lock.Lock()
	defer b.db.lock.Unlock()

	for _, kv := range b.writes {
		if kv.v == nil {
			delete(b.db.db, string(kv.k))
		} else {
			b.db.db[string(kv.k)] = kv.v
		}
	}
	mlog.Debug("memBatch.Write", "count", len(b.writes))
	return nil
}

func (b *memBatch) ValueSize() int {
	return b.size
}

func (b *memBatch) Reset() {
	b.writes = b.writes[:0]
	b.size = 0
}
