// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"strconv"

	lru "github.com/hashicorp/golang-lru"
)

//CacheDB 带 lru 读缓存的数据库
type CacheDB struct {
	DB
	cache *lru.Cache
}

//NewCacheDB size 为缓存的 key 数目
func NewCacheDB(db DB, size int) (*CacheDB, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &CacheDB{DB: db, cache: cache}, nil
}

//Get get
func (db *CacheDB) Get(key []byte) ([]byte, error) {
	if value, ok := db.cache.Get(string(key)); ok {
		return cloneByte(value.([]byte)), nil
	}
	value, err := db.DB.Get(key)
	if err != nil {
		return nil, err
	}
	db.cache.Add(string(key), cloneByte(value))
	return value, nil
}

//Set set
func (db *CacheDB) Set(key []byte, value []byte) error {
	db.cache.Remove(string(key))
	return db.DB.Set(key, value)
}

//Delete delete
func (db *CacheDB) Delete(key []byte) error {
	db.cache.Remove(string(key))
	return db.DB.Delete(key)
}

//NewBatch 写入时同时使缓存失效
func (db *CacheDB) NewBatch(sync bool) Batch {
	return &cacheBatch{Batch: db.DB.NewBatch(sync), db: db}
}

//Stats stats
func (db *CacheDB) Stats() map[string]string {
	stats := db.DB.Stats()
	stats["cache.len"] = strconv.Itoa(db.cache.Len())
	return stats
}

type cacheBatch struct {
	Batch
	db   *CacheDB
	keys []string
}

func (b *cacheBatch) Set(key, value []byte) {
	b.keys = append(b.keys, string(key))
	b.Batch.Set(key, value)
}

func (b *cacheBatch) Delete(key []byte) {
	b.keys = append(b.keys, string(key))
	b.Batch.Delete(key)
}

func (b *cacheBatch) Write() error {
	for _, k := range b.keys {
		b.db.cache.Remove(k)
	}
	return b.Batch.Write()
}

func (b *cacheBatch) Reset() {
	b.keys = b.keys[:0]
	b.Batch.Reset()
}
