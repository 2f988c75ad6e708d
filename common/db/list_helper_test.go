// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"testing"

	"github.com/33cn/raffle/types"
	"github.com/stretchr/testify/require"
)

func TestListHelper_List(t *testing.T) {
	for name, db := range newTestDBs(t) {
		t.Run(name, func(t *testing.T) { testListDB(t, db) })
	}
}

func testListDB(t *testing.T, db DB) {
	ldb := NewListHelper(db)
	require.NoError(t, db.Set([]byte("key1"), []byte("value1")))
	require.NoError(t, db.Set([]byte("key4"), []byte("value2")))
	require.NoError(t, db.Set([]byte("key7"), []byte("value3")))

	check := func(key string, direction int32, n int) {
		data, err := ldb.List([]byte("key"), []byte(key), 0, direction)
		if n == 0 {
			require.Equal(t, types.ErrNotFound, err, key)
			return
		}
		require.NoError(t, err, key)
		require.Equal(t, n, len(data), key)
	}
	check("key0", types.ListASC, 3)
	check("key1", types.ListASC, 2)
	check("key3", types.ListASC, 2)
	check("key4", types.ListASC, 1)
	check("key7", types.ListASC, 0)
	check("key8", types.ListDESC, 3)
	check("key7", types.ListDESC, 2)
	check("key5", types.ListDESC, 2)
	check("key4", types.ListDESC, 1)
	check("key1", types.ListDESC, 0)

	var keys []string
	ldb.IteratorCallback([]byte("key"), types.ListDESC, func(key, value []byte) bool {
		keys = append(keys, string(key))
		return len(keys) == 2
	})
	require.Equal(t, []string{"key7", "key4"}, keys)
}
