// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"fmt"

	"github.com/33cn/raffle/types"
)

func calcCollectionKey(execer, collection string) []byte {
	return []byte(fmt.Sprintf("%s%s-collection-%s", types.StatePrefix, execer, collection))
}

func calcTokenKey(execer, collection, tokenID string) []byte {
	return []byte(fmt.Sprintf("%s%s-token-%s-%s", types.StatePrefix, execer, collection, tokenID))
}

func calcOwnerTokenPrefix(execer, collection, owner string) []byte {
	return []byte(fmt.Sprintf("%s%s-owner-%s-%s-", types.LocalPrefix, execer, collection, owner))
}

func calcOwnerTokenKey(execer, collection, owner, tokenID string) []byte {
	return []byte(fmt.Sprintf("%s%s-owner-%s-%s-%s", types.LocalPrefix, execer, collection, owner, tokenID))
}
