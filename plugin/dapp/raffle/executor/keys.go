// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"fmt"

	"github.com/33cn/raffle/types"
)

/*
状态数据库:
mavl-raffle-config                      -> Config
mavl-raffle-info-{id}                   -> RaffleInfo
mavl-raffle-ticket-{id}-{index}         -> 购买者地址
mavl-raffle-count-{id}-{addr}           -> 该地址的票数

本地数据库, value 都是十进制的 raffle id:
LODB-raffle-id-{id}
LODB-raffle-owner-{owner}-{id}
LODB-raffle-asset-{asset}-{id}
LODB-raffle-depositor-{addr}-{id}
*/

func calcConfigKey() []byte {
	return []byte(types.StatePrefix + driverName + "-config")
}

func calcRaffleKey(id uint64) []byte {
	return []byte(fmt.Sprintf("%s%s-info-%020d", types.StatePrefix, driverName, id))
}

func calcTicketKey(id uint64, index uint32) []byte {
	return []byte(fmt.Sprintf("%s%s-ticket-%020d-%010d", types.StatePrefix, driverName, id, index))
}

func calcTicketCountKey(id uint64, addr string) []byte {
	return []byte(fmt.Sprintf("%s%s-count-%020d-%s", types.StatePrefix, driverName, id, addr))
}

func calcLocalIDPrefix() []byte {
	return []byte(types.LocalPrefix + driverName + "-id-")
}

func calcLocalOwnerPrefix(owner string) []byte {
	return []byte(fmt.Sprintf("%s%s-owner-%s-", types.LocalPrefix, driverName, owner))
}

func calcLocalAssetPrefix(assetKey string) []byte {
	return []byte(fmt.Sprintf("%s%s-asset-%s-", types.LocalPrefix, driverName, assetKey))
}

func calcLocalDepositorPrefix(addr string) []byte {
	return []byte(fmt.Sprintf("%s%s-depositor-%s-", types.LocalPrefix, driverName, addr))
}

//索引 key 为 prefix + 补零的 id, 字典序等于数字序
func calcIndexKey(prefix []byte, id uint64) []byte {
	return append(append([]byte{}, prefix...), []byte(fmt.Sprintf("%020d", id))...)
}
