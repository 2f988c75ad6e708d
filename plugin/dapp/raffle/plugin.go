// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package raffle 抽奖合约插件
package raffle

import (
	"github.com/33cn/raffle/plugin/dapp/raffle/commands"
	"github.com/33cn/raffle/plugin/dapp/raffle/executor"
	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	"github.com/33cn/raffle/pluginmgr"
)

func init() {
	pluginmgr.Register(&pluginmgr.PluginBase{
		Name:     rty.RaffleX,
		ExecName: rty.RaffleX,
		Exec:     executor.Init,
		Cmd:      commands.RaffleCmd,
	})
}
