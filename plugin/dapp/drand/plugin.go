// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package drand drand 随机信标验证插件
package drand

import (
	"github.com/33cn/raffle/plugin/dapp/drand/commands"
	"github.com/33cn/raffle/plugin/dapp/drand/executor"
	dty "github.com/33cn/raffle/plugin/dapp/drand/types"
	"github.com/33cn/raffle/pluginmgr"
)

func init() {
	pluginmgr.Register(&pluginmgr.PluginBase{
		Name:     dty.DrandX,
		ExecName: dty.DrandX,
		Exec:     executor.Init,
		Cmd:      commands.DrandCmd,
	})
}
