// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nft 两种 NFT 标准的执行器插件
package nft

import (
	"github.com/33cn/raffle/plugin/dapp/nft/commands"
	"github.com/33cn/raffle/plugin/dapp/nft/executor"
	nty "github.com/33cn/raffle/plugin/dapp/nft/types"
	"github.com/33cn/raffle/pluginmgr"
)

func init() {
	pluginmgr.Register(&pluginmgr.PluginBase{
		Name:     nty.Cw721X,
		ExecName: nty.Cw721X,
		Exec:     executor.Init,
		Cmd:      commands.NftCmd,
	})
	pluginmgr.Register(&pluginmgr.PluginBase{
		Name:     nty.Sg721X,
		ExecName: nty.Sg721X,
		Exec:     executor.Init,
	})
}
