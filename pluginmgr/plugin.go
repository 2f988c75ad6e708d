// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pluginmgr

import (
	"github.com/spf13/cobra"
)

// Plugin 插件: 执行器和命令行
type Plugin interface {
	// 获取整个插件的包名，用以计算唯一值、做前置判断等
	GetName() string
	// GetExecutorName 获取插件中执行器名
	GetExecutorName() string
	// InitExec 注册执行器
	InitExec()
	// AddCmd 添加命令行
	AddCmd(rootCmd *cobra.Command)
}
