// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	_ "github.com/33cn/raffle/plugin"
	"github.com/33cn/raffle/pluginmgr"
	"github.com/33cn/raffle/system/dapp/commands"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "raffle",
		Short: "raffle contract command line interface",
	}
	commands.AddNodeFlags(rootCmd)
	rootCmd.AddCommand(
		InitCmd(),
		commands.AccountCmd(),
		commands.BankCmd(),
	)
	pluginmgr.AddCmd(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
