// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	dty "github.com/33cn/raffle/plugin/dapp/drand/types"
	rcmd "github.com/33cn/raffle/plugin/dapp/raffle/commands"
	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	"github.com/33cn/raffle/system/dapp/commands"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// InitCmd 创世并初始化验证合约和抽奖合约
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write genesis and instantiate the drand and raffle contracts",
		Run: func(cmd *cobra.Command, args []string) {
			node, err := commands.OpenNode(cmd)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}
			defer node.Close()
			receipts, err := initChain(node)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}
			for _, r := range receipts {
				commands.PrintJSON(commands.DecodeReceipt(r))
			}
		},
	}
	return cmd
}

// initChain 创世地址同时是两个合约的初始化交易发送者
func initChain(node *commands.Node) ([]*types.Receipt, error) {
	cfg := node.Cfg
	if cfg.Genesis == nil || cfg.Genesis.Addr == "" {
		return nil, errors.Wrap(types.ErrInvalidParam, "genesis addr is empty")
	}
	genesis, err := node.Exec.Genesis(cfg.Genesis)
	if err != nil {
		return nil, err
	}
	from := cfg.Genesis.Addr
	drand, err := node.SendTx(from, dty.DrandX, &dty.DrandAction{
		Ty:          dty.DrandActionInstantiate,
		Instantiate: &dty.DrandInstantiate{Scheme: cfg.Drand.Scheme},
	}, nil, 0)
	if err != nil {
		return nil, err
	}
	payload, err := rcmd.NewInstantiate(cfg.Raffle, "")
	if err != nil {
		return nil, err
	}
	raffle, err := node.SendTx(from, rty.RaffleX, &rty.RaffleAction{
		Ty:          rty.RaffleActionInstantiate,
		Instantiate: payload,
	}, nil, 0)
	if err != nil {
		return nil, err
	}
	return []*types.Receipt{genesis, drand, raffle}, nil
}
