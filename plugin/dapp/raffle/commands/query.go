// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"os"

	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	"github.com/33cn/raffle/system/dapp/commands"
	"github.com/spf13/cobra"
)

// QueryCmd 查询命令
func QueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query raffles, tickets and the contract config",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		ConfigCmd(),
		InfoCmd(),
		ListCmd(),
		TicketsCmd(),
		TicketCountCmd(),
	)
	return cmd
}

// ConfigCmd 合约配置
func ConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Get the contract config",
		Run: func(cmd *cobra.Command, args []string) {
			commands.Query(cmd, rty.RaffleX, rty.FuncNameConfig, &rty.ReqConfig{})
		},
	}
}

// InfoCmd 一次抽奖
func InfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Get a raffle and its state",
		Run: func(cmd *cobra.Command, args []string) {
			id, _ := cmd.Flags().GetUint64("id")
			commands.Query(cmd, rty.RaffleX, rty.FuncNameRaffleInfo, &rty.ReqRaffleInfo{RaffleID: id})
		},
	}
	addIDFlag(cmd)
	return cmd
}

// ListCmd 抽奖列表, 新的在前
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List raffles, newest first",
		Run:   list,
	}
	cmd.Flags().Uint64("start_after", 0, "list raffles with id below this one")
	cmd.Flags().Int32P("limit", "l", rty.DefaultQueryLimit, "page size")
	cmd.Flags().String("owner", "", "filter by owner")
	cmd.Flags().String("token", "", "filter by prize, e.g. cw721:<collection>:<token>")
	cmd.Flags().String("depositor", "", "filter by ticket buyer")
	cmd.Flags().String("state", "", "filter by state, e.g. started")
	return cmd
}

func list(cmd *cobra.Command, args []string) {
	startAfter, _ := cmd.Flags().GetUint64("start_after")
	limit, _ := cmd.Flags().GetInt32("limit")
	filters := &rty.RaffleFilters{}
	filters.Owner, _ = cmd.Flags().GetString("owner")
	filters.TicketDepositor, _ = cmd.Flags().GetString("depositor")
	filters.RaffleState, _ = cmd.Flags().GetString("state")
	if token, _ := cmd.Flags().GetString("token"); token != "" {
		asset, err := ParseAsset(token)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		if filters.ContainsToken = asset.Nft(); filters.ContainsToken == nil {
			fmt.Fprintln(os.Stderr, rty.ErrWrongAssetType)
			return
		}
	}
	commands.Query(cmd, rty.RaffleX, rty.FuncNameAllRaffles, &rty.ReqAllRaffles{
		StartAfter: startAfter,
		Limit:      limit,
		Filters:    filters,
	})
}

// TicketsCmd 每张票的购买者
func TicketsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "List ticket owners by ticket number",
		Run:   tickets,
	}
	addIDFlag(cmd)
	cmd.Flags().Uint32("start_after", 0, "list tickets after this number, default from the first")
	cmd.Flags().Int32P("limit", "l", rty.DefaultQueryLimit, "page size")
	return cmd
}

func tickets(cmd *cobra.Command, args []string) {
	id, _ := cmd.Flags().GetUint64("id")
	limit, _ := cmd.Flags().GetInt32("limit")
	req := &rty.ReqAllTickets{RaffleID: id, Limit: limit}
	if cmd.Flags().Changed("start_after") {
		start, _ := cmd.Flags().GetUint32("start_after")
		req.StartAfter = &start
	}
	commands.Query(cmd, rty.RaffleX, rty.FuncNameAllTickets, req)
}

// TicketCountCmd 某个地址的票数
func TicketCountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Get the number of tickets bought by an address",
		Run: func(cmd *cobra.Command, args []string) {
			id, _ := cmd.Flags().GetUint64("id")
			addr, _ := cmd.Flags().GetString("addr")
			commands.Query(cmd, rty.RaffleX, rty.FuncNameTicketCount, &rty.ReqTicketCount{RaffleID: id, Owner: addr})
		},
	}
	addIDFlag(cmd)
	cmd.Flags().StringP("addr", "a", "", "buyer address")
	cmd.MarkFlagRequired("addr")
	return cmd
}
