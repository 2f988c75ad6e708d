// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"os"

	nty "github.com/33cn/raffle/plugin/dapp/nft/types"
	"github.com/33cn/raffle/system/dapp/commands"
	"github.com/spf13/cobra"
)

// NftCmd cw721 和 sg721 的命令, 用 --standard 选择执行器
func NftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nft",
		Short: "NFT collection management",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.PersistentFlags().StringP("standard", "s", nty.Cw721X, "nft standard, cw721 or sg721")
	cmd.AddCommand(
		CreateCollectionCmd(),
		MintCmd(),
		ApproveCmd(),
		RevokeCmd(),
		TransferCmd(),
		OwnerOfCmd(),
		TokensCmd(),
		CollectionInfoCmd(),
	)
	return cmd
}

func getStandard(cmd *cobra.Command) (string, bool) {
	standard, _ := cmd.Flags().GetString("standard")
	if !nty.IsNftExecer(standard) {
		fmt.Fprintln(os.Stderr, "standard must be cw721 or sg721")
		return "", false
	}
	return standard, true
}

func sendNftTx(cmd *cobra.Command, action *nty.NftAction) {
	standard, ok := getStandard(cmd)
	if !ok {
		return
	}
	commands.SendTx(cmd, standard, action)
}

// CreateCollectionCmd 创建集合
func CreateCollectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a collection",
		Run:   createCollection,
	}
	commands.AddTxFlags(cmd)
	cmd.Flags().StringP("name", "n", "", "collection name")
	cmd.MarkFlagRequired("name")
	cmd.Flags().String("symbol", "", "collection symbol")
	cmd.MarkFlagRequired("symbol")
	cmd.Flags().String("minter", "", "minter address, default sender")
	return cmd
}

func createCollection(cmd *cobra.Command, args []string) {
	name, _ := cmd.Flags().GetString("name")
	symbol, _ := cmd.Flags().GetString("symbol")
	minter, _ := cmd.Flags().GetString("minter")
	sendNftTx(cmd, &nty.NftAction{
		Ty:               nty.NftActionCreateCollection,
		CreateCollection: &nty.NftCreateCollection{Name: name, Symbol: symbol, Minter: minter},
	})
}

func addTokenFlags(cmd *cobra.Command) {
	cmd.Flags().String("collection", "", "collection address")
	cmd.MarkFlagRequired("collection")
	cmd.Flags().String("token", "", "token id")
	cmd.MarkFlagRequired("token")
}

func getTokenFlags(cmd *cobra.Command) (string, string) {
	collection, _ := cmd.Flags().GetString("collection")
	token, _ := cmd.Flags().GetString("token")
	return collection, token
}

// MintCmd 铸造
func MintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint a token",
		Run: func(cmd *cobra.Command, args []string) {
			collection, token := getTokenFlags(cmd)
			owner, _ := cmd.Flags().GetString("owner")
			sendNftTx(cmd, &nty.NftAction{
				Ty:   nty.NftActionMint,
				Mint: &nty.NftMint{Collection: collection, TokenID: token, Owner: owner},
			})
		},
	}
	commands.AddTxFlags(cmd)
	addTokenFlags(cmd)
	cmd.Flags().String("owner", "", "token owner, default sender")
	return cmd
}

// ApproveCmd 授权
func ApproveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approve",
		Short: "Approve a spender",
		Run: func(cmd *cobra.Command, args []string) {
			collection, token := getTokenFlags(cmd)
			spender, _ := cmd.Flags().GetString("spender")
			sendNftTx(cmd, &nty.NftAction{
				Ty:      nty.NftActionApprove,
				Approve: &nty.NftApprove{Collection: collection, TokenID: token, Spender: spender},
			})
		},
	}
	commands.AddTxFlags(cmd)
	addTokenFlags(cmd)
	cmd.Flags().String("spender", "", "spender address")
	cmd.MarkFlagRequired("spender")
	return cmd
}

// RevokeCmd 取消授权
func RevokeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revoke",
		Short: "Revoke a spender",
		Run: func(cmd *cobra.Command, args []string) {
			collection, token := getTokenFlags(cmd)
			spender, _ := cmd.Flags().GetString("spender")
			sendNftTx(cmd, &nty.NftAction{
				Ty:     nty.NftActionRevoke,
				Revoke: &nty.NftRevoke{Collection: collection, TokenID: token, Spender: spender},
			})
		},
	}
	commands.AddTxFlags(cmd)
	addTokenFlags(cmd)
	cmd.Flags().String("spender", "", "spender address")
	cmd.MarkFlagRequired("spender")
	return cmd
}

// TransferCmd 转移
func TransferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer a token",
		Run: func(cmd *cobra.Command, args []string) {
			collection, token := getTokenFlags(cmd)
			to, _ := cmd.Flags().GetString("to")
			sendNftTx(cmd, nty.NewTransferAction(collection, token, to))
		},
	}
	commands.AddTxFlags(cmd)
	addTokenFlags(cmd)
	cmd.Flags().String("to", "", "recipient address")
	cmd.MarkFlagRequired("to")
	return cmd
}

// OwnerOfCmd 查询 owner
func OwnerOfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owner",
		Short: "Get owner and approvals of a token",
		Run: func(cmd *cobra.Command, args []string) {
			standard, ok := getStandard(cmd)
			if !ok {
				return
			}
			collection, token := getTokenFlags(cmd)
			commands.Query(cmd, standard, nty.FuncNameOwnerOf, &nty.ReqOwnerOf{Collection: collection, TokenID: token})
		},
	}
	addTokenFlags(cmd)
	return cmd
}

// TokensCmd 查询某个地址持有的 token
func TokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "List tokens of an owner",
		Run: func(cmd *cobra.Command, args []string) {
			standard, ok := getStandard(cmd)
			if !ok {
				return
			}
			collection, _ := cmd.Flags().GetString("collection")
			owner, _ := cmd.Flags().GetString("owner")
			start, _ := cmd.Flags().GetString("start")
			limit, _ := cmd.Flags().GetInt32("limit")
			commands.Query(cmd, standard, nty.FuncNameTokens, &nty.ReqTokens{Collection: collection, Owner: owner, StartAfter: start, Limit: limit})
		},
	}
	cmd.Flags().String("collection", "", "collection address")
	cmd.MarkFlagRequired("collection")
	cmd.Flags().String("owner", "", "owner address")
	cmd.MarkFlagRequired("owner")
	cmd.Flags().String("start", "", "start after token id")
	cmd.Flags().Int32("limit", 0, "page size")
	return cmd
}

// CollectionInfoCmd 集合信息
func CollectionInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Get collection info",
		Run: func(cmd *cobra.Command, args []string) {
			standard, ok := getStandard(cmd)
			if !ok {
				return
			}
			collection, _ := cmd.Flags().GetString("collection")
			commands.Query(cmd, standard, nty.FuncNameCollectionInfo, &nty.ReqCollectionInfo{Collection: collection})
		},
	}
	cmd.Flags().String("collection", "", "collection address")
	cmd.MarkFlagRequired("collection")
	return cmd
}
