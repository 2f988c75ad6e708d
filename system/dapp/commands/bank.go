// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"os"

	"github.com/33cn/raffle/types"
	"github.com/spf13/cobra"
)

// BankCmd bank command
func BankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bank",
		Short: "Construct bank transactions",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		MintCmd(),
		SendCmd(),
	)
	return cmd
}

// MintCmd 创世地址增发
func MintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint coins, only the genesis address can do it",
		Run:   mint,
	}
	addBankFlags(cmd)
	return cmd
}

// SendCmd 转账
func SendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send coins to an address",
		Run:   send,
	}
	addBankFlags(cmd)
	return cmd
}

func addBankFlags(cmd *cobra.Command) {
	AddTxFlags(cmd)
	cmd.Flags().String("to", "", "receiver address")
	cmd.MarkFlagRequired("to")
	cmd.Flags().StringP("coins", "a", "", "coins, e.g. 100ustars")
	cmd.MarkFlagRequired("coins")
}

func parseBankFlags(cmd *cobra.Command) (string, types.Coins, bool) {
	to, _ := cmd.Flags().GetString("to")
	coinsStr, _ := cmd.Flags().GetString("coins")
	coins, err := types.ParseCoins(coinsStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return "", nil, false
	}
	return to, coins, true
}

func mint(cmd *cobra.Command, args []string) {
	to, coins, ok := parseBankFlags(cmd)
	if !ok {
		return
	}
	SendTx(cmd, types.BankX, &types.BankAction{Ty: types.BankActionMint, Mint: &types.BankMint{To: to, Coins: coins}})
}

func send(cmd *cobra.Command, args []string) {
	to, coins, ok := parseBankFlags(cmd)
	if !ok {
		return
	}
	SendTx(cmd, types.BankX, &types.BankAction{Ty: types.BankActionSend, Send: &types.BankSend{To: to, Coins: coins}})
}
