// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/33cn/raffle/common/address"
	"github.com/33cn/raffle/types"
	"github.com/33cn/raffle/util"
	"github.com/spf13/cobra"
)

// AccountCmd account command
func AccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account management",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		KeyGenCmd(),
		AddrCmd(),
		GetBalanceCmd(),
		ExecAddrCmd(),
	)
	return cmd
}

// KeyGenCmd 生成新的私钥和地址
func KeyGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new secp256k1 key and address",
		Run:   keygen,
	}
	cmd.Flags().StringP("out", "o", "", "write the private key to this file")
	return cmd
}

func keygen(cmd *cobra.Command, args []string) {
	out, _ := cmd.Flags().GetString("out")
	addr, priv := util.Genaddress()
	key := util.HexPrivKey(priv)
	if out != "" {
		if _, err := util.WriteStringToFile(out, key); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		key = out
	}
	PrintJSON(map[string]string{"addr": addr, "key": key})
}

// AddrCmd 从私钥计算地址
func AddrCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addr",
		Short: "Get the address of a hex private key",
		Run: func(cmd *cobra.Command, args []string) {
			key, _ := cmd.Flags().GetString("key")
			_, addr, err := util.PrivKeyFromHex(key)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}
			fmt.Println(addr)
		},
	}
	cmd.Flags().StringP("key", "k", "", "private key, hex")
	cmd.MarkFlagRequired("key")
	return cmd
}

// GetBalanceCmd get balance of an address
func GetBalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Get balance of an address",
		Run:   balance,
	}
	cmd.Flags().StringP("addr", "a", "", "account address")
	cmd.MarkFlagRequired("addr")
	cmd.Flags().StringP("denoms", "d", "ustars", "denoms, separated by ','")
	return cmd
}

func balance(cmd *cobra.Command, args []string) {
	addr, _ := cmd.Flags().GetString("addr")
	denoms, _ := cmd.Flags().GetString("denoms")
	Query(cmd, types.BankX, "GetBalance", &types.ReqBalance{Addr: addr, Denoms: strings.Split(denoms, ",")})
}

// ExecAddrCmd 合约地址
func ExecAddrCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec_addr",
		Short: "Get the address of an executor",
		Run: func(cmd *cobra.Command, args []string) {
			name, _ := cmd.Flags().GetString("exec")
			fmt.Println(address.ExecAddress(name))
		},
	}
	cmd.Flags().StringP("exec", "e", "", "executor name")
	cmd.MarkFlagRequired("exec")
	return cmd
}
