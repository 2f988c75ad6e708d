// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/33cn/raffle/plugin/dapp/drand/executor"
	dty "github.com/33cn/raffle/plugin/dapp/drand/types"
	"github.com/33cn/raffle/system/dapp/commands"
	"github.com/33cn/raffle/types"
	"github.com/spf13/cobra"
)

// DrandCmd drand command
func DrandCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drand",
		Short: "Drand beacon verifier",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		InstantiateCmd(),
		WithdrawCmd(),
		SchemeCmd(),
		VerifyCmd(),
		SignCmd(),
	)
	return cmd
}

// InstantiateCmd 设置签名方案
func InstantiateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instantiate",
		Short: "Instantiate the verifier with a scheme",
		Run: func(cmd *cobra.Command, args []string) {
			scheme, _ := cmd.Flags().GetString("scheme")
			commands.SendTx(cmd, dty.DrandX, &dty.DrandAction{
				Ty:          dty.DrandActionInstantiate,
				Instantiate: &dty.DrandInstantiate{Scheme: scheme},
			})
		},
	}
	commands.AddTxFlags(cmd)
	cmd.Flags().String("scheme", dty.SchemeChained, "drand scheme")
	return cmd
}

// WithdrawCmd 取回验证费
func WithdrawCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw collected verification fees",
		Run: func(cmd *cobra.Command, args []string) {
			to, _ := cmd.Flags().GetString("to")
			coinsStr, _ := cmd.Flags().GetString("coins")
			coins, err := types.ParseCoins(coinsStr)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}
			commands.SendTx(cmd, dty.DrandX, &dty.DrandAction{
				Ty:       dty.DrandActionWithdraw,
				Withdraw: &dty.DrandWithdraw{To: to, Coins: coins},
			})
		},
	}
	commands.AddTxFlags(cmd)
	cmd.Flags().String("to", "", "receiver address")
	cmd.MarkFlagRequired("to")
	cmd.Flags().StringP("coins", "a", "", "coins, e.g. 10ustars")
	cmd.MarkFlagRequired("coins")
	return cmd
}

// SchemeCmd 查询方案
func SchemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scheme",
		Short: "Get the verifier scheme",
		Run: func(cmd *cobra.Command, args []string) {
			commands.Query(cmd, dty.DrandX, dty.FuncNameScheme, nil)
		},
	}
}

// VerifyCmd 只读验证一个轮次
func VerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a beacon without sending a transaction",
		Run:   verify,
	}
	AddBeaconFlags(cmd)
	cmd.Flags().String("pubkey", "", "drand public key, hex")
	cmd.MarkFlagRequired("pubkey")
	return cmd
}

// AddBeaconFlags 信标参数
func AddBeaconFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64("round", 0, "drand round")
	cmd.MarkFlagRequired("round")
	cmd.Flags().String("prev", "", "previous signature, hex")
	cmd.Flags().String("sig", "", "signature, hex")
	cmd.MarkFlagRequired("sig")
}

// GetBeaconFlags 解析信标参数
func GetBeaconFlags(cmd *cobra.Command) (round uint64, prev, sig []byte, err error) {
	round, _ = cmd.Flags().GetUint64("round")
	prevStr, _ := cmd.Flags().GetString("prev")
	sigStr, _ := cmd.Flags().GetString("sig")
	if prev, err = hex.DecodeString(prevStr); err != nil {
		return
	}
	sig, err = hex.DecodeString(sigStr)
	return
}

func verify(cmd *cobra.Command, args []string) {
	round, prev, sig, err := GetBeaconFlags(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	pubStr, _ := cmd.Flags().GetString("pubkey")
	pub, err := hex.DecodeString(pubStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	commands.Query(cmd, dty.DrandX, dty.FuncNameVerify, &dty.DrandVerify{
		PublicKey:         pub,
		Round:             round,
		PreviousSignature: prev,
		Signature:         sig,
	})
}

// SignCmd 用本地密钥模拟 drand 签名, 只用于测试网
func SignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a round with a local key, for test networks",
		Run:   sign,
	}
	cmd.Flags().String("scheme", dty.SchemeChained, "drand scheme")
	cmd.Flags().String("seed", "", "key seed, hex, at least 32 bytes")
	cmd.MarkFlagRequired("seed")
	cmd.Flags().Uint64("round", 0, "drand round")
	cmd.MarkFlagRequired("round")
	cmd.Flags().String("prev", "", "previous signature, hex")
	return cmd
}

func sign(cmd *cobra.Command, args []string) {
	scheme, _ := cmd.Flags().GetString("scheme")
	seedStr, _ := cmd.Flags().GetString("seed")
	round, _ := cmd.Flags().GetUint64("round")
	prevStr, _ := cmd.Flags().GetString("prev")
	seed, err := hex.DecodeString(seedStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	prev, err := hex.DecodeString(prevStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	signer, err := executor.NewBeaconSigner(scheme, seed)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	sig := signer.Sign(round, prev)
	commands.PrintJSON(map[string]interface{}{
		"pubkey":     hex.EncodeToString(signer.PublicKey()),
		"round":      round,
		"signature":  hex.EncodeToString(sig),
		"randomness": hex.EncodeToString(executor.Randomness(sig)),
	})
}
