// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	drandcmd "github.com/33cn/raffle/plugin/dapp/drand/commands"
	nty "github.com/33cn/raffle/plugin/dapp/nft/types"
	"github.com/33cn/raffle/plugin/dapp/raffle/executor"
	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	"github.com/33cn/raffle/system/dapp/commands"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// RaffleCmd raffle command
func RaffleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "raffle",
		Short: "NFT and coin raffles",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		InstantiateCmd(),
		CreateCmd(),
		ModifyCmd(),
		CancelCmd(),
		BuyCmd(),
		RandomnessCmd(),
		ClaimCmd(),
		LockCmd(),
		FundRandomnessCmd(),
		UpdateConfigCmd(),
		QueryCmd(),
	)
	return cmd
}

// ParseAsset 解析资产: "100ustars", "cw721:<collection>:<token>" 或 "sg721:<collection>:<token>"
func ParseAsset(s string) (*rty.AssetInfo, error) {
	s = strings.TrimSpace(s)
	parts := strings.SplitN(s, ":", 3)
	if len(parts) == 1 {
		coin, err := types.ParseCoin(s)
		if err != nil {
			return nil, errors.Wrapf(err, "parse asset %q", s)
		}
		return &rty.AssetInfo{Ty: rty.AssetCoin, Coin: coin}, nil
	}
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return nil, errors.Wrapf(rty.ErrWrongAssetType, "parse asset %q", s)
	}
	switch parts[0] {
	case nty.Cw721X:
		return rty.NewCw721Asset(parts[1], parts[2]), nil
	case nty.Sg721X:
		return rty.NewSg721Asset(parts[1], parts[2]), nil
	}
	return nil, errors.Wrapf(rty.ErrWrongAssetType, "parse asset %q", s)
}

//ParseAssets 批量解析
func ParseAssets(list []string) ([]*rty.AssetInfo, error) {
	var assets []*rty.AssetInfo
	for _, s := range list {
		asset, err := ParseAsset(s)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, nil
}

// NewInstantiate 用节点配置生成初始化交易, owner 为空时用配置中的 owner
func NewInstantiate(cfg *types.RaffleConfig, owner string) (*rty.RaffleInstantiate, error) {
	if cfg == nil {
		return nil, errors.Wrap(types.ErrInvalidParam, "raffle config is empty")
	}
	if cfg.MinimumRaffleDuration < 0 || cfg.MinimumRaffleTimeout < 0 {
		return nil, errors.Wrap(rty.ErrInvalidInput, "negative raffle duration")
	}
	coins, err := types.ParseCoins(strings.Join(cfg.CreationCoins, ","))
	if err != nil {
		return nil, errors.Wrap(err, "parse creationCoins")
	}
	pub, err := hex.DecodeString(cfg.DrandPublicKey)
	if err != nil {
		return nil, errors.Wrap(err, "parse drandPublicKey")
	}
	var fee *types.Coin
	if cfg.RandomnessFee != "" {
		if fee, err = types.ParseCoin(cfg.RandomnessFee); err != nil {
			return nil, errors.Wrap(err, "parse randomnessFee")
		}
	}
	if owner == "" {
		owner = cfg.Owner
	}
	return &rty.RaffleInstantiate{
		Name:                  cfg.Name,
		Owner:                 owner,
		FeeAddr:               cfg.FeeAddr,
		MinimumRaffleDuration: uint64(cfg.MinimumRaffleDuration),
		MinimumRaffleTimeout:  uint64(cfg.MinimumRaffleTimeout),
		MaxParticipantNumber:  cfg.MaxParticipantNumber,
		RaffleFee:             cfg.RaffleFee,
		CreationCoins:         coins,
		DrandPublicKey:        pub,
		RandomnessFee:         fee,
		DrandGenesis:          cfg.DrandGenesis,
		DrandPeriod:           cfg.DrandPeriod,
	}, nil
}

// InstantiateCmd 用配置文件中的 [raffle] 初始化合约
func InstantiateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instantiate",
		Short: "Instantiate the raffle contract from the [raffle] config section",
		Run:   instantiate,
	}
	commands.AddTxFlags(cmd)
	cmd.Flags().String("owner", "", "contract owner, default the config owner or sender")
	return cmd
}

func instantiate(cmd *cobra.Command, args []string) {
	owner, _ := cmd.Flags().GetString("owner")
	cfg, err := commands.LoadConfig(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	payload, err := NewInstantiate(cfg.Raffle, owner)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	commands.SendTx(cmd, rty.RaffleX, &rty.RaffleAction{Ty: rty.RaffleActionInstantiate, Instantiate: payload})
}

func addOptionFlags(cmd *cobra.Command) {
	cmd.Flags().Int64("start", 0, "start timestamp, default block time")
	cmd.Flags().Uint64("duration", 0, "ticket sale duration in seconds, default the minimum")
	cmd.Flags().Uint64("timeout", 0, "randomness window in seconds, default the minimum")
	cmd.Flags().String("comment", "", "comment")
	cmd.Flags().Uint32("max_participants", 0, "max tickets of the raffle, default the config value")
	cmd.Flags().Uint32("max_per_address", 0, "max tickets per address, 0 no limit")
	cmd.Flags().Uint32("preview", 0, "index of the preview asset")
	cmd.Flags().Uint32("winners", 0, "number of winners, default 1")
	cmd.Flags().Uint32("min_tickets", 0, "min tickets, refund buyers when not reached")
}

func getOptions(cmd *cobra.Command) *rty.RaffleOptions {
	opts := &rty.RaffleOptions{}
	opts.RaffleStartTimestamp, _ = cmd.Flags().GetInt64("start")
	opts.RaffleDuration, _ = cmd.Flags().GetUint64("duration")
	opts.RaffleTimeout, _ = cmd.Flags().GetUint64("timeout")
	opts.Comment, _ = cmd.Flags().GetString("comment")
	opts.MaxParticipantNumber, _ = cmd.Flags().GetUint32("max_participants")
	opts.MaxTicketPerAddress, _ = cmd.Flags().GetUint32("max_per_address")
	opts.RafflePreview, _ = cmd.Flags().GetUint32("preview")
	opts.NumberOfWinners, _ = cmd.Flags().GetUint32("winners")
	opts.MinTicketNumber, _ = cmd.Flags().GetUint32("min_tickets")
	return opts
}

func getPrice(cmd *cobra.Command) (*rty.AssetInfo, error) {
	priceStr, _ := cmd.Flags().GetString("price")
	if priceStr == "" {
		return nil, nil
	}
	return ParseAsset(priceStr)
}

// CreateCmd 创建抽奖, --funds 需要包含创建费和作为奖品的币
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a raffle, funds must cover the creation fee and coin prizes",
		Run:   create,
	}
	commands.AddTxFlags(cmd)
	cmd.Flags().String("owner", "", "raffle owner, default sender")
	cmd.Flags().StringArrayP("asset", "a", nil, "prize, e.g. cw721:<collection>:<token> or 100ustars")
	cmd.MarkFlagRequired("asset")
	cmd.Flags().StringP("price", "p", "", "ticket price, e.g. 10ustars")
	cmd.MarkFlagRequired("price")
	addOptionFlags(cmd)
	return cmd
}

func create(cmd *cobra.Command, args []string) {
	owner, _ := cmd.Flags().GetString("owner")
	list, _ := cmd.Flags().GetStringArray("asset")
	assets, err := ParseAssets(list)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	price, err := getPrice(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	commands.SendTx(cmd, rty.RaffleX, &rty.RaffleAction{
		Ty: rty.RaffleActionCreate,
		Create: &rty.RaffleCreate{
			Owner:             owner,
			Assets:            assets,
			RaffleOptions:     getOptions(cmd),
			RaffleTicketPrice: price,
		},
	})
}

// ModifyCmd 开始前修改参数
func ModifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modify",
		Short: "Modify a raffle before it starts",
		Run:   modify,
	}
	commands.AddTxFlags(cmd)
	addIDFlag(cmd)
	cmd.Flags().StringP("price", "p", "", "new ticket price, default unchanged")
	addOptionFlags(cmd)
	return cmd
}

func modify(cmd *cobra.Command, args []string) {
	id, _ := cmd.Flags().GetUint64("id")
	price, err := getPrice(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	commands.SendTx(cmd, rty.RaffleX, &rty.RaffleAction{
		Ty: rty.RaffleActionModify,
		Modify: &rty.RaffleModify{
			RaffleID:          id,
			RaffleOptions:     getOptions(cmd),
			RaffleTicketPrice: price,
		},
	})
}

func addIDFlag(cmd *cobra.Command) {
	cmd.Flags().Uint64P("id", "i", 0, "raffle id")
	cmd.MarkFlagRequired("id")
}

// CancelCmd 没有人买票时取消
func CancelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel a raffle without tickets and return the assets",
		Run: func(cmd *cobra.Command, args []string) {
			id, _ := cmd.Flags().GetUint64("id")
			commands.SendTx(cmd, rty.RaffleX, &rty.RaffleAction{
				Ty:     rty.RaffleActionCancel,
				Cancel: &rty.RaffleCancel{RaffleID: id},
			})
		},
	}
	commands.AddTxFlags(cmd)
	addIDFlag(cmd)
	return cmd
}

// BuyCmd 买票, 附带的资金按票价和数量计算
func BuyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Buy tickets, funds are computed from the ticket price",
		Run:   buy,
	}
	commands.AddTxFlags(cmd)
	addIDFlag(cmd)
	cmd.Flags().Uint32P("count", "n", 1, "number of tickets")
	cmd.Flags().StringP("price", "p", "", "ticket price, e.g. 10ustars")
	cmd.MarkFlagRequired("price")
	return cmd
}

func buy(cmd *cobra.Command, args []string) {
	id, _ := cmd.Flags().GetUint64("id")
	count, _ := cmd.Flags().GetUint32("count")
	price, err := getPrice(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	if !price.IsCoin() {
		fmt.Fprintln(os.Stderr, rty.ErrWrongFundsType)
		return
	}
	cost, err := executor.TicketCost(price.Coin, count)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	if err := cmd.Flags().Set("funds", cost.String()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	commands.SendTx(cmd, rty.RaffleX, &rty.RaffleAction{
		Ty: rty.RaffleActionBuyTicket,
		BuyTicket: &rty.RaffleBuyTicket{
			RaffleID:    id,
			TicketCount: count,
			SentAssets:  &rty.AssetInfo{Ty: rty.AssetCoin, Coin: cost},
		},
	})
}

// RandomnessCmd 提交 drand 随机数
func RandomnessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "randomness",
		Short: "Submit a drand beacon for a closed raffle",
		Run:   randomness,
	}
	commands.AddTxFlags(cmd)
	addIDFlag(cmd)
	drandcmd.AddBeaconFlags(cmd)
	return cmd
}

func randomness(cmd *cobra.Command, args []string) {
	id, _ := cmd.Flags().GetUint64("id")
	round, prev, sig, err := drandcmd.GetBeaconFlags(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	commands.SendTx(cmd, rty.RaffleX, &rty.RaffleAction{
		Ty: rty.RaffleActionUpdateRandomness,
		UpdateRandomness: &rty.RaffleUpdateRandomness{
			RaffleID: id,
			Randomness: &rty.DrandRandomness{
				Round:             round,
				PreviousSignature: prev,
				Signature:         sig,
			},
		},
	})
}

// ClaimCmd 开奖
func ClaimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim",
		Short: "Draw the winners and distribute the assets",
		Run: func(cmd *cobra.Command, args []string) {
			id, _ := cmd.Flags().GetUint64("id")
			commands.SendTx(cmd, rty.RaffleX, &rty.RaffleAction{
				Ty:    rty.RaffleActionClaim,
				Claim: &rty.RaffleClaim{RaffleID: id},
			})
		},
	}
	commands.AddTxFlags(cmd)
	addIDFlag(cmd)
	return cmd
}

// LockCmd 锁定或解锁合约
func LockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Lock or unlock the contract, admin only",
		Run: func(cmd *cobra.Command, args []string) {
			unlock, _ := cmd.Flags().GetBool("unlock")
			commands.SendTx(cmd, rty.RaffleX, &rty.RaffleAction{
				Ty:         rty.RaffleActionToggleLock,
				ToggleLock: &rty.RaffleToggleLock{Lock: !unlock},
			})
		},
	}
	commands.AddTxFlags(cmd)
	cmd.Flags().Bool("unlock", false, "unlock instead of lock")
	return cmd
}

// FundRandomnessCmd 充值随机数费用池, 金额由 --funds 指定
func FundRandomnessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fund_randomness",
		Short: "Top up the pool that pays randomness verification fees, admin only",
		Run: func(cmd *cobra.Command, args []string) {
			commands.SendTx(cmd, rty.RaffleX, &rty.RaffleAction{
				Ty:             rty.RaffleActionFundRandomness,
				FundRandomness: &rty.RaffleFundRandomness{},
			})
		},
	}
	commands.AddTxFlags(cmd)
	cmd.MarkFlagRequired("funds")
	return cmd
}

// UpdateConfigCmd 修改配置, 只有指定的参数会被修改
func UpdateConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update_config",
		Short: "Update the contract config, admin only",
		Run:   updateConfig,
	}
	commands.AddTxFlags(cmd)
	cmd.Flags().String("name", "", "contract name")
	cmd.Flags().String("owner", "", "new owner")
	cmd.Flags().String("fee_addr", "", "fee address")
	cmd.Flags().Uint64("min_duration", 0, "minimum raffle duration")
	cmd.Flags().Uint64("min_timeout", 0, "minimum raffle timeout")
	cmd.Flags().Uint32("max_participants", 0, "max tickets per raffle")
	cmd.Flags().String("fee", "", "fee rate, e.g. 0.05")
	cmd.Flags().String("creation_coins", "", "creation fee options, e.g. 10ustars,5uatom")
	cmd.Flags().String("verifier", "", "verifier executor")
	cmd.Flags().String("pubkey", "", "drand public key, hex")
	cmd.Flags().String("randomness_fee", "", "verification fee, e.g. 1ustars")
	cmd.Flags().Int64("drand_genesis", 0, "drand genesis time")
	cmd.Flags().Int64("drand_period", 0, "drand period in seconds")
	return cmd
}

func updateConfig(cmd *cobra.Command, args []string) {
	payload, err := getUpdateConfig(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	commands.SendTx(cmd, rty.RaffleX, &rty.RaffleAction{Ty: rty.RaffleActionUpdateConfig, UpdateConfig: payload})
}

func getUpdateConfig(cmd *cobra.Command) (*rty.RaffleUpdateConfig, error) {
	flags := cmd.Flags()
	payload := &rty.RaffleUpdateConfig{}
	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	payload.Name = str("name")
	payload.Owner = str("owner")
	payload.FeeAddr = str("fee_addr")
	payload.RaffleFee = str("fee")
	payload.Verifier = str("verifier")
	if flags.Changed("min_duration") {
		v, _ := flags.GetUint64("min_duration")
		payload.MinimumRaffleDuration = &v
	}
	if flags.Changed("min_timeout") {
		v, _ := flags.GetUint64("min_timeout")
		payload.MinimumRaffleTimeout = &v
	}
	if flags.Changed("max_participants") {
		v, _ := flags.GetUint32("max_participants")
		payload.MaxParticipantNumber = &v
	}
	if flags.Changed("drand_genesis") {
		v, _ := flags.GetInt64("drand_genesis")
		payload.DrandGenesis = &v
	}
	if flags.Changed("drand_period") {
		v, _ := flags.GetInt64("drand_period")
		payload.DrandPeriod = &v
	}
	if s := str("creation_coins"); s != nil {
		coins, err := types.ParseCoins(*s)
		if err != nil {
			return nil, err
		}
		payload.CreationCoins = &rty.CoinList{Coins: coins}
	}
	if s := str("pubkey"); s != nil {
		pub, err := hex.DecodeString(*s)
		if err != nil {
			return nil, err
		}
		payload.DrandPublicKey = pub
	}
	if s := str("randomness_fee"); s != nil {
		fee, err := types.ParseCoin(*s)
		if err != nil {
			return nil, err
		}
		payload.RandomnessFee = fee
	}
	return payload, nil
}
