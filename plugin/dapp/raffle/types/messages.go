// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/raffle/types"
)

//RaffleAction 交易
type RaffleAction struct {
	Ty               int32
	Instantiate      *RaffleInstantiate
	Create           *RaffleCreate
	Modify           *RaffleModify
	Cancel           *RaffleCancel
	BuyTicket        *RaffleBuyTicket
	UpdateRandomness *RaffleUpdateRandomness
	Claim            *RaffleClaim
	UpdateConfig     *RaffleUpdateConfig
	ToggleLock       *RaffleToggleLock
	FundRandomness   *RaffleFundRandomness
}

//RaffleInstantiate 初始化合约配置, 只能执行一次
type RaffleInstantiate struct {
	Name                  string
	Owner                 string
	FeeAddr               string
	MinimumRaffleDuration uint64
	MinimumRaffleTimeout  uint64
	MaxParticipantNumber  uint32
	RaffleFee             string
	CreationCoins         []*types.Coin
	Verifier              string
	DrandPublicKey        []byte
	RandomnessFee         *types.Coin
	DrandGenesis          int64
	DrandPeriod           int64
}

//RaffleOptions 抽奖参数, 时间单位为秒
type RaffleOptions struct {
	RaffleStartTimestamp int64
	RaffleDuration       uint64
	RaffleTimeout        uint64
	Comment              string
	MaxParticipantNumber uint32
	MaxTicketPerAddress  uint32
	RafflePreview        uint32
	NumberOfWinners      uint32
	MinTicketNumber      uint32
}

//RaffleCreate 附带的资金 = 创建费 + 作为奖品的原生币
type RaffleCreate struct {
	Owner             string
	Assets            []*AssetInfo
	RaffleOptions     *RaffleOptions
	RaffleTicketPrice *AssetInfo
}

//RaffleModify 开始前修改参数, RaffleTicketPrice 为空时保持不变
type RaffleModify struct {
	RaffleID          uint64
	RaffleOptions     *RaffleOptions
	RaffleTicketPrice *AssetInfo
}

//RaffleCancel 取消
type RaffleCancel struct {
	RaffleID uint64
}

//RaffleBuyTicket SentAssets 必须等于票价乘以数量
type RaffleBuyTicket struct {
	RaffleID    uint64
	TicketCount uint32
	SentAssets  *AssetInfo
}

//DrandRandomness drand 的一轮 beacon
type DrandRandomness struct {
	Round             uint64
	PreviousSignature []byte
	Signature         []byte
}

//RaffleUpdateRandomness 提交随机数, 由验证合约回调后生效
type RaffleUpdateRandomness struct {
	RaffleID   uint64
	Randomness *DrandRandomness
}

//RaffleClaim 开奖
type RaffleClaim struct {
	RaffleID uint64
}

//CoinList 用于可选的币列表字段
type CoinList struct {
	Coins []*types.Coin
}

//RaffleUpdateConfig 为空的字段保持不变
type RaffleUpdateConfig struct {
	Name                  *string
	Owner                 *string
	FeeAddr               *string
	MinimumRaffleDuration *uint64
	MinimumRaffleTimeout  *uint64
	MaxParticipantNumber  *uint32
	RaffleFee             *string
	CreationCoins         *CoinList
	Verifier              *string
	DrandPublicKey        []byte
	RandomnessFee         *types.Coin
	DrandGenesis          *int64
	DrandPeriod           *int64
}

//RaffleToggleLock 锁定后不能创建抽奖和买票
type RaffleToggleLock struct {
	Lock bool
}

//RaffleFundRandomness 把附带的资金存入随机数费用池
type RaffleFundRandomness struct {
}

//Config 合约配置
type Config struct {
	Name                  string
	Owner                 string
	FeeAddr               string
	LastRaffleID          uint64
	MinimumRaffleDuration uint64
	MinimumRaffleTimeout  uint64
	MaxParticipantNumber  uint32
	RaffleFee             string
	CreationCoins         []*types.Coin
	Verifier              string
	DrandPublicKey        []byte
	RandomnessFee         *types.Coin
	DrandGenesis          int64
	DrandPeriod           int64
	Locked                bool
	//RandomnessPool 支付验证费用的资金, 和托管的奖品及售票收入分开记账
	RandomnessPool []*types.Coin
}

//RandomnessRecord 已经验证通过的随机数
type RandomnessRecord struct {
	Randomness       []byte
	RandomnessRound  uint64
	RandomnessOwner  string
	Signature        []byte
	UpdatedBlockTime int64
}

//RaffleInfo 一次抽奖
type RaffleInfo struct {
	RaffleID          uint64
	Owner             string
	Assets            []*AssetInfo
	RaffleTicketPrice *AssetInfo
	NumberOfTickets   uint32
	Randomness        *RandomnessRecord
	Winners           []string
	WinningTickets    []uint32
	IsCancelled       bool
	IsClaimed         bool
	AccumulatedFees   int64
	RaffleOptions     *RaffleOptions
	CreatedBlockTime  int64
}

//HasRandomness 随机数是否已经提供
func (r *RaffleInfo) HasRandomness() bool {
	return r.Randomness != nil && len(r.Randomness.Randomness) > 0
}

//EndTimestamp 售票结束时间
func (r *RaffleInfo) EndTimestamp() int64 {
	return r.RaffleOptions.RaffleStartTimestamp + int64(r.RaffleOptions.RaffleDuration)
}

//TimeoutTimestamp 随机数更新窗口结束时间
func (r *RaffleInfo) TimeoutTimestamp() int64 {
	return r.EndTimestamp() + int64(r.RaffleOptions.RaffleTimeout)
}

//ReceiptRaffleCreate 创建日志
type ReceiptRaffleCreate struct {
	RaffleID uint64
	Owner    string
	Assets   []*AssetInfo
	Fee      []*types.Coin
}

//ReceiptRaffleUpdate 修改, 取消等只改变状态的日志
type ReceiptRaffleUpdate struct {
	RaffleID uint64
	Owner    string
	Sender   string
}

//ReceiptRaffleTicket 买票日志, 票号从 FirstIndex 开始连续
type ReceiptRaffleTicket struct {
	RaffleID   uint64
	Buyer      string
	Count      uint32
	FirstIndex uint32
	Amount     *types.Coin
}

//ReceiptRaffleRandomness 随机数请求和更新日志
type ReceiptRaffleRandomness struct {
	RaffleID uint64
	Round    uint64
	Sender   string
}

//ReceiptRaffleClaim 开奖日志, Refunded 表示票数不足已退款
type ReceiptRaffleClaim struct {
	RaffleID uint64
	Winners  []string
	Fee      int64
	Owner    int64
	Refunded bool
}

//ReceiptRaffleConfig 配置变动日志
type ReceiptRaffleConfig struct {
	Prev    *Config
	Current *Config
}

//ReqRaffleInfo 查询一次抽奖
type ReqRaffleInfo struct {
	RaffleID uint64
}

//ReplyRaffleInfo 带有计算出的状态
type ReplyRaffleInfo struct {
	RaffleID    uint64
	RaffleState string
	RaffleInfo  *RaffleInfo
}

//RaffleFilters 过滤条件, 为空的字段不过滤
type RaffleFilters struct {
	Owner           string
	ContainsToken   *NftAsset
	TicketDepositor string
	RaffleState     string
}

//ReqAllRaffles 按 id 倒序分页, StartAfter 为 0 从最新开始
type ReqAllRaffles struct {
	StartAfter uint64
	Limit      int32
	Filters    *RaffleFilters
}

//ReplyAllRaffles 列表
type ReplyAllRaffles struct {
	Raffles []*ReplyRaffleInfo
}

//ReqAllTickets 按票号升序分页
type ReqAllTickets struct {
	RaffleID   uint64
	StartAfter *uint32
	Limit      int32
}

//ReplyAllTickets 每张票的购买者
type ReplyAllTickets struct {
	Tickets []string
}

//ReqTicketCount 某个地址在一次抽奖中买的票数
type ReqTicketCount struct {
	RaffleID uint64
	Owner    string
}

//ReplyTicketCount 票数
type ReplyTicketCount struct {
	Count uint32
}

//ReqConfig 查询配置
type ReqConfig struct{}

//ReplyConfig 配置和相关地址
type ReplyConfig struct {
	Config       *Config
	ContractAddr string
	VerifierAddr string
}
