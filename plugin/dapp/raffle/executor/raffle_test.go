// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"

	dexec "github.com/33cn/raffle/plugin/dapp/drand/executor"
	dty "github.com/33cn/raffle/plugin/dapp/drand/types"
	nexec "github.com/33cn/raffle/plugin/dapp/nft/executor"
	nty "github.com/33cn/raffle/plugin/dapp/nft/types"
	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	drivers "github.com/33cn/raffle/system/dapp"
	"github.com/33cn/raffle/types"
	"github.com/33cn/raffle/util/testnode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var initOnce sync.Once

const denom = "ustars"

type testEnv struct {
	t       *testing.T
	mock    *testnode.ChainMock
	admin   string
	feeAddr string
	minter  string
	coll    string
	signer  *dexec.BeaconSigner
	tokenID int
}

func defaultInstantiate() *rty.RaffleInstantiate {
	return &rty.RaffleInstantiate{
		Name:                  "raffles",
		MinimumRaffleDuration: 60,
		MinimumRaffleTimeout:  60,
		MaxParticipantNumber:  100,
		RaffleFee:             "0.25",
	}
}

func initDrivers() {
	initOnce.Do(func() {
		Init(rty.RaffleX)
		dexec.Init(dty.DrandX)
		nexec.Init(nty.Cw721X)
		nexec.Init(nty.Sg721X)
	})
}

func newTestEnv(t *testing.T, modify func(*rty.RaffleInstantiate)) *testEnv {
	initDrivers()
	mock := testnode.New(nil)
	t.Cleanup(mock.Close)
	signer, err := dexec.NewBeaconSigner(dty.SchemeQuicknet, bytes.Repeat([]byte{9}, 32))
	require.NoError(t, err)
	env := &testEnv{
		t:       t,
		mock:    mock,
		admin:   mock.NewAccount(types.NewCoin(denom, 1000)),
		feeAddr: mock.NewAccount(),
		minter:  mock.NewAccount(),
		signer:  signer,
	}
	_, err = mock.Send(env.admin, dty.DrandX, &dty.DrandAction{
		Ty:          dty.DrandActionInstantiate,
		Instantiate: &dty.DrandInstantiate{Scheme: dty.SchemeQuicknet},
	}, nil)
	require.NoError(t, err)

	inst := defaultInstantiate()
	inst.FeeAddr = env.feeAddr
	inst.DrandPublicKey = signer.PublicKey()
	if modify != nil {
		modify(inst)
	}
	_, err = mock.Send(env.admin, rty.RaffleX, &rty.RaffleAction{Ty: rty.RaffleActionInstantiate, Instantiate: inst}, nil)
	require.NoError(t, err)

	_, err = mock.Send(env.minter, nty.Cw721X, &nty.NftAction{
		Ty:               nty.NftActionCreateCollection,
		CreateCollection: &nty.NftCreateCollection{Name: "punks", Symbol: "PUNK"},
	}, nil)
	require.NoError(t, err)
	env.coll = nty.CollectionAddress(nty.Cw721X, "punks")
	return env
}

func (env *testEnv) send(from string, action *rty.RaffleAction, funds types.Coins) error {
	_, err := env.mock.Send(from, rty.RaffleX, action, funds)
	return err
}

//mintNft 铸造一个 token 给 owner, approve 为 true 时授权给合约
func (env *testEnv) mintNft(owner string, approve bool) *rty.AssetInfo {
	env.tokenID++
	tokenID := fmt.Sprintf("%d", env.tokenID)
	_, err := env.mock.Send(env.minter, nty.Cw721X, &nty.NftAction{
		Ty:   nty.NftActionMint,
		Mint: &nty.NftMint{Collection: env.coll, TokenID: tokenID, Owner: owner},
	}, nil)
	require.NoError(env.t, err)
	if approve {
		_, err = env.mock.Send(owner, nty.Cw721X, &nty.NftAction{
			Ty:      nty.NftActionApprove,
			Approve: &nty.NftApprove{Collection: env.coll, TokenID: tokenID, Spender: GetExecAddress()},
		}, nil)
		require.NoError(env.t, err)
	}
	return rty.NewCw721Asset(env.coll, tokenID)
}

func (env *testEnv) nftOwner(asset *rty.AssetInfo) string {
	reply, err := env.mock.Query(nty.Cw721X, nty.FuncNameOwnerOf, &nty.ReqOwnerOf{Collection: asset.Cw721Coin.Address, TokenID: asset.Cw721Coin.TokenID})
	require.NoError(env.t, err)
	return reply.(*nty.ReplyOwnerOf).Owner
}

func createAction(assets []*rty.AssetInfo, price int64, opts *rty.RaffleOptions) *rty.RaffleAction {
	return &rty.RaffleAction{
		Ty: rty.RaffleActionCreate,
		Create: &rty.RaffleCreate{
			Assets:            assets,
			RaffleOptions:     opts,
			RaffleTicketPrice: rty.NewCoinAsset(denom, price),
		},
	}
}

func (env *testEnv) create(owner string, assets []*rty.AssetInfo, price int64, opts *rty.RaffleOptions, funds types.Coins) uint64 {
	require.NoError(env.t, env.send(owner, createAction(assets, price, opts), funds))
	return env.config().Config.LastRaffleID
}

func (env *testEnv) nftRaffle(owner string, opts *rty.RaffleOptions) (uint64, *rty.AssetInfo) {
	asset := env.mintNft(owner, true)
	return env.create(owner, []*rty.AssetInfo{asset}, 4, opts, nil), asset
}

func (env *testEnv) buy(buyer string, id uint64, count uint32, amount int64) error {
	action := &rty.RaffleAction{
		Ty:        rty.RaffleActionBuyTicket,
		BuyTicket: &rty.RaffleBuyTicket{RaffleID: id, TicketCount: count, SentAssets: rty.NewCoinAsset(denom, amount)},
	}
	return env.send(buyer, action, types.Coins{types.NewCoin(denom, amount)})
}

func (env *testEnv) beacon(round uint64) *rty.DrandRandomness {
	return &rty.DrandRandomness{Round: round, Signature: env.signer.Sign(round, nil)}
}

func (env *testEnv) updateRandomness(from string, id uint64, beacon *rty.DrandRandomness) error {
	return env.send(from, &rty.RaffleAction{
		Ty:               rty.RaffleActionUpdateRandomness,
		UpdateRandomness: &rty.RaffleUpdateRandomness{RaffleID: id, Randomness: beacon},
	}, nil)
}

func (env *testEnv) claim(from string, id uint64) error {
	return env.send(from, &rty.RaffleAction{Ty: rty.RaffleActionClaim, Claim: &rty.RaffleClaim{RaffleID: id}}, nil)
}

func (env *testEnv) info(id uint64) *rty.ReplyRaffleInfo {
	reply, err := env.mock.Query(rty.RaffleX, rty.FuncNameRaffleInfo, &rty.ReqRaffleInfo{RaffleID: id})
	require.NoError(env.t, err)
	return reply.(*rty.ReplyRaffleInfo)
}

func (env *testEnv) config() *rty.ReplyConfig {
	reply, err := env.mock.Query(rty.RaffleX, rty.FuncNameConfig, nil)
	require.NoError(env.t, err)
	return reply.(*rty.ReplyConfig)
}

func (env *testEnv) buyer() string {
	return env.mock.NewAccount(types.NewCoin(denom, 100))
}

func TestInitPanic(t *testing.T) {
	assert.Panics(t, func() { Init("lottery") })
}

func TestInstantiate(t *testing.T) {
	env := newTestEnv(t, nil)
	cfg := env.config()
	assert.Equal(t, "raffles", cfg.Config.Name)
	assert.Equal(t, env.admin, cfg.Config.Owner)
	assert.Equal(t, env.feeAddr, cfg.Config.FeeAddr)
	assert.Equal(t, dty.DrandX, cfg.Config.Verifier)
	assert.Equal(t, drivers.ExecAddress(dty.DrandX), cfg.VerifierAddr)
	assert.Equal(t, GetExecAddress(), cfg.ContractAddr)
	assert.Equal(t, uint64(0), cfg.Config.LastRaffleID)

	err := env.send(env.admin, &rty.RaffleAction{Ty: rty.RaffleActionInstantiate, Instantiate: defaultInstantiate()}, nil)
	assert.ErrorIs(t, err, rty.ErrAlreadyInstantiated)
}

func TestInstantiateValidation(t *testing.T) {
	cases := []struct {
		modify func(*rty.RaffleInstantiate)
		err    error
	}{
		{func(i *rty.RaffleInstantiate) { i.Name = "ab" }, rty.ErrInvalidName},
		{func(i *rty.RaffleInstantiate) { i.Name = strings.Repeat("a", 51) }, rty.ErrInvalidName},
		{func(i *rty.RaffleInstantiate) { i.RaffleFee = "1" }, rty.ErrInvalidFeeRate},
		{func(i *rty.RaffleInstantiate) { i.RaffleFee = "-0.5" }, rty.ErrInvalidFeeRate},
		{func(i *rty.RaffleInstantiate) { i.FeeAddr = "notanaddress" }, rty.ErrInvalidInput},
		{func(i *rty.RaffleInstantiate) { i.MinimumRaffleDuration = 0 }, rty.ErrInvalidInput},
		{func(i *rty.RaffleInstantiate) { i.Verifier = "oracle" }, rty.ErrVerifierNotFound},
		{func(i *rty.RaffleInstantiate) { i.DrandPublicKey = nil }, rty.ErrInvalidInput},
	}
	initDrivers()
	signer, err := dexec.NewBeaconSigner(dty.SchemeQuicknet, bytes.Repeat([]byte{9}, 32))
	require.NoError(t, err)
	mock := testnode.New(nil)
	defer mock.Close()
	admin := mock.NewAccount()
	for i, c := range cases {
		inst := defaultInstantiate()
		inst.DrandPublicKey = signer.PublicKey()
		c.modify(inst)
		_, err := mock.Send(admin, rty.RaffleX, &rty.RaffleAction{Ty: rty.RaffleActionInstantiate, Instantiate: inst}, nil)
		assert.ErrorIs(t, err, c.err, "case %d", i)
	}
	// 失败的初始化没有留下任何状态
	_, err = mock.Query(rty.RaffleX, rty.FuncNameConfig, nil)
	assert.ErrorIs(t, err, rty.ErrRaffleNotInitialized)
}

func TestHappyPath(t *testing.T) {
	env := newTestEnv(t, nil)
	owner := env.mock.NewAccount()
	id, asset := env.nftRaffle(owner, &rty.RaffleOptions{RaffleDuration: 120})
	assert.Equal(t, uint64(1), id)
	assert.Equal(t, GetExecAddress(), env.nftOwner(asset))
	assert.Equal(t, rty.StateStarted, env.info(id).RaffleState)

	buyers := []string{env.buyer(), env.buyer(), env.buyer()}
	for _, b := range buyers {
		require.NoError(t, env.buy(b, id, 1, 4))
	}
	assert.Equal(t, int64(12), env.mock.Balance(GetExecAddress(), denom))
	info := env.info(id)
	assert.Equal(t, uint32(3), info.RaffleInfo.NumberOfTickets)
	assert.Equal(t, int64(12), info.RaffleInfo.AccumulatedFees)

	env.mock.AddTime(120 + 60)
	assert.Equal(t, rty.StateClosed, env.info(id).RaffleState)
	require.NoError(t, env.updateRandomness(buyers[0], id, env.beacon(10)))
	info = env.info(id)
	assert.Equal(t, rty.StateFinished, info.RaffleState)
	assert.Equal(t, uint64(10), info.RaffleInfo.Randomness.RandomnessRound)
	assert.Equal(t, buyers[0], info.RaffleInfo.Randomness.RandomnessOwner)
	assert.Len(t, info.RaffleInfo.Randomness.Randomness, 32)

	require.NoError(t, env.claim(env.mock.NewAccount(), id))
	info = env.info(id)
	assert.Equal(t, rty.StateClaimed, info.RaffleState)
	require.Len(t, info.RaffleInfo.Winners, 1)
	winner := info.RaffleInfo.Winners[0]
	assert.Contains(t, buyers, winner)
	assert.Equal(t, winner, env.nftOwner(asset))

	// floor(12 * 0.25) = 3
	assert.Equal(t, int64(3), env.mock.Balance(env.feeAddr, denom))
	assert.Equal(t, int64(9), env.mock.Balance(owner, denom))
	assert.Equal(t, int64(0), env.mock.Balance(GetExecAddress(), denom))

	// 只能开奖一次
	err := env.claim(owner, id)
	var stateErr *rty.WrongStateForClaimError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, rty.StateClaimed, stateErr.Status)
	assert.ErrorIs(t, err, rty.ErrWrongStateForClaim)
}

func TestClaimTooEarly(t *testing.T) {
	env := newTestEnv(t, nil)
	id, _ := env.nftRaffle(env.mock.NewAccount(), &rty.RaffleOptions{RaffleDuration: 120})
	require.NoError(t, env.buy(env.buyer(), id, 1, 4))

	var stateErr *rty.WrongStateForClaimError
	require.ErrorAs(t, env.claim(env.admin, id), &stateErr)
	assert.Equal(t, rty.StateStarted, stateErr.Status)

	// 售票结束但没有随机数
	env.mock.AddTime(500)
	require.ErrorAs(t, env.claim(env.admin, id), &stateErr)
	assert.Equal(t, rty.StateClosed, stateErr.Status)
}

func TestTicketCaps(t *testing.T) {
	env := newTestEnv(t, nil)
	id, _ := env.nftRaffle(env.mock.NewAccount(), &rty.RaffleOptions{MaxTicketPerAddress: 1})
	b := env.buyer()

	err := env.buy(b, id, 2, 8)
	var userErr *rty.TooMuchTicketsForUserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, rty.TooMuchTicketsForUserError{Max: 1, NbBefore: 0, NbAfter: 2}, *userErr)
	assert.Equal(t, int64(100), env.mock.Balance(b, denom))

	require.NoError(t, env.buy(b, id, 1, 4))
	require.ErrorAs(t, env.buy(b, id, 1, 4), &userErr)
	assert.Equal(t, rty.TooMuchTicketsForUserError{Max: 1, NbBefore: 1, NbAfter: 2}, *userErr)

	id, _ = env.nftRaffle(env.mock.NewAccount(), &rty.RaffleOptions{MaxParticipantNumber: 3})
	b1, b2 := env.buyer(), env.buyer()
	require.NoError(t, env.buy(b1, id, 2, 8))
	var totalErr *rty.TooMuchTicketsError
	require.ErrorAs(t, env.buy(b2, id, 2, 8), &totalErr)
	assert.Equal(t, rty.TooMuchTicketsError{Max: 3, NbBefore: 2, NbAfter: 4}, *totalErr)
	require.NoError(t, env.buy(b2, id, 1, 4))

	// 卖完后提前关闭
	assert.Equal(t, rty.StateClosed, env.info(id).RaffleState)
	assert.ErrorIs(t, env.buy(env.buyer(), id, 1, 4), rty.ErrCantBuyTickets)
}

func TestBuyTicketPayment(t *testing.T) {
	env := newTestEnv(t, nil)
	id, _ := env.nftRaffle(env.mock.NewAccount(), nil)
	b := env.buyer()

	assert.ErrorIs(t, env.buy(b, id, 0, 0), rty.ErrNoTicketsBought)
	assert.ErrorIs(t, env.buy(b, id, 2, 4), rty.ErrPaymentNotSufficient)

	// 声明的金额正确, 实际附带的资金不对
	action := &rty.RaffleAction{
		Ty:        rty.RaffleActionBuyTicket,
		BuyTicket: &rty.RaffleBuyTicket{RaffleID: id, TicketCount: 1, SentAssets: rty.NewCoinAsset(denom, 4)},
	}
	assert.ErrorIs(t, env.send(b, action, types.Coins{types.NewCoin(denom, 5)}), rty.ErrPaymentNotSufficient)
	assert.ErrorIs(t, env.buy(b, 99, 1, 4), rty.ErrRaffleNotFound)
	assert.Equal(t, int64(100), env.mock.Balance(b, denom))

	// 票号连续
	b2 := env.buyer()
	require.NoError(t, env.buy(b, id, 3, 12))
	require.NoError(t, env.buy(b2, id, 2, 8))
	reply, err := env.mock.Query(rty.RaffleX, rty.FuncNameAllTickets, &rty.ReqAllTickets{RaffleID: id})
	require.NoError(t, err)
	assert.Equal(t, []string{b, b, b, b2, b2}, reply.(*rty.ReplyAllTickets).Tickets)

	after := uint32(2)
	reply, err = env.mock.Query(rty.RaffleX, rty.FuncNameAllTickets, &rty.ReqAllTickets{RaffleID: id, StartAfter: &after, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{b2}, reply.(*rty.ReplyAllTickets).Tickets)

	// 最后一个票号之后没有下一页, 不会回到第 0 张
	last := uint32(math.MaxUint32)
	reply, err = env.mock.Query(rty.RaffleX, rty.FuncNameAllTickets, &rty.ReqAllTickets{RaffleID: id, StartAfter: &last})
	require.NoError(t, err)
	assert.Empty(t, reply.(*rty.ReplyAllTickets).Tickets)

	reply, err = env.mock.Query(rty.RaffleX, rty.FuncNameTicketCount, &rty.ReqTicketCount{RaffleID: id, Owner: b})
	require.NoError(t, err)
	assert.Equal(t, uint32(3), reply.(*rty.ReplyTicketCount).Count)
}

func TestNoTicketsOwnerWins(t *testing.T) {
	env := newTestEnv(t, nil)
	owner := env.mock.NewAccount()
	id, asset := env.nftRaffle(owner, nil)
	env.mock.AddTime(200)
	require.NoError(t, env.updateRandomness(env.admin, id, env.beacon(3)))
	require.NoError(t, env.claim(env.admin, id))

	info := env.info(id)
	assert.Equal(t, []string{owner}, info.RaffleInfo.Winners)
	assert.Equal(t, owner, env.nftOwner(asset))
	assert.Equal(t, int64(0), env.mock.Balance(env.feeAddr, denom))
}

func TestRandomnessUpdates(t *testing.T) {
	env := newTestEnv(t, nil)
	id, _ := env.nftRaffle(env.mock.NewAccount(), &rty.RaffleOptions{RaffleDuration: 120, RaffleTimeout: 60})
	require.NoError(t, env.buy(env.buyer(), id, 1, 4))

	var stateErr *rty.WrongStateForRandomnessError
	require.ErrorAs(t, env.updateRandomness(env.admin, id, env.beacon(5)), &stateErr)
	assert.Equal(t, rty.StateStarted, stateErr.Status)

	env.mock.AddTime(120)
	// 签名和轮次不匹配
	bad := env.beacon(8)
	bad.Round = 9
	assert.ErrorIs(t, env.updateRandomness(env.admin, id, bad), rty.ErrInvalidRandomness)
	assert.Nil(t, env.info(id).RaffleInfo.Randomness)

	provider := env.mock.NewAccount()
	require.NoError(t, env.updateRandomness(provider, id, env.beacon(5)))
	first := env.info(id).RaffleInfo.Randomness
	assert.Equal(t, provider, first.RandomnessOwner)

	var roundErr *rty.RandomnessNotAcceptedError
	require.ErrorAs(t, env.updateRandomness(env.admin, id, env.beacon(3)), &roundErr)
	assert.Equal(t, uint64(5), roundErr.CurrentRound)
	require.ErrorAs(t, env.updateRandomness(env.admin, id, env.beacon(5)), &roundErr)

	require.NoError(t, env.updateRandomness(env.admin, id, env.beacon(6)))
	second := env.info(id).RaffleInfo.Randomness
	assert.Equal(t, uint64(6), second.RandomnessRound)
	assert.NotEqual(t, first.Randomness, second.Randomness)
	assert.Equal(t, rty.StateClosed, env.info(id).RaffleState)

	env.mock.AddTime(60)
	assert.Equal(t, rty.StateFinished, env.info(id).RaffleState)
	assert.ErrorIs(t, env.updateRandomness(env.admin, id, env.beacon(7)), rty.ErrImmutableRandomness)
	require.NoError(t, env.claim(env.admin, id))
}

func TestRandomnessTiming(t *testing.T) {
	genesis := testnode.DefaultBlockTime - 1000
	env := newTestEnv(t, func(i *rty.RaffleInstantiate) {
		i.DrandGenesis = genesis
		i.DrandPeriod = 3
	})
	id, _ := env.nftRaffle(env.mock.NewAccount(), &rty.RaffleOptions{RaffleDuration: 120})
	env.mock.AddTime(200)

	// 第 374 轮在 genesis+1119 发布, 早于结束时间 genesis+1120
	assert.ErrorIs(t, env.updateRandomness(env.admin, id, env.beacon(374)), rty.ErrRandomnessNotAccepted)
	require.NoError(t, env.updateRandomness(env.admin, id, env.beacon(375)))
}

func (env *testEnv) fundRandomness(from string, amount int64) error {
	return env.send(from, &rty.RaffleAction{
		Ty:             rty.RaffleActionFundRandomness,
		FundRandomness: &rty.RaffleFundRandomness{},
	}, types.Coins{types.NewCoin(denom, amount)})
}

func TestRandomnessFee(t *testing.T) {
	env := newTestEnv(t, func(i *rty.RaffleInstantiate) {
		i.RandomnessFee = types.NewCoin(denom, 4)
	})
	owner := env.mock.NewAccount()
	a, _ := env.nftRaffle(owner, nil)
	b, _ := env.nftRaffle(env.mock.NewAccount(), nil)
	for i := 0; i < 3; i++ {
		require.NoError(t, env.buy(env.buyer(), a, 1, 4))
	}
	env.mock.AddTime(61)

	// 费用池为空时不能动用 a 的售票收入
	assert.ErrorIs(t, env.updateRandomness(env.admin, b, env.beacon(2)), types.ErrNoBalance)
	assert.Equal(t, int64(12), env.mock.Balance(GetExecAddress(), denom))

	assert.ErrorIs(t, env.fundRandomness(env.buyer(), 8), rty.ErrUnauthorized)
	assert.ErrorIs(t, env.send(env.admin, &rty.RaffleAction{
		Ty:             rty.RaffleActionFundRandomness,
		FundRandomness: &rty.RaffleFundRandomness{},
	}, nil), rty.ErrInvalidAmount)
	require.NoError(t, env.fundRandomness(env.admin, 8))
	assert.Equal(t, []*types.Coin{types.NewCoin(denom, 8)}, env.config().Config.RandomnessPool)

	require.NoError(t, env.updateRandomness(env.admin, b, env.beacon(2)))
	require.NoError(t, env.updateRandomness(env.admin, b, env.beacon(3)))
	assert.ErrorIs(t, env.updateRandomness(env.admin, b, env.beacon(4)), types.ErrNoBalance)
	assert.Empty(t, env.config().Config.RandomnessPool)
	assert.Equal(t, int64(8), env.mock.Balance(dexec.GetExecAddress(), denom))
	assert.Equal(t, int64(12), env.mock.Balance(GetExecAddress(), denom))

	// 验证失败时费用退回费用池
	require.NoError(t, env.fundRandomness(env.admin, 4))
	bad := env.beacon(5)
	bad.Round = 6
	assert.ErrorIs(t, env.updateRandomness(env.admin, a, bad), rty.ErrInvalidRandomness)
	assert.Equal(t, []*types.Coin{types.NewCoin(denom, 4)}, env.config().Config.RandomnessPool)

	env.mock.AddTime(100)
	require.NoError(t, env.updateRandomness(env.admin, a, env.beacon(5)))
	require.NoError(t, env.claim(env.admin, a))
	assert.Equal(t, int64(3), env.mock.Balance(env.feeAddr, denom))
	assert.Equal(t, int64(9), env.mock.Balance(owner, denom))
	assert.Equal(t, int64(0), env.mock.Balance(GetExecAddress(), denom))
}

func TestMultipleWinners(t *testing.T) {
	env := newTestEnv(t, nil)
	owner := env.mock.NewAccount()
	assets := []*rty.AssetInfo{env.mintNft(owner, true), env.mintNft(owner, true)}
	id := env.create(owner, assets, 4, &rty.RaffleOptions{NumberOfWinners: 2, RafflePreview: 1}, nil)
	for i := 0; i < 3; i++ {
		require.NoError(t, env.buy(env.buyer(), id, 1, 4))
	}
	env.mock.AddTime(200)
	require.NoError(t, env.updateRandomness(env.admin, id, env.beacon(4)))
	randomness := env.info(id).RaffleInfo.Randomness.Randomness
	require.NoError(t, env.claim(env.admin, id))

	info := env.info(id).RaffleInfo
	expected, err := SelectWinners(randomness, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, expected, info.WinningTickets)
	assert.NotEqual(t, info.WinningTickets[0], info.WinningTickets[1])

	reply, err := env.mock.Query(rty.RaffleX, rty.FuncNameAllTickets, &rty.ReqAllTickets{RaffleID: id})
	require.NoError(t, err)
	tickets := reply.(*rty.ReplyAllTickets).Tickets
	require.Len(t, info.Winners, 2)
	for j, asset := range assets {
		assert.Equal(t, tickets[expected[j]], info.Winners[j])
		assert.Equal(t, info.Winners[j], env.nftOwner(asset))
	}
}

func TestMinTicketRefund(t *testing.T) {
	env := newTestEnv(t, nil)
	owner := env.mock.NewAccount()
	id, asset := env.nftRaffle(owner, &rty.RaffleOptions{MinTicketNumber: 3})
	b1, b2 := env.buyer(), env.buyer()
	require.NoError(t, env.buy(b1, id, 1, 4))
	require.NoError(t, env.buy(b2, id, 1, 4))
	env.mock.AddTime(200)
	require.NoError(t, env.updateRandomness(env.admin, id, env.beacon(2)))
	require.NoError(t, env.claim(env.admin, id))

	assert.Equal(t, owner, env.nftOwner(asset))
	assert.Equal(t, int64(100), env.mock.Balance(b1, denom))
	assert.Equal(t, int64(100), env.mock.Balance(b2, denom))
	assert.Equal(t, int64(0), env.mock.Balance(env.feeAddr, denom))
	assert.Equal(t, int64(0), env.mock.Balance(GetExecAddress(), denom))
	assert.Equal(t, rty.StateClaimed, env.info(id).RaffleState)
}

func TestCreateValidation(t *testing.T) {
	env := newTestEnv(t, nil)
	owner := env.mock.NewAccount(types.NewCoin(denom, 100))
	asset := env.mintNft(owner, true)
	assets := []*rty.AssetInfo{asset}
	now := env.mock.GetBlockTime()

	assert.ErrorIs(t, env.send(owner, createAction(nil, 4, nil), nil), rty.ErrNoAssets)
	assert.ErrorIs(t, env.send(owner, createAction([]*rty.AssetInfo{asset, asset}, 4, nil), nil), rty.ErrAssetMismatch)
	assert.ErrorIs(t, env.send(owner, createAction(assets, 0, nil), nil), rty.ErrInvalidAmount)
	assert.ErrorIs(t, env.send(owner, createAction([]*rty.AssetInfo{{Ty: 9}}, 4, nil), nil), rty.ErrWrongAssetType)

	nftPrice := createAction(assets, 4, nil)
	nftPrice.Create.RaffleTicketPrice = rty.NewCw721Asset(env.coll, "1")
	assert.ErrorIs(t, env.send(owner, nftPrice, nil), rty.ErrWrongFundsType)

	cases := []struct {
		opts *rty.RaffleOptions
		err  error
	}{
		{&rty.RaffleOptions{Comment: strings.Repeat("x", 1001)}, rty.ErrCommentTooLarge},
		{&rty.RaffleOptions{RaffleStartTimestamp: now - 1}, rty.ErrRaffleAlreadyStarted},
		{&rty.RaffleOptions{RaffleDuration: 10}, rty.ErrInvalidInput},
		{&rty.RaffleOptions{RaffleTimeout: 10}, rty.ErrInvalidInput},
		{&rty.RaffleOptions{NumberOfWinners: 2}, rty.ErrInvalidInput},
		{&rty.RaffleOptions{RafflePreview: 1}, rty.ErrInvalidInput},
		{&rty.RaffleOptions{MaxParticipantNumber: 101}, rty.ErrInvalidInput},
		{&rty.RaffleOptions{MaxParticipantNumber: 5, MinTicketNumber: 6}, rty.ErrInvalidInput},
	}
	for i, c := range cases {
		assert.ErrorIs(t, env.send(owner, createAction(assets, 4, c.opts), nil), c.err, "case %d", i)
	}

	// 不能附带多余的资金
	assert.ErrorIs(t, env.send(owner, createAction(assets, 4, nil), types.Coins{types.NewCoin(denom, 1)}), rty.ErrInvalidAmount)

	// 没有授权, 或者不是 owner
	notApproved := env.mintNft(owner, false)
	assert.ErrorIs(t, env.send(owner, createAction([]*rty.AssetInfo{notApproved}, 4, nil), nil), rty.ErrNotApproved)
	other := env.mock.NewAccount()
	assert.ErrorIs(t, env.send(other, createAction(assets, 4, nil), nil), rty.ErrSenderNotOwner)
	assert.ErrorIs(t, env.send(owner, createAction([]*rty.AssetInfo{rty.NewCw721Asset(env.coll, "404")}, 4, nil), nil), nty.ErrTokenNotFound)

	assert.Equal(t, uint64(0), env.config().Config.LastRaffleID)
	assert.Equal(t, owner, env.nftOwner(asset))
	assert.Equal(t, int64(100), env.mock.Balance(owner, denom))
}

func TestCreationFeeAndCoinPrize(t *testing.T) {
	env := newTestEnv(t, func(i *rty.RaffleInstantiate) {
		i.CreationCoins = []*types.Coin{types.NewCoin(denom, 10)}
	})
	owner := env.mock.NewAccount(types.NewCoin(denom, 1000))
	prize := []*rty.AssetInfo{rty.NewCoinAsset(denom, 50)}
	action := createAction(prize, 4, nil)

	assert.ErrorIs(t, env.send(owner, action, types.Coins{types.NewCoin(denom, 40)}), rty.ErrAssetMismatch)
	assert.ErrorIs(t, env.send(owner, action, types.Coins{types.NewCoin(denom, 50)}), rty.ErrInvalidAmount)
	assert.ErrorIs(t, env.send(owner, action, types.Coins{types.NewCoin(denom, 65)}), rty.ErrInvalidAmount)

	require.NoError(t, env.send(owner, action, types.Coins{types.NewCoin(denom, 60)}))
	id := env.config().Config.LastRaffleID
	assert.Equal(t, int64(10), env.mock.Balance(env.feeAddr, denom))
	assert.Equal(t, int64(50), env.mock.Balance(GetExecAddress(), denom))
	assert.Equal(t, int64(940), env.mock.Balance(owner, denom))

	b := env.buyer()
	require.NoError(t, env.buy(b, id, 2, 8))
	env.mock.AddTime(200)
	require.NoError(t, env.updateRandomness(env.admin, id, env.beacon(2)))
	require.NoError(t, env.claim(env.admin, id))

	assert.Equal(t, []string{b}, env.info(id).RaffleInfo.Winners)
	assert.Equal(t, int64(100-8+50), env.mock.Balance(b, denom))
	// floor(8 * 0.25) = 2
	assert.Equal(t, int64(12), env.mock.Balance(env.feeAddr, denom))
	assert.Equal(t, int64(946), env.mock.Balance(owner, denom))
	assert.Equal(t, int64(0), env.mock.Balance(GetExecAddress(), denom))
}

func TestOptionsOverflow(t *testing.T) {
	env := newTestEnv(t, nil)
	owner := env.mock.NewAccount()
	assets := []*rty.AssetInfo{env.mintNft(owner, true)}
	now := env.mock.GetBlockTime()

	cases := []*rty.RaffleOptions{
		{RaffleTimeout: math.MaxUint64},
		{RaffleDuration: 1 << 63},
		{RaffleDuration: math.MaxUint64},
		{RaffleDuration: uint64(math.MaxInt64 - now)},
		{RaffleStartTimestamp: math.MaxInt64 - 100},
	}
	for i, opts := range cases {
		assert.ErrorIs(t, env.send(owner, createAction(assets, 4, opts), nil), rty.ErrInvalidInput, "case %d", i)
	}
	assert.Equal(t, uint64(0), env.config().Config.LastRaffleID)

	id := env.create(owner, assets, 4, &rty.RaffleOptions{RaffleDuration: uint64(math.MaxInt64-now) - 60}, nil)
	info := env.info(id)
	assert.Equal(t, rty.StateStarted, info.RaffleState)
	assert.Equal(t, int64(math.MaxInt64), info.RaffleInfo.TimeoutTimestamp())
	require.NoError(t, env.buy(env.buyer(), id, 1, 4))

	later, _ := env.nftRaffle(owner, &rty.RaffleOptions{RaffleStartTimestamp: now + 1000})
	modify := &rty.RaffleAction{
		Ty: rty.RaffleActionModify,
		Modify: &rty.RaffleModify{RaffleID: later, RaffleOptions: &rty.RaffleOptions{
			RaffleStartTimestamp: now + 1000,
			RaffleTimeout:        math.MaxUint64,
		}},
	}
	assert.ErrorIs(t, env.send(owner, modify, nil), rty.ErrInvalidInput)
	assert.Equal(t, uint64(60), env.info(later).RaffleInfo.RaffleOptions.RaffleTimeout)
}

func TestDuplicateCoinPrizes(t *testing.T) {
	env := newTestEnv(t, nil)
	owner := env.mock.NewAccount(types.NewCoin(denom, 100))
	prize := []*rty.AssetInfo{rty.NewCoinAsset(denom, 50), rty.NewCoinAsset(denom, 50)}
	id := env.create(owner, prize, 4, &rty.RaffleOptions{NumberOfWinners: 2}, types.Coins{types.NewCoin(denom, 100)})
	assert.Equal(t, int64(100), env.mock.Balance(GetExecAddress(), denom))

	b1, b2 := env.buyer(), env.buyer()
	require.NoError(t, env.buy(b1, id, 1, 4))
	require.NoError(t, env.buy(b2, id, 1, 4))
	env.mock.AddTime(200)
	require.NoError(t, env.updateRandomness(env.admin, id, env.beacon(2)))
	require.NoError(t, env.claim(env.admin, id))

	assert.ElementsMatch(t, []string{b1, b2}, env.info(id).RaffleInfo.Winners)
	assert.Equal(t, int64(146), env.mock.Balance(b1, denom))
	assert.Equal(t, int64(146), env.mock.Balance(b2, denom))
	// floor(8 * 0.25) = 2
	assert.Equal(t, int64(6), env.mock.Balance(owner, denom))
	assert.Equal(t, int64(0), env.mock.Balance(GetExecAddress(), denom))

	// 同一个 NFT 仍然不能重复
	nft := env.mintNft(owner, true)
	assert.ErrorIs(t, env.send(owner, createAction([]*rty.AssetInfo{nft, nft}, 4, nil), nil), rty.ErrAssetMismatch)
}

func TestModifyAndCancel(t *testing.T) {
	env := newTestEnv(t, nil)
	owner := env.mock.NewAccount()
	start := env.mock.GetBlockTime() + 100
	id, asset := env.nftRaffle(owner, &rty.RaffleOptions{RaffleStartTimestamp: start})
	assert.Equal(t, rty.StateCreated, env.info(id).RaffleState)
	assert.ErrorIs(t, env.buy(env.buyer(), id, 1, 4), rty.ErrCantBuyTickets)

	modify := &rty.RaffleAction{
		Ty: rty.RaffleActionModify,
		Modify: &rty.RaffleModify{
			RaffleID:          id,
			RaffleOptions:     &rty.RaffleOptions{RaffleStartTimestamp: start, Comment: "new comment"},
			RaffleTicketPrice: rty.NewCoinAsset(denom, 10),
		},
	}
	assert.ErrorIs(t, env.send(env.mock.NewAccount(), modify, nil), rty.ErrUnauthorized)
	require.NoError(t, env.send(owner, modify, nil))
	info := env.info(id).RaffleInfo
	assert.Equal(t, "new comment", info.RaffleOptions.Comment)
	assert.Equal(t, int64(10), info.RaffleTicketPrice.Coin.Amount)

	env.mock.AddTime(100)
	assert.ErrorIs(t, env.send(owner, modify, nil), rty.ErrRaffleAlreadyStarted)
	require.NoError(t, env.buy(env.buyer(), id, 1, 10))

	cancel := &rty.RaffleAction{Ty: rty.RaffleActionCancel, Cancel: &rty.RaffleCancel{RaffleID: id}}
	var cancelErr *rty.WrongStateForCancelError
	require.ErrorAs(t, env.send(owner, cancel, nil), &cancelErr)
	assert.Equal(t, rty.StateStarted, cancelErr.Status)

	// 没有卖出票, 管理员可以取消
	id2, asset2 := env.nftRaffle(owner, nil)
	cancel.Cancel.RaffleID = id2
	assert.ErrorIs(t, env.send(env.mock.NewAccount(), cancel, nil), rty.ErrUnauthorized)
	require.NoError(t, env.send(env.admin, cancel, nil))
	assert.Equal(t, rty.StateCancelled, env.info(id2).RaffleState)
	assert.Equal(t, owner, env.nftOwner(asset2))
	require.ErrorAs(t, env.send(owner, cancel, nil), &cancelErr)
	assert.Equal(t, rty.StateCancelled, cancelErr.Status)
	assert.Equal(t, GetExecAddress(), env.nftOwner(asset))
}

func TestLockAndConfig(t *testing.T) {
	env := newTestEnv(t, nil)
	owner := env.mock.NewAccount()
	id, _ := env.nftRaffle(owner, nil)

	lock := &rty.RaffleAction{Ty: rty.RaffleActionToggleLock, ToggleLock: &rty.RaffleToggleLock{Lock: true}}
	assert.ErrorIs(t, env.send(owner, lock, nil), rty.ErrUnauthorized)
	require.NoError(t, env.send(env.admin, lock, nil))
	assert.True(t, env.config().Config.Locked)

	asset := env.mintNft(owner, true)
	assert.ErrorIs(t, env.send(owner, createAction([]*rty.AssetInfo{asset}, 4, nil), nil), rty.ErrContractLocked)
	assert.ErrorIs(t, env.buy(env.buyer(), id, 1, 4), rty.ErrContractLocked)
	// 锁定时可以取消
	require.NoError(t, env.send(owner, &rty.RaffleAction{Ty: rty.RaffleActionCancel, Cancel: &rty.RaffleCancel{RaffleID: id}}, nil))

	lock.ToggleLock.Lock = false
	require.NoError(t, env.send(env.admin, lock, nil))
	env.create(owner, []*rty.AssetInfo{asset}, 4, nil, nil)

	newFee := env.mock.NewAccount()
	badRate, rate, duration := "1.5", "0.1", uint64(30)
	update := &rty.RaffleAction{Ty: rty.RaffleActionUpdateConfig, UpdateConfig: &rty.RaffleUpdateConfig{RaffleFee: &badRate}}
	assert.ErrorIs(t, env.send(env.admin, update, nil), rty.ErrInvalidFeeRate)
	update.UpdateConfig = &rty.RaffleUpdateConfig{RaffleFee: &rate, FeeAddr: &newFee, MinimumRaffleDuration: &duration}
	assert.ErrorIs(t, env.send(owner, update, nil), rty.ErrUnauthorized)
	require.NoError(t, env.send(env.admin, update, nil))
	cfg := env.config().Config
	assert.Equal(t, "0.1", cfg.RaffleFee)
	assert.Equal(t, newFee, cfg.FeeAddr)
	assert.Equal(t, uint64(30), cfg.MinimumRaffleDuration)
	assert.Equal(t, "raffles", cfg.Name)
	assert.Equal(t, uint64(2), cfg.LastRaffleID)
}

func TestAllRaffles(t *testing.T) {
	env := newTestEnv(t, nil)
	alice, bob := env.mock.NewAccount(), env.mock.NewAccount()
	id1, _ := env.nftRaffle(alice, nil)
	id2, asset2 := env.nftRaffle(alice, nil)
	id3, _ := env.nftRaffle(bob, nil)
	depositor := env.buyer()
	require.NoError(t, env.buy(depositor, id2, 1, 4))

	ids := func(req *rty.ReqAllRaffles) []uint64 {
		reply, err := env.mock.Query(rty.RaffleX, rty.FuncNameAllRaffles, req)
		require.NoError(t, err)
		var out []uint64
		for _, r := range reply.(*rty.ReplyAllRaffles).Raffles {
			out = append(out, r.RaffleID)
		}
		return out
	}
	assert.Equal(t, []uint64{id3, id2, id1}, ids(&rty.ReqAllRaffles{}))
	assert.Equal(t, []uint64{id3, id2}, ids(&rty.ReqAllRaffles{Limit: 2}))
	assert.Equal(t, []uint64{id1}, ids(&rty.ReqAllRaffles{StartAfter: id2}))
	assert.Equal(t, []uint64{id2, id1}, ids(&rty.ReqAllRaffles{Filters: &rty.RaffleFilters{Owner: alice}}))
	assert.Equal(t, []uint64{id2}, ids(&rty.ReqAllRaffles{Filters: &rty.RaffleFilters{TicketDepositor: depositor}}))
	assert.Equal(t, []uint64{id2}, ids(&rty.ReqAllRaffles{Filters: &rty.RaffleFilters{ContainsToken: asset2.Cw721Coin}}))
	assert.Equal(t, []uint64{id2}, ids(&rty.ReqAllRaffles{Filters: &rty.RaffleFilters{Owner: alice, TicketDepositor: depositor}}))
	assert.Nil(t, ids(&rty.ReqAllRaffles{Filters: &rty.RaffleFilters{Owner: bob, TicketDepositor: depositor}}))
	assert.Equal(t, []uint64{id3, id2, id1}, ids(&rty.ReqAllRaffles{Filters: &rty.RaffleFilters{RaffleState: rty.StateStarted}}))

	require.NoError(t, env.send(bob, &rty.RaffleAction{Ty: rty.RaffleActionCancel, Cancel: &rty.RaffleCancel{RaffleID: id3}}, nil))
	assert.Equal(t, []uint64{id3}, ids(&rty.ReqAllRaffles{Filters: &rty.RaffleFilters{RaffleState: rty.StateCancelled}}))

	_, err := env.mock.Query(rty.RaffleX, rty.FuncNameAllRaffles, &rty.ReqAllRaffles{Filters: &rty.RaffleFilters{RaffleState: "open"}})
	assert.ErrorIs(t, err, rty.ErrInvalidInput)
	_, err = env.mock.Query(rty.RaffleX, "Unknown", nil)
	assert.ErrorIs(t, err, types.ErrQueryNotSupport)
}

func TestRejectFunds(t *testing.T) {
	env := newTestEnv(t, nil)
	claim := &rty.RaffleAction{Ty: rty.RaffleActionClaim, Claim: &rty.RaffleClaim{RaffleID: 1}}
	assert.ErrorIs(t, env.send(env.admin, claim, types.Coins{types.NewCoin(denom, 1)}), rty.ErrAssetMismatch)
	assert.ErrorIs(t, env.send(env.admin, &rty.RaffleAction{Ty: 100}, nil), types.ErrActionNotSupport)
	assert.ErrorIs(t, env.send(env.admin, &rty.RaffleAction{Ty: rty.RaffleActionClaim}, nil), rty.ErrInvalidInput)
	assert.Equal(t, int64(1000), env.mock.Balance(env.admin, denom))
}
