// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyInstantiated 已经初始化
	ErrAlreadyInstantiated = errors.New("ErrAlreadyInstantiated")
	// ErrRaffleNotInitialized 没有初始化
	ErrRaffleNotInitialized = errors.New("ErrRaffleNotInitialized")
	// ErrRaffleNotFound 抽奖不存在
	ErrRaffleNotFound = errors.New("ErrRaffleNotFound")
	// ErrUnauthorized 没有权限
	ErrUnauthorized = errors.New("ErrUnauthorized")
	// ErrContractLocked 合约已锁定
	ErrContractLocked = errors.New("ErrContractLocked")
	// ErrInvalidInput 参数错误
	ErrInvalidInput = errors.New("ErrInvalidInput")
	// ErrInvalidName 名称长度错误
	ErrInvalidName = errors.New("ErrInvalidName")
	// ErrInvalidFeeRate 手续费比例必须在 [0, 1) 之间
	ErrInvalidFeeRate = errors.New("ErrInvalidFeeRate")
	// ErrInvalidAmount 金额错误
	ErrInvalidAmount = errors.New("ErrInvalidAmount")
	// ErrAssetMismatch 附带的资产和声明的不一致
	ErrAssetMismatch = errors.New("ErrAssetMismatch")
	// ErrWrongAssetType 资产类型错误
	ErrWrongAssetType = errors.New("ErrWrongAssetType")
	// ErrWrongFundsType 票价只能是原生币
	ErrWrongFundsType = errors.New("ErrWrongFundsType")
	// ErrNoAssets 没有奖品
	ErrNoAssets = errors.New("ErrNoAssets")
	// ErrSenderNotOwner NFT 不属于发送者
	ErrSenderNotOwner = errors.New("ErrSenderNotOwner")
	// ErrNotApproved 合约没有被授权转移 NFT
	ErrNotApproved = errors.New("ErrNotApproved")
	// ErrPaymentNotSufficient 支付的金额和票价不一致
	ErrPaymentNotSufficient = errors.New("ErrPaymentNotSufficient")
	// ErrNoTicketsBought 买票数量为 0
	ErrNoTicketsBought = errors.New("ErrNoTicketsBought")
	// ErrCommentTooLarge 备注太长
	ErrCommentTooLarge = errors.New("ErrCommentTooLarge")
	// ErrRaffleAlreadyStarted 已经开始
	ErrRaffleAlreadyStarted = errors.New("ErrRaffleAlreadyStarted")
	// ErrCantBuyTickets 不在售票期
	ErrCantBuyTickets = errors.New("ErrCantBuyTickets")
	// ErrTooMuchTickets 超过总票数上限
	ErrTooMuchTickets = errors.New("ErrTooMuchTickets")
	// ErrTooMuchTicketsForUser 超过单个地址的票数上限
	ErrTooMuchTicketsForUser = errors.New("ErrTooMuchTicketsForUser")
	// ErrWrongStateForClaim 当前状态不能开奖
	ErrWrongStateForClaim = errors.New("ErrWrongStateForClaim")
	// ErrWrongStateForCancel 当前状态不能取消
	ErrWrongStateForCancel = errors.New("ErrWrongStateForCancel")
	// ErrWrongStateForRandomness 当前状态不能更新随机数
	ErrWrongStateForRandomness = errors.New("ErrWrongStateForRandomness")
	// ErrImmutableRandomness 开奖窗口已经关闭, 随机数不能再修改
	ErrImmutableRandomness = errors.New("ErrImmutableRandomness")
	// ErrRandomnessNotAccepted round 不大于当前的随机数或者早于抽奖结束
	ErrRandomnessNotAccepted = errors.New("ErrRandomnessNotAccepted")
	// ErrRandomnessAlreadyProvided 回调时发现已经有更新的随机数
	ErrRandomnessAlreadyProvided = errors.New("ErrRandomnessAlreadyProvided")
	// ErrInvalidRandomness 签名验证失败
	ErrInvalidRandomness = errors.New("ErrInvalidRandomness")
	// ErrParseReply 回调数据错误
	ErrParseReply = errors.New("ErrParseReply")
	// ErrVerifierNotFound 验证合约没有注册
	ErrVerifierNotFound = errors.New("ErrVerifierNotFound")
	// ErrContractBug 合约内部数据不一致
	ErrContractBug = errors.New("ErrContractBug")
)

//WrongStateForClaimError 带有当前状态
type WrongStateForClaimError struct {
	Status string
}

func (e *WrongStateForClaimError) Error() string {
	return fmt.Sprintf("%s: status %s", ErrWrongStateForClaim, e.Status)
}

//Unwrap sentinel
func (e *WrongStateForClaimError) Unwrap() error {
	return ErrWrongStateForClaim
}

//WrongStateForCancelError 带有当前状态
type WrongStateForCancelError struct {
	Status string
}

func (e *WrongStateForCancelError) Error() string {
	return fmt.Sprintf("%s: status %s", ErrWrongStateForCancel, e.Status)
}

//Unwrap sentinel
func (e *WrongStateForCancelError) Unwrap() error {
	return ErrWrongStateForCancel
}

//WrongStateForRandomnessError 带有当前状态
type WrongStateForRandomnessError struct {
	Status string
}

func (e *WrongStateForRandomnessError) Error() string {
	return fmt.Sprintf("%s: status %s", ErrWrongStateForRandomness, e.Status)
}

//Unwrap sentinel
func (e *WrongStateForRandomnessError) Unwrap() error {
	return ErrWrongStateForRandomness
}

//TooMuchTicketsError 总票数超过上限
type TooMuchTicketsError struct {
	Max      uint32
	NbBefore uint32
	NbAfter  uint32
}

func (e *TooMuchTicketsError) Error() string {
	return fmt.Sprintf("%s: max %d, before %d, after %d", ErrTooMuchTickets, e.Max, e.NbBefore, e.NbAfter)
}

//Unwrap sentinel
func (e *TooMuchTicketsError) Unwrap() error {
	return ErrTooMuchTickets
}

//TooMuchTicketsForUserError 单个地址的票数超过上限
type TooMuchTicketsForUserError struct {
	Max      uint32
	NbBefore uint32
	NbAfter  uint32
}

func (e *TooMuchTicketsForUserError) Error() string {
	return fmt.Sprintf("%s: max %d, before %d, after %d", ErrTooMuchTicketsForUser, e.Max, e.NbBefore, e.NbAfter)
}

//Unwrap sentinel
func (e *TooMuchTicketsForUserError) Unwrap() error {
	return ErrTooMuchTicketsForUser
}

//RandomnessNotAcceptedError 新的 round 必须大于 CurrentRound
type RandomnessNotAcceptedError struct {
	CurrentRound uint64
}

func (e *RandomnessNotAcceptedError) Error() string {
	return fmt.Sprintf("%s: current round %d", ErrRandomnessNotAccepted, e.CurrentRound)
}

//Unwrap sentinel
func (e *RandomnessNotAcceptedError) Unwrap() error {
	return ErrRandomnessNotAccepted
}
