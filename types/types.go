// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"crypto/sha256"
	"fmt"

	"go.dedis.ch/protobuf"
)

// Message 所有可以编码的结构体
type Message interface{}

// KeyValue 状态数据库中的一条记录
type KeyValue struct {
	Key   []byte
	Value []byte
}

// ReceiptLog 执行日志
type ReceiptLog struct {
	Ty  int32
	Log []byte
}

// SubMsg 合约执行完成后由宿主继续执行的消息
type SubMsg struct {
	ID             uint64
	Execer         string
	Funds          Coins
	Payload        []byte
	ReplyOnSuccess bool
}

// Reply 子消息执行成功后回调给发起合约的结果
type Reply struct {
	ID     uint64
	Execer string
	Data   []byte
	Logs   []*ReceiptLog
}

// Receipt 合约执行回执
type Receipt struct {
	Ty   int32
	KV   []*KeyValue
	Logs []*ReceiptLog
	Data []byte
	Msgs []*SubMsg
}

// ReceiptData 交易执行结果，用于 ExecLocal
type ReceiptData struct {
	Ty   int32
	Logs []*ReceiptLog
}

// LocalDBSet 本地数据库写集合
type LocalDBSet struct {
	KV []*KeyValue
}

// TxResult 交易执行结果, 保存在本地数据库
type TxResult struct {
	Height    int64
	BlockTime int64
	Index     int64
	Tx        *Transaction
	Receipt   *ReceiptData
}

// Transaction 交易
type Transaction struct {
	Execer  string
	From    string
	Funds   Coins
	Payload []byte
	Nonce   int64
}

// Hash tx hash
func (tx *Transaction) Hash() []byte {
	h := sha256.Sum256(Encode(tx))
	return h[:]
}

// GetFrom 交易发起人
func (tx *Transaction) GetFrom() string {
	if tx == nil {
		return ""
	}
	return tx.From
}

// GetFunds 交易附带的资金
func (tx *Transaction) GetFunds() Coins {
	if tx == nil {
		return nil
	}
	return tx.Funds
}

// GetTy receipt type
func (r *Receipt) GetTy() int32 {
	if r == nil {
		return ExecErr
	}
	return r.Ty
}

// GetTy receipt data type
func (r *ReceiptData) GetTy() int32 {
	if r == nil {
		return ExecErr
	}
	return r.Ty
}

// NewReceipt 创建成功的回执
func NewReceipt() *Receipt {
	return &Receipt{Ty: ExecOk}
}

// Merge 合并另外一个回执的 kv, log 和子消息
func (r *Receipt) Merge(other *Receipt) *Receipt {
	if other == nil {
		return r
	}
	r.KV = append(r.KV, other.KV...)
	r.Logs = append(r.Logs, other.Logs...)
	r.Msgs = append(r.Msgs, other.Msgs...)
	return r
}

// AddMsg 追加一个子消息
func (r *Receipt) AddMsg(msg *SubMsg) *Receipt {
	r.Msgs = append(r.Msgs, msg)
	return r
}

// Encode 编码, 失败说明结构体定义有问题
func Encode(data Message) []byte {
	b, err := protobuf.Encode(data)
	if err != nil {
		panic(err)
	}
	return b
}

// Decode 解码
func Decode(data []byte, msg Message) error {
	if err := protobuf.Decode(data, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}
