// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

//Account 单一币种的账户
type Account struct {
	Denom   string
	Balance int64
	Addr    string
}

//GetBalance get balance
func (m *Account) GetBalance() int64 {
	if m != nil {
		return m.Balance
	}
	return 0
}

//ReceiptAccountTransfer 账户余额变动收据
type ReceiptAccountTransfer struct {
	Prev    *Account
	Current *Account
}

//ReceiptAccountMint 增发收据
type ReceiptAccountMint struct {
	Prev    *Account
	Current *Account
}

//ReqBalance 余额查询
type ReqBalance struct {
	Addr   string
	Denoms []string
}

//ReplyBalance 余额查询结果
type ReplyBalance struct {
	Addr  string
	Coins Coins
}

//BankMint 增发, 只有 genesis 地址可以调用
type BankMint struct {
	To    string
	Coins Coins
}

//BankSend 转账
type BankSend struct {
	To    string
	Coins Coins
}

//BankAction bank 执行器的交易
type BankAction struct {
	Ty   int32
	Mint *BankMint
	Send *BankSend
}

//ReplyString 字符串结果
type ReplyString struct {
	Data string
}

//ReqNil 无参数
type ReqNil struct {
}
