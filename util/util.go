// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"encoding/hex"
	"math/rand"
	"os"
	"os/user"
	"path/filepath"

	"github.com/33cn/raffle/common/address"
	"github.com/33cn/raffle/types"
	"github.com/btcsuite/btcd/btcec/v2"
	log "github.com/inconshreveable/log15"
)

func init() {
	rand.Seed(types.Now().UnixNano())
}

var ulog = log.New("module", "util")

//Genaddress : generate a address
func Genaddress() (string, *btcec.PrivateKey) {
	priv, addr, err := address.NewPrivKey()
	if err != nil {
		panic(err)
	}
	return addr, priv
}

//HexPrivKey 私钥的 hex 表示
func HexPrivKey(priv *btcec.PrivateKey) string {
	return hex.EncodeToString(priv.Serialize())
}

//PrivKeyFromHex 从 hex 私钥恢复地址
func PrivKeyFromHex(s string) (*btcec.PrivateKey, string, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, "", err
	}
	if len(b) != 32 {
		return nil, "", types.ErrInvalidParam
	}
	priv, addr := address.PrivKeyFromBytes(b)
	return priv, addr, nil
}

//CreateTx 构造交易, nonce 随机, 保证相同内容的交易 hash 不同
func CreateTx(execer, from string, action types.Message, funds types.Coins) *types.Transaction {
	return &types.Transaction{
		Execer:  execer,
		From:    from,
		Funds:   types.NewCoins(funds...),
		Payload: types.Encode(action),
		Nonce:   rand.Int63(),
	}
}

//ResetDatadir 重写datadir
func ResetDatadir(cfg *types.Config, datadir string) string {
	// Check in case of paths like "/something/~/something/"
	if len(datadir) >= 2 && datadir[:2] == "~/" {
		usr, err := user.Current()
		if err != nil {
			panic(err)
		}
		dir := usr.HomeDir
		datadir = filepath.Join(dir, datadir[2:])
	}
	if len(datadir) >= 6 && datadir[:6] == "$TEMP/" {
		dir, err := os.MkdirTemp("", "raffledatadir-")
		if err != nil {
			panic(err)
		}
		datadir = filepath.Join(dir, datadir[6:])
	}
	ulog.Info("current user data dir is ", "dir", datadir)
	if cfg.Log != nil && cfg.Log.LogFile != "" {
		cfg.Log.LogFile = filepath.Join(datadir, cfg.Log.LogFile)
	}
	cfg.Store.DbPath = filepath.Join(datadir, cfg.Store.DbPath)
	return datadir
}
