// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands 命令行公共部分: 打开本地节点, 执行交易, 输出结果
package commands

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	dbm "github.com/33cn/raffle/common/db"
	clog "github.com/33cn/raffle/common/log"
	"github.com/33cn/raffle/executor"
	"github.com/33cn/raffle/metrics"
	"github.com/33cn/raffle/types"
	"github.com/33cn/raffle/util"
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var nlog = log.New("module", "cli.node")

var envKey = []byte("LODB-node-env")

//BlockEnv 最后一个区块的高度和时间
type BlockEnv struct {
	Height    int64
	BlockTime int64
}

//Node 命令行使用的本地节点
type Node struct {
	Cfg  *types.Config
	DB   dbm.DB
	Exec *executor.Executor
	env  BlockEnv
	logs io.Closer
}

//AddNodeFlags 根命令上的公共参数
func AddNodeFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("conf", "c", "raffle.toml", "config file")
	cmd.PersistentFlags().String("datadir", "", "data dir, include logs and datas")
	cmd.PersistentFlags().Duration("time_delta", 0, "local clock correction, at most 60s")
}

//AddTxFlags 交易命令的公共参数
func AddTxFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("from", "f", "", "sender address")
	cmd.MarkFlagRequired("from")
	cmd.Flags().Int64P("time", "t", 0, "block time in seconds, default now")
	cmd.Flags().StringP("funds", "m", "", "attached funds, e.g. 10ustars,5uatom")
}

//LoadConfig 读取配置, 文件不存在时使用默认配置
func LoadConfig(cmd *cobra.Command) (*types.Config, error) {
	conf, _ := cmd.Flags().GetString("conf")
	datadir, _ := cmd.Flags().GetString("datadir")
	if delta, err := cmd.Flags().GetDuration("time_delta"); err == nil {
		types.SetTimeDelta(delta)
	}
	var cfg *types.Config
	var err error
	if conf != "" && util.CheckFileIsExist(conf) {
		cfg, err = types.InitCfg(conf)
	} else {
		nlog.Info("config file not found, use default", "conf", conf)
		cfg, err = types.InitCfgString(types.DefaultCfgString)
	}
	if err != nil {
		return nil, err
	}
	if datadir != "" {
		util.ResetDatadir(cfg, datadir)
	}
	return cfg, nil
}

//OpenNode 打开本地数据库并恢复最后的区块环境
func OpenNode(cmd *cobra.Command) (*Node, error) {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return NewNode(cfg)
}

//NewNode 按配置打开存储
func NewNode(cfg *types.Config) (node *Node, err error) {
	logs := clog.Setup(cfg.Log)
	defer func() {
		if err != nil {
			logs.Close()
		}
	}()
	if cfg.Store.Driver != "memdb" && !util.CheckPathExists(cfg.Store.DbPath) {
		if err := util.MakeDir(cfg.Store.DbPath); err != nil {
			return nil, errors.Wrapf(err, "make dir %s", cfg.Store.DbPath)
		}
	}
	db, err := dbm.NewDB(cfg.Store.Name, cfg.Store.Driver, cfg.Store.DbPath, int(cfg.Store.DbCache))
	if err != nil {
		return nil, err
	}
	if cfg.Store.ReadCacheSize > 0 {
		cache, err := dbm.NewCacheDB(db, cfg.Store.ReadCacheSize)
		if err != nil {
			db.Close()
			return nil, err
		}
		db = cache
	}
	node = &Node{Cfg: cfg, DB: db, Exec: executor.New(db, db), logs: logs}
	if value, err := db.Get(envKey); err == nil {
		if err := types.Decode(value, &node.env); err != nil {
			db.Close()
			return nil, err
		}
	}
	node.Exec.SetEnv(node.env.Height, node.env.BlockTime)
	nlog.Debug("OpenNode", "driver", cfg.Store.Driver, "path", cfg.Store.DbPath, "height", node.env.Height)
	return node, nil
}

//Env 当前区块环境
func (node *Node) Env() BlockEnv {
	return node.env
}

//NextBlock 按给定时间出一个新块, 0 表示当前时间
func (node *Node) NextBlock(blocktime int64) error {
	if blocktime == 0 {
		blocktime = types.Now().Unix()
	}
	if blocktime < node.env.BlockTime {
		return errors.Wrapf(types.ErrInvalidParam, "block time %d before last block %d", blocktime, node.env.BlockTime)
	}
	node.env.Height++
	node.env.BlockTime = blocktime
	node.Exec.SetEnv(node.env.Height, node.env.BlockTime)
	return node.DB.Set(envKey, types.Encode(&node.env))
}

//Close 关闭数据库和日志文件, 配置打开时先在日志中输出指标
func (node *Node) Close() {
	if node.Cfg.Metrics.Enable {
		metrics.Report(nil)
	}
	node.DB.Close()
	node.logs.Close()
}

//SendTx 读取 from, time, funds 参数, 在新块中执行一笔交易并输出回执
func SendTx(cmd *cobra.Command, execer string, action types.Message) {
	from, _ := cmd.Flags().GetString("from")
	blocktime, _ := cmd.Flags().GetInt64("time")
	fundsStr, _ := cmd.Flags().GetString("funds")
	funds, err := types.ParseCoins(fundsStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrapf(err, "parse funds %q", fundsStr))
		return
	}
	node, err := OpenNode(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	defer node.Close()
	receipt, err := node.SendTx(from, execer, action, funds, blocktime)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	PrintJSON(DecodeReceipt(receipt))
}

//SendTx 在新块中执行交易
func (node *Node) SendTx(from, execer string, action types.Message, funds types.Coins, blocktime int64) (*types.Receipt, error) {
	if err := node.NextBlock(blocktime); err != nil {
		return nil, err
	}
	tx := util.CreateTx(execer, from, action, funds)
	receipt, err := node.Exec.Exec(tx)
	if err != nil {
		return nil, errors.Wrapf(err, "exec %s", execer)
	}
	return receipt, nil
}

//Query 在最后一个区块上查询并输出结果
func Query(cmd *cobra.Command, execer, funcName string, params types.Message) {
	node, err := OpenNode(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	defer node.Close()
	reply, err := node.Exec.Query(execer, funcName, params)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	PrintJSON(reply)
}

//ReceiptResult 便于阅读的回执
type ReceiptResult struct {
	Ty   int32       `json:"ty"`
	Data string      `json:"data,omitempty"`
	Logs []LogResult `json:"logs"`
}

//LogResult log
type LogResult struct {
	Ty  int32  `json:"ty"`
	Log string `json:"log"`
}

//DecodeReceipt 转换成 json 输出格式
func DecodeReceipt(r *types.Receipt) *ReceiptResult {
	result := &ReceiptResult{Ty: r.Ty}
	if len(r.Data) > 0 {
		result.Data = hex.EncodeToString(r.Data)
	}
	for _, l := range r.Logs {
		result.Logs = append(result.Logs, LogResult{Ty: l.Ty, Log: hex.EncodeToString(l.Log)})
	}
	return result
}

//PrintJSON 缩进输出
func PrintJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(string(data))
}
