// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"os"

	tml "github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config 节点配置
type Config struct {
	Title   string         `toml:"Title"`
	Log     *Log           `toml:"log"`
	Store   *Store         `toml:"store"`
	Genesis *Genesis       `toml:"genesis"`
	Drand   *DrandConfig   `toml:"drand"`
	Raffle  *RaffleConfig  `toml:"raffle"`
	Metrics *MetricsConfig `toml:"metrics"`
}

// Log 日志配置
type Log struct {
	Loglevel        string `toml:"loglevel"`
	LogConsoleLevel string `toml:"logConsoleLevel"`
	LogFile         string `toml:"logFile"`
	MaxFileSize     uint32 `toml:"maxFileSize"`
	MaxBackups      uint32 `toml:"maxBackups"`
	MaxAge          uint32 `toml:"maxAge"`
	LocalTime       bool   `toml:"localTime"`
	Compress        bool   `toml:"compress"`
	CallerFile      bool   `toml:"callerFile"`
	CallerFunction  bool   `toml:"callerFunction"`
}

// Store 存储配置
type Store struct {
	Name          string `toml:"name"`
	Driver        string `toml:"driver"`
	DbPath        string `toml:"dbPath"`
	DbCache       int32  `toml:"dbCache"`
	ReadCacheSize int    `toml:"readCacheSize"`
}

// Genesis 创世账户, 只有它可以在 height > 0 时继续 mint
type Genesis struct {
	Addr  string   `toml:"addr"`
	Coins []string `toml:"coins"`
}

// DrandConfig 随机数验证合约的初始化参数
type DrandConfig struct {
	Scheme string `toml:"scheme"`
}

// RaffleConfig 抽奖合约的初始化参数
type RaffleConfig struct {
	Name                  string   `toml:"name"`
	Owner                 string   `toml:"owner"`
	FeeAddr               string   `toml:"feeAddr"`
	MinimumRaffleDuration int64    `toml:"minimumRaffleDuration"`
	MinimumRaffleTimeout  int64    `toml:"minimumRaffleTimeout"`
	MaxParticipantNumber  uint32   `toml:"maxParticipantNumber"`
	RaffleFee             string   `toml:"raffleFee"`
	CreationCoins         []string `toml:"creationCoins"`
	DrandPublicKey        string   `toml:"drandPublicKey"`
	RandomnessFee         string   `toml:"randomnessFee"`
	DrandGenesis          int64    `toml:"drandGenesis"`
	DrandPeriod           int64    `toml:"drandPeriod"`
}

// MetricsConfig 指标
type MetricsConfig struct {
	Enable bool `toml:"enable"`
}

// InitCfg 从文件读取配置
func InitCfg(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	return InitCfgString(string(data))
}

// InitCfgString 从字符串读取配置, 缺省项会被补齐
func InitCfgString(cfgstring string) (*Config, error) {
	var cfg Config
	if _, err := tml.Decode(cfgstring, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode toml")
	}
	fillDefault(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func fillDefault(cfg *Config) {
	if cfg.Title == "" {
		cfg.Title = "local"
	}
	if cfg.Log == nil {
		cfg.Log = &Log{}
	}
	if cfg.Store == nil {
		cfg.Store = &Store{}
	}
	if cfg.Store.Name == "" {
		cfg.Store.Name = "raffle"
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "leveldb"
	}
	if cfg.Store.DbPath == "" {
		cfg.Store.DbPath = "datadir"
	}
	if cfg.Store.DbCache == 0 {
		cfg.Store.DbCache = 128
	}
	if cfg.Drand == nil {
		cfg.Drand = &DrandConfig{}
	}
	if cfg.Metrics == nil {
		cfg.Metrics = &MetricsConfig{}
	}
}

// Validate 检查必须的配置项
func (cfg *Config) Validate() error {
	switch cfg.Store.Driver {
	case "leveldb", "goleveldb", "memdb", "gobadgerdb":
	default:
		return errors.Wrapf(ErrStoreDriverNotSupported, "driver %s", cfg.Store.Driver)
	}
	if cfg.Raffle == nil {
		return errors.Wrap(ErrConfigNotFound, "section [raffle]")
	}
	return nil
}
