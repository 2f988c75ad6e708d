// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log 配置 log15 的根 handler
//
// 命令的回执和查询结果以 JSON 写到 stdout, 所以控制台日志写到 stderr.
// 配置了 logFile 时再加一个按大小滚动的文件日志.
package log

import (
	"io"
	"os"

	"github.com/33cn/raffle/types"
	log15 "github.com/inconshreveable/log15"
	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

//Setup 按配置替换根 handler, 返回值在节点关闭时调用以关闭日志文件
func Setup(cfg *types.Log) io.Closer {
	conf := withDefaults(cfg)
	console := log15.LvlFilterHandler(ParseLevel(conf.LogConsoleLevel), log15.StreamHandler(os.Stderr, consoleFormat()))
	if conf.LogFile == "" {
		log15.Root().SetHandler(console)
		return nopCloser{}
	}
	rotate := &lumberjack.Logger{
		Filename:   conf.LogFile,
		MaxSize:    int(conf.MaxFileSize),
		MaxBackups: int(conf.MaxBackups),
		MaxAge:     int(conf.MaxAge),
		LocalTime:  conf.LocalTime,
		Compress:   conf.Compress,
	}
	log15.Root().SetHandler(log15.MultiHandler(console, fileHandler(conf, rotate)))
	return rotate
}

//ParseLevel 无法识别的级别按 error 处理
func ParseLevel(lvl string) log15.Lvl {
	l, err := log15.LvlFromString(lvl)
	if err != nil {
		return log15.LvlError
	}
	return l
}

//没有配置时只输出 error
func withDefaults(cfg *types.Log) *types.Log {
	conf := &types.Log{}
	if cfg != nil {
		*conf = *cfg
	}
	if conf.Loglevel == "" {
		conf.Loglevel = log15.LvlError.String()
	}
	if conf.LogConsoleLevel == "" {
		conf.LogConsoleLevel = log15.LvlError.String()
	}
	return conf
}

func consoleFormat() log15.Format {
	fd := os.Stderr.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return log15.TerminalFormat()
	}
	return log15.LogfmtFormat()
}

func fileHandler(conf *types.Log, w io.Writer) log15.Handler {
	h := log15.StreamHandler(w, log15.LogfmtFormat())
	if conf.CallerFile {
		h = log15.CallerFileHandler(h)
	}
	if conf.CallerFunction {
		h = log15.CallerFuncHandler(h)
	}
	return log15.LvlFilterHandler(ParseLevel(conf.Loglevel), h)
}
