// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/33cn/raffle/types"
	log15 "github.com/inconshreveable/log15"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log15.LvlDebug, ParseLevel("debug"))
	assert.Equal(t, log15.LvlInfo, ParseLevel("info"))
	assert.Equal(t, log15.LvlError, ParseLevel("nosuchlevel"))
}

func TestWithDefaults(t *testing.T) {
	conf := withDefaults(nil)
	assert.Equal(t, "eror", conf.Loglevel)
	assert.Equal(t, "eror", conf.LogConsoleLevel)

	in := &types.Log{Loglevel: "debug"}
	conf = withDefaults(in)
	assert.Equal(t, "debug", conf.Loglevel)
	assert.Equal(t, "eror", conf.LogConsoleLevel)
	assert.Equal(t, "", in.LogConsoleLevel)
}

func TestSetupFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "raffle.log")
	closer := Setup(&types.Log{Loglevel: "info", LogConsoleLevel: "crit", LogFile: file})
	logger := log15.New("module", "test")
	logger.Debug("hidden")
	logger.Info("hello", "raffle", 1)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello")
	assert.Contains(t, string(data), "raffle=1")
	assert.NotContains(t, string(data), "hidden")

	closer = Setup(&types.Log{LogConsoleLevel: "crit"})
	assert.NoError(t, closer.Close())
}
