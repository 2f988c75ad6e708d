// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// DefaultCfgString 本地测试配置, 地址需要按实际生成的替换
var DefaultCfgString = `
Title="local"

[log]
loglevel = "debug"
logConsoleLevel = "info"
logFile = "logs/raffle.log"
maxFileSize = 300
maxBackups = 100
maxAge = 28
localTime = true
compress = true
callerFile = false
callerFunction = false

[store]
name = "raffle"
driver = "leveldb"
dbPath = "datadir"
dbCache = 128
readCacheSize = 1024

[genesis]
addr = ""
coins = ["100000000000ustars"]

[drand]
scheme = "pedersen-bls-chained"

[raffle]
name = "stargaze-raffles"
owner = ""
feeAddr = ""
minimumRaffleDuration = 60
minimumRaffleTimeout = 120
maxParticipantNumber = 10000
raffleFee = "0.05"
creationCoins = ["10ustars"]
drandPublicKey = "868f005eb8e6e4ca0a47c8a77ceaa5309a47978a7c71bc5cce96366b5d7a569937c529eeda66c7293784a9402801af31"
randomnessFee = "1ustars"
drandGenesis = 1595431050
drandPeriod = 30

[metrics]
enable = true
`
