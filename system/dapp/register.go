// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dapp

import (
	"sort"

	"github.com/33cn/raffle/common/address"
	"github.com/33cn/raffle/types"
	log "github.com/inconshreveable/log15"
)

var elog = log.New("module", "execs")

// DriverCreate defines a drivercreate function
type DriverCreate func() Driver

var (
	registedExecDriver = make(map[string]DriverCreate)
	execAddressNameMap = make(map[string]string)
)

// Register register driver, 同名注册两次会 panic
func Register(name string, create DriverCreate) {
	if create == nil {
		panic("Execute: Register driver is nil")
	}
	if _, dup := registedExecDriver[name]; dup {
		panic("Execute: Register called twice for driver " + name)
	}
	registedExecDriver[name] = create
	execAddressNameMap[ExecAddress(name)] = name
}

// LoadDriver 创建一个新的驱动实例
func LoadDriver(name string) (Driver, error) {
	create, ok := registedExecDriver[name]
	if !ok {
		elog.Debug("LoadDriver", "driver", name)
		return nil, types.ErrExecNotFound
	}
	d := create()
	d.SetName(name)
	return d, nil
}

// IsDriverAddress 是否是某个已注册执行器的地址
func IsDriverAddress(addr string) bool {
	_, ok := execAddressNameMap[addr]
	return ok
}

// GetDriverNameByAddress 合约地址对应的执行器名称
func GetDriverNameByAddress(addr string) (string, bool) {
	name, ok := execAddressNameMap[addr]
	return name, ok
}

// ExecAddress 执行器地址
func ExecAddress(name string) string {
	return address.ExecAddress(name)
}

// RegisteredDrivers 已注册的执行器名称
func RegisteredDrivers() []string {
	names := make([]string, 0, len(registedExecDriver))
	for name := range registedExecDriver {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheckAddress 普通地址或者合约地址
func CheckAddress(addr string) error {
	if IsDriverAddress(addr) {
		return nil
	}
	return address.CheckAddress(addr)
}
