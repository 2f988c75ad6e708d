// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics 把 go-metrics 中的指标输出到日志
package metrics

import (
	"sort"
	"time"

	log "github.com/inconshreveable/log15"
	go_metrics "github.com/rcrowley/go-metrics"
)

var mlog = log.New("module", "metrics")

//Snapshot 一个指标的快照
type Snapshot struct {
	Name  string
	Count int64
	Mean  time.Duration
}

//Collect 按名字排序收集计数器和计时器
func Collect(r go_metrics.Registry) []Snapshot {
	if r == nil {
		r = go_metrics.DefaultRegistry
	}
	var list []Snapshot
	r.Each(func(name string, i interface{}) {
		switch m := i.(type) {
		case go_metrics.Counter:
			list = append(list, Snapshot{Name: name, Count: m.Count()})
		case go_metrics.Timer:
			s := m.Snapshot()
			list = append(list, Snapshot{Name: name, Count: s.Count(), Mean: time.Duration(s.Mean())})
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

//Report 输出到日志, 计数为 0 的不输出
func Report(r go_metrics.Registry) {
	for _, s := range Collect(r) {
		if s.Count == 0 {
			continue
		}
		if s.Mean > 0 {
			mlog.Info("metrics", "name", s.Name, "count", s.Count, "mean", s.Mean)
			continue
		}
		mlog.Info("metrics", "name", s.Name, "count", s.Count)
	}
}
