// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package host

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"time"

	"github.com/prometheus/procfs"
)

const bytesPerMB = 1024 * 1024

// LoadAvg holds the 1, 5 and 15 minute CPU load averages.
type LoadAvg struct {
	OneMin     float64 `json:"1min" yaml:"1min"`
	FiveMin    float64 `json:"5min" yaml:"5min"`
	FifteenMin float64 `json:"15min" yaml:"15min"`
}

// Memory is host memory in megabytes.
type Memory struct {
	UsedMB  float64 `json:"usedMB" yaml:"usedMB"`
	TotalMB float64 `json:"totalMB" yaml:"totalMB"`
	FreeMB  float64 `json:"freeMB" yaml:"freeMB"`
}

// ProcessMemory is memory held by this process in megabytes.
type ProcessMemory struct {
	RSS       float64 `json:"rss" yaml:"rss"`
	HeapTotal float64 `json:"heapTotal" yaml:"heapTotal"`
	HeapUsed  float64 `json:"heapUsed" yaml:"heapUsed"`
}

// Snapshot is a point-in-time view of host and process resources.
type Snapshot struct {
	Uptime          string        `json:"uptime" yaml:"uptime"`
	UptimeSeconds   float64       `json:"uptimeSeconds" yaml:"uptimeSeconds"`
	CPULoadAvg      LoadAvg       `json:"cpuLoadAvg" yaml:"cpuLoadAvg"`
	Memory          Memory        `json:"memory" yaml:"memory"`
	ProcessMemoryMB ProcessMemory `json:"processMemoryMB" yaml:"processMemoryMB"`
	Platform        string        `json:"platform" yaml:"platform"`
	Arch            string        `json:"arch" yaml:"arch"`
	Cores           int           `json:"cores" yaml:"cores"`
}

// Collector reads Snapshots from a proc filesystem.
type Collector struct {
	fs    procfs.FS
	fsErr error
	now   func() time.Time
}

// Option configures a Collector.
type Option func(*Collector)

// WithProcFS reads host figures from the proc filesystem mounted at mountPoint.
func WithProcFS(mountPoint string) Option {
	return func(c *Collector) {
		c.fs, c.fsErr = procfs.NewFS(mountPoint)
	}
}

// WithClock overrides the time source used for uptime.
func WithClock(now func() time.Time) Option {
	return func(c *Collector) {
		c.now = now
	}
}

// NewCollector returns a Collector reading the default /proc mount.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{now: time.Now}
	c.fs, c.fsErr = procfs.NewDefaultFS()
	for _, opt := range opts {
		opt(c)
	}
	if c.fsErr != nil {
		slog.Debug("proc filesystem unavailable, host metrics will be zero", "error", c.fsErr)
	}
	return c
}

// Collect returns the current Snapshot. Unreadable host figures are left at
// zero and uptime reads "0 minutes"; only context cancellation is reported
// as an error.
func (c *Collector) Collect(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("host metrics collection canceled: %w", err)
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	snap := &Snapshot{
		Platform: runtime.GOOS,
		Arch:     runtime.GOARCH,
		Cores:    runtime.NumCPU(),
		Uptime:   formatUptime(0),
		ProcessMemoryMB: ProcessMemory{
			RSS:       toMB(ms.Sys),
			HeapTotal: toMB(ms.HeapSys),
			HeapUsed:  toMB(ms.HeapAlloc),
		},
	}

	if c.fsErr != nil {
		return snap, nil
	}

	c.collectLoad(snap)
	c.collectMemory(snap)
	c.collectUptime(snap)
	c.collectRSS(snap)

	return snap, nil
}

func (c *Collector) collectLoad(snap *Snapshot) {
	avg, err := c.fs.LoadAvg()
	if err != nil {
		slog.Debug("failed to read load average", "error", err)
		return
	}
	snap.CPULoadAvg = LoadAvg{
		OneMin:     round2(avg.Load1),
		FiveMin:    round2(avg.Load5),
		FifteenMin: round2(avg.Load15),
	}
}

func (c *Collector) collectMemory(snap *Snapshot) {
	mi, err := c.fs.Meminfo()
	if err != nil {
		slog.Debug("failed to read meminfo", "error", err)
		return
	}
	if mi.MemTotal == nil {
		return
	}

	// meminfo values are in kB; available memory is what the kernel could
	// hand out without swapping, falling back to MemFree on old kernels
	total := *mi.MemTotal * 1024
	var free uint64
	switch {
	case mi.MemAvailable != nil:
		free = *mi.MemAvailable * 1024
	case mi.MemFree != nil:
		free = *mi.MemFree * 1024
	}
	if free > total {
		free = total
	}

	snap.Memory = Memory{
		UsedMB:  toMB(total - free),
		TotalMB: toMB(total),
		FreeMB:  toMB(free),
	}
}

func (c *Collector) collectUptime(snap *Snapshot) {
	st, err := c.fs.Stat()
	if err != nil {
		slog.Debug("failed to read kernel stat", "error", err)
		return
	}
	if st.BootTime == 0 {
		return
	}

	boot := time.Unix(int64(st.BootTime), 0)
	up := c.now().Sub(boot)
	if up < 0 {
		up = 0
	}
	snap.UptimeSeconds = math.Floor(up.Seconds())
	snap.Uptime = formatUptime(up)
}

func formatUptime(up time.Duration) string {
	return fmt.Sprintf("%d minutes", int64(up.Minutes()))
}

func (c *Collector) collectRSS(snap *Snapshot) {
	p, err := c.fs.Self()
	if err != nil {
		slog.Debug("failed to resolve own process", "error", err)
		return
	}
	st, err := p.Stat()
	if err != nil {
		slog.Debug("failed to read process stat", "error", err)
		return
	}
	if rss := st.ResidentMemory(); rss > 0 {
		snap.ProcessMemoryMB.RSS = toMB(uint64(rss))
	}
}

func toMB(b uint64) float64 {
	return round2(float64(b) / bytesPerMB)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
