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

package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/dbmatch/pkg/defaults"
)

// clientState is a client's fixed admission window.
type clientState struct {
	windowStart time.Time
	hits        int
	lastSeen    time.Time
}

// decision is the outcome of admitting one request.
type decision struct {
	allowed    bool
	limit      int
	remaining  int
	retryAfter time.Duration
	reset      time.Time
	delay      time.Duration
}

// clientLimiter counts requests per client in fixed windows. The same count
// drives rejection past max and the slow-down delay past slowAfter, and it
// includes rejected requests. Idle clients are evicted by a cleanup loop
// started with start.
type clientLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientState

	max    int
	window time.Duration

	slowAfter int
	slowStep  time.Duration
	slowMax   time.Duration

	idleTTL time.Duration
	now     func() time.Time

	// rejectLog throttles rejection warnings.
	rejectLog rate.Sometimes

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	done      chan struct{}
}

func newClientLimiter(cfg *Config) *clientLimiter {
	window := cfg.RateLimitWindow
	if window <= 0 {
		window = defaults.RateLimitWindow
	}

	l := &clientLimiter{
		clients:   make(map[string]*clientState),
		max:       cfg.RateLimitMax,
		window:    window,
		slowAfter: cfg.SlowDownAfter,
		slowStep:  cfg.SlowDownDelay,
		slowMax:   cfg.SlowDownMaxDelay,
		idleTTL:   defaults.RateLimitIdleTTL,
		now:       time.Now,
		rejectLog: rate.Sometimes{First: 1, Interval: time.Minute},
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	if l.idleTTL < window {
		l.idleTTL = window
	}
	return l
}

// start launches the idle client cleanup loop. Subsequent calls are no-ops.
func (l *clientLimiter) start(interval time.Duration) {
	l.startOnce.Do(func() {
		go l.cleanupLoop(interval)
	})
}

// Stop ends the cleanup loop and waits for it to exit. Safe to call more than
// once and without a prior start.
func (l *clientLimiter) Stop() {
	l.stopOnce.Do(func() {
		close(l.stop)
		started := true
		l.startOnce.Do(func() { started = false })
		if started {
			<-l.done
		}
	})
}

func (l *clientLimiter) cleanupLoop(interval time.Duration) {
	defer close(l.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.evictIdle()
		case <-l.stop:
			return
		}
	}
}

func (l *clientLimiter) evictIdle() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	evicted := 0
	for key, st := range l.clients {
		if now.Sub(st.lastSeen) > l.idleTTL {
			delete(l.clients, key)
			evicted++
		}
	}
	rateLimitClients.Set(float64(len(l.clients)))
	return evicted
}

// state returns the client entry, creating it when missing. Caller holds mu.
func (l *clientLimiter) state(key string, now time.Time) *clientState {
	st, ok := l.clients[key]
	if !ok {
		st = &clientState{windowStart: now}
		l.clients[key] = st
		rateLimitClients.Set(float64(len(l.clients)))
	}
	st.lastSeen = now
	return st
}

// admit counts one request for key in its current window and decides whether
// it is served and how long it is held first. Rejected requests are not
// delayed.
func (l *clientLimiter) admit(key string) decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	st := l.state(key, now)
	if now.Sub(st.windowStart) >= l.window {
		st.windowStart = now
		st.hits = 0
	}
	st.hits++

	d := decision{
		allowed: true,
		reset:   st.windowStart.Add(l.window),
	}
	if l.max > 0 {
		d.limit = l.max
		d.remaining = max(l.max-st.hits, 0)
		if st.hits > l.max {
			d.allowed = false
			d.retryAfter = d.reset.Sub(now)
			return d
		}
	}
	d.delay = l.slowDelay(st.hits)
	return d
}

// slowDelay is the hold for the hits-th request of a window.
func (l *clientLimiter) slowDelay(hits int) time.Duration {
	if l.slowAfter <= 0 || l.slowStep <= 0 {
		return 0
	}
	over := hits - l.slowAfter
	if over <= 0 {
		return 0
	}
	d := time.Duration(over) * l.slowStep
	if l.slowMax > 0 && d > l.slowMax {
		d = l.slowMax
	}
	return d
}

// clientKey identifies the caller by remote IP.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		return r.RemoteAddr
	}
	return host
}
