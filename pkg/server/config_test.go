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
	"testing"
	"time"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	if cfg.Address != "" {
		t.Errorf("expected empty address, got %s", cfg.Address)
	}

	if cfg.Port != 7000 {
		t.Errorf("expected port 7000, got %d", cfg.Port)
	}

	if cfg.RateLimitMax != 100 {
		t.Errorf("expected rate limit 100, got %d", cfg.RateLimitMax)
	}

	if cfg.RateLimitWindow != 15*time.Minute {
		t.Errorf("expected rate limit window 15m, got %v", cfg.RateLimitWindow)
	}

	if cfg.SlowDownAfter != 50 {
		t.Errorf("expected slow-down after 50, got %d", cfg.SlowDownAfter)
	}

	if cfg.SlowDownDelay != 500*time.Millisecond {
		t.Errorf("expected slow-down delay 500ms, got %v", cfg.SlowDownDelay)
	}

	if cfg.SlowDownMaxDelay != 20*time.Second {
		t.Errorf("expected slow-down max delay 20s, got %v", cfg.SlowDownMaxDelay)
	}

	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Errorf("expected CORS to allow any origin, got %v", cfg.CORSAllowedOrigins)
	}

	if cfg.ReadTimeout != 10*time.Second {
		t.Errorf("expected read timeout 10s, got %v", cfg.ReadTimeout)
	}

	if cfg.WriteTimeout != 90*time.Second {
		t.Errorf("expected write timeout 90s, got %v", cfg.WriteTimeout)
	}

	if cfg.IdleTimeout != 120*time.Second {
		t.Errorf("expected idle timeout 120s, got %v", cfg.IdleTimeout)
	}

	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("expected shutdown timeout 30s, got %v", cfg.ShutdownTimeout)
	}
}

func TestNewClientLimiter_FromConfig(t *testing.T) {
	cfg := NewConfig()
	cfg.RateLimitMax = 100
	cfg.RateLimitWindow = 15 * time.Minute

	l := newClientLimiter(cfg)

	if l.max != 100 || l.window != 15*time.Minute {
		t.Errorf("expected 100 per 15m, got %d per %v", l.max, l.window)
	}
	if l.idleTTL < cfg.RateLimitWindow {
		t.Errorf("expected idle TTL to cover the window, got %v", l.idleTTL)
	}
}

func TestNewClientLimiter_DefaultWindow(t *testing.T) {
	cfg := NewConfig()
	cfg.RateLimitWindow = 0

	l := newClientLimiter(cfg)
	if l.window != 15*time.Minute {
		t.Errorf("expected default window 15m, got %v", l.window)
	}
}
