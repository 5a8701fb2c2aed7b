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

package defaults

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		// Server timeouts
		{"ServerReadTimeout", ServerReadTimeout, 5 * time.Second, 30 * time.Second},
		{"ServerWriteTimeout", ServerWriteTimeout, 15 * time.Second, 120 * time.Second},
		{"ServerIdleTimeout", ServerIdleTimeout, 30 * time.Second, 300 * time.Second},
		{"ServerShutdownTimeout", ServerShutdownTimeout, 10 * time.Second, 60 * time.Second},

		// HTTP client timeouts
		{"HTTPClientTimeout", HTTPClientTimeout, 10 * time.Second, 90 * time.Second},
		{"HTTPConnectTimeout", HTTPConnectTimeout, 1 * time.Second, 15 * time.Second},

		// Admission control
		{"RateLimitWindow", RateLimitWindow, time.Minute, time.Hour},
		{"SlowDownDelay", SlowDownDelay, 10 * time.Millisecond, 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) is above maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestServerTimeoutRelationships(t *testing.T) {
	if ServerReadTimeout > ServerWriteTimeout {
		t.Errorf("ServerReadTimeout (%v) should not exceed ServerWriteTimeout (%v)",
			ServerReadTimeout, ServerWriteTimeout)
	}
	if ServerReadHeaderTimeout > ServerReadTimeout {
		t.Errorf("ServerReadHeaderTimeout (%v) should not exceed ServerReadTimeout (%v)",
			ServerReadHeaderTimeout, ServerReadTimeout)
	}
}

func TestWriteTimeoutCoversModelCall(t *testing.T) {
	if HTTPClientTimeout >= ServerWriteTimeout {
		t.Errorf("HTTPClientTimeout (%v) should be less than ServerWriteTimeout (%v)",
			HTTPClientTimeout, ServerWriteTimeout)
	}
	if HTTPResponseHeaderTimeout > HTTPClientTimeout {
		t.Errorf("HTTPResponseHeaderTimeout (%v) should not exceed HTTPClientTimeout (%v)",
			HTTPResponseHeaderTimeout, HTTPClientTimeout)
	}
}

func TestWriteTimeoutCoversDelayedModelCall(t *testing.T) {
	budget := SlowDownMaxDelay + HTTPClientTimeout
	if budget >= ServerWriteTimeout {
		t.Errorf("SlowDownMaxDelay (%v) + HTTPClientTimeout (%v) = %v should be less than ServerWriteTimeout (%v)",
			SlowDownMaxDelay, HTTPClientTimeout, budget, ServerWriteTimeout)
	}
	if margin := ServerWriteTimeout - budget; margin < 10*time.Second {
		t.Errorf("expected at least 10s to write the response after a delayed model call, got %v", margin)
	}
}

func TestSlowDownBelowRateLimit(t *testing.T) {
	if SlowDownAfter >= RateLimitMax {
		t.Errorf("SlowDownAfter (%d) should be below RateLimitMax (%d)", SlowDownAfter, RateLimitMax)
	}
	if SlowDownDelay > SlowDownMaxDelay {
		t.Errorf("SlowDownDelay (%v) should not exceed SlowDownMaxDelay (%v)", SlowDownDelay, SlowDownMaxDelay)
	}
}
