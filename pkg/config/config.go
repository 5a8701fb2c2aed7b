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

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/dbmatch/pkg/defaults"
	"github.com/NVIDIA/dbmatch/pkg/logging"
)

// Environment variable names.
const (
	EnvGeminiAPIKey       = "GEMINI_API_KEY"
	EnvGeminiModel        = "GEMINI_MODEL"
	EnvGeminiBaseURL      = "GEMINI_BASE_URL"
	EnvGeminiTemperature  = "GEMINI_TEMPERATURE"
	EnvPort               = "PORT"
	EnvRateLimitMax       = "RATE_LIMIT_MAX"
	EnvRateLimitWindow    = "RATE_LIMIT_WINDOW"
	EnvSlowDownAfter      = "SLOW_DOWN_AFTER"
	EnvSlowDownDelay      = "SLOW_DOWN_DELAY"
	EnvSlowDownMaxDelay   = "SLOW_DOWN_MAX_DELAY"
	EnvCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"
	EnvShutdownTimeout    = "SHUTDOWN_TIMEOUT_SECONDS"
)

// DefaultEnvFile is loaded by Load when present.
const DefaultEnvFile = ".env"

// ErrMissingAPIKey is returned by Validate when no Gemini key is configured.
var ErrMissingAPIKey = errors.New(EnvGeminiAPIKey + " is required")

type Config struct {
	Port               int
	LogLevel           string
	Gemini             GeminiConfig
	RateLimit          RateLimitConfig
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

type GeminiConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature *float32
}

type RateLimitConfig struct {
	Max              int
	Window           time.Duration
	SlowDownAfter    int
	SlowDownDelay    time.Duration
	SlowDownMaxDelay time.Duration
}

// Load reads configuration after loading DefaultEnvFile when present.
func Load() (Config, error) {
	return LoadFrom(DefaultEnvFile)
}

// LoadFrom reads configuration after loading the given env files. Missing
// files are skipped; malformed files are an error.
func LoadFrom(files ...string) (Config, error) {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := Config{
		Port:     getEnvInt(EnvPort, defaults.ServerPort),
		LogLevel: getEnv(logging.EnvLogLevel, "info"),
		Gemini: GeminiConfig{
			APIKey:      getEnv(EnvGeminiAPIKey, ""),
			Model:       getEnv(EnvGeminiModel, defaults.GeminiModel),
			BaseURL:     getEnv(EnvGeminiBaseURL, ""),
			Temperature: getEnvFloat32Ptr(EnvGeminiTemperature),
		},
		RateLimit: RateLimitConfig{
			Max:              getEnvInt(EnvRateLimitMax, defaults.RateLimitMax),
			Window:           getEnvDuration(EnvRateLimitWindow, defaults.RateLimitWindow),
			SlowDownAfter:    getEnvInt(EnvSlowDownAfter, defaults.SlowDownAfter),
			SlowDownDelay:    getEnvDuration(EnvSlowDownDelay, defaults.SlowDownDelay),
			SlowDownMaxDelay: getEnvDuration(EnvSlowDownMaxDelay, defaults.SlowDownMaxDelay),
		},
		CORSAllowedOrigins: getEnvList(EnvCORSAllowedOrigins, []string{"*"}),
		ShutdownTimeout:    time.Duration(getEnvInt(EnvShutdownTimeout, int(defaults.ServerShutdownTimeout/time.Second))) * time.Second,
	}

	return cfg, nil
}

// Validate checks that the configuration can serve requests.
func (c Config) Validate() error {
	if !c.Gemini.Enabled() {
		return ErrMissingAPIKey
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("%s must be between 0 and 65535, got %d", EnvPort, c.Port)
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("%s must be positive, got %s", EnvRateLimitWindow, c.RateLimit.Window)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%s must be positive", EnvShutdownTimeout)
	}
	if d, ok := c.RateLimit.maxDelay(); !ok || d+defaults.HTTPClientTimeout >= defaults.ServerWriteTimeout {
		return fmt.Errorf("%s must keep delay plus the %s model timeout under the %s write timeout",
			EnvSlowDownMaxDelay, defaults.HTTPClientTimeout, defaults.ServerWriteTimeout)
	}
	return nil
}

// maxDelay reports the longest slow-down a single request can receive. It
// returns false when the delay is unbounded.
func (r RateLimitConfig) maxDelay() (time.Duration, bool) {
	if r.SlowDownAfter <= 0 || r.SlowDownDelay <= 0 {
		return 0, true
	}
	if r.SlowDownMaxDelay > 0 {
		return r.SlowDownMaxDelay, true
	}
	if r.Max > r.SlowDownAfter {
		return time.Duration(r.Max-r.SlowDownAfter) * r.SlowDownDelay, true
	}
	if r.Max > 0 {
		return 0, true
	}
	return 0, false
}

func (c GeminiConfig) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("ignoring invalid integer", "key", key, "value", value)
		return fallback
	}
	return i
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("ignoring invalid duration", "key", key, "value", value)
		return fallback
	}
	return d
}

func getEnvFloat32Ptr(key string) *float32 {
	value := getEnv(key, "")
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 32)
	if err != nil {
		slog.Warn("ignoring invalid number", "key", key, "value", value)
		return nil
	}
	return ptr.To(float32(f))
}

func getEnvList(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var out []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
