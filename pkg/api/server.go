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

package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/dbmatch/pkg/config"
	"github.com/NVIDIA/dbmatch/pkg/docs"
	"github.com/NVIDIA/dbmatch/pkg/llm"
	"github.com/NVIDIA/dbmatch/pkg/logging"
	"github.com/NVIDIA/dbmatch/pkg/recommendation"
	"github.com/NVIDIA/dbmatch/pkg/server"
)

const (
	name           = "dbmatchd"
	versionDefault = "dev"

	// RouteRecommend is the recommendation endpoint.
	RouteRecommend = "/recommend-database"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/dbmatch/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve loads configuration from the environment (and .env) and runs the API
// server until SIGINT/SIGTERM.
func Serve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return Run(context.Background(), cfg)
}

// Run configures logging, wires the recommendation handler and runs the
// server until ctx is canceled or a shutdown signal arrives.
func Run(ctx context.Context, cfg config.Config) error {
	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	s, err := newServer(ctx, cfg)
	if err != nil {
		return err
	}

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// newServer builds the server for cfg without starting it.
func newServer(ctx context.Context, cfg config.Config) (*server.Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	gen, err := llm.New(ctx, llm.Config{
		APIKey:      cfg.Gemini.APIKey,
		BaseURL:     cfg.Gemini.BaseURL,
		Temperature: cfg.Gemini.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	advisor := recommendation.NewAdvisor(gen, recommendation.WithModel(cfg.Gemini.Model))

	site, err := docs.New(version)
	if err != nil {
		return nil, err
	}

	slog.Debug("configured advisor", "model", advisor.Model())

	return server.New(
		server.WithConfig(serverConfig(cfg)),
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(map[string]http.HandlerFunc{
			RouteRecommend: advisor.HandleRecommend,
		}),
		server.WithStaticHandler(site.Routes()),
	), nil
}

// serverConfig maps the process configuration onto server.Config.
func serverConfig(cfg config.Config) *server.Config {
	sc := server.NewConfig()
	sc.Port = cfg.Port
	sc.RateLimitMax = cfg.RateLimit.Max
	sc.RateLimitWindow = cfg.RateLimit.Window
	sc.SlowDownAfter = cfg.RateLimit.SlowDownAfter
	sc.SlowDownDelay = cfg.RateLimit.SlowDownDelay
	sc.SlowDownMaxDelay = cfg.RateLimit.SlowDownMaxDelay
	sc.CORSAllowedOrigins = cfg.CORSAllowedOrigins
	sc.ShutdownTimeout = cfg.ShutdownTimeout
	return sc
}
