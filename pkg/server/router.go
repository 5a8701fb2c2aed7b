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
	"log/slog"
	"net/http"
	"sort"
	"time"

	cnserrors "github.com/NVIDIA/dbmatch/pkg/errors"
	"github.com/NVIDIA/dbmatch/pkg/serializer"
)

// System routes, served without admission control.
const (
	RouteHealth  = "/health"
	RouteReady   = "/ready"
	RoutePing    = "/ping"
	RouteMetrics = "/metrics"
	RouteRoot    = "/"
)

func isSystemRoute(path string) bool {
	switch path {
	case RouteHealth, RouteReady, RoutePing, RouteMetrics:
		return true
	default:
		return false
	}
}

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc(RouteHealth, s.withBaseMiddleware(RouteHealth, s.handleHealth))
	mux.HandleFunc(RouteReady, s.withBaseMiddleware(RouteReady, s.handleReady))
	mux.HandleFunc(RoutePing, s.withBaseMiddleware(RoutePing, s.handlePing))
	mux.Handle(RouteMetrics, s.handleMetrics())

	for path, h := range s.config.Handlers {
		if isSystemRoute(path) {
			slog.Warn("ignoring handler for reserved route", "path", path)
			continue
		}
		mux.HandleFunc(path, s.withMiddleware(path, h))
	}

	for path, h := range s.config.StaticHandlers {
		if isSystemRoute(path) {
			slog.Warn("ignoring handler for reserved route", "path", path)
			continue
		}
		if _, dup := s.config.Handlers[path]; dup {
			slog.Warn("static handler shadowed by API handler", "path", path)
			continue
		}
		mux.HandleFunc(path, s.withBaseMiddleware(path, h))
	}

	return mux
}

// routes lists every registered path.
func (s *Server) routes() []string {
	seen := map[string]bool{
		RouteHealth:  true,
		RouteReady:   true,
		RoutePing:    true,
		RouteMetrics: true,
	}
	for p := range s.config.Handlers {
		seen[p] = true
	}
	for p := range s.config.StaticHandlers {
		seen[p] = true
	}

	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// handleDefault serves "/" when no root handler was configured.
func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != RouteRoot {
		WriteError(w, r, http.StatusNotFound, cnserrors.ErrCodeNotFound,
			"Route not found", false, map[string]any{
				"path": r.URL.Path,
			})
		return
	}
	if !allowGet(w, r) {
		return
	}

	serializer.RespondJSON(w, http.StatusOK, IndexResponse{
		Name:      s.config.Name,
		Version:   s.config.Version,
		Ready:     s.isReady(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Routes:    s.routes(),
	})
}
