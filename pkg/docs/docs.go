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

package docs

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"

	"gopkg.in/yaml.v3"

	cnserrors "github.com/NVIDIA/dbmatch/pkg/errors"
	"github.com/NVIDIA/dbmatch/pkg/server"
)

const (
	RouteLanding     = "/"
	RouteDocs        = "/docs"
	RouteDocsTree    = "/docs/"
	RouteOpenAPIJSON = "/docs/openapi.json"
	RouteOpenAPIYAML = "/docs/openapi.yaml"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json"
	contentTypeYAML = "application/yaml"
)

var (
	//go:embed openapi.yaml
	openAPIYAML []byte

	//go:embed swagger.html
	swaggerHTML []byte

	//go:embed index.html
	landingHTML []byte
)

// Site serves the landing page and the API documentation.
type Site struct {
	openAPIYAML []byte
	openAPIJSON []byte
}

// New renders the embedded OpenAPI document for the given build version.
func New(version string) (*Site, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(openAPIYAML, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse openapi document: %w", err)
	}

	if info, ok := doc["info"].(map[string]any); ok && version != "" {
		info["version"] = version
	}

	js, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert openapi document to json: %w", err)
	}

	y, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to render openapi document: %w", err)
	}

	return &Site{openAPIYAML: y, openAPIJSON: js}, nil
}

// Routes returns the handlers to register with server.WithStaticHandler.
func (s *Site) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		RouteLanding:     s.HandleLanding,
		RouteDocs:        s.HandleDocs,
		RouteDocsTree:    s.HandleDocs,
		RouteOpenAPIJSON: s.HandleOpenAPIJSON,
		RouteOpenAPIYAML: s.HandleOpenAPIYAML,
	}
}

// HandleLanding serves the landing page on "/" and 404 for any other path
// the root pattern catches.
func (s *Site) HandleLanding(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != RouteLanding {
		notFound(w, r)
		return
	}
	write(w, r, contentTypeHTML, landingHTML)
}

// HandleDocs serves the API browser.
func (s *Site) HandleDocs(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != RouteDocs && r.URL.Path != RouteDocsTree {
		notFound(w, r)
		return
	}
	write(w, r, contentTypeHTML, swaggerHTML)
}

// HandleOpenAPIJSON serves the OpenAPI document as JSON.
func (s *Site) HandleOpenAPIJSON(w http.ResponseWriter, r *http.Request) {
	write(w, r, contentTypeJSON, s.openAPIJSON)
}

// HandleOpenAPIYAML serves the OpenAPI document as YAML.
func (s *Site) HandleOpenAPIYAML(w http.ResponseWriter, r *http.Request) {
	write(w, r, contentTypeYAML, s.openAPIYAML)
}

func write(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		server.WriteError(w, r, http.StatusMethodNotAllowed, cnserrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method": r.Method,
			})
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	server.WriteError(w, r, http.StatusNotFound, cnserrors.ErrCodeNotFound,
		"Route not found", false, map[string]any{
			"path": r.URL.Path,
		})
}
