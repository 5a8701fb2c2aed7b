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

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type sample struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Count  int               `json:"count" yaml:"count"`
	Labels map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
	Nested *sample           `json:"nested,omitempty" yaml:"nested,omitempty"`
}

func TestWriter_SerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)

	if err := w.Serialize(context.TODO(), sample{Kind: "Recommendation", Count: 2}); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	var got sample
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Kind != "Recommendation" || got.Count != 2 {
		t.Errorf("unexpected result %+v", got)
	}
	if !strings.Contains(buf.String(), "\n  \"kind\"") {
		t.Errorf("expected indented JSON, got %s", buf.String())
	}
}

func TestWriter_SerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatYAML, &buf)

	if err := w.Serialize(context.TODO(), sample{Kind: "Recommendation", Count: 3}); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	var got sample
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if got.Kind != "Recommendation" || got.Count != 3 {
		t.Errorf("unexpected result %+v", got)
	}
}

func TestWriter_SerializeTable(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	data := sample{
		Kind:   "Recommendation",
		Count:  1,
		Labels: map[string]string{"budget": "low"},
		Nested: &sample{Kind: "inner"},
	}
	if err := w.Serialize(context.TODO(), data); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"FIELD", "Kind", "Recommendation", "Labels.budget", "low", "Nested.Kind", "inner"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestWriter_SerializeTable_EmptyData(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	if err := w.Serialize(context.TODO(), map[string]string{}); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != "<empty>" {
		t.Errorf("expected <empty>, got %q", buf.String())
	}
}

func TestNewWriter_UnknownFormat(t *testing.T) {
	w := NewWriter(Format("xml"), &bytes.Buffer{})
	if w.format != FormatJSON {
		t.Errorf("expected fallback to JSON, got %s", w.format)
	}
}

func TestFormat_IsUnknown(t *testing.T) {
	tests := []struct {
		format Format
		want   bool
	}{
		{FormatJSON, false},
		{FormatYAML, false},
		{FormatTable, false},
		{Format("xml"), true},
		{Format(""), true},
	}
	for _, tt := range tests {
		if got := tt.format.IsUnknown(); got != tt.want {
			t.Errorf("Format(%q).IsUnknown() = %v, want %v", tt.format, got, tt.want)
		}
	}
}

func TestNewFileWriterOrStdout(t *testing.T) {
	t.Run("empty path writes to stdout", func(t *testing.T) {
		w := NewFileWriterOrStdout(FormatJSON, "  ")
		if w.output != os.Stdout {
			t.Error("expected stdout output")
		}
		if err := w.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})

	t.Run("writes file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.yaml")
		w := NewFileWriterOrStdout(FormatYAML, path)
		if err := w.Serialize(context.TODO(), sample{Kind: "x"}); err != nil {
			t.Fatalf("Serialize() error = %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		// second close is a no-op
		if err := w.Close(); err != nil {
			t.Errorf("second Close() error = %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if !strings.Contains(string(data), "kind: x") {
			t.Errorf("unexpected file content %q", data)
		}
	})

	t.Run("invalid path falls back to stdout", func(t *testing.T) {
		w := NewFileWriterOrStdout(FormatJSON, filepath.Join(t.TempDir(), "missing", "out.json"))
		if w.output != os.Stdout {
			t.Error("expected stdout fallback")
		}
	})
}
