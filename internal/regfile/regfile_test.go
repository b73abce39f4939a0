package regfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type entries struct {
	Items []struct {
		ID string `json:"id" yaml:"id"`
	} `json:"items" yaml:"items"`
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestLoadPicksDecoderByExtension(t *testing.T) {
	var fromYAML, fromJSON entries
	if err := Load(writeFile(t, "a.yml", "items:\n  - id: one\n"), "test", &fromYAML); err != nil {
		t.Fatalf("Load yaml: %v", err)
	}
	if err := Load(writeFile(t, "a.json", `{"items":[{"id":"two"}]}`), "test", &fromJSON); err != nil {
		t.Fatalf("Load json: %v", err)
	}
	if fromYAML.Items[0].ID != "one" || fromJSON.Items[0].ID != "two" {
		t.Fatalf("unexpected decode %#v %#v", fromYAML, fromJSON)
	}
}

func TestLoadReportsDecodeErrors(t *testing.T) {
	var out entries
	err := Load(writeFile(t, "bad.json", "items: [1"), "jobs", &out)
	if err == nil || !strings.Contains(err.Error(), "decode json jobs") {
		t.Fatalf("expected json decode error, got %v", err)
	}
}

func TestLoadWithoutExtensionFallsBack(t *testing.T) {
	var out entries
	if err := Load(writeFile(t, "registry", `{"items":[{"id":"x"}]}`), "test", &out); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out.Items) != 1 || out.Items[0].ID != "x" {
		t.Fatalf("unexpected decode %#v", out)
	}
}

func TestLoadMissingFileWrapsNotExist(t *testing.T) {
	var out entries
	err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "publishers", &out)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
	if err := Load("  ", "publishers", &out); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
