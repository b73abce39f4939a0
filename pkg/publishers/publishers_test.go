package publishers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samvad-hq/wpcom-harvester/internal/domain"
)

func TestLoadRegistryEnabledFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.yaml")
	raw := `
publishers:
  - id: http1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: http2
    type: http
    enabled: true
    http:
      url: https://example.com/2
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "http2" {
		t.Fatalf("expected only http2 enabled, got %#v", enabled)
	}
}

func TestValidatePublisherConfigRejectsMissingHTTP(t *testing.T) {
	err := validatePublisherConfig(PublisherConfig{
		ID:   "h1",
		Type: TypeHTTP,
	})
	if err == nil {
		t.Fatalf("expected validation error for missing http block")
	}
}

func TestLoadRegistryJSONAndDuplicates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.json")
	raw := `{"publishers":[
		{"id":"q","type":"SQS","sqs":{"uri":" https://sqs/q ","region":"ap-south-1"}},
		{"id":"q","type":"sns","sns":{"topic_arn":"arn:aws:sns:::t","region":"ap-south-1"}}
	]}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestSanitizePublisherConfigDefaults(t *testing.T) {
	cfg := sanitizePublisherConfig(PublisherConfig{
		ID:   " hook ",
		Type: " HTTP ",
		HTTP: &HTTPPublisherConfig{
			URL:     " https://example.com ",
			Headers: map[string]string{" X-Key ": " v ", "Empty": " "},
		},
		SQS: &SQSPublisherConfig{QueueURL: " q ", AccessKeyID: " k "},
	})

	if cfg.ID != "hook" || cfg.Type != TypeHTTP || !cfg.EnabledValue() {
		t.Fatalf("unexpected sanitized config %#v", cfg)
	}
	if cfg.HTTP.Method != httpDefaultMethod || cfg.HTTP.TimeoutSeconds != httpDefaultTimeoutSeconds {
		t.Fatalf("http defaults not applied: %#v", cfg.HTTP)
	}
	if len(cfg.HTTP.Headers) != 1 || cfg.HTTP.Headers["X-Key"] != "v" {
		t.Fatalf("headers not sanitized: %#v", cfg.HTTP.Headers)
	}
	if cfg.SQS.QueueURL != "q" || cfg.SQS.AccessKeyID != "k" {
		t.Fatalf("sqs not trimmed: %#v", cfg.SQS)
	}
}

func TestValidatePublisherConfigPerType(t *testing.T) {
	cases := []struct {
		name string
		cfg  PublisherConfig
		ok   bool
	}{
		{"sqs missing region", PublisherConfig{ID: "a", Type: TypeSQS, SQS: &SQSPublisherConfig{QueueURL: "q"}}, false},
		{"sns missing topic", PublisherConfig{ID: "a", Type: TypeSNS, SNS: &SNSPublisherConfig{Region: "r"}}, false},
		{"pubsub missing topic", PublisherConfig{ID: "a", Type: TypePubSub, PubSub: &GCPQueueConfig{ProjectID: "p"}}, false},
		{"unknown type", PublisherConfig{ID: "a", Type: "kafka"}, false},
		{"sns", PublisherConfig{ID: "a", Type: TypeSNS, SNS: &SNSPublisherConfig{TopicARN: "t", Region: "r"}}, true},
		{"pubsub", PublisherConfig{ID: "a", Type: TypePubSub, PubSub: &GCPQueueConfig{ProjectID: "p", Topic: "t"}}, true},
	}
	for _, tc := range cases {
		err := validatePublisherConfig(tc.cfg)
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestLoadRegistryRoutingFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publishers.yml")
	raw := `
publishers:
  - id: posts-only
    type: http
    jobs: [" blog ", "blog", ""]
    kinds: [" POST "]
    http:
      url: https://example.com/hook
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	cfg, ok := reg.ByID("posts-only")
	if !ok {
		t.Fatalf("publisher not indexed")
	}
	if len(cfg.Jobs) != 1 || cfg.Jobs[0] != "blog" || len(cfg.Kinds) != 1 || cfg.Kinds[0] != domain.ItemPost {
		t.Fatalf("filters not normalized: jobs=%v kinds=%v", cfg.Jobs, cfg.Kinds)
	}

	if !cfg.Accepts(Event{JobID: "blog", Kind: domain.ItemPost}) {
		t.Fatalf("expected blog post to be accepted")
	}
	if cfg.Accepts(Event{JobID: "blog", Kind: domain.ItemSnapshot}) {
		t.Fatalf("snapshot should be filtered by kind")
	}
	if cfg.Accepts(Event{JobID: "stats", Kind: domain.ItemPost}) {
		t.Fatalf("other job should be filtered")
	}
	if !(PublisherConfig{}).Accepts(Event{JobID: "any"}) {
		t.Fatalf("empty filters should accept everything")
	}
}

func TestNewConfigRegistryRejectsUnknownKind(t *testing.T) {
	_, err := NewConfigRegistry([]PublisherConfig{{
		ID:    "h",
		Type:  TypeHTTP,
		Kinds: []string{"comment"},
		HTTP:  &HTTPPublisherConfig{URL: "https://example.com"},
	}})
	if err == nil || !strings.Contains(err.Error(), "comment") {
		t.Fatalf("expected unknown kind error, got %v", err)
	}
}
