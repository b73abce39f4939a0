package publishers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/samvad-hq/wpcom-harvester/internal/domain"
)

func TestHTTPPublisherSendsEventJSON(t *testing.T) {
	var got Event
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if r.Header.Get("Authorization") != "Bearer hook-secret" {
			t.Errorf("configured header missing, got %q", r.Header.Get("Authorization"))
		}
		if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	cfg := sanitizePublisherConfig(PublisherConfig{
		ID:   "hook",
		Type: TypeHTTP,
		HTTP: &HTTPPublisherConfig{
			URL:     srv.URL,
			Method:  "put",
			Headers: map[string]string{"Authorization": "Bearer hook-secret"},
		},
	})
	pub, err := newHTTPPublisher(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("newHTTPPublisher: %v", err)
	}

	item := domain.Item{
		ID:      "example.com:post:42",
		Kind:    domain.ItemPost,
		Site:    "example.com",
		Route:   "sites/example.com/posts",
		Title:   "Hello",
		URL:     "https://example.com/hello",
		Content: "<p>raw</p>",
	}
	if err := pub.Publish(context.Background(), NewEvent("blog", "Blog posts", item)); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if got.JobID != "blog" || got.JobName != "Blog posts" || got.Kind != domain.ItemPost || got.Site != "example.com" {
		t.Fatalf("unexpected envelope %+v", got)
	}
	if got.Item.ID != item.ID || got.Item.Route != item.Route || got.Item.URL != item.URL {
		t.Fatalf("unexpected item %+v", got.Item)
	}
	if got.Item.Content != "" {
		t.Fatalf("raw content must not be published, got %q", got.Item.Content)
	}
	if got.CollectedAt.IsZero() {
		t.Fatalf("collected_at not set")
	}
}

func TestHTTPPublisherReportsRejectedSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "snapshot payload too large", http.StatusRequestEntityTooLarge)
	}))
	defer srv.Close()

	pub, err := newHTTPPublisher(context.Background(), PublisherConfig{
		ID:   "hook",
		Type: TypeHTTP,
		HTTP: &HTTPPublisherConfig{URL: srv.URL, TimeoutSeconds: 1},
	}, nil)
	if err != nil {
		t.Fatalf("newHTTPPublisher: %v", err)
	}

	evt := NewEvent("stats", "Stats", domain.Item{ID: "1:stats", Kind: domain.ItemSnapshot, Payload: map[string]any{"views": 10}})
	err = pub.Publish(context.Background(), evt)
	if err == nil {
		t.Fatalf("expected error on non-2xx response")
	}
	if !strings.Contains(err.Error(), "413") || !strings.Contains(err.Error(), "too large") {
		t.Fatalf("error should carry status and body snippet, got %v", err)
	}
}

func TestNewHTTPPublisherRequiresBlock(t *testing.T) {
	if _, err := newHTTPPublisher(context.Background(), PublisherConfig{ID: "h", Type: TypeHTTP}, nil); err == nil {
		t.Fatalf("expected error without http block")
	}
}
