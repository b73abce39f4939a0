package httpclient

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"go.uber.org/zap/zapcore"
)

const redacted = "[redacted]"

var sensitiveHeaders = map[string]struct{}{
	"authorization":       {},
	"proxy-authorization": {},
	"cookie":              {},
}

// RedactedHeaders returns a copy of headers with credentials masked.
func (r Request) RedactedHeaders() map[string]string {
	if len(r.Headers) == 0 {
		return nil
	}
	out := make(map[string]string, len(r.Headers))
	for k, v := range r.Headers {
		if _, ok := sensitiveHeaders[strings.ToLower(k)]; ok {
			out[http.CanonicalHeaderKey(k)] = redacted
			continue
		}
		out[http.CanonicalHeaderKey(k)] = v
	}
	return out
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (r Request) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("method", r.Method)
	enc.AddString("url", r.URL)
	headers := r.RedactedHeaders()
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		enc.AddString("header."+k, headers[k])
	}
	enc.AddInt("body_bytes", len(r.Body))
	if r.Form != nil {
		enc.AddInt("form_fields", len(r.Form))
	}
	if r.Timeout > 0 {
		enc.AddDuration("timeout", r.Timeout)
	}
	return nil
}

// MarshalJSON keeps reflection-based encoders (zap.Any, json) from printing credentials.
func (r Request) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Method    string            `json:"method"`
		URL       string            `json:"url"`
		Headers   map[string]string `json:"headers,omitempty"`
		BodyBytes int               `json:"body_bytes"`
		Form      int               `json:"form_fields,omitempty"`
		TimeoutMs int64             `json:"timeout_ms,omitempty"`
	}{
		Method:    r.Method,
		URL:       r.URL,
		Headers:   r.RedactedHeaders(),
		BodyBytes: len(r.Body),
		Form:      len(r.Form),
		TimeoutMs: r.Timeout.Milliseconds(),
	})
}
