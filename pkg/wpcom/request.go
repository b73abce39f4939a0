package wpcom

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samvad-hq/wpcom-harvester/pkg/httpclient"
)

// Request is one prepared call. It is produced by BuildRequest, consumed by
// Fetch, and emptied once sent so it cannot be dispatched twice.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	// Body is the JSON encoding of the params for non-GET calls.
	Body []byte
	// Form carries the params unmodified when a non-JSON content type is configured.
	Form    Params
	Timeout time.Duration

	err error
}

// Built reports whether r still holds a request that has not been sent.
func (r *Request) Built() bool {
	return r != nil && r.Method != "" && r.URL != ""
}

func (r *Request) clear() {
	r.Method = ""
	r.URL = ""
	r.Headers = nil
	r.Body = nil
	r.Form = nil
	r.Timeout = 0
	r.err = nil
}

func (r *Request) transport() httpclient.Request {
	out := httpclient.Request{
		Method:  r.Method,
		URL:     r.URL,
		Headers: r.Headers,
		Body:    r.Body,
		Timeout: r.Timeout,
	}
	if r.Form != nil {
		out.Form = r.Form.Values()
	}
	return out
}

// appendQuery merges vals into the query of route, overriding keys already present.
func appendQuery(route string, vals url.Values) string {
	if len(vals) == 0 {
		return route
	}

	route, fragment, hasFragment := strings.Cut(route, "#")
	path, rawQuery, _ := strings.Cut(route, "?")

	merged := url.Values{}
	if rawQuery != "" {
		if existing, err := url.ParseQuery(rawQuery); err == nil {
			merged = existing
		}
	}
	for k, v := range vals {
		merged[k] = v
	}
	out := path + "?" + merged.Encode()
	if hasFragment {
		out += "#" + fragment
	}
	return out
}

func normalizeMethod(method string) string {
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		return http.MethodGet
	}
	return method
}
