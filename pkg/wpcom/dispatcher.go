// Package wpcom is a client for the WordPress.com REST API v1.1.
//
// Every endpoint method funnels into the Dispatcher, which turns a route,
// a parameter map and an HTTP method into exactly one request:
//
//	d, err := wpcom.New(token)
//	req := d.BuildRequest("sites/123/stats", wpcom.Params{"period": "day"}, http.MethodGet)
//	payload, err := d.Fetch(ctx, req)
//
// Non-2xx responses come back as *ResponseError carrying the status code and
// the decoded body.
package wpcom

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/samvad-hq/wpcom-harvester/pkg/httpclient"
)

const (
	// DefaultBaseURI is the WordPress.com REST API v1.1 root.
	DefaultBaseURI = "https://public-api.wordpress.com/rest/v1.1/"
	// DefaultTimeout bounds each request.
	DefaultTimeout = 30 * time.Second
	// ContentTypeJSON is the content type every request is sent with by default.
	ContentTypeJSON = "application/json"
)

// Dispatcher holds the credential and endpoint and performs calls. It keeps
// no per-call state and is safe for concurrent use.
type Dispatcher struct {
	token       string
	baseURI     string
	contentType string
	timeout     time.Duration
	transport   httpclient.Client
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithTransport injects the HTTP transport (defaults to a resty client).
func WithTransport(c httpclient.Client) Option {
	return func(d *Dispatcher) {
		if c != nil {
			d.transport = c
		}
	}
}

// WithBaseURI points the dispatcher at another API root, e.g. a test server.
func WithBaseURI(uri string) Option {
	return func(d *Dispatcher) {
		if uri = strings.TrimSpace(uri); uri != "" {
			if !strings.HasSuffix(uri, "/") {
				uri += "/"
			}
			d.baseURI = uri
		}
	}
}

// WithTimeout overrides the 30 second request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// WithContentType overrides the Content-Type header. A media type other than
// application/json makes non-GET params go out form-encoded; parameters such
// as charset are ignored for that choice.
func WithContentType(ct string) Option {
	return func(d *Dispatcher) {
		if ct = strings.TrimSpace(ct); ct != "" {
			d.contentType = ct
		}
	}
}

// New returns a dispatcher bound to token.
func New(token string, opts ...Option) (*Dispatcher, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrEmptyToken
	}

	d := &Dispatcher{
		token:       token,
		baseURI:     DefaultBaseURI,
		contentType: ContentTypeJSON,
		timeout:     DefaultTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.transport == nil {
		d.transport = httpclient.NewRestyClient(d.timeout)
	}
	return d, nil
}

// BaseURI returns the API root requests are built against.
func (d *Dispatcher) BaseURI() string { return d.baseURI }

// BuildRequest prepares a call without performing any I/O. GET params with
// empty values (see Params.Truthy) are dropped and the rest go in the query
// string; other methods send every param in the body.
func (d *Dispatcher) BuildRequest(route string, params Params, method string) *Request {
	method = normalizeMethod(method)
	route = strings.TrimLeft(route, "/")

	req := &Request{
		Method: method,
		Headers: map[string]string{
			"Authorization": "Bearer " + d.token,
			"Content-Type":  d.contentType,
		},
		Timeout: d.timeout,
	}

	switch {
	case method == http.MethodGet:
		route = appendQuery(route, params.Truthy().Values())
	case isJSON(d.contentType):
		body, err := encodeBody(params)
		if err != nil {
			req.err = fmt.Errorf("encode %s %s body: %w", method, route, err)
		}
		req.Body = body
	default:
		if params == nil {
			params = Params{}
		}
		req.Form = params
	}

	req.URL = d.baseURI + route
	return req
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == ContentTypeJSON
}

// encodeBody sends an empty param set as [], which is what the API has always
// received for parameterless writes.
func encodeBody(params Params) ([]byte, error) {
	if len(params) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(params)
}

// Fetch sends req and returns the decoded JSON payload. A body that is not
// valid JSON decodes to nil. req is cleared whatever the outcome.
func (d *Dispatcher) Fetch(ctx context.Context, req *Request) (any, error) {
	status, raw, err := d.send(ctx, req)
	if err != nil {
		return nil, err
	}

	payload := decodeBody(raw)
	if !isStatusOK(status) {
		return nil, &ResponseError{Code: ErrorCodeResponse, Status: status, Body: payload}
	}
	return payload, nil
}

// FetchInto sends req and decodes a successful body into out. Unlike Fetch,
// a 2xx body that does not fit out is reported.
func (d *Dispatcher) FetchInto(ctx context.Context, req *Request, out any) error {
	status, raw, err := d.send(ctx, req)
	if err != nil {
		return err
	}
	if !isStatusOK(status) {
		return &ResponseError{Code: ErrorCodeResponse, Status: status, Body: decodeBody(raw)}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Do builds and sends a call in one step.
func (d *Dispatcher) Do(ctx context.Context, method, route string, params Params) (any, error) {
	return d.Fetch(ctx, d.BuildRequest(route, params, method))
}

func (d *Dispatcher) send(ctx context.Context, req *Request) (int, []byte, error) {
	if !req.Built() {
		return 0, nil, ErrNoRequest
	}
	defer req.clear()

	if req.err != nil {
		return 0, nil, req.err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	resp, err := d.transport.Do(ctx, req.transport())
	if err != nil {
		return 0, nil, &ResponseError{Code: ErrorCodeResponse, Err: err}
	}
	return resp.StatusCode(), resp.Body(), nil
}

func decodeBody(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}
