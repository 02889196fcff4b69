package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/cuentica-client/internal/querystr"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Query holds request query parameters. Nil values are dropped.
type Query map[string]any

// RequestOptions describes a single API call.
type RequestOptions struct {
	// Method is GET, POST, PUT or DELETE
	Method string

	// Path is the API path (e.g., "/customer/42")
	Path string

	// Body is JSON-encoded when non-nil
	Body any

	// Query parameters appended to the URL
	Query Query

	// SkipCache bypasses the response cache for this call
	SkipCache bool
}

// response is a decoded 2xx exchange.
type response struct {
	Body   json.RawMessage
	Header http.Header
}

// do performs one HTTP exchange and decodes the response body.
func (c *Client) do(ctx context.Context, opts RequestOptions) (*response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	logger := c.requestLogger(method, opts.Path)

	var body io.Reader
	withBody := hasBody(opts.Body)
	if withBody {
		payload, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		if c.config.Debug {
			logger.Debug().RawJSON("body", payload).Msg("Request body")
		}
		body = bytes.NewReader(payload)
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(opts.Path, opts.Query), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(AuthHeader, c.config.APIToken)
	// The API rejects bodyless requests that declare a JSON Content-Type.
	if withBody {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Debug().
		Bool("has_body", withBody).
		Interface("query", opts.Query).
		Msg("Executing Cuentica request")

	resp, err := c.roundTrip(ctx, req, resource(opts.Path), logger)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		logger.Debug().Int("status", resp.StatusCode).Msg("Empty response")
		return &response{Body: emptyValue, Header: http.Header{}}, nil
	}

	data, err := readBody(resp)
	if err != nil {
		var netErr *NetworkError
		if !errors.As(err, &netErr) {
			netErr = transportError(ctx, err)
		}
		c.recordFailure(logger, resource(opts.Path), netErr)
		return nil, netErr
	}

	logger.Debug().Int("status", resp.StatusCode).Msg("Response received")
	return &response{Body: data, Header: resp.Header}, nil
}

// roundTrip sends req and maps every failure to a typed error. On success
// the response has a 2xx status and the caller must close its body.
func (c *Client) roundTrip(ctx context.Context, req *http.Request, res string, logger zerolog.Logger) (*http.Response, error) {
	startTime := time.Now()
	defer func() {
		requestDuration.WithLabelValues(res).Observe(time.Since(startTime).Seconds())
	}()

	c.tracker.RecordRequest()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		netErr := transportError(ctx, err)
		requestsTotal.WithLabelValues(res, "network_error").Inc()
		c.recordFailure(logger, res, netErr)
		return nil, netErr
	}
	requestsTotal.WithLabelValues(res, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, resp.Body)
		rlErr := newRateLimitError(parseRetryAfter(resp.Header))
		c.tracker.RecordRateLimited(rlErr.RetryAfterSeconds)
		c.recordFailure(logger, res, rlErr)
		return nil, rlErr
	}

	data, err := readBody(resp)
	if err != nil {
		netErr := transportError(ctx, err)
		c.recordFailure(logger, res, netErr)
		return nil, netErr
	}

	apiErr := NewAPIError(resp.StatusCode, data)
	c.recordFailure(logger, res, apiErr)
	return nil, apiErr
}

func (c *Client) recordFailure(logger zerolog.Logger, res string, err error) {
	class := ClassOf(err)
	errorsTotal.WithLabelValues(string(class)).Inc()

	event := logger.Warn().Err(err).Str("error_class", string(class)).Str("resource", res)
	if status := StatusCode(err); status != 0 {
		event = event.Int("status", status)
	}
	event.Msg("Cuentica request failed")
}

func (c *Client) requestLogger(method, path string) zerolog.Logger {
	return c.logger.With().
		Str("request_id", uuid.NewString()).
		Str("method", method).
		Str("path", path).
		Logger()
}

// buildURL joins the base URL and path and appends the non-nil query values.
func (c *Client) buildURL(path string, query Query) string {
	u := c.config.APIURL + path
	values := querystr.Filter(query)
	if len(values) == 0 {
		return u
	}

	q := url.Values{}
	for k, v := range values {
		q.Set(k, v)
	}
	return u + "?" + q.Encode()
}

// transportError maps a failed exchange to a NetworkError.
func transportError(ctx context.Context, err error) *NetworkError {
	var ne net.Error
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &ne) && ne.Timeout():
		return &NetworkError{Message: "request timeout", Cause: context.DeadlineExceeded}
	case errors.Is(ctx.Err(), context.Canceled), errors.Is(err, context.Canceled):
		return &NetworkError{Message: "request cancelled", Cause: err}
	default:
		return &NetworkError{Message: "network error: " + err.Error(), Cause: err}
	}
}

// resource returns the first path segment, used as a low-cardinality metric label.
func resource(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "root"
	}
	return path
}

// hasBody reports whether v should be sent as a request body.
func hasBody(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}
