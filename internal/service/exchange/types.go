package exchange

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
)

func (m Method) ToString() string {
	return string(m)
}

func (m Method) IsValid() bool {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodDelete:
		return true
	default:
		return false
	}
}

// CarriesBody reports whether requests with this method transmit a JSON body.
// POST and PUT always do, GET and DELETE never do.
func (m Method) CarriesBody() bool {
	return m == MethodPost || m == MethodPut
}

// Request is a single, fully resolved call against the exchange REST API.
// It is built fresh for every invocation and never reused.
type Request struct {
	Method Method
	// Path is the resource path only, without scheme, host or query.
	Path  string
	Query url.Values
	Body  []byte
	// Timestamp is sampled once at build time (decimal unix millis) and is
	// used for both the signed message and the transmitted header.
	Timestamp string
}

func (r *Request) RawQuery() string {
	if len(r.Query) == 0 {
		return ""
	}
	return r.Query.Encode()
}

// Target returns the path plus the encoded query string, as transmitted.
func (r *Request) Target() string {
	q := r.RawQuery()
	if q == "" {
		return r.Path
	}
	return r.Path + "?" + q
}

// SigningPath returns the path covered by the signature. Whether the query
// string is part of it is a protocol decision left to the caller.
func (r *Request) SigningPath(withQuery bool) string {
	if withQuery {
		return r.Target()
	}
	return r.Path
}

func (r *Request) HasBody() bool {
	return len(r.Body) > 0
}

// BodyString returns the body as sent, or "" when there is none.
func (r *Request) BodyString() string {
	return string(r.Body)
}

func (r *Request) ToString() string {
	return strings.TrimSpace(r.Method.ToString() + " " + r.Target())
}

// Result is the normalized outcome of one invocation. Exactly one of Payload
// (on success, possibly nil for an empty body) or Err is meaningful.
type Result struct {
	Payload any
	Err     error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// APIError returns the normalized transport/protocol error, if that is what
// the result carries.
func (r Result) APIError() (*APIError, bool) {
	var apiErr *APIError
	if errors.As(r.Err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Client sends signed requests and normalizes whatever comes back.
type Client interface {
	Do(ctx context.Context, req *Request) Result
}
