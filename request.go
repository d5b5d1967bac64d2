package guardrail

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/dmitrymomot/guardrail/engine"
)

// Request is re-exported from engine: the three optional sections of an
// incoming request the validator looks at.
type Request = engine.Request

// ErrMalformedBody reports a request body that could not be decoded into a
// key-value map.
var ErrMalformedBody = errors.New("guardrail: malformed request body")

// FromHTTP builds the validation Request record from an incoming HTTP
// request: the JSON or form-encoded body, chi route parameters, and URL
// query parameters. Sections the request does not carry stay nil so their
// rules are skipped.
func FromHTTP(r *http.Request) (Request, error) {
	req := Request{
		Params: routeParams(r),
		Query:  queryValues(r.URL.Query()),
	}

	body, err := decodeBody(r)
	if err != nil {
		return Request{}, err
	}
	req.Body = body

	return req, nil
}

func decodeBody(r *http.Request) (map[string]any, error) {
	if r.Body == nil || r.ContentLength == 0 {
		return nil, nil
	}

	ct := r.Header.Get("Content-Type")
	mediaType, _, _ := mime.ParseMediaType(ct)

	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, errors.Join(ErrMalformedBody, err)
		}
		return queryValues(r.PostForm), nil
	case "application/json", "":
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, errors.Join(ErrMalformedBody, err)
		}
		if len(raw) == 0 {
			return nil, nil
		}
		var body map[string]any
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, errors.Join(ErrMalformedBody, err)
		}
		return body, nil
	}

	return nil, nil
}

// routeParams extracts chi URL parameters when the request went through a
// chi router; nil otherwise.
func routeParams(r *http.Request) map[string]any {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || len(rctx.URLParams.Keys) == 0 {
		return nil
	}
	params := make(map[string]any, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if key == "*" {
			continue
		}
		params[key] = rctx.URLParams.Values[i]
	}
	if len(params) == 0 {
		return nil
	}
	return params
}

// queryValues flattens url.Values into the untyped section shape:
// single-value keys become strings, repeated keys become arrays.
func queryValues(values url.Values) map[string]any {
	if len(values) == 0 {
		return nil
	}
	out := make(map[string]any, len(values))
	for key, vals := range values {
		if len(vals) == 1 {
			out[key] = vals[0]
			continue
		}
		arr := make([]any, len(vals))
		for i, v := range vals {
			arr[i] = v
		}
		out[key] = arr
	}
	return out
}
