package apitoken

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const (
	DefaultMethod  = http.MethodGet
	DefaultTimeout = 60 // seconds
)

// RequestSpec describes the data request.
type RequestSpec struct {
	// URL is the absolute resource url, its host also serves /token.
	URL string
	// Method defaults to GET.
	Method string
	// Data is the request body: string or []byte are sent raw,
	// url.Values, map[string]string or map[string]any are form-encoded.
	// Other types, readers included, are refused by NewDataSet since the
	// body is sent again on every call.
	Data any
	// Params are appended to the url query, the configured query is kept as is.
	Params map[string]string
	// Auth is applied to the data request after the token header.
	Auth Auth
	// Timeout bounds the data request in seconds, defaults to 60.
	Timeout int
}

// Auth modifies the data request before it is sent.
type Auth interface {
	Apply(req *http.Request)
}

// BasicAuth is HTTP basic authentication.
type BasicAuth struct {
	Username string
	Password string
}

var _ Auth = BasicAuth{}

func (a BasicAuth) Apply(req *http.Request) {
	req.SetBasicAuth(a.Username, a.Password)
}

func (a BasicAuth) String() string {
	return fmt.Sprintf("BasicAuth(%s, ******)", a.Username)
}

// MarshalJSON hides the password.
func (a BasicAuth) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"type":     "basic",
		"username": a.Username,
		"password": "******",
	})
}

// Response is the fully read data response.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
	// URL is the final url, after redirects.
	URL string
}

// OK reports whether the status code is below 400.
func (r *Response) OK() bool {
	return r.StatusCode < http.StatusBadRequest
}

// normalize applies defaults and copies every reference so
// the caller cannot mutate the spec afterwards.
func (s RequestSpec) normalize() (RequestSpec, error) {
	data, err := copyData(s.Data)
	if err != nil {
		return RequestSpec{}, errors.WithStack(err)
	}
	n := RequestSpec{
		URL:     s.URL,
		Method:  strings.ToUpper(s.Method),
		Data:    data,
		Params:  maps.Clone(s.Params),
		Auth:    s.Auth,
		Timeout: s.Timeout,
	}
	if n.Method == "" {
		n.Method = DefaultMethod
	}
	if n.Timeout <= 0 {
		n.Timeout = DefaultTimeout
	}
	return n, nil
}

func copyData(data any) (any, error) {
	switch v := data.(type) {
	case nil:
		return nil, nil
	case string:
		return v, nil
	case []byte:
		return bytes.Clone(v), nil
	case url.Values:
		c := url.Values{}
		for k, vs := range v {
			c[k] = append([]string(nil), vs...)
		}
		return c, nil
	case map[string]string:
		return maps.Clone(v), nil
	case map[string]any:
		return maps.Clone(v), nil
	default:
		return nil, errors.Errorf("unsupported data type %T", data)
	}
}

// encodeBody returns a fresh reader on every call so the spec can be reused.
func encodeBody(data any) (io.Reader, string) {
	switch v := data.(type) {
	case string:
		return strings.NewReader(v), ""
	case []byte:
		return bytes.NewReader(v), ""
	case url.Values:
		return strings.NewReader(v.Encode()), "application/x-www-form-urlencoded"
	case map[string]string:
		values := url.Values{}
		for k, s := range v {
			values.Set(k, s)
		}
		return strings.NewReader(values.Encode()), "application/x-www-form-urlencoded"
	case map[string]any:
		values := url.Values{}
		for k, a := range v {
			values.Set(k, fmt.Sprint(a))
		}
		return strings.NewReader(values.Encode()), "application/x-www-form-urlencoded"
	default:
		return nil, ""
	}
}

// addParams appends params to the url query. The existing raw query
// is left untouched, pairs url.ParseQuery would reject included.
func addParams(u *url.URL, params map[string]string) {
	if len(params) == 0 {
		return
	}
	extra := url.Values{}
	for k, v := range params {
		extra.Add(k, v)
	}
	if u.RawQuery != "" {
		u.RawQuery += "&"
	}
	u.RawQuery += extra.Encode()
}
