package apitoken

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/goto/optimus-apitoken/internal/auth/tokenexchange"
	"github.com/goto/optimus-apitoken/internal/model"
	xnet "github.com/goto/optimus-apitoken/internal/net"
	"github.com/goto/optimus-apitoken/pkg/dataset"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const dataSetType = "APITokenDataSet"

// APITokenDataSet loads data from an HTTP(S) api protected by a token.
// Every Load and Exists first posts the credentials to <scheme>://<host>/token
// and then sends the configured request with the returned token in the
// Authorization header. Tokens are never reused.
type APITokenDataSet struct {
	l           *slog.Logger
	client      *http.Client
	spec        RequestSpec
	credentials map[string]string
	metric      *fetchMetric
}

var _ dataset.DataSet[*Response] = (*APITokenDataSet)(nil)

// Option configures an APITokenDataSet.
type Option func(*APITokenDataSet)

// WithHTTPClient sets the client used for both the token and the data request.
// Its Timeout should be zero, the data request is bounded by RequestSpec.Timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(ds *APITokenDataSet) {
		if client != nil {
			ds.client = client
		}
	}
}

// WithTLSConfig sets the tls configuration of both requests.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(ds *APITokenDataSet) {
		if cfg == nil {
			return
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = cfg
		ds.client = &http.Client{Transport: transport}
	}
}

// NewDataSet creates a new api token data set. No request is sent and
// the url is not validated until the first Load or Exists.
// A nil logger falls back to slog.Default().
func NewDataSet(l *slog.Logger, spec RequestSpec, credentials map[string]string, opts ...Option) (*APITokenDataSet, error) {
	if l == nil {
		l = slog.Default()
	}
	normalized, err := spec.normalize()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	fm, err := newFetchMetric("dataset", "apitoken")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	ds := &APITokenDataSet{
		l:           l.WithGroup("dataset").With("name", "apitoken"),
		client:      &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()},
		spec:        normalized,
		credentials: maps.Clone(credentials),
		metric:      fm,
	}
	for _, opt := range opts {
		opt(ds)
	}
	return ds, nil
}

// Load returns the data response as is.
func (ds *APITokenDataSet) Load(ctx context.Context) (*Response, error) {
	return ds.execute(ctx)
}

// Save always fails, the data set is read only.
func (ds *APITokenDataSet) Save(_ context.Context, _ any) error {
	return errors.WithStack(newReadOnlyError(dataSetType))
}

// Exists runs a full fetch and reports whether the response status is ok.
// Error statuses are returned as errors, not as false.
func (ds *APITokenDataSet) Exists(ctx context.Context) (bool, error) {
	resp, err := ds.execute(ctx)
	if err != nil {
		return false, err
	}
	return resp.OK(), nil
}

// Describe returns the request configuration, credentials excluded.
func (ds *APITokenDataSet) Describe() *model.Record {
	data, _ := copyData(ds.spec.Data)

	record := model.NewRecord()
	record.Set("url", ds.spec.URL)
	record.Set("method", ds.spec.Method)
	record.Set("data", data)
	record.Set("params", maps.Clone(ds.spec.Params))
	record.Set("auth", ds.spec.Auth)
	record.Set("timeout", ds.spec.Timeout)
	return record
}

func (ds *APITokenDataSet) execute(ctx context.Context) (*Response, error) {
	l := ds.l.With("fetch_id", uuid.NewString())

	token, err := ds.exchangeToken(ctx, l)
	if err != nil {
		return nil, ds.fail(ctx, l, "token", err)
	}

	resp, err := ds.request(ctx, l, token)
	if err != nil {
		return nil, ds.fail(ctx, l, "request", err)
	}
	return resp, nil
}

func (ds *APITokenDataSet) exchangeToken(ctx context.Context, l *slog.Logger) (*oauth2.Token, error) {
	tokenURL, err := tokenexchange.TokenURL(ds.spec.URL)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	ds.metric.recordTokenExchange(ctx)
	token, err := tokenexchange.NewExchanger(l, ds.client, tokenURL, ds.credentials).Exchange(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	l.Debug(fmt.Sprintf("token exchanged, type: %s", token.TokenType))
	return token, nil
}

// request sends the data request, only this step is bounded by RequestSpec.Timeout.
func (ds *APITokenDataSet) request(ctx context.Context, l *slog.Logger, token *oauth2.Token) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(ds.spec.Timeout)*time.Second)
	defer cancel()

	body, contentType := encodeBody(ds.spec.Data)
	req, err := http.NewRequestWithContext(ctx, ds.spec.Method, ds.spec.URL, body)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	addParams(req.URL, ds.spec.Params)
	req.Header.Set("Authorization", tokenexchange.AuthorizationHeader(token))
	if ds.spec.Auth != nil {
		ds.spec.Auth.Apply(req)
	}

	l.Debug(fmt.Sprintf("request: %s %s", req.Method, req.URL.Redacted()))
	start := time.Now()
	resp, err := ds.client.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	duration := time.Since(start)
	ds.metric.recordRequest(ctx, req.Method, resp.StatusCode, duration.Milliseconds())
	l.Debug(fmt.Sprintf("response: %s, %d bytes in %s", resp.Status, len(raw), duration))

	if err := xnet.CheckStatus(resp); err != nil {
		return nil, errors.WithStack(err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header.Clone(),
		Body:       raw,
		URL:        resp.Request.URL.String(),
	}, nil
}

// fail maps err to a DataSetError. Cancellation by the caller is
// returned as the context error.
func (ds *APITokenDataSet) fail(ctx context.Context, l *slog.Logger, step string, err error) error {
	var dsErr *DataSetError
	var statusErr *HTTPStatusError
	var malformedErr *tokenexchange.MalformedTokenError
	reason := ""

	switch {
	case ctx.Err() != nil:
		l.Debug(fmt.Sprintf("%s cancelled: %s", step, err.Error()))
		return errors.WithStack(ctx.Err())
	case errors.As(err, &statusErr):
		dsErr = newHTTPError(statusErr)
	case errors.As(err, &malformedErr):
		dsErr = newMalformedTokenError(malformedErr)
	default:
		reason = xnet.Reason(err)
		l.Debug(fmt.Sprintf("%s transport error (%s): %s", step, reason, err.Error()))
		dsErr = newConnectivityError()
	}

	ds.metric.recordError(ctx, step, dsErr.Kind, reason)
	return errors.WithStack(dsErr)
}
