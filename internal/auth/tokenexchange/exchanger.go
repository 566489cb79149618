package tokenexchange

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	xnet "github.com/goto/optimus-apitoken/internal/net"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const tokenPath = "/token"

// MalformedTokenError is returned when the token endpoint answers with
// a body that is not a json object carrying token_type and access_token.
type MalformedTokenError struct {
	Reason string
}

func (e *MalformedTokenError) Error() string {
	return e.Reason
}

// TokenURL derives the token endpoint of resourceURL: scheme and host are kept,
// the path becomes /token, query and fragment are dropped.
func TokenURL(resourceURL string) (string, error) {
	u, err := url.Parse(resourceURL)
	if err != nil {
		return "", errors.WithStack(err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.Errorf("invalid url %q: scheme and host are required", resourceURL)
	}
	tokenURL := url.URL{
		Scheme: u.Scheme,
		User:   u.User,
		Host:   u.Host,
		Path:   tokenPath,
	}
	return tokenURL.String(), nil
}

// Exchanger trades credentials for a token on every call, nothing is cached.
type Exchanger struct {
	l           *slog.Logger
	client      *http.Client
	tokenURL    string
	credentials url.Values
}

// NewExchanger creates an Exchanger posting credentials to tokenURL.
func NewExchanger(l *slog.Logger, client *http.Client, tokenURL string, credentials map[string]string) *Exchanger {
	values := url.Values{}
	for k, v := range credentials {
		values.Set(k, v)
	}
	return &Exchanger{
		l:           l,
		client:      client,
		tokenURL:    tokenURL,
		credentials: values,
	}
}

// Exchange posts the credentials form-encoded to the token endpoint.
// A 4xx or 5xx answer is returned as *xnet.StatusError, a body without
// token_type or access_token as *MalformedTokenError, anything else
// comes from the transport.
func (e *Exchanger) Exchange(ctx context.Context) (*oauth2.Token, error) {
	e.l.Debug(fmt.Sprintf("requesting token from %s", e.tokenURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.tokenURL, strings.NewReader(e.credentials.Encode()))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := xnet.CheckStatus(resp); err != nil {
		return nil, errors.WithStack(err)
	}

	return parseToken(body)
}

// parseToken decodes the token endpoint body. Fields other than
// token_type and access_token are kept as token extras.
func parseToken(body []byte) (*oauth2.Token, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.WithStack(&MalformedTokenError{Reason: fmt.Sprintf("invalid token response body: %s", err.Error())})
	}

	tokenType, ok := raw["token_type"].(string)
	if !ok {
		return nil, errors.WithStack(&MalformedTokenError{Reason: "token_type is missing from token response"})
	}
	accessToken, ok := raw["access_token"].(string)
	if !ok {
		return nil, errors.WithStack(&MalformedTokenError{Reason: "access_token is missing from token response"})
	}

	token := &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   tokenType,
	}
	if expiresIn, ok := raw["expires_in"].(float64); ok && expiresIn > 0 {
		token.ExpiresIn = int64(expiresIn)
		token.Expiry = time.Now().Add(time.Duration(expiresIn) * time.Second)
	}
	return token.WithExtra(raw), nil
}

// AuthorizationHeader joins token type and access token with a single space.
// The token type is used verbatim, unlike oauth2.Token.Type.
func AuthorizationHeader(token *oauth2.Token) string {
	return token.TokenType + " " + token.AccessToken
}
