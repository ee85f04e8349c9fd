package deck

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ocsAppPasswordResponse is the JSON body of getapppassword
type ocsAppPasswordResponse struct {
	OCS struct {
		Data struct {
			AppPassword string `json:"apppassword"`
		} `json:"data"`
	} `json:"ocs"`
}

// BasicToken builds the Authorization header value for user and password
func BasicToken(user, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+password))
}

// NormalizeServerURL validates a user supplied server address and returns it
// without trailing slash. A missing scheme defaults to https.
func NormalizeServerURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidServer
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidServer, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%w: scheme must be http or https", ErrInvalidServer)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidServer)
	}

	parsed.RawQuery = ""
	parsed.Fragment = ""
	return strings.TrimRight(parsed.String(), "/"), nil
}

// Login exchanges a login password for an app-password and returns the
// session token. When the password already is an app-password the server
// answers 403 and the password is used as-is.
func (c *Client) Login(ctx context.Context, server, user, password string) (string, error) {
	server, err := NormalizeServerURL(server)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(user) == "" || password == "" {
		return "", fmt.Errorf("login: %w", ErrNotAuthenticated)
	}

	basic := BasicToken(user, password)

	var resp ocsAppPasswordResponse
	err = c.do(ctx, http.MethodGet, server+GetAppPasswordPath+"?format=json", basic, nil, &resp, ocsHeader())
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden {
			return basic, nil
		}
		return "", fmt.Errorf("login: %w", err)
	}

	if resp.OCS.Data.AppPassword == "" {
		return "", errors.New("login: server returned an empty app-password")
	}
	return BasicToken(user, resp.OCS.Data.AppPassword), nil
}
