package showdown

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KirkDiggler/showdown-player/internal/errors"
)

// DefaultLoginURL is the main server's login endpoint
const DefaultLoginURL = "https://play.pokemonshowdown.com/action.php"

// LoginConfig holds the account used to log in
type LoginConfig struct {
	URL      string
	Username string
	// Password is empty for unregistered names
	Password   string
	HTTPClient *http.Client
}

// Validate ensures the configuration is usable
func (c *LoginConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("URL", c.URL, vb)
	errors.ValidateRequired("Username", c.Username, vb)
	return vb.Build()
}

type loginResponse struct {
	ActionSuccess bool   `json:"actionsuccess"`
	Assertion     string `json:"assertion"`
}

// GetAssertion trades the server's challstr for a login assertion.
// Registered accounts post their password; unregistered names use getassertion.
func GetAssertion(ctx context.Context, cfg *LoginConfig, challstr string) (string, error) {
	if cfg == nil {
		return "", errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return "", errors.Wrap(err, "invalid login config")
	}
	if challstr == "" {
		return "", errors.InvalidArgument("challstr is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	var req *http.Request
	var err error
	if cfg.Password != "" {
		form := url.Values{
			"act":      {"login"},
			"name":     {cfg.Username},
			"pass":     {cfg.Password},
			"challstr": {challstr},
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, cfg.URL, strings.NewReader(form.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		query := url.Values{
			"act":      {"getassertion"},
			"userid":   {ToID(cfg.Username)},
			"challstr": {challstr},
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, cfg.URL+"?"+query.Encode(), nil)
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to build login request")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", errors.Unavailablef("login request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Unavailablef("failed to read login response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.Unavailablef("login server returned %d", resp.StatusCode)
	}

	assertion := strings.TrimSpace(string(body))
	if cfg.Password != "" {
		// JSON responses are prefixed with "]"
		var parsed loginResponse
		if err := json.Unmarshal([]byte(strings.TrimPrefix(assertion, "]")), &parsed); err != nil {
			return "", errors.Wrap(err, "failed to parse login response")
		}
		if !parsed.ActionSuccess {
			return "", errors.FailedPrecondition("login rejected").WithMeta("username", cfg.Username)
		}
		assertion = parsed.Assertion
	}

	if assertion == "" || strings.HasPrefix(assertion, ";") {
		return "", errors.FailedPreconditionf("login rejected: %s", strings.TrimLeft(assertion, ";")).
			WithMeta("username", cfg.Username)
	}
	return assertion, nil
}
