// Package azureauth obtains Azure AD access tokens with the OAuth2 client
// credentials grant. Tokens are requested per backend run and never cached.
package azureauth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"cerdito/internal/backend"
)

// DefaultLoginURL is the Azure AD identity endpoint.
const DefaultLoginURL = "https://login.microsoftonline.com"

const (
	// ManagementScope grants access to Azure Resource Manager.
	ManagementScope = "https://management.azure.com/.default"
	// DatabricksScope grants access to Azure Databricks workspaces; the GUID
	// is the well-known Azure Databricks application id.
	DatabricksScope = "2ff814a6-3304-4ab8-85cb-cd0e6f879c1d/.default"
)

// Credentials is a service principal.
type Credentials struct {
	TenantID     string
	ClientID     string
	ClientSecret string
}

// Client requests tokens for one service principal.
type Client struct {
	creds      Credentials
	loginURL   string
	httpClient *http.Client
}

// NewClient creates a token client. An empty loginURL selects DefaultLoginURL
// and a nil httpClient selects http.DefaultClient.
func NewClient(creds Credentials, loginURL string, httpClient *http.Client) *Client {
	if loginURL == "" {
		loginURL = DefaultLoginURL
	}
	return &Client{
		creds:      creds,
		loginURL:   strings.TrimSuffix(loginURL, "/"),
		httpClient: httpClient,
	}
}

// TokenURL is the v2 token endpoint of the configured tenant.
func (c *Client) TokenURL() string {
	return fmt.Sprintf("%s/%s/oauth2/v2.0/token", c.loginURL, c.creds.TenantID)
}

// Token performs one client credentials exchange for scope. Every failure,
// whether a non-2xx answer or a body without access_token, wraps backend.ErrAuth.
func (c *Client) Token(ctx context.Context, scope string) (string, error) {
	cfg := clientcredentials.Config{
		ClientID:     c.creds.ClientID,
		ClientSecret: c.creds.ClientSecret,
		TokenURL:     c.TokenURL(),
		Scopes:       []string{scope},
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	if c.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	}

	token, err := cfg.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", backend.ErrAuth, err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", backend.ErrAuth)
	}
	return token.AccessToken, nil
}
