package commands

import (
	"fmt"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/paperbay/paperbay/cmd/pbctl/cmdutil"
	"github.com/paperbay/paperbay/internal/cli/credentials"
	"github.com/paperbay/paperbay/internal/cli/prompt"
	"github.com/paperbay/paperbay/pkg/apiclient"
	"github.com/spf13/cobra"
)

var (
	loginServer string
	loginToken  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store credentials for a paperbay server",
	Long: `Store an access token for a paperbay server.

paperbay authenticates with bearer tokens issued by your identity
provider. Obtain a token from your provider and pass it here; pbctl
stores it and attaches it to every request.

On first login, you must specify the server URL. Subsequent logins will
use the stored server URL unless overridden.

Examples:
  # First login to a server
  pbctl login --server http://localhost:8080 --token "$TOKEN"

  # Re-login to stored server (prompts for the token)
  pbctl login`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginServer, "server", "", "Server URL (required on first login)")
	loginCmd.Flags().StringVar(&loginToken, "token", "", "Access token issued by your identity provider")
}

func runLogin(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize credential store: %w", err)
	}

	// Determine server URL
	serverURLStr := loginServer
	if serverURLStr == "" {
		ctx, err := store.GetCurrentContext()
		if err != nil || ctx == nil || ctx.ServerURL == "" {
			return fmt.Errorf("no server URL specified and no saved context found\n\n" +
				"Specify server URL:\n" +
				"  pbctl login --server http://localhost:8080")
		}
		serverURLStr = ctx.ServerURL
	}

	// Validate server URL
	parsedURL, err := url.Parse(serverURLStr)
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}
	if parsedURL.Scheme == "" {
		parsedURL.Scheme = "http"
		serverURLStr = parsedURL.String()
	}

	// Get token (prompt if not provided)
	token := loginToken
	if token == "" {
		token, err = prompt.Token("Access token")
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	// Pull the username and expiry out of the token without verifying it;
	// the server is the one that checks the signature.
	username, expiresAt := inspectToken(token)

	// Verify the token actually works before saving it
	client := apiclient.New(serverURLStr).WithToken(token)
	docs, err := client.ListDocuments()
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	contextName := store.GetCurrentContextName()
	if contextName == "" {
		contextName = "default"
	}

	ctx := &credentials.Context{
		ServerURL:   serverURLStr,
		Username:    username,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}
	if err := store.SetContext(contextName, ctx); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	if err := store.UseContext(contextName); err != nil {
		return fmt.Errorf("failed to set current context: %w", err)
	}

	if username != "" {
		fmt.Printf("Logged in successfully as %s\n", username)
	} else {
		fmt.Println("Logged in successfully")
	}
	fmt.Printf("Context: %s\n", contextName)
	fmt.Printf("Documents: %d\n", len(docs))
	fmt.Printf("Credentials saved to: %s\n", store.ConfigPath())

	return nil
}

// inspectToken extracts the username and expiry claims from a JWT without
// verifying its signature. Returns zero values for opaque tokens.
func inspectToken(token string) (string, time.Time) {
	var claims struct {
		jwt.RegisteredClaims
		Username string `json:"username"`
	}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return "", time.Time{}
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return claims.Username, expiresAt
}
