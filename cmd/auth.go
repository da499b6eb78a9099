package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jii-iin/weathermix/internal/server"
	"github.com/jii-iin/weathermix/internal/services"
	"github.com/jii-iin/weathermix/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// AuthLogin performs the OAuth2 authorization-code flow for Spotify.
//
// Starts a local HTTP server, opens browser for user authorization, exchanges
// the auth code for tokens, and stores them in the token database.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify client_id and client_secret must be set", shared.ErrMissingCredentials)
	}

	token, err := r.doOAuth(ctx)
	if err != nil {
		return err
	}

	db, repo, err := r.openTokenStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repo.SaveToken(services.SpotifyTokenKey, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	r.spotify.OAuthenticate(ctx, token, repo)

	r.writePlainln("✓ Authorization successful")
	r.writePlain("✓ Session saved to %s\n\n", r.config.Database.Path)
	r.writePlain("You can now use: weathermix run --publish\n")

	return nil
}

// AuthStatus shows whether a stored session exists and is usable.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify client_id and client_secret must be set", shared.ErrMissingCredentials)
	}

	db, repo, err := r.openTokenStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if !r.restoreSession(ctx, repo) {
		return r.writePlain("Authentication: ✗ Not authenticated\n")
	}

	profile, err := r.spotify.UserProfile(ctx)
	if err != nil {
		r.logger.Debug("profile lookup failed", "error", err)
		r.writePlain("Authentication: ⚠ Session stored but unusable\n")
		r.writePlain("Run 'weathermix auth login' to reauthorize\n")
		return nil
	}

	r.writePlain("Authentication: ✓ Authenticated\n")
	r.writePlain("Account: %s (%s)\n", profile.DisplayName, profile.ID)

	return nil
}

// AuthLogout removes the stored session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	db, repo, err := r.openTokenStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repo.DeleteToken(services.SpotifyTokenKey); err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}

	return r.writePlain("✓ Session removed\n")
}

// doOAuth runs the local-callback authorization dance and returns the token.
func (r *Runner) doOAuth(ctx context.Context) (*oauth2.Token, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	authURL := r.spotify.GetAuthURL(state)
	oauthHandler := server.NewOAuthHandler(r.spotify.GetOAuthConfig(), state)

	serverAddr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: oauthHandler.Mux(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth server at %v", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.OAuthResult

	select {
	case result = <-oauthHandler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, result.Error())
	}

	if result.Token == nil {
		return nil, fmt.Errorf("%w: no token received", shared.ErrAuthFailed)
	}

	return result.Token, nil
}
