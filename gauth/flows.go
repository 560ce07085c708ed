package gauth

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Flow collects a one-time authorization code from the operator and
// exchanges it for tokens. Two implementations exist: BrowserFlow runs a
// local callback server, ManualFlow prompts on stdin.
type Flow interface {
	Authorize(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error)
}

// NewFlow returns the flow selected by the configuration value.
func NewFlow(kind string) (Flow, error) {
	switch kind {
	case "browser":
		return &BrowserFlow{Out: os.Stderr}, nil
	case "manual":
		return &ManualFlow{In: os.Stdin, Out: os.Stderr}, nil
	default:
		return nil, fmt.Errorf("unknown auth flow %q (want \"browser\" or \"manual\")", kind)
	}
}

// BrowserFlow listens on an ephemeral loopback port and waits for the
// provider to redirect the operator's browser back with the code.
type BrowserFlow struct {
	Out io.Writer
}

// Authorize runs the local-server flow. It blocks until the redirect
// arrives or ctx is cancelled.
func (f *BrowserFlow) Authorize(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	state, err := randomState()
	if err != nil {
		return nil, err
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("net.Listen: %w", err)
	}
	defer func() { _ = ln.Close() }()

	port := ln.Addr().(*net.TCPAddr).Port
	cfg := *conf
	cfg.RedirectURL = fmt.Sprintf("http://127.0.0.1:%d/callback", port)

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	srv := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/callback" {
				http.NotFound(w, r)
				return
			}
			q := r.URL.Query()
			if q.Get("error") != "" {
				sendOnce(errCh, fmt.Errorf("authorization error: %s", q.Get("error")))
				_, _ = fmt.Fprintln(w, "Authorization cancelled. You can close this page now.")
				return
			}
			if q.Get("state") != state {
				sendOnce(errCh, errors.New("state mismatch"))
				http.Error(w, "State mismatch. You can close this page now.", http.StatusBadRequest)
				return
			}
			code := q.Get("code")
			if code == "" {
				sendOnce(errCh, errors.New("missing authorization code"))
				http.Error(w, "Missing code. You can close this page now.", http.StatusBadRequest)
				return
			}
			_, _ = fmt.Fprintln(w, "Received authorization code. You can close this page now.")
			codeCh <- code
		}),
	}

	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			sendOnce(errCh, err)
		}
	}()

	authURL := cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
	_, _ = fmt.Fprintf(f.Out, "Go to the following link in your browser:\n%v\n", authURL)

	var authCode string
	select {
	case authCode = <-codeCh:
	case err := <-errCh:
		shutdown(srv)
		return nil, err
	case <-ctx.Done():
		shutdown(srv)
		return nil, ctx.Err()
	}
	shutdown(srv)

	return exchange(ctx, &cfg, authCode)
}

// ManualFlow prints the authorization URL and reads the code (or the full
// redirect URL the browser lands on) from the operator.
type ManualFlow struct {
	In  io.Reader
	Out io.Writer
}

// Authorize runs the prompt flow. It blocks on operator input with no
// timeout.
func (f *ManualFlow) Authorize(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	state, err := randomState()
	if err != nil {
		return nil, err
	}

	cfg := *conf
	// The redirect target never loads; the operator copies the code out of
	// the browser's address bar instead.
	cfg.RedirectURL = "http://localhost:1"

	authURL := cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
	_, _ = fmt.Fprintf(f.Out, "Go to the following link in your browser:\n%v\n\n", authURL)
	_, _ = fmt.Fprintln(f.Out, "After authorizing you'll land on a localhost URL that won't load.")
	_, _ = fmt.Fprintln(f.Out, "Paste that URL (or just the code parameter) here.")
	_, _ = fmt.Fprint(f.Out, "Code: ")

	line, err := bufio.NewReader(f.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading authorization code: %w", err)
	}

	code, gotState, err := extractCodeAndState(strings.TrimSpace(line))
	if err != nil {
		return nil, err
	}
	if gotState != "" && gotState != state {
		return nil, errors.New("state mismatch")
	}

	return exchange(ctx, &cfg, code)
}

// extractCodeAndState accepts either a bare authorization code or the full
// redirect URL and pulls the code and state query parameters out of it.
func extractCodeAndState(input string) (code, state string, err error) {
	if input == "" {
		return "", "", errors.New("empty authorization code")
	}
	if !strings.Contains(input, "://") {
		return input, "", nil
	}
	u, err := url.Parse(input)
	if err != nil {
		return "", "", fmt.Errorf("parsing redirect URL: %w", err)
	}
	q := u.Query()
	if q.Get("error") != "" {
		return "", "", fmt.Errorf("authorization error: %s", q.Get("error"))
	}
	code = q.Get("code")
	if code == "" {
		return "", "", errors.New("redirect URL carries no code parameter")
	}
	return code, q.Get("state"), nil
}

func exchange(ctx context.Context, conf *oauth2.Config, code string) (*oauth2.Token, error) {
	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web: %w", err)
	}
	if tok.RefreshToken == "" {
		return nil, errors.New("no refresh token received")
	}
	return tok, nil
}

func shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}

func sendOnce(ch chan<- error, err error) {
	select {
	case ch <- err:
	default:
	}
}

// randomState generates an unguessable state parameter.
func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand.Read: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
