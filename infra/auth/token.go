package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/CrestNiraj12/tweetsentiment/domain"
)

// TokenProvider supplies an access token for the fetch backends.
type TokenProvider interface {
	AccessToken() (string, error)
}

// FileTokenProvider reads a bearer token from a file on disk.
type FileTokenProvider struct {
	path string
}

// NewFileTokenProvider creates a TokenProvider that reads from the given file path.
func NewFileTokenProvider(path string) *FileTokenProvider {
	return &FileTokenProvider{path: path}
}

// AccessToken reads and returns the token, trimming whitespace.
func (f *FileTokenProvider) AccessToken() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("reading token from %s: %w", f.path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty", f.path)
	}

	return token, nil
}

// EnvTokenProvider reads the token from an environment variable.
type EnvTokenProvider struct {
	name string
}

// NewEnvTokenProvider creates a TokenProvider backed by the named variable.
func NewEnvTokenProvider(name string) *EnvTokenProvider {
	return &EnvTokenProvider{name: name}
}

func (e *EnvTokenProvider) AccessToken() (string, error) {
	token := strings.TrimSpace(os.Getenv(e.name))
	if token == "" {
		return "", fmt.Errorf("%s is not set", e.name)
	}
	return token, nil
}

// StaticToken is a token typed into the search form.
type StaticToken string

func (s StaticToken) AccessToken() (string, error) {
	token := strings.TrimSpace(string(s))
	if token == "" {
		return "", errors.New("no token entered")
	}
	return token, nil
}

// Chain tries each provider in order and returns the first token found.
type Chain []TokenProvider

func (c Chain) AccessToken() (string, error) {
	var errs []error
	for _, p := range c {
		if p == nil {
			continue
		}
		token, err := p.AccessToken()
		if err == nil {
			return token, nil
		}
		errs = append(errs, err)
	}
	return "", fmt.Errorf("%w: no access token available: %w", domain.ErrUnauthorized, errors.Join(errs...))
}

// ForRequest prefers the credential entered with a search and falls back
// to the configured providers.
func ForRequest(credential string, fallback ...TokenProvider) TokenProvider {
	return append(Chain{StaticToken(credential)}, fallback...)
}
