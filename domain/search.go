package domain

import (
	"fmt"
	"strings"
)

// Bounds of the post count accepted by a search.
const (
	MinPostCount = 100
	MaxPostCount = 2000
)

// SearchRequest is the input of one dashboard search.
type SearchRequest struct {
	Term       string
	Count      int
	Credential string
}

// Validate checks the request against the search form's bounds.
// requireCredential is false for backends that carry their own credential.
func (r SearchRequest) Validate(requireCredential bool) error {
	if strings.TrimSpace(r.Term) == "" {
		return fmt.Errorf("%w: search term is empty", ErrInvalidRequest)
	}
	if r.Count < MinPostCount || r.Count > MaxPostCount {
		return fmt.Errorf("%w: post count %d outside %d-%d", ErrInvalidRequest, r.Count, MinPostCount, MaxPostCount)
	}
	if requireCredential && strings.TrimSpace(r.Credential) == "" {
		return fmt.Errorf("%w: access token is empty", ErrInvalidRequest)
	}
	return nil
}
