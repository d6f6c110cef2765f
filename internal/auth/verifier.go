package auth

// Verifier resolves a raw bearer credential to verified claims. The
// marketplace has exactly one capability here no matter how many mechanisms
// exist: TokenManager is the local-decode implementation; a remote
// identity-provider check would be a second implementation of the same
// interface, not a second code path in the middleware.
type Verifier interface {
	Verify(raw string) (*Claims, error)
}

var _ Verifier = (*TokenManager)(nil)
