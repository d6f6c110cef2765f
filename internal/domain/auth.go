package domain

// Identity carries the facts an identity provider asserts about a verified
// subject. It contains no authorization decisions.
type Identity struct {
	Email       string
	FullName    string
	PhoneNumber string
}

// TokenKind separates access tokens from refresh tokens.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)
