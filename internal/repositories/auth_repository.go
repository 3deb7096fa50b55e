package repositories

// AuthRepository defines the interface for auth-token data access. Tokens are
// keyed by their signature segment only; presence of a row is the logged-in
// state.
type AuthRepository interface {
	CreateToken(userID uint, signature string) error
	DeleteToken(signature string) error
	TokenExists(signature string) (bool, error)
}
