package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/akazarov/authgate/internal/common"
)

// Claims carries the standard registered claims plus the user id the token
// was issued for.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// newAccessToken mints a signed HS256 token for userID. The expiry claim is
// written for completeness; no code path reads it back — tokens are proof of
// a prior successful auth call, not independently verifiable credentials.
func newAccessToken(userID string, secretKey []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		UserID: userID,
	})

	return token.SignedString(secretKey)
}

// newRefreshToken mints an opaque random token, unique per call.
func newRefreshToken() (string, error) {
	return common.RandHexString(32)
}
