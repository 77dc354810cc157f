package auth

import (
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/onokeee/mindmap/errors"
)

// EncodeDecoder turns session ids into signed tokens and back. The token is
// only a reference: the session itself lives in the registry, so ending a
// session kills its tokens even before they expire.
type EncodeDecoder struct {
	key []byte
}

type Claims struct {
	SessionID string `json:"session_id"`
	jwt.StandardClaims
}

func NewEncodeDecoder(key string) *EncodeDecoder {
	return &EncodeDecoder{
		key: []byte(key),
	}
}

func (e *EncodeDecoder) Encode(sessionID string, expiresAt time.Time) (string, error) {
	claims := Claims{
		SessionID: sessionID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expiresAt.Unix(),
			Issuer:    "mindmap",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(e.key)
}

func (e *EncodeDecoder) Decode(bearer string) (string, error) {
	claims := Claims{}

	token, err := jwt.ParseWithClaims(bearer, &claims, func(token *jwt.Token) (interface{}, error) {
		return e.key, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims.SessionID, nil
	}

	return "", errors.New("could not get claims")
}
