package utils

import (
	"errors"
	"neonatal-triage-service/internal/pkg/constvars"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrSubjectMissing = errors.New("subject claim missing")

// GenerateSubjectJWT signs an HS256 token carrying the subject id in the sub claim.
func GenerateSubjectJWT(subjectID, secret string, expiresIn time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		constvars.JWTClaimSubject:    subjectID,
		constvars.JWTClaimIssuedAt:   now.Unix(),
		constvars.JWTClaimExpiration: now.Add(expiresIn).Unix(),
	})

	return token.SignedString([]byte(secret))
}

func ParseSubjectJWT(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New(constvars.ErrDevAuthSigningMethod)
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New(constvars.ErrDevAuthTokenInvalidOrExpired)
	}

	subjectID, _ := claims[constvars.JWTClaimSubject].(string)
	if strings.TrimSpace(subjectID) == "" {
		return "", ErrSubjectMissing
	}
	return subjectID, nil
}
