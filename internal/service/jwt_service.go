package service

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTService valida los access tokens que emite el backend de autenticación.
// El secreto HS256 es compartido con ese backend; este servicio no emite tokens de sesión.
type JWTService struct {
	secret []byte
	issuer string
	leeway time.Duration
}

// Claims sigue el formato de Flask-JWT-Extended: la identidad va en "sub"
// y puede ser numérica o string.
type Claims struct {
	Identity  any    `json:"sub"`
	TokenType string `json:"type"`
	Fresh     bool   `json:"fresh,omitempty"`
	jwt.RegisteredClaims
}

var (
	ErrJWTInvalid = errors.New("jwt invalid")
	ErrJWTExpired = errors.New("jwt expired")
)

// NewJWTService crea el validador. issuer vacío desactiva el chequeo de emisor.
func NewJWTService(secret, issuer string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		leeway: 30 * time.Second,
	}
}

// UserID normaliza la identidad del token a string.
func (c Claims) UserID() string {
	switch v := c.Identity.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v != float64(int64(v)) {
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
		return strconv.FormatInt(int64(v), 10)
	default:
		return ""
	}
}

func (s *JWTService) ParseAccessToken(accessToken string) (Claims, error) {
	if len(s.secret) == 0 {
		return Claims{}, ErrJWTInvalid
	}
	if strings.TrimSpace(accessToken) == "" {
		return Claims{}, ErrJWTInvalid
	}
	claims, err := s.parseToken(accessToken)
	if err != nil {
		return Claims{}, err
	}
	if claims.TokenType != "" && claims.TokenType != "access" {
		return Claims{}, ErrJWTInvalid
	}
	if !s.isValidClaims(claims) {
		return Claims{}, ErrJWTInvalid
	}
	return claims, nil
}

// SignAccessToken firma un token con el mismo formato que el backend. Solo lo usan los tests.
func (s *JWTService) SignAccessToken(userID string, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrJWTInvalid
	}
	now := time.Now().UTC()
	claims := Claims{
		Identity:  userID,
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *JWTService) parseToken(tokenString string) (Claims, error) {
	var claims Claims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(s.leeway),
	)
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrJWTExpired
		}
		return Claims{}, ErrJWTInvalid
	}
	return claims, nil
}

func (s *JWTService) isValidClaims(claims Claims) bool {
	if claims.UserID() == "" {
		return false
	}
	if s.issuer == "" {
		return true
	}
	return strings.TrimSpace(claims.Issuer) == s.issuer
}
