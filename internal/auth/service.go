package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenTTL = 15 * time.Minute

// Service issues device tokens. Devices authenticate with a shared key whose
// bcrypt hash comes from config; there is no user table.
type Service struct {
	secret        []byte
	deviceKeyHash []byte
}

type Claims struct {
	DeviceID string `json:"device_id"`
	jwt.RegisteredClaims
}

func NewService(secret, deviceKeyHash string) *Service {
	return &Service{
		secret:        []byte(secret),
		deviceKeyHash: []byte(deviceKeyHash),
	}
}

func (s *Service) Login(req LoginRequest) (TokenResponse, error) {
	if req.DeviceID == "" || req.DeviceKey == "" {
		return TokenResponse{}, errors.New("device_id and device_key required")
	}
	if len(s.deviceKeyHash) == 0 {
		return TokenResponse{}, errors.New("device login not configured")
	}
	if err := bcrypt.CompareHashAndPassword(s.deviceKeyHash, []byte(req.DeviceKey)); err != nil {
		return TokenResponse{}, errors.New("invalid device key")
	}

	access, err := s.signToken(req.DeviceID, accessTokenTTL)
	if err != nil {
		return TokenResponse{}, err
	}
	return TokenResponse{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int64(accessTokenTTL.Seconds()),
	}, nil
}

func (s *Service) ValidateAccessToken(token string) (string, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return "", err
	}
	return claims.DeviceID, nil
}

func (s *Service) signToken(deviceID string, ttl time.Duration) (string, error) {
	claims := Claims{
		DeviceID: deviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) parseToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("token invalid")
	}
	return claims, nil
}
