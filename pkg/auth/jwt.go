package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Erros específicos
var (
	ErrInvalidToken  = errors.New("token inválido")
	ErrExpiredToken  = errors.New("token expirado")
	ErrInvalidClaims = errors.New("claims inválidas")
	ErrMissingJWTKey = errors.New("chave secreta JWT não configurada")
	ErrMissingOwner  = errors.New("owner não informado")
)

// JWTClaims representa as claims do token JWT. O Subject é o owner dos registros.
type JWTClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// OwnerID retorna o owner identificado pelo token
func (c *JWTClaims) OwnerID() string {
	return c.Subject
}

// JWTService implementa serviços relacionados a tokens JWT
type JWTService struct {
	secretKey  []byte
	expiration time.Duration
	issuer     string
	now        func() time.Time
}

// NewJWTService cria uma nova instância de JWTService
func NewJWTService(secretKey string, expiration time.Duration, issuer string) (*JWTService, error) {
	if secretKey == "" {
		return nil, ErrMissingJWTKey
	}

	// Duração padrão de 24 horas se não for configurado
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}

	return &JWTService{
		secretKey:  []byte(secretKey),
		expiration: expiration,
		issuer:     issuer,
		now:        time.Now,
	}, nil
}

// GenerateToken gera um token JWT para o owner
func (s *JWTService) GenerateToken(ownerID, email, name string) (string, error) {
	if strings.TrimSpace(ownerID) == "" {
		return "", ErrMissingOwner
	}
	now := s.now()

	// Criar as claims
	claims := JWTClaims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Subject:   ownerID,
		},
	}

	return s.sign(claims)
}

// ValidateToken valida um token JWT e retorna as claims se for válido
func (s *JWTService) ValidateToken(tokenString string) (*JWTClaims, error) {
	claims, err := s.parse(tokenString, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

// RefreshToken renova um token JWT. Tokens expirados com assinatura válida são aceitos.
func (s *JWTService) RefreshToken(tokenString string) (string, error) {
	claims, err := s.ValidateToken(tokenString)
	if errors.Is(err, ErrExpiredToken) {
		claims, err = s.parse(tokenString, jwt.WithoutClaimsValidation())
	}
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", ErrInvalidClaims
	}

	// Definir o novo tempo de expiração
	now := s.now()
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.expiration))
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.NotBefore = jwt.NewNumericDate(now)

	return s.sign(*claims)
}

func (s *JWTService) sign(claims JWTClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *JWTService) parse(tokenString string, opts ...jwt.ParserOption) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verificar o método de assinatura
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	}, opts...)

	if err != nil {
		// Verificar se o erro é de token expirado
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	// Extrair as claims
	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}
