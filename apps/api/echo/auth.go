package echoapi

import (
	"context"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/campusdesk/portal/core"
	"github.com/campusdesk/portal/core/student"
)

var (
	// appJWTConfig is the default JWT auth middleware config.
	appJWTConfig = middleware.JWTConfig{
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    "studentToken",
		Claims:        new(Claims),
	}

	appName            string
	jwtExpirationDelta time.Duration
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	StudentID int    `json:"id"`
	Email     string `json:"email"`
}

// ConfigureAuth primes the token signing parameters from conf and returns
// the JWT gate for protected routes.
func ConfigureAuth(conf *core.Config) echo.MiddlewareFunc {
	appName = conf.AppName
	jwtExpirationDelta = conf.Server.JWTExpirationDelta
	appJWTConfig.SigningKey = []byte(conf.SecretKey)
	return middleware.JWTWithConfig(appJWTConfig)
}

func GetStudentClaims(std student.Student) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    appName,
			ExpiresAt: now.Add(jwtExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		StudentID: std.ID,
		Email:     std.Email,
	}
}

// GenerateToken generates a signed JWT token string representing the student Claims.
func GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(appJWTConfig.SigningKey.([]byte))
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func authenticate(ctx context.Context, email, pwd string, svc *student.Service) (*Claims, error) {
	std, err := svc.GetByEmail(ctx, email)
	if err != nil {
		if err == student.ErrNotFound {
			return nil, errAuthenticationFailed
		}
		return nil, errors.Wrap(err, "finding student by email")
	}
	if err = std.CheckPassword(pwd); err != nil {
		return nil, errAuthenticationFailed
	}
	std, err = svc.SetLastLogin(ctx, std)
	if err != nil {
		return nil, errors.Wrap(err, "setting lastLogin")
	}
	return GetStudentClaims(std), nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(appJWTConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}
