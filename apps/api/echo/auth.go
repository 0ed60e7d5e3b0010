package echoapi

import (
	"context"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/school"
	"github.com/trezcool/mahudhurio/core/user"
)

var (
	// authHeader carries the raw token, no "Bearer" scheme.
	authHeader       = echo.HeaderAuthorization
	contextClaimsKey = "claims"
)

// Claims represents the authorization claims transmitted via a JWT;
// the user ID travels in the standard Subject claim.
type Claims struct {
	jwt.StandardClaims
	Role string `json:"role,omitempty"`
}

func GetUserClaims(usr user.User) *Claims {
	now := time.Now()
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:   core.Conf.AppName,
			Subject:  usr.ID.Hex(),
			IssuedAt: now.Unix(),
		},
		Role: usr.Role,
	}
	if delta := core.Conf.Server.JWTExpirationDelta; delta > 0 {
		claims.ExpiresAt = now.Add(delta).Unix()
	}
	return claims
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func GenerateToken(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString([]byte(core.Conf.SecretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// VerifyToken parses and checks a token string; malformed tokens, bad
// signatures and expired claims all fail verification.
func VerifyToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(core.Conf.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, errUnauthorized
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errUnauthorized
	}
	return claims, nil
}

// authMiddleware guards protected routes: a missing or invalid token
// short-circuits the request before any handler runs.
func authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		tokenStr := ctx.Request().Header.Get(authHeader)
		if tokenStr == "" {
			return errMissingToken
		}
		claims, err := VerifyToken(tokenStr)
		if err != nil {
			return err
		}
		ctx.Set(contextClaimsKey, claims)
		return next(ctx)
	}
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if claims, ok := ctx.Get(contextClaimsKey).(*Claims); ok {
		return *claims, nil
	}
	return Claims{}, errUnauthorized
}

func getContextActor(ctx echo.Context) (school.Actor, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return school.Actor{}, err
	}
	id, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return school.Actor{}, errUnauthorized
	}
	return school.Actor{ID: id, Role: claims.Role}, nil
}

func authenticate(ctx context.Context, email, pwd string, svc *user.Service) (*Claims, error) {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		if err == user.ErrNotFound {
			return nil, errUserNotFound
		}
		return nil, errors.Wrap(err, "finding user by email")
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return nil, errAuthenticationFailed
	}
	return GetUserClaims(usr), nil
}
