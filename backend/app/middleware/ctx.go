package middleware

import (
	"context"

	jwtutil "feedgate/backend/app/jwt"
)

type ctxKey int

const (
	ClaimsKey ctxKey = iota + 1
	bodyKey
	queryKey
)

func GetClaims(ctx context.Context) *jwtutil.Claims {
	if v := ctx.Value(ClaimsKey); v != nil {
		if c, ok := v.(*jwtutil.Claims); ok {
			return c
		}
	}
	return nil
}

// PrincipalID is the id of the authenticated user or moderator, "" when the
// route is not behind Auth.
func PrincipalID(ctx context.Context) string {
	if c := GetClaims(ctx); c != nil {
		return c.PrincipalID()
	}
	return ""
}

// Body returns the request DTO decoded and validated by BindJSON[T].
func Body[T any](ctx context.Context) *T {
	v, _ := ctx.Value(bodyKey).(*T)
	return v
}

func WithClaims(ctx context.Context, c *jwtutil.Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, c)
}
