package api_test

import (
	"context"
	"errors"

	"github.com/jpereira/homecheck/api"
)

var errDBDown = errors.New("db down")

// authCtx simulates what the JWT middleware does for an authenticated user.
func authCtx(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, api.CtxUserID, userID)
}
