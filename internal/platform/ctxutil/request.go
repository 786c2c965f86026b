package ctxutil

import (
	"context"

	"github.com/yungbote/blog-backend/internal/domain/user"
)

type requestDataKey struct{}

// RequestData is what the auth middleware resolved for the current request.
// Identity is nil for anonymous requests.
type RequestData struct {
	TokenString string
	Identity    *user.Identity
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(Default(ctx), requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if ctx == nil {
		return nil
	}
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}

// Caller returns the resolved identity of the request, nil when anonymous.
func Caller(ctx context.Context) *user.Identity {
	rd := GetRequestData(ctx)
	if rd == nil || rd.Identity.IsAnonymous() {
		return nil
	}
	return rd.Identity
}
