package middleware

import (
	"encoding/json"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskloop/backend/api/transport"
	"github.com/taskloop/backend/identity"
)

const subjectKey = "auth_subject"

// BearerAuth verifies the Authorization header against the identity
// provider. A missing or malformed header answers 401, a token the provider
// rejects answers 403. On success the verified subject is attached to the
// request for downstream handlers.
func BearerAuth(verifier identity.TokenVerifier, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			token, ok := bearerToken(ctx)
			if !ok {
				respond(ctx, fasthttp.StatusUnauthorized, "Missing or malformed authorization header")
				return
			}

			subject, err := verifier.VerifyToken(ctx, token)
			if err != nil {
				logger.Warn("token verification failed", zap.Error(err))
				respond(ctx, fasthttp.StatusForbidden, "Invalid or expired token")
				return
			}

			ctx.SetUserValue(subjectKey, subject)
			next(ctx)
		}
	}
}

// Subject returns the verified account id attached by BearerAuth.
func Subject(ctx *fasthttp.RequestCtx) string {
	subject, _ := ctx.UserValue(subjectKey).(string)
	return subject
}

func bearerToken(ctx *fasthttp.RequestCtx) (string, bool) {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return "", false
	}
	return token, true
}

func respond(ctx *fasthttp.RequestCtx, status int, message string) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(transport.NewError(message, nil))
	ctx.SetBody(body)
}
