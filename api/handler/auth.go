package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskloop/backend/api/transport"
	"github.com/taskloop/backend/pkg/httpcontext"
	authUC "github.com/taskloop/backend/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc *authUC.UseCase
}

func NewAuthHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Issue a token for a registered email
// @Tags auth
// @Router /auth [post]
func (h *AuthHandler) Authenticate(ctx *fasthttp.RequestCtx) {
	var req transport.AuthRequest
	if !h.decodeBody(ctx, &req, "Valid email is required") {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	token, err := h.uc.Authenticate(stdCtx, req.Email)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.TokenResponse{Token: token})
}

// @Summary Register an email and issue its first token
// @Tags auth
// @Router /auth/register [post]
func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	var req transport.AuthRequest
	if !h.decodeBody(ctx, &req, "Valid email is required") {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	account, err := h.uc.Register(stdCtx, req.Email)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	token, err := h.uc.GenerateToken(stdCtx, account.Email)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, transport.TokenResponse{Token: token})
}
