package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskloop/backend/api/transport"
	"github.com/taskloop/backend/domain"
	"github.com/taskloop/backend/pkg/httpcontext"
)

// Path identifiers are restricted before anything reaches the store.
var idPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type baseHandler struct {
	adapter  *httpcontext.Adapter
	logger   *zap.Logger
	validate *validator.Validate
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{
		adapter:  adapter,
		logger:   logger,
		validate: validator.New(),
	}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.SetStatusCode(status)
	if payload == nil {
		return
	}
	ctx.Response.Header.SetContentType("application/json")
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		status := statusForCode(dErr.Code)
		var details interface{}
		if dErr.Err != nil {
			details = dErr.Err.Error()
		}
		h.respondJSON(ctx, status, transport.NewError(dErr.Message, details))
		return
	}

	// Store or provider failure: log the cause, keep the body generic.
	h.logger.Error("request failed", zap.Error(err))
	h.respondJSON(ctx, http.StatusInternalServerError, transport.NewError("internal error", nil))
}

// decodeBody parses and validates a request body, answering 400 with the
// given message on any schema violation. No service is invoked afterwards.
func (h baseHandler) decodeBody(ctx *fasthttp.RequestCtx, dst interface{}, message string) bool {
	if err := json.Unmarshal(ctx.PostBody(), dst); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(message, err.Error()))
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(message, validationDetails(err)))
		return false
	}
	return true
}

// pathID extracts and validates the id path parameter, answering 400 with
// the given message when it is absent or malformed.
func (h baseHandler) pathID(ctx *fasthttp.RequestCtx, message string) (string, bool) {
	id, _ := ctx.UserValue("id").(string)
	if !idPattern.MatchString(id) {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(message, fmt.Sprintf("id must match %s", idPattern)))
		return "", false
	}
	return id, true
}

func statusForCode(code domain.ErrorCode) int {
	switch code {
	case domain.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case domain.ErrCodeConflict:
		return http.StatusConflict
	case domain.ErrCodeNotFound:
		return http.StatusNotFound
	case domain.ErrCodeInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func validationDetails(err error) interface{} {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err.Error()
	}
	details := make([]string, 0, len(vErrs))
	for _, fe := range vErrs {
		details = append(details, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return details
}
