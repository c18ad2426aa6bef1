package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingRequest struct {
	Symbol string `json:"symbol" validate:"required,max=8"`
	N      int    `json:"n" default:"20" validate:"gte=1"`
}

type pingHandler struct{}

func (pingHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/ping", func(c echo.Context) error {
		req := &pingRequest{}
		if verr := ReadAndValidateRequest(c, req); verr != nil {
			return BadRequestResponse(c, verr)
		}
		return SuccessResponse(c, req)
	})
	e.GET("/missing", func(c echo.Context) error {
		return AppErrorResponse(c, NotFoundErrorf("no %s", "thing"))
	})
	e.GET("/boom", func(c echo.Context) error {
		return AppErrorResponse(c, errors.New("plain"))
	})
	e.GET("/panic", func(c echo.Context) error {
		panic("kaboom")
	})
}

func serve(s *Server, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

func TestReadAndValidateRequest(t *testing.T) {
	s := NewServer(pingHandler{}, nil, WithMetrics(false, ""))

	rec := serve(s, http.MethodPost, "/ping", `{"symbol":"AAPL"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	var ok struct {
		Data pingRequest `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ok))
	assert.Equal(t, 20, ok.Data.N)

	rec = serve(s, http.MethodPost, "/ping", `{"symbol":"TOOLONGSYMBOL"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var bad struct {
		Data []ValidationError `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bad))
	require.Len(t, bad.Data, 1)
	assert.Equal(t, "ERR_MAX", bad.Data[0].Code)
	assert.Equal(t, "symbol", bad.Data[0].Field)
	assert.Equal(t, "8", bad.Data[0].Params["max"])

	rec = serve(s, http.MethodPost, "/ping", `{"symbol":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAppErrorResponse(t *testing.T) {
	s := NewServer(pingHandler{}, nil, WithMetrics(false, ""))

	rec := serve(s, http.MethodGet, "/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_NOT_FOUND")
	assert.Contains(t, rec.Body.String(), "no thing")

	rec = serve(s, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "plain")
}

func TestRecoverMiddleware(t *testing.T) {
	s := NewServer(pingHandler{}, nil, WithMetrics(false, ""))
	rec := serve(s, http.MethodGet, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := NewServer(pingHandler{}, nil, WithMetrics(true, "/metrics"))
	serve(s, http.MethodPost, "/ping", `{"symbol":"MSFT"}`)

	rec := serve(s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestAppErrorUnwrap(t *testing.T) {
	base := errors.New("disk")
	err := ServiceUnavailableError("store down").WithError(base)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "store down: disk", err.Error())
	assert.Equal(t, http.StatusServiceUnavailable, err.Status)
}

func TestAsAppErrorDeadline(t *testing.T) {
	appErr := AsAppError(fmt.Errorf("score: %w", context.DeadlineExceeded))
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusGatewayTimeout, appErr.Status)
	assert.Equal(t, CodeTimeout, appErr.Code)

	assert.Nil(t, AsAppError(errors.New("plain")))
	nf := NotFoundErrorf("gone")
	assert.Same(t, nf, AsAppError(fmt.Errorf("wrap: %w", nf)))
}
