package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  *string `json:"Name" validate:"required"`
	Count *int    `json:"Count" validate:"required,gte=0"`
}

type sampleHandler struct{}

func (sampleHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/echo", func(c echo.Context) error {
		req := &sampleRequest{}
		if verr := ReadAndValidateRequest(c, req); verr != nil {
			return AppErrorResponse(c, verr)
		}
		return SuccessResponse(c, map[string]interface{}{"name": *req.Name, "count": *req.Count})
	})
	e.GET("/panic", func(c echo.Context) error {
		panic("kaboom")
	})
	e.GET("/fail", func(c echo.Context) error {
		return InternalError("downstream unavailable")
	})
}

func newTestServer(opts ...ServerOption) *Server {
	return NewServer(sampleHandler{}, opts...)
}

func serve(s *Server, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

type detailList struct {
	Detail []ValidationError `json:"detail"`
}

type detailString struct {
	Detail string `json:"detail"`
}

func TestServerValidRequest(t *testing.T) {
	rec := serve(newTestServer(), http.MethodPost, "/echo", `{"Name":"x","Count":0}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"x","count":0}`, rec.Body.String())
}

func TestServerMissingFieldsAre422(t *testing.T) {
	rec := serve(newTestServer(), http.MethodPost, "/echo", `{"Name":null}`, nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body detailList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Detail, 2)
	assert.Equal(t, "missing", body.Detail[0].Type)
	assert.Equal(t, []string{"body", "Name"}, body.Detail[0].Loc)
	assert.Equal(t, []string{"body", "Count"}, body.Detail[1].Loc)
}

func TestServerWrongTypeIs422(t *testing.T) {
	rec := serve(newTestServer(), http.MethodPost, "/echo", `{"Name":"x","Count":"many"}`, nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body detailList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Detail, 1)
	assert.Equal(t, "int_parsing", body.Detail[0].Type)
	assert.Equal(t, []string{"body", "Count"}, body.Detail[0].Loc)
}

func TestServerMalformedJSONIs422(t *testing.T) {
	rec := serve(newTestServer(), http.MethodPost, "/echo", `{"Name":`, nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "detail")
}

func TestServerTrailingDataIs422(t *testing.T) {
	rec := serve(newTestServer(), http.MethodPost, "/echo", `{"Name":"x","Count":1} garbage`, nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body detailList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Detail, 1)
	assert.Equal(t, "json_invalid", body.Detail[0].Type)

	rec = serve(newTestServer(), http.MethodPost, "/echo", `{"Name":"x","Count":1}`+"\n\t ", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServerBodyWithoutContentTypeIsJSON(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"Name":"x","Count":2}`))
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"name":"x","count":2}`, rec.Body.String())
}

func TestServerRuleViolationIs422(t *testing.T) {
	rec := serve(newTestServer(), http.MethodPost, "/echo", `{"Name":"x","Count":-1}`, nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body detailList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Detail, 1)
	assert.Equal(t, "out_of_range", body.Detail[0].Type)
}

func TestServerUnknownRouteUsesDetailEnvelope(t *testing.T) {
	rec := serve(newTestServer(), http.MethodGet, "/nope", "", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body detailString
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Not Found", body.Detail)
}

func TestServerReturnedAppError(t *testing.T) {
	rec := serve(newTestServer(), http.MethodGet, "/fail", "", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"detail":"downstream unavailable"}`, rec.Body.String())
}

func TestServerRecoversPanics(t *testing.T) {
	s := newTestServer()

	rec := serve(s, http.MethodGet, "/panic", "", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// still serving
	rec = serve(s, http.MethodPost, "/echo", `{"Name":"x","Count":1}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServerRequestIDPropagation(t *testing.T) {
	s := newTestServer()

	rec := serve(s, http.MethodGet, "/nope", "", map[string]string{echo.HeaderXRequestID: "req-1"})
	assert.Equal(t, "req-1", rec.Header().Get(echo.HeaderXRequestID))

	rec = serve(s, http.MethodGet, "/nope", "", nil)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestServerCORSPreflight(t *testing.T) {
	rec := serve(newTestServer(), http.MethodOptions, "/echo", "", map[string]string{
		echo.HeaderOrigin:                      "https://shop.example",
		echo.HeaderAccessControlRequestMethod:  http.MethodPost,
		echo.HeaderAccessControlRequestHeaders: "Content-Type, X-Custom",
	})

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://shop.example", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "true", rec.Header().Get(echo.HeaderAccessControlAllowCredentials))
	assert.Equal(t, http.MethodPost, rec.Header().Get(echo.HeaderAccessControlAllowMethods))
	assert.Equal(t, "Content-Type, X-Custom", rec.Header().Get(echo.HeaderAccessControlAllowHeaders))
}

func TestServerCORSDisabled(t *testing.T) {
	rec := serve(newTestServer(WithCORS(false)), http.MethodPost, "/echo", `{"Name":"x","Count":1}`,
		map[string]string{echo.HeaderOrigin: "https://shop.example"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestServerMetricsEndpoint(t *testing.T) {
	s := newTestServer()
	serve(s, http.MethodPost, "/echo", `{"Name":"x","Count":1}`, nil)

	rec := serve(s, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")

	rec = serve(newTestServer(WithMetricsPath("")), http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServerAddr(t *testing.T) {
	s := newTestServer(WithHost("127.0.0.1"), WithPort(9999))
	assert.Equal(t, "127.0.0.1:9999", s.Addr())
}
