package http

import (
	"net/http"
	"testing"

	"github.com/aescanero/catalogo/internal/database"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestCORS_SimpleRequests(t *testing.T) {
	s := newTestServer(t, &Config{Querier: &stubQuerier{results: map[string]database.ResultSet{}}})

	for _, path := range []string{"/", "/generos", "/plataformas", "/juegos"} {
		t.Run(path, func(t *testing.T) {
			w := doRequest(s, http.MethodGet, path, map[string]string{"Origin": "http://localhost:5173"}, "")

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
			assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	s := newTestServer(t, &Config{Querier: &stubQuerier{}})

	w := doRequest(s, http.MethodOptions, "/juegos", map[string]string{
		"Origin":                         "https://catalogo.example.com",
		"Access-Control-Request-Method":  "GET",
		"Access-Control-Request-Headers": "Content-Type, X-Custom",
	}, "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, corsAllowMethods, w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, X-Custom", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Empty(t, w.Body.String())
}

func TestJSONBody_MalformedIsRejected(t *testing.T) {
	s := newTestServer(t, &Config{Querier: &stubQuerier{}})

	w := doRequest(s, http.MethodGet, "/generos", map[string]string{"Content-Type": "application/json"}, `{"nombre":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
}

func TestJSONBody_IsIgnoredByRoutes(t *testing.T) {
	s := newTestServer(t, &Config{Querier: &stubQuerier{}})

	w := doRequest(s, http.MethodGet, "/generos", map[string]string{"Content-Type": "application/json"}, `{"filtro":"Accion"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `[]`, w.Body.String())
}

func TestJSONBody_StoredOnContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(jsonBodyMiddleware())

	var got interface{}
	router.POST("/echo", func(c *gin.Context) {
		got, _ = c.Get(JSONBodyKey)
		c.Status(http.StatusOK)
	})

	s := &Server{router: router, logger: zaptest.NewLogger(t)}
	w := doRequest(s, http.MethodPost, "/echo", map[string]string{"Content-Type": "application/json"}, `{"id":1}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"id": float64(1)}, got)
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t, &Config{Querier: &stubQuerier{}})

	w := doRequest(s, http.MethodGet, "/", nil, "")
	assert.Len(t, w.Header().Get(requestIDHeader), 36)

	w = doRequest(s, http.MethodGet, "/", map[string]string{requestIDHeader: "abc-123"}, "")
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}
