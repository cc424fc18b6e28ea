package middleware

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/bank-insights/pkg/configpkg"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	var ctxLogger *zerolog.Logger

	engine := gin.New()
	engine.Use(RequestLogger(logger))
	engine.GET("/ping", func(c *gin.Context) {
		ctxLogger = zerolog.Ctx(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	testCases := []struct {
		name      string
		requestID string
	}{
		{name: "GeneratedID"},
		{name: "ForwardedID", requestID: "abc-123"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf.Reset()

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tc.requestID != "" {
				req.Header.Set(RequestIDHeader, tc.requestID)
			}

			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			require.Equal(t, http.StatusNoContent, rec.Code)

			gotID := rec.Header().Get(RequestIDHeader)
			require.NotEmpty(t, gotID)
			if tc.requestID != "" {
				require.Equal(t, tc.requestID, gotID)
			}

			require.NotNil(t, ctxLogger)
			require.Contains(t, buf.String(), `"request_id":"`+gotID+`"`)
			require.Contains(t, buf.String(), `"status_code":204`)
		})
	}
}

func TestRequestLoggerRecoversPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer

	engine := gin.New()
	engine.Use(RequestLogger(zerolog.New(&buf)))
	engine.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, buf.String(), "panic message: boom")
}

func TestGetLoggerWritesToStderr(t *testing.T) {
	testCases := []struct {
		name string
		env  string
	}{
		{name: "Production", env: "production"},
		{name: "Development", env: "development"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stdoutR, stdoutW, err := os.Pipe()
			require.NoError(t, err)
			stderrR, stderrW, err := os.Pipe()
			require.NoError(t, err)

			stdout, stderr := os.Stdout, os.Stderr
			os.Stdout, os.Stderr = stdoutW, stderrW

			logger := GetLogger(configpkg.Config{Environement: tc.env})
			logger.Info().Msg("report served")

			os.Stdout, os.Stderr = stdout, stderr
			require.NoError(t, stdoutW.Close())
			require.NoError(t, stderrW.Close())

			gotStdout, err := io.ReadAll(stdoutR)
			require.NoError(t, err)
			gotStderr, err := io.ReadAll(stderrR)
			require.NoError(t, err)

			require.Empty(t, gotStdout)
			require.Contains(t, string(gotStderr), "report served")
		})
	}
}
