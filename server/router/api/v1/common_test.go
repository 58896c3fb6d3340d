package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/chainviz/chainviz/internal/profile"
	"github.com/chainviz/chainviz/store"
	"github.com/chainviz/chainviz/store/db"
)

func newTestServer(t *testing.T) (*echo.Echo, *APIV1Service) {
	ctx := context.Background()
	dataDir := t.TempDir()
	testProfile := &profile.Profile{
		Mode:               "dev",
		Driver:             "sqlite",
		Data:               dataDir,
		DSN:                filepath.Join(dataDir, "chainviz_test.db"),
		VisualizerTemplate: filepath.Join(dataDir, "chat-visualizer.html"),
	}

	dbDriver, err := db.NewDBDriver(testProfile)
	require.NoError(t, err)
	ts := store.New(dbDriver, testProfile)
	require.NoError(t, ts.Migrate(ctx))
	t.Cleanup(func() {
		_ = ts.Close()
	})

	service := NewAPIV1Service(testProfile, ts)
	e := echo.New()
	service.Register(e)
	return e, service
}

func doRequest(e *echo.Echo, method, target string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doUpload(t *testing.T, e *echo.Echo, filename string, content []byte) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/conversations/upload", body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func errorDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	var body map[string]string
	decodeJSON(t, rec, &body)
	return body["detail"]
}
