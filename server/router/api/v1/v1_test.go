package v1

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/parkjy76/haruplan/internal/profile"
	"github.com/parkjy76/haruplan/server/assistant"
	"github.com/parkjy76/haruplan/store"
	"github.com/parkjy76/haruplan/store/db/sqlite"
)

func newTestAPI(t *testing.T) (*echo.Echo, *store.Store) {
	t.Helper()

	p := &profile.Profile{
		Mode:     "dev",
		Addr:     "127.0.0.1",
		Port:     8230,
		Driver:   "sqlite",
		DSN:      filepath.Join(t.TempDir(), "haruplan.db"),
		Location: time.UTC,
	}
	driver, err := sqlite.NewDB(p)
	require.NoError(t, err)
	require.NoError(t, driver.Migrate(context.Background()))
	t.Cleanup(func() { _ = driver.Close() })

	st := store.New(driver, p)
	svc := assistant.NewService(st, time.UTC, nil)

	e := echo.New()
	NewAPIV1Service(p, st, svc, nil).Register(e)
	return e, st
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAskEndpoint(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/ask", `{"text": "20일 9시 면접"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	var resp askResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "schedule", resp.Intent)
	require.Len(t, resp.Events, 1)
	require.Equal(t, "면접", resp.Events[0].Title)
}

func TestAskEndpointRejectsEmptyText(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/ask", `{"text": ""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListAndDeleteEvents(t *testing.T) {
	e, st := newTestAPI(t)
	ctx := context.Background()

	created, err := st.CreateEvent(ctx, &store.Event{
		Title:   "면접",
		EventTs: time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC).Unix(),
	})
	require.NoError(t, err)

	rec := doJSON(e, http.MethodGet, "/api/v1/events", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var events []eventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 1)
	require.Equal(t, "2026-03-20 09:00", events[0].Time)

	rec = doJSON(e, http.MethodDelete, fmt.Sprintf("/api/v1/events/%d", created.ID), "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(e, http.MethodDelete, fmt.Sprintf("/api/v1/events/%d", created.ID), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMemoryEndpoints(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/ask", `{"text": "토익 공부 10일 하루 3시간"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/v1/memory", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "토익")

	rec = doJSON(e, http.MethodPost, "/api/v1/memory/reset", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/v1/memory", "")
	require.Contains(t, rec.Body.String(), "study_goal=-")

	rec = doJSON(e, http.MethodGet, "/api/v1/events", "")
	var events []eventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Empty(t, events)
}

func TestFeedEndpoint(t *testing.T) {
	e, st := newTestAPI(t)

	_, err := st.CreateEvent(context.Background(), &store.Event{
		Title:   "면접",
		EventTs: time.Now().Add(24 * time.Hour).Unix(),
	})
	require.NoError(t, err)

	rec := doJSON(e, http.MethodGet, "/api/v1/feed", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get(echo.HeaderContentType), "rss")
	require.Contains(t, rec.Body.String(), "면접")
}
