package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/slokas/internal/entities"
	"github.com/mrlokans/slokas/internal/kvstore"
	"github.com/mrlokans/slokas/internal/lifecycle"
	"github.com/mrlokans/slokas/internal/settingsstore"
	"github.com/mrlokans/slokas/internal/slokas"
	"github.com/mrlokans/slokas/internal/tracker"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	router  *gin.Engine
	store   *kvstore.MemoryStore
	repo    *slokas.Repository
	tracker *tracker.Tracker
	signal  *lifecycle.Signal
}

func testChapters() []entities.Chapter {
	return []entities.Chapter{
		{Chapter: 1, Name: "Arjuna Vishada Yoga", Description: "Arjuna's despair", Slokas: []entities.Sloka{
			{ID: "1.1", Chapter: 1, Verse: 1, Meaning: "Dhritarashtra asks"},
			{ID: "1.2", Chapter: 1, Verse: 2, Meaning: "Sanjaya replies"},
		}},
		{Chapter: 2, Slokas: []entities.Sloka{
			{ID: "2.47", Chapter: 2, Verse: 47, Meaning: "Your right is to action alone"},
		}},
	}
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()

	original, had := os.LookupEnv(settingsstore.UsernameEnv)
	os.Unsetenv(settingsstore.UsernameEnv)
	t.Cleanup(func() {
		if had {
			os.Setenv(settingsstore.UsernameEnv, original)
		}
	})

	repo, err := slokas.New(testChapters())
	require.NoError(t, err)

	store := kvstore.NewMemoryStore()
	tr := tracker.New(store, repo,
		tracker.WithClock(func() time.Time { return time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC) }),
		tracker.WithLocation(time.UTC),
	)
	tr.Initialize(context.Background())

	signal := lifecycle.NewSignal()
	t.Cleanup(signal.Close)

	router := NewRouter(RouterConfig{
		Slokas:  repo,
		Tracker: tr,
		Profile: settingsstore.New(store, ""),
		Signal:  signal,
		Store:   store,
		Version: "test",
	})

	return &testApp{router: router, store: store, repo: repo, tracker: tr, signal: signal}
}

func (a *testApp) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}
