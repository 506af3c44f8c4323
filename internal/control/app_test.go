package control

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vietddude/employees/internal/infra/remote"
	"github.com/vietddude/employees/internal/infra/retry"
)

const janeID = "3fa85f64-5717-4562-b3fc-2c963f66afa6"

// fakeRemote serves the remote employee API, answering 429 to the first
// throttled requests.
func fakeRemote(t *testing.T, throttled int32) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	mux := http.NewServeMux()
	respond := func(w http.ResponseWriter, body string) {
		if hits.Add(1) <= throttled {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}
	mux.HandleFunc("GET /api/v1/employee", func(w http.ResponseWriter, r *http.Request) {
		respond(w, `{"status":"ok","data":[
			{"id":"`+janeID+`","employee_name":"Jane Doe","employee_salary":90000},
			{"id":"2","employee_name":"John Doe","employee_salary":50000}
		]}`)
	})
	mux.HandleFunc("GET /api/v1/employee/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != janeID {
			hits.Add(1)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		respond(w, `{"status":"ok","data":{"id":"`+janeID+`","employee_name":"Jane Doe","employee_salary":90000}}`)
	})
	mux.HandleFunc("DELETE /api/v1/employee", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name string `json:"name"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Name != "Jane Doe" {
			t.Errorf("delete name = %q, want Jane Doe", body.Name)
		}
		respond(w, `{"status":"ok","data":true}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &hits
}

func newTestApp(t *testing.T, baseURL string, attempts int) *App {
	t.Helper()
	app, err := New(Config{
		Port:   0,
		Remote: remote.Config{Name: "mock", BaseURL: baseURL + "/api/v1/employee", Timeout: 5 * time.Second},
		Retry:  retry.Policy{MaxAttempts: attempts, Multiplier: 2},
	}, nil)
	require.NoError(t, err)
	return app
}

func get(app *App, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.Server().Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Config{}, nil)
	assert.Error(t, err)
}

func TestApp_EndToEnd(t *testing.T) {
	srv, _ := fakeRemote(t, 0)
	app := newTestApp(t, srv.URL, 3)

	w := get(app, "/api/v1/employee/topTenHighestEarningEmployeeNames")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `["Jane Doe","John Doe"]`, w.Body.String())

	w = get(app, "/api/v1/employee/highestSalary")
	assert.Equal(t, "90000", w.Body.String())

	w = get(app, "/api/v1/employee/search/jane")
	var found []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &found))
	require.Len(t, found, 1)
	assert.Equal(t, "Jane Doe", found[0]["employee_name"])

	w = get(app, "/api/v1/employee/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(app, "/api/v1/employee/00000000-0000-0000-0000-000000000000")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApp_DeleteResolvesName(t *testing.T) {
	srv, _ := fakeRemote(t, 0)
	app := newTestApp(t, srv.URL, 3)

	w := httptest.NewRecorder()
	app.Server().Engine.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/employee/"+janeID, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, `"Jane Doe"`, w.Body.String())
}

func TestApp_RetriesThrottledRemote(t *testing.T) {
	srv, hits := fakeRemote(t, 2)
	app := newTestApp(t, srv.URL, 3)

	w := get(app, "/api/v1/employee")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, int32(3), hits.Load())

	w = get(app, "/health")
	assert.JSONEq(t, `{"status":"throttled"}`, w.Body.String())
}

func TestApp_SurfacesExhaustedRetries(t *testing.T) {
	srv, hits := fakeRemote(t, 100)
	app := newTestApp(t, srv.URL, 2)

	w := get(app, "/api/v1/employee")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, int32(2), hits.Load())
}

func TestApp_StartStop(t *testing.T) {
	srv, _ := fakeRemote(t, 0)
	app := newTestApp(t, srv.URL, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, app.Start(ctx))
	time.Sleep(50 * time.Millisecond) // let the server goroutine bind

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	assert.NoError(t, app.Stop(stopCtx))
}
