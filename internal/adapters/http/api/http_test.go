package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sprinflow/indices/internal/adapters/http/api"
	service "github.com/sprinflow/indices/internal/app"
	"github.com/sprinflow/indices/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

var apiNow = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	if err := logger.Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	svc := service.New(service.WithClock(func() time.Time { return apiNow }))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("failed to start service: %v", err)
	}
	t.Cleanup(svc.Stop)

	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func get(t *testing.T, ts *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// seedOverHTTP pushes enough data through the ingest endpoints for the
// athlete to be fully calibrated.
func seedOverHTTP(t *testing.T, ts *httptest.Server, id string) {
	t.Helper()
	day := func(offset int) string {
		return apiNow.AddDate(0, 0, offset).Format("2006-01-02")
	}

	posts := []struct{ path, body string }{
		{"/profile", fmt.Sprintf(`{"athlete_id":%q,"height_cm":180}`, id)},
		{"/body", fmt.Sprintf(`{"athlete_id":%q,"date":%q,"weight_kg":80,"body_fat_pct":12}`, id, day(-1))},
		{"/records", fmt.Sprintf(`{"athlete_id":%q,"exercise_id":"back_squat","value":170,"recorded_at":%q}`, id, day(-60))},
		{"/records", fmt.Sprintf(`{"athlete_id":%q,"exercise_id":"back_squat","value":180,"recorded_at":%q}`, id, day(-10))},
	}
	for i := 0; i < 7; i++ {
		posts = append(posts, struct{ path, body string }{
			"/sleep", fmt.Sprintf(`{"athlete_id":%q,"date":%q,"duration_hours":8,"quality":4}`, id, day(-i)),
		})
	}
	for i := 0; i < 28; i++ {
		posts = append(posts, struct{ path, body string }{
			"/sessions", fmt.Sprintf(`{"athlete_id":%q,"date":%q,"duration_min":60,"rpe":6}`, id, day(-i)),
		})
	}

	for _, p := range posts {
		resp := post(t, ts, p.path, p.body)
		if resp.StatusCode != http.StatusAccepted {
			t.Fatalf("seed POST %s returned %d", p.path, resp.StatusCode)
		}
	}
}

func TestIngestEndpoints(t *testing.T) {
	ts := newTestServer(t)

	Convey("Given the ingest surface", t, func() {
		Convey("When a valid sleep entry is posted", func() {
			resp := post(t, ts, "/sleep", `{"athlete_id":"a1","date":"2026-05-30","duration_hours":7.5,"quality":4}`)

			Convey("Then it is accepted", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusAccepted)
			})
		})

		Convey("When the body is not JSON", func() {
			resp := post(t, ts, "/sessions", `not json`)

			Convey("Then it is rejected", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the athlete id is missing", func() {
			resp := post(t, ts, "/records", `{"exercise_id":"back_squat","value":100,"recorded_at":"2026-05-01"}`)

			Convey("Then it is rejected", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When a sample violates the input contract", func() {
			resp := post(t, ts, "/sleep", `{"athlete_id":"a1","date":"2026-05-30","duration_hours":8,"quality":9}`)

			Convey("Then the store rejection maps to 400", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
				var body map[string]string
				So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
				So(body["code"], ShouldEqual, "bad_request")
			})
		})

		Convey("When the date is malformed", func() {
			resp := post(t, ts, "/body", `{"athlete_id":"a1","date":"30/05/2026","weight_kg":80}`)

			Convey("Then it is rejected", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the method is wrong", func() {
			resp := get(t, ts, "/sleep")

			Convey("Then the route does not exist", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestScoresEndpoint(t *testing.T) {
	ts := newTestServer(t)

	Convey("Given the scores surface", t, func() {
		Convey("When scoring a seeded athlete", func() {
			seedOverHTTP(t, ts, "champion")
			resp := get(t, ts, "/scores/champion")

			Convey("Then the full envelope comes back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(resp.Header.Get("Content-Type"), ShouldContainSubstring, "application/json")
				So(resp.Header.Get("X-Request-ID"), ShouldNotBeEmpty)

				var env map[string]json.RawMessage
				So(json.NewDecoder(resp.Body).Decode(&env), ShouldBeNil)
				So(env, ShouldContainKey, "scoreForme")
				So(env, ShouldContainKey, "indicePoidsPuissance")
				So(env, ShouldContainKey, "scoreEvolution")
			})
		})

		Convey("When the athlete is unknown", func() {
			resp := get(t, ts, "/scores/nobody")

			Convey("Then 404 is returned", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the athlete id is empty or nested", func() {
			So(get(t, ts, "/scores/").StatusCode, ShouldEqual, http.StatusBadRequest)
			So(get(t, ts, "/scores/a/b").StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestReadSurfaces(t *testing.T) {
	ts := newTestServer(t)

	Convey("Given the operational surfaces", t, func() {
		Convey("When benchmarks are listed", func() {
			resp := get(t, ts, "/benchmarks")

			Convey("Then the default table is served", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var entries []map[string]any
				So(json.NewDecoder(resp.Body).Decode(&entries), ShouldBeNil)
				So(len(entries), ShouldEqual, 8)
				So(entries[0], ShouldContainKey, "exercise_id")
				So(entries[0], ShouldContainKey, "elite")
			})
		})

		Convey("When stats are requested", func() {
			resp := get(t, ts, "/stats")

			Convey("Then service statistics are served", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var stats map[string]any
				So(json.NewDecoder(resp.Body).Decode(&stats), ShouldBeNil)
				So(stats["started"], ShouldEqual, true)
			})
		})

		Convey("When the health endpoint is scraped", func() {
			resp := get(t, ts, "/healthz")

			Convey("Then Prometheus metrics are served", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
			})
		})
	})
}
