package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/engageoffer/internal/adapters/http/api"
	repository "github.com/okian/engageoffer/internal/adapters/repository"
	app "github.com/okian/engageoffer/internal/app"
	"github.com/okian/engageoffer/internal/domain/model"
	"github.com/okian/engageoffer/internal/domain/risk"
	"github.com/okian/engageoffer/pkg/logger"
	"github.com/okian/engageoffer/pkg/metrics"
)

type mockDependencies struct {
	batch    app.Batch
	batchErr error
	offers   map[int]model.Offer
	offerErr error
	stats    map[string]interface{}
}

func (m *mockDependencies) Offers(ctx context.Context) (app.Batch, error) {
	return m.batch, m.batchErr
}

func (m *mockDependencies) Offer(ctx context.Context, id int) (model.Offer, error) {
	if m.offerErr != nil {
		return model.Offer{}, m.offerErr
	}
	o, ok := m.offers[id]
	if !ok {
		return model.Offer{}, fmt.Errorf("patient %d: %w", id, repository.ErrNotFound)
	}
	return o, nil
}

func (m *mockDependencies) GetStats() map[string]interface{} {
	return m.stats
}

func newMux(deps api.Dependencies) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps).Register(context.Background(), mux)
	return mux
}

func serve(mux *http.ServeMux, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		deps := &mockDependencies{
			batch: app.Batch{RunID: "run-1", Offers: []model.Offer{}, Failures: []app.Failure{}},
			stats: map[string]interface{}{"patients": 3},
		}
		mux := newMux(deps)

		Convey("Then health endpoint should be accessible", func() {
			So(serve(mux, http.MethodGet, "/healthz").Code, ShouldEqual, http.StatusOK)
		})

		Convey("And stats endpoint should be accessible", func() {
			So(serve(mux, http.MethodGet, "/stats").Code, ShouldEqual, http.StatusOK)
		})

		Convey("And offers endpoint should be accessible", func() {
			So(serve(mux, http.MethodGet, "/offers").Code, ShouldEqual, http.StatusOK)
		})

		Convey("And unknown paths should 404", func() {
			So(serve(mux, http.MethodGet, "/unknown").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("And a nil mux should panic", func() {
			So(func() { api.NewServer(deps).Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}

func TestOffersHandler_HandleGetOffer(t *testing.T) {
	Convey("Given an offers handler", t, func() {
		deps := &mockDependencies{
			offers: map[int]model.Offer{
				101: {PatientID: 101, PatientName: "John Doe", DiscountPercent: 30, Text: "Dear John Doe (Patient ID: 101),"},
			},
		}
		mux := newMux(deps)

		Convey("When requesting a known patient", func() {
			w := serve(mux, http.MethodGet, "/offers/101")

			Convey("Then the letter is returned as plain text", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "text/plain; charset=utf-8")
				So(w.Header().Get("X-Discount-Percent"), ShouldEqual, "30")
				So(w.Body.String(), ShouldEqual, "Dear John Doe (Patient ID: 101),")
			})
		})

		Convey("When the id is not an integer", func() {
			w := serve(mux, http.MethodGet, "/offers/abc")

			Convey("Then it should return 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "bad_request")
			})
		})

		Convey("When the id is missing", func() {
			So(serve(mux, http.MethodGet, "/offers/").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the patient does not exist", func() {
			w := serve(mux, http.MethodGet, "/offers/999")

			Convey("Then it should return 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(w.Body.String(), ShouldContainSubstring, "not_found")
			})
		})

		Convey("When the scorer rejects the category", func() {
			deps.offerErr = fmt.Errorf("score patient 5: %w: %q", risk.ErrUnknownCategory, "Podiatry")
			w := serve(mux, http.MethodGet, "/offers/5")

			Convey("Then it should return 422", func() {
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
				So(w.Body.String(), ShouldContainSubstring, "unknown_category")
			})
		})

		Convey("When the upstream fails otherwise", func() {
			deps.offerErr = errors.New("boom")
			So(serve(mux, http.MethodGet, "/offers/101").Code, ShouldEqual, http.StatusInternalServerError)
		})

		Convey("When using a method other than GET", func() {
			So(serve(mux, http.MethodPost, "/offers/101").Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestOffersHandler_HandleListOffers(t *testing.T) {
	Convey("Given the real pipeline service", t, func() {
		So(logger.Init(logger.WithWriter(io.Discard)), ShouldBeNil)
		svc := app.New(app.WithStore(repository.NewInMemoryStore(repository.WithRecords([]model.PatientRecord{
			{ID: 101, Name: "John Doe", Risk: risk.Cardiovascular, Visits: 5, FeedbackScore: 80},
			{ID: 9, Name: "Nope", Risk: "Podiatry", Visits: 1, FeedbackScore: 1},
		}))))
		mux := newMux(svc)

		Convey("When listing offers", func() {
			w := serve(mux, http.MethodGet, "/offers")

			Convey("Then the batch is returned with the failure", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var body struct {
					RunID  string `json:"run_id"`
					Offers []struct {
						PatientID       int     `json:"patient_id"`
						EngagementScore float64 `json:"engagement_score"`
						DiscountPercent int     `json:"discount_percent"`
					} `json:"offers"`
					Failures []struct {
						PatientID int    `json:"patient_id"`
						Error     string `json:"error"`
					} `json:"failures"`
				}
				So(json.NewDecoder(w.Body).Decode(&body), ShouldBeNil)
				So(body.RunID, ShouldNotBeEmpty)
				So(len(body.Offers), ShouldEqual, 1)
				So(body.Offers[0].PatientID, ShouldEqual, 101)
				So(body.Offers[0].EngagementScore, ShouldEqual, 100.0)
				So(body.Offers[0].DiscountPercent, ShouldEqual, 30)
				So(len(body.Failures), ShouldEqual, 1)
				So(body.Failures[0].PatientID, ShouldEqual, 9)
				So(body.Failures[0].Error, ShouldContainSubstring, "Podiatry")
			})
		})

		Convey("When requesting the failing record directly", func() {
			So(serve(mux, http.MethodGet, "/offers/9").Code, ShouldEqual, http.StatusUnprocessableEntity)
		})

		Convey("When reading stats after a run", func() {
			serve(mux, http.MethodGet, "/offers")
			w := serve(mux, http.MethodGet, "/stats")

			Convey("Then runs and patients are reported", func() {
				var stats map[string]interface{}
				So(json.NewDecoder(w.Body).Decode(&stats), ShouldBeNil)
				So(stats["patients"], ShouldEqual, float64(2))
				So(stats["runs"], ShouldBeGreaterThanOrEqualTo, float64(1))
			})
		})
	})

	Convey("Given an upstream failure", t, func() {
		mux := newMux(&mockDependencies{batchErr: context.Canceled})
		So(serve(mux, http.MethodGet, "/offers").Code, ShouldEqual, http.StatusInternalServerError)
	})
}

func TestHealthHandler_HandleHealth(t *testing.T) {
	Convey("Given a health handler over a private registry", t, func() {
		reg := prometheus.NewRegistry()
		c := prometheus.NewCounter(prometheus.CounterOpts{Name: "probe_total", Help: "probe"})
		reg.MustRegister(c)
		c.Inc()
		h := api.NewHealthHandlerFor(reg)

		Convey("When scraping", func() {
			w := httptest.NewRecorder()
			h.HandleHealth(w, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))

			Convey("Then the exposition contains the registry metrics", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "probe_total 1")
			})
		})

		Convey("When posting", func() {
			w := httptest.NewRecorder()
			h.HandleHealth(w, httptest.NewRequest(http.MethodPost, "/healthz", http.NoBody))
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestStatsHandler_HandleStats(t *testing.T) {
	Convey("Given a stats handler", t, func() {
		h := api.NewStatsHandler(&mockDependencies{stats: map[string]interface{}{"runs": 2, "lastRunID": "abc"}})

		Convey("When handling GET /stats", func() {
			w := httptest.NewRecorder()
			h.HandleStats(w, httptest.NewRequest(http.MethodGet, "/stats", http.NoBody))

			Convey("Then it should return the stats as JSON", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, `{"lastRunID":"abc","runs":2}`)
			})
		})

		Convey("When handling a non-GET request", func() {
			w := httptest.NewRecorder()
			h.HandleStats(w, httptest.NewRequest(http.MethodDelete, "/stats", http.NoBody))
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestMetricsMiddleware(t *testing.T) {
	Convey("Given a handler wrapped by the metrics middleware", t, func() {
		requests := metrics.Global().HTTPRequests.WithLabelValues("probe", http.MethodGet, "418")
		before := testutil.ToFloat64(requests)

		handler := api.MetricsMiddleware(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}, "probe")

		Convey("When it is called", func() {
			w := httptest.NewRecorder()
			handler(w, httptest.NewRequest(http.MethodGet, "/probe", http.NoBody))

			Convey("Then the request is counted with its status", func() {
				So(w.Code, ShouldEqual, http.StatusTeapot)
				So(testutil.ToFloat64(requests), ShouldEqual, before+1)
			})
		})
	})
}
