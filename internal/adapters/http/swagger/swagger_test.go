package swagger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestSwaggerHandler(t *testing.T) {
	convey.Convey("Given a registered swagger handler", t, func() {
		mux := http.NewServeMux()
		Register(context.Background(), mux)

		convey.Convey("When fetching /openapi.yaml", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.yaml", http.NoBody))

			convey.Convey("Then the document describes the offer routes", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "application/yaml; charset=utf-8")
				convey.So(w.Body.String(), convey.ShouldContainSubstring, "/offers/{patient_id}:")
				convey.So(w.Body.String(), convey.ShouldContainSubstring, "openapi: 3.0.3")
			})
		})

		convey.Convey("When posting to /openapi.yaml", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/openapi.yaml", http.NoBody))
			convey.So(w.Code, convey.ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestSwaggerHandlerWithNilMux(t *testing.T) {
	convey.Convey("Given a nil mux", t, func() {
		convey.Convey("Then registering should panic", func() {
			convey.So(func() { Register(context.Background(), nil) }, convey.ShouldPanic)
		})
	})
}
