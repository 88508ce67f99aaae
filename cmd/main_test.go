package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	app "github.com/okian/gradpredict/internal/app"
	"github.com/okian/gradpredict/internal/config"
	"github.com/okian/gradpredict/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func testConfig() *config.Config {
	cfg := config.New()
	cfg.Addr = "127.0.0.1:0"
	cfg.ScalerPath = "../assets/graduate_adm_scaler.json"
	cfg.ModelPath = "../assets/graduate_adm_model.json"
	cfg.CatalogPath = "../assets/mtech_colleges.csv"
	return cfg
}

func TestInitLogging(t *testing.T) {
	convey.Convey("Given a config", t, func() {
		cfg := testConfig()

		convey.Convey("When the format is json", func() {
			cfg.LogFormat = "json"

			convey.Convey("Then logging initializes", func() {
				convey.So(initLogging(cfg), convey.ShouldBeNil)
				convey.So(logger.Get(), convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the level is unknown", func() {
			cfg.LogLevel = "chatty"

			convey.Convey("Then it falls back instead of failing", func() {
				convey.So(initLogging(cfg), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the format is unknown", func() {
			cfg.LogFormat = "xml"

			convey.Convey("Then it fails", func() {
				convey.So(initLogging(cfg), convey.ShouldNotBeNil)
			})
		})
	})
}

func TestNewHandler(t *testing.T) {
	convey.Convey("Given a started service behind the full route table", t, func() {
		cfg := testConfig()
		convey.So(initLogging(cfg), convey.ShouldBeNil)
		ctx := context.Background()

		svc := app.New(
			app.WithScalerPath(cfg.ScalerPath),
			app.WithModelPath(cfg.ModelPath),
			app.WithCatalogPath(cfg.CatalogPath),
		)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		h := newHandler(ctx, cfg, svc)

		convey.Convey("Then the form is served at /", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Header().Get("X-Request-ID"), convey.ShouldNotBeEmpty)
		})

		convey.Convey("And a form submission renders the reference prediction", func() {
			form := url.Values{
				"gre": {"320"}, "toefl": {"110"}, "university_rating": {"4"},
				"sop": {"4.0"}, "lor": {"4.0"}, "cgpa": {"8.8"}, "research": {"yes"},
			}
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Body.String(), convey.ShouldContainSubstring, "78.49%")
		})

		convey.Convey("And the JSON API answers", func() {
			body := `{"gre":320,"toefl":110,"university_rating":4,"sop":4,"lor":4,"cgpa":8.8,"research":true}`
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(body)))
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Body.String(), convey.ShouldContainSubstring, `"admission_percentage":78.49`)
		})

		convey.Convey("And docs and metrics are reachable", func() {
			for _, path := range []string{"/api-docs", "/openapi.yaml", "/healthz", "/stats", "/api/colleges"} {
				w := httptest.NewRecorder()
				h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			}
		})
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given valid artifacts", t, func() {
		cfg := testConfig()
		convey.So(initLogging(cfg), convey.ShouldBeNil)

		convey.Convey("When the context ends", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
			defer cancel()

			convey.Convey("Then run shuts down cleanly", func() {
				convey.So(run(ctx, cfg), convey.ShouldBeNil)
			})
		})
	})

	convey.Convey("Given a missing model artifact", t, func() {
		cfg := testConfig()
		cfg.ModelPath = "../assets/missing.json"
		convey.So(initLogging(cfg), convey.ShouldBeNil)

		convey.Convey("Then run fails before listening", func() {
			convey.So(run(context.Background(), cfg), convey.ShouldNotBeNil)
		})
	})
}

func TestSystemMetrics(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			convey.Convey("Then it returns once the context ends", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startSystemMetricsUpdater(ctx)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing system metrics update", func() {
			convey.Convey("Then it should update metrics without panicking", func() {
				convey.So(func() {
					updateSystemMetrics()
				}, convey.ShouldNotPanic)
			})
		})
	})
}
