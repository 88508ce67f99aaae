package loadcheck_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/gradpredict/internal/adapters/http/api"
	app "github.com/okian/gradpredict/internal/app"
	"github.com/okian/gradpredict/internal/loadcheck"
	"github.com/okian/gradpredict/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func newService(t *testing.T) *app.Service {
	t.Helper()
	svc := app.New(
		app.WithScalerPath("../../assets/graduate_adm_scaler.json"),
		app.WithModelPath("../../assets/graduate_adm_model.json"),
		app.WithCatalogPath("../../assets/mtech_colleges.csv"),
	)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(svc.Stop)
	return svc
}

func config(url string) *loadcheck.Config {
	return &loadcheck.Config{
		BaseURL:  url,
		Profiles: 200,
		Repeats:  50,
		Workers:  8,
		Timeout:  5 * time.Second,
		Seed:     42,
	}
}

func TestRun(t *testing.T) {
	Convey("Given a running prediction service", t, func() {
		svc := newService(t)
		mux := http.NewServeMux()
		api.NewServer(svc, svc).Register(context.Background(), mux)
		srv := httptest.NewServer(api.RequestIDMiddleware(mux))
		defer srv.Close()

		Convey("When running the load check", func() {
			stats, err := loadcheck.Run(context.Background(), config(srv.URL))

			Convey("Then every answer holds up", func() {
				So(err, ShouldBeNil)
				So(stats.Submitted, ShouldEqual, 250)
				So(stats.Successful, ShouldEqual, 250)
				So(stats.Failed, ShouldEqual, 0)
				So(stats.Violations, ShouldEqual, 0)
				So(stats.PerSecond(), ShouldBeGreaterThan, 0)
			})
		})
	})

	Convey("Given a service that recommends every college", t, func() {
		svc := newService(t)
		mux := http.NewServeMux()
		mux.HandleFunc("/healthz", api.NewHealthHandler().HandleHealth)
		mux.HandleFunc("/api/colleges", api.NewCollegesHandler(svc).HandleColleges)
		mux.HandleFunc("/api/predict", func(w http.ResponseWriter, r *http.Request) {
			colleges, _ := svc.Colleges(r.Context())
			w.Header().Set("X-Request-ID", r.Header.Get("X-Request-ID"))
			_ = json.NewEncoder(w).Encode(loadcheck.PredictResponse{
				AdmissionPercentage: 10,
				RecommendedColleges: colleges,
			})
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		Convey("Then the load check reports violations", func() {
			cfg := config(srv.URL)
			cfg.Profiles, cfg.Repeats = 20, 0
			stats, err := loadcheck.Run(context.Background(), cfg)
			So(errors.Is(err, loadcheck.ErrViolation), ShouldBeTrue)
			So(stats.Violations, ShouldEqual, 20)
		})
	})

	Convey("Given a service that drops the request id", t, func() {
		svc := newService(t)
		mux := http.NewServeMux()
		mux.HandleFunc("/healthz", api.NewHealthHandler().HandleHealth)
		mux.HandleFunc("/api/colleges", api.NewCollegesHandler(svc).HandleColleges)
		mux.HandleFunc("/api/predict", api.NewPredictHandler(svc).HandlePredict)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		Convey("Then every answer is a violation", func() {
			cfg := config(srv.URL)
			cfg.Profiles, cfg.Repeats = 5, 0
			stats, err := loadcheck.Run(context.Background(), cfg)
			So(errors.Is(err, loadcheck.ErrViolation), ShouldBeTrue)
			So(stats.Violations, ShouldEqual, 5)
		})
	})

	Convey("Given an unreachable service", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		Convey("Then the health check fails", func() {
			_, err := loadcheck.Run(context.Background(), config(srv.URL))
			So(err, ShouldNotBeNil)
		})
	})
}
