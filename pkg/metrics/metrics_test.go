package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then its collectors are registered there", func() {
				So(manager, ShouldNotBeNil)
				manager.UpdateCatalogSize(20)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(strings.Join(names, ","), ShouldContainSubstring, "test_unit_catalog_size")
			})
		})

		Convey("When two managers share a registry", func() {
			registry := prometheus.NewRegistry()
			NewManager(WithPrometheusRegistry(registry))

			Convey("Then the second registration panics", func() {
				So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
			})
		})
	})
}

func TestPredictionMetrics(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

		Convey("When predictions with and without matches are observed", func() {
			m.ObservePrediction(0.2, 78.49, 12)
			m.ObservePrediction(0.1, 5, 0)
			m.ObservePrediction(0.1, 81, 3)

			Convey("Then they are counted by outcome", func() {
				So(testutil.ToFloat64(m.predictions.WithLabelValues(OutcomeMatched)), ShouldEqual, 2)
				So(testutil.ToFloat64(m.predictions.WithLabelValues(OutcomeNoMatch)), ShouldEqual, 1)
			})
		})

		Convey("When a prediction fails", func() {
			m.RecordPredictionError()
			So(testutil.ToFloat64(m.predictionErrors), ShouldEqual, 1)
		})

		Convey("When the catalog is loaded", func() {
			m.UpdateCatalogSize(20)
			So(testutil.ToFloat64(m.catalogSize), ShouldEqual, 20)
		})

		Convey("When artifacts are loaded", func() {
			m.RecordArtifactLoad("scaler", 1.5)
			m.RecordArtifactLoad("model", 0.5)
			So(testutil.CollectAndCount(m.artifactLoadDuration), ShouldEqual, 2)
		})
	})
}

func TestGlobalRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then package-level recorders do not panic", func() {
			So(func() {
				ObservePrediction(0.3, 50, 4)
				RecordPredictionError()
				UpdateCatalogSize(3)
				RecordArtifactLoad("catalog", 2)
				RecordHTTPRequest("predict", "POST", "200")
				RecordHTTPRequestDuration("predict", "POST", "200", 1.2)
				RecordErrorByEndpoint("predict", "POST", "client_error")
				RecordErrorByType("client_error", "medium")
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(8)
				RecordSystemGCPauseTime(0.4)
			}, ShouldNotPanic)
		})

		Convey("And the registry exposes them", func() {
			UpdateCatalogSize(7)
			So(GetRegistry(), ShouldNotBeNil)
			So(testutil.ToFloat64(globalManager.catalogSize), ShouldEqual, 7)
		})
	})
}
