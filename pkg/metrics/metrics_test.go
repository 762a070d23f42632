package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options on a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "fightpicks")
				So(manager.subsystem, ShouldEqual, "sync")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options are applied", func() {
				So(manager.namespace, ShouldEqual, "test_namespace")
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
				So(manager.constLabels["env"], ShouldEqual, "test")
			})
		})

		Convey("When empty options are passed", func() {
			manager := NewManager(
				WithNamespace(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults survive", func() {
				So(manager.namespace, ShouldEqual, "fightpicks")
				So(len(manager.histogramBuckets), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording toggles", func() {
			before := testutil.ToFloat64(globalManager.toggles.WithLabelValues("selected"))
			RecordToggle("selected")
			RecordToggle("selected")

			Convey("Then the counter moves", func() {
				So(testutil.ToFloat64(globalManager.toggles.WithLabelValues("selected")), ShouldEqual, before+2)
			})
		})

		Convey("When recording reconcile decisions and stale fetches", func() {
			before := testutil.ToFloat64(globalManager.reconcileDecisions.WithLabelValues("adopted"))
			staleBefore := testutil.ToFloat64(globalManager.staleFetches)
			RecordReconcile("adopted")
			RecordStaleFetch()

			So(testutil.ToFloat64(globalManager.reconcileDecisions.WithLabelValues("adopted")), ShouldEqual, before+1)
			So(testutil.ToFloat64(globalManager.staleFetches), ShouldEqual, staleBefore+1)
		})

		Convey("When recording saves and fetches", func() {
			before := testutil.ToFloat64(globalManager.saves.WithLabelValues("ok"))
			So(func() {
				RecordSave("ok")
				RecordSaveLatency(42)
				RecordFetch("event", "ok")
				RecordFetch("picks", "unauthenticated")
			}, ShouldNotPanic)
			So(testutil.ToFloat64(globalManager.saves.WithLabelValues("ok")), ShouldEqual, before+1)
		})

		Convey("When recording HTTP traffic", func() {
			So(func() {
				RecordClientRequest("/events/{id}", "GET", "200", 12)
				RecordHTTPRequest("/events/{id}/toggle", "POST", "200")
				RecordHTTPRequestDuration("/events/{id}/toggle", "POST", "200", 1)
				RecordErrorByEndpoint("/events/{id}/save", "POST", "conflict")
				RecordErrorByType("conflict", "medium")
			}, ShouldNotPanic)
		})

		Convey("When updating gauges", func() {
			UpdateOpenViews(3)
			UpdateDirtyViews(1)

			So(testutil.ToFloat64(globalManager.openViews), ShouldEqual, 3)
			So(testutil.ToFloat64(globalManager.dirtyViews), ShouldEqual, 1)
		})

		Convey("When updating system metrics", func() {
			So(func() {
				UpdateSystemMemoryUsage(1024 * 1024)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.5)
			}, ShouldNotPanic)
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the custom registry", t, func() {
		RecordToggle("deselected")
		families, err := GetRegistry().Gather()

		Convey("Then it exposes the sync metrics", func() {
			So(err, ShouldBeNil)
			names := map[string]bool{}
			for _, f := range families {
				names[f.GetName()] = true
			}
			So(names["fightpicks_sync_toggles_total"], ShouldBeTrue)
		})
	})
}
