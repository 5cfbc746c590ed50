package metrics_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/demo-api/internal/metrics"
)

var _ = Describe("Collector", func() {
	var (
		collector *metrics.Collector
		ctx       context.Context
		cancel    context.CancelFunc
	)

	BeforeEach(func() {
		log := slog.New(slog.NewTextHandler(io.Discard, nil))
		ctx, cancel = context.WithCancel(context.Background())
		collector = metrics.NewCollector(100, log)
	})

	AfterEach(func() {
		cancel()
	})

	It("should process EventRequestReceived", func() {
		collector.Start(ctx)

		collector.EventChannel() <- metrics.Event{
			Type:      metrics.EventRequestReceived,
			Timestamp: time.Now(),
			Route:     "GET /",
		}

		Eventually(func() int64 {
			return collector.Snapshot("demo").Routes["GET /"].Requests
		}).Should(Equal(int64(1)))
	})

	It("should process EventResponseCompleted", func() {
		collector.Start(ctx)

		collector.EventChannel() <- metrics.Event{
			Type:       metrics.EventResponseCompleted,
			Timestamp:  time.Now(),
			Route:      "GET /demo",
			Duration:   100 * time.Millisecond,
			StatusCode: 200,
		}

		Eventually(func() int64 {
			return collector.Snapshot("demo").Routes["GET /demo"].StatusCodes[200]
		}).Should(Equal(int64(1)))
		Expect(collector.Snapshot("demo").Routes["GET /demo"].AvgResponse).To(Equal(100 * time.Millisecond))
	})

	It("should drain events on context cancellation", func() {
		for i := 0; i < 5; i++ {
			collector.EventChannel() <- metrics.Event{
				Type:  metrics.EventRequestReceived,
				Route: "GET /",
			}
		}

		cancel()
		collector.Start(ctx)

		Eventually(func() int64 {
			return collector.Snapshot("demo").Routes["GET /"].Requests
		}).Should(Equal(int64(5)))
	})

	Describe("Handler", func() {
		It("should serve the snapshot as JSON", func() {
			collector.Start(ctx)
			collector.EventChannel() <- metrics.Event{Type: metrics.EventRequestReceived, Route: "GET /"}

			Eventually(func() int64 {
				return collector.Snapshot("demo").TotalRequests
			}).Should(Equal(int64(1)))

			w := httptest.NewRecorder()
			collector.Handler("demo").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("application/json"))

			var snap metrics.Snapshot
			Expect(json.Unmarshal(w.Body.Bytes(), &snap)).To(Succeed())
			Expect(snap.Service).To(Equal("demo"))
			Expect(snap.TotalRequests).To(Equal(int64(1)))
		})
	})
})
