package metric

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func scrape(t *testing.T, h http.Handler) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	return string(body)
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if r.registry == nil {
		t.Error("registry field is nil")
	}
	if r.OperationsTotal == nil || r.OperationDuration == nil || r.PayloadBytes == nil {
		t.Error("operation metrics not initialized")
	}
	if r.HTTPRequestsTotal == nil || r.HTTPRequestDuration == nil {
		t.Error("http metrics not initialized")
	}
}

func TestGlobal(t *testing.T) {
	if Global() != Global() {
		t.Error("Global() should return the same instance")
	}
}

func TestHandler(t *testing.T) {
	body := scrape(t, Handler())

	for _, want := range []string{"go_goroutines", "process_", "plainsight_build_info"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %s in scrape output", want)
		}
	}
}

func TestObserveOperation(t *testing.T) {
	r := NewRegistry()

	r.ObserveOperation("conceal", ResultOK, 3*time.Millisecond, 180)
	r.ObserveOperation("conceal", ResultOK, 2*time.Millisecond, 200)
	r.ObserveOperation("reveal", "PS-CRYP-4010", time.Millisecond, -1)

	if got := testutil.ToFloat64(r.OperationsTotal.WithLabelValues("conceal", ResultOK)); got != 2 {
		t.Errorf("conceal ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.OperationsTotal.WithLabelValues("reveal", "PS-CRYP-4010")); got != 1 {
		t.Errorf("reveal failures = %v, want 1", got)
	}

	body := scrape(t, r.Handler())
	if !strings.Contains(body, `plainsight_payload_bytes_count{operation="conceal"} 2`) {
		t.Error("expected two conceal payload observations")
	}
	if strings.Contains(body, `plainsight_payload_bytes_count{operation="reveal"}`) {
		t.Error("negative payload size should not be observed")
	}
	if !strings.Contains(body, `plainsight_operation_duration_seconds_count{operation="reveal"} 1`) {
		t.Error("expected one reveal duration observation")
	}
}

func TestObserveHTTP(t *testing.T) {
	r := NewRegistry()

	r.ObserveHTTP(http.MethodPost, "/v1/reveal", 200, 5*time.Millisecond)
	r.ObserveHTTP(http.MethodPost, "/v1/reveal", 401, time.Millisecond)
	r.ObserveHTTP(http.MethodGet, "/health", 200, time.Microsecond)

	if got := testutil.ToFloat64(r.HTTPRequestsTotal.WithLabelValues("POST", "/v1/reveal", "401")); got != 1 {
		t.Errorf("reveal 401 = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(r.HTTPRequestsTotal); n != 3 {
		t.Errorf("http_requests_total series = %d, want 3", n)
	}
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	if n := testutil.CollectAndCount(c); n != 1 {
		t.Errorf("CollectAndCount() = %d, want 1", n)
	}

	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(c); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
}

func TestConcurrentUpdates(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.ObserveOperation("reveal", ResultOK, time.Microsecond, 100)
				r.ObserveHTTP("POST", "/v1/reveal", 200, time.Microsecond)
			}
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(r.OperationsTotal.WithLabelValues("reveal", ResultOK)); got != 1000 {
		t.Errorf("reveal ok = %v, want 1000", got)
	}
	scrape(t, r.Handler())
}
