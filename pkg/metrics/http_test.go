package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestObserveRequestCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("GET", "/api/v1/cart", 200, 25*time.Millisecond)
	m.ObserveRequest("GET", "/api/v1/cart", 404, time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	var requests *dto.MetricFamily
	for _, fam := range families {
		if fam.GetName() == "http_requests_total" {
			requests = fam
		}
	}
	if requests == nil {
		t.Fatal("expected http_requests_total family")
	}
	if len(requests.GetMetric()) != 2 {
		t.Fatalf("expected 2 label combinations, got %d", len(requests.GetMetric()))
	}
}

func TestLinkMetricsNormalizesLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLinkMetrics(reg)

	m.IncGenerated("Shopify", "")
	m.IncGenerated("shopify", "standard")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if len(families) != 1 {
		t.Fatalf("expected one family, got %d", len(families))
	}

	for _, metric := range families[0].GetMetric() {
		for _, label := range metric.GetLabel() {
			if label.GetName() == "format" && label.GetValue() == "" {
				t.Fatal("expected empty format normalized to unknown")
			}
		}
	}
}

func TestNilRegistererIsSafe(t *testing.T) {
	m := NewHTTPMetrics(nil)
	m.ObserveRequest("GET", "/", 200, time.Millisecond)

	l := NewLinkMetrics(nil)
	l.IncGenerated("shopify", "standard")
}
