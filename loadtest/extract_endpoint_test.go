// ABOUTME: Load tests for the /api/extract endpoint
// ABOUTME: Tests performance under high concurrent load

package loadtest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"link-extractor-api/api"
	"link-extractor-api/api/handlers"
	"link-extractor-api/core/domain"
)

// mockExtractor simulates extraction latency without touching the network.
type mockExtractor struct {
	delay time.Duration
}

func (m *mockExtractor) Extract(ctx context.Context, req domain.ExtractionRequest) (*domain.ExtractionResult, error) {
	if m.delay > 0 {
		time.Sleep(m.delay)
	}

	return &domain.ExtractionResult{
		SourceURL: req.URL,
		Links: []string{
			req.URL + "/about",
			req.URL + "/contact",
			"https://other.org/article",
		},
		Diagnostics: domain.Diagnostics{
			domain.DiagMethod:     domain.MethodHTTP,
			domain.DiagStatusCode: http.StatusOK,
		},
	}, nil
}

// LoadTestMetrics tracks performance metrics
type LoadTestMetrics struct {
	TotalRequests  int64
	SuccessfulReqs int64
	FailedReqs     int64
	TotalDuration  time.Duration
	MinLatency     time.Duration
	MaxLatency     time.Duration
	AvgLatency     time.Duration
	P95Latency     time.Duration
	P99Latency     time.Duration
	RequestsPerSec float64
}

func newLoadTestServer(delay time.Duration) *httptest.Server {
	apiInstance, router := api.NewAPI()
	handler := handlers.NewExtractionHandler(&mockExtractor{delay: delay})
	handler.RegisterRoutes(apiInstance)
	return httptest.NewServer(router)
}

func TestExtractEndpoint_100ConcurrentRequests(t *testing.T) {
	server := newLoadTestServer(10 * time.Millisecond)
	defer server.Close()

	// Test configuration
	concurrency := 100
	requestsPerWorker := 10
	totalRequests := concurrency * requestsPerWorker

	// Metrics collection
	var (
		successCount int64
		failCount    int64
		latencies    []time.Duration
		mu           sync.Mutex
	)

	var wg sync.WaitGroup
	wg.Add(concurrency)

	startTime := time.Now()

	// Launch concurrent workers
	for i := 0; i < concurrency; i++ {
		go func(workerID int) {
			defer wg.Done()

			client := &http.Client{
				Timeout: 30 * time.Second,
			}

			for j := 0; j < requestsPerWorker; j++ {
				body, _ := json.Marshal(map[string]interface{}{
					"url": fmt.Sprintf("https://example.com/page-%d-%d", workerID, j),
				})

				reqStart := time.Now()
				resp, err := client.Post(
					server.URL+"/api/extract",
					"application/json",
					bytes.NewReader(body),
				)
				latency := time.Since(reqStart)

				mu.Lock()
				latencies = append(latencies, latency)
				mu.Unlock()

				if err != nil {
					atomic.AddInt64(&failCount, 1)
					continue
				}

				io.ReadAll(resp.Body)
				resp.Body.Close()

				if resp.StatusCode == http.StatusOK {
					atomic.AddInt64(&successCount, 1)
				} else {
					atomic.AddInt64(&failCount, 1)
				}
			}
		}(i)
	}

	wg.Wait()
	totalDuration := time.Since(startTime)

	metrics := calculateMetrics(latencies, totalDuration, totalRequests)
	metrics.SuccessfulReqs = successCount
	metrics.FailedReqs = failCount

	t.Logf("Load Test Results - 100 Concurrent Requests")
	t.Logf("==========================================")
	t.Logf("Total Requests: %d", metrics.TotalRequests)
	t.Logf("Successful: %d", metrics.SuccessfulReqs)
	t.Logf("Failed: %d", metrics.FailedReqs)
	t.Logf("Total Duration: %v", metrics.TotalDuration)
	t.Logf("Requests/sec: %.2f", metrics.RequestsPerSec)
	t.Logf("Min Latency: %v", metrics.MinLatency)
	t.Logf("Avg Latency: %v", metrics.AvgLatency)
	t.Logf("P95 Latency: %v", metrics.P95Latency)
	t.Logf("P99 Latency: %v", metrics.P99Latency)
	t.Logf("Max Latency: %v", metrics.MaxLatency)

	if metrics.FailedReqs > 0 {
		t.Errorf("Had %d failed requests", metrics.FailedReqs)
	}

	if metrics.P95Latency > 1*time.Second {
		t.Errorf("P95 latency too high: %v", metrics.P95Latency)
	}
}

func TestExtractEndpoint_SustainedRate(t *testing.T) {
	server := newLoadTestServer(5 * time.Millisecond)
	defer server.Close()

	// Test configuration
	targetRPS := 500
	duration := 5 * time.Second

	// Metrics
	var (
		successCount int64
		failCount    int64
		latencies    []time.Duration
		mu           sync.Mutex
	)

	ticker := time.NewTicker(time.Second / time.Duration(targetRPS))
	defer ticker.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	startTime := time.Now()

	var requestCount int64
	var inflight sync.WaitGroup

	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	for {
		select {
		case <-ctx.Done():
			goto done
		case <-ticker.C:
			inflight.Add(1)
			go func(reqNum int64) {
				defer inflight.Done()

				body, _ := json.Marshal(map[string]interface{}{
					"url": fmt.Sprintf("https://example.com/page-%d", reqNum),
				})

				reqStart := time.Now()
				resp, err := client.Post(
					server.URL+"/api/extract",
					"application/json",
					bytes.NewReader(body),
				)
				latency := time.Since(reqStart)

				mu.Lock()
				latencies = append(latencies, latency)
				mu.Unlock()

				if err != nil {
					atomic.AddInt64(&failCount, 1)
					return
				}

				io.ReadAll(resp.Body)
				resp.Body.Close()

				if resp.StatusCode == http.StatusOK {
					atomic.AddInt64(&successCount, 1)
				} else {
					atomic.AddInt64(&failCount, 1)
				}
			}(atomic.AddInt64(&requestCount, 1))
		}
	}

done:
	// Let in-flight requests drain
	inflight.Wait()

	totalDuration := time.Since(startTime)

	metrics := calculateMetrics(latencies, totalDuration, int(requestCount))
	metrics.SuccessfulReqs = successCount
	metrics.FailedReqs = failCount

	t.Logf("Load Test Results - Sustained %d Requests/Second", targetRPS)
	t.Logf("=======================================")
	t.Logf("Target RPS: %d", targetRPS)
	t.Logf("Actual RPS: %.2f", metrics.RequestsPerSec)
	t.Logf("Total Requests: %d", metrics.TotalRequests)
	t.Logf("Successful: %d", metrics.SuccessfulReqs)
	t.Logf("Failed: %d", metrics.FailedReqs)
	t.Logf("Success Rate: %.2f%%", float64(metrics.SuccessfulReqs)/float64(metrics.TotalRequests)*100)
	t.Logf("P95 Latency: %v", metrics.P95Latency)
	t.Logf("P99 Latency: %v", metrics.P99Latency)

	successRate := float64(metrics.SuccessfulReqs) / float64(metrics.TotalRequests)
	if successRate < 0.95 {
		t.Errorf("Success rate too low: %.2f%%", successRate*100)
	}
}

// calculateMetrics computes performance metrics from latency data
func calculateMetrics(latencies []time.Duration, totalDuration time.Duration, totalRequests int) LoadTestMetrics {
	if len(latencies) == 0 {
		return LoadTestMetrics{}
	}

	sorted := make([]time.Duration, len(latencies))
	copy(sorted, latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}

	p95Index := int(float64(len(sorted)) * 0.95)
	p99Index := int(float64(len(sorted)) * 0.99)

	return LoadTestMetrics{
		TotalRequests:  int64(totalRequests),
		TotalDuration:  totalDuration,
		MinLatency:     sorted[0],
		MaxLatency:     sorted[len(sorted)-1],
		AvgLatency:     sum / time.Duration(len(latencies)),
		P95Latency:     sorted[p95Index],
		P99Latency:     sorted[p99Index],
		RequestsPerSec: float64(totalRequests) / totalDuration.Seconds(),
	}
}
