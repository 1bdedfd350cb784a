package health

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/tair/library-management/api-gateway/config"
	"github.com/tair/library-management/pkg/logger"
)

// InstanceHealth represents the health status of one service instance
type InstanceHealth struct {
	Service   string        `json:"service"`
	Status    string        `json:"status"` // healthy, unhealthy
	URL       string        `json:"url"`
	Latency   time.Duration `json:"latency_ms"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// GatewayHealth represents the overall gateway health
type GatewayHealth struct {
	Gateway   string           `json:"gateway"`
	Status    string           `json:"status"` // healthy, degraded, unhealthy
	Instances []InstanceHealth `json:"instances"`
	Uptime    time.Duration    `json:"uptime_seconds"`
}

// HealthChecker checks health of downstream service instances
type HealthChecker struct {
	config    *config.GatewayConfig
	client    *http.Client
	startTime time.Time
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(cfg *config.GatewayConfig) *HealthChecker {
	return &HealthChecker{
		config: cfg,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		startTime: time.Now(),
	}
}

// CheckInstance checks the health of a single service instance
func (h *HealthChecker) CheckInstance(ctx context.Context, serviceName, baseURL, healthPath string) InstanceHealth {
	start := time.Now()

	result := InstanceHealth{
		Service:   serviceName,
		URL:       baseURL,
		Timestamp: time.Now(),
	}

	req, err := http.NewRequestWithContext(ctx, "GET", baseURL+healthPath, nil)
	if err != nil {
		result.Status = "unhealthy"
		result.Error = fmt.Sprintf("Failed to create request: %v", err)
		result.Latency = time.Since(start)
		return result
	}

	resp, err := h.client.Do(req)
	if err != nil {
		result.Status = "unhealthy"
		result.Error = fmt.Sprintf("Failed to reach instance: %v", err)
		result.Latency = time.Since(start)
		return result
	}
	defer resp.Body.Close()

	result.Latency = time.Since(start)

	if resp.StatusCode == http.StatusOK {
		result.Status = "healthy"
	} else {
		result.Status = "unhealthy"
		result.Error = fmt.Sprintf("Unexpected status code: %d", resp.StatusCode)
	}

	return result
}

// CheckAllServices checks every instance of every downstream service
func (h *HealthChecker) CheckAllServices(ctx context.Context) GatewayHealth {
	var instances []InstanceHealth
	var wg sync.WaitGroup
	var mu sync.Mutex

	for name, svc := range h.config.Services {
		for _, baseURL := range svc.Instances {
			wg.Add(1)
			go func(service, url, healthPath string) {
				defer wg.Done()
				health := h.CheckInstance(ctx, service, url, healthPath)

				mu.Lock()
				instances = append(instances, health)
				mu.Unlock()

				if health.Status == "healthy" {
					logger.Logger.Debug().
						Str("service", service).
						Str("url", url).
						Dur("latency", health.Latency).
						Msg("Instance health check")
				} else {
					logger.Logger.Warn().
						Str("service", service).
						Str("url", url).
						Str("error", health.Error).
						Msg("Instance health check failed")
				}
			}(name, baseURL, svc.HealthCheck)
		}
	}

	wg.Wait()

	return GatewayHealth{
		Gateway:   "api-gateway",
		Status:    h.determineOverallStatus(instances),
		Instances: instances,
		Uptime:    time.Since(h.startTime),
	}
}

// determineOverallStatus determines the overall health status
func (h *HealthChecker) determineOverallStatus(instances []InstanceHealth) string {
	healthyCount := 0
	for _, inst := range instances {
		if inst.Status == "healthy" {
			healthyCount++
		}
	}

	if healthyCount == len(instances) {
		return "healthy"
	} else if healthyCount > 0 {
		return "degraded"
	}
	return "unhealthy"
}

// QuickCheck performs a quick health check (just the gateway itself)
func (h *HealthChecker) QuickCheck() map[string]interface{} {
	return map[string]interface{}{
		"status":    "healthy",
		"gateway":   "api-gateway",
		"uptime":    time.Since(h.startTime).Seconds(),
		"timestamp": time.Now(),
	}
}
