package health

import (
	"context"
	"time"

	"mfin-backend/internal/cache"
	"mfin-backend/internal/store"
)

type HealthChecker struct {
	store store.CollectionStore
}

type HealthStatus struct {
	Status string      `json:"status"`
	Store  StoreHealth `json:"store"`
}

type StoreHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

// DetailedStatus adds the optional response cache to the basic report
type DetailedStatus struct {
	Status string      `json:"status"`
	Store  StoreHealth `json:"store"`
	Cache  string      `json:"cache"`
	Uptime string      `json:"uptime"`
}

var startedAt = time.Now()

func NewHealthChecker(s store.CollectionStore) *HealthChecker {
	return &HealthChecker{store: s}
}

func (h *HealthChecker) CheckBasic() HealthStatus {
	storeHealth := h.checkStore()

	status := "healthy"
	if storeHealth.Status != "healthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status: status,
		Store:  storeHealth,
	}
}

func (h *HealthChecker) CheckDetailed() DetailedStatus {
	basic := h.CheckBasic()

	cacheStatus := "disabled"
	if cache.IsHealthy() {
		cacheStatus = "healthy"
	}

	return DetailedStatus{
		Status: basic.Status,
		Store:  basic.Store,
		Cache:  cacheStatus,
		Uptime: time.Since(startedAt).Round(time.Second).String(),
	}
}

func (h *HealthChecker) checkStore() StoreHealth {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.store.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return StoreHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
		}
	}

	return StoreHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}
