package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/leadtrackhq/mini-crm/backend/internal/domain"
)

const dashboardCacheKey = "dashboard:stats"

// GetDashboardStats serves the aggregation from a short-lived Redis cache
// when possible; any cache failure falls through to the database.
func (h *Handler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	if h.redisClient != nil {
		ctx, cancel := h.redisContext(r)
		defer cancel()

		cached, err := h.redisClient.Get(ctx, dashboardCacheKey).Result()
		if err == nil {
			stats := &domain.DashboardStats{}
			if err := json.Unmarshal([]byte(cached), stats); err == nil {
				h.writeJSON(w, r, http.StatusOK, stats)
				return
			}
		} else if err != redis.Nil {
			slog.Warn("unable to read dashboard cache", "error", err)
		}
	}

	stats, err := h.store.GetDashboardStats()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if h.redisClient != nil {
		ctx, cancel := h.redisContext(r)
		defer cancel()

		if body, err := json.Marshal(stats); err == nil {
			ttl := time.Duration(h.config.Redis.DashboardCacheTTL) * time.Second
			if err := h.redisClient.Set(ctx, dashboardCacheKey, body, ttl).Err(); err != nil {
				slog.Warn("unable to write dashboard cache", "error", err)
			}
		}
	}

	h.writeJSON(w, r, http.StatusOK, stats)
}

// invalidateDashboardCache drops the cached aggregation after any lead
// mutation so the dashboard never serves stale counts past the TTL window.
func (h *Handler) invalidateDashboardCache(r *http.Request) {
	if h.redisClient == nil {
		return
	}

	ctx, cancel := h.redisContext(r)
	defer cancel()

	if err := h.redisClient.Del(ctx, dashboardCacheKey).Err(); err != nil {
		slog.Warn("unable to invalidate dashboard cache", "error", err)
	}
}

func (h *Handler) redisContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
}
