package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/acff/debt-engine/internal/domain"
)

// ReportCache keeps portfolio reports warm between mutations. Caching is
// best effort: a broken cache degrades to recomputing, never to failing
// the request.
type ReportCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.PortfolioReport, bool)
	Set(ctx context.Context, report *domain.PortfolioReport)
	Invalidate(ctx context.Context, userID uuid.UUID)
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewReportCache(client *redis.Client, ttl time.Duration) ReportCache {
	return &redisReportCache{client: client, ttl: ttl}
}

func reportKey(userID uuid.UUID) string {
	return "portfolio:" + userID.String()
}

func (c *redisReportCache) Get(ctx context.Context, userID uuid.UUID) (*domain.PortfolioReport, bool) {
	data, err := c.client.Get(ctx, reportKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("report cache read failed for user %s: %v", userID, err)
		}
		return nil, false
	}

	var report domain.PortfolioReport
	if err := json.Unmarshal(data, &report); err != nil {
		log.Printf("report cache entry for user %s is corrupt: %v", userID, err)
		return nil, false
	}

	return &report, true
}

func (c *redisReportCache) Set(ctx context.Context, report *domain.PortfolioReport) {
	data, err := json.Marshal(report)
	if err != nil {
		log.Printf("report cache encode failed for user %s: %v", report.UserID, err)
		return
	}

	if err := c.client.Set(ctx, reportKey(report.UserID), data, c.ttl).Err(); err != nil {
		log.Printf("report cache write failed for user %s: %v", report.UserID, err)
	}
}

func (c *redisReportCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if err := c.client.Del(ctx, reportKey(userID)).Err(); err != nil {
		log.Printf("report cache invalidation failed for user %s: %v", userID, err)
	}
}
