package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReportStream carries report-generation events for downstream consumers
const ReportStream = "reports.generated.nfl"

// ReportEvent announces a freshly generated report run
type ReportEvent struct {
	RunID     string   `json:"run_id"`
	Seasons   []int    `json:"seasons"`
	Artifacts []string `json:"artifacts"`
}

// RedisStreamPublisher publishes events to Redis streams
type RedisStreamPublisher struct {
	client *redis.Client
}

// NewRedisStreamPublisher creates a new Redis stream publisher from existing client
func NewRedisStreamPublisher(client *redis.Client) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client: client,
	}
}

// PublishReportGenerated announces a completed analysis run on the stream.
func (rsp *RedisStreamPublisher) PublishReportGenerated(ctx context.Context, event ReportEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return rsp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: ReportStream,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
