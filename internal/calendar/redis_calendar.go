package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	redisKeyPrefix = "lunar:month:"
	redisTimeout   = 2 * time.Second
)

// NewRedisClient parses the URL, connects and pings before returning
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// RedisCalendar implements Calendar by sharing converted months through Redis.
// Redis failures are logged and the primary calendar answers instead.
type RedisCalendar struct {
	primary Calendar
	client  *redis.Client
	ttl     time.Duration
	logger  *zap.Logger
}

// NewRedisCalendar creates a new RedisCalendar
func NewRedisCalendar(primary Calendar, client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCalendar {
	return &RedisCalendar{
		primary: primary,
		client:  client,
		ttl:     ttl,
		logger:  logger,
	}
}

// GetMonthInfo returns lunar info for the entire month
func (rc *RedisCalendar) GetMonthInfo(year int, month time.Month) (*MonthInfo, error) {
	key := fmt.Sprintf("%s%d-%02d", redisKeyPrefix, year, month)

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	data, err := rc.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var monthInfo MonthInfo
		if err := json.Unmarshal(data, &monthInfo); err == nil {
			return &monthInfo, nil
		}
		rc.logger.Warn("Discarding corrupt cache entry", zap.String("key", key))
	case errors.Is(err, redis.Nil):
	default:
		rc.logger.Warn("Redis read failed, using primary calendar",
			zap.String("key", key),
			zap.Error(err))
	}

	monthInfo, err := rc.primary.GetMonthInfo(year, month)
	if err != nil {
		return nil, err
	}

	data, err = json.Marshal(monthInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to encode month info: %w", err)
	}
	if err := rc.client.Set(ctx, key, data, rc.ttl).Err(); err != nil {
		rc.logger.Warn("Redis write failed",
			zap.String("key", key),
			zap.Error(err))
	}

	return monthInfo, nil
}

// GetDayInfo returns lunar info for a specific day
func (rc *RedisCalendar) GetDayInfo(date time.Time) (*DayInfo, error) {
	monthInfo, err := rc.GetMonthInfo(date.Year(), date.Month())
	if err != nil {
		return nil, err
	}

	dayInfo, ok := findDay(monthInfo, date)
	if !ok {
		return nil, dayNotFound(date)
	}
	return dayInfo, nil
}
