package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// SetWithExpiration 设置键值对并设置过期时间
func SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return Rdb.Set(ctx, key, value, expiration).Err()
}

// GetValue 获取字符串类型的值
func GetValue(ctx context.Context, key string) (string, error) {
	value, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// Incr 自增一个计数器
func Incr(ctx context.Context, key string) (int64, error) {
	return Rdb.Incr(ctx, key).Result()
}

// GetInt64 获取整型计数值，键不存在时返回错误
func GetInt64(ctx context.Context, key string) (int64, error) {
	return Rdb.Get(ctx, key).Int64()
}

// SAdd 向集合添加成员
func SAdd(ctx context.Context, key string, members ...interface{}) error {
	return Rdb.SAdd(ctx, key, members...).Err()
}

// GetSet 获取集合全部成员
func GetSet(ctx context.Context, key string) ([]string, error) {
	value, err := Rdb.SMembers(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Rename 重命名一个键
func Rename(ctx context.Context, oldKey string, newKey string) error {
	return Rdb.Rename(ctx, oldKey, newKey).Err()
}

// DeleteKey 删除一个键
func DeleteKey(ctx context.Context, key string) error {
	return Rdb.Del(ctx, key).Err()
}

// GetRdbClient 获取redis客户端
func GetRdbClient() *redis.Client {
	return Rdb
}
