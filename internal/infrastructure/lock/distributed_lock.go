package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ============================================================================
// 分布式锁实现
// ============================================================================
//
// 加锁：SET key value NX EX timeout
//   - NX: 只有 key 不存在时才设置（保证互斥）
//   - EX: 设置过期时间（防止死锁）
//   - value: 锁持有者标识（释放时验证，防止误删别人的锁）
//
// 释放锁：Lua 脚本先比较 value 再删除，两步在服务端原子执行
//
// ============================================================================

var ErrLockFailed = errors.New("获取分布式锁失败")

const unlockScript = `
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`

// DistributedLock 分布式锁
type DistributedLock struct {
	client     *redis.Client
	key        string        // 锁的 key
	value      string        // 锁的 value（用于验证锁的持有者）
	expiration time.Duration // 锁的过期时间
}

// NewDistributedLock 创建分布式锁
func NewDistributedLock(client *redis.Client, key, value string, expiration time.Duration) *DistributedLock {
	return &DistributedLock{
		client:     client,
		key:        key,
		value:      value,
		expiration: expiration,
	}
}

// TryLock 尝试获取锁（非阻塞）
func (l *DistributedLock) TryLock(ctx context.Context) (bool, error) {
	return l.client.SetNX(ctx, l.key, l.value, l.expiration).Result()
}

// Lock 阻塞式获取锁（带重试）
func (l *DistributedLock) Lock(ctx context.Context, retryInterval time.Duration, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		success, err := l.TryLock(ctx)
		if err != nil {
			return err
		}
		if success {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryInterval):
		}
	}
	return ErrLockFailed
}

// Unlock 释放锁，只删除自己持有的锁
func (l *DistributedLock) Unlock(ctx context.Context) error {
	_, err := l.client.Eval(ctx, unlockScript, []string{l.key}, l.value).Result()
	return err
}

// ============================================================================
// 按订单维度的支付初始化锁
// ============================================================================

const retryInterval = 100 * time.Millisecond

// OrderLocker 串行化同一订单的支付初始化请求，不同订单互不影响
type OrderLocker struct {
	client     *redis.Client
	expiration time.Duration
}

func NewOrderLocker(client *redis.Client, expiration time.Duration) *OrderLocker {
	return &OrderLocker{client: client, expiration: expiration}
}

func OrderLockKey(orderID int64) string {
	return fmt.Sprintf("payment:init:lock:order:%d", orderID)
}

// Acquire 获取订单锁，返回的 release 必须调用
func (o *OrderLocker) Acquire(ctx context.Context, orderID int64) (func(), error) {
	l := NewDistributedLock(o.client, OrderLockKey(orderID), uuid.NewString(), o.expiration)

	maxRetries := int(o.expiration / retryInterval)
	if maxRetries < 1 {
		maxRetries = 1
	}
	if err := l.Lock(ctx, retryInterval, maxRetries); err != nil {
		return nil, err
	}

	return func() {
		// 请求上下文可能已取消，释放锁使用独立的短超时
		unlockCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = l.Unlock(unlockCtx)
	}, nil
}
