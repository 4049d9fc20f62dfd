// ============================================================================
// 服务上下文（Service Context）
// ============================================================================
//
// 功能说明：
//   ServiceContext 在启动时一次性初始化：
//   - 身份证校验器（内嵌地址码或外部数据文件）
//   - 指标收集器
//   - 中间件实例
//   - 批量校验的分布式令牌桶（可选，依赖 Redis）
//
// ============================================================================

package svc

import (
	"github.com/jealyn/idcard-verify/app/idcard/api/internal/config"
	"github.com/jealyn/idcard-verify/app/idcard/api/internal/metrics"
	"github.com/jealyn/idcard-verify/app/idcard/api/internal/middleware"
	"github.com/jealyn/idcard-verify/common/idcard"

	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/limit"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

const (
	defaultBatchMaxSize = 100
	defaultBatchWorkers = 8

	batchLimiterKey = "idcard:batch:limiter"
)

// ServiceContext IDCard API 服务上下文
type ServiceContext struct {
	Config config.Config

	// 身份证校验器（只读，并发安全）
	Validator *idcard.Validator
	Metrics   *metrics.Collector

	// 批量配额，未配置 BatchRedis 时为 nil
	BatchLimiter *limit.TokenLimiter

	// ==================== 中间件 ====================
	CorsMiddleware      *middleware.CorsMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
	RequestIDMiddleware *middleware.RequestIDMiddleware
}

// NewServiceContext 创建服务上下文
func NewServiceContext(c config.Config) (*ServiceContext, error) {
	if c.Batch.MaxSize <= 0 {
		c.Batch.MaxSize = defaultBatchMaxSize
	}
	if c.Batch.Workers <= 0 {
		c.Batch.Workers = defaultBatchWorkers
	}

	// 1. 地址码：优先使用外部数据文件
	areas, err := loadAreaRegistry(c.AreaCodeFile)
	if err != nil {
		return nil, err
	}

	// 2. 批量配额
	var batchLimiter *limit.TokenLimiter
	if c.BatchRedisEnabled() {
		rds, err := redis.NewRedis(c.BatchRedis)
		if err != nil {
			return nil, errors.Wrap(err, "初始化批量配额 Redis 失败")
		}
		batchLimiter = limit.NewTokenLimiter(c.BatchLimit.Rate, c.BatchLimit.Burst, rds, batchLimiterKey)
		logx.Infof("批量配额已启用: rate=%d, burst=%d", c.BatchLimit.Rate, c.BatchLimit.Burst)
	}

	// 3. 限流
	rateLimit, err := middleware.NewRateLimitMiddleware(c.RateLimit)
	if err != nil {
		return nil, err
	}

	return &ServiceContext{
		Config:       c,
		Validator:    idcard.NewValidator(idcard.WithAreaRegistry(areas)),
		Metrics:      metrics.NewCollector("idcard"),
		BatchLimiter: batchLimiter,

		CorsMiddleware: middleware.NewCorsMiddleware(
			c.Cors.AllowOrigins,
			c.Cors.AllowMethods,
			c.Cors.AllowHeaders,
		),
		RateLimitMiddleware: rateLimit,
		RequestIDMiddleware: middleware.NewRequestIDMiddleware(),
	}, nil
}

// MustNewServiceContext 创建服务上下文，失败时退出进程
func MustNewServiceContext(c config.Config) *ServiceContext {
	ctx, err := NewServiceContext(c)
	logx.Must(err)
	return ctx
}

// loadAreaRegistry 加载地址码登记表
func loadAreaRegistry(path string) (*idcard.AreaRegistry, error) {
	if path == "" {
		areas := idcard.DefaultAreaRegistry()
		logx.Infof("使用内嵌地址码快照: count=%d", areas.Len())
		return areas, nil
	}

	areas, err := idcard.LoadAreaRegistryFile(path)
	if err != nil {
		return nil, err
	}
	logx.Infof("已加载外部地址码: file=%s, count=%d", path, areas.Len())
	return areas, nil
}
