package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jealyn/idcard-verify/app/idcard/api/internal/config"
	"github.com/jealyn/idcard-verify/common/errorx"
	"github.com/jealyn/idcard-verify/common/response"

	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/collection"
	"github.com/zeromicro/go-zero/core/logx"
)

// tokenBucket 令牌桶，允许突发流量
type tokenBucket struct {
	rate       float64 // 每秒生成令牌数
	burst      float64 // 桶容量
	tokens     float64
	lastUpdate time.Time
	now        func() time.Time
	mu         sync.Mutex
}

func newTokenBucket(rate float64, burst int, now func() time.Time) *tokenBucket {
	return &tokenBucket{
		rate:       rate,
		burst:      float64(burst),
		tokens:     float64(burst),
		lastUpdate: now(),
		now:        now,
	}
}

// allow 取一个令牌
func (b *tokenBucket) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.tokens += now.Sub(b.lastUpdate).Seconds() * b.rate
	b.lastUpdate = now
	if b.tokens > b.burst {
		b.tokens = b.burst
	}

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

const (
	// ipBucketExpire 单 IP 桶的存活时间，过期后按满桶重建
	ipBucketExpire = 10 * time.Minute
	// defaultMaxIPBuckets 单 IP 桶数量上限，超出按 LRU 淘汰
	defaultMaxIPBuckets = 100000
)

// ipBuckets 按客户端 IP 分桶，桶存放在带过期和容量上限的缓存里
type ipBuckets struct {
	cache *collection.Cache
	rate  float64
	burst int
	now   func() time.Time
}

func newIPBuckets(rate float64, burst, limit int, now func() time.Time) (*ipBuckets, error) {
	if limit <= 0 {
		limit = defaultMaxIPBuckets
	}
	cache, err := collection.NewCache(ipBucketExpire,
		collection.WithName("ratelimit-ip"),
		collection.WithLimit(limit))
	if err != nil {
		return nil, errors.Wrap(err, "创建 IP 限流缓存失败")
	}

	return &ipBuckets{
		cache: cache,
		rate:  rate,
		burst: burst,
		now:   now,
	}, nil
}

func (i *ipBuckets) get(ip string) *tokenBucket {
	val, err := i.cache.Take(ip, func() (any, error) {
		return newTokenBucket(i.rate, i.burst, i.now), nil
	})
	if err != nil {
		// fetch 不会返回错误
		return newTokenBucket(i.rate, i.burst, i.now)
	}
	return val.(*tokenBucket)
}

// RateLimitMiddleware 限流中间件：先全局，再单 IP
type RateLimitMiddleware struct {
	global *tokenBucket
	perIP  *ipBuckets
	// 仅在服务部署于可信反向代理之后时开启
	trustProxy bool
}

// NewRateLimitMiddleware 创建限流中间件
func NewRateLimitMiddleware(c config.RateLimitConfig) (*RateLimitMiddleware, error) {
	return newRateLimitMiddleware(c, time.Now)
}

func newRateLimitMiddleware(c config.RateLimitConfig, now func() time.Time) (*RateLimitMiddleware, error) {
	perIP, err := newIPBuckets(float64(c.IPRate), c.IPBurst, c.MaxIPs, now)
	if err != nil {
		return nil, err
	}

	return &RateLimitMiddleware{
		global:     newTokenBucket(float64(c.Rate), c.Burst, now),
		perIP:      perIP,
		trustProxy: c.TrustProxy,
	}, nil
}

// Handle 中间件处理函数
func (m *RateLimitMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.global.allow() {
			logx.WithContext(r.Context()).Slowf("[RateLimit] 全局限流触发: path=%s", r.URL.Path)
			response.Error(w, http.StatusTooManyRequests, "服务繁忙，请稍后重试")
			return
		}

		ip := clientIP(r, m.trustProxy)
		if !m.perIP.get(ip).allow() {
			logx.WithContext(r.Context()).Slowf("[RateLimit] IP限流触发: ip=%s, path=%s", ip, r.URL.Path)
			response.Error(w, http.StatusTooManyRequests, errorx.GetMessage(errorx.CodeTooManyRequests))
			return
		}

		next(w, r)
	}
}

// clientIP 获取客户端IP
//
// 默认只信任 TCP 对端地址：X-Forwarded-For 与 X-Real-IP 都可由客户端伪造，
// 直接采信会让单 IP 限流形同虚设。trustProxy 开启时，服务前面必须有一层可信代理，
// 此时取 X-Forwarded-For 最后一跳（由该代理追加），其次 X-Real-IP。
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			hops := strings.Split(xff, ",")
			if last := strings.TrimSpace(hops[len(hops)-1]); last != "" {
				return last
			}
		}
		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
			return xri
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
