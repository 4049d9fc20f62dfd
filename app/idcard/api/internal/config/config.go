/**
 * @projectName: idcard-verify
 * @package: config
 * @className: Config
 * @description: IDCard API 服务配置定义
 * @version: 1.0
 */

package config

import (
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/rest"
)

// Config IDCard API 服务配置
type Config struct {
	rest.RestConf

	// 外部地址码数据文件，留空使用内嵌快照
	AreaCodeFile string `json:",optional"`

	// 批量校验配置
	Batch BatchConfig

	// 批量校验的分布式配额（可选）
	BatchRedis redis.RedisConf `json:",optional"`
	BatchLimit BatchLimitConfig

	// CORS 跨域配置
	Cors CorsConfig

	// 限流配置
	RateLimit RateLimitConfig
}

// BatchConfig 批量校验配置
type BatchConfig struct {
	MaxSize int `json:",default=100"`
	Workers int `json:",default=8"`
}

// BatchLimitConfig 批量令牌桶配置，单位为号码个数
type BatchLimitConfig struct {
	Rate  int `json:",default=500"`
	Burst int `json:",default=1000"`
}

// CorsConfig CORS 跨域配置
type CorsConfig struct {
	AllowOrigins []string `json:",optional"`
	AllowMethods []string `json:",optional"`
	AllowHeaders []string `json:",optional"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Rate    int `json:",default=1000"`
	Burst   int `json:",default=2000"`
	IPRate  int `json:",default=20"`
	IPBurst int `json:",default=40"`
	// 单 IP 令牌桶的数量上限，超出后淘汰最久未访问的桶
	MaxIPs int `json:",default=100000"`
	// 部署在可信反向代理之后时开启，按 X-Forwarded-For 最后一跳识别客户端
	TrustProxy bool `json:",optional"`
}

// BatchRedisEnabled 是否配置了批量配额 Redis
func (c Config) BatchRedisEnabled() bool {
	return c.BatchRedis.Host != ""
}
