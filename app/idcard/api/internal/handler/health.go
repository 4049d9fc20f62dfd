// ============================================================================
// 健康检查与服务信息
// ============================================================================

package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/jealyn/idcard-verify/app/idcard/api/internal/svc"
	"github.com/jealyn/idcard-verify/common/response"
)

var startTime = time.Now()

// HealthHandler 健康检查接口
// GET /health
// 用途：Kubernetes 探针、负载均衡健康检查
func HealthHandler(ctx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"uptime":    time.Since(startTime).String(),
		})
	}
}

// IndexHandler 服务信息接口
// GET /
func IndexHandler(ctx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]interface{}{
			"service":    ctx.Config.Name,
			"version":    "1.0.0",
			"go_version": runtime.Version(),
			"area_codes": ctx.Validator.Areas().Len(),
			"batch_max":  ctx.Config.Batch.MaxSize,
			"endpoints": map[string]string{
				"health":  "GET /health",
				"metrics": "GET /metrics",
				"verify":  "POST /api/v1/idcard/verify",
				"batch":   "POST /api/v1/idcard/verify/batch",
				"area":    "GET /api/v1/idcard/areas/:code",
			},
		})
	}
}

// MetricsHandler Prometheus 指标
// GET /metrics
func MetricsHandler(ctx *svc.ServiceContext) http.HandlerFunc {
	return ctx.Metrics.Handler().ServeHTTP
}
