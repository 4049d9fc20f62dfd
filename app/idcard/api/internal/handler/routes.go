// ============================================================================
// 路由注册
// ============================================================================
//
// 中间件执行顺序：
//   CORS -> RequestID -> RateLimit -> Handler
//
// ============================================================================

package handler

import (
	"net/http"

	"github.com/jealyn/idcard-verify/app/idcard/api/internal/svc"

	"github.com/zeromicro/go-zero/rest"
)

// RegisterHandlers 注册所有路由
func RegisterHandlers(server *rest.Server, ctx *svc.ServiceContext) {
	// ==================== 全局中间件 ====================
	server.Use(ctx.CorsMiddleware.Handle)
	server.Use(ctx.RequestIDMiddleware.Handle)
	server.Use(ctx.RateLimitMiddleware.Handle)

	// ==================== 公开路由 ====================
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/health",
				Handler: HealthHandler(ctx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/",
				Handler: IndexHandler(ctx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/metrics",
				Handler: MetricsHandler(ctx),
			},
		},
	)

	// ==================== 身份证校验 ====================
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodPost,
				Path:    "/verify",
				Handler: VerifyHandler(ctx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/verify/batch",
				Handler: BatchVerifyHandler(ctx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/areas/:code",
				Handler: GetAreaHandler(ctx),
			},
		},
		rest.WithPrefix("/api/v1/idcard"),
	)
}
