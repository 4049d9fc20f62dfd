// ============================================================================
// 身份证号码校验服务 API 入口
// ============================================================================
//
// 说明：
//   idcard-api 对外提供 18 位居民身份证号码校验：
//   - 单个号码校验（注册表单等场景）
//   - 批量校验（数据清洗场景）
//   - 地址码查询
//
// 启动命令：
//   go run idcard.go -f etc/idcard-api.yaml
//
// ============================================================================

package main

import (
	"flag"
	"fmt"
	"net/http"

	"github.com/jealyn/idcard-verify/app/idcard/api/internal/config"
	"github.com/jealyn/idcard-verify/app/idcard/api/internal/handler"
	"github.com/jealyn/idcard-verify/app/idcard/api/internal/svc"
	"github.com/jealyn/idcard-verify/common/response"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/rest"
)

var configFile = flag.String("f", "etc/idcard-api.yaml", "配置文件路径")

func main() {
	flag.Parse()

	// 让 httpx.ErrorCtx 使用统一的 {"code": xxx, "message": "xxx"} 格式
	response.SetupGlobalErrorHandler()

	// 加载配置
	var c config.Config
	conf.MustLoad(*configFile, &c)

	// 创建 HTTP 服务器
	server := rest.MustNewServer(c.RestConf, rest.WithNotFoundHandler(notFoundHandler()))
	defer server.Stop()

	// 创建服务上下文（地址码、指标、中间件）
	ctx := svc.MustNewServiceContext(c)

	// 注册路由
	handler.RegisterHandlers(server, ctx)

	fmt.Printf("Starting idcard-api server at %s:%d...\n", c.Host, c.Port)
	server.Start()
}

// notFoundHandler 404 处理
func notFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotFound, "接口不存在")
	}
}
