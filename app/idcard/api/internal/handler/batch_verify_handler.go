package handler

import (
	"net/http"

	"github.com/jealyn/idcard-verify/app/idcard/api/internal/logic"
	"github.com/jealyn/idcard-verify/app/idcard/api/internal/svc"
	"github.com/jealyn/idcard-verify/app/idcard/api/internal/types"
	"github.com/jealyn/idcard-verify/common/errorx"
	"github.com/jealyn/idcard-verify/common/response"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"
)

// BatchVerifyHandler 批量校验身份证号码
// POST /api/v1/idcard/verify/batch
func BatchVerifyHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.BatchVerifyReq
		if err := httpx.Parse(r, &req); err != nil {
			logx.WithContext(r.Context()).Errorf("[BatchVerifyHandler] 参数解析失败: %v", err)
			response.Fail(w, errorx.ErrInvalidParams("参数解析失败"))
			return
		}

		l := logic.NewBatchVerifyLogic(r.Context(), svcCtx)
		resp, err := l.BatchVerify(&req)
		if err != nil {
			response.Fail(w, err)
		} else {
			response.Success(w, resp)
		}
	}
}
