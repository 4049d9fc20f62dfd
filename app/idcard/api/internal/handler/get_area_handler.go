package handler

import (
	"net/http"

	"github.com/jealyn/idcard-verify/app/idcard/api/internal/logic"
	"github.com/jealyn/idcard-verify/app/idcard/api/internal/svc"
	"github.com/jealyn/idcard-verify/app/idcard/api/internal/types"
	"github.com/jealyn/idcard-verify/common/errorx"
	"github.com/jealyn/idcard-verify/common/response"

	"github.com/zeromicro/go-zero/rest/httpx"
)

// GetAreaHandler 查询地址码
// GET /api/v1/idcard/areas/:code
func GetAreaHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.GetAreaReq
		if err := httpx.Parse(r, &req); err != nil {
			response.Fail(w, errorx.ErrAreaCodeInvalid())
			return
		}

		l := logic.NewGetAreaLogic(r.Context(), svcCtx)
		resp, err := l.GetArea(&req)
		if err != nil {
			response.Fail(w, err)
		} else {
			response.Success(w, resp)
		}
	}
}
