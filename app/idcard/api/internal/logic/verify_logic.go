/**
 * @projectName: idcard-verify
 * @package: logic
 * @className: VerifyLogic
 * @description: 单个身份证号码校验业务逻辑
 * @version: 1.0
 */

package logic

import (
	"context"
	"fmt"

	"github.com/jealyn/idcard-verify/app/idcard/api/internal/svc"
	"github.com/jealyn/idcard-verify/app/idcard/api/internal/types"
	"github.com/jealyn/idcard-verify/common/idcard"

	"github.com/zeromicro/go-zero/core/logx"
)

// VerifyLogic 单个号码校验逻辑处理器
type VerifyLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// NewVerifyLogic 创建单个号码校验逻辑实例
func NewVerifyLogic(ctx context.Context, svcCtx *svc.ServiceContext) *VerifyLogic {
	return &VerifyLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Verify 校验号码，号码不合法不是错误，只体现在 valid=false
func (l *VerifyLogic) Verify(req *types.VerifyReq) (resp *types.VerifyResp, err error) {
	number, checkErr := l.svcCtx.Validator.Parse(req.IdCard)
	reason := idcard.Reason(checkErr)
	l.svcCtx.Metrics.ObserveVerify(reason)

	if checkErr != nil {
		l.Infof("[Verify] 校验未通过: idCard=%s, reason=%s", idcard.Mask(req.IdCard), reason)
		return &types.VerifyResp{
			Valid:  false,
			Reason: reason,
		}, nil
	}

	return &types.VerifyResp{
		Valid: true,
		Detail: &types.IdCardDetail{
			AreaCode: fmt.Sprintf("%06d", number.AreaCode),
			AreaName: number.AreaName,
			Birthday: number.Birthday().Format("2006-01-02"),
		},
	}, nil
}
