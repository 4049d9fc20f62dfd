package logic

import (
	"context"
	"strconv"

	"github.com/jealyn/idcard-verify/app/idcard/api/internal/svc"
	"github.com/jealyn/idcard-verify/app/idcard/api/internal/types"
	"github.com/jealyn/idcard-verify/common/errorx"
	"github.com/jealyn/idcard-verify/common/utils/validate"

	"github.com/zeromicro/go-zero/core/logx"
)

// GetAreaLogic 地址码查询逻辑处理器
type GetAreaLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// NewGetAreaLogic 创建地址码查询逻辑实例
func NewGetAreaLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetAreaLogic {
	return &GetAreaLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// GetArea 查询地址码对应的行政区划名称
func (l *GetAreaLogic) GetArea(req *types.GetAreaReq) (resp *types.GetAreaResp, err error) {
	if err := validate.Struct(req); err != nil {
		_, tag, _ := validate.FirstError(err)
		l.Infof("[GetArea] 地址码格式错误: code=%q, rule=%s", req.Code, tag)
		return nil, errorx.ErrAreaCodeInvalid()
	}

	code, _ := strconv.Atoi(req.Code)
	name, ok := l.svcCtx.Validator.Areas().Name(code)
	if !ok {
		l.Infof("[GetArea] 地址码不存在: code=%s", req.Code)
		return nil, errorx.ErrAreaNotFound()
	}

	return &types.GetAreaResp{
		Code: req.Code,
		Name: name,
	}, nil
}
