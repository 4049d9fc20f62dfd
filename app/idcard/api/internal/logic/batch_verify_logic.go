/**
 * @projectName: idcard-verify
 * @package: logic
 * @className: BatchVerifyLogic
 * @description: 批量身份证号码校验（数据清洗场景）
 * @version: 1.0
 */

package logic

import (
	"context"
	"fmt"
	"time"

	"github.com/jealyn/idcard-verify/app/idcard/api/internal/svc"
	"github.com/jealyn/idcard-verify/app/idcard/api/internal/types"
	"github.com/jealyn/idcard-verify/common/errorx"
	"github.com/jealyn/idcard-verify/common/idcard"
	"github.com/jealyn/idcard-verify/common/utils/validate"

	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/sync/errgroup"
)

// BatchVerifyLogic 批量校验逻辑处理器
type BatchVerifyLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// NewBatchVerifyLogic 创建批量校验逻辑实例
func NewBatchVerifyLogic(ctx context.Context, svcCtx *svc.ServiceContext) *BatchVerifyLogic {
	return &BatchVerifyLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// BatchVerify 批量校验
// 流程: 1. 数量校验 → 2. 扣减配额 → 3. 并发校验，结果按请求顺序返回
func (l *BatchVerifyLogic) BatchVerify(req *types.BatchVerifyReq) (resp *types.BatchVerifyResp, err error) {
	total := len(req.IdCards)
	maxSize := l.svcCtx.Config.Batch.MaxSize

	// 1. 数量校验
	if err := validate.Struct(req); err != nil {
		return nil, batchParamError(err)
	}
	if total > maxSize {
		l.Infof("[BatchVerify] 数量超限: total=%d, max=%d", total, maxSize)
		return nil, errorx.ErrBatchTooLarge(maxSize)
	}

	// 2. 按号码个数扣减分布式令牌
	if l.svcCtx.BatchLimiter != nil &&
		!l.svcCtx.BatchLimiter.AllowNCtx(l.ctx, time.Now(), total) {
		l.Infof("[BatchVerify] 配额不足: total=%d", total)
		return nil, errorx.ErrTooManyRequests()
	}

	l.svcCtx.Metrics.ObserveBatch(total)

	// 3. 并发校验，每个 goroutine 只写自己的下标
	results := make([]types.BatchVerifyItem, total)
	g, gctx := errgroup.WithContext(l.ctx)
	g.SetLimit(l.svcCtx.Config.Batch.Workers)
	for i, card := range req.IdCards {
		i, card := i, card
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reason := idcard.Reason(l.svcCtx.Validator.Check(card))
			l.svcCtx.Metrics.ObserveVerify(reason)
			results[i] = types.BatchVerifyItem{
				Index:  i,
				IdCard: idcard.Mask(card),
				Valid:  reason == "",
				Reason: reason,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		l.Errorf("[BatchVerify] 请求已取消: total=%d, err=%v", total, err)
		return nil, errorx.Wrap(errorx.CodeServiceUnavailable, err)
	}

	validCount := 0
	for _, item := range results {
		if item.Valid {
			validCount++
		}
	}

	l.Infof("[BatchVerify] 完成: total=%d, valid=%d", total, validCount)

	return &types.BatchVerifyResp{
		Total:      total,
		ValidCount: validCount,
		Results:    results,
	}, nil
}

// batchParamError 把标签校验失败转换成业务错误
func batchParamError(err error) error {
	field, tag, ok := validate.FirstError(err)
	if !ok {
		return errorx.ErrInvalidParams("")
	}
	if field == "IdCards" && tag == "min" {
		return errorx.ErrBatchEmpty()
	}
	return errorx.ErrInvalidParams(fmt.Sprintf("参数 %s 不满足 %s 规则", field, tag))
}
