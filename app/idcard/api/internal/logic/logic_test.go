package logic

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jealyn/idcard-verify/app/idcard/api/internal/config"
	"github.com/jealyn/idcard-verify/app/idcard/api/internal/svc"
	"github.com/jealyn/idcard-verify/app/idcard/api/internal/types"
	"github.com/jealyn/idcard-verify/common/errorx"
	"github.com/jealyn/idcard-verify/common/utils/validate"

	"github.com/alicebob/miniredis/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

type LogicSuite struct {
	suite.Suite
	svcCtx *svc.ServiceContext
	ctx    context.Context
}

func TestLogicSuite(t *testing.T) {
	suite.Run(t, new(LogicSuite))
}

func (s *LogicSuite) SetupTest() {
	c := config.Config{}
	c.Batch.MaxSize = 5
	c.Batch.Workers = 2

	svcCtx, err := svc.NewServiceContext(c)
	s.Require().NoError(err)
	s.svcCtx = svcCtx
	s.ctx = context.Background()
}

func (s *LogicSuite) TestVerifyValid() {
	resp, err := NewVerifyLogic(s.ctx, s.svcCtx).Verify(&types.VerifyReq{IdCard: " 11010519491231002x "})
	s.Require().NoError(err)
	s.True(resp.Valid)
	s.Empty(resp.Reason)
	s.Require().NotNil(resp.Detail)
	s.Equal("110105", resp.Detail.AreaCode)
	s.Equal("朝阳区", resp.Detail.AreaName)
	s.Equal("1949-12-31", resp.Detail.Birthday)
}

func (s *LogicSuite) TestVerifyInvalid() {
	cases := map[string]string{
		"":                   "format",
		"123456789012345678": "format",
		"999999199001011238": "area_code",
		"11010520210229001X": "birth_date",
		"110105194912310020": "check_code",
	}
	for card, reason := range cases {
		resp, err := NewVerifyLogic(s.ctx, s.svcCtx).Verify(&types.VerifyReq{IdCard: card})
		s.Require().NoError(err)
		s.False(resp.Valid, card)
		s.Equal(reason, resp.Reason, card)
		s.Nil(resp.Detail)
	}
}

func (s *LogicSuite) TestBatchVerify() {
	req := &types.BatchVerifyReq{IdCards: []string{
		"11010519491231002X",
		"123456789012345678",
		"440524188001010014",
		"",
		"110105194912310020",
	}}
	resp, err := NewBatchVerifyLogic(s.ctx, s.svcCtx).BatchVerify(req)
	s.Require().NoError(err)
	s.Equal(5, resp.Total)
	s.Equal(2, resp.ValidCount)
	s.Require().Len(resp.Results, 5)

	for i, item := range resp.Results {
		s.Equal(i, item.Index)
	}
	s.Equal("110105********002X", resp.Results[0].IdCard)
	s.True(resp.Results[0].Valid)
	s.Equal("format", resp.Results[1].Reason)
	s.True(resp.Results[2].Valid)
	s.Equal("format", resp.Results[3].Reason)
	s.Equal("check_code", resp.Results[4].Reason)
}

func (s *LogicSuite) TestBatchVerifyLimits() {
	_, err := NewBatchVerifyLogic(s.ctx, s.svcCtx).BatchVerify(&types.BatchVerifyReq{})
	s.True(errorx.Is(err, errorx.CodeIDCardBatchEmpty))

	_, err = NewBatchVerifyLogic(s.ctx, s.svcCtx).BatchVerify(&types.BatchVerifyReq{IdCards: []string{}})
	s.True(errorx.Is(err, errorx.CodeIDCardBatchEmpty))

	cards := make([]string, 6)
	for i := range cards {
		cards[i] = "11010519491231002X"
	}
	_, err = NewBatchVerifyLogic(s.ctx, s.svcCtx).BatchVerify(&types.BatchVerifyReq{IdCards: cards})
	s.True(errorx.Is(err, errorx.CodeIDCardBatchTooLarge))
}

func (s *LogicSuite) TestBatchVerifyCancelled() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBatchVerifyLogic(ctx, s.svcCtx).BatchVerify(&types.BatchVerifyReq{
		IdCards: []string{"11010519491231002X", "440524188001010014"},
	})
	s.True(errorx.Is(err, errorx.CodeServiceUnavailable))
}

func (s *LogicSuite) TestGetArea() {
	resp, err := NewGetAreaLogic(s.ctx, s.svcCtx).GetArea(&types.GetAreaReq{Code: "310115"})
	s.Require().NoError(err)
	s.Equal("浦东新区", resp.Name)

	_, err = NewGetAreaLogic(s.ctx, s.svcCtx).GetArea(&types.GetAreaReq{Code: "999999"})
	s.True(errorx.Is(err, errorx.CodeAreaNotFound))

	for _, bad := range []string{"", "11010", "1101050", "-11010", "11010a"} {
		_, err = NewGetAreaLogic(s.ctx, s.svcCtx).GetArea(&types.GetAreaReq{Code: bad})
		s.True(errorx.Is(err, errorx.CodeAreaCodeInvalid), bad)
	}
}

func TestBatchParamError(t *testing.T) {
	type otherReq struct {
		Mode string `validate:"oneof=fast full"`
	}

	err := batchParamError(validate.Struct(otherReq{Mode: "slow"}))
	assert.True(t, errorx.Is(err, errorx.CodeInvalidParams))
	assert.Contains(t, err.Error(), "Mode")

	err = batchParamError(validate.Struct(&types.BatchVerifyReq{}))
	assert.True(t, errorx.Is(err, errorx.CodeIDCardBatchEmpty))

	err = batchParamError(errors.New("boom"))
	assert.True(t, errorx.Is(err, errorx.CodeInvalidParams))
}

func TestBatchVerifyWithRedisQuota(t *testing.T) {
	mr := miniredis.RunT(t)

	c := config.Config{}
	c.Batch.MaxSize = 10
	c.Batch.Workers = 4
	c.BatchRedis = redis.RedisConf{Host: mr.Addr(), Type: redis.NodeType}
	c.BatchLimit.Rate = 1
	c.BatchLimit.Burst = 3

	svcCtx, err := svc.NewServiceContext(c)
	require.NoError(t, err)
	require.NotNil(t, svcCtx.BatchLimiter)

	req := &types.BatchVerifyReq{IdCards: []string{
		"11010519491231002X", "440524188001010014", "110105199001011232",
	}}
	resp, err := NewBatchVerifyLogic(context.Background(), svcCtx).BatchVerify(req)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.ValidCount)

	_, err = NewBatchVerifyLogic(context.Background(), svcCtx).BatchVerify(req)
	assert.True(t, errorx.Is(err, errorx.CodeTooManyRequests))
}

func TestServiceContextWithAreaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "areas.txt")
	require.NoError(t, os.WriteFile(path, []byte("999999 测试区\n"), 0o644))

	c := config.Config{AreaCodeFile: path}
	svcCtx, err := svc.NewServiceContext(c)
	require.NoError(t, err)

	resp, err := NewVerifyLogic(context.Background(), svcCtx).Verify(&types.VerifyReq{IdCard: "999999199001011238"})
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Equal(t, "测试区", resp.Detail.AreaName)

	// 外部数据替换内嵌快照
	resp, err = NewVerifyLogic(context.Background(), svcCtx).Verify(&types.VerifyReq{IdCard: "11010519491231002X"})
	require.NoError(t, err)
	assert.Equal(t, "area_code", resp.Reason)

	_, err = svc.NewServiceContext(config.Config{AreaCodeFile: fmt.Sprintf("%s.missing", path)})
	assert.Error(t, err)
}
