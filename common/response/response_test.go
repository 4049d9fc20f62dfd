package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jealyn/idcard-verify/common/errorx"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]bool{"valid": true})

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, errorx.CodeSuccess, resp.Code)
	assert.Equal(t, map[string]interface{}{"valid": true}, resp.Data)
}

func TestFail(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"invalid params", errorx.ErrInvalidParams(""), http.StatusBadRequest, errorx.CodeInvalidParams},
		{"too many requests", errorx.ErrTooManyRequests(), http.StatusTooManyRequests, errorx.CodeTooManyRequests},
		{"business error", errorx.ErrAreaNotFound(), http.StatusOK, errorx.CodeAreaNotFound},
		{"plain error hidden", errors.New("boom"), http.StatusOK, errorx.CodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Fail(rec, tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decode(t, rec).Code)
		})
	}
}

func TestFailWithCodeAndError(t *testing.T) {
	rec := httptest.NewRecorder()
	FailWithCode(rec, errorx.CodeIDCardBatchEmpty)
	resp := decode(t, rec)
	assert.Equal(t, errorx.CodeIDCardBatchEmpty, resp.Code)
	assert.Equal(t, errorx.GetMessage(errorx.CodeIDCardBatchEmpty), resp.Message)

	rec = httptest.NewRecorder()
	Error(rec, http.StatusTooManyRequests, "slow down")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "slow down", decode(t, rec).Message)
}
