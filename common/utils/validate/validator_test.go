package validate

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type areaForm struct {
	Code string `validate:"len=6,number"`
}

type batchForm struct {
	Items []string `validate:"min=1"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, Struct(areaForm{Code: "110105"}))

	err := Struct(areaForm{Code: "11010a"})
	require.Error(t, err)
	field, tag, ok := FirstError(err)
	assert.True(t, ok)
	assert.Equal(t, "Code", field)
	assert.Equal(t, "number", tag)

	field, tag, ok = FirstError(Struct(areaForm{Code: "1101"}))
	assert.True(t, ok)
	assert.Equal(t, "Code", field)
	assert.Equal(t, "len", tag)

	require.NoError(t, Struct(batchForm{Items: []string{""}}))
	field, tag, ok = FirstError(Struct(batchForm{}))
	assert.True(t, ok)
	assert.Equal(t, "Items", field)
	assert.Equal(t, "min", tag)
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var("110105", "len=6,number"))
	assert.Error(t, Var("11010A", "len=6,number"))
	assert.Error(t, Var("-11010", "len=6,number"))
}

func TestFirstErrorOnOtherErrors(t *testing.T) {
	_, _, ok := FirstError(nil)
	assert.False(t, ok)

	_, _, ok = FirstError(errors.New("boom"))
	assert.False(t, ok)

	// 被包装过的校验错误也能取出字段
	field, _, ok := FirstError(errors.Wrap(Struct(areaForm{}), "参数校验"))
	assert.True(t, ok)
	assert.Equal(t, "Code", field)
}
