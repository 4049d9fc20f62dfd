package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunExitCodes(t *testing.T) {
	// Windows 导出的文件常带 BOM 与 CRLF
	valid := writeTemp(t, "valid.txt", "\ufeff11010519491231002X\r\n330782199001010017\r\n")
	mixed := writeTemp(t, "mixed.txt", input)

	tests := []struct {
		name     string
		cfg      cliConfig
		wantCode int
		wantOut  string
		wantSum  string
	}{
		{
			name:     "全部合法",
			cfg:      cliConfig{inFile: valid, strict: true, opts: options{workers: 2, raw: true}},
			wantCode: exitOK,
			wantOut:  "11010519491231002X\ttrue\t-\n330782199001010017\ttrue\t-\n",
			wantSum:  "total=2 valid=2 invalid=0\n",
		},
		{
			name:     "存在不合法号码但未开启 strict",
			cfg:      cliConfig{inFile: mixed, opts: options{workers: 2}},
			wantCode: exitOK,
			wantSum:  "total=4 valid=2 invalid=2\n",
		},
		{
			name:     "strict 模式",
			cfg:      cliConfig{inFile: mixed, strict: true, opts: options{workers: 2}},
			wantCode: exitInvalid,
			wantSum:  "total=4 valid=2 invalid=2\n",
		},
		{
			name:     "输入文件不存在",
			cfg:      cliConfig{inFile: filepath.Join(t.TempDir(), "missing.txt"), opts: options{workers: 1}},
			wantCode: exitError,
		},
		{
			name:     "地址码文件不存在",
			cfg:      cliConfig{inFile: valid, areaFile: filepath.Join(t.TempDir(), "missing.txt"), opts: options{workers: 1}},
			wantCode: exitError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(context.Background(), tt.cfg, strings.NewReader(""), &stdout, &stderr)
			assert.Equal(t, tt.wantCode, code)
			if tt.wantOut != "" {
				assert.Equal(t, tt.wantOut, stdout.String())
			}
			assert.Equal(t, tt.wantSum, stderr.String())
		})
	}
}

func TestRunReadsStdinAndAreaFile(t *testing.T) {
	areas := writeTemp(t, "areas.txt", "\ufeff# 自定义\n999999 测试区\n")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), cliConfig{
		areaFile: areas,
		strict:   true,
		opts:     options{workers: 1, raw: true},
	}, strings.NewReader("999999199001011238\n11010519491231002X\n"), &stdout, &stderr)

	assert.Equal(t, exitInvalid, code)
	assert.Equal(t, "999999199001011238\ttrue\t-\n11010519491231002X\tfalse\tarea_code\n", stdout.String())
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	code := run(ctx, cliConfig{opts: options{workers: 1}}, strings.NewReader(input), &stdout, &stderr)
	assert.Equal(t, exitError, code)
	assert.Empty(t, stderr.String())
}
