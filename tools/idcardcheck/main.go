// ============================================================================
// 身份证号码批量校验工具
// ============================================================================
//
// 用于数据清洗：每行一个号码，按输入顺序输出
//   <号码(默认脱敏)>\t<是否合法>\t<失败原因>
//
// 使用方法：
//   go run ./tools/idcardcheck -in numbers.txt -workers 8
//   cat numbers.txt | go run ./tools/idcardcheck -invalid-only -strict
//
// ============================================================================

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"

	"github.com/jealyn/idcard-verify/common/idcard"

	"github.com/zeromicro/go-zero/core/logx"
)

var (
	inFile      = flag.String("in", "", "输入文件，留空读取标准输入")
	workers     = flag.Int("workers", runtime.NumCPU(), "并发数")
	areaFile    = flag.String("area", "", "地址码数据文件，留空使用内嵌数据")
	invalidOnly = flag.Bool("invalid-only", false, "只输出不合法的号码")
	strict      = flag.Bool("strict", false, "存在不合法号码时以状态码 1 退出")
	raw         = flag.Bool("raw", false, "输出原始号码（默认脱敏）")
)

// 退出码
const (
	exitOK      = 0
	exitInvalid = 1 // -strict 且存在不合法号码
	exitError   = 2
)

// cliConfig 命令行参数
type cliConfig struct {
	inFile   string
	areaFile string
	strict   bool
	opts     options
}

func main() {
	flag.Parse()
	logx.DisableStat()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, cliConfig{
		inFile:   *inFile,
		areaFile: *areaFile,
		strict:   *strict,
		opts: options{
			workers:     *workers,
			invalidOnly: *invalidOnly,
			raw:         *raw,
		},
	}, os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run 执行校验并返回退出码，所有 defer 都在返回前执行完毕
func run(ctx context.Context, c cliConfig, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts []idcard.Option
	if c.areaFile != "" {
		areas, err := idcard.LoadAreaRegistryFile(c.areaFile)
		if err != nil {
			logx.Errorf("加载地址码失败: %v", err)
			return exitError
		}
		opts = append(opts, idcard.WithAreaRegistry(areas))
	}
	v := idcard.NewValidator(opts...)

	in := stdin
	if c.inFile != "" {
		f, err := os.Open(c.inFile)
		if err != nil {
			logx.Errorf("打开输入文件失败: %v", err)
			return exitError
		}
		defer f.Close()
		in = f
	}

	sum, err := check(ctx, v, in, stdout, c.opts)
	if err != nil {
		logx.Errorf("校验失败: %v", err)
		return exitError
	}

	fmt.Fprintf(stderr, "total=%d valid=%d invalid=%d\n", sum.Total, sum.Valid, sum.Invalid)
	if c.strict && sum.Invalid > 0 {
		return exitInvalid
	}
	return exitOK
}
