package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jealyn/idcard-verify/common/idcard"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// options 命令行选项
type options struct {
	workers     int
	invalidOnly bool
	raw         bool
}

// lineResult 单行校验结果
type lineResult struct {
	number string
	valid  bool
	reason string
}

// summary 汇总
type summary struct {
	Total   int
	Valid   int
	Invalid int
}

// readNumbers 按行读取号码，跳过空行和 # 注释
func readNumbers(r io.Reader) ([]string, error) {
	var numbers []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := idcard.Trim(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		numbers = append(numbers, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "读取输入失败")
	}
	return numbers, nil
}

// check 并发校验后按输入顺序输出
func check(ctx context.Context, v *idcard.Validator, r io.Reader, w io.Writer, opts options) (summary, error) {
	var sum summary

	numbers, err := readNumbers(r)
	if err != nil {
		return sum, err
	}

	workers := opts.workers
	if workers <= 0 {
		workers = 1
	}

	results := make([]lineResult, len(numbers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, number := range numbers {
		i, number := i, number
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			err := v.Check(number)
			results[i] = lineResult{
				number: number,
				valid:  err == nil,
				reason: idcard.Reason(err),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return sum, errors.Wrap(err, "校验中断")
	}

	bw := bufio.NewWriter(w)
	for _, res := range results {
		sum.Total++
		if res.valid {
			sum.Valid++
			if opts.invalidOnly {
				continue
			}
		} else {
			sum.Invalid++
		}

		number := res.number
		if !opts.raw {
			number = idcard.Mask(number)
		}
		reason := res.reason
		if reason == "" {
			reason = "-"
		}
		if _, err := fmt.Fprintf(bw, "%s\t%t\t%s\n", number, res.valid, reason); err != nil {
			return sum, errors.Wrap(err, "写入结果失败")
		}
	}
	return sum, errors.Wrap(bw.Flush(), "写入结果失败")
}
