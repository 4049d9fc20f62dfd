/**
 * @projectName: idcard-verify
 * @package: idcard
 * @className: AreaRegistry
 * @description: 地址码登记表（行政区划代码快照）
 * @version: 1.0
 */

package idcard

import (
	"bufio"
	"bytes"
	_ "embed"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

const (
	minAreaCode = 100000
	maxAreaCode = 999999
)

//go:embed area_codes.txt
var embeddedAreaCodes []byte

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *AreaRegistry
)

// AreaRegistry 地址码集合，构造后只读，可被任意 goroutine 共享
type AreaRegistry struct {
	codes map[int]string
}

// NewAreaRegistry 根据代码到名称的映射构造登记表（会拷贝一份，调用方后续修改不影响登记表）
func NewAreaRegistry(codes map[int]string) *AreaRegistry {
	copied := make(map[int]string, len(codes))
	for code, name := range codes {
		copied[code] = name
	}
	return &AreaRegistry{codes: copied}
}

// DefaultAreaRegistry 返回内嵌的地址码快照
func DefaultAreaRegistry() *AreaRegistry {
	defaultRegistryOnce.Do(func() {
		r, err := LoadAreaRegistry(bytes.NewReader(embeddedAreaCodes))
		if err != nil {
			// 内嵌数据随代码发布，解析失败说明构建产物已损坏
			panic(errors.Wrap(err, "解析内嵌地址码失败"))
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// LoadAreaRegistryFile 从外部数据文件加载地址码
func LoadAreaRegistryFile(path string) (*AreaRegistry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "打开地址码文件失败: %s", path)
	}
	defer f.Close()

	r, err := LoadAreaRegistry(f)
	if err != nil {
		return nil, errors.Wrapf(err, "加载地址码文件失败: %s", path)
	}
	return r, nil
}

// LoadAreaRegistry 解析地址码数据
// 每行一条：<6位代码>[空白 <名称>]，空行与 # 开头的注释行忽略
func LoadAreaRegistry(r io.Reader) (*AreaRegistry, error) {
	codes := make(map[int]string)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := Trim(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		code, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, errors.Errorf("第 %d 行地址码不是数字: %q", lineNo, fields[0])
		}
		if code < minAreaCode || code > maxAreaCode {
			return nil, errors.Errorf("第 %d 行地址码超出范围: %d", lineNo, code)
		}
		codes[code] = strings.Join(fields[1:], " ")
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "读取地址码数据失败")
	}
	if len(codes) == 0 {
		return nil, errors.New("地址码数据为空")
	}

	return &AreaRegistry{codes: codes}, nil
}

// Contains 判断地址码是否登记在册
func (r *AreaRegistry) Contains(code int) bool {
	if r == nil {
		return false
	}
	_, ok := r.codes[code]
	return ok
}

// Name 查询地址码对应的行政区划名称
func (r *AreaRegistry) Name(code int) (string, bool) {
	if r == nil {
		return "", false
	}
	name, ok := r.codes[code]
	return name, ok
}

// Len 登记的地址码数量
func (r *AreaRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.codes)
}
