/**
 * @projectName: idcard-verify
 * @package: idcard
 * @className: Validator
 * @description: 18 位居民身份证号码校验
 * @version: 1.0
 */

package idcard

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/pkg/errors"
)

// ============================================================================
// 校验流程（任一步失败立即返回）：
//   去除首尾空白（含 BOM） -> 长度 18 -> 结构正则 -> 地址码 -> 出生日期码 -> 校验码
//
// 号码结构：
//   [0,6)   地址码
//   [6,14)  出生日期码 YYYYMMDD
//   [14,17) 顺序码
//   [17]    校验码 0-9 / X / x
//
// 注意：正则的世纪前缀 (18|19|[2-9]\d) 允许 1800 年以后的出生年份，
// 日期校验只拒绝未来日期，因此 1850 年出生这类号码也会通过。
// ============================================================================

const cardLength = 18

// byteOrderMark UTF-8 文件开头的 BOM，Excel 导出的 CSV 常带
const byteOrderMark = '\uFEFF'

var cardRegex = regexp.MustCompile(`^[1-9]\d{5}(18|19|[2-9]\d)\d{9}[0-9Xx]$`)

// 内部失败分类，Validate 只返回 bool，Check 用于日志与指标
var (
	ErrFormat    = errors.New("idcard: 格式错误")
	ErrAreaCode  = errors.New("idcard: 地址码不存在")
	ErrBirthDate = errors.New("idcard: 出生日期无效")
	ErrCheckCode = errors.New("idcard: 校验码不匹配")
)

// Reason 返回失败分类的简短标识，nil 返回空串
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrFormat):
		return "format"
	case errors.Is(err, ErrAreaCode):
		return "area_code"
	case errors.Is(err, ErrBirthDate):
		return "birth_date"
	case errors.Is(err, ErrCheckCode):
		return "check_code"
	default:
		return "unknown"
	}
}

// Option 校验器选项
type Option func(*Validator)

// WithAreaRegistry 使用指定的地址码登记表
func WithAreaRegistry(r *AreaRegistry) Option {
	return func(v *Validator) {
		if r != nil {
			v.areas = r
		}
	}
}

// WithClock 指定当前时间来源，用于判断出生日期是否在未来
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// Validator 身份证号码校验器，无可变状态，并发安全
type Validator struct {
	areas *AreaRegistry
	now   func() time.Time
}

// NewValidator 创建校验器，默认使用内嵌地址码与系统时钟
func NewValidator(opts ...Option) *Validator {
	v := &Validator{
		areas: DefaultAreaRegistry(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Areas 当前使用的地址码登记表
func (v *Validator) Areas() *AreaRegistry {
	return v.areas
}

// Validate 号码是否合法
func (v *Validator) Validate(cardNum string) bool {
	return v.Check(cardNum) == nil
}

// Check 校验号码，返回 nil 或 ErrFormat / ErrAreaCode / ErrBirthDate / ErrCheckCode
func (v *Validator) Check(cardNum string) error {
	serialized := Trim(cardNum)

	if len(serialized) != cardLength {
		return errors.Wrapf(ErrFormat, "长度为 %d", len(serialized))
	}
	if !cardRegex.MatchString(serialized) {
		return errors.Wrap(ErrFormat, "结构不匹配")
	}

	// 正则已保证前 6 位为数字
	areaCode, _ := strconv.Atoi(serialized[0:6])
	if !v.areas.Contains(areaCode) {
		return errors.Wrapf(ErrAreaCode, "%06d", areaCode)
	}

	if !isValidBirthAt(serialized[6:14], v.now()) {
		return errors.Wrapf(ErrBirthDate, "%s", serialized[6:14])
	}

	if !IsValidCheckCode(serialized) {
		return ErrCheckCode
	}

	return nil
}

// Parse 校验并拆分号码各字段
func (v *Validator) Parse(cardNum string) (*IdentityNumber, error) {
	if err := v.Check(cardNum); err != nil {
		return nil, err
	}
	serialized := Trim(cardNum)
	areaCode, _ := strconv.Atoi(serialized[0:6])
	birthday, _ := parseBirth(serialized[6:14])
	areaName, _ := v.areas.Name(areaCode)

	return &IdentityNumber{
		AreaCode:     areaCode,
		AreaName:     areaName,
		BirthCode:    serialized[6:14],
		SequenceCode: serialized[14:17],
		CheckChar:    toLower(serialized[17]),
		birthday:     birthday,
	}, nil
}

// IdentityNumber 已通过校验的号码字段
type IdentityNumber struct {
	AreaCode     int
	AreaName     string
	BirthCode    string
	SequenceCode string
	CheckChar    byte
	birthday     time.Time
}

// Birthday 出生日期（UTC 零点）
func (n *IdentityNumber) Birthday() time.Time {
	return n.birthday
}

// String 规范化的 18 位号码，校验码统一为大写 X
func (n *IdentityNumber) String() string {
	check := n.CheckChar
	if check == 'x' {
		check = 'X'
	}
	return fmt.Sprintf("%06d%s%s%c", n.AreaCode, n.BirthCode, n.SequenceCode, check)
}

// ============ 包级快捷方法 ============

var defaultValidator = NewValidator()

// Validate 使用内嵌地址码与系统时钟校验号码
func Validate(cardNum string) bool {
	return defaultValidator.Validate(cardNum)
}

// Check 使用默认校验器校验号码，返回失败分类
func Check(cardNum string) error {
	return defaultValidator.Check(cardNum)
}

// ValidateValue 校验任意类型的输入
// nil、无法转换为字符串的类型均返回 false，不会 panic
func ValidateValue(value interface{}) (valid bool) {
	defer func() {
		// fmt.Stringer 的实现可能在 nil 接收者上 panic
		if r := recover(); r != nil {
			valid = false
		}
	}()

	s, ok := stringify(value)
	if !ok {
		return false
	}
	return Validate(s)
}

func stringify(value interface{}) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	case []byte:
		return string(v), true
	case json.Number:
		return v.String(), true
	case int:
		return strconv.FormatInt(int64(v), 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}

// Mask 脱敏，保留前 6 位与后 4 位，用于日志输出
func Mask(cardNum string) string {
	runes := []rune(Trim(cardNum))
	if len(runes) < 10 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:6]) + strings.Repeat("*", len(runes)-10) + string(runes[len(runes)-4:])
}

// Trim 去除首尾空白字符与 BOM
func Trim(cardNum string) string {
	return strings.TrimFunc(cardNum, func(r rune) bool {
		return unicode.IsSpace(r) || r == byteOrderMark
	})
}
