/**
 * @projectName: idcard-verify
 * @package: errorx
 * @className: codes
 * @description: 统一错误码定义
 * @version: 1.0
 */

package errorx

// 错误码规范：
// 0       - 成功
// 1xxx    - 通用错误
// 2xxx    - 身份证校验服务错误

const (
	CodeSuccess            = 0    // 成功
	CodeInternalError      = 1000 // 内部服务器错误
	CodeInvalidParams      = 1001 // 参数校验失败
	CodeNotFound           = 1004 // 资源不存在
	CodeTooManyRequests    = 1005 // 请求过于频繁
	CodeServiceUnavailable = 1006 // 服务暂不可用

	// 身份证校验服务 2001-2020
	CodeIDCardBatchTooLarge = 2001 // 批量校验数量超限
	CodeIDCardBatchEmpty    = 2002 // 批量校验列表为空
	CodeAreaCodeInvalid     = 2003 // 地址码格式错误
	CodeAreaNotFound        = 2004 // 地址码不存在
)

// codeMessages 错误码对应的默认消息
var codeMessages = map[int]string{
	CodeSuccess:             "success",
	CodeInternalError:       "内部服务器错误",
	CodeInvalidParams:       "参数校验失败",
	CodeNotFound:            "资源不存在",
	CodeTooManyRequests:     "请求过于频繁，请稍后再试",
	CodeServiceUnavailable:  "服务暂不可用",
	CodeIDCardBatchTooLarge: "单次校验的号码数量超过上限",
	CodeIDCardBatchEmpty:    "待校验的号码列表为空",
	CodeAreaCodeInvalid:     "地址码必须为6位数字",
	CodeAreaNotFound:        "地址码不存在",
}

// GetMessage 根据错误码获取默认消息
func GetMessage(code int) string {
	if msg, ok := codeMessages[code]; ok {
		return msg
	}
	return "未知错误"
}

// IsValidCode 判断是否为已定义的业务错误码
func IsValidCode(code int) bool {
	_, exists := codeMessages[code]
	return exists
}
