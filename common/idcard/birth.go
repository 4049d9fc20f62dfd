package idcard

import "time"

const birthLayout = "2006-01-02"

// IsValidBirth 校验 8 位出生日期码（YYYYMMDD）
// 日期必须真实存在，且不晚于当前时刻
func IsValidBirth(date8 string) bool {
	return isValidBirthAt(date8, time.Now())
}

func isValidBirthAt(date8 string, now time.Time) bool {
	birth, ok := parseBirth(date8)
	if !ok {
		return false
	}
	// 出生日期领先于当前时刻，如 20990102
	return !birth.After(now)
}

// parseBirth 把 YYYYMMDD 解析为 UTC 零点
// time.Parse 会拒绝 2021-02-29、2020-04-31、2020-13-01 这类日期，不会顺延到下个月
func parseBirth(date8 string) (time.Time, bool) {
	if len(date8) != 8 || !isDigits(date8) {
		return time.Time{}, false
	}

	serialized := date8[0:4] + "-" + date8[4:6] + "-" + date8[6:8]
	birth, err := time.Parse(birthLayout, serialized)
	if err != nil {
		return time.Time{}, false
	}
	return birth, true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
