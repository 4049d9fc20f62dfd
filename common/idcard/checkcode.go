package idcard

const bodyLength = 17

// weightingFactors 本体码各位的加权因子
var weightingFactors = [bodyLength]int{7, 9, 10, 5, 8, 4, 2, 1, 6, 3, 7, 9, 10, 5, 8, 4, 2}

// checkCodeTable 加权和对 11 取余后对应的校验码
var checkCodeTable = [11]byte{'1', '0', 'x', '9', '8', '7', '6', '5', '4', '3', '2'}

// CheckCode 计算 17 位本体码对应的校验码（小写 x）
func CheckCode(body17 string) (byte, bool) {
	if len(body17) != bodyLength || !isDigits(body17) {
		return 0, false
	}

	sum := 0
	for i := 0; i < bodyLength; i++ {
		sum += int(body17[i]-'0') * weightingFactors[i]
	}
	return checkCodeTable[sum%11], true
}

// IsValidCheckCode 校验 18 位号码的最后一位，大小写 X 均可
func IsValidCheckCode(cardNum18 string) bool {
	if len(cardNum18) != cardLength {
		return false
	}

	expected, ok := CheckCode(cardNum18[:bodyLength])
	if !ok {
		return false
	}
	return toLower(cardNum18[bodyLength]) == expected
}

func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
