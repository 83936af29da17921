package extractor

import (
	"regexp"
	"strings"
)

// 地区码之后的剩余部分：1-2 个字母、1-4 位数字、可选的单个尾字母（如电动车的 E）
var plateRemainderRe = regexp.MustCompile(`^([A-Za-z]{1,2})(\d{1,4})([A-Za-z]?)$`)

// FormatPlate 把原始车牌格式化为带连字符的展示形式
// 依次尝试 3、2、1 位前缀与地区码表匹配；前缀命中但剩余部分不合法时
// 继续尝试更短的前缀，全部失败则原样返回输入
// 仅用于展示，记录身份始终使用原始车牌
func FormatPlate(raw string) string {
	plate := strings.TrimSpace(raw)

	for _, n := range []int{3, 2, 1} {
		if len(plate) <= n {
			continue
		}
		prefix := strings.ToUpper(plate[:n])
		if _, ok := districtCodes[prefix]; !ok {
			continue
		}
		m := plateRemainderRe.FindStringSubmatch(plate[n:])
		if m == nil {
			continue
		}
		return prefix + "-" + strings.ToUpper(m[1]) + "-" + m[2] + strings.ToUpper(m[3])
	}

	return raw
}
