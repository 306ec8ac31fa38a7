package parser

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// NormalizeColumnName 规范化列名：去首尾空白并转小写
//
// 未命中别名表的列名按此结果原样透传。
func NormalizeColumnName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// headerKey 别名查找用的键：全角转半角、压缩空白、小写
// 例如 "Ｏｒｄｅｒ　ＩＤ" 与 " order  id " 得到同一个键。
func headerKey(name string) string {
	name = width.Fold.String(name)
	name = strings.Join(strings.Fields(name), " ")
	return strings.ToLower(name)
}

// ParseQty 解析出荷数量，无法解析、空值或负数一律视为 0；上限为 math.MaxInt32
func ParseQty(raw string) int {
	val := strings.TrimSpace(width.Fold.String(raw))
	if val == "" {
		return 0
	}
	// 移除千分位分隔符
	val = strings.ReplaceAll(val, ",", "")

	if i, err := strconv.ParseInt(val, 10, 64); err == nil {
		return int(min(max(i, 0), math.MaxInt32))
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

// ContainsFold 大小写无关的包含判断
func ContainsFold(text, sub string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(sub))
}
