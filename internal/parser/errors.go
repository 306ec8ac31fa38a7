package parser

import (
	"fmt"
	"strings"
)

// MissingHeadersError 必需列缺失
type MissingHeadersError struct {
	Missing []string // 缺失的规范列名
	Found   []string // 文件中实际读到的表头
}

func (e *MissingHeadersError) Error() string {
	return fmt.Sprintf("missing header(s): [%s]; found: [%s]",
		strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}
