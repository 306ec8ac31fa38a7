package pipeline

import (
	"errors"

	"github.com/tatsukoohno1441/temutool/internal/importer"
	"github.com/tatsukoohno1441/temutool/internal/parser"
	"github.com/tatsukoohno1441/temutool/internal/shipping"
)

// IsInputError 判断错误是否由输入文件本身引起（缺列、空文件、无法解析）
func IsInputError(err error) bool {
	if err == nil {
		return false
	}
	var missing *parser.MissingHeadersError
	if errors.As(err, &missing) {
		return true
	}
	for _, target := range []error{
		importer.ErrEmptyFile,
		importer.ErrNoSheet,
		importer.ErrUnreadable,
		shipping.ErrOrderColumnNotFound,
		shipping.ErrMissingOrderIDColumn,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
