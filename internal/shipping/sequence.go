package shipping

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/tatsukoohno1441/temutool/internal/exporter"
	"github.com/tatsukoohno1441/temutool/internal/importer"
	"github.com/tatsukoohno1441/temutool/internal/parser"
)

// ErrOrderColumnNotFound 装箱表明细中找不到订单号列
var ErrOrderColumnNotFound = errors.New("order id column not found in packing workbook")

// orderIDHint 精确匹配失败时，按包含关系查找的列名片段
const orderIDHint = "Order ID"

// SequenceOptions 回读订单顺序的选项
type SequenceOptions struct {
	Sheet  string // 明细表名，默认 整理結果
	Header string // 订单号列名，默认 受注番号/Order ID
}

// ExtractOrderSequence 读取装箱表明细，按从上到下的顺序返回非空订单号（保留重复）
//
// 指定的 sheet 不存在时退回第一个 sheet。
func ExtractOrderSequence(r io.Reader, opts SequenceOptions, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Sheet == "" {
		opts.Sheet = exporter.DefaultDetailSheet
	}
	if opts.Header == "" {
		opts.Header = exporter.DetailOrderIDHeader
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open packing workbook: %w", importer.ErrUnreadable, err)
	}
	defer f.Close()

	sheet := opts.Sheet
	sheets := f.GetSheetList()
	if !slices.Contains(sheets, sheet) {
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheet", ErrOrderColumnNotFound)
		}
		logger.Warn("detail sheet not found, using first sheet",
			zap.String("want", opts.Sheet), zap.String("use", sheets[0]))
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %s is empty", ErrOrderColumnNotFound, sheet)
	}

	col := findOrderIDColumn(rows[0], opts.Header)
	if col < 0 {
		return nil, fmt.Errorf("%w: sheet %s; found: [%s]",
			ErrOrderColumnNotFound, sheet, strings.Join(rows[0], ", "))
	}

	sequence := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if col >= len(row) {
			continue
		}
		if v := strings.TrimSpace(row[col]); v != "" {
			sequence = append(sequence, v)
		}
	}
	return sequence, nil
}

func findOrderIDColumn(headers []string, want string) int {
	for i, h := range headers {
		if strings.TrimSpace(h) == want {
			return i
		}
	}
	for i, h := range headers {
		if parser.ContainsFold(h, orderIDHint) {
			return i
		}
	}
	return -1
}
