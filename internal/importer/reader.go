package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/tatsukoohno1441/temutool/internal/model"
)

var (
	// ErrEmptyFile 文件中没有任何表头
	ErrEmptyFile = errors.New("input file is empty")
	// ErrNoSheet 工作簿中没有工作表
	ErrNoSheet = errors.New("workbook has no sheet")
	// ErrUnreadable 文件无法按表格解析（损坏的工作簿、非法的分隔文本）
	ErrUnreadable = errors.New("unreadable table file")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// IsWorkbook 按扩展名判断是否按 Excel 工作簿读取
func IsWorkbook(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return true
	}
	return false
}

// ReadTable 读取表格文件，所有单元格按文本读取，不做数值/日期推断
//
// 工作簿取第一个 sheet；其他扩展名按分隔文本处理（.tsv 为制表符，其余为逗号）。
func ReadTable(name string, r io.Reader) (*model.Table, error) {
	if IsWorkbook(name) {
		return readWorkbook(name, r)
	}
	return readDelimited(name, r, delimiterFor(name))
}

func delimiterFor(name string) rune {
	if strings.EqualFold(filepath.Ext(name), ".tsv") {
		return '\t'
	}
	return ','
}

func readWorkbook(name string, r io.Reader) (*model.Table, error) {
	f, err := excelize.OpenReader(r, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open excel %s: %w", ErrUnreadable, name, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoSheet)
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return buildTable(name, rows, isEmptyRow)
}

func readDelimited(name string, r io.Reader, delimiter rune) (*model.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var src io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		// 日本の管理画面から落とした CSV は Shift_JIS のことが多い
		src = transform.NewReader(src, japanese.ShiftJIS.NewDecoder())
	}

	reader := csv.NewReader(src)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", ErrUnreadable, name, err)
	}
	return buildTable(name, records, isBlankLine)
}

// buildTable 第一行作为表头；数据行补齐/截断到表头宽度，skip 为真的行跳过
func buildTable(name string, records [][]string, skip func([]string) bool) (*model.Table, error) {
	if len(records) == 0 || skip(records[0]) || isEmptyRow(records[0]) {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyFile)
	}

	headers := append([]string(nil), records[0]...)
	table := &model.Table{
		Name:    name,
		Headers: headers,
		Rows:    make([][]string, 0, len(records)-1),
	}

	for _, rec := range records[1:] {
		if skip(rec) {
			continue
		}
		table.Rows = append(table.Rows, fitRow(rec, len(headers)))
	}
	return table, nil
}

func fitRow(rec []string, width int) []string {
	row := make([]string, width)
	copy(row, rec)
	return row
}

// isEmptyRow 工作簿中没有任何值的行
func isEmptyRow(rec []string) bool {
	for _, v := range rec {
		if v != "" {
			return false
		}
	}
	return true
}

// isBlankLine 分隔文本中的空行；",,," 这样只有分隔符的行仍算数据行
func isBlankLine(rec []string) bool {
	return len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "")
}
