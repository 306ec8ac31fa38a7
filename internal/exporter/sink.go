package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// RowStyle 行标记类型
type RowStyle int

const (
	StyleHeader     RowStyle = iota + 1 // 表头：加粗 + 浅灰底
	StyleSeparator                      // 分隔行：加粗
	StyleQtyAlert                       // 数量大于 1：加粗红字
	StyleMultiOrder                     // 原为多行订单：蓝底
)

// RowSink 逐行写入的表格输出
//
// MarkRow 作用于最近一次 AppendRow 写入的行。
type RowSink interface {
	AppendRow(values ...interface{}) error
	MarkRow(style RowStyle) error
	SetColumnWidth(col int, width float64) error
}

// Palette 样式颜色（不带 #）
type Palette struct {
	HeaderFill     string
	QtyAlertFont   string
	MultiOrderFill string
}

// DefaultPalette 默认配色
func DefaultPalette() Palette {
	return Palette{
		HeaderFill:     "F2F2F2",
		QtyAlertFont:   "FF0000",
		MultiOrderFill: "CCE5FF",
	}
}

// sheetSink 基于 excelize 的 RowSink 实现
type sheetSink struct {
	file    *excelize.File
	sheet   string
	columns int
	row     int
	palette Palette
	styles  map[RowStyle]int
}

func newSheetSink(f *excelize.File, sheet string, columns int, palette Palette) *sheetSink {
	return &sheetSink{
		file:    f,
		sheet:   sheet,
		columns: columns,
		palette: palette,
		styles:  make(map[RowStyle]int),
	}
}

// AppendRow 追加一行；不传值即为空行
func (s *sheetSink) AppendRow(values ...interface{}) error {
	s.row++
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		return err
	}
	if err := s.file.SetSheetRow(s.sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", s.sheet, s.row, err)
	}
	return nil
}

func (s *sheetSink) MarkRow(style RowStyle) error {
	if s.row == 0 {
		return nil
	}
	id, err := s.styleID(style)
	if err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, s.row)
	last, _ := excelize.CoordinatesToCellName(s.columns, s.row)
	return s.file.SetCellStyle(s.sheet, first, last, id)
}

func (s *sheetSink) SetColumnWidth(col int, width float64) error {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return err
	}
	return s.file.SetColWidth(s.sheet, name, name, width)
}

func (s *sheetSink) styleID(style RowStyle) (int, error) {
	if id, ok := s.styles[style]; ok {
		return id, nil
	}

	var def *excelize.Style
	switch style {
	case StyleHeader:
		def = &excelize.Style{
			Font: &excelize.Font{Bold: true},
			Fill: excelize.Fill{Type: "pattern", Color: []string{"#" + s.palette.HeaderFill}, Pattern: 1},
		}
	case StyleSeparator:
		def = &excelize.Style{Font: &excelize.Font{Bold: true}}
	case StyleQtyAlert:
		def = &excelize.Style{Font: &excelize.Font{Bold: true, Color: "#" + s.palette.QtyAlertFont}}
	case StyleMultiOrder:
		def = &excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{"#" + s.palette.MultiOrderFill}, Pattern: 1},
		}
	default:
		return 0, fmt.Errorf("unknown row style %d", style)
	}

	id, err := s.file.NewStyle(def)
	if err != nil {
		return 0, fmt.Errorf("create style: %w", err)
	}
	s.styles[style] = id
	return id, nil
}
