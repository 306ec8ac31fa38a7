package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tatsukoohno1441/temutool/internal/model"
)

const (
	DefaultManifestSheet   = "shipping"
	DefaultFormattedSuffix = "_formatted"
)

// ManifestCSV 发货清单 CSV（UTF-8 BOM，Excel 打开日文不乱码）
func ManifestCSV(m *model.Manifest) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(&buf)
	if err := w.Write(m.Headers); err != nil {
		return nil, err
	}
	for i, row := range m.Rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row %d: %w", i+2, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ManifestWorkbook 带标记的发货清单：去重前属于多行订单的行填蓝底
func ManifestWorkbook(m *model.Manifest, palette Palette) (*excelize.File, error) {
	if palette == (Palette{}) {
		palette = DefaultPalette()
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", DefaultManifestSheet); err != nil {
		_ = f.Close()
		return nil, err
	}

	if err := RenderManifest(newSheetSink(f, DefaultManifestSheet, len(m.Headers), palette), m); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("写入 %s 失败: %w", DefaultManifestSheet, err)
	}
	return f, nil
}

// RenderManifest 写入表头与数据行，多行订单的行加标记
func RenderManifest(sink RowSink, m *model.Manifest) error {
	if err := sink.AppendRow(toValues(m.Headers)...); err != nil {
		return err
	}
	for _, row := range m.Rows {
		if err := sink.AppendRow(toValues(row)...); err != nil {
			return err
		}
		if m.IsMultiOrder(row) {
			if err := sink.MarkRow(StyleMultiOrder); err != nil {
				return err
			}
		}
	}
	return nil
}

// FormattedPath 由 CSV 输出路径推导带标记工作簿的路径：shipping.csv → shipping_formatted.xlsx
func FormattedPath(csvPath, suffix string) string {
	if suffix == "" {
		suffix = DefaultFormattedSuffix
	}
	return strings.TrimSuffix(csvPath, filepath.Ext(csvPath)) + suffix + ".xlsx"
}

func toValues(cells []string) []interface{} {
	out := make([]interface{}, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}
