package importer

import (
	"fmt"
	"io"

	"github.com/tatsukoohno1441/temutool/internal/model"
	"github.com/tatsukoohno1441/temutool/internal/parser"
)

// Loader 订单导出文件加载器
type Loader struct {
	normalizer *parser.HeaderNormalizer
}

// NewLoader 创建加载器
func NewLoader(aliases parser.AliasTable) *Loader {
	return &Loader{
		normalizer: parser.NewHeaderNormalizer(aliases),
	}
}

// LoadOrders 读取文件并转换为订单行（装箱流程）
func (l *Loader) LoadOrders(name string, r io.Reader) ([]model.OrderLine, error) {
	table, err := ReadTable(name, r)
	if err != nil {
		return nil, err
	}
	return l.ToOrderLines(table)
}

// ToOrderLines 校验必需列并逐行转换
//
// 单元格原样保留（不去空白）；数量无法解析时记为 0，其余字段缺失时为空字符串，不会因脏数据中断。
func (l *Loader) ToOrderLines(table *model.Table) ([]model.OrderLine, error) {
	mappings, err := l.normalizer.MapOrderFields(table.Headers)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", table.Name, err)
	}

	lines := make([]model.OrderLine, 0, len(table.Rows))
	for _, row := range table.Rows {
		getValue := func(field string) string {
			m, ok := mappings[field]
			if !ok || m.ColumnIndex >= len(row) {
				return ""
			}
			return row[m.ColumnIndex]
		}

		lines = append(lines, model.OrderLine{
			OrderID:     getValue(parser.FieldOrderID),
			OrderItemID: getValue(parser.FieldOrderItemID),
			Recipient:   getValue(parser.FieldRecipient),
			JAN:         getValue(parser.FieldJAN),
			Product:     getValue(parser.FieldProduct),
			Qty:         parser.ParseQty(getValue(parser.FieldQty)),
		})
	}
	return lines, nil
}

// LoadNormalized 读取文件，仅把表头统一为规范长名，单元格原样保留（发货清单流程）
func (l *Loader) LoadNormalized(name string, r io.Reader) (*model.Table, error) {
	table, err := ReadTable(name, r)
	if err != nil {
		return nil, err
	}
	table.Headers = l.normalizer.NormalizeAll(table.Headers)
	return table, nil
}
