package model

import "strings"

// Manifest 发货清单：列与原始文件一致，行按装箱表顺序重排并去重
type Manifest struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`

	OrderIDColumn int                 `json:"orderIdColumn"`
	MultiOrders   map[string]struct{} `json:"-"` // 排序后出现多次的订单号（去重前口径）
	DroppedRows   int                 `json:"droppedRows"`
}

// IsMultiOrder 该行所属订单在去重前有多行
func (m *Manifest) IsMultiOrder(row []string) bool {
	if m.OrderIDColumn < 0 || m.OrderIDColumn >= len(row) {
		return false
	}
	_, ok := m.MultiOrders[strings.TrimSpace(row[m.OrderIDColumn])]
	return ok
}
