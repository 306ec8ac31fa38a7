package model

// Table 读入后的纯文本表格（所有单元格均为字符串）
type Table struct {
	Name    string     `json:"name"` // 来源文件名或 sheet 名
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"` // 每行长度与 Headers 一致
}

// ColumnIndex 返回列名完全一致的第一列，找不到返回 -1
func (t *Table) ColumnIndex(header string) int {
	for i, h := range t.Headers {
		if h == header {
			return i
		}
	}
	return -1
}

// Clone 深拷贝，便于在不修改输入的前提下做列变换
func (t *Table) Clone() *Table {
	out := &Table{
		Name:    t.Name,
		Headers: append([]string(nil), t.Headers...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}
