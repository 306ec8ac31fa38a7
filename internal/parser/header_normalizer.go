package parser

// FieldMapping 单个必需字段的列映射结果
type FieldMapping struct {
	ColumnIndex int    `json:"columnIndex"` // 表头中的列索引
	ColumnName  string `json:"columnName"`  // 原始列名
	Canonical   string `json:"canonical"`   // 规范长名
	Field       string `json:"field"`       // 内部短名
}

// HeaderNormalizer 表头规范化器
type HeaderNormalizer struct {
	aliases AliasTable
}

// NewHeaderNormalizer 创建规范化器
func NewHeaderNormalizer(aliases AliasTable) *HeaderNormalizer {
	return &HeaderNormalizer{aliases: aliases}
}

// Normalize 原始表头 → 规范长名；未知表头去空白、转小写后透传
func (n *HeaderNormalizer) Normalize(header string) string {
	if c, ok := n.aliases.Canonical(header); ok {
		return c
	}
	return NormalizeColumnName(header)
}

// NormalizeAll 逐列规范化
func (n *HeaderNormalizer) NormalizeAll(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = n.Normalize(h)
	}
	return out
}

// MapOrderFields 校验必需列并返回 短名 → 列映射
//
// 同名列出现多次时取第一列。
func (n *HeaderNormalizer) MapOrderFields(headers []string) (map[string]FieldMapping, error) {
	normalized := n.NormalizeAll(headers)

	first := make(map[string]int, len(normalized))
	for idx, col := range normalized {
		if _, ok := first[col]; !ok {
			first[col] = idx
		}
	}

	mappings := make(map[string]FieldMapping, len(RequiredHeaders))
	var missing []string
	for _, canonical := range RequiredHeaders {
		idx, ok := first[canonical]
		if !ok {
			missing = append(missing, canonical)
			continue
		}
		field, _ := n.aliases.Field(canonical)
		mappings[field] = FieldMapping{
			ColumnIndex: idx,
			ColumnName:  headers[idx],
			Canonical:   canonical,
			Field:       field,
		}
	}

	if len(missing) > 0 {
		return nil, &MissingHeadersError{
			Missing: missing,
			Found:   append([]string(nil), headers...),
		}
	}
	return mappings, nil
}
