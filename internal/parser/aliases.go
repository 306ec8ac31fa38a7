package parser

// 规范列名（英文长名，小写）
const (
	HeaderOrderID        = "order id"
	HeaderOrderItemID    = "order item id"
	HeaderRecipient      = "recipient name"
	HeaderSKU            = "contribution sku"
	HeaderProduct        = "product name by customer order"
	HeaderQty            = "quantity to ship"
	HeaderRecipientPhone = "recipient phone number"
	HeaderDistrict       = "district"
	HeaderShipAddress1   = "ship address 1"
)

// 内部短字段名
const (
	FieldOrderID     = "order_id"
	FieldOrderItemID = "order_item_id"
	FieldRecipient   = "recipient"
	FieldJAN         = "jan"
	FieldProduct     = "product"
	FieldQty         = "qty"
)

// RequiredHeaders 装箱流程必须存在的规范列名（顺序即报错顺序）
var RequiredHeaders = []string{
	HeaderOrderID,
	HeaderOrderItemID,
	HeaderRecipient,
	HeaderSKU,
	HeaderProduct,
	HeaderQty,
}

// AliasTable 表头别名配置：各语言写法 → 规范长名 → 内部短名
//
// 构造后只读，按值传给 HeaderNormalizer，不作为全局可变状态使用。
type AliasTable struct {
	aliases map[string]string
	fields  map[string]string
}

// NewAliasTable 由 "规范长名 → 可接受写法" 与 "规范长名 → 短名" 构造别名表
func NewAliasTable(spellings map[string][]string, fields map[string]string) AliasTable {
	t := AliasTable{
		aliases: make(map[string]string),
		fields:  make(map[string]string, len(fields)),
	}
	for canonical, list := range spellings {
		t.aliases[headerKey(canonical)] = canonical
		for _, s := range list {
			t.aliases[headerKey(s)] = canonical
		}
	}
	for canonical, short := range fields {
		t.fields[canonical] = short
	}
	return t
}

// DefaultAliases 日英混合表头（Temu 卖家后台导出）
func DefaultAliases() AliasTable {
	return NewAliasTable(
		map[string][]string{
			HeaderOrderID:        {"注文id"},
			HeaderOrderItemID:    {"注文商品id"},
			HeaderRecipient:      {"受取人名"},
			HeaderSKU:            {"貢献sku"},
			HeaderProduct:        {"顧客注文による製品名"},
			HeaderQty:            {"出荷数量"},
			HeaderRecipientPhone: {"受信者の電話番号"},
			HeaderDistrict:       {"地区"},
			HeaderShipAddress1:   {"発送先住所1"},
		},
		map[string]string{
			HeaderOrderID:     FieldOrderID,
			HeaderOrderItemID: FieldOrderItemID,
			HeaderRecipient:   FieldRecipient,
			HeaderSKU:         FieldJAN,
			HeaderProduct:     FieldProduct,
			HeaderQty:         FieldQty,
		},
	)
}

// Canonical 查找别名对应的规范长名
func (t AliasTable) Canonical(header string) (string, bool) {
	c, ok := t.aliases[headerKey(header)]
	return c, ok
}

// Field 规范长名对应的内部短名
func (t AliasTable) Field(canonical string) (string, bool) {
	f, ok := t.fields[canonical]
	return f, ok
}
