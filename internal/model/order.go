package model

// OrderLine 订单导出文件中的一行（已规范化字段名）
type OrderLine struct {
	OrderID     string `json:"orderId"`
	OrderItemID string `json:"orderItemId"`
	Recipient   string `json:"recipient"`
	JAN         string `json:"jan"` // 商品编码（contribution sku）
	Product     string `json:"product"`
	Qty         int    `json:"qty"`
}

// DetailLine 按 (JAN, 订单, 订单明细, 收件人, 商品) 合并后的明细行
type DetailLine struct {
	JAN         string `json:"jan"`
	OrderID     string `json:"orderId"`
	OrderItemID string `json:"orderItemId"`
	Recipient   string `json:"recipient"`
	Product     string `json:"product"`
	Qty         int    `json:"qty"`

	LinesInOrder       int `json:"linesInOrder"`       // 同一订单内的明细行数
	LinesInOrderForJAN int `json:"linesInOrderForJan"` // 同一订单、同一 JAN 的明细行数
}

// IsSingle 订单只有这一行（也就是该 JAN 在订单中的唯一一行）
func (d DetailLine) IsSingle() bool {
	return d.LinesInOrderForJAN == 1 && d.LinesInOrder == 1
}

// IsMultiLineOrder 所属订单有两行及以上
func (d DetailLine) IsMultiLineOrder() bool {
	return d.LinesInOrder >= 2
}

// JANTotal JAN + 商品名 维度的出荷数量合计
type JANTotal struct {
	JAN     string `json:"jan"`
	Product string `json:"product"`
	Qty     int    `json:"qty"`
}
