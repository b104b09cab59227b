package domain

// BaseFabricToken replaces a missing fabric id inside a line item key
const BaseFabricToken = "base"

// BaseFabricName is shown for line items whose fabric id does not resolve
const BaseFabricName = "Базовая ткань"

// LineItem is one cart entry. Field names match the persisted cart format.
type LineItem struct {
	Key        string  `json:"key"`
	ProductID  string  `json:"productId"`
	Name       string  `json:"name"`
	FabricID   string  `json:"fabricId"`
	FabricName string  `json:"fabricName"`
	Price      int64   `json:"price"` // unit price frozen at add time
	Image      string  `json:"image"`
	Qty        int     `json:"qty"`
	Weight     float64 `json:"weight"` // unit weight, kg
}

func (i LineItem) Subtotal() int64 {
	return i.Price * int64(i.Qty)
}

// ItemsTotal is the sum of price*qty over items
func ItemsTotal(items []LineItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}

// LineKey is the deduplication identity of a product+fabric pair
func LineKey(productID, fabricID string) string {
	if fabricID == "" {
		fabricID = BaseFabricToken
	}
	return productID + "-" + fabricID
}
