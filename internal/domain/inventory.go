package domain

// InventoryItem is one vehicle on the lot.
type InventoryItem struct {
	VIN    string `json:"vin"`
	Year   int    `json:"year"`
	Make   string `json:"make"`
	Model  string `json:"model"`
	Trim   string `json:"trim"`
	Price  int    `json:"price"`
	Status string `json:"status"`
	Color  string `json:"color"`
}

// InventoryQuery filters inventory. Zero-valued fields are wildcards; set
// fields match exactly, case-insensitively.
type InventoryQuery struct {
	Year  int    `json:"year,omitempty"`
	Make  string `json:"make,omitempty"`
	Model string `json:"model,omitempty"`
	Trim  string `json:"trim,omitempty"`
}
