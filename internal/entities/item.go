package entities

// ItemTypeResource tags raw materials produced by GATHER
const ItemTypeResource = "resource"

// Item is a stack of some material. An empty OwnerID means communal stock.
type Item struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Quantity int    `json:"quantity" yaml:"quantity"`
	Type     string `json:"type" yaml:"type"`
	OwnerID  string `json:"owner_id,omitempty" yaml:"owner_id,omitempty"`
}

// Communal reports whether the item belongs to the shared stock
func (i *Item) Communal() bool {
	return i.OwnerID == ""
}
