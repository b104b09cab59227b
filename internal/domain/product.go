package domain

import "encoding/json"

type Category string

const (
	CategorySofa       Category = "sofa"
	CategoryCornerSofa Category = "corner-sofa"
	CategoryArmchair   Category = "armchair"
)

func (c Category) Valid() bool {
	switch c {
	case CategorySofa, CategoryCornerSofa, CategoryArmchair:
		return true
	}
	return false
}

// Fabric is a selectable upholstery variant of a product
type Fabric struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceDelta int64  `json:"priceDelta"`
	Color      string `json:"color"`
}

// Fabrics keeps the catalog order of a product's variants together with an id index.
// The first fabric is the implicit default.
type Fabrics struct {
	list []Fabric
	byID map[string]int
}

func NewFabrics(fabrics ...Fabric) Fabrics {
	f := Fabrics{
		list: make([]Fabric, len(fabrics)),
		byID: make(map[string]int, len(fabrics)),
	}
	copy(f.list, fabrics)
	for i, fabric := range f.list {
		if _, dup := f.byID[fabric.ID]; !dup {
			f.byID[fabric.ID] = i
		}
	}
	return f
}

// Lookup finds a fabric by id. The empty id never matches.
func (f Fabrics) Lookup(id string) (Fabric, bool) {
	if id == "" {
		return Fabric{}, false
	}
	i, ok := f.byID[id]
	if !ok {
		return Fabric{}, false
	}
	return f.list[i], true
}

func (f Fabrics) Default() (Fabric, bool) {
	if len(f.list) == 0 {
		return Fabric{}, false
	}
	return f.list[0], true
}

// All returns a copy of the fabrics in catalog order
func (f Fabrics) All() []Fabric {
	out := make([]Fabric, len(f.list))
	copy(out, f.list)
	return out
}

func (f Fabrics) Len() int {
	return len(f.list)
}

func (f Fabrics) MarshalJSON() ([]byte, error) {
	if f.list == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(f.list)
}

func (f *Fabrics) UnmarshalJSON(data []byte) error {
	var list []Fabric
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*f = NewFabrics(list...)
	return nil
}

type Specs struct {
	Frame    string `json:"frame"`
	Filler   string `json:"filler"`
	Warranty string `json:"warranty"`
	Cover    string `json:"cover"`
}

type Dimensions struct {
	Width  int     `json:"width"`
	Depth  int     `json:"depth"`
	Height int     `json:"height"`
	Sleep  string  `json:"sleep"`
	Weight float64 `json:"weight"` // kg
}

type Review struct {
	Author string `json:"author"`
	Rating int    `json:"rating"`
	Text   string `json:"text"`
	Date   string `json:"date"` // YYYY-MM-DD
}

// Product is immutable once placed in the catalog
type Product struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Category      Category   `json:"category"`
	Badge         string     `json:"badge,omitempty"`
	Price         int64      `json:"price"`
	OriginalPrice int64      `json:"oldPrice,omitempty"` // zero when there is no discount
	Short         string     `json:"short,omitempty"`
	Description   string     `json:"description,omitempty"`
	Images        []string   `json:"images"`
	Fabrics       Fabrics    `json:"fabrics"`
	Specs         Specs      `json:"specs"`
	Dimensions    Dimensions `json:"dimensions"`
	Reviews       []Review   `json:"reviews,omitempty"`
}

// MainImage is the first image reference or an empty string
func (p *Product) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

func (p *Product) HasDiscount() bool {
	return p.OriginalPrice > 0
}
