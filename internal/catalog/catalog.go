package catalog

// Line is one purchasable item during order entry. Quantity is the single
// source of truth for selection; there is no stored selected flag.
type Line struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	ImageRef string  `json:"imageRef"`
}

func (l Line) Selected() bool {
	return l.Quantity > 0
}

func (l Line) Total() float64 {
	return float64(l.Quantity) * l.Price
}

var defaultMenu = []Line{
	{Name: "Sada Roti", Price: 15, ImageRef: "/images/sada-roti.png"},
	{Name: "k. Roti", Price: 30, ImageRef: "/images/k-roti.png"},
	{Name: "Kulcha", Price: 40, ImageRef: "/images/kulcha.png"},
	{Name: "Sada Nan", Price: 30, ImageRef: "/images/sada-nan.png"},
	{Name: "Roghni Nan", Price: 80, ImageRef: "/images/roghni-nan.png"},
	{Name: "Alo w. Nan", Price: 80, ImageRef: "/images/alo-w-nan.png"},
	{Name: "Channy", Price: 100, ImageRef: "/images/channy.png"},
	{Name: "Paratha", Price: 20, ImageRef: "/images/paratha.png"},
}

// DefaultMenu returns a fresh copy of the menu with zero quantities and
// default prices.
func DefaultMenu() []Line {
	menu := make([]Line, len(defaultMenu))
	copy(menu, defaultMenu)
	return menu
}
