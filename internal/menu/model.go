package menu

// Item is one orderable menu entry.
type Item struct {
	ID    int
	Name  string
	Price float64
}
