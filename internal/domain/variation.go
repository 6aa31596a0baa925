package domain

// Variation описывает размер/цвет товара.
// Схема допускает несколько вариаций на товар, но сервис поддерживает ровно одну:
// создание всегда пишет одну запись, обновление работает с первой найденной.
type Variation struct {
	ID        int64
	ProductID int64
	Size      string
	Color     string
}

func NewVariation(productID int64, size, color string) *Variation {
	return &Variation{
		ProductID: productID,
		Size:      size,
		Color:     color,
	}
}
