package domain

// Image описывает запись изображения товара в каталоге.
// StorageKey — идентификатор объекта во внешнем медиа-хранилище;
// nil для записей, чьи файлы хранятся вне него.
type Image struct {
	ID           int64
	ProductID    int64
	ImageURL     string
	StorageKey   *string
	IsMain       bool
	DisplayOrder int32
}

func NewMainImage(productID int64, imageURL string, storageKey string) *Image {
	return &Image{
		ProductID:    productID,
		ImageURL:     imageURL,
		StorageKey:   &storageKey,
		IsMain:       true,
		DisplayOrder: 0,
	}
}
