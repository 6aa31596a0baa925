package usecase

import "time"

// PRODUCT USECASE

// CreateProductReq — запрос на создание товара.
// Цены передаются в копейках, файл главного изображения опционален.
type CreateProductReq struct {
	Name           string
	Description    *string
	Brand          *string
	CategoryID     *int64
	PriceCents     int64
	SalePriceCents *int64
	Size           string
	Color          string
	MainImage      *ProductFile
}

// UpdateProductReq — частичное обновление товара: nil-поле не меняется.
type UpdateProductReq struct {
	Name           *string
	Description    *string
	Brand          *string
	CategoryID     *int64
	PriceCents     *int64
	SalePriceCents *int64
	Size           *string
	Color          *string
	MainImage      *ProductFile
}

// ProductFile представляет файл, загруженный через multipart/form-data.
type ProductFile struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

// ProductFields — скалярные поля товара для частичного UPDATE.
// Size/Color сюда не входят: они живут в вариации.
type ProductFields struct {
	Name           *string
	Description    *string
	Brand          *string
	CategoryID     *int64
	PriceCents     *int64
	SalePriceCents *int64
}

// Empty сообщает, что обновлять нечего.
func (f *ProductFields) Empty() bool {
	return f.Name == nil && f.Description == nil && f.Brand == nil &&
		f.CategoryID == nil && f.PriceCents == nil && f.SalePriceCents == nil
}

// CATEGORY USECASE

type CreateCategoryReq struct {
	Name         string
	Description  *string
	ParentID     *int64
	ImageURL     *string
	DisplayOrder *int32
}

type UpdateCategoryReq struct {
	Name         *string
	Description  *string
	ParentID     *int64
	ImageURL     *string
	IsActive     *bool
	DisplayOrder *int32
}

// CategoryFields — поля категории для частичного UPDATE.
type CategoryFields struct {
	Name         *string
	Description  *string
	ParentID     *int64
	ImageURL     *string
	IsActive     *bool
	DisplayOrder *int32
}

func (f *CategoryFields) Empty() bool {
	return f.Name == nil && f.Description == nil && f.ParentID == nil &&
		f.ImageURL == nil && f.IsActive == nil && f.DisplayOrder == nil
}

// INFRASTRUCTURE

// UploadImageReq — запрос на загрузку изображения товара в медиа-хранилище.
type UploadImageReq struct {
	ProductName string
	File        ProductFile
}

// UploadImageRes — результат загрузки: ключ объекта и публичный URL.
type UploadImageRes struct {
	ObjectKey string
	URL       string
}

type WriteRawMessageReq struct {
	ProductID int64
	Payload   []byte
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	ProductCreated  OutboxEventType = "product.created"
	ProductUpdated  OutboxEventType = "product.updated"
	ProductArchived OutboxEventType = "product.archived"
)

// OutboxEvent — событие каталога, записанное в одну транзакцию с изменением данных.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	ProductID   int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// ProductEventPayload — JSON-тело события каталога.
type ProductEventPayload struct {
	EventID    string `json:"event_id"`
	EventType  string `json:"event_type"`
	ProductID  int64  `json:"product_id"`
	Name       string `json:"name"`
	OccurredAt int64  `json:"occurred_at"`
}

// MAPPERS

func NewProductFile(data []byte, mimeType string, size int64, name string) *ProductFile {
	return &ProductFile{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewUploadImageReq(productName string, file ProductFile) *UploadImageReq {
	return &UploadImageReq{
		ProductName: productName,
		File:        file,
	}
}

func NewUploadImageRes(objectKey string, url string) *UploadImageRes {
	return &UploadImageRes{
		ObjectKey: objectKey,
		URL:       url,
	}
}

func NewWriteRawMessageReq(productID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		ProductID: productID,
		Payload:   payload,
	}
}

func NewOutboxEvent(eventID string, eventType OutboxEventType, productID int64, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		ProductID: productID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now().UTC(),
	}
}
