package usecase

import "context"

// MediaInfra — внешнее медиа-хранилище изображений.
// UploadImage синхронно загружает файл и возвращает ключ объекта с публичным URL.
// DeleteObject — синхронное удаление по ключу; вызывающий решает, фатальна ли ошибка.
// CleanupObjects — фоновая компенсация: удаление ключей, осиротевших после отката
// транзакции, с повторами.
type MediaInfra interface {
	UploadImage(ctx context.Context, req *UploadImageReq) (*UploadImageRes, error)
	DeleteObject(ctx context.Context, key string) error
	CleanupObjects(keys []string)
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}
