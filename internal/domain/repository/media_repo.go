package repository

import (
	"context"
)

// MediaRepository загружает файлы на внешний медиа-хостинг
type MediaRepository interface {
	// Upload возвращает защищённый (https) URL загруженного файла
	Upload(ctx context.Context, data []byte, publicID, folder string) (string, error)
}
