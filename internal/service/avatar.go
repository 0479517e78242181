package service

import (
	"bytes"
	"log"

	"github.com/disintegration/imaging"
)

const avatarJPEGQuality = 85

// NormalizeAvatar приводит аватар к JPEG, учитывая EXIF-ориентацию, и вписывает
// его в квадрат maxSide×maxSide. Если изображение не удаётся декодировать,
// возвращаются исходные байты: формат проверяет медиа-хостинг.
func NormalizeAvatar(data []byte, maxSide int) []byte {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		log.Printf("[Avatar] Не удалось декодировать изображение (%d байт): %v. Загружаем как есть.", len(data), err)
		return data
	}

	if maxSide > 0 {
		b := img.Bounds()
		if b.Dx() > maxSide || b.Dy() > maxSide {
			img = imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(avatarJPEGQuality)); err != nil {
		log.Printf("[Avatar] Ошибка кодирования JPEG: %v. Загружаем исходный файл.", err)
		return data
	}
	return buf.Bytes()
}
