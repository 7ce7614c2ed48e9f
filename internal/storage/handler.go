package storage

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// 5 MB'den büyük model görseli kabul edilmez
const maxImageSize = 5 << 20

var allowedImageExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// POST /api/uploads/model-image
func UploadModelImageHandler(store ImageStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if store == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Görsel deposu yapılandırılmamış")
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya alınamadı, 'file' alanı zorunlu")
		}
		if fileHeader.Size > maxImageSize {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya çok büyük, en fazla 5 MB olabilir")
		}

		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		contentType, ok := allowedImageExt[ext]
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece JPG, PNG veya WEBP yüklenebilir")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya açılamadı")
		}
		defer file.Close()

		fileName := uuid.NewString() + ext
		url, err := store.Upload(c.Context(), fileName, contentType, file)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		return c.JSON(fiber.Map{"url": url})
	}
}
