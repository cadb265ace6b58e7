package upload

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cordonbleu-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	FormField   = "image"
	PublicPath  = "/uploads"
	filePrefix  = "image"
	suffixChars = 8
)

var allowedTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

type ImageResponse struct {
	FilePath string `json:"filePath"`
}

// POST /api/upload/image (multipart, field "image")
// The file is written synchronously. Names are unique by timestamp plus a
// random suffix, nothing guards against two writers picking the same name.
func ImageHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile(FormField)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No file selected")
		}

		if fileHeader.Size > cfg.MaxUploadBytes {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("File too large, limit is %d bytes", cfg.MaxUploadBytes))
		}

		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		wantType, ok := allowedTypes[ext]
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Error: Images Only! (jpeg, jpg, png, gif)")
		}
		if ct := fileHeader.Header.Get(fiber.HeaderContentType); ct != "" && !strings.HasPrefix(ct, wantType) {
			return fiber.NewError(fiber.StatusBadRequest, "Error: Images Only! (jpeg, jpg, png, gif)")
		}

		if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
			log.Printf("upload: create dir %s: %v", cfg.UploadDir, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Image could not be stored")
		}

		name := fmt.Sprintf("%s-%d-%s%s", filePrefix, time.Now().UnixMilli(), uuid.NewString()[:suffixChars], ext)
		if err := c.SaveFile(fileHeader, filepath.Join(cfg.UploadDir, name)); err != nil {
			log.Printf("upload: save %s: %v", name, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Image could not be stored")
		}

		return c.JSON(ImageResponse{FilePath: PublicPath + "/" + name})
	}
}
