package handlers

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"h2o-bounty/internal/config"
	"h2o-bounty/internal/middleware"
	"h2o-bounty/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Board image hosting. The returned URL goes into create_board's img_url.

const maxImageSize = 5 << 20

var allowedImageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}

// Fungsi untuk validasi file
func validateImage(file *multipart.FileHeader) error {
	if file.Size > maxImageSize {
		return fiber.NewError(fiber.StatusBadRequest, "File size exceeds the limit of 5MB")
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return fiber.NewError(fiber.StatusBadRequest, "File type not allowed")
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return fiber.NewError(fiber.StatusBadRequest, "File must be an image")
	}
	return nil
}

// GetFile serves an uploaded image. Only the base name is honoured.
func GetFile(c *fiber.Ctx) error {
	filename := filepath.Base(c.Params("filename"))
	if filename == "." || filename == string(filepath.Separator) {
		return respond(c, fiber.StatusNotFound, "File not found", nil)
	}
	filePath := filepath.Join(config.UploadDir, filename)
	if _, err := os.Stat(filePath); err != nil {
		return respond(c, fiber.StatusNotFound, "File not found", nil)
	}
	return c.SendFile(filePath)
}

func UploadBoardImage(c *fiber.Ctx) error {
	if err := os.MkdirAll(config.UploadDir, os.ModePerm); err != nil {
		logger.ErrorLogger.Error("Error creating upload directory", zap.Error(err))
		return respond(c, fiber.StatusInternalServerError, "Error creating upload directory", nil)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return badRequest(c, "Error uploading file", err)
	}
	if err := validateImage(file); err != nil {
		return badRequest(c, err.Error(), nil)
	}

	newFilename := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	if err := c.SaveFile(file, filepath.Join(config.UploadDir, newFilename)); err != nil {
		logger.ErrorLogger.Error("Error saving file", zap.Error(err))
		return respond(c, fiber.StatusInternalServerError, "Error saving file", nil)
	}

	imgURL := fmt.Sprintf("%s/api/v1/upload/%s", strings.TrimRight(config.PublicURL, "/"), newFilename)
	logger.AuditLogger.Info("Board image uploaded",
		zap.String("filename", newFilename),
		zap.String("address", middleware.Address(c)))
	return respond(c, fiber.StatusOK, "File uploaded successfully", fiber.Map{
		"filename": newFilename,
		"size":     file.Size,
		"img_url":  imgURL,
	})
}
