package apis

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"charity-events-backend/cmd/charity-events/model"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// maxImageSize is the upload cap, 2 MB.
const maxImageSize = 2 << 20

type UploadAPI struct {
	uploadDir string
}

func NewUploadAPI(uploadDir string) *UploadAPI {

	return &UploadAPI{
		uploadDir: uploadDir,
	}
}

func (a *UploadAPI) Setup(g *echo.Group) {
	g.POST("/upload/image", a.uploadImage)
}

// uploadImage stores one image under a server-assigned filename and
// returns its public path. The file is kept as-is, no processing.
func (a *UploadAPI) uploadImage(c echo.Context) error {

	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.ErrorResponse{
				Error: "no file uploaded",
			},
		)
	}

	if file.Size > maxImageSize {
		return c.JSON(
			http.StatusBadRequest,
			model.ErrorResponse{
				Error: "image must be 2MB or smaller",
			},
		)
	}

	contentType := file.Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, "image/") {
		return c.JSON(
			http.StatusBadRequest,
			model.ErrorResponse{
				Error: "only image files are allowed",
			},
		)
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.ErrorResponse{
				Error: "image upload failed",
			},
		)
	}
	defer src.Close()

	id, err := uuid.NewV7()
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.ErrorResponse{
				Error: "image upload failed",
			},
		)
	}

	name := id.String() + strings.ToLower(filepath.Ext(file.Filename))

	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.ErrorResponse{
				Error: "image upload failed",
			},
		)
	}

	dst, err := os.Create(filepath.Join(a.uploadDir, name))
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.ErrorResponse{
				Error: "image upload failed",
			},
		)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.ErrorResponse{
				Error: "image upload failed",
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.UploadResponse{
			Message:   "image uploaded successfully",
			ImagePath: "/img/" + name,
		},
	)
}
