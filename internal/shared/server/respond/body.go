package respond

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
)

const pdfContentType = "application/pdf"

// JSON writes payload with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// OK writes payload with 200.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}

// PDF sends an in-memory PDF as a download named fileName.
func PDF(c *gin.Context, fileName string, data []byte) {
	c.DataFromReader(http.StatusOK, int64(len(data)), pdfContentType, bytes.NewReader(data), map[string]string{
		"Content-Disposition": `attachment; filename="` + fileName + `"`,
	})
}

// PDFFile streams the PDF at path as a download named fileName.
func PDFFile(c *gin.Context, path, fileName string) {
	c.Header("Content-Type", pdfContentType)
	c.FileAttachment(path, fileName)
}
