package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobtrail/internal/dtos"
	"jobtrail/internal/services"
)

type ProfileHandler struct {
	Profiles *services.ProfileService
}

func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{Profiles: profiles}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.Profiles.GetOrCreate()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req dtos.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	profile, err := h.Profiles.Update(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UploadResume is POST /profile/resume - multipart upload of a PDF, DOCX or
// TXT resume. The extracted text is normalized and stored on the profile.
func (h *ProfileHandler) UploadResume(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}

	mime := header.Header.Get("Content-Type")
	if mime == "" || mime == "application/octet-stream" {
		mime = services.MimeForFileName(header.Filename)
	}

	text, err := services.ExtractResumeText(mime, data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type. Please upload PDF, DOCX or TXT."})
		return
	}

	normalized, err := h.Profiles.SaveResume(text, header.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save resume"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"text":     normalized,
		"fileName": header.Filename,
	})
}
