package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sukyoungshin/member-directory/internal/api/dto"
	"github.com/sukyoungshin/member-directory/internal/service"
)

// JobTitlesHandler exposes the read-only job title option list.
type JobTitlesHandler struct {
	directory *service.DirectoryService
}

// NewJobTitlesHandler constructs handler.
func NewJobTitlesHandler(directory *service.DirectoryService) *JobTitlesHandler {
	return &JobTitlesHandler{directory: directory}
}

// List handles GET /api/job-titles.
func (h *JobTitlesHandler) List(c *fiber.Ctx) error {
	titles, err := h.directory.ListJobTitles(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.JobTitleResponse, 0, len(titles))
	for _, title := range titles {
		resp = append(resp, dto.JobTitleResponse{ID: title.ID, Name: title.Name})
	}
	return c.JSON(fiber.Map{"data": resp})
}
