package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sukyoungshin/member-directory/internal/api/dto"
	"github.com/sukyoungshin/member-directory/internal/service"
)

// RolesHandler exposes the read-only role option list.
type RolesHandler struct {
	directory *service.DirectoryService
}

// NewRolesHandler constructs handler.
func NewRolesHandler(directory *service.DirectoryService) *RolesHandler {
	return &RolesHandler{directory: directory}
}

// List handles GET /api/roles.
func (h *RolesHandler) List(c *fiber.Ctx) error {
	roles, err := h.directory.ListRoles(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.RoleResponse, 0, len(roles))
	for _, role := range roles {
		resp = append(resp, dto.RoleResponse{ID: role.ID, Name: role.Name})
	}
	return c.JSON(fiber.Map{"data": resp})
}
