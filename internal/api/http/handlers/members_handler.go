package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sukyoungshin/member-directory/internal/api/dto"
	"github.com/sukyoungshin/member-directory/internal/domain"
	"github.com/sukyoungshin/member-directory/internal/repository"
	"github.com/sukyoungshin/member-directory/internal/service"
)

const birthdayLayout = "2006-01-02"

// MembersHandler exposes member directory endpoints.
type MembersHandler struct {
	directory *service.DirectoryService
}

// NewMembersHandler constructs handler.
func NewMembersHandler(directory *service.DirectoryService) *MembersHandler {
	return &MembersHandler{directory: directory}
}

// List handles GET /api/members.
func (h *MembersHandler) List(c *fiber.Ctx) error {
	filter, err := parseMemberFilter(c)
	if err != nil {
		return err
	}
	include := parseInclude(c)

	members, err := h.directory.ListMembers(c.UserContext(), filter)
	if err != nil {
		return err
	}

	resp := make([]dto.MemberResponse, 0, len(members))
	for i := range members {
		item, err := h.memberResponse(c, &members[i], include)
		if err != nil {
			return err
		}
		resp = append(resp, item)
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Get handles GET /api/members/:id.
func (h *MembersHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	member, err := h.directory.GetMember(c.UserContext(), id)
	if err != nil {
		return err
	}
	resp, err := h.memberResponse(c, member, parseInclude(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Create handles POST /api/members.
func (h *MembersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.RoleID == nil || req.JobTitleID == nil {
		return fiber.NewError(http.StatusBadRequest, "role_id and job_title_id required")
	}

	birthday, err := parseBirthday(req.Birthday)
	if err != nil {
		return err
	}

	member, err := h.directory.CreateMember(c.UserContext(), service.CreateMemberInput{
		No:           req.No,
		Name:         req.Name,
		ProfileImg:   req.ProfileImg,
		Gender:       domain.Gender(req.Gender),
		Birthday:     birthday,
		JobStartYear: req.JobStartYear,
		JoinedYear:   req.JoinedYear,
		RoleID:       *req.RoleID,
		JobTitleID:   *req.JobTitleID,
	})
	if err != nil {
		return err
	}
	resp, err := h.memberResponse(c, member, parseInclude(c))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": resp})
}

// Update handles PUT /api/members/:id.
func (h *MembersHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	var req dto.UpdateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	birthday, err := parseBirthday(req.Birthday)
	if err != nil {
		return err
	}

	update := repository.MemberUpdate{
		No:           req.No,
		Name:         req.Name,
		ProfileImg:   req.ProfileImg,
		Birthday:     birthday,
		JobStartYear: req.JobStartYear,
		JoinedYear:   req.JoinedYear,
		RoleID:       req.RoleID,
		JobTitleID:   req.JobTitleID,
	}
	if req.Gender != nil {
		gender := domain.Gender(*req.Gender)
		update.Gender = &gender
	}

	member, err := h.directory.UpdateMember(c.UserContext(), id, update)
	if err != nil {
		return err
	}
	resp, err := h.memberResponse(c, member, parseInclude(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Delete handles DELETE /api/members/:id.
func (h *MembersHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	ok, err := h.directory.DeleteMember(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DeleteMemberResponse{IsSuccess: ok}})
}

// includeSet records which related entities the caller asked for.
type includeSet struct {
	role     bool
	jobTitle bool
}

// memberResponse maps a member, resolving related entities only when the
// caller requested them.
func (h *MembersHandler) memberResponse(c *fiber.Ctx, member *domain.Member, include includeSet) (dto.MemberResponse, error) {
	resp := dto.MemberResponse{
		ID:           member.ID,
		No:           member.No,
		Name:         member.Name,
		ProfileImg:   member.ProfileImg,
		Gender:       member.Gender,
		JobStartYear: member.JobStartYear,
		JoinedYear:   member.JoinedYear,
		RoleID:       member.RoleID,
		JobTitleID:   member.JobTitleID,
	}
	if member.Birthday != nil {
		formatted := member.Birthday.Format(birthdayLayout)
		resp.Birthday = &formatted
	}

	if include.role {
		role, err := h.directory.ResolveRole(c.UserContext(), member)
		if err != nil {
			return dto.MemberResponse{}, err
		}
		if role != nil {
			resp.Role = &dto.RoleResponse{ID: role.ID, Name: role.Name}
		}
	}
	if include.jobTitle {
		title, err := h.directory.ResolveJobTitle(c.UserContext(), member)
		if err != nil {
			return dto.MemberResponse{}, err
		}
		if title != nil {
			resp.JobTitle = &dto.JobTitleResponse{ID: title.ID, Name: title.Name}
		}
	}
	return resp, nil
}

func parseInclude(c *fiber.Ctx) includeSet {
	var include includeSet
	for _, part := range strings.Split(c.Query("include"), ",") {
		switch strings.TrimSpace(part) {
		case "role":
			include.role = true
		case "job_title":
			include.jobTitle = true
		}
	}
	return include
}

func parseMemberFilter(c *fiber.Ctx) (repository.MemberFilter, error) {
	var filter repository.MemberFilter

	if no := c.Query("no"); no != "" {
		filter.No = &no
	}
	if roleID, err := parseInt64Query(c, "role_id"); err != nil {
		return filter, err
	} else if roleID != nil {
		filter.RoleID = roleID
	}
	if titleID, err := parseInt64Query(c, "job_title_id"); err != nil {
		return filter, err
	} else if titleID != nil {
		filter.JobTitleID = titleID
	}
	if genderStr := c.Query("gender"); genderStr != "" {
		gender := domain.Gender(genderStr)
		filter.Gender = &gender
	}

	if year, err := parseIntQueryPtr(c, "job_start_year"); err != nil {
		return filter, err
	} else if year != nil {
		filter.JobStartYear = year
		filter.JobStartYearLess = parseBoolQuery(c, "job_start_year_less", false)
		filter.JobStartYearGreater = parseBoolQuery(c, "job_start_year_greater", false)
	}
	if year, err := parseIntQueryPtr(c, "joined_year"); err != nil {
		return filter, err
	} else if year != nil {
		filter.JoinedYear = year
		filter.JoinedYearLess = parseBoolQuery(c, "joined_year_less", false)
		filter.JoinedYearGreater = parseBoolQuery(c, "joined_year_greater", false)
	}
	return filter, nil
}

func parseIDParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(http.StatusBadRequest, "invalid member id")
	}
	return id, nil
}

func parseBirthday(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(birthdayLayout, *raw)
	if err != nil {
		return nil, fiber.NewError(http.StatusBadRequest, "birthday must be formatted as YYYY-MM-DD")
	}
	return &parsed, nil
}

func parseInt64Query(c *fiber.Ctx, key string) (*int64, error) {
	val := c.Query(key)
	if val == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return nil, fiber.NewError(http.StatusBadRequest, key+" must be an integer")
	}
	return &parsed, nil
}

func parseIntQueryPtr(c *fiber.Ctx, key string) (*int, error) {
	val := c.Query(key)
	if val == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return nil, fiber.NewError(http.StatusBadRequest, key+" must be an integer")
	}
	return &parsed, nil
}

func parseBoolQuery(c *fiber.Ctx, key string, defaultVal bool) bool {
	if val := c.Query(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}
