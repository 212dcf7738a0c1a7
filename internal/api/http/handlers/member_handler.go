package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tenderdesk/procurement-service/internal/api/dto"
	"github.com/tenderdesk/procurement-service/internal/auth"
	"github.com/tenderdesk/procurement-service/internal/domain"
	"github.com/tenderdesk/procurement-service/internal/service"
	apperrors "github.com/tenderdesk/procurement-service/pkg/util"
)

// MemberHandler exposes self-service endpoints for members.
type MemberHandler struct {
	members *service.MemberService
	items   *service.ItemService
}

// NewMemberHandler constructs handler.
func NewMemberHandler(members *service.MemberService, items *service.ItemService) *MemberHandler {
	return &MemberHandler{members: members, items: items}
}

// Profile handles GET /member/profile.
func (h *MemberHandler) Profile(c *fiber.Ctx) error {
	caller, err := currentMember(c)
	if err != nil {
		return err
	}
	user, err := h.members.Profile(c.UserContext(), caller.ID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", user)
}

// ListItems handles GET /member/items.
func (h *MemberHandler) ListItems(c *fiber.Ctx) error {
	caller, err := currentMember(c)
	if err != nil {
		return err
	}
	items, err := h.items.ListForMember(c.UserContext(), caller.ID)
	if err != nil {
		return err
	}
	return respondList(c, items, "You don't have any procurement item yet")
}

// ListItemsByStatus handles GET /member/items/:status.
func (h *MemberHandler) ListItemsByStatus(c *fiber.Ctx) error {
	caller, err := currentMember(c)
	if err != nil {
		return err
	}
	status := c.Params("status")
	items, err := h.items.ListForMemberByStatus(c.UserContext(), caller.ID, status)
	if err != nil {
		return err
	}
	return respondList(c, items, "No items found with status "+status)
}

// GetItem handles GET /member/item/:id.
func (h *MemberHandler) GetItem(c *fiber.Ctx) error {
	caller, err := currentMember(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := h.items.GetForMember(c.UserContext(), caller.ID, id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", item)
}

// CreateItem handles POST /member/item.
func (h *MemberHandler) CreateItem(c *fiber.Ctx) error {
	caller, err := currentMember(c)
	if err != nil {
		return err
	}
	var req dto.CreateItemRequest
	if err := parseBody(c, &req, msgMissingParams); err != nil {
		return err
	}
	dueDate, err := req.ParseDueDate()
	if err != nil {
		return apperrors.NewValidationError("dueDate must be a valid date", map[string]any{"fields": []string{"dueDate"}})
	}

	item, err := h.items.Create(c.UserContext(), caller.ID, service.ItemCreateInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		URL:         req.URL,
		Quantity:    req.Quantity,
		Price:       req.Price,
		DueDate:     dueDate,
	})
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Item has ben succesfully sent to admin", item)
}

func currentMember(c *fiber.Ctx) (*domain.User, error) {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("Access Denied! Unauthorized User")
	}
	return user, nil
}
