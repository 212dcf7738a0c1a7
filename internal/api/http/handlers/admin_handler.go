package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/tenderdesk/procurement-service/internal/api/dto"
	"github.com/tenderdesk/procurement-service/internal/service"
)

const msgMissingParams = "All parameter must be filled!"

// AdminHandler exposes member management and item review for admins.
type AdminHandler struct {
	members *service.MemberService
	items   *service.ItemService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(members *service.MemberService, items *service.ItemService) *AdminHandler {
	return &AdminHandler{members: members, items: items}
}

// ListMembers handles GET /admin/members.
func (h *AdminHandler) ListMembers(c *fiber.Ctx) error {
	members, err := h.members.List(c.UserContext())
	if err != nil {
		return err
	}
	return respondList(c, members, "No member found")
}

// CreateMember handles POST /admin/member.
func (h *AdminHandler) CreateMember(c *fiber.Ctx) error {
	var req dto.MemberRequest
	if err := parseBody(c, &req, msgMissingParams); err != nil {
		return err
	}

	member, err := h.members.Create(c.UserContext(), memberInput(req))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Member account succesfully created", member)
}

// UpdateMember handles PUT /admin/member/:id.
func (h *AdminHandler) UpdateMember(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.MemberRequest
	if err := parseBody(c, &req, msgMissingParams); err != nil {
		return err
	}

	member, err := h.members.Update(c.UserContext(), id, memberInput(req))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Member account has succesfully updated", member)
}

// DeleteMember handles DELETE /admin/member/:id.
func (h *AdminHandler) DeleteMember(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.members.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Member account has succesfully deleted", nil)
}

// ListItems handles GET /admin/items.
func (h *AdminHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.items.List(c.UserContext())
	if err != nil {
		return err
	}
	return respondList(c, items, "No item found")
}

// ListItemsByStatus handles GET /admin/items/:status.
func (h *AdminHandler) ListItemsByStatus(c *fiber.Ctx) error {
	status := c.Params("status")
	items, err := h.items.ListByStatus(c.UserContext(), status)
	if err != nil {
		return err
	}
	return respondList(c, items, "No items found with status "+status)
}

// UpdateItemStatus handles PATCH /admin/item/:id.
func (h *AdminHandler) UpdateItemStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateItemStatusRequest
	if err := parseBody(c, &req, msgMissingParams); err != nil {
		return err
	}

	item, err := h.items.UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fmt.Sprintf("Succesfully change item status to %s", item.Status), item)
}

func memberInput(req dto.MemberRequest) service.MemberInput {
	return service.MemberInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
}
