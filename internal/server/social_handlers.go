package server

import (
	"tastebook/internal/models"
	"tastebook/internal/service"
	"tastebook/internal/session"

	"github.com/gofiber/fiber/v2"
)

// ListFriends handles GET /api/friends.
func (s *Server) ListFriends(c *fiber.Ctx) error {
	friends := models.FriendsOf(s.records.Snapshot(), currentUserID(c))
	out := make([]fiber.Map, 0, len(friends))
	for _, f := range friends {
		out = append(out, fiber.Map{
			"id":       f.ID,
			"username": f.Username,
			"name":     f.DisplayName(),
			"avatar":   f.DisplayAvatar(),
		})
	}
	return c.JSON(fiber.Map{"friends": out})
}

// AddFriend handles POST /api/friends/:userId.
func (s *Server) AddFriend(c *fiber.Ctx) error {
	friendship, err := s.friendService.AddFriend(c.Context(), currentUserID(c), c.Params("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(friendship)
}

// OpenChat handles POST /api/chat/:userId: selects the conversation partner
// and lands on the messages page.
func (s *Server) OpenChat(c *fiber.Ctx) error {
	partnerID := c.Params("userId")
	if models.UserByID(s.records.Snapshot(), partnerID) == nil {
		return respondError(c, models.NewNotFoundError("user", partnerID))
	}

	s.session.SelectChatPartner(partnerID)
	if err := s.session.Navigate(session.PageMessages); err != nil {
		return respondError(c, models.NewInternalError(err))
	}
	s.screen.Refresh()
	return c.JSON(fiber.Map{"status": "ok"})
}

// SendMessage handles POST /api/messages/:userId.
func (s *Server) SendMessage(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	msg, err := s.messageService.Send(c.Context(), service.SendInput{
		SenderID:    currentUserID(c),
		RecipientID: c.Params("userId"),
		Text:        req.Text,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// UpdateProfile handles PUT /api/profile. The form may carry a new avatar
// image.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	avatar, err := s.processUpload(c, "avatar")
	if err != nil {
		return respondError(c, err)
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID: currentUserID(c),
		Name:   c.FormValue("name"),
		Bio:    c.FormValue("bio"),
		Avatar: avatar,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"id":   user.ID,
		"name": user.DisplayName(),
	})
}
