package server

import (
	"io"
	"mime/multipart"

	"tastebook/internal/middleware"
	"tastebook/internal/models"

	"github.com/gofiber/fiber/v2"
)

// respondError maps an application error onto the standard error response.
func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *fiber.Ctx) string {
	if id, ok := c.Locals(middleware.UserIDKey).(string); ok {
		return id
	}
	return ""
}

// formFileBytes reads an optional multipart file field. A missing field
// returns nil bytes and no error.
func formFileBytes(c *fiber.Ctx, field string) ([]byte, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	return readMultipartFile(header)
}

func readMultipartFile(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// processUpload runs the image pipeline for an optional upload and guards
// against the session moving while the resize was in flight: a stale result
// is discarded instead of overwriting current state.
func (s *Server) processUpload(c *fiber.Ctx, field string) (string, error) {
	data, err := formFileBytes(c, field)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	if len(data) == 0 {
		return "", nil
	}

	gen := s.session.Generation()
	dataURL, err := s.processor.Process(data)
	if err != nil {
		return "", err
	}
	if s.session.Generation() != gen {
		return "", models.NewValidationError("Session changed during upload, try again")
	}
	return dataURL, nil
}
