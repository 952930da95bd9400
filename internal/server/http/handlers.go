// Package http exposes the vault core to the web shell over HTTP/JSON.
package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/igwenababa1/scbvault/internal/common"
	"github.com/igwenababa1/scbvault/internal/logging"
	"github.com/igwenababa1/scbvault/internal/models"
	"github.com/igwenababa1/scbvault/internal/server/auth"
	"github.com/igwenababa1/scbvault/internal/services"
	"github.com/igwenababa1/scbvault/internal/session"
)

// Handler bundles the auth service and shell session manager behind the
// HTTP routes.
type Handler struct {
	auth      *services.AuthService
	shell     *session.Manager
	logger    logging.Logger
	secretKey []byte
	tokenTTL  time.Duration
}

func NewHandler(authService *services.AuthService, shell *session.Manager, logger logging.Logger, secretKey []byte, tokenTTL time.Duration) *Handler {
	return &Handler{
		auth:      authService,
		shell:     shell,
		logger:    logger,
		secretKey: secretKey,
		tokenTTL:  tokenTTL,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type snapshotRequest struct {
	IsLoggedIn bool   `json:"isLoggedIn"`
	View       string `json:"view"`
}

type viewRequest struct {
	View string `json:"view"`
}

func userPayload(u *models.UserRecord) fiber.Map {
	return fiber.Map{
		"id":        u.ID,
		"email":     u.Email,
		"profile":   u.Profile,
		"settings":  u.Settings,
		"createdAt": u.CreatedAt,
	}
}

func (h *Handler) authPayload(user *models.UserRecord) (fiber.Map, error) {
	token, err := auth.GenerateToken(user.ID, h.secretKey, h.tokenTTL)
	if err != nil {
		return nil, err
	}
	return fiber.Map{
		"token":     token,
		"expiresAt": time.Now().Add(h.tokenTTL).UTC(),
	}, nil
}

// Live handles GET /health/live.
func (h *Handler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email and password required")
	}

	user, err := h.auth.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrorInvalidCredential):
			// One message for both cases so the response does not reveal
			// whether the email exists.
			return fiber.NewError(fiber.StatusUnauthorized, "invalid email or password")
		case errors.Is(err, common.ErrorOperationInFlight):
			return fiber.NewError(fiber.StatusConflict, "another sign-in is already in progress")
		}
		h.logger.Error(c.Context(), "login failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, common.ErrorInternal.Error())
	}

	authData, err := h.authPayload(user)
	if err != nil {
		h.logger.Error(c.Context(), "token generation failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, common.ErrorInternal.Error())
	}

	return c.JSON(fiber.Map{"data": fiber.Map{"user": userPayload(user), "auth": authData}})
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req models.Registration
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "firstName, lastName, email required")
	}

	user, err := h.auth.Register(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			return fiber.NewError(fiber.StatusConflict, "an account with this email already exists")
		case errors.Is(err, common.ErrorOperationInFlight):
			return fiber.NewError(fiber.StatusConflict, "another sign-up is already in progress")
		}
		h.logger.Error(c.Context(), "registration failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, common.ErrorInternal.Error())
	}

	authData, err := h.authPayload(user)
	if err != nil {
		h.logger.Error(c.Context(), "token generation failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, common.ErrorInternal.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"user": userPayload(user), "auth": authData}})
}

// Logout handles POST /api/auth/logout.
func (h *Handler) Logout(c *fiber.Ctx) error {
	if err := h.auth.Logout(c.Context()); err != nil {
		h.logger.Error(c.Context(), "logout failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, common.ErrorInternal.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Session handles GET /api/auth/session. Responds 204 when no user is
// current.
func (h *Handler) Session(c *fiber.Ctx) error {
	user, err := h.auth.CurrentUser(c.Context())
	if err != nil {
		h.logger.Error(c.Context(), "session lookup failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, common.ErrorInternal.Error())
	}
	if user == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"user": userPayload(user)}})
}

// UpdateProfile handles PUT /api/profile.
func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	var settings models.Settings
	if err := c.BodyParser(&settings); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.auth.UpdateProfile(c.Context(), settings); err != nil {
		switch {
		case errors.Is(err, common.ErrorNoActiveSession):
			return fiber.NewError(fiber.StatusUnauthorized, "no active session")
		case errors.Is(err, common.ErrorRecordCorruption):
			// Data-integrity violation, not a user error: logged loudly,
			// reported opaquely.
			h.logger.Error(c.Context(), "record corruption on profile update")
			return fiber.NewError(fiber.StatusInternalServerError, common.ErrorInternal.Error())
		}
		h.logger.Error(c.Context(), "profile update failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, common.ErrorInternal.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// OfferSnapshot handles GET /api/shell/snapshot: returns the restorable
// snapshot and opens the restore prompt, or 204 when there is nothing worth
// restoring.
func (h *Handler) OfferSnapshot(c *fiber.Ctx) error {
	snap, err := h.shell.Offer(c.Context())
	if err != nil {
		h.logger.Error(c.Context(), "snapshot offer failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, common.ErrorInternal.Error())
	}
	if snap == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"snapshot": snap}})
}

// SaveSnapshot handles PUT /api/shell/snapshot: persists shell state on
// every change. Writes are dropped while a restore prompt is pending.
func (h *Handler) SaveSnapshot(c *fiber.Ctx) error {
	var req snapshotRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := h.shell.Save(c.Context(), req.IsLoggedIn, req.View); err != nil {
		h.logger.Error(c.Context(), "snapshot save failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, common.ErrorInternal.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RestoreSnapshot handles POST /api/shell/snapshot/restore.
func (h *Handler) RestoreSnapshot(c *fiber.Ctx) error {
	snap, err := h.shell.Restore(c.Context())
	if err != nil {
		h.logger.Error(c.Context(), "snapshot restore failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, common.ErrorInternal.Error())
	}
	if snap == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"snapshot": snap}})
}

// DiscardSnapshot handles POST /api/shell/snapshot/discard.
func (h *Handler) DiscardSnapshot(c *fiber.Ctx) error {
	if err := h.shell.Discard(c.Context()); err != nil {
		h.logger.Error(c.Context(), "snapshot discard failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, common.ErrorInternal.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetDashboardView handles PUT /api/shell/view.
func (h *Handler) SetDashboardView(c *fiber.Ctx) error {
	var req viewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := h.shell.SetDashboardView(c.Context(), req.View); err != nil {
		h.logger.Error(c.Context(), "dashboard view save failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, common.ErrorInternal.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
