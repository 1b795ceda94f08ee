package handlers

import (
	applog "procurement/internal/log"
	"procurement/internal/services"
	"procurement/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Position  string `json:"position"`
	Type      string `json:"type"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	email, okEmail := validate.Email(req.Email)
	if !okEmail {
		return fail(c, fiber.StatusBadRequest, "invalid email")
	}
	if !validate.Password(req.Password) {
		return fail(c, fiber.StatusBadRequest, "password must be 8-64 characters")
	}
	if req.Password != req.Password2 {
		return fail(c, fiber.StatusBadRequest, "passwords do not match")
	}
	role, okRole := validate.Role(req.Type)
	if !okRole {
		return fail(c, fiber.StatusBadRequest, "type must be buyer or shop")
	}

	u, err := h.Auth.Register(services.RegisterInput{
		Email:     email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
		Position:  req.Position,
		Type:      role,
	})
	if err == services.ErrEmailTaken {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		applog.Error(c, "auth.register.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "could not register user")
	}

	applog.Audit(c, "auth.register", map[string]any{"email": email, "type": role})
	return created(c, fiber.Map{"message": "user created", "user_id": u.ID})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	email, okEmail := validate.Email(req.Email)
	if !okEmail || req.Password == "" {
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email, "reason": "bad_format"})
		return fail(c, fiber.StatusUnauthorized, services.ErrBadCreds.Error())
	}

	u, token, err := h.Auth.Login(email, req.Password)
	if err == services.ErrBadCreds {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return fail(c, fiber.StatusUnauthorized, err.Error())
	}
	if err != nil {
		applog.Error(c, "auth.login.error", err, nil)
		return fail(c, fiber.StatusInternalServerError, "login failed")
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	return ok(c, fiber.Map{"message": "login successful", "token": token, "user": u})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token, _ := c.Locals("token").(string)
	if token != "" {
		_ = h.Auth.Logout(token)
	}
	applog.Audit(c, "auth.logout", nil)
	return ok(c, fiber.Map{"message": "logout successful"})
}

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	return ok(c, fiber.Map{"user": userFrom(c)})
}

type profileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Company   *string `json:"company"`
	Position  *string `json:"position"`
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	u, err := h.Auth.UpdateProfile(userFrom(c), services.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
		Position:  req.Position,
	})
	if err != nil {
		applog.Error(c, "profile.update.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "could not update profile")
	}
	applog.Audit(c, "profile.update", nil)
	return ok(c, fiber.Map{"message": "profile updated", "user": u})
}
