// Package auth exposes registration and login endpoints.
package auth

import (
	"github.com/gofiber/fiber/v2"

	authsvc "github.com/norrbok/norrbok/pkg/service/auth"
	usersvc "github.com/norrbok/norrbok/pkg/service/user"
	"github.com/norrbok/norrbok/webapi/common"
)

// Routes registers the public auth endpoints.
func Routes(app *fiber.App, authSvc *authsvc.Service, userSvc *usersvc.Service) {
	app.Post("/auth/register", Register(userSvc))
	app.Post("/auth/login", Login(authSvc))
}

// Register creates a new user account.
// @Summary Register user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterInput true "Registration data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /auth/register [post]
func Register(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterInput](c)
		if input == nil {
			return err
		}
		u, err := userSvc.Register(c.Context(), input.Username, input.Email, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Registration failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "User registered", UserDTO{
			ID:       u.ID.String(),
			Username: u.Username,
			Email:    u.Email,
		})
	}
}

// Login authenticates a user and returns a JWT token.
// @Summary User login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /auth/login [post]
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		token, err := authSvc.Login(c.Context(), input.Identity, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Login failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Login successful", fiber.Map{
			"token": token,
		})
	}
}
