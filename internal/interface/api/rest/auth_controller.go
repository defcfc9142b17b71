package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"imageresizer/internal/application/ports"
	"imageresizer/internal/application/services"
	domain "imageresizer/internal/domain/user"
	"imageresizer/internal/infrastructure/jwt"
	"imageresizer/internal/interface/api/rest/dto/auth"
	"imageresizer/internal/interface/api/rest/dto/response"
	"imageresizer/internal/interface/api/rest/dto/user"
	"imageresizer/internal/interface/api/rest/middleware"
	"imageresizer/internal/interface/api/rest/validator"
)

const (
	msgInvalidBody        = "Invalid request body"
	msgValidationFailed   = "Validation failed"
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgUserNotFound       = "User not found"
	msgServerError        = "Server error"
)

type AuthController struct {
	logger      *zap.Logger
	userService ports.UserService
	authService ports.Auth
}

// NewAuthController registers the auth routes. limiter guards register and
// login; the profile route only needs a valid token.
func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	userService ports.UserService,
	authService ports.Auth,
	jwtService *jwt.Service,
	limiter gin.HandlerFunc,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		userService: userService,
		authService: authService,
	}

	r.POST(RouteRegister, limiter, ac.RegisterHandler)
	r.POST(RouteLogin, limiter, ac.LoginHandler)
	r.GET(RouteProfile, middleware.AuthMiddleware(jwtService), ac.ProfileHandler)

	return ac
}

func (ac *AuthController) RegisterHandler(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail(msgInvalidBody))
		return
	}

	if errs := validator.ValidateRegister(req); errs != nil {
		c.JSON(http.StatusBadRequest, response.Invalid(msgValidationFailed, errs))
		return
	}

	u, err := ac.userService.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			c.JSON(http.StatusBadRequest, response.Fail(msgUserExists))
			return
		}
		ac.logger.Error("Register() error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, response.Internal(msgServerError, err))
		return
	}

	token, err := ac.authService.IssueToken(u)
	if err != nil {
		ac.logger.Error("IssueToken() error", zap.Error(err), zap.String("user_id", u.ID))
		c.JSON(http.StatusInternalServerError, response.Internal(msgServerError, err))
		return
	}

	c.JSON(http.StatusCreated, auth.Response{
		Success: true,
		Message: "User registered successfully",
		Token:   token,
		User:    user.ToResponseUser(*u),
	})
}

func (ac *AuthController) LoginHandler(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail(msgInvalidBody))
		return
	}

	if errs := validator.ValidateLogin(req); errs != nil {
		c.JSON(http.StatusBadRequest, response.Invalid(msgValidationFailed, errs))
		return
	}

	u, err := ac.userService.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		ac.logger.Error("FindByEmail() error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, response.Internal(msgServerError, err))
		return
	}
	if u == nil {
		c.JSON(http.StatusUnauthorized, response.Fail(msgInvalidCredentials))
		return
	}

	token, err := ac.authService.GenerateToken(u, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, response.Fail(msgInvalidCredentials))
			return
		}
		ac.logger.Error("GenerateToken() error", zap.Error(err), zap.String("user_id", u.ID))
		c.JSON(http.StatusInternalServerError, response.Internal(msgServerError, err))
		return
	}

	c.JSON(http.StatusOK, auth.Response{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    user.ToResponseUser(*u),
	})
}

func (ac *AuthController) ProfileHandler(c *gin.Context) {
	u, err := ac.userService.FindUserByID(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		ac.logger.Error("FindUserByID() error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, response.Internal(msgServerError, err))
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, response.Fail(msgUserNotFound))
		return
	}

	c.JSON(http.StatusOK, auth.ProfileResponse{
		Success: true,
		User:    user.ToResponseUser(*u),
	})
}
