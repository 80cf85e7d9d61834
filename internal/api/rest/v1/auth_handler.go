package v1

import (
	"net/http"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// AuthHandler struct holds the services
type AuthHandler interface {
	Register(ctx *gin.Context)
	Login(ctx *gin.Context)
	Logout(ctx *gin.Context)
	Me(ctx *gin.Context)
}

type authHandler struct {
	authService users.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService users.AuthService) AuthHandler {
	return &authHandler{
		authService: authService,
	}
}

// Register handles the POST request to create an account
func (handler *authHandler) Register(ctx *gin.Context) {
	credentials, ok := bindCredentials(ctx)
	if !ok {
		return
	}

	user, token, err := handler.authService.Register(ctx, credentials)
	if err != nil {
		respondError(ctx, err)
		return
	}

	userResponse := NewUserResponse(user)
	ctx.JSON(http.StatusCreated, TokenResponse{
		Token:     token.Key,
		ExpiresAt: token.ExpiresAt,
		User:      &userResponse,
	})
}

// Login handles the POST request to issue a token
func (handler *authHandler) Login(ctx *gin.Context) {
	credentials, ok := bindCredentials(ctx)
	if !ok {
		return
	}

	token, err := handler.authService.Login(ctx, credentials)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, TokenResponse{
		Token:     token.Key,
		ExpiresAt: token.ExpiresAt,
	})
}

// Logout handles the POST request to revoke the token of the request
func (handler *authHandler) Logout(ctx *gin.Context) {
	if err := handler.authService.Logout(ctx, ctx.GetString(tokenContextKey)); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
	ctx.Writer.WriteHeaderNow()
}

// Me handles the GET request for the authenticated user
func (handler *authHandler) Me(ctx *gin.Context) {
	user := currentUser(ctx)
	if user == nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "authentication required"})
		return
	}

	ctx.JSON(http.StatusOK, NewUserResponse(user))
}

func bindCredentials(ctx *gin.Context) (*users.Credentials, bool) {
	var request CredentialsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, "invalid request body")
		return nil, false
	}
	if err := request.Validate(); err != nil {
		badRequest(ctx, err.Error())
		return nil, false
	}

	return &users.Credentials{
		Username: request.Username,
		Password: request.Password,
	}, true
}
