package handlers

import "github.com/gin-gonic/gin"

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	UserHandler        *UserHandler
	GigHandler         *GigHandler
	MatchingHandler    *MatchingHandler
	ApplicationHandler *ApplicationHandler
	ContractHandler    *ContractHandler
	ReviewHandler      *ReviewHandler
	AdminHandler       *AdminHandler
}

// RegisterRoutes регистрирует все группы. Статический /gigs/recommended
// gin матчит раньше /gigs/:id
func (a *AppHandlers) RegisterRoutes(api *gin.RouterGroup, limit gin.HandlerFunc) {
	a.AuthHandler.RegisterRoutes(api, limit)
	a.UserHandler.RegisterRoutes(api)
	a.GigHandler.RegisterRoutes(api)
	a.MatchingHandler.RegisterRoutes(api)
	a.ApplicationHandler.RegisterRoutes(api)
	a.ContractHandler.RegisterRoutes(api)
	a.ReviewHandler.RegisterRoutes(api)
	a.AdminHandler.RegisterRoutes(api)
}
