package handlers

import (
	"net/http"

	"gigup_backend/internal/services"
	"gigup_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ContractHandler struct {
	*BaseHandler
	contractService services.ContractService
}

func NewContractHandler(base *BaseHandler, contractService services.ContractService) *ContractHandler {
	return &ContractHandler{
		BaseHandler:     base,
		contractService: contractService,
	}
}

func (h *ContractHandler) RegisterRoutes(rg *gin.RouterGroup) {
	contracts := rg.Group("/contracts")
	{
		contracts.POST("", h.CreateContract)
		contracts.GET("/:id", h.GetContract)
		contracts.POST("/:id/sign", h.SignContract)
	}

	rg.GET("/user/contracts", h.ListMine)
}

func (h *ContractHandler) CreateContract(c *gin.Context) {
	user, ok := h.RequireApproved(c)
	if !ok {
		return
	}

	var req dto.CreateContractRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.contractService.CreateContract(c.Request.Context(), h.GetDB(c), user.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ContractHandler) SignContract(c *gin.Context) {
	user, ok := h.RequireApproved(c)
	if !ok {
		return
	}

	var req dto.SignContractRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.contractService.SignContract(c.Request.Context(), h.GetDB(c), user.ID, c.Param("id"), req.Signature)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ContractHandler) GetContract(c *gin.Context) {
	user, ok := h.RequireApproved(c)
	if !ok {
		return
	}

	resp, err := h.contractService.GetContract(c.Request.Context(), h.GetDB(c), user.ID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ContractHandler) ListMine(c *gin.Context) {
	user, ok := h.RequireApproved(c)
	if !ok {
		return
	}

	resp, err := h.contractService.ListForUser(c.Request.Context(), h.GetDB(c), user.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
