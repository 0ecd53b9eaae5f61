package card

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daniel-torresc/emerald-backend-sub002/api/ctxutil"
	"github.com/daniel-torresc/emerald-backend-sub002/api/response"
	cardapp "github.com/daniel-torresc/emerald-backend-sub002/application/card"
)

type Controller struct {
	service *cardapp.ApplicationService
}

func NewController(service *cardapp.ApplicationService) *Controller {
	return &Controller{service: service}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	cards := router.Group("/cards")
	{
		cards.POST("", c.Issue)
		cards.GET("", c.List)
		cards.GET("/:id", c.Get)
		cards.PUT("/:id/status", c.UpdateStatus)
		cards.DELETE("/:id", c.Delete)
	}
}

func (c *Controller) Issue(ctx *gin.Context) {
	var req cardapp.IssueCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	card, err := c.service.Issue(ctxutil.RequestContext(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, card, "Card issued successfully")
}

func (c *Controller) Get(ctx *gin.Context) {
	card, err := c.service.Get(ctxutil.RequestContext(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, card, "Card retrieved successfully")
}

func (c *Controller) List(ctx *gin.Context) {
	var req cardapp.ListCardsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleError(ctx, err, "Invalid query parameters", http.StatusBadRequest)
		return
	}

	list, err := c.service.List(ctxutil.RequestContext(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePaginated(ctx, list.Cards, response.NewPagination(req.Page, req.PageSize, list.Total), "Cards retrieved successfully")
}

func (c *Controller) UpdateStatus(ctx *gin.Context) {
	var req cardapp.UpdateCardStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	card, err := c.service.UpdateStatus(ctxutil.RequestContext(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, card, "Card status updated successfully")
}

func (c *Controller) Delete(ctx *gin.Context) {
	if err := c.service.Delete(ctxutil.RequestContext(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}
