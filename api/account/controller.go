package account

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daniel-torresc/emerald-backend-sub002/api/ctxutil"
	"github.com/daniel-torresc/emerald-backend-sub002/api/response"
	accountapp "github.com/daniel-torresc/emerald-backend-sub002/application/account"
)

type Controller struct {
	service *accountapp.ApplicationService
}

func NewController(service *accountapp.ApplicationService) *Controller {
	return &Controller{service: service}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	accounts := router.Group("/accounts")
	{
		accounts.POST("", c.Open)
		accounts.GET("", c.List)
		accounts.GET("/:id", c.Get)
		accounts.PUT("/:id/alias", c.UpdateAlias)
		accounts.POST("/:id/deposits", c.Deposit)
		accounts.POST("/:id/withdrawals", c.Withdraw)
		accounts.POST("/:id/freeze", c.Freeze)
		accounts.POST("/:id/unfreeze", c.Unfreeze)
		accounts.POST("/:id/close", c.Close)
		accounts.DELETE("/:id", c.Delete)
	}
}

func (c *Controller) Open(ctx *gin.Context) {
	var req accountapp.OpenAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	a, err := c.service.Open(ctxutil.RequestContext(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, a, "Account opened successfully")
}

func (c *Controller) Get(ctx *gin.Context) {
	a, err := c.service.Get(ctxutil.RequestContext(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, a, "Account retrieved successfully")
}

func (c *Controller) List(ctx *gin.Context) {
	var req accountapp.ListAccountsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleError(ctx, err, "Invalid query parameters", http.StatusBadRequest)
		return
	}

	list, err := c.service.List(ctxutil.RequestContext(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePaginated(ctx, list.Accounts, response.NewPagination(req.Page, req.PageSize, list.Total), "Accounts retrieved successfully")
}

func (c *Controller) UpdateAlias(ctx *gin.Context) {
	var req accountapp.UpdateAliasRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	a, err := c.service.UpdateAlias(ctxutil.RequestContext(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, a, "Account alias updated successfully")
}

func (c *Controller) Deposit(ctx *gin.Context) {
	var req accountapp.AmountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	a, err := c.service.Deposit(ctxutil.RequestContext(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, a, "Deposit applied successfully")
}

func (c *Controller) Withdraw(ctx *gin.Context) {
	var req accountapp.AmountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	a, err := c.service.Withdraw(ctxutil.RequestContext(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, a, "Withdrawal applied successfully")
}

func (c *Controller) Freeze(ctx *gin.Context) {
	a, err := c.service.Freeze(ctxutil.RequestContext(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, a, "Account frozen successfully")
}

func (c *Controller) Unfreeze(ctx *gin.Context) {
	a, err := c.service.Unfreeze(ctxutil.RequestContext(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, a, "Account unfrozen successfully")
}

func (c *Controller) Close(ctx *gin.Context) {
	a, err := c.service.Close(ctxutil.RequestContext(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, a, "Account closed successfully")
}

func (c *Controller) Delete(ctx *gin.Context) {
	if err := c.service.Delete(ctxutil.RequestContext(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}
