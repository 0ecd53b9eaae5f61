package accounttype

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daniel-torresc/emerald-backend-sub002/api/ctxutil"
	"github.com/daniel-torresc/emerald-backend-sub002/api/response"
	accounttypeapp "github.com/daniel-torresc/emerald-backend-sub002/application/accounttype"
)

type Controller struct {
	service *accounttypeapp.ApplicationService
}

func NewController(service *accounttypeapp.ApplicationService) *Controller {
	return &Controller{service: service}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	types := router.Group("/account-types")
	{
		types.POST("", c.Create)
		types.GET("", c.List)
		types.GET("/:id", c.Get)
		types.PUT("/:id", c.Update)
		types.DELETE("/:id", c.Delete)
	}
}

func (c *Controller) Create(ctx *gin.Context) {
	var req accounttypeapp.CreateAccountTypeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	t, err := c.service.Create(ctxutil.RequestContext(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, t, "Account type created successfully")
}

func (c *Controller) Get(ctx *gin.Context) {
	t, err := c.service.Get(ctxutil.RequestContext(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, t, "Account type retrieved successfully")
}

func (c *Controller) List(ctx *gin.Context) {
	var req accounttypeapp.ListAccountTypesRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleError(ctx, err, "Invalid query parameters", http.StatusBadRequest)
		return
	}

	list, err := c.service.List(ctxutil.RequestContext(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePaginated(ctx, list.AccountTypes, response.NewPagination(req.Page, req.PageSize, list.Total), "Account types retrieved successfully")
}

func (c *Controller) Update(ctx *gin.Context) {
	var req accounttypeapp.UpdateAccountTypeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	t, err := c.service.Update(ctxutil.RequestContext(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, t, "Account type updated successfully")
}

func (c *Controller) Delete(ctx *gin.Context) {
	if err := c.service.Delete(ctxutil.RequestContext(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}
