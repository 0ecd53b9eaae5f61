package institution

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daniel-torresc/emerald-backend-sub002/api/ctxutil"
	"github.com/daniel-torresc/emerald-backend-sub002/api/response"
	institutionapp "github.com/daniel-torresc/emerald-backend-sub002/application/institution"
)

type Controller struct {
	service *institutionapp.ApplicationService
}

func NewController(service *institutionapp.ApplicationService) *Controller {
	return &Controller{service: service}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	institutions := router.Group("/institutions")
	{
		institutions.POST("", c.Create)
		institutions.GET("", c.List)
		institutions.GET("/:id", c.Get)
		institutions.GET("/code/:code", c.GetByCode)
		institutions.PUT("/:id", c.Update)
		institutions.DELETE("/:id", c.Delete)
	}
}

func (c *Controller) Create(ctx *gin.Context) {
	var req institutionapp.CreateInstitutionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	fi, err := c.service.Create(ctxutil.RequestContext(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, fi, "Institution created successfully")
}

func (c *Controller) Get(ctx *gin.Context) {
	fi, err := c.service.Get(ctxutil.RequestContext(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, fi, "Institution retrieved successfully")
}

func (c *Controller) GetByCode(ctx *gin.Context) {
	fi, err := c.service.GetByCode(ctxutil.RequestContext(ctx), ctx.Param("code"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, fi, "Institution retrieved successfully")
}

func (c *Controller) List(ctx *gin.Context) {
	var req institutionapp.ListInstitutionsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleError(ctx, err, "Invalid query parameters", http.StatusBadRequest)
		return
	}

	list, err := c.service.List(ctxutil.RequestContext(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePaginated(ctx, list.Institutions, response.NewPagination(req.Page, req.PageSize, list.Total), "Institutions retrieved successfully")
}

func (c *Controller) Update(ctx *gin.Context) {
	var req institutionapp.UpdateInstitutionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	fi, err := c.service.Update(ctxutil.RequestContext(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, fi, "Institution updated successfully")
}

func (c *Controller) Delete(ctx *gin.Context) {
	if err := c.service.Delete(ctxutil.RequestContext(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}
