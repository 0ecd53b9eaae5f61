package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daniel-torresc/emerald-backend-sub002/api/ctxutil"
	"github.com/daniel-torresc/emerald-backend-sub002/api/response"
	userapp "github.com/daniel-torresc/emerald-backend-sub002/application/user"
)

type Controller struct {
	service *userapp.ApplicationService
}

func NewController(service *userapp.ApplicationService) *Controller {
	return &Controller{service: service}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.POST("", c.Create)
		users.GET("", c.List)
		users.GET("/:id", c.Get)
		users.PUT("/:id", c.Update)
		users.DELETE("/:id", c.Delete)
	}
}

func (c *Controller) Create(ctx *gin.Context) {
	var req userapp.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	u, err := c.service.Create(ctxutil.RequestContext(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, u, "User created successfully")
}

func (c *Controller) Get(ctx *gin.Context) {
	u, err := c.service.Get(ctxutil.RequestContext(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, u, "User retrieved successfully")
}

func (c *Controller) List(ctx *gin.Context) {
	var req userapp.ListUsersRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleError(ctx, err, "Invalid query parameters", http.StatusBadRequest)
		return
	}

	list, err := c.service.List(ctxutil.RequestContext(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePaginated(ctx, list.Users, response.NewPagination(req.Page, req.PageSize, list.Total), "Users retrieved successfully")
}

func (c *Controller) Update(ctx *gin.Context) {
	var req userapp.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	u, err := c.service.UpdateProfile(ctxutil.RequestContext(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, u, "User updated successfully")
}

func (c *Controller) Delete(ctx *gin.Context) {
	if err := c.service.Delete(ctxutil.RequestContext(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}
