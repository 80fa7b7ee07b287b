package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/lkzdsb-lab/postsvc/internal/model"
	"github.com/lkzdsb-lab/postsvc/internal/service"
)

type PostHandler struct {
	svc    *service.PostService
	logger zerolog.Logger
}

func NewPostHandler(svc *service.PostService, logger zerolog.Logger) *PostHandler {
	return &PostHandler{
		svc:    svc,
		logger: logger,
	}
}

// ListPosts GET /posts?skip=&limit=
func (h *PostHandler) ListPosts(c *gin.Context) {
	var q service.Pagination
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, h.logger, bindError(err, "query"))
		return
	}
	page, err := q.Page()
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	list, err := h.svc.ListPosts(c.Request.Context(), page)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetPost GET /posts/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}
	post, err := h.svc.GetPostOr404(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreatePost POST /posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req model.PostCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindError(err, "body"))
		return
	}

	post, err := h.svc.CreatePost(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// PatchPost PATCH /posts/:id
func (h *PostHandler) PatchPost(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}
	var req model.PostPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindError(err, "body"))
		return
	}

	post, err := h.svc.PatchPost(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePost DELETE /posts/:id
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}
	if err := h.svc.DeletePost(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PostHandler) postID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, h.logger, &service.ValidationError{Errors: []service.FieldError{{
			Loc:  []string{"path", "id"},
			Msg:  "value is not a valid integer",
			Type: "type_error.integer",
		}}})
		return 0, false
	}
	return id, true
}
