package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blogapp/middlewares"
	"blogapp/repository"
	"blogapp/services"
)

type PostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type PostController struct {
	repo   *repository.Repository
	events *services.EventPublisher
}

func NewPostController(repo *repository.Repository, events *services.EventPublisher) *PostController {
	return &PostController{repo: repo, events: events}
}

func parsePostID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return 0, false
	}
	return uint(id), true
}

func (c *PostController) CreatePost(ctx *gin.Context) {
	var req PostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := ctx.GetUint(middlewares.CtxUserID)
	post, err := c.repo.CreatePost(ctx.Request.Context(), req.Title, req.Content, userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.events.Publish("post.created", userID, post.ID)
	ctx.JSON(http.StatusOK, post)
}

func (c *PostController) ListPosts(ctx *gin.Context) {
	posts, err := c.repo.ListPosts(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, posts)
}

func (c *PostController) GetPost(ctx *gin.Context) {
	id, ok := parsePostID(ctx)
	if !ok {
		return
	}

	post, err := c.repo.GetPost(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, post)
}

// UpdatePost 文章不存在和非作者统一按 403 处理
func (c *PostController) UpdatePost(ctx *gin.Context) {
	id, ok := parsePostID(ctx)
	if !ok {
		return
	}

	var req PostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := ctx.GetUint(middlewares.CtxUserID)
	post, err := c.repo.GetPost(ctx.Request.Context(), id)
	if err != nil || post.AuthorID != userID {
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	updated, err := c.repo.UpdatePost(ctx.Request.Context(), id, req.Title, req.Content)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

func (c *PostController) DeletePost(ctx *gin.Context) {
	id, ok := parsePostID(ctx)
	if !ok {
		return
	}

	userID := ctx.GetUint(middlewares.CtxUserID)
	post, err := c.repo.GetPost(ctx.Request.Context(), id)
	if err != nil || post.AuthorID != userID {
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	if _, err := c.repo.DeletePost(ctx.Request.Context(), id); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
