package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blogapp/middlewares"
	"blogapp/repository"
	"blogapp/services"
)

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type CommentController struct {
	repo   *repository.Repository
	events *services.EventPublisher
}

func NewCommentController(repo *repository.Repository, events *services.EventPublisher) *CommentController {
	return &CommentController{repo: repo, events: events}
}

// CommentPost 不校验文章存在性，评论可挂在任意 post_id 下
func (c *CommentController) CommentPost(ctx *gin.Context) {
	postID, ok := parsePostID(ctx)
	if !ok {
		return
	}

	var req CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := ctx.GetUint(middlewares.CtxUserID)
	comment, err := c.repo.CommentPost(ctx.Request.Context(), postID, userID, req.Content)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.events.Publish("post.commented", userID, postID)
	ctx.JSON(http.StatusOK, comment)
}

func (c *CommentController) ListComments(ctx *gin.Context) {
	postID, ok := parsePostID(ctx)
	if !ok {
		return
	}

	comments, err := c.repo.ListComments(ctx.Request.Context(), postID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, comments)
}
