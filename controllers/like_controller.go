package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis"

	"blogapp/middlewares"
	"blogapp/repository"
	"blogapp/services"
)

const likeRankKey = "rank:post:likes"

func likeCountKey(postID string) string {
	return "post:" + postID + ":likes"
}

// LikeController 点赞写入走数据库，Redis 只做计数和排行缓存，
// rdb 为 nil 时全部降级到数据库计数。
type LikeController struct {
	repo   *repository.Repository
	rdb    *redis.Client
	events *services.EventPublisher
}

func NewLikeController(repo *repository.Repository, rdb *redis.Client, events *services.EventPublisher) *LikeController {
	return &LikeController{repo: repo, rdb: rdb, events: events}
}

// LikePost 直接插入点赞记录，(user_id, post_id) 冲突即已点赞
func (c *LikeController) LikePost(ctx *gin.Context) {
	postID, ok := parsePostID(ctx)
	if !ok {
		return
	}
	userID := ctx.GetUint(middlewares.CtxUserID)

	if _, err := c.repo.LikePost(ctx.Request.Context(), postID, userID); err != nil {
		if errors.Is(err, repository.ErrAlreadyLiked) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Already liked"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// 缓存更新失败不回滚点赞，读取侧有数据库兜底
	if c.rdb != nil {
		postIDStr := strconv.FormatUint(uint64(postID), 10)
		pipe := c.rdb.TxPipeline()
		pipe.Incr(likeCountKey(postIDStr))
		pipe.ZIncrBy(likeRankKey, 1, postIDStr)
		if _, err := pipe.Exec(); err != nil {
			log.Printf("failed to update like cache: %v", err)
		}
	}

	c.events.Publish("post.liked", userID, postID)
	ctx.JSON(http.StatusOK, gin.H{"message": "Post liked"})
}

// GetPostLikes 优先读 Redis 计数，未命中或未部署时查库
func (c *LikeController) GetPostLikes(ctx *gin.Context) {
	postID, ok := parsePostID(ctx)
	if !ok {
		return
	}

	if c.rdb != nil {
		postIDStr := strconv.FormatUint(uint64(postID), 10)
		likes, err := c.rdb.Get(likeCountKey(postIDStr)).Result()
		if err == nil {
			ctx.JSON(http.StatusOK, gin.H{"likes": likes})
			return
		}
		if err != redis.Nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	count, err := c.repo.CountLikes(ctx.Request.Context(), postID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"likes": strconv.FormatInt(count, 10)})
}

// GetTopPosts 从 Redis ZSET 取排行并补充文章标题
func (c *LikeController) GetTopPosts(ctx *gin.Context) {
	top, err := strconv.Atoi(ctx.DefaultQuery("top", "10"))
	if err != nil || top <= 0 {
		top = 10
	}

	if c.rdb == nil {
		ctx.JSON(http.StatusOK, gin.H{"list": []string{}})
		return
	}

	zres, err := c.rdb.ZRevRangeWithScores(likeRankKey, 0, int64(top-1)).Result()
	if err != nil {
		if err == redis.Nil {
			ctx.JSON(http.StatusOK, gin.H{"list": []string{}})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	list := make([]map[string]interface{}, 0, len(zres))
	for idx, z := range zres {
		memberStr, _ := z.Member.(string)
		item := map[string]interface{}{"id": memberStr, "score": int64(z.Score), "rank": idx + 1}
		if id, err := strconv.ParseUint(memberStr, 10, 32); err == nil {
			if post, err := c.repo.GetPost(ctx.Request.Context(), uint(id)); err == nil {
				item["title"] = post.Title
			}
		}
		list = append(list, item)
	}

	ctx.JSON(http.StatusOK, gin.H{"list": list})
}
