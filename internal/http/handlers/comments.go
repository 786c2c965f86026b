package handlers

import (
	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/blog-backend/internal/domain/aggregates"
	"github.com/yungbote/blog-backend/internal/http/response"
	"github.com/yungbote/blog-backend/internal/services"
)

type CommentHandler struct {
	feed services.FeedService
}

func NewCommentHandler(feed services.FeedService) *CommentHandler {
	return &CommentHandler{feed: feed}
}

// GET /api/comments?post_id= (blog_id is accepted as an alias)
func (h *CommentHandler) List(c *gin.Context) {
	const op = "Feed.ListComments"
	filter := "post_id"
	if c.Query(filter) == "" && c.Query("blog_id") != "" {
		filter = "blog_id"
	}
	postID, err := optionalUUIDQuery(c, op, filter)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	page, pageSize, err := pageParams(c, op)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	out, err := h.feed.ListComments(c.Request.Context(), postID, page, pageSize)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/comments/:id
func (h *CommentHandler) Retrieve(c *gin.Context) {
	commentID, err := idParam(c, "Feed.GetComment", domainagg.SubjectComment)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	view, err := h.feed.GetComment(c.Request.Context(), commentID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, view)
}
