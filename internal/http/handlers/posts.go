package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/blog-backend/internal/domain"
	domainagg "github.com/yungbote/blog-backend/internal/domain/aggregates"
	"github.com/yungbote/blog-backend/internal/http/response"
	"github.com/yungbote/blog-backend/internal/platform/ctxutil"
	"github.com/yungbote/blog-backend/internal/services"
)

type PostHandler struct {
	feed   services.FeedService
	blog   services.BlogService
	engage services.EngagementService
}

func NewPostHandler(feed services.FeedService, blog services.BlogService, engage services.EngagementService) *PostHandler {
	return &PostHandler{feed: feed, blog: blog, engage: engage}
}

// postPayload accepts "content" as an alias of "body". author_id and
// created_at are decoded only so that attempts to set them can be rejected.
type postPayload struct {
	Title     *string         `json:"title"`
	Body      *string         `json:"body"`
	Content   *string         `json:"content"`
	AuthorID  json.RawMessage `json:"author_id"`
	CreatedAt json.RawMessage `json:"created_at"`
}

func (p postPayload) body() *string {
	if p.Body != nil {
		return p.Body
	}
	return p.Content
}

func (p postPayload) update() types.PostUpdate {
	u := types.PostUpdate{Title: p.Title, Body: p.body()}
	if len(p.AuthorID) > 0 {
		id := uuid.Nil
		_ = json.Unmarshal(p.AuthorID, &id)
		u.AuthorID = &id
	}
	if len(p.CreatedAt) > 0 {
		var at time.Time
		_ = json.Unmarshal(p.CreatedAt, &at)
		u.CreatedAt = &at
	}
	return u
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GET /api/posts
func (h *PostHandler) List(c *gin.Context) {
	page, pageSize, err := pageParams(c, "Feed.ListPosts")
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	out, err := h.feed.ListPosts(c.Request.Context(), page, pageSize)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/posts/:id
func (h *PostHandler) Retrieve(c *gin.Context) {
	postID, err := idParam(c, "Feed.GetPostDetail", domainagg.SubjectPost)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	detail, err := h.feed.GetPostDetail(c.Request.Context(), postID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, detail)
}

// POST /api/posts
func (h *PostHandler) Create(c *gin.Context) {
	var req postPayload
	if err := bindJSON(c, "Blog.CreatePost", &req); err != nil {
		response.RespondErr(c, err)
		return
	}
	post, err := h.blog.CreatePost(c.Request.Context(), ctxutil.Caller(c.Request.Context()), deref(req.Title), deref(req.body()))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, post)
}

// PUT /api/posts/:id replaces title and body; PATCH /api/posts/:id applies the fields present.
func (h *PostHandler) Update(c *gin.Context) {
	postID, err := idParam(c, "Blog.UpdatePost", domainagg.SubjectPost)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	var req postPayload
	if err := bindJSON(c, "Blog.UpdatePost", &req); err != nil {
		response.RespondErr(c, err)
		return
	}
	ctx := c.Request.Context()
	var post *types.Post
	if c.Request.Method == http.MethodPut {
		post, err = h.blog.ReplacePost(ctx, ctxutil.Caller(ctx), postID, req.update())
	} else {
		post, err = h.blog.UpdatePost(ctx, ctxutil.Caller(ctx), postID, req.update())
	}
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, post)
}

// DELETE /api/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	postID, err := idParam(c, "Blog.DeletePost", domainagg.SubjectPost)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	if _, err := h.blog.DeletePost(c.Request.Context(), ctxutil.Caller(c.Request.Context()), postID); err != nil {
		response.RespondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/posts/:id/like
func (h *PostHandler) Like(c *gin.Context) {
	postID, err := idParam(c, "Engagement.LikePost", domainagg.SubjectPost)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	res, err := h.engage.LikePost(c.Request.Context(), ctxutil.Caller(c.Request.Context()), postID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	if res.Created {
		response.RespondCreated(c, response.Detail{Detail: "liked"})
		return
	}
	response.RespondOK(c, response.Detail{Detail: "already liked"})
}

// POST /api/posts/:id/unlike
func (h *PostHandler) Unlike(c *gin.Context) {
	postID, err := idParam(c, "Engagement.UnlikePost", domainagg.SubjectPost)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	_, err = h.engage.UnlikePost(c.Request.Context(), ctxutil.Caller(c.Request.Context()), postID)
	if err != nil {
		if domainagg.SubjectOf(err) == domainagg.SubjectNotLiked {
			c.JSON(http.StatusBadRequest, response.Detail{Detail: "not liked yet"})
			return
		}
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, response.Detail{Detail: "unliked"})
}

// POST /api/posts/:id/comment accepts {"text": ...} or {"body": ...}.
func (h *PostHandler) Comment(c *gin.Context) {
	postID, err := idParam(c, "Engagement.AddComment", domainagg.SubjectPost)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	var req struct {
		Text *string `json:"text"`
		Body *string `json:"body"`
	}
	if err := bindJSON(c, "Engagement.AddComment", &req); err != nil {
		response.RespondErr(c, err)
		return
	}
	text := req.Text
	if text == nil {
		text = req.Body
	}
	view, err := h.engage.AddComment(c.Request.Context(), ctxutil.Caller(c.Request.Context()), postID, deref(text))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, view)
}
