package handlers

import (
	"fmt"
	"net/http"

	"github.com/brandonsaldan/ninerwatch-sub000/internal/apperr"
	"github.com/brandonsaldan/ninerwatch-sub000/internal/models"
	"github.com/brandonsaldan/ninerwatch-sub000/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments *services.CommentService
	hub      *services.RealtimeHub
}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{
		comments: services.GetCommentService(),
		hub:      services.GetRealtimeHub(),
	}
}

// List handles GET /api/comments?incident_id=..., returning nested threads.
// The caller's own vote states ride along so the UI can highlight them.
func (h *CommentHandler) List(c *gin.Context) {
	incidentID := c.Query("incident_id")
	if incidentID == "" {
		respondError(c, apperr.New(apperr.ValidationFailed, "incident_id is required"))
		return
	}

	threads, err := h.comments.FetchThreads(incidentID)
	if err != nil {
		respondError(c, err)
		return
	}

	session := sessions.Default(c)
	votes := make(map[string]int)
	collectUserVotes(session, incidentID, threads, votes)

	c.JSON(http.StatusOK, gin.H{
		"comments":   threads,
		"user_votes": votes,
	})
}

type createCommentRequest struct {
	IncidentID string `json:"incidentId"`
	Text       string `json:"text"`
	UserColor  string `json:"userColor"`
	ParentID   string `json:"parentId"`
	ReplyToID  string `json:"replyToId"`
}

// Create handles POST /api/comments for both top-level comments and replies;
// a non-empty parentId makes it a reply.
func (h *CommentHandler) Create(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IncidentID == "" {
		respondError(c, apperr.New(apperr.ValidationFailed, "incidentId is required"))
		return
	}
	incidentID := req.IncidentID

	var comment interface{}
	var err error
	if req.ParentID == "" {
		comment, err = h.comments.AddComment(incidentID, req.Text, req.UserColor)
	} else {
		comment, err = h.comments.AddReply(incidentID, req.ParentID, req.ReplyToID, req.Text, req.UserColor)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(services.Event{
		Table:      services.TableComments,
		Action:     services.ActionInsert,
		IncidentID: incidentID,
	})
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

type voteRequest struct {
	IncidentID string `json:"incidentId"`
	CommentID  string `json:"commentId"`
	Direction  string `json:"direction"`
}

// Vote handles POST /api/comments/vote. The browser's current vote lives in
// its session, so pressing the same arrow twice undoes the vote and switching
// arrows swings the total by two.
func (h *CommentHandler) Vote(c *gin.Context) {
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CommentID == "" || req.IncidentID == "" {
		respondError(c, apperr.New(apperr.ValidationFailed, "incidentId and commentId are required"))
		return
	}
	incidentID := req.IncidentID

	var direction int
	switch req.Direction {
	case "up":
		direction = services.VoteUp
	case "down":
		direction = services.VoteDown
	default:
		respondError(c, apperr.New(apperr.ValidationFailed, "direction must be up or down"))
		return
	}

	session := sessions.Default(c)
	key := voteKey(incidentID, req.CommentID)
	prev := services.VoteNone
	if v, ok := session.Get(key).(int); ok {
		prev = v
	}

	state, delta := services.NextVoteState(prev, direction)

	votes, err := h.comments.ApplyVoteDelta(req.CommentID, delta)
	if err != nil {
		respondError(c, err)
		return
	}

	if state == services.VoteNone {
		session.Delete(key)
	} else {
		session.Set(key, state)
	}
	if err := session.Save(); err != nil {
		respondError(c, apperr.Wrap(apperr.UpstreamUnavailable, "save session", err))
		return
	}

	h.hub.Broadcast(services.Event{
		Table:      services.TableComments,
		Action:     services.ActionUpdate,
		IncidentID: incidentID,
	})
	c.JSON(http.StatusOK, gin.H{"votes": votes, "user_vote": state})
}

func voteKey(incidentID, commentID string) string {
	return fmt.Sprintf("vote_%s_%s", incidentID, commentID)
}

func collectUserVotes(session sessions.Session, incidentID string, comments []*models.Comment, votes map[string]int) {
	for _, comment := range comments {
		if v, ok := session.Get(voteKey(incidentID, comment.ID)).(int); ok && v != services.VoteNone {
			votes[comment.ID] = v
		}
		collectUserVotes(session, incidentID, comment.Replies, votes)
	}
}
