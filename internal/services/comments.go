package services

import (
	"sort"
	"strings"

	"github.com/brandonsaldan/ninerwatch-sub000/internal/apperr"
	"github.com/brandonsaldan/ninerwatch-sub000/internal/db"
	"github.com/brandonsaldan/ninerwatch-sub000/internal/models"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// CommentService owns the anonymous comment threads on incidents.
type CommentService struct {
	sanitizer *bluemonday.Policy
}

var commentService *CommentService

// GetCommentService returns the singleton comment service.
func GetCommentService() *CommentService {
	if commentService == nil {
		commentService = NewCommentService()
	}
	return commentService
}

func NewCommentService() *CommentService {
	return &CommentService{
		// Comments are plain text; strip every tag.
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// FetchThreads returns the incident's top-level comments newest first, each
// carrying its full reply tree (replies oldest first at every level).
func (s *CommentService) FetchThreads(incidentID string) ([]*models.Comment, error) {
	var rows []*models.Comment
	err := db.DB.
		Where("incident_id = ?", incidentID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.UpstreamUnavailable, "fetch comments", err)
	}

	return BuildThreads(rows), nil
}

// BuildThreads partitions rows into top-level comments and replies, then
// re-nests replies under the comment they answered. Replies whose ReplyToID
// points at nothing in the set are dropped, so every returned reply hangs off
// a top-level comment in the same result.
func BuildThreads(rows []*models.Comment) []*models.Comment {
	topLevel := make([]*models.Comment, 0)
	replies := make([]*models.Comment, 0)

	for _, c := range rows {
		if c.ParentID == nil {
			topLevel = append(topLevel, c)
		} else {
			replies = append(replies, c)
		}
	}

	for _, c := range topLevel {
		c.Replies = buildReplyTree(c.ID, replies)
	}

	return topLevel
}

func buildReplyTree(commentID string, all []*models.Comment) []*models.Comment {
	direct := make([]*models.Comment, 0)
	for _, r := range all {
		if r.ReplyToID != nil && *r.ReplyToID == commentID {
			direct = append(direct, r)
		}
	}

	sort.SliceStable(direct, func(i, j int) bool {
		return direct[i].CreatedAt.Before(direct[j].CreatedAt)
	})

	for _, r := range direct {
		r.Replies = buildReplyTree(r.ID, all)
	}

	return direct
}

// AddComment inserts a top-level comment with zero votes.
func (s *CommentService) AddComment(incidentID, text, userColor string) (*models.Comment, error) {
	text = strings.TrimSpace(s.sanitizer.Sanitize(text))
	if text == "" {
		return nil, apperr.New(apperr.ValidationFailed, "comment text is required")
	}

	comment := &models.Comment{
		IncidentID:  incidentID,
		CommentText: text,
		UserColor:   userColor,
		Votes:       0,
		Replies:     []*models.Comment{},
	}

	if err := db.DB.Create(comment).Error; err != nil {
		return nil, apperr.Wrap(apperr.UpstreamUnavailable, "create comment", err)
	}
	return comment, nil
}

// AddReply inserts a reply. parentID must be a top-level comment on the same
// incident; replyToID is the comment actually being answered and may be any
// comment inside that thread.
func (s *CommentService) AddReply(incidentID, parentID, replyToID, text, userColor string) (*models.Comment, error) {
	text = strings.TrimSpace(s.sanitizer.Sanitize(text))
	if text == "" {
		return nil, apperr.New(apperr.ValidationFailed, "comment text is required")
	}

	var parent models.Comment
	if err := db.DB.First(&parent, "id = ?", parentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "parent comment not found")
		}
		return nil, apperr.Wrap(apperr.UpstreamUnavailable, "fetch parent comment", err)
	}
	if parent.ParentID != nil {
		return nil, apperr.New(apperr.ValidationFailed, "parent must be a top-level comment")
	}
	if parent.IncidentID != incidentID {
		return nil, apperr.New(apperr.ValidationFailed, "parent belongs to a different incident")
	}

	if replyToID == "" {
		replyToID = parentID
	}

	comment := &models.Comment{
		IncidentID:  incidentID,
		ParentID:    &parentID,
		ReplyToID:   &replyToID,
		CommentText: text,
		UserColor:   userColor,
		Votes:       0,
		Replies:     []*models.Comment{},
	}

	if err := db.DB.Create(comment).Error; err != nil {
		return nil, apperr.Wrap(apperr.UpstreamUnavailable, "create reply", err)
	}
	return comment, nil
}

// GetComment loads a single comment row.
func (s *CommentService) GetComment(commentID string) (*models.Comment, error) {
	var comment models.Comment
	if err := db.DB.First(&comment, "id = ?", commentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "comment not found")
		}
		return nil, apperr.Wrap(apperr.UpstreamUnavailable, "fetch comment", err)
	}
	return &comment, nil
}

// ApplyVoteDelta bumps the stored vote counter atomically and returns the new
// total. The delta is the change, not the new state.
func (s *CommentService) ApplyVoteDelta(commentID string, delta int) (int, error) {
	res := db.DB.Model(&models.Comment{}).
		Where("id = ?", commentID).
		UpdateColumn("votes", gorm.Expr("votes + ?", delta))
	if res.Error != nil {
		return 0, apperr.Wrap(apperr.UpstreamUnavailable, "update votes", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, apperr.New(apperr.NotFound, "comment not found")
	}

	var comment models.Comment
	if err := db.DB.Select("votes").First(&comment, "id = ?", commentID).Error; err != nil {
		return 0, apperr.Wrap(apperr.UpstreamUnavailable, "reload votes", err)
	}
	return comment.Votes, nil
}

// TotalReplies counts every reply in a comment's subtree.
func TotalReplies(c *models.Comment) int {
	count := len(c.Replies)
	for _, r := range c.Replies {
		count += TotalReplies(r)
	}
	return count
}
