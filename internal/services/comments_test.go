package services

import (
	"testing"
	"time"

	"github.com/brandonsaldan/ninerwatch-sub000/internal/apperr"
	"github.com/brandonsaldan/ninerwatch-sub000/internal/db"
	"github.com/brandonsaldan/ninerwatch-sub000/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database and points the global
// handle at it.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := gdb.AutoMigrate(&models.Incident{}, &models.Comment{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb
	return gdb
}

func createTestIncident(t *testing.T, reportNumber string) *models.Incident {
	t.Helper()
	incident := &models.Incident{
		ReportNumber:     reportNumber,
		IncidentType:     "Larceny",
		IncidentLocation: "Student Union",
		TimeReported:     time.Now(),
	}
	if err := db.DB.Create(incident).Error; err != nil {
		t.Fatalf("failed to create incident: %v", err)
	}
	return incident
}

func insertComment(t *testing.T, c *models.Comment) *models.Comment {
	t.Helper()
	if err := db.DB.Create(c).Error; err != nil {
		t.Fatalf("failed to create comment: %v", err)
	}
	return c
}

func TestAddCommentSanitizes(t *testing.T) {
	setupTestDB(t)
	incident := createTestIncident(t, "2025/001001")
	svc := NewCommentService()

	comment, err := svc.AddComment(incident.ID, "  <b>watch out</b>  ", "#ff0000")
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if comment.CommentText != "watch out" {
		t.Errorf("expected sanitized text %q, got %q", "watch out", comment.CommentText)
	}
	if comment.Votes != 0 {
		t.Errorf("new comment should start at 0 votes, got %d", comment.Votes)
	}
	if comment.Replies == nil || len(comment.Replies) != 0 {
		t.Errorf("new comment should carry an empty reply list, got %#v", comment.Replies)
	}
	if comment.ParentID != nil {
		t.Errorf("top-level comment should have nil ParentID")
	}
}

func TestAddCommentRejectsEmpty(t *testing.T) {
	setupTestDB(t)
	incident := createTestIncident(t, "2025/001002")
	svc := NewCommentService()

	for _, text := range []string{"", "   ", "<script>alert(1)</script>"} {
		if _, err := svc.AddComment(incident.ID, text, ""); apperr.KindOf(err) != apperr.ValidationFailed {
			t.Errorf("AddComment(%q) should fail validation, got %v", text, err)
		}
	}
}

func TestFetchThreadsOrdering(t *testing.T) {
	setupTestDB(t)
	incident := createTestIncident(t, "2025/001003")

	base := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	older := insertComment(t, &models.Comment{
		IncidentID: incident.ID, CommentText: "first", CreatedAt: base,
	})
	newer := insertComment(t, &models.Comment{
		IncidentID: incident.ID, CommentText: "second", CreatedAt: base.Add(time.Hour),
	})

	// Replies inserted newest first; the tree must come back oldest first.
	replyB := insertComment(t, &models.Comment{
		IncidentID: incident.ID, ParentID: &older.ID, ReplyToID: &older.ID,
		CommentText: "reply b", CreatedAt: base.Add(30 * time.Minute),
	})
	replyA := insertComment(t, &models.Comment{
		IncidentID: incident.ID, ParentID: &older.ID, ReplyToID: &older.ID,
		CommentText: "reply a", CreatedAt: base.Add(10 * time.Minute),
	})
	nested := insertComment(t, &models.Comment{
		IncidentID: incident.ID, ParentID: &older.ID, ReplyToID: &replyA.ID,
		CommentText: "nested", CreatedAt: base.Add(20 * time.Minute),
	})

	threads, err := NewCommentService().FetchThreads(incident.ID)
	if err != nil {
		t.Fatalf("FetchThreads failed: %v", err)
	}

	if len(threads) != 2 {
		t.Fatalf("expected 2 top-level comments, got %d", len(threads))
	}
	if threads[0].ID != newer.ID || threads[1].ID != older.ID {
		t.Errorf("top-level comments should be newest first")
	}

	replies := threads[1].Replies
	if len(replies) != 2 {
		t.Fatalf("expected 2 direct replies, got %d", len(replies))
	}
	if replies[0].ID != replyA.ID || replies[1].ID != replyB.ID {
		t.Errorf("replies should be oldest first")
	}
	if len(replies[0].Replies) != 1 || replies[0].Replies[0].ID != nested.ID {
		t.Errorf("nested reply should hang off the comment it answered")
	}
	if TotalReplies(threads[1]) != 3 {
		t.Errorf("expected 3 total replies, got %d", TotalReplies(threads[1]))
	}
}

func TestBuildThreadsDropsOrphans(t *testing.T) {
	missingID := "00000000-0000-0000-0000-000000000000"
	top := &models.Comment{ID: "top", CommentText: "hello"}
	orphan := &models.Comment{
		ID: "orphan", ParentID: &top.ID, ReplyToID: &missingID, CommentText: "lost",
	}

	threads := BuildThreads([]*models.Comment{top, orphan})
	if len(threads) != 1 {
		t.Fatalf("expected 1 thread, got %d", len(threads))
	}
	if TotalReplies(threads[0]) != 0 {
		t.Errorf("orphaned reply should not appear in the tree")
	}
}

func TestAddReplyValidation(t *testing.T) {
	setupTestDB(t)
	incident := createTestIncident(t, "2025/001004")
	other := createTestIncident(t, "2025/001005")
	svc := NewCommentService()

	parent, err := svc.AddComment(incident.ID, "parent", "")
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}

	if _, err := svc.AddReply(incident.ID, "missing", "", "hi", ""); apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("reply to missing parent should be NotFound, got %v", err)
	}
	if _, err := svc.AddReply(other.ID, parent.ID, "", "hi", ""); apperr.KindOf(err) != apperr.ValidationFailed {
		t.Errorf("reply across incidents should fail validation, got %v", err)
	}

	reply, err := svc.AddReply(incident.ID, parent.ID, "", "hi", "")
	if err != nil {
		t.Fatalf("AddReply failed: %v", err)
	}
	if reply.ReplyToID == nil || *reply.ReplyToID != parent.ID {
		t.Errorf("replyToID should default to the parent")
	}

	// Replies must anchor to the thread root, never to another reply.
	if _, err := svc.AddReply(incident.ID, reply.ID, "", "hi", ""); apperr.KindOf(err) != apperr.ValidationFailed {
		t.Errorf("reply with a non-top-level parent should fail validation, got %v", err)
	}
}

func TestApplyVoteDelta(t *testing.T) {
	setupTestDB(t)
	incident := createTestIncident(t, "2025/001006")
	svc := NewCommentService()

	comment, err := svc.AddComment(incident.ID, "vote on me", "")
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}

	votes, err := svc.ApplyVoteDelta(comment.ID, 1)
	if err != nil || votes != 1 {
		t.Fatalf("expected 1 vote, got %d (%v)", votes, err)
	}
	votes, err = svc.ApplyVoteDelta(comment.ID, -2)
	if err != nil || votes != -1 {
		t.Fatalf("expected -1 votes, got %d (%v)", votes, err)
	}

	if _, err := svc.ApplyVoteDelta("missing", 1); apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("vote on missing comment should be NotFound, got %v", err)
	}
}
