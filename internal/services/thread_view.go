package services

import (
	"github.com/brandonsaldan/ninerwatch-sub000/internal/models"
)

// MaxNestingDepth is the deepest visual indentation a thread renders before
// the UI offers to continue into a reply as a new pseudo-root.
const MaxNestingDepth = 3

// ThreadView tracks what a comment list is currently showing: either the
// full top-level list, or one comment's subtree treated as the root, with a
// history stack for backing out of nested continuations.
type ThreadView struct {
	comments  []*models.Comment
	original  []*models.Comment
	continued *models.Comment
	history   []*models.Comment
}

func NewThreadView(comments []*models.Comment) *ThreadView {
	return &ThreadView{comments: comments}
}

// Continued reports whether the view is inside a continued thread.
func (v *ThreadView) Continued() bool {
	return v.continued != nil
}

// Current returns the comments the view is showing: the continued comment
// alone when inside a continuation, otherwise the full top-level list.
func (v *ThreadView) Current() []*models.Comment {
	if v.continued != nil {
		return []*models.Comment{v.continued}
	}
	return v.comments
}

// ContinueThread makes comment the new pseudo-root. Entering the first
// continuation snapshots the full list; continuing deeper pushes the current
// pseudo-root onto the history stack.
func (v *ThreadView) ContinueThread(comment *models.Comment) {
	if v.continued != nil {
		v.history = append(v.history, v.continued)
	} else {
		v.original = v.comments
	}
	v.continued = comment
}

// BackToThread pops one continuation level, restoring the full list once the
// history stack is empty. A no-op in the normal state.
func (v *ThreadView) BackToThread() {
	if v.continued == nil {
		return
	}
	if n := len(v.history); n > 0 {
		v.continued = v.history[n-1]
		v.history = v.history[:n-1]
		return
	}
	v.comments = v.original
	v.original = nil
	v.continued = nil
}

// ShouldContinue reports whether a reply at the given depth is rendered as a
// "continue thread" link instead of indenting further.
func ShouldContinue(depth int) bool {
	return depth >= MaxNestingDepth
}

// ApplyDelta propagates a vote change through every mirror the view holds:
// the visible list, the saved original snapshot, and the continuation stack.
// Mirrors may alias the same nodes; each node is updated at most once.
// Returns the number of comments updated.
func (v *ThreadView) ApplyDelta(commentID string, delta int) int {
	seen := make(map[*models.Comment]bool)
	updated := applyDeltaToTree(v.comments, commentID, delta, seen)
	updated += applyDeltaToTree(v.original, commentID, delta, seen)
	if v.continued != nil {
		updated += applyDeltaToTree([]*models.Comment{v.continued}, commentID, delta, seen)
	}
	updated += applyDeltaToTree(v.history, commentID, delta, seen)
	return updated
}

func applyDeltaToTree(comments []*models.Comment, commentID string, delta int, seen map[*models.Comment]bool) int {
	updated := 0
	for _, c := range comments {
		if seen[c] {
			continue
		}
		seen[c] = true
		if c.ID == commentID {
			c.Votes += delta
			updated++
		}
		updated += applyDeltaToTree(c.Replies, commentID, delta, seen)
	}
	return updated
}
