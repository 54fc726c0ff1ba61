package search

import (
	"context"
	"time"

	"github.com/recipewhirl/backend/internal/application/session"
	"github.com/recipewhirl/backend/internal/domain/catalog"
)

// Submitter binds a session to the pipeline through a debouncer: rapid
// keystroke submissions coalesce into one search whose results land on the
// session, gated by the generation check. One submitter exists per session.
type Submitter struct {
	pipeline *Pipeline
	sess     *session.Session
	debounce *Debouncer
}

// NewSubmitter creates a debounced submitter for a session
func NewSubmitter(pipeline *Pipeline, sess *session.Session, window time.Duration) *Submitter {
	s := &Submitter{pipeline: pipeline, sess: sess}
	s.debounce = NewDebouncer(window, func(query string) {
		s.run(context.Background(), query)
	})
	return s
}

// SubmitInput feeds one keystroke-level query. Only the last value within
// the quiet window triggers a search.
func (s *Submitter) SubmitInput(query string) {
	s.debounce.Call(query)
}

// SubmitNow bypasses the debounce window (explicit submission) and returns
// the session's result list after the generation check has run.
func (s *Submitter) SubmitNow(ctx context.Context, query string) []catalog.Recipe {
	s.run(ctx, query)
	return s.sess.Results()
}

// Close cancels any pending debounced search
func (s *Submitter) Close() {
	s.debounce.Stop()
}

func (s *Submitter) run(ctx context.Context, query string) {
	results, gen := s.pipeline.Search(ctx, s.sess, query, s.sess.Filters())
	if !s.sess.ApplyResults(gen, query, results) {
		s.pipeline.metrics.StaleResultDropped()
	}
}
