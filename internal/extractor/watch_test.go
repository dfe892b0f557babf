package extractor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comment-scraper/internal/models"
	"comment-scraper/internal/sentiment"
	"comment-scraper/internal/validate"
	"comment-scraper/shared/config"
	"comment-scraper/shared/scheduler"
)

func newWatchExtractor(source Source, store *fakeStore) *Extractor {
	validator := validate.New(config.FiltersConfig{
		MinCommentLength: 1,
		MaxCommentLength: 10000,
		ExcludeSpam:      true,
	})
	return New(source, validator, sentiment.NewDefaultAnalyzer(), store, &fakeExporter{})
}

// multiSource returns a fresh comment iterator per extraction so one
// watch run can cover several videos.
type multiSource struct {
	comments map[string][]*models.Comment
}

func (s *multiSource) VideoInfo(_ context.Context, videoID string) (*models.Video, error) {
	return &models.Video{ID: videoID, Title: "Video " + videoID}, nil
}

func (s *multiSource) Comments(_ context.Context, videoID string, _ int64, _ string) (CommentIterator, error) {
	return &fakeIterator{comments: s.comments[videoID]}, nil
}

func recordingEvents(t *testing.T) (*scheduler.JobEvents, *[]string, *[]error) {
	t.Helper()
	var successes []string
	var partials []error
	return &scheduler.JobEvents{
		OnSuccess: func(summary string, _ time.Duration) {
			successes = append(successes, summary)
		},
		OnPartialFailure: func(err error, _ time.Duration) {
			partials = append(partials, err)
		},
		OnCriticalFailure: func(err error, _ time.Duration) {
			t.Errorf("unexpected critical failure: %v", err)
		},
	}, &successes, &partials
}

func TestWatchJobRunOnce(t *testing.T) {
	source := &multiSource{comments: map[string][]*models.Comment{
		"video000001": {streamComment("c1", "I absolutely love this video!")},
		"video000002": {streamComment("c2", "Honestly a solid breakdown."), streamComment("c3", "very helpful, thanks")},
	}}
	store := &fakeStore{}
	e := newWatchExtractor(source, store)

	job := NewWatchJob(e, []string{"video000001", "video000002"}, Options{MaxComments: 100})
	require.NoError(t, job.Initialize())

	events, successes, partials := recordingEvents(t)
	require.NoError(t, job.RunOnce(context.Background(), events))

	require.Len(t, *successes, 1)
	assert.Equal(t, "3 comments stored across 2/2 videos", (*successes)[0])
	assert.Empty(t, *partials)
}

func TestWatchJobPartialFailure(t *testing.T) {
	source := &multiSource{comments: map[string][]*models.Comment{
		"video000001": {streamComment("c1", "I absolutely love this video!")},
	}}
	e := newWatchExtractor(source, &fakeStore{})

	// The second entry never parses as a video ID, so its extraction fails.
	job := NewWatchJob(e, []string{"video000001", "not a video"}, Options{})

	events, successes, partials := recordingEvents(t)
	require.NoError(t, job.RunOnce(context.Background(), events))

	require.Len(t, *successes, 1)
	assert.Equal(t, "1 comments stored across 1/2 videos", (*successes)[0])
	require.Len(t, *partials, 1)
}

func TestWatchJobAllFailures(t *testing.T) {
	e := newWatchExtractor(&multiSource{}, &fakeStore{})
	job := NewWatchJob(e, []string{"bad input", "also bad"}, Options{})

	err := job.RunOnce(context.Background(), &scheduler.JobEvents{})
	require.Error(t, err)
}

func TestWatchJobRequiresVideos(t *testing.T) {
	e := newWatchExtractor(&multiSource{}, &fakeStore{})
	job := NewWatchJob(e, nil, Options{})
	assert.Error(t, job.Initialize())
}
