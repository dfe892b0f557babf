package extractor

import (
	"context"
	"fmt"
	"log"
	"time"

	"comment-scraper/shared/scheduler"
)

// WatchJob implements the scheduler.Job interface: on every tick it
// re-extracts the configured video list so the stored comment sets and
// their enrichment stay current.
type WatchJob struct {
	extractor *Extractor
	videos    []string
	opts      Options
}

func NewWatchJob(extractor *Extractor, videos []string, opts Options) *WatchJob {
	opts.Save = true // watch mode exists to keep the database current
	return &WatchJob{
		extractor: extractor,
		videos:    videos,
		opts:      opts,
	}
}

func (w *WatchJob) Name() string {
	return "Comment Watch"
}

func (w *WatchJob) Initialize() error {
	log.Printf("Initializing %s...", w.Name())

	if len(w.videos) == 0 {
		return fmt.Errorf("no videos configured for watch mode (set watch.videos)")
	}
	log.Printf("Watching %d videos", len(w.videos))
	return nil
}

func (w *WatchJob) RunOnce(ctx context.Context, events *scheduler.JobEvents) error {
	startTime := time.Now()

	var (
		totalComments int
		succeeded     int
		failures      []error
	)
	for i, video := range w.videos {
		log.Printf("Extracting video %d/%d: %s", i+1, len(w.videos), video)

		result, err := w.extractor.Extract(ctx, video, w.opts)
		if err != nil {
			log.Printf("Warning: Failed to extract video %s: %v", video, err)
			failures = append(failures, fmt.Errorf("%s: %w", video, err))
			continue
		}

		totalComments += result.Statistics.Valid
		succeeded++
	}

	duration := time.Since(startTime)

	if succeeded == 0 {
		return fmt.Errorf("all %d extractions failed, first error: %w", len(w.videos), failures[0])
	}

	for _, err := range failures {
		events.OnPartialFailure(err, duration)
	}

	summary := fmt.Sprintf("%d comments stored across %d/%d videos", totalComments, succeeded, len(w.videos))
	events.OnSuccess(summary, duration)

	log.Printf("Watch run complete: %s", summary)
	return nil
}
