// Package extractor orchestrates one extraction run: fetch, validate,
// enrich, persist, export.
package extractor

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/api/iterator"

	"comment-scraper/internal/models"
	"comment-scraper/internal/sentiment"
	"comment-scraper/internal/validate"
	"comment-scraper/internal/youtube"
)

// CommentIterator yields comments until iterator.Done.
type CommentIterator interface {
	Next() (*models.Comment, error)
}

// Source provides video metadata and comment streams.
type Source interface {
	VideoInfo(ctx context.Context, videoID string) (*models.Video, error)
	Comments(ctx context.Context, videoID string, maxResults int64, order string) (CommentIterator, error)
}

// Store persists extraction results.
type Store interface {
	UpsertVideo(v *models.Video) error
	UpsertComments(videoID string, comments []*models.Comment) error
}

// Exporter writes an artifact and returns its path.
type Exporter interface {
	Export(video *models.Video, comments []*models.Comment, format string) (string, error)
}

// ClientSource adapts the concrete API client to the Source interface.
type ClientSource struct {
	Client *youtube.Client
}

func (s ClientSource) VideoInfo(ctx context.Context, videoID string) (*models.Video, error) {
	return s.Client.VideoInfo(ctx, videoID)
}

func (s ClientSource) Comments(ctx context.Context, videoID string, maxResults int64, order string) (CommentIterator, error) {
	return s.Client.Comments(ctx, videoID, maxResults, order)
}

// Options control one extraction run.
type Options struct {
	// MaxComments caps extraction; <= 0 falls back to the configured cap.
	MaxComments int64
	// Order is "relevance" or "time"; empty defaults to relevance.
	Order string
	// Save persists the video and its valid comments.
	Save bool
	// ExportFormat writes an artifact when set ("csv" or "json").
	ExportFormat string
}

type Extractor struct {
	source    Source
	validator *validate.Validator
	analyzer  *sentiment.Analyzer
	store     Store
	exporter  Exporter
}

func New(source Source, validator *validate.Validator, analyzer *sentiment.Analyzer, store Store, exporter Exporter) *Extractor {
	return &Extractor{
		source:    source,
		validator: validator,
		analyzer:  analyzer,
		store:     store,
		exporter:  exporter,
	}
}

// Extract runs the full pipeline for one video. API errors propagate
// unmodified so callers can classify them with errors.Is; store and
// export failures are wrapped. Zero valid comments is not an error.
func (e *Extractor) Extract(ctx context.Context, urlOrID string, opts Options) (*models.ExtractionResult, error) {
	start := time.Now()

	videoID, err := youtube.ExtractVideoID(urlOrID)
	if err != nil {
		return nil, err
	}

	video, err := e.source.VideoInfo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	order := opts.Order
	if order == "" {
		order = "relevance"
	}
	it, err := e.source.Comments(ctx, videoID, opts.MaxComments, order)
	if err != nil {
		return nil, err
	}

	var (
		valid     []*models.Comment
		extracted int
		invalid   int
	)
	for {
		c, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		extracted++

		if !e.validator.IsValid(c) {
			invalid++
			continue
		}
		c.IsValid = true
		score := e.analyzer.Analyze(ctx, c.CommentText())
		c.Sentiment = &score
		c.ExtractedAt = time.Now().UTC()
		valid = append(valid, c)
	}

	video.ExtractedAt = time.Now().UTC()
	video.CommentsExtracted = len(valid)

	log.Printf("Extracted %d comments for %q (%d valid, %d invalid)",
		extracted, video.Title, len(valid), invalid)

	if opts.Save {
		if err := e.store.UpsertVideo(video); err != nil {
			return nil, fmt.Errorf("save video %s: %w", videoID, err)
		}
		if err := e.store.UpsertComments(videoID, valid); err != nil {
			return nil, fmt.Errorf("save comments for %s: %w", videoID, err)
		}
	}

	result := &models.ExtractionResult{
		VideoInfo: video,
		Comments:  valid,
		Statistics: models.ExtractionStats{
			TotalExtracted: extracted,
			Valid:          len(valid),
			Invalid:        invalid,
			ExtractionTime: start.UTC(),
			Elapsed:        time.Since(start),
			VideoTitle:     video.Title,
			ChannelTitle:   video.ChannelTitle,
		},
	}

	if opts.ExportFormat != "" {
		path, err := e.exporter.Export(video, valid, opts.ExportFormat)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", videoID, err)
		}
		result.ExportedFile = path
	}

	return result, nil
}
