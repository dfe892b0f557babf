package youtube

import (
	"context"
	"fmt"
	"log"
	"time"

	"comment-scraper/internal/models"
	"comment-scraper/shared/config"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Client wraps the YouTube Data API v3 for video metadata and comment
// thread retrieval. Rate-limit state is owned by the instance, so
// independent clients (and tests) never interfere with each other.
// The client performs no retries; retry policy belongs to the caller.
type Client struct {
	service              *youtube.Service
	limiter              *rate.Limiter
	maxResultsPerRequest int64
	maxTotalComments     int64

	// Call seams, replaced in tests with canned responses.
	listVideos  func(ctx context.Context, videoID string) (*youtube.VideoListResponse, error)
	listThreads func(ctx context.Context, videoID string, pageSize int64, order, pageToken string) (*youtube.CommentThreadListResponse, error)
}

func NewClient(cfg *config.Config) (*Client, error) {
	service, err := youtube.NewService(context.Background(), option.WithAPIKey(cfg.YouTube.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	c := &Client{
		service:              service,
		limiter:              rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), 1),
		maxResultsPerRequest: cfg.YouTube.MaxResultsPerRequest,
		maxTotalComments:     cfg.YouTube.MaxTotalComments,
	}
	c.listVideos = c.doListVideos
	c.listThreads = c.doListThreads

	log.Println("YouTube API client initialized")
	return c, nil
}

func (c *Client) doListVideos(ctx context.Context, videoID string) (*youtube.VideoListResponse, error) {
	return c.service.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(videoID).
		Context(ctx).
		Do()
}

func (c *Client) doListThreads(ctx context.Context, videoID string, pageSize int64, order, pageToken string) (*youtube.CommentThreadListResponse, error) {
	call := c.service.CommentThreads.List([]string{"snippet", "replies"}).
		VideoId(videoID).
		MaxResults(pageSize).
		Order(order).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	return call.Do()
}

// VideoInfo fetches metadata for a single video.
func (c *Client) VideoInfo(ctx context.Context, videoID string) (*models.Video, error) {
	if !IsValidVideoID(videoID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVideoID, videoID)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.listVideos(ctx, videoID)
	if err != nil {
		return nil, classifyAPIError(err, "get video info")
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("get video info: %q: %w", videoID, ErrNotFound)
	}

	item := resp.Items[0]
	video := &models.Video{ID: videoID}

	if item.Snippet != nil {
		video.Title = item.Snippet.Title
		video.Description = item.Snippet.Description
		video.ChannelID = item.Snippet.ChannelId
		video.ChannelTitle = item.Snippet.ChannelTitle
		video.PublishedAt = parseTimestamp(item.Snippet.PublishedAt)
		video.Tags = item.Snippet.Tags
		video.CategoryID = item.Snippet.CategoryId
		video.DefaultLanguage = item.Snippet.DefaultLanguage
		video.DefaultAudioLanguage = item.Snippet.DefaultAudioLanguage
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.High != nil {
			video.ThumbnailURL = item.Snippet.Thumbnails.High.Url
		}
	}
	if item.Statistics != nil {
		video.ViewCount = int64(item.Statistics.ViewCount)
		video.LikeCount = int64(item.Statistics.LikeCount)
		video.CommentCount = int64(item.Statistics.CommentCount)
	}
	if item.ContentDetails != nil {
		video.Duration = item.ContentDetails.Duration
	}

	log.Printf("Retrieved video info for: %s", video.Title)
	return video, nil
}

// Comments starts a lazy paginated stream over the video's comment
// threads. The stream is finite, forward-only, and not restartable;
// calling Comments again begins pagination from the first page.
func (c *Client) Comments(ctx context.Context, videoID string, maxResults int64, order string) (*CommentStream, error) {
	if !IsValidVideoID(videoID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVideoID, videoID)
	}
	if order != "relevance" && order != "time" {
		return nil, fmt.Errorf("order must be \"relevance\" or \"time\", got %q", order)
	}
	if maxResults <= 0 {
		maxResults = c.maxTotalComments
	}

	log.Printf("Starting comment extraction for video: %s", videoID)
	return &CommentStream{
		client:     c,
		ctx:        ctx,
		videoID:    videoID,
		order:      order,
		maxResults: maxResults,
	}, nil
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
