package youtube

import (
	"context"
	"log"

	"comment-scraper/internal/models"

	"google.golang.org/api/iterator"
	"google.golang.org/api/youtube/v3"
)

// CommentStream is a forward-only cursor over a video's comment threads.
// Each thread yields its top-level comment followed by any inline replies,
// in API response order. Next returns iterator.Done when the budget is
// reached or the service has no further pages.
type CommentStream struct {
	client     *Client
	ctx        context.Context
	videoID    string
	order      string
	maxResults int64

	fetched   int64
	buf       []*models.Comment
	pageToken string
	exhausted bool
	err       error
}

// Next returns the next comment, iterator.Done at the end of the stream,
// or the classified API error that stopped pagination. After a non-Done
// error the stream is dead; it never resumes.
func (s *CommentStream) Next() (*models.Comment, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.fetched >= s.maxResults {
		return nil, iterator.Done
	}

	for len(s.buf) == 0 {
		if s.exhausted {
			log.Printf("Comment extraction completed. Total comments: %d", s.fetched)
			return nil, iterator.Done
		}
		if err := s.fetchPage(); err != nil {
			s.err = err
			return nil, err
		}
	}

	c := s.buf[0]
	s.buf = s.buf[1:]
	s.fetched++
	return c, nil
}

func (s *CommentStream) fetchPage() error {
	if err := s.client.limiter.Wait(s.ctx); err != nil {
		return err
	}

	remaining := s.maxResults - s.fetched
	pageSize := s.client.maxResultsPerRequest
	if remaining < pageSize {
		pageSize = remaining
	}

	resp, err := s.client.listThreads(s.ctx, s.videoID, pageSize, s.order, s.pageToken)
	if err != nil {
		return classifyAPIError(err, "get comments")
	}

	if len(resp.Items) == 0 {
		s.exhausted = true
		return nil
	}

	for _, item := range resp.Items {
		if item.Snippet == nil || item.Snippet.TopLevelComment == nil {
			continue
		}
		top := convertComment(item.Snippet.TopLevelComment, s.videoID)
		top.TotalReplyCount = item.Snippet.TotalReplyCount
		s.buf = append(s.buf, top)

		if item.Replies == nil {
			continue
		}
		for _, reply := range item.Replies.Comments {
			r := convertComment(reply, s.videoID)
			r.IsReply = true
			r.ParentID = top.ID
			if reply.Snippet != nil && reply.Snippet.ParentId != "" {
				r.ParentID = reply.Snippet.ParentId
			}
			s.buf = append(s.buf, r)
		}
	}

	s.pageToken = resp.NextPageToken
	if s.pageToken == "" {
		s.exhausted = true
	}
	return nil
}

func convertComment(c *youtube.Comment, videoID string) *models.Comment {
	out := &models.Comment{ID: c.Id, VideoID: videoID}
	if c.Snippet == nil {
		return out
	}

	s := c.Snippet
	if s.VideoId != "" {
		out.VideoID = s.VideoId
	}
	out.Text = s.TextDisplay
	out.TextOriginal = s.TextOriginal
	out.AuthorDisplayName = s.AuthorDisplayName
	out.AuthorProfileImageURL = s.AuthorProfileImageUrl
	out.AuthorChannelURL = s.AuthorChannelUrl
	if s.AuthorChannelId != nil {
		out.AuthorChannelID = s.AuthorChannelId.Value
	}
	out.LikeCount = s.LikeCount
	out.PublishedAt = parseTimestamp(s.PublishedAt)
	out.UpdatedAt = parseTimestamp(s.UpdatedAt)
	return out
}
