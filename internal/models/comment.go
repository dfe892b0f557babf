package models

import "time"

type Comment struct {
	ID                    string    `json:"comment_id"`
	VideoID               string    `json:"video_id"`
	Text                  string    `json:"text"`
	TextOriginal          string    `json:"text_original"`
	AuthorDisplayName     string    `json:"author_display_name"`
	AuthorProfileImageURL string    `json:"author_profile_image_url"`
	AuthorChannelURL      string    `json:"author_channel_url"`
	AuthorChannelID       string    `json:"author_channel_id"`
	LikeCount             int64     `json:"like_count"`
	PublishedAt           time.Time `json:"published_at"`
	UpdatedAt             time.Time `json:"updated_at"`
	IsReply               bool      `json:"is_reply"`
	ParentID              string    `json:"parent_id"`
	TotalReplyCount       int64     `json:"total_reply_count"`
	ExtractedAt           time.Time `json:"extracted_at"`
	IsValid               bool      `json:"is_valid"`

	// Sentiment is nil when the comment was stored without enrichment.
	Sentiment *SentimentScore `json:"sentiment,omitempty"`
}

// CommentText returns the display text, falling back to the original
// (unrendered) text when the display form is empty.
func (c *Comment) CommentText() string {
	if c.Text != "" {
		return c.Text
	}
	return c.TextOriginal
}
