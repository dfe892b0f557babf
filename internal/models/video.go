package models

import "time"

type Video struct {
	ID                   string    `json:"video_id"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	ChannelID            string    `json:"channel_id"`
	ChannelTitle         string    `json:"channel_title"`
	PublishedAt          time.Time `json:"published_at"`
	Duration             string    `json:"duration"`
	ViewCount            int64     `json:"view_count"`
	LikeCount            int64     `json:"like_count"`
	CommentCount         int64     `json:"comment_count"`
	ThumbnailURL         string    `json:"thumbnail_url"`
	Tags                 []string  `json:"tags"`
	CategoryID           string    `json:"category_id"`
	DefaultLanguage      string    `json:"default_language"`
	DefaultAudioLanguage string    `json:"default_audio_language"`
	ExtractedAt          time.Time `json:"extracted_at"`
	CommentsExtracted    int       `json:"total_comments_extracted"`
}

// VideoSummary is the row shape returned when listing extracted videos.
type VideoSummary struct {
	ID                string    `json:"video_id"`
	Title             string    `json:"title"`
	ChannelTitle      string    `json:"channel_title"`
	ExtractedAt       time.Time `json:"extracted_at"`
	CommentsExtracted int       `json:"total_comments_extracted"`
	ViewCount         int64     `json:"view_count"`
}
