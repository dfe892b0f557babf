package models

import "time"

// ExtractionResult is the complete outcome of one extraction run, returned
// to the CLI or dashboard. There is no partial-result contract: callers see
// either this or a typed error.
type ExtractionResult struct {
	VideoInfo    *Video          `json:"video_info"`
	Comments     []*Comment      `json:"comments"`
	Statistics   ExtractionStats `json:"statistics"`
	ExportedFile string          `json:"exported_file,omitempty"`
}

type ExtractionStats struct {
	TotalExtracted int           `json:"total_comments_extracted"`
	Valid          int           `json:"valid_comments"`
	Invalid        int           `json:"invalid_comments"`
	ExtractionTime time.Time     `json:"extraction_time"`
	Elapsed        time.Duration `json:"elapsed"`
	VideoTitle     string        `json:"video_title"`
	ChannelTitle   string        `json:"channel_title"`
}
