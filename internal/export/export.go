// Package export writes extraction results to CSV and JSON artifacts.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"comment-scraper/internal/models"
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// filename timestamp, local time, matching the artifact naming scheme
// <videoID>_<sanitized title>_<timestamp>.<ext>
const timestampFormat = "20060102_150405"

type Exporter struct {
	exportsPath string

	now func() time.Time
}

func New(exportsPath string) *Exporter {
	return &Exporter{exportsPath: exportsPath, now: time.Now}
}

// Export writes comments for one video in the requested format and
// returns the path of the written file.
func (e *Exporter) Export(video *models.Video, comments []*models.Comment, format string) (string, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return e.CSV(video, comments)
	case FormatJSON:
		return e.JSON(video, comments)
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
}

var csvHeader = []string{
	"comment_id", "video_id", "text", "text_original", "author_display_name",
	"author_profile_image_url", "author_channel_url", "author_channel_id",
	"like_count", "published_at", "updated_at", "is_reply", "parent_id",
	"total_reply_count", "extracted_at", "is_valid",
	"sentiment_polarity", "sentiment_subjectivity", "vader_compound",
	"vader_positive", "vader_negative", "vader_neutral", "sentiment_label",
	"emotion_strength", "is_subjective", "sentiment_analyzed_at",
}

// CSV writes one row per comment, enrichment columns included. Unscored
// comments leave the enrichment columns empty.
func (e *Exporter) CSV(video *models.Video, comments []*models.Comment) (string, error) {
	path, err := e.artifactPath(video, FormatCSV)
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("export: write csv header: %w", err)
	}
	for _, c := range comments {
		if err := w.Write(commentRow(c)); err != nil {
			return "", fmt.Errorf("export: write csv row for %s: %w", c.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("export: flush csv: %w", err)
	}

	log.Printf("Exported to CSV: %s", path)
	return path, nil
}

func commentRow(c *models.Comment) []string {
	row := []string{
		c.ID, c.VideoID, c.Text, c.TextOriginal, c.AuthorDisplayName,
		c.AuthorProfileImageURL, c.AuthorChannelURL, c.AuthorChannelID,
		strconv.FormatInt(c.LikeCount, 10),
		formatTime(c.PublishedAt), formatTime(c.UpdatedAt),
		strconv.FormatBool(c.IsReply), c.ParentID,
		strconv.FormatInt(c.TotalReplyCount, 10),
		formatTime(c.ExtractedAt), strconv.FormatBool(c.IsValid),
	}

	if sc := c.Sentiment; sc != nil {
		row = append(row,
			formatFloat(sc.Polarity), formatFloat(sc.Subjectivity),
			formatFloat(sc.VaderCompound), formatFloat(sc.VaderPositive),
			formatFloat(sc.VaderNegative), formatFloat(sc.VaderNeutral),
			sc.Label, sc.Strength, strconv.FormatBool(sc.IsSubjective),
			formatTime(sc.AnalyzedAt),
		)
	} else {
		row = append(row, "", "", "", "", "", "", "", "", "", "")
	}
	return row
}

type jsonArtifact struct {
	VideoInfo *models.Video     `json:"video_info"`
	Comments  []*models.Comment `json:"comments"`
	Metadata  exportMetadata    `json:"export_metadata"`
}

type exportMetadata struct {
	ExportedAt    time.Time `json:"exported_at"`
	TotalComments int       `json:"total_comments"`
	ExportFormat  string    `json:"export_format"`
}

// JSON writes the video metadata, the comments, and a metadata trailer
// in one indented document.
func (e *Exporter) JSON(video *models.Video, comments []*models.Comment) (string, error) {
	path, err := e.artifactPath(video, FormatJSON)
	if err != nil {
		return "", err
	}

	artifact := jsonArtifact{
		VideoInfo: video,
		Comments:  comments,
		Metadata: exportMetadata{
			ExportedAt:    e.now().UTC(),
			TotalComments: len(comments),
			ExportFormat:  FormatJSON,
		},
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return "", fmt.Errorf("export: marshal json for %s: %w", video.ID, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("export: write %s: %w", path, err)
	}

	log.Printf("Exported to JSON: %s", path)
	return path, nil
}

func (e *Exporter) artifactPath(video *models.Video, ext string) (string, error) {
	if err := os.MkdirAll(e.exportsPath, 0750); err != nil {
		return "", fmt.Errorf("export: mkdir %s: %w", e.exportsPath, err)
	}
	filename := fmt.Sprintf("%s_%s_%s.%s",
		video.ID, sanitizeFilename(video.Title), e.now().Format(timestampFormat), ext)
	return filepath.Join(e.exportsPath, filename), nil
}

var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// sanitizeFilename makes a string safe for use in an artifact filename.
func sanitizeFilename(name string) string {
	sanitized := invalidFilenameChars.ReplaceAllString(name, "_")
	sanitized = strings.Trim(sanitized, " .")
	if len(sanitized) > 200 {
		sanitized = sanitized[:200]
	}
	return sanitized
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
