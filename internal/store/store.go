// Package store persists videos and comments in a local SQLite database.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"comment-scraper/internal/models"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// Open creates the parent directory if needed, opens (or creates) the
// database, ensures the base schema, and applies the additive sentiment
// migration.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("store: mkdir %s: %w", filepath.Dir(path), err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}
	migrateSentimentColumns(db)

	log.Printf("Database initialized at: %s", path)
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS videos (
		video_id                 TEXT PRIMARY KEY,
		title                    TEXT,
		description              TEXT,
		channel_id               TEXT,
		channel_title            TEXT,
		published_at             TEXT,
		duration                 TEXT,
		view_count               INTEGER,
		like_count               INTEGER,
		comment_count            INTEGER,
		thumbnail_url            TEXT,
		tags                     TEXT,
		category_id              TEXT,
		default_language         TEXT,
		default_audio_language   TEXT,
		extracted_at             TEXT,
		total_comments_extracted INTEGER
	)`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS comments (
		comment_id               TEXT PRIMARY KEY,
		video_id                 TEXT,
		text                     TEXT,
		text_original            TEXT,
		author_display_name      TEXT,
		author_profile_image_url TEXT,
		author_channel_url       TEXT,
		author_channel_id        TEXT,
		like_count               INTEGER,
		published_at             TEXT,
		updated_at               TEXT,
		is_reply                 BOOLEAN,
		parent_id                TEXT,
		total_reply_count        INTEGER,
		extracted_at             TEXT,
		is_valid                 BOOLEAN,
		FOREIGN KEY (video_id) REFERENCES videos (video_id)
	)`)
	return err
}

// sentimentColumns are added to comments tables created before enrichment
// existed. Order matters for readability only; each ALTER is independent.
var sentimentColumns = []struct {
	name    string
	sqlType string
}{
	{"sentiment_polarity", "REAL"},
	{"sentiment_subjectivity", "REAL"},
	{"vader_compound", "REAL"},
	{"vader_positive", "REAL"},
	{"vader_negative", "REAL"},
	{"vader_neutral", "REAL"},
	{"sentiment_label", "TEXT"},
	{"emotion_strength", "TEXT"},
	{"is_subjective", "BOOLEAN"},
	{"sentiment_analyzed_at", "TEXT"},
}

// migrateSentimentColumns adds any missing enrichment columns. Failures
// are logged and swallowed: enrichment is optional and must not block
// extraction against an existing database.
func migrateSentimentColumns(db *sql.DB) {
	rows, err := db.Query(`PRAGMA table_info(comments)`)
	if err != nil {
		log.Printf("Warning: failed to inspect comments schema: %v", err)
		return
	}
	existing := make(map[string]bool)
	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			continue
		}
		existing[name] = true
	}
	rows.Close()

	for _, col := range sentimentColumns {
		if existing[col.name] {
			continue
		}
		if _, err := db.Exec(fmt.Sprintf(`ALTER TABLE comments ADD COLUMN %s %s`, col.name, col.sqlType)); err != nil {
			log.Printf("Warning: failed to add sentiment column %s: %v", col.name, err)
			continue
		}
		log.Printf("Added sentiment column: %s", col.name)
	}
}

// UpsertVideo writes or replaces one video row.
func (s *Store) UpsertVideo(v *models.Video) error {
	tags, err := json.Marshal(v.Tags)
	if err != nil {
		return fmt.Errorf("store: marshal tags for %s: %w", v.ID, err)
	}

	_, err = s.db.Exec(`INSERT OR REPLACE INTO videos (
		video_id, title, description, channel_id, channel_title, published_at,
		duration, view_count, like_count, comment_count, thumbnail_url, tags,
		category_id, default_language, default_audio_language, extracted_at,
		total_comments_extracted
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.Title, v.Description, v.ChannelID, v.ChannelTitle,
		formatTime(v.PublishedAt), v.Duration, v.ViewCount, v.LikeCount,
		v.CommentCount, v.ThumbnailURL, string(tags), v.CategoryID,
		v.DefaultLanguage, v.DefaultAudioLanguage, formatTime(v.ExtractedAt),
		v.CommentsExtracted,
	)
	if err != nil {
		return fmt.Errorf("store: upsert video %s: %w", v.ID, err)
	}
	return nil
}

// UpsertComments writes or replaces the given comments in one transaction.
// Comments already stored for the video but absent from this batch are
// left in place.
func (s *Store) UpsertComments(videoID string, comments []*models.Comment) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO comments (
		comment_id, video_id, text, text_original, author_display_name,
		author_profile_image_url, author_channel_url, author_channel_id,
		like_count, published_at, updated_at, is_reply, parent_id,
		total_reply_count, extracted_at, is_valid,
		sentiment_polarity, sentiment_subjectivity, vader_compound,
		vader_positive, vader_negative, vader_neutral, sentiment_label,
		emotion_strength, is_subjective, sentiment_analyzed_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("store: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range comments {
		var (
			polarity, subjectivity, compound    sql.NullFloat64
			vaderPos, vaderNeg, vaderNeu        sql.NullFloat64
			label, strength, analyzedAt         sql.NullString
			isSubjective                        sql.NullBool
		)
		if sc := c.Sentiment; sc != nil {
			polarity = sql.NullFloat64{Float64: sc.Polarity, Valid: true}
			subjectivity = sql.NullFloat64{Float64: sc.Subjectivity, Valid: true}
			compound = sql.NullFloat64{Float64: sc.VaderCompound, Valid: true}
			vaderPos = sql.NullFloat64{Float64: sc.VaderPositive, Valid: true}
			vaderNeg = sql.NullFloat64{Float64: sc.VaderNegative, Valid: true}
			vaderNeu = sql.NullFloat64{Float64: sc.VaderNeutral, Valid: true}
			label = sql.NullString{String: sc.Label, Valid: true}
			strength = sql.NullString{String: sc.Strength, Valid: true}
			isSubjective = sql.NullBool{Bool: sc.IsSubjective, Valid: true}
			analyzedAt = sql.NullString{String: formatTime(sc.AnalyzedAt), Valid: true}
		}

		if _, err := stmt.Exec(
			c.ID, videoID, c.Text, c.TextOriginal, c.AuthorDisplayName,
			c.AuthorProfileImageURL, c.AuthorChannelURL, c.AuthorChannelID,
			c.LikeCount, formatTime(c.PublishedAt), formatTime(c.UpdatedAt),
			c.IsReply, c.ParentID, c.TotalReplyCount, formatTime(c.ExtractedAt),
			c.IsValid, polarity, subjectivity, compound, vaderPos, vaderNeg,
			vaderNeu, label, strength, isSubjective, analyzedAt,
		); err != nil {
			return fmt.Errorf("store: upsert comment %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit comments: %w", err)
	}
	return nil
}

// Video loads one video by ID, returning nil when it was never stored.
func (s *Store) Video(videoID string) (*models.Video, error) {
	row := s.db.QueryRow(`SELECT video_id, title, description, channel_id,
		channel_title, published_at, duration, view_count, like_count,
		comment_count, thumbnail_url, tags, category_id, default_language,
		default_audio_language, extracted_at, total_comments_extracted
		FROM videos WHERE video_id = ?`, videoID)

	var (
		v                        models.Video
		publishedAt, extractedAt string
		tags                     string
	)
	err := row.Scan(&v.ID, &v.Title, &v.Description, &v.ChannelID,
		&v.ChannelTitle, &publishedAt, &v.Duration, &v.ViewCount,
		&v.LikeCount, &v.CommentCount, &v.ThumbnailURL, &tags,
		&v.CategoryID, &v.DefaultLanguage, &v.DefaultAudioLanguage,
		&extractedAt, &v.CommentsExtracted)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: load video %s: %w", videoID, err)
	}

	v.PublishedAt = parseTime(publishedAt)
	v.ExtractedAt = parseTime(extractedAt)
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &v.Tags); err != nil {
			return nil, fmt.Errorf("store: unmarshal tags for %s: %w", videoID, err)
		}
	}
	return &v, nil
}

// Comments loads all stored comments for a video, newest first.
func (s *Store) Comments(videoID string) ([]*models.Comment, error) {
	rows, err := s.db.Query(`SELECT comment_id, video_id, text, text_original,
		author_display_name, author_profile_image_url, author_channel_url,
		author_channel_id, like_count, published_at, updated_at, is_reply,
		parent_id, total_reply_count, extracted_at, is_valid,
		sentiment_polarity, sentiment_subjectivity, vader_compound,
		vader_positive, vader_negative, vader_neutral, sentiment_label,
		emotion_strength, is_subjective, sentiment_analyzed_at
		FROM comments WHERE video_id = ? ORDER BY published_at DESC`, videoID)
	if err != nil {
		return nil, fmt.Errorf("store: query comments for %s: %w", videoID, err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan comment for %s: %w", videoID, err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func scanComment(rows *sql.Rows) (*models.Comment, error) {
	var (
		c                                   models.Comment
		publishedAt, updatedAt, extractedAt string
		polarity, subjectivity, compound    sql.NullFloat64
		vaderPos, vaderNeg, vaderNeu        sql.NullFloat64
		label, strength, analyzedAt         sql.NullString
		isSubjective                        sql.NullBool
	)
	if err := rows.Scan(&c.ID, &c.VideoID, &c.Text, &c.TextOriginal,
		&c.AuthorDisplayName, &c.AuthorProfileImageURL, &c.AuthorChannelURL,
		&c.AuthorChannelID, &c.LikeCount, &publishedAt, &updatedAt,
		&c.IsReply, &c.ParentID, &c.TotalReplyCount, &extractedAt,
		&c.IsValid, &polarity, &subjectivity, &compound, &vaderPos,
		&vaderNeg, &vaderNeu, &label, &strength, &isSubjective,
		&analyzedAt); err != nil {
		return nil, err
	}

	c.PublishedAt = parseTime(publishedAt)
	c.UpdatedAt = parseTime(updatedAt)
	c.ExtractedAt = parseTime(extractedAt)

	// A non-null analyzed_at marks a scored comment; all-zero scores with
	// it set mean "scored neutral", not "never scored".
	if analyzedAt.Valid {
		c.Sentiment = &models.SentimentScore{
			Polarity:      polarity.Float64,
			Subjectivity:  subjectivity.Float64,
			VaderCompound: compound.Float64,
			VaderPositive: vaderPos.Float64,
			VaderNegative: vaderNeg.Float64,
			VaderNeutral:  vaderNeu.Float64,
			Label:         label.String,
			Strength:      strength.String,
			IsSubjective:  isSubjective.Bool,
			AnalyzedAt:    parseTime(analyzedAt.String),
			TextLength:    len(c.CommentText()),
		}
	}
	return &c, nil
}

// ListVideos returns a summary row per stored video, most recently
// extracted first.
func (s *Store) ListVideos() ([]models.VideoSummary, error) {
	rows, err := s.db.Query(`SELECT video_id, title, channel_title,
		extracted_at, total_comments_extracted, view_count
		FROM videos ORDER BY extracted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: list videos: %w", err)
	}
	defer rows.Close()

	var videos []models.VideoSummary
	for rows.Next() {
		var (
			v           models.VideoSummary
			extractedAt string
		)
		if err := rows.Scan(&v.ID, &v.Title, &v.ChannelTitle, &extractedAt,
			&v.CommentsExtracted, &v.ViewCount); err != nil {
			return nil, fmt.Errorf("store: scan video summary: %w", err)
		}
		v.ExtractedAt = parseTime(extractedAt)
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// CommentCount returns the number of stored comments for a video.
func (s *Store) CommentCount(videoID string) (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM comments WHERE video_id = ?`, videoID).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: count comments for %s: %w", videoID, err)
	}
	return n, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
