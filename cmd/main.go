package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"comment-scraper/internal/export"
	"comment-scraper/internal/extractor"
	"comment-scraper/internal/models"
	"comment-scraper/internal/sentiment"
	"comment-scraper/internal/store"
	"comment-scraper/internal/validate"
	"comment-scraper/internal/youtube"
	"comment-scraper/shared/config"
	"comment-scraper/shared/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create context that responds to signals
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	args := os.Args[1:]
	command := "extract"
	if len(args) > 0 {
		switch args[0] {
		case "extract", "list", "info", "watch":
			command = args[0]
			args = args[1:]
		}
	}

	switch command {
	case "list":
		runList(cfg)
	case "info":
		runInfo(ctx, cfg, args)
	case "watch":
		runWatch(ctx, cfg)
	default:
		runExtract(ctx, cfg, args)
	}
}

func buildExtractor(cfg *config.Config) (*extractor.Extractor, *store.Store, error) {
	client, err := youtube.NewClient(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create YouTube client: %w", err)
	}

	analyzer, err := buildAnalyzer(cfg)
	if err != nil {
		return nil, nil, err
	}

	db, err := store.Open(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	e := extractor.New(
		extractor.ClientSource{Client: client},
		validate.New(cfg.Filters),
		analyzer,
		db,
		export.New(cfg.Storage.ExportsPath),
	)
	return e, db, nil
}

func buildAnalyzer(cfg *config.Config) (*sentiment.Analyzer, error) {
	if cfg.AI.SentimentModel == "gemini" {
		gemini, err := sentiment.NewGeminiModel(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini model: %w", err)
		}
		return sentiment.NewAnalyzer(gemini, sentiment.NewVaderModel()), nil
	}
	return sentiment.NewDefaultAnalyzer(), nil
}

func runExtract(ctx context.Context, cfg *config.Config, args []string) {
	flags := flag.NewFlagSet("extract", flag.ExitOnError)
	maxComments := flags.Int64("max-comments", 0, "maximum comments to extract (0 = configured default)")
	order := flags.String("order", "relevance", "comment order: relevance or time")
	exportFormat := flags.String("export", "", "export format: csv or json")
	noSave := flags.Bool("no-save", false, "skip saving to the database")
	flags.Parse(args)

	url := flags.Arg(0)
	if url == "" {
		log.Fatal("Usage: comment-scraper [extract] [flags] <video URL or ID>")
	}

	e, db, err := buildExtractor(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer db.Close()

	result, err := e.Extract(ctx, url, extractor.Options{
		MaxComments:  *maxComments,
		Order:        *order,
		Save:         !*noSave,
		ExportFormat: *exportFormat,
	})
	if err != nil {
		log.Fatalf("Extraction failed: %v", err)
	}

	stats := result.Statistics
	fmt.Printf("\nExtraction complete for %q (%s)\n", stats.VideoTitle, stats.ChannelTitle)
	fmt.Printf("  Extracted: %d comments (%d valid, %d dropped)\n", stats.TotalExtracted, stats.Valid, stats.Invalid)
	fmt.Printf("  Elapsed:   %v\n", stats.Elapsed.Round(10*time.Millisecond))

	if result.ExportedFile != "" {
		fmt.Printf("  Exported:  %s\n", result.ExportedFile)
	}

	if len(result.Comments) > 0 {
		scores := make([]models.SentimentScore, 0, len(result.Comments))
		for _, c := range result.Comments {
			if c.Sentiment != nil {
				scores = append(scores, *c.Sentiment)
			}
		}
		summary := sentiment.Summarize(scores)
		fmt.Printf("  Sentiment: %s (%d positive / %d neutral / %d negative)\n",
			summary.Overall,
			summary.LabelCounts[models.SentimentPositive],
			summary.LabelCounts[models.SentimentNeutral],
			summary.LabelCounts[models.SentimentNegative])
	}
}

func runList(cfg *config.Config) {
	db, err := store.Open(cfg.Storage.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	videos, err := db.ListVideos()
	if err != nil {
		log.Fatalf("Failed to list videos: %v", err)
	}
	if len(videos) == 0 {
		fmt.Println("No videos extracted yet")
		return
	}

	fmt.Printf("%-12s  %-50s  %-20s  %8s\n", "VIDEO ID", "TITLE", "EXTRACTED", "COMMENTS")
	for _, v := range videos {
		title := v.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Printf("%-12s  %-50s  %-20s  %8d\n",
			v.ID, title, v.ExtractedAt.Format("2006-01-02 15:04"), v.CommentsExtracted)
	}
}

func runInfo(ctx context.Context, cfg *config.Config, args []string) {
	if len(args) == 0 {
		log.Fatal("Usage: comment-scraper info <video URL or ID>")
	}

	videoID, err := youtube.ExtractVideoID(args[0])
	if err != nil {
		log.Fatalf("Invalid video: %v", err)
	}

	client, err := youtube.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to create YouTube client: %v", err)
	}

	video, err := client.VideoInfo(ctx, videoID)
	if err != nil {
		log.Fatalf("Failed to fetch video info: %v", err)
	}

	fmt.Printf("Title:     %s\n", video.Title)
	fmt.Printf("Channel:   %s\n", video.ChannelTitle)
	fmt.Printf("Published: %s\n", video.PublishedAt.Format("2006-01-02 15:04"))
	fmt.Printf("Duration:  %s\n", video.Duration)
	fmt.Printf("Views:     %d\n", video.ViewCount)
	fmt.Printf("Likes:     %d\n", video.LikeCount)
	fmt.Printf("Comments:  %d\n", video.CommentCount)
}

func runWatch(ctx context.Context, cfg *config.Config) {
	e, db, err := buildExtractor(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer db.Close()

	job := extractor.NewWatchJob(e, cfg.Watch.Videos, extractor.Options{})
	s := scheduler.New(cfg, job)

	fmt.Println("Starting scheduler...")
	if err := s.Start(ctx); err != nil {
		log.Fatalf("Scheduler failed: %v", err)
	}
}
