package timeframe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"trendlens/internal/domain/content"
	"trendlens/internal/domain/trend"
	"trendlens/internal/service/normalize"
)

// Config holds the analyzer's defaults; each is overridable per request.
type Config struct {
	TimeframeDays       int
	ShortFormMaxSeconds int
	MaxPerChannel       int
	MaxPerKeyword       int
	Region              string
}

// subscriberBatchSize mirrors the platform API's page-size ceiling for
// batched channel lookups.
const subscriberBatchSize = 50

// minHours floors the publish-age denominator so views-per-hour does not
// blow up for just-published content.
const minHours = 1.0 / 60

// Service runs the channel/keyword deep-dive: collect recent items,
// filter by publish age and content-length class, enrich with channel
// subscriber counts, then apply absolute and velocity view thresholds.
// It implements trend.TimeframeAnalyzer.
type Service struct {
	video  content.VideoCollaborator
	config Config
	log    *logrus.Logger
	now    func() time.Time
}

// NewService creates the analyzer around a single video-platform
// collaborator.
func NewService(video content.VideoCollaborator, config Config, log *logrus.Logger) *Service {
	if config.TimeframeDays <= 0 {
		config.TimeframeDays = 7
	}
	if config.ShortFormMaxSeconds <= 0 {
		config.ShortFormMaxSeconds = 180
	}
	if config.MaxPerChannel <= 0 {
		config.MaxPerChannel = 30
	}
	if config.MaxPerKeyword <= 0 {
		config.MaxPerKeyword = 30
	}

	return &Service{
		video:  video,
		config: config,
		log:    log,
		now:    time.Now,
	}
}

// Analyze runs the full pipeline for one request.
func (s *Service) Analyze(ctx context.Context, req trend.AnalyzeRequest) (*trend.AnalyzeResult, error) {
	req, err := s.effectiveRequest(req)
	if err != nil {
		return nil, err
	}

	rows, err := s.collect(ctx, req)
	if err != nil {
		return nil, err
	}

	rows = s.filterByTimeAndForm(rows, req)
	s.enrichChannelStats(ctx, rows)

	total := len(rows)
	kept := filterByThreshold(rows, req)

	return &trend.AnalyzeResult{
		Rows:     kept,
		Total:    total,
		Filtered: len(kept),
		Settings: req,
	}, nil
}

func (s *Service) effectiveRequest(req trend.AnalyzeRequest) (trend.AnalyzeRequest, error) {
	if len(req.Channels) == 0 && len(req.Keywords) == 0 {
		return req, fmt.Errorf("%w: at least one channel or keyword is required", content.ErrInvalidArgument)
	}

	switch req.Form {
	case trend.FormShorts, trend.FormLong, trend.FormBoth:
	case "":
		req.Form = trend.FormBoth
	default:
		return req, fmt.Errorf("%w: unknown form filter %q", content.ErrInvalidArgument, req.Form)
	}

	if req.TimeframeDays <= 0 {
		req.TimeframeDays = s.config.TimeframeDays
	}
	if req.ShortFormMaxSeconds <= 0 {
		req.ShortFormMaxSeconds = s.config.ShortFormMaxSeconds
	}
	if req.MaxPerChannel <= 0 {
		req.MaxPerChannel = s.config.MaxPerChannel
	}
	if req.MaxPerKeyword <= 0 {
		req.MaxPerKeyword = s.config.MaxPerKeyword
	}
	if req.Region == "" {
		req.Region = s.config.Region
	}
	return req, nil
}

// collect resolves each channel handle and fetches its recent items, then
// fetches date-ordered results per keyword. A handle that does not
// resolve, or a channel/keyword whose fetch fails, is logged and skipped;
// the rest of the request proceeds.
func (s *Service) collect(ctx context.Context, req trend.AnalyzeRequest) ([]trend.AnalyzeRow, error) {
	now := s.now()
	var rows []trend.AnalyzeRow

	for _, handle := range req.Channels {
		channelID, err := s.video.ResolveChannelID(ctx, handle)
		if err != nil {
			if errors.Is(err, content.ErrNotFound) {
				s.log.WithField("handle", handle).Warn("channel handle did not resolve, skipping")
			} else {
				s.log.WithField("handle", handle).WithError(err).Warn("channel resolution failed, skipping")
			}
			continue
		}

		items, err := s.video.RecentItemsByChannel(ctx, channelID, req.MaxPerChannel, req.Region)
		if err != nil {
			s.log.WithField("channel_id", channelID).WithError(err).Warn("channel fetch failed, skipping")
			continue
		}
		for _, item := range items {
			rows = append(rows, toRow(item, now))
		}
	}

	for _, keyword := range req.Keywords {
		items, err := s.video.SearchRecent(ctx, keyword, req.MaxPerKeyword)
		if err != nil {
			s.log.WithField("keyword", keyword).WithError(err).Warn("keyword fetch failed, skipping")
			continue
		}
		for _, item := range items {
			rows = append(rows, toRow(item, now))
		}
	}

	return rows, nil
}

// toRow converts a collected item into an analyzer row, computing views
// per hour against the sampling instant.
func toRow(item content.VideoItem, now time.Time) trend.AnalyzeRow {
	row := trend.AnalyzeRow{
		VideoID:      item.ID,
		ChannelID:    item.ChannelID,
		Title:        item.Title,
		PublishedAt:  item.PublishedAt,
		ViewCount:    item.ViewCount,
		Duration:     item.Duration,
		VideoURL:     item.URL,
		ThumbnailURL: item.ThumbnailURL,
	}
	if item.Author != nil {
		row.ChannelName = *item.Author
	}

	if item.ViewCount != nil && item.PublishedAt != nil {
		hours := now.Sub(*item.PublishedAt).Hours()
		if hours < minHours {
			hours = minHours
		}
		vph := normalize.Round2(float64(*item.ViewCount) / hours)
		row.ViewsPerHour = &vph
	}

	return row
}

// filterByTimeAndForm drops rows published before the timeframe cutoff
// and rows not matching the requested content-length class. Rows without
// a parsable duration pass any form filter, since their class is
// unknown; rows without a publish time cannot be age-filtered and are
// kept.
func (s *Service) filterByTimeAndForm(rows []trend.AnalyzeRow, req trend.AnalyzeRequest) []trend.AnalyzeRow {
	cutoff := s.now().AddDate(0, 0, -req.TimeframeDays)

	kept := rows[:0]
	for _, row := range rows {
		if row.PublishedAt != nil && row.PublishedAt.Before(cutoff) {
			continue
		}

		if req.Form != trend.FormBoth {
			if seconds, ok := normalize.DurationSeconds(row.Duration); ok {
				short := seconds <= req.ShortFormMaxSeconds
				if short && req.Form != trend.FormShorts {
					continue
				}
				if !short && req.Form != trend.FormLong {
					continue
				}
			}
		}

		kept = append(kept, row)
	}
	return kept
}

// enrichChannelStats batch-fetches subscriber counts for the distinct
// channels present in the rows and backfills each row in place. A failed
// lookup leaves the fields nil.
func (s *Service) enrichChannelStats(ctx context.Context, rows []trend.AnalyzeRow) {
	var ids []string
	seen := make(map[string]struct{})
	for _, row := range rows {
		if row.ChannelID == "" {
			continue
		}
		if _, ok := seen[row.ChannelID]; ok {
			continue
		}
		seen[row.ChannelID] = struct{}{}
		ids = append(ids, row.ChannelID)
	}
	if len(ids) == 0 {
		return
	}

	subscribers := make(map[string]*int64, len(ids))
	for start := 0; start < len(ids); start += subscriberBatchSize {
		end := start + subscriberBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		counts, err := s.video.ChannelSubscriberCounts(ctx, ids[start:end])
		if err != nil {
			s.log.WithError(err).Warn("channel stats lookup failed, leaving rows unenriched")
			continue
		}
		for id, count := range counts {
			subscribers[id] = count
		}
	}

	for i := range rows {
		row := &rows[i]
		count, ok := subscribers[row.ChannelID]
		if !ok || count == nil {
			continue
		}
		row.SubscriberCount = count

		if row.ViewCount != nil {
			denom := *count
			if denom < 1 {
				denom = 1
			}
			ratio := normalize.Round2(float64(*row.ViewCount) / float64(denom))
			row.ViewToSubscriberRatio = &ratio
		}
	}
}

// filterByThreshold keeps rows meeting both the absolute and the velocity
// view thresholds. Rows with no view count are dropped outright: no
// threshold decision can be made for them.
func filterByThreshold(rows []trend.AnalyzeRow, req trend.AnalyzeRequest) []trend.AnalyzeRow {
	kept := make([]trend.AnalyzeRow, 0, len(rows))
	for _, row := range rows {
		if row.ViewCount == nil || *row.ViewCount < req.MinViewCount {
			continue
		}

		vph := 0.0
		if row.ViewsPerHour != nil {
			vph = *row.ViewsPerHour
		}
		if vph < req.MinViewsPerHour {
			continue
		}

		kept = append(kept, row)
	}
	return kept
}
