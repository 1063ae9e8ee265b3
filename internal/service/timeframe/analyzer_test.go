package timeframe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"trendlens/internal/domain/content"
	"trendlens/internal/domain/trend"
)

type fakeVideo struct {
	channels    map[string]string
	items       map[string][]content.VideoItem
	searchItems map[string][]content.VideoItem
	subscribers map[string]*int64
	statsErr    error

	statsCalls [][]string
}

func (f *fakeVideo) Name() content.Platform { return content.PlatformYouTube }

func (f *fakeVideo) GetTrending(ctx context.Context, maxResults int) ([]content.ContentRecord, error) {
	return nil, nil
}

func (f *fakeVideo) Search(ctx context.Context, query string, maxResults int) ([]content.ContentRecord, error) {
	return nil, nil
}

func (f *fakeVideo) ResolveChannelID(ctx context.Context, handle string) (string, error) {
	if id, ok := f.channels[handle]; ok {
		return id, nil
	}
	return "", fmt.Errorf("channel %q: %w", handle, content.ErrNotFound)
}

func (f *fakeVideo) RecentItemsByChannel(ctx context.Context, channelID string, maxResults int, region string) ([]content.VideoItem, error) {
	return f.items[channelID], nil
}

func (f *fakeVideo) SearchRecent(ctx context.Context, query string, maxResults int) ([]content.VideoItem, error) {
	return f.searchItems[query], nil
}

func (f *fakeVideo) ChannelSubscriberCounts(ctx context.Context, ids []string) (map[string]*int64, error) {
	f.statsCalls = append(f.statsCalls, ids)
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	out := make(map[string]*int64, len(ids))
	for _, id := range ids {
		if n, ok := f.subscribers[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

func (f *fakeVideo) ChannelInfo(ctx context.Context, channelID string) (*content.ChannelInfo, error) {
	return nil, content.ErrNotFound
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func ptr(n int64) *int64 { return &n }

func item(channelID, videoID, duration string, views int64, published time.Time) content.VideoItem {
	return content.VideoItem{
		ContentRecord: content.ContentRecord{
			ID:          videoID,
			Title:       videoID,
			Platform:    content.PlatformYouTube,
			ViewCount:   &views,
			PublishedAt: &published,
			Duration:    duration,
		},
		ChannelID: channelID,
	}
}

func newTestService(video *fakeVideo, now time.Time) *Service {
	svc := NewService(video, Config{}, quietLogger())
	svc.now = func() time.Time { return now }
	return svc
}

func TestAnalyze_RequiresChannelOrKeyword(t *testing.T) {
	svc := newTestService(&fakeVideo{}, time.Now())
	if _, err := svc.Analyze(context.Background(), trend.AnalyzeRequest{}); !errors.Is(err, content.ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestAnalyze_RejectsUnknownForm(t *testing.T) {
	svc := newTestService(&fakeVideo{}, time.Now())
	req := trend.AnalyzeRequest{Keywords: []string{"게임"}, Form: "medium"}
	if _, err := svc.Analyze(context.Background(), req); !errors.Is(err, content.ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestAnalyze_UnresolvedHandleSkipped(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	video := &fakeVideo{
		channels: map[string]string{"@known": "ch1"},
		items: map[string][]content.VideoItem{
			"ch1": {item("ch1", "v1", "5:00", 10_000, now.Add(-48*time.Hour))},
		},
	}
	svc := newTestService(video, now)

	result, err := svc.Analyze(context.Background(), trend.AnalyzeRequest{
		Channels: []string{"@ghost", "@known"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Rows) != 1 || result.Rows[0].VideoID != "v1" {
		t.Fatalf("rows = %+v", result.Rows)
	}
}

func TestAnalyze_TimeAndFormFilters(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	video := &fakeVideo{
		searchItems: map[string][]content.VideoItem{
			"게임": {
				item("ch1", "short", "2:30", 1000, now.Add(-24*time.Hour)),
				item("ch1", "long", "12:00", 1000, now.Add(-24*time.Hour)),
				item("ch1", "old", "2:00", 1000, now.Add(-30*24*time.Hour)),
				item("ch1", "noduration", "", 1000, now.Add(-24*time.Hour)),
			},
		},
		subscribers: map[string]*int64{"ch1": ptr(1000)},
	}
	svc := newTestService(video, now)

	result, err := svc.Analyze(context.Background(), trend.AnalyzeRequest{
		Keywords: []string{"게임"},
		Form:     trend.FormShorts,
	})
	if err != nil {
		t.Fatal(err)
	}

	got := map[string]bool{}
	for _, row := range result.Rows {
		got[row.VideoID] = true
	}
	if !got["short"] {
		t.Error("short-form row dropped")
	}
	if got["long"] {
		t.Error("long-form row passed a shorts filter")
	}
	if got["old"] {
		t.Error("row outside the timeframe passed")
	}
	// Unknown length class passes any form filter.
	if !got["noduration"] {
		t.Error("row with unparsable duration dropped by form filter")
	}
}

func TestAnalyze_Enrichment(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	published := now.Add(-10 * time.Hour)
	video := &fakeVideo{
		searchItems: map[string][]content.VideoItem{
			"게임": {item("ch1", "v1", "5:00", 20_000, published)},
		},
		subscribers: map[string]*int64{"ch1": ptr(4000)},
	}
	svc := newTestService(video, now)

	result, err := svc.Analyze(context.Background(), trend.AnalyzeRequest{Keywords: []string{"게임"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("rows = %d", len(result.Rows))
	}

	row := result.Rows[0]
	if row.ViewsPerHour == nil || *row.ViewsPerHour != 2000 {
		t.Errorf("views per hour = %v, want 2000", row.ViewsPerHour)
	}
	if row.SubscriberCount == nil || *row.SubscriberCount != 4000 {
		t.Errorf("subscriber count = %v", row.SubscriberCount)
	}
	if row.ViewToSubscriberRatio == nil || *row.ViewToSubscriberRatio != 5 {
		t.Errorf("ratio = %v, want 5", row.ViewToSubscriberRatio)
	}
}

func TestAnalyze_StatsFailureLeavesRowsUnenriched(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	video := &fakeVideo{
		searchItems: map[string][]content.VideoItem{
			"게임": {item("ch1", "v1", "5:00", 1000, now.Add(-24*time.Hour))},
		},
		statsErr: errors.New("quota exceeded"),
	}
	svc := newTestService(video, now)

	result, err := svc.Analyze(context.Background(), trend.AnalyzeRequest{Keywords: []string{"게임"}})
	if err != nil {
		t.Fatal(err)
	}
	row := result.Rows[0]
	if row.SubscriberCount != nil || row.ViewToSubscriberRatio != nil {
		t.Errorf("failed stats lookup should leave fields nil: %+v", row)
	}
}

func TestAnalyze_SubscriberLookupBatched(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	items := make([]content.VideoItem, 0, 120)
	for i := 0; i < 120; i++ {
		items = append(items, item(fmt.Sprintf("ch%03d", i), fmt.Sprintf("v%03d", i), "5:00", 1000, now.Add(-time.Hour)))
	}
	video := &fakeVideo{searchItems: map[string][]content.VideoItem{"게임": items}}
	svc := newTestService(video, now)

	if _, err := svc.Analyze(context.Background(), trend.AnalyzeRequest{Keywords: []string{"게임"}, MaxPerKeyword: 120}); err != nil {
		t.Fatal(err)
	}
	if len(video.statsCalls) != 3 {
		t.Fatalf("stats calls = %d, want 3 batches of <=50", len(video.statsCalls))
	}
	for _, batch := range video.statsCalls {
		if len(batch) > 50 {
			t.Errorf("batch size %d exceeds 50", len(batch))
		}
	}
}

func TestAnalyze_ThresholdFilter(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	noViews := item("ch1", "noviews", "5:00", 0, now.Add(-time.Hour))
	noViews.ViewCount = nil

	video := &fakeVideo{
		searchItems: map[string][]content.VideoItem{
			"게임": {
				item("ch1", "popular", "5:00", 50_000, now.Add(-10*time.Hour)),
				item("ch1", "slow", "5:00", 100, now.Add(-100*time.Hour)),
				noViews,
			},
		},
	}
	svc := newTestService(video, now)

	result, err := svc.Analyze(context.Background(), trend.AnalyzeRequest{
		Keywords:     []string{"게임"},
		MinViewCount: 1000,
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.Total != 3 {
		t.Errorf("total = %d, want 3 before threshold", result.Total)
	}
	if result.Filtered != 1 || len(result.Rows) != 1 || result.Rows[0].VideoID != "popular" {
		t.Errorf("rows = %+v", result.Rows)
	}

	// Rows without a view count are dropped even with a zero threshold.
	result, err = svc.Analyze(context.Background(), trend.AnalyzeRequest{Keywords: []string{"게임"}})
	if err != nil {
		t.Fatal(err)
	}
	for _, row := range result.Rows {
		if row.VideoID == "noviews" {
			t.Error("row without view count survived the threshold")
		}
	}
}

func TestAnalyze_EffectiveSettingsEchoed(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	svc := newTestService(&fakeVideo{}, now)

	result, err := svc.Analyze(context.Background(), trend.AnalyzeRequest{Keywords: []string{"게임"}})
	if err != nil {
		t.Fatal(err)
	}
	s := result.Settings
	if s.TimeframeDays != 7 || s.ShortFormMaxSeconds != 180 || s.Form != trend.FormBoth {
		t.Errorf("settings = %+v", s)
	}
	if s.MaxPerChannel != 30 || s.MaxPerKeyword != 30 {
		t.Errorf("limits = %+v", s)
	}
}
