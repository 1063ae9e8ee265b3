package aggregate

import (
	"context"
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"

	"trendlens/internal/domain/content"
	"trendlens/internal/domain/trend"
)

type fakeCollaborator struct {
	platform content.Platform
	records  []content.ContentRecord
	err      error
}

func (f *fakeCollaborator) Name() content.Platform { return f.platform }

func (f *fakeCollaborator) GetTrending(ctx context.Context, maxResults int) ([]content.ContentRecord, error) {
	return f.records, f.err
}

func (f *fakeCollaborator) Search(ctx context.Context, query string, maxResults int) ([]content.ContentRecord, error) {
	return f.records, f.err
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func record(platform content.Platform, id, title string, views int64) content.ContentRecord {
	return content.ContentRecord{
		ID:        id,
		Title:     title,
		Platform:  platform,
		ViewCount: &views,
	}
}

func newTestService(collaborators ...content.PlatformCollaborator) *Service {
	return NewService(collaborators, nil, Config{}, quietLogger())
}

func TestRankKeywords_CrossPlatformScore(t *testing.T) {
	svc := newTestService()
	batches := trend.Batches{
		content.PlatformYouTube:   {record(content.PlatformYouTube, "y1", "game review", 1000)},
		content.PlatformTikTok:    {record(content.PlatformTikTok, "t1", "game clip", 1000)},
		content.PlatformInstagram: {record(content.PlatformInstagram, "i1", "game post", 1000)},
	}

	ranked := svc.RankKeywords(batches)
	if len(ranked) == 0 {
		t.Fatal("no keywords ranked")
	}
	top := ranked[0]
	if top.Keyword != "game" {
		t.Fatalf("top keyword = %q, want game", top.Keyword)
	}
	// count 3 * 10 + 3000/1000 + 3 platforms * 5 = 48
	if top.TrendingScore != 48 {
		t.Errorf("trending score = %d, want 48", top.TrendingScore)
	}
	if top.Count != 3 || top.TotalViews != 3000 || top.PlatformCount != 3 {
		t.Errorf("stats = %+v", top)
	}
	if !reflect.DeepEqual(top.Platforms, []string{"youtube", "tiktok", "instagram"}) {
		t.Errorf("platforms = %v", top.Platforms)
	}
}

func TestRankKeywords_CountedOncePerRecord(t *testing.T) {
	svc := newTestService()
	desc := "game game game"
	rec := record(content.PlatformYouTube, "y1", "game", 0)
	rec.Description = &desc

	ranked := svc.RankKeywords(trend.Batches{content.PlatformYouTube: {rec}})
	if len(ranked) != 1 {
		t.Fatalf("ranked = %v", ranked)
	}
	if ranked[0].Count != 1 {
		t.Errorf("count = %d, want 1 per record", ranked[0].Count)
	}
}

func TestRankKeywords_EqualScoreKeepsFirstSeenOrder(t *testing.T) {
	svc := newTestService()

	// Both keywords come from the same record, so their count, views and
	// platform sets, and therefore scores, are identical.
	batches := trend.Batches{
		content.PlatformYouTube: {record(content.PlatformYouTube, "y1", "festival concert", 1000)},
	}

	ranked := svc.RankKeywords(batches)
	if len(ranked) != 2 {
		t.Fatalf("ranked = %+v, want 2 keywords", ranked)
	}
	if ranked[0].TrendingScore != ranked[1].TrendingScore {
		t.Fatalf("scores differ (%d vs %d), tie case broken", ranked[0].TrendingScore, ranked[1].TrendingScore)
	}
	if ranked[0].Keyword != "festival" || ranked[1].Keyword != "concert" {
		t.Errorf("tie order = [%q %q], want first-seen [festival concert]",
			ranked[0].Keyword, ranked[1].Keyword)
	}
}

func TestRankKeywords_Idempotent(t *testing.T) {
	svc := newTestService()
	batches := trend.Batches{
		content.PlatformYouTube: {
			record(content.PlatformYouTube, "y1", "kpop idol stage", 500),
			record(content.PlatformYouTube, "y2", "idol dance", 500),
		},
		content.PlatformTikTok: {
			record(content.PlatformTikTok, "t1", "kpop challenge", 2000),
		},
	}

	first := svc.RankKeywords(batches)
	for i := 0; i < 5; i++ {
		if got := svc.RankKeywords(batches); !reflect.DeepEqual(got, first) {
			t.Fatalf("ranking not stable across runs:\n%v\n%v", first, got)
		}
	}
}

func TestRankKeywords_EmptyBatches(t *testing.T) {
	svc := newTestService()
	if got := svc.RankKeywords(trend.Batches{}); len(got) != 0 {
		t.Errorf("ranking of empty batches = %v", got)
	}
}

func TestCollectTrending_FailingPlatformDegrades(t *testing.T) {
	ok := &fakeCollaborator{
		platform: content.PlatformYouTube,
		records:  []content.ContentRecord{record(content.PlatformYouTube, "y1", "hello", 10)},
	}
	broken := &fakeCollaborator{
		platform: content.PlatformTikTok,
		err:      errors.New("upstream down"),
	}

	svc := newTestService(ok, broken)
	batches := svc.CollectTrending(context.Background(), nil, 10)

	if len(batches[content.PlatformYouTube]) != 1 {
		t.Errorf("healthy platform batch = %v", batches[content.PlatformYouTube])
	}
	if len(batches[content.PlatformTikTok]) != 0 {
		t.Errorf("failing platform should degrade to empty, got %v", batches[content.PlatformTikTok])
	}
}

func TestCollectSearch_UnregisteredPlatformSkipped(t *testing.T) {
	svc := newTestService(&fakeCollaborator{platform: content.PlatformYouTube})
	batches := svc.CollectSearch(context.Background(), "query", []content.Platform{content.PlatformInstagram}, 10)
	if _, ok := batches[content.PlatformInstagram]; ok {
		t.Errorf("unregistered platform produced a batch")
	}
}

func TestTrendingKeywords_Snapshot(t *testing.T) {
	svc := newTestService(&fakeCollaborator{
		platform: content.PlatformYouTube,
		records:  []content.ContentRecord{record(content.PlatformYouTube, "y1", "festival live", 3000)},
	})

	snapshot, err := svc.TrendingKeywords(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if snapshot.ID == "" {
		t.Error("snapshot without ID")
	}
	if snapshot.Total != len(snapshot.Keywords) {
		t.Errorf("total = %d, keywords = %d", snapshot.Total, len(snapshot.Keywords))
	}
	if snapshot.Total != 2 {
		t.Errorf("total = %d, want 2 (festival, live)", snapshot.Total)
	}
}

func TestCollaboratorLookup(t *testing.T) {
	yt := &fakeCollaborator{platform: content.PlatformYouTube}
	svc := newTestService(yt)

	if got, ok := svc.Collaborator(content.PlatformYouTube); !ok || got != content.PlatformCollaborator(yt) {
		t.Errorf("lookup failed")
	}
	if _, ok := svc.Collaborator(content.PlatformTikTok); ok {
		t.Errorf("unexpected collaborator")
	}
}
