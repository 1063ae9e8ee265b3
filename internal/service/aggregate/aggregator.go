package aggregate

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"trendlens/internal/domain/content"
	"trendlens/internal/domain/trend"
	"trendlens/internal/service/normalize"
)

// Config contains configuration for the aggregation service.
type Config struct {
	// EventsTopic is the NATS subject keyword snapshots are published to.
	EventsTopic string

	// DefaultMaxResults caps each platform's contribution when the caller
	// does not say otherwise.
	DefaultMaxResults int
}

// Service merges normalized records from the registered platform
// collaborators, extracts keywords and ranks them. It implements
// trend.Aggregator.
type Service struct {
	platforms map[content.Platform]content.PlatformCollaborator
	order     []content.Platform
	eventBus  *nats.Conn
	config    Config
	log       *logrus.Logger
}

// NewService creates the aggregation service. eventBus may be nil, in
// which case snapshot publishing is skipped.
func NewService(collaborators []content.PlatformCollaborator, eventBus *nats.Conn, config Config, log *logrus.Logger) *Service {
	if config.DefaultMaxResults <= 0 {
		config.DefaultMaxResults = 50
	}
	if config.EventsTopic == "" {
		config.EventsTopic = "trend.keywords"
	}

	s := &Service{
		platforms: make(map[content.Platform]content.PlatformCollaborator, len(collaborators)),
		eventBus:  eventBus,
		config:    config,
		log:       log,
	}
	for _, c := range collaborators {
		if _, dup := s.platforms[c.Name()]; dup {
			continue
		}
		s.platforms[c.Name()] = c
		s.order = append(s.order, c.Name())
	}
	return s
}

// Collaborator returns the registered collaborator for a platform.
func (s *Service) Collaborator(p content.Platform) (content.PlatformCollaborator, bool) {
	c, ok := s.platforms[p]
	return c, ok
}

// CollectTrending fans out to the requested platforms concurrently and
// fans the trending batches back in. A failing platform degrades to an
// empty batch with a warning; the collection itself never fails.
func (s *Service) CollectTrending(ctx context.Context, platforms []content.Platform, maxPerPlatform int) trend.Batches {
	return s.collect(ctx, platforms, func(ctx context.Context, c content.PlatformCollaborator, max int) ([]content.ContentRecord, error) {
		return c.GetTrending(ctx, max)
	}, maxPerPlatform)
}

// CollectSearch fans out a keyword search across the requested platforms.
func (s *Service) CollectSearch(ctx context.Context, query string, platforms []content.Platform, maxPerPlatform int) trend.Batches {
	return s.collect(ctx, platforms, func(ctx context.Context, c content.PlatformCollaborator, max int) ([]content.ContentRecord, error) {
		return c.Search(ctx, query, max)
	}, maxPerPlatform)
}

func (s *Service) collect(
	ctx context.Context,
	platforms []content.Platform,
	fetch func(context.Context, content.PlatformCollaborator, int) ([]content.ContentRecord, error),
	maxPerPlatform int,
) trend.Batches {
	if maxPerPlatform <= 0 {
		maxPerPlatform = s.config.DefaultMaxResults
	}
	if platforms == nil {
		platforms = s.order
	}

	batches := make(trend.Batches, len(platforms))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for _, p := range platforms {
		collaborator, ok := s.platforms[p]
		if !ok {
			s.log.WithField("platform", p).Warn("no collaborator registered, skipping")
			continue
		}

		wg.Add(1)
		go func(p content.Platform, c content.PlatformCollaborator) {
			defer wg.Done()

			records, err := fetch(ctx, c, maxPerPlatform)
			if err != nil {
				s.log.WithField("platform", p).WithError(err).Warn("platform collection failed, degrading to empty batch")
				records = nil
			}

			mu.Lock()
			batches[p] = records
			mu.Unlock()
		}(p, collaborator)
	}
	wg.Wait()

	return batches
}

// RankKeywords extracts keyword candidates from every record's title and
// description, accumulates per-keyword statistics and returns the full
// ranking, best first. A keyword counts once per contributing record;
// ties keep first-seen order, so the ranking is stable and idempotent.
func (s *Service) RankKeywords(batches trend.Batches) []trend.RankedKeyword {
	stats := make(map[string]*trend.KeywordStat)
	var firstSeen []string

	for _, platform := range s.batchOrder(batches) {
		for _, rec := range batches[platform] {
			text := rec.Title + " " + rec.DescriptionText()
			seenInRecord := make(map[string]struct{})

			for _, keyword := range normalize.ExtractKeywords(text) {
				if _, dup := seenInRecord[keyword]; dup {
					continue
				}
				seenInRecord[keyword] = struct{}{}

				stat, ok := stats[keyword]
				if !ok {
					stat = &trend.KeywordStat{
						Keyword:   keyword,
						Platforms: make(map[content.Platform]struct{}),
					}
					stats[keyword] = stat
					firstSeen = append(firstSeen, keyword)
				}

				stat.Count++
				if rec.ViewCount != nil {
					stat.TotalViews += *rec.ViewCount
				}
				stat.Platforms[rec.Platform] = struct{}{}
			}
		}
	}

	ranked := make([]trend.RankedKeyword, 0, len(firstSeen))
	for _, keyword := range firstSeen {
		stat := stats[keyword]
		ranked = append(ranked, trend.RankedKeyword{
			Keyword:       keyword,
			TrendingScore: stat.TrendingScore(),
			Count:         stat.Count,
			TotalViews:    stat.TotalViews,
			Platforms:     platformNames(stat.Platforms),
			PlatformCount: len(stat.Platforms),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TrendingScore > ranked[j].TrendingScore
	})
	return ranked
}

// TrendingKeywords collects fresh trending batches from every registered
// platform, ranks them and publishes a snapshot event.
func (s *Service) TrendingKeywords(ctx context.Context, maxPerPlatform int) (*trend.KeywordSnapshot, error) {
	batches := s.CollectTrending(ctx, nil, maxPerPlatform)
	ranked := s.RankKeywords(batches)

	snapshot := &trend.KeywordSnapshot{
		ID:        uuid.New().String(),
		Keywords:  ranked,
		Total:     len(ranked),
		Timestamp: time.Now(),
	}
	s.publishSnapshot(snapshot)

	return snapshot, nil
}

func (s *Service) publishSnapshot(snapshot *trend.KeywordSnapshot) {
	if s.eventBus == nil {
		return
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		s.log.WithError(err).Warn("failed to marshal keyword snapshot")
		return
	}
	if err := s.eventBus.Publish(s.config.EventsTopic, data); err != nil {
		s.log.WithError(err).Warn("failed to publish keyword snapshot")
	}
}

// batchOrder walks batches in the canonical platform order so ranking is
// independent of map iteration order. Platforms outside the canonical
// list come last, sorted by name.
func (s *Service) batchOrder(batches trend.Batches) []content.Platform {
	ordered := make([]content.Platform, 0, len(batches))
	seen := make(map[content.Platform]struct{}, len(batches))

	for _, p := range content.PlatformOrder {
		if _, ok := batches[p]; ok {
			ordered = append(ordered, p)
			seen[p] = struct{}{}
		}
	}

	var extra []content.Platform
	for p := range batches {
		if _, ok := seen[p]; !ok {
			extra = append(extra, p)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })

	return append(ordered, extra...)
}

func platformNames(set map[content.Platform]struct{}) []string {
	names := make([]string, 0, len(set))
	for _, p := range content.PlatformOrder {
		if _, ok := set[p]; ok {
			names = append(names, string(p))
		}
	}
	if len(names) < len(set) {
		var extra []string
		for p := range set {
			if !containsName(names, string(p)) {
				extra = append(extra, string(p))
			}
		}
		sort.Strings(extra)
		names = append(names, extra...)
	}
	return names
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
