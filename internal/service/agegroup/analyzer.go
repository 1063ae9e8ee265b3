package agegroup

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"trendlens/internal/domain/content"
	"trendlens/internal/domain/trend"
	"trendlens/internal/service/normalize"
)

// recentWindow is the publish-age window used to call a keyword rising.
const recentWindow = 7 * 24 * time.Hour

// Service estimates which age cohort each trending keyword resonates
// with, by applying per-cohort keyword dictionaries and weights to the
// collected batches. It implements trend.AgeAnalyzer.
type Service struct {
	collector       trend.Collector
	profiles        []trend.AgeGroupProfile
	platformWeights map[content.Platform]float64
	log             *logrus.Logger
	now             func() time.Time
}

// NewService creates the analyzer. Passing nil profiles selects the
// built-in tables.
func NewService(collector trend.Collector, profiles []trend.AgeGroupProfile, log *logrus.Logger) *Service {
	if profiles == nil {
		profiles = DefaultProfiles()
	}
	return &Service{
		collector:       collector,
		profiles:        profiles,
		platformWeights: DefaultPlatformWeights(),
		log:             log,
		now:             time.Now,
	}
}

// KeywordsByAgeGroup scans freshly collected trending batches against
// every configured age-group dictionary.
func (s *Service) KeywordsByAgeGroup(ctx context.Context, limit int) ([]trend.AgeGroupKeywordResult, error) {
	if limit <= 0 {
		limit = 20
	}

	batches := s.collector.CollectTrending(ctx, nil, limit)
	return s.AffinitiesForAllGroups(batches, limit), nil
}

// AffinitiesForAllGroups computes the affinity estimate per profile from
// already-collected batches.
func (s *Service) AffinitiesForAllGroups(batches trend.Batches, limit int) []trend.AgeGroupKeywordResult {
	records := flatten(batches)
	now := s.now()

	results := make([]trend.AgeGroupKeywordResult, 0, len(s.profiles))
	for _, profile := range s.profiles {
		keywords := s.groupKeywords(records, profile, limit)

		totalSearches := 0
		for _, kw := range keywords {
			totalSearches += kw.SearchCount
		}

		results = append(results, trend.AgeGroupKeywordResult{
			AgeGroup:             profile.AgeGroup,
			Keywords:             keywords,
			TotalSearches:        totalSearches,
			PlatformDistribution: s.platformDistribution(keywords, profile),
			TrendingScore:        groupTrendingScore(keywords),
			Timestamp:            now,
		})
	}
	return results
}

// groupKeywords scores a profile's dictionary against the records. A
// dictionary keyword scores once per record it appears in (substring,
// case-insensitive), weighted by engagement, platform and cohort weight.
func (s *Service) groupKeywords(records []content.ContentRecord, profile trend.AgeGroupProfile, limit int) []trend.AgeKeyword {
	scores := make(map[string]float64)
	var firstSeen []string

	for _, rec := range records {
		text := matchText(rec)
		engagement := normalize.EngagementScore(rec)
		platformWeight := s.platformWeight(rec.Platform)

		for _, keyword := range profile.Keywords {
			if !strings.Contains(text, strings.ToLower(keyword)) {
				continue
			}
			if _, ok := scores[keyword]; !ok {
				firstSeen = append(firstSeen, keyword)
			}
			scores[keyword] += engagement * platformWeight * profile.Weight
		}
	}

	sort.SliceStable(firstSeen, func(i, j int) bool {
		return scores[firstSeen[i]] > scores[firstSeen[j]]
	})
	if len(firstSeen) > limit {
		firstSeen = firstSeen[:limit]
	}

	keywords := make([]trend.AgeKeyword, 0, len(firstSeen))
	for _, kw := range firstSeen {
		score := normalize.Round2(scores[kw])
		keywords = append(keywords, trend.AgeKeyword{
			Keyword:       kw,
			Score:         score,
			SearchCount:   int(score * 100),
			TrendingLevel: trendingLevel(score),
		})
	}
	return keywords
}

// platformDistribution splits the summed keyword scores proportionally to
// each configured platform's weight, divided evenly across the profile's
// platform count. An estimate for presentation, not a measurement.
func (s *Service) platformDistribution(keywords []trend.AgeKeyword, profile trend.AgeGroupProfile) map[string]int {
	distribution := make(map[string]int, len(profile.Platforms))
	for _, p := range profile.Platforms {
		distribution[string(p)] = 0
	}

	total := 0.0
	for _, kw := range keywords {
		total += kw.Score
	}
	if total <= 0 || len(profile.Platforms) == 0 {
		return distribution
	}

	for _, p := range profile.Platforms {
		distribution[string(p)] = int(total * s.platformWeight(p) / float64(len(profile.Platforms)))
	}
	return distribution
}

func groupTrendingScore(keywords []trend.AgeKeyword) float64 {
	if len(keywords) == 0 {
		return 0
	}

	total := 0.0
	for _, kw := range keywords {
		total += kw.Score
	}
	score := normalize.Round2(total / float64(len(keywords)) / 10)
	if score > 100 {
		return 100
	}
	return score
}

// AnalyzeKeyword reports the given keyword's cross-platform,
// cross-age-group footprint based on search results.
func (s *Service) AnalyzeKeyword(ctx context.Context, keyword string) (*trend.KeywordAnalysis, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, fmt.Errorf("%w: keyword must not be empty", content.ErrInvalidArgument)
	}

	batches := s.collector.CollectSearch(ctx, keyword, nil, 20)
	return s.AnalyzeKeywordBatches(keyword, batches), nil
}

// AnalyzeKeywordBatches is the pure analysis over already-collected
// search batches.
func (s *Service) AnalyzeKeywordBatches(keyword string, batches trend.Batches) *trend.KeywordAnalysis {
	records := flatten(batches)
	needle := strings.ToLower(keyword)

	var matched []content.ContentRecord
	for _, rec := range records {
		if recordMentions(rec, needle) {
			matched = append(matched, rec)
		}
	}

	ageGroups := make(map[string]trend.AgeGroupAnalysis, len(s.profiles))
	totalMentions := 0
	platformBreakdown := make(map[string]int)

	for _, profile := range s.profiles {
		analysis := s.analyzeForGroup(needle, matched, profile)
		ageGroups[profile.AgeGroup] = analysis
		totalMentions += analysis.Mentions
		for platform, count := range analysis.PlatformMentions {
			platformBreakdown[platform] += count
		}
	}

	return &trend.KeywordAnalysis{
		Keyword:           keyword,
		AgeGroups:         ageGroups,
		TotalMentions:     totalMentions,
		PlatformBreakdown: platformBreakdown,
		TrendingTrend:     s.trendingDirection(matched),
		RelatedKeywords:   relatedKeywords(matched),
		SentimentScore:    sentimentScore(matched),
		Timestamp:         s.now(),
	}
}

func (s *Service) analyzeForGroup(loweredKeyword string, matched []content.ContentRecord, profile trend.AgeGroupProfile) trend.AgeGroupAnalysis {
	mentions := 0
	platformMentions := make(map[string]int)
	engagement := 0.0

	for _, rec := range matched {
		mentions++
		platformMentions[string(rec.Platform)]++
		engagement += normalize.EngagementScore(rec)
	}

	return trend.AgeGroupAnalysis{
		Mentions:         mentions,
		PlatformMentions: platformMentions,
		EngagementScore:  normalize.Round2(engagement),
		RelevanceScore:   normalize.Round2(ageRelevance(loweredKeyword, profile)),
		TrendingLevel:    trendingLevel(engagement),
	}
}

// ageRelevance scores how strongly the analyzed keyword belongs to a
// cohort's dictionary: full weight for an exact entry, half for a
// substring overlap in either direction, a flat baseline otherwise.
// Substring containment over-matches short entries; kept deliberately
// for compatibility with existing consumers.
func ageRelevance(loweredKeyword string, profile trend.AgeGroupProfile) float64 {
	for _, entry := range profile.Keywords {
		if strings.ToLower(entry) == loweredKeyword {
			return profile.Weight * 100
		}
	}
	for _, entry := range profile.Keywords {
		lowered := strings.ToLower(entry)
		if strings.Contains(lowered, loweredKeyword) || strings.Contains(loweredKeyword, lowered) {
			return profile.Weight * 50
		}
	}
	return 10.0
}

func (s *Service) trendingDirection(matched []content.ContentRecord) string {
	now := s.now()
	recent, dated := 0, 0

	for _, rec := range matched {
		if rec.PublishedAt == nil {
			continue
		}
		dated++
		if now.Sub(*rec.PublishedAt) < recentWindow {
			recent++
		}
	}
	if dated == 0 {
		return trendFlat
	}

	ratio := float64(recent) / float64(dated)
	switch {
	case ratio > 0.6:
		return trendRising
	case ratio > 0.3:
		return trendFlat
	default:
		return trendFalling
	}
}

// relatedKeywords returns the ten most frequent Hangul tokens across the
// matched records' combined text. Ties keep first-seen order.
func relatedKeywords(matched []content.ContentRecord) []string {
	counts := make(map[string]int)
	var firstSeen []string

	for _, rec := range matched {
		text := rec.Title + " " + rec.DescriptionText() + " " +
			strings.Join(rec.Tags, " ") + " " + strings.Join(rec.Hashtags, " ")
		for _, word := range normalize.ExtractHangul(text) {
			if _, ok := counts[word]; !ok {
				firstSeen = append(firstSeen, word)
			}
			counts[word]++
		}
	}

	sort.SliceStable(firstSeen, func(i, j int) bool {
		return counts[firstSeen[i]] > counts[firstSeen[j]]
	})
	if len(firstSeen) > 10 {
		firstSeen = firstSeen[:10]
	}
	if firstSeen == nil {
		return []string{}
	}
	return firstSeen
}

// sentimentScore counts fixed positive and negative word occurrences in
// the matched titles and descriptions, normalized to [-1, 1]. Exactly 0
// when no sentiment words are found.
func sentimentScore(matched []content.ContentRecord) float64 {
	var sb strings.Builder
	for _, rec := range matched {
		sb.WriteString(rec.Title)
		sb.WriteString(" ")
		sb.WriteString(rec.DescriptionText())
		sb.WriteString(" ")
	}
	text := sb.String()

	positive, negative := 0, 0
	for _, word := range positiveWords {
		if strings.Contains(text, word) {
			positive++
		}
	}
	for _, word := range negativeWords {
		if strings.Contains(text, word) {
			negative++
		}
	}

	total := positive + negative
	if total == 0 {
		return 0
	}
	return normalize.Round2(float64(positive-negative) / float64(total))
}

// AgeGroupTrends builds the trend deep-dive for one configured cohort.
func (s *Service) AgeGroupTrends(ctx context.Context, ageGroup string, limit int) (*trend.AgeGroupTrendReport, error) {
	if limit <= 0 {
		limit = 15
	}

	profile, ok := s.profile(ageGroup)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported age group %q", content.ErrInvalidArgument, ageGroup)
	}

	batches := s.collector.CollectTrending(ctx, profile.Platforms, limit*2)
	records := filterByDictionary(flatten(batches), profile, limit)

	return &trend.AgeGroupTrendReport{
		AgeGroup:            profile.AgeGroup,
		TopKeywords:         topHangulKeywords(records, limit),
		TrendingTopics:      trendingTopics(records),
		PlatformPreferences: platformPreferences(records, profile.Platforms),
		ContentCategories:   contentCategories(records),
		Timestamp:           s.now(),
	}, nil
}

func (s *Service) profile(ageGroup string) (trend.AgeGroupProfile, bool) {
	for _, p := range s.profiles {
		if p.AgeGroup == ageGroup {
			return p, true
		}
	}
	return trend.AgeGroupProfile{}, false
}

func (s *Service) platformWeight(p content.Platform) float64 {
	if w, ok := s.platformWeights[p]; ok {
		return w
	}
	return 1.0
}

// filterByDictionary keeps records whose title or description mentions
// any dictionary keyword, up to limit.
func filterByDictionary(records []content.ContentRecord, profile trend.AgeGroupProfile, limit int) []content.ContentRecord {
	var filtered []content.ContentRecord
	for _, rec := range records {
		text := strings.ToLower(rec.Title + " " + rec.DescriptionText())
		for _, keyword := range profile.Keywords {
			if strings.Contains(text, strings.ToLower(keyword)) {
				filtered = append(filtered, rec)
				break
			}
		}
		if len(filtered) >= limit {
			break
		}
	}
	return filtered
}

func topHangulKeywords(records []content.ContentRecord, limit int) []trend.TopKeyword {
	scores := make(map[string]float64)
	var firstSeen []string

	for _, rec := range records {
		text := rec.Title + " " + rec.DescriptionText() + " " +
			strings.Join(rec.Tags, " ") + " " + strings.Join(rec.Hashtags, " ")
		engagement := normalize.EngagementScore(rec)

		for _, word := range normalize.ExtractHangul(text) {
			if _, ok := scores[word]; !ok {
				firstSeen = append(firstSeen, word)
			}
			scores[word] += engagement
		}
	}

	sort.SliceStable(firstSeen, func(i, j int) bool {
		return scores[firstSeen[i]] > scores[firstSeen[j]]
	})
	if len(firstSeen) > limit {
		firstSeen = firstSeen[:limit]
	}

	top := make([]trend.TopKeyword, 0, len(firstSeen))
	for _, word := range firstSeen {
		score := normalize.Round2(scores[word])
		top = append(top, trend.TopKeyword{
			Keyword:       word,
			Score:         score,
			TrendingLevel: trendingLevel(score),
		})
	}
	return top
}

func trendingTopics(records []content.ContentRecord) []trend.TopicStat {
	type bucket struct {
		count      int
		engagement float64
	}
	buckets := make(map[string]*bucket)
	var order []string

	for _, rec := range records {
		topic := recordCategory(rec)
		b, ok := buckets[topic]
		if !ok {
			b = &bucket{}
			buckets[topic] = b
			order = append(order, topic)
		}
		b.count++
		b.engagement += normalize.EngagementScore(rec)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return buckets[order[i]].engagement > buckets[order[j]].engagement
	})

	topics := make([]trend.TopicStat, 0, len(order))
	for _, topic := range order {
		b := buckets[topic]
		avg := 0.0
		if b.count > 0 {
			avg = normalize.Round2(b.engagement / float64(b.count))
		}
		topics = append(topics, trend.TopicStat{
			Topic:         topic,
			Count:         b.count,
			Engagement:    normalize.Round2(b.engagement),
			AvgEngagement: avg,
		})
	}
	return topics
}

func platformPreferences(records []content.ContentRecord, platforms []content.Platform) map[string]float64 {
	counts := make(map[content.Platform]int)
	for _, rec := range records {
		counts[rec.Platform]++
	}

	preferences := make(map[string]float64, len(platforms))
	for _, p := range platforms {
		if len(records) == 0 {
			preferences[string(p)] = 0
			continue
		}
		preferences[string(p)] = normalize.Round2(float64(counts[p]) / float64(len(records)) * 100)
	}
	return preferences
}

func contentCategories(records []content.ContentRecord) map[string]int {
	categories := make(map[string]int)
	for _, rec := range records {
		categories[recordCategory(rec)]++
	}
	return categories
}

func recordCategory(rec content.ContentRecord) string {
	if rec.Category != nil && *rec.Category != "" {
		return *rec.Category
	}
	return "기타"
}

func recordMentions(rec content.ContentRecord, loweredKeyword string) bool {
	return strings.Contains(strings.ToLower(rec.Title), loweredKeyword) ||
		strings.Contains(strings.ToLower(rec.DescriptionText()), loweredKeyword)
}

func matchText(rec content.ContentRecord) string {
	return strings.ToLower(rec.Title + " " + rec.DescriptionText() + " " +
		strings.Join(rec.Tags, " ") + " " + strings.Join(rec.Hashtags, " "))
}

// flatten walks batches in canonical platform order so scoring and
// first-seen tie-breaks never depend on map iteration order.
func flatten(batches trend.Batches) []content.ContentRecord {
	var ordered []content.Platform
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
	ordered = append(ordered, extra...)

	var records []content.ContentRecord
	for _, p := range ordered {
		records = append(records, batches[p]...)
	}
	return records
}
