package normalize

import (
	"testing"

	"trendlens/internal/domain/content"
)

func ptr(n int64) *int64 { return &n }

func TestEngagementScore_Weights(t *testing.T) {
	rec := content.ContentRecord{
		ViewCount:    ptr(1000),
		LikeCount:    ptr(100),
		CommentCount: ptr(50),
		ShareCount:   ptr(10),
	}
	// 1000*0.1 + 100*0.3 + 50*0.4 + 10*0.2 = 152
	if got := EngagementScore(rec); got != 152 {
		t.Errorf("EngagementScore = %v, want 152", got)
	}
}

func TestEngagementScore_NilCountersAreZero(t *testing.T) {
	if got := EngagementScore(content.ContentRecord{LikeCount: ptr(10)}); got != 3 {
		t.Errorf("EngagementScore = %v, want 3", got)
	}
	if got := EngagementScore(content.ContentRecord{}); got != 0 {
		t.Errorf("EngagementScore of empty record = %v, want 0", got)
	}
}

func TestEngagementScore_Clamped(t *testing.T) {
	rec := content.ContentRecord{ViewCount: ptr(50_000_000)}
	if got := EngagementScore(rec); got != 1000 {
		t.Errorf("EngagementScore = %v, want cap 1000", got)
	}
}

func TestRecord_Normalization(t *testing.T) {
	fields := map[string]interface{}{
		"id":          "vid1",
		"title":       "게임 공략 #Gaming",
		"description": "최신 게임 소식",
		"url":         "https://example.com/vid1",
		"view_count":  "12345",
		"like_count":  678,
		"duration":    "PT3M20S",
	}

	rec := Record(fields, content.PlatformYouTube)
	if rec.ID != "vid1" || rec.Platform != content.PlatformYouTube {
		t.Fatalf("identity wrong: %+v", rec)
	}
	if rec.ViewCount == nil || *rec.ViewCount != 12345 {
		t.Errorf("string view_count not converted: %v", rec.ViewCount)
	}
	if rec.LikeCount == nil || *rec.LikeCount != 678 {
		t.Errorf("like_count = %v", rec.LikeCount)
	}
	if rec.ShareCount != nil {
		t.Errorf("absent share_count should be nil")
	}
	if rec.Duration != "3:20" {
		t.Errorf("duration = %q, want 3:20", rec.Duration)
	}
	if len(rec.Hashtags) != 1 || rec.Hashtags[0] != "#gaming" {
		t.Errorf("hashtags = %v", rec.Hashtags)
	}
}

func TestRecord_LongDescriptionTruncated(t *testing.T) {
	long := make([]rune, 300)
	for i := range long {
		long[i] = '가'
	}

	rec := Record(map[string]interface{}{
		"id":          "vid2",
		"title":       "t",
		"description": string(long),
	}, content.PlatformTikTok)

	if rec.Description == nil {
		t.Fatal("description dropped")
	}
	if n := len([]rune(*rec.Description)); n != MaxDescriptionLength {
		t.Errorf("description length = %d, want %d", n, MaxDescriptionLength)
	}
}

func TestNormalizeHashtags(t *testing.T) {
	got := NormalizeHashtags([]string{"Fun", "#Viral", "", "#"})
	if len(got) != 2 || got[0] != "#fun" || got[1] != "#viral" {
		t.Errorf("NormalizeHashtags = %v", got)
	}
}
