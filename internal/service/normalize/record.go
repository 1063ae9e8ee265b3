package normalize

import (
	"strings"
	"time"

	"trendlens/internal/domain/content"
)

// MaxDescriptionLength is the default truncation limit for normalized
// descriptions, ellipsis included.
const MaxDescriptionLength = 200

// Record converts one platform-specific raw item into a canonical
// ContentRecord. Missing optional fields map to nil; malformed numeric
// fields convert to nil rather than failing. Hashtags are extracted from
// the concatenation of title and description.
func Record(fields map[string]interface{}, platform content.Platform) content.ContentRecord {
	title := stringField(fields, "title")
	description := stringField(fields, "description")

	rec := content.ContentRecord{
		ID:           stringField(fields, "id"),
		Title:        title,
		URL:          stringField(fields, "url"),
		Platform:     platform,
		ViewCount:    SafeInt64(fields["view_count"]),
		LikeCount:    SafeInt64(fields["like_count"]),
		CommentCount: SafeInt64(fields["comment_count"]),
		ShareCount:   SafeInt64(fields["share_count"]),
		Duration:     ParseISODuration(stringField(fields, "duration")),
		Tags:         stringSliceField(fields, "tags"),
	}

	if description != "" {
		d := TruncateText(description, MaxDescriptionLength)
		rec.Description = &d
	}
	rec.ThumbnailURL = optionalString(fields, "thumbnail_url")
	rec.Author = optionalString(fields, "author")
	rec.AuthorURL = optionalString(fields, "author_url")
	rec.Category = optionalString(fields, "category")
	rec.Language = optionalString(fields, "language")
	rec.Region = optionalString(fields, "region")
	rec.PublishedAt = timeField(fields, "published_at")

	if tags := stringSliceField(fields, "hashtags"); len(tags) > 0 {
		rec.Hashtags = NormalizeHashtags(tags)
	} else {
		rec.Hashtags = ExtractHashtags(title + " " + description)
	}

	return rec
}

// NormalizeHashtags lowercases tags and guarantees the leading '#'.
func NormalizeHashtags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" || t == "#" {
			continue
		}
		if t[0] != '#' {
			t = "#" + t
		}
		out = append(out, strings.ToLower(t))
	}
	return out
}

func stringField(fields map[string]interface{}, key string) string {
	if s, ok := fields[key].(string); ok {
		return s
	}
	return ""
}

func optionalString(fields map[string]interface{}, key string) *string {
	if s, ok := fields[key].(string); ok && s != "" {
		return &s
	}
	return nil
}

func stringSliceField(fields map[string]interface{}, key string) []string {
	switch v := fields[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func timeField(fields map[string]interface{}, key string) *time.Time {
	switch v := fields[key].(type) {
	case time.Time:
		return &v
	case *time.Time:
		return v
	case string:
		if v == "" {
			return nil
		}
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			return &ts
		}
		return nil
	default:
		return nil
	}
}
