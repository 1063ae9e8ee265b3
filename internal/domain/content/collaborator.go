package content

import (
	"context"
)

// PlatformCollaborator is the narrow contract the core needs from each
// platform data source. Implementations perform the actual network I/O
// (or return fixture data where no usable public API exists).
type PlatformCollaborator interface {
	// Name returns the platform this collaborator serves.
	Name() Platform

	// GetTrending returns the platform's current trending content.
	GetTrending(ctx context.Context, maxResults int) ([]ContentRecord, error)

	// Search returns content matching the query.
	Search(ctx context.Context, query string, maxResults int) ([]ContentRecord, error)
}

// HashtagSource is implemented by collaborators that can report trending
// hashtags directly.
type HashtagSource interface {
	TrendingHashtags(ctx context.Context, maxResults int) ([]HashtagStat, error)
}

// VideoCollaborator extends the base contract with the channel-level
// operations the timeframe analyzer needs.
type VideoCollaborator interface {
	PlatformCollaborator

	// ResolveChannelID resolves a channel handle to a stable channel ID.
	// Returns ErrNotFound when no channel matches.
	ResolveChannelID(ctx context.Context, handle string) (string, error)

	// RecentItemsByChannel returns the channel's most recent items,
	// newest first.
	RecentItemsByChannel(ctx context.Context, channelID string, maxResults int, region string) ([]VideoItem, error)

	// SearchRecent returns date-ordered search results for the query.
	SearchRecent(ctx context.Context, query string, maxResults int) ([]VideoItem, error)

	// ChannelSubscriberCounts batch-fetches subscriber counts. A channel
	// missing from the result simply has no published count.
	ChannelSubscriberCounts(ctx context.Context, ids []string) (map[string]*int64, error)

	// ChannelInfo returns profile details for one channel.
	ChannelInfo(ctx context.Context, channelID string) (*ChannelInfo, error)
}
