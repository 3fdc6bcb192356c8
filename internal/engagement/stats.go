package engagement

import "context"

// Reaction values reported back for the viewer's own like record.
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// Counts holds the raw per-target tallies an Attributes row is derived from.
type Counts struct {
	Likes     int64
	Dislikes  int64
	Comments  int64
	Bookmarks int64
}

// Attributes is the decoration merged onto a target's serialized form.
// Reaction is nil for anonymous viewers and for viewers with no like
// record, and is omitted from JSON in both cases.
type Attributes struct {
	LikeCount     int64   `json:"likeCount"`
	DislikeCount  int64   `json:"dislikeCount"`
	CommentCount  int64   `json:"commentCount"`
	BookmarkCount int64   `json:"bookmarkCount"`
	Reaction      *string `json:"reaction,omitempty"`
}

// CountsProvider supplies tallies for a batch of targets of one kind.
// Counts are always computed from the engagement rows at read time; there
// are no denormalized counter columns to drift out of sync.
type CountsProvider interface {
	CountsFor(ctx context.Context, targetType TargetType, targetIDs []string) (map[string]Counts, error)
	// ViewerReactions returns ReactionLike or ReactionDislike per target the
	// viewer has a like record for; targets without one are absent from the map.
	ViewerReactions(ctx context.Context, targetType TargetType, targetIDs []string, viewerID string) (map[string]string, error)
}

// Decorate computes the engagement attributes for every id in targetIDs.
// Every requested id is present in the result, zero-valued when the target
// has no engagements. viewer may be nil; personalized fields are then left unset.
func Decorate(ctx context.Context, provider CountsProvider, targetType TargetType, targetIDs []string, viewer *Viewer) (map[string]Attributes, error) {
	attrs := make(map[string]Attributes, len(targetIDs))
	if len(targetIDs) == 0 {
		return attrs, nil
	}

	counts, err := provider.CountsFor(ctx, targetType, targetIDs)
	if err != nil {
		return nil, err
	}

	var reactions map[string]string
	if viewer != nil {
		reactions, err = provider.ViewerReactions(ctx, targetType, targetIDs, viewer.ID)
		if err != nil {
			return nil, err
		}
	}

	for _, id := range targetIDs {
		c := counts[id]
		a := Attributes{
			LikeCount:     c.Likes,
			DislikeCount:  c.Dislikes,
			CommentCount:  c.Comments,
			BookmarkCount: c.Bookmarks,
		}
		if r, ok := reactions[id]; ok {
			reaction := r
			a.Reaction = &reaction
		}
		attrs[id] = a
	}
	return attrs, nil
}
