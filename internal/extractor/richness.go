package extractor

import (
	"github.com/vmihiranga/digizigtool/pkg/types"
)

// Richness ranks partial results by how many optional fields a source
// populated. It is a proxy for information content, not correctness: the
// fallback loop keeps the richest partial answer when no candidate clears
// the early-exit bar.

// PostDetailsCompleteness counts the populated optional fields of a post's
// engagement details.
func PostDetailsCompleteness(d types.PostDetails) int {
	score := 0
	if d.Caption != "" {
		score++
	}
	if d.Likes > 0 {
		score++
	}
	if d.Comments > 0 {
		score++
	}
	if d.Shares > 0 {
		score++
	}
	if d.Views > 0 {
		score++
	}
	if d.CreatedAt != 0 {
		score++
	}
	if len(d.Hashtags) > 0 {
		score++
	}
	if len(d.Mentions) > 0 {
		score++
	}
	return score
}

// ProfileCompleteness counts the populated optional fields of a normalized
// profile.
func ProfileCompleteness(p types.Profile) int {
	score := 0
	for _, s := range []string{
		p.Username, p.FullName, p.Biography,
		p.ProfilePic, p.ProfilePicHD,
		p.Category, p.ExternalURL, p.BusinessCategory,
		p.ContactInfo.Email, p.ContactInfo.Phone, p.ContactInfo.Address,
		p.Metadata.FBID, p.Metadata.AccountCreated,
	} {
		if s != "" {
			score++
		}
	}
	for _, n := range []*int64{p.FollowerCount, p.FollowingCount, p.MediaCount} {
		if n != nil {
			score++
		}
	}
	for _, b := range []bool{
		p.IsPrivate, p.IsVerified,
		p.Engagement.HasStories, p.Engagement.IsActiveOnThreads, p.Engagement.HasHighlights,
	} {
		if b {
			score++
		}
	}
	if p.Metadata.LastActive > 0 {
		score++
	}
	if len(p.Posts) > 0 {
		score++
	}
	return score
}
