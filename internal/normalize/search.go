package normalize

import (
	"github.com/vmihiranga/digizigtool/pkg/types"
)

type userSearchResult struct {
	Count flexID `json:"count"`
	Users []struct {
		ID              flexID `json:"id"`
		Username        string `json:"username"`
		FullName        string `json:"full_name"`
		ProfilePicURL   string `json:"profile_pic_url"`
		IsPrivate       bool   `json:"is_private"`
		IsVerified      bool   `json:"is_verified"`
		LatestReelMedia int64  `json:"latest_reel_media"`
		ProfilePicID    flexID `json:"profile_pic_id"`
	} `json:"users"`
}

// Users maps a raw user-search payload to the common schema.
func Users(body []byte) (int64, []types.UserMatch) {
	env, ok := parseEnvelope(body)
	if !ok {
		return 0, []types.UserMatch{}
	}
	var result userSearchResult
	if !decode(env.Result, &result) || result.Users == nil {
		return 0, []types.UserMatch{}
	}

	users := make([]types.UserMatch, 0, len(result.Users))
	for _, u := range result.Users {
		users = append(users, types.UserMatch{
			ID:           u.ID.String(),
			Username:     u.Username,
			FullName:     u.FullName,
			ProfilePic:   u.ProfilePicURL,
			IsPrivate:    u.IsPrivate,
			IsVerified:   u.IsVerified,
			HasStories:   u.LatestReelMedia > 0,
			ProfilePicID: u.ProfilePicID.String(),
		})
	}
	return result.Count.Int64Or(int64(len(users))), users
}

type hashtagSearchResult struct {
	Count    flexID `json:"count"`
	Hashtags []struct {
		ID    flexID `json:"id"`
		Name  string `json:"name"`
		Usage flexID `json:"usage"`
	} `json:"hashtags"`
}

// Hashtags maps a raw hashtag-search payload to the common schema.
func Hashtags(body []byte) (int64, []types.HashtagMatch) {
	env, ok := parseEnvelope(body)
	if !ok {
		return 0, []types.HashtagMatch{}
	}
	var result hashtagSearchResult
	if !decode(env.Result, &result) || result.Hashtags == nil {
		return 0, []types.HashtagMatch{}
	}

	hashtags := make([]types.HashtagMatch, 0, len(result.Hashtags))
	for _, h := range result.Hashtags {
		hashtags = append(hashtags, types.HashtagMatch{
			ID:    h.ID.String(),
			Name:  h.Name,
			Usage: h.Usage.Int64Or(0),
		})
	}
	return result.Count.Int64Or(int64(len(hashtags))), hashtags
}
