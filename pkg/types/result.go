package types

import (
	"encoding/json"
	"time"
)

// MediaType identifies the kind of media a post contains.
type MediaType string

const (
	MediaVideo MediaType = "video"
	MediaImage MediaType = "image"
)

// Quality is a coarse resolution label derived from pixel width.
type Quality string

const (
	QualityHD Quality = "HD"
	QualitySD Quality = "SD"
)

// MediaItem is one downloadable asset extracted from a post or reel.
type MediaItem struct {
	Type      MediaType `json:"type"`
	URL       string    `json:"url"`
	Thumbnail string    `json:"thumbnail"`
	Quality   Quality   `json:"quality"`
	Width     int       `json:"width,omitempty"`
	Height    int       `json:"height,omitempty"`
}

// PostDetails carries the engagement metrics a source exposed for a post.
// Every field is always present in the JSON output; absent upstream values
// stay at their zero value.
type PostDetails struct {
	Caption   string   `json:"caption"`
	Likes     int64    `json:"likes"`
	Comments  int64    `json:"comments"`
	Shares    int64    `json:"shares"`
	Views     int64    `json:"views"`
	CreatedAt int64    `json:"createdAt,omitempty"`
	Hashtags  []string `json:"hashtags"`
	Mentions  []string `json:"mentions"`
}

// DownloadResult is the normalized outcome of a post/reel download request.
type DownloadResult struct {
	Author      string      `json:"author"`
	Media       []MediaItem `json:"media"`
	PostDetails PostDetails `json:"postDetails"`
	OriginalURL string      `json:"originalUrl"`
	ExtractedAt time.Time   `json:"extractedAt"`
}

// StoryItem is one story frame.
type StoryItem struct {
	Type        MediaType `json:"type"`
	URL         string    `json:"url"`
	Thumbnail   string    `json:"thumbnail"`
	DownloadURL string    `json:"downloadUrl"`
	Quality     Quality   `json:"quality"`
	Timestamp   int64     `json:"timestamp"`
}

// StoryResult groups the stories found for a username.
type StoryResult struct {
	Username    string      `json:"username"`
	Stories     []StoryItem `json:"stories"`
	Count       int         `json:"count"`
	ExtractedAt time.Time   `json:"extractedAt"`
}

// UserMatch is one entry from a user search.
type UserMatch struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	FullName     string `json:"fullName"`
	ProfilePic   string `json:"profilePic"`
	IsPrivate    bool   `json:"isPrivate"`
	IsVerified   bool   `json:"isVerified"`
	HasStories   bool   `json:"hasStories"`
	ProfilePicID string `json:"profilePicId"`
}

// UserSearchResult is the normalized user search payload.
type UserSearchResult struct {
	Count      int64       `json:"count"`
	Users      []UserMatch `json:"users"`
	SearchedAt time.Time   `json:"searchedAt"`
}

// HashtagMatch is one entry from a hashtag search.
type HashtagMatch struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Usage int64  `json:"usage"`
}

// HashtagSearchResult is the normalized hashtag search payload.
type HashtagSearchResult struct {
	Count      int64          `json:"count"`
	Hashtags   []HashtagMatch `json:"hashtags"`
	SearchedAt time.Time      `json:"searchedAt"`
}

// ContactInfo holds whatever public contact details a profile exposes.
type ContactInfo struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Engagement holds derived activity flags for a profile.
type Engagement struct {
	HasStories        bool `json:"hasStories"`
	IsActiveOnThreads bool `json:"isActiveOnThreads"`
	HasHighlights     bool `json:"hasHighlights"`
}

// ProfileMetadata holds provider-internal identifiers for a profile.
type ProfileMetadata struct {
	FBID           string `json:"fbid"`
	AccountCreated string `json:"accountCreated"`
	LastActive     int64  `json:"lastActive"`
}

// Profile is the normalized profile lookup payload. The counts are pointers
// because "defined" and "zero" are different answers for the fallback loop:
// a source that returned a profile without statistics must not look like a
// profile with zero followers.
type Profile struct {
	Username         string            `json:"username"`
	FullName         string            `json:"fullName"`
	Biography        string            `json:"biography"`
	FollowerCount    *int64            `json:"followerCount"`
	FollowingCount   *int64            `json:"followingCount"`
	MediaCount       *int64            `json:"mediaCount"`
	ProfilePic       string            `json:"profilePic"`
	ProfilePicHD     string            `json:"profilePicHD"`
	IsPrivate        bool              `json:"isPrivate"`
	IsVerified       bool              `json:"isVerified"`
	Category         string            `json:"category"`
	ExternalURL      string            `json:"externalUrl"`
	BusinessCategory string            `json:"businessCategory"`
	ContactInfo      ContactInfo       `json:"contactInfo"`
	Engagement       Engagement        `json:"engagement"`
	Metadata         ProfileMetadata   `json:"metadata"`
	Posts            []json.RawMessage `json:"posts"`
	DataSource       string            `json:"dataSource"`
	ExtractedAt      time.Time         `json:"extractedAt"`
}
