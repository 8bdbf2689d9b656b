package normalize

import (
	"strings"

	"github.com/vmihiranga/digizigtool/pkg/types"
)

// DownloadExtract is the capability-level output of download normalization,
// before the orchestrator stamps the original URL and extraction time.
type DownloadExtract struct {
	Author  string
	Media   []types.MediaItem
	Details types.PostDetails
}

// downloadDialect is one recognized upstream response shape: a named, typed
// predicate plus extractor. Dialects are evaluated in fixed priority order
// and the first match wins.
type downloadDialect struct {
	name    string
	match   func(envelope) bool
	extract func(envelope) DownloadExtract
}

var downloadDialects = []downloadDialect{
	{name: "sparky", match: matchSparky, extract: extractSparky},
	{name: "vreden-response", match: matchVredenResponse, extract: extractVredenResponse},
	{name: "vreden-media", match: matchVredenMedia, extract: extractVredenMedia},
	{name: "single-dl", match: matchSingleDL, extract: extractSingleDL},
	{name: "url-metadata", match: matchURLMetadata, extract: extractURLMetadata},
	{name: "generic", match: matchGeneric, extract: extractGeneric},
}

// Download maps a raw upstream payload to the common download schema. An
// unrecognized or undecodable shape yields the empty-shaped extract, never
// an error; the fallback loop reads that as "this source contributed
// nothing".
func Download(body []byte) DownloadExtract {
	env, ok := parseEnvelope(body)
	if !ok {
		return emptyDownload()
	}
	for _, d := range downloadDialects {
		if d.match(env) {
			return sealDownload(d.extract(env))
		}
	}
	return emptyDownload()
}

func emptyDownload() DownloadExtract {
	return sealDownload(DownloadExtract{})
}

// sealDownload enforces the always-present-fields invariant: consumers get
// empty slices, never null.
func sealDownload(ex DownloadExtract) DownloadExtract {
	if ex.Media == nil {
		ex.Media = []types.MediaItem{}
	}
	if ex.Details.Hashtags == nil {
		ex.Details.Hashtags = []string{}
	}
	if ex.Details.Mentions == nil {
		ex.Details.Mentions = []string{}
	}
	return ex
}

func mediaQuality(width int) types.Quality {
	if width > 0 && width < 720 {
		return types.QualitySD
	}
	return types.QualityHD
}

// sparky: explicit creator tag plus a flat media array.

const sparkyCreator = "ASWIN SPARKY"

type sparkyMedia struct {
	Type      string `json:"type"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
}

func matchSparky(env envelope) bool {
	ok, valid := env.statusBool()
	return valid && ok && env.Creator == sparkyCreator && present(env.Data)
}

func extractSparky(env envelope) DownloadExtract {
	var items []sparkyMedia
	if !decode(env.Data, &items) {
		return DownloadExtract{}
	}
	media := make([]types.MediaItem, 0, len(items))
	for _, item := range items {
		thumb := item.Thumbnail
		if thumb == "" {
			thumb = item.URL
		}
		media = append(media, types.MediaItem{
			Type:      types.MediaType(item.Type),
			URL:       item.URL,
			Thumbnail: thumb,
			Quality:   types.QualityHD,
		})
	}
	return DownloadExtract{Author: env.Creator, Media: media}
}

// vreden-response: numeric status with a nested result.response object
// carrying profile, statistics and caption sub-objects.

type vredenResponseResult struct {
	Response *vredenResponse `json:"response"`
}

type vredenResponse struct {
	Profile *struct {
		Username string `json:"username"`
	} `json:"profile"`
	Caption *struct {
		Text      string   `json:"text"`
		CreatedAt int64    `json:"created_at"`
		Hashtags  []string `json:"hashtags"`
		Mentions  []string `json:"mentions"`
	} `json:"caption"`
	Statistics *struct {
		LikeCount    int64 `json:"like_count"`
		CommentCount int64 `json:"comment_count"`
		ShareCount   int64 `json:"share_count"`
		PlayCount    int64 `json:"play_count"`
		ViewCount    int64 `json:"view_count"`
	} `json:"statistics"`
	Data []struct {
		Type   string `json:"type"`
		URL    string `json:"url"`
		Thumb  string `json:"thumb"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
	} `json:"data"`
}

func matchVredenResponse(env envelope) bool {
	code, valid := env.statusCode()
	if !valid || code != 200 {
		return false
	}
	var result vredenResponseResult
	return decode(env.Result, &result) && result.Response != nil
}

func extractVredenResponse(env envelope) DownloadExtract {
	var result vredenResponseResult
	if !decode(env.Result, &result) || result.Response == nil {
		return DownloadExtract{}
	}
	response := result.Response

	author := "Unknown"
	if response.Profile != nil && response.Profile.Username != "" {
		author = response.Profile.Username
	}

	var details types.PostDetails
	if response.Caption != nil {
		details.Caption = response.Caption.Text
		details.CreatedAt = response.Caption.CreatedAt
		details.Hashtags = response.Caption.Hashtags
		details.Mentions = response.Caption.Mentions
	}
	if response.Statistics != nil {
		details.Likes = response.Statistics.LikeCount
		details.Comments = response.Statistics.CommentCount
		details.Shares = response.Statistics.ShareCount
		details.Views = response.Statistics.PlayCount
		if details.Views == 0 {
			details.Views = response.Statistics.ViewCount
		}
	}

	media := make([]types.MediaItem, 0, len(response.Data))
	for _, item := range response.Data {
		thumb := item.Thumb
		if thumb == "" {
			thumb = item.URL
		}
		media = append(media, types.MediaItem{
			Type:      types.MediaType(item.Type),
			URL:       item.URL,
			Thumbnail: thumb,
			Quality:   mediaQuality(item.Width),
			Width:     item.Width,
			Height:    item.Height,
		})
	}
	return DownloadExtract{Author: author, Media: media, Details: details}
}

// vreden-media: numeric status with a flat result.media array.

type vredenMediaResult struct {
	Username     string `json:"username"`
	Title        string `json:"title"`
	LikeCount    int64  `json:"like_count"`
	CommentCount int64  `json:"comment_count"`
	TakenAt      int64  `json:"taken_at"`
	Media        []struct {
		Type      string `json:"type"`
		URL       string `json:"url"`
		Thumbnail string `json:"thumbnail"`
	} `json:"media"`
}

func matchVredenMedia(env envelope) bool {
	code, valid := env.statusCode()
	if !valid || code != 200 {
		return false
	}
	var result struct {
		Media []struct{} `json:"media"`
	}
	return decode(env.Result, &result) && result.Media != nil
}

func extractVredenMedia(env envelope) DownloadExtract {
	var result vredenMediaResult
	if !decode(env.Result, &result) {
		return DownloadExtract{}
	}

	media := make([]types.MediaItem, 0, len(result.Media))
	for _, item := range result.Media {
		thumb := item.Thumbnail
		if thumb == "" {
			thumb = item.URL
		}
		media = append(media, types.MediaItem{
			Type:      types.MediaType(item.Type),
			URL:       item.URL,
			Thumbnail: thumb,
			Quality:   types.QualityHD,
		})
	}
	return DownloadExtract{
		Author: result.Username,
		Media:  media,
		Details: types.PostDetails{
			Caption:   result.Title,
			Likes:     result.LikeCount,
			Comments:  result.CommentCount,
			CreatedAt: result.TakenAt,
		},
	}
}

// single-dl: boolean status with one direct download link in result.dl.

type singleDLResult struct {
	Username string `json:"username"`
	Caption  string `json:"caption"`
	Like     int64  `json:"like"`
	Comment  int64  `json:"comment"`
	IsVideo  bool   `json:"isVideo"`
	DL       string `json:"dl"`
}

func matchSingleDL(env envelope) bool {
	ok, valid := env.statusBool()
	if !valid || !ok {
		return false
	}
	var result singleDLResult
	return decode(env.Result, &result) && result.DL != ""
}

func extractSingleDL(env envelope) DownloadExtract {
	var result singleDLResult
	if !decode(env.Result, &result) {
		return DownloadExtract{}
	}
	mediaType := types.MediaImage
	if result.IsVideo {
		mediaType = types.MediaVideo
	}
	return DownloadExtract{
		Author: result.Username,
		Media: []types.MediaItem{{
			Type:      mediaType,
			URL:       result.DL,
			Thumbnail: result.DL,
			Quality:   types.QualityHD,
		}},
		Details: types.PostDetails{
			Caption:  result.Caption,
			Likes:    result.Like,
			Comments: result.Comment,
		},
	}
}

// url-metadata: boolean success with result.url links plus result.metadata.

type urlMetadataResult struct {
	URL      []string `json:"url"`
	Metadata *struct {
		Username string `json:"username"`
		Caption  string `json:"caption"`
		Like     int64  `json:"like"`
		Comment  int64  `json:"comment"`
		IsVideo  bool   `json:"isVideo"`
	} `json:"metadata"`
}

func matchURLMetadata(env envelope) bool {
	if env.Success == nil || !*env.Success {
		return false
	}
	var result urlMetadataResult
	return decode(env.Result, &result) && len(result.URL) > 0
}

func extractURLMetadata(env envelope) DownloadExtract {
	var result urlMetadataResult
	if !decode(env.Result, &result) {
		return DownloadExtract{}
	}

	author := "Unknown"
	mediaType := types.MediaImage
	var details types.PostDetails
	if result.Metadata != nil {
		if result.Metadata.Username != "" {
			author = result.Metadata.Username
		}
		if result.Metadata.IsVideo {
			mediaType = types.MediaVideo
		}
		details.Caption = result.Metadata.Caption
		details.Likes = result.Metadata.Like
		details.Comments = result.Metadata.Comment
	}

	media := make([]types.MediaItem, 0, len(result.URL))
	for _, link := range result.URL {
		media = append(media, types.MediaItem{
			Type:      mediaType,
			URL:       link,
			Thumbnail: link,
			Quality:   types.QualityHD,
		})
	}
	return DownloadExtract{Author: author, Media: media, Details: details}
}

// generic: creator plus data array fallback; the media type is inferred
// from a file-extension substring check on the URL.

type genericMedia struct {
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
}

func matchGeneric(env envelope) bool {
	return env.Creator != "" && present(env.Data)
}

func extractGeneric(env envelope) DownloadExtract {
	var items []genericMedia
	if !decode(env.Data, &items) {
		return DownloadExtract{}
	}
	media := make([]types.MediaItem, 0, len(items))
	for _, item := range items {
		mediaType := types.MediaImage
		if strings.Contains(item.URL, ".mp4") {
			mediaType = types.MediaVideo
		}
		thumb := item.Thumbnail
		if thumb == "" {
			thumb = item.URL
		}
		media = append(media, types.MediaItem{
			Type:      mediaType,
			URL:       item.URL,
			Thumbnail: thumb,
			Quality:   types.QualityHD,
		})
	}
	return DownloadExtract{Author: env.Creator, Media: media}
}
