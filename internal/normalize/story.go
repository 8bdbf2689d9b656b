package normalize

import (
	"time"

	"github.com/vmihiranga/digizigtool/pkg/types"
)

type sparkyStory struct {
	VideoURL string `json:"video_url"`
	Image    string `json:"image"`
}

// Story maps a raw story payload to the common story schema. Only the
// sparky dialect is known for stories; anything else yields no frames.
// The caller supplies the extraction time so the function stays pure.
func Story(body []byte, now time.Time) []types.StoryItem {
	env, ok := parseEnvelope(body)
	if !ok {
		return []types.StoryItem{}
	}
	flag, valid := env.statusBool()
	if !valid || !flag || env.Creator != sparkyCreator || !present(env.Data) {
		return []types.StoryItem{}
	}

	var frames []sparkyStory
	if !decode(env.Data, &frames) {
		return []types.StoryItem{}
	}

	stories := make([]types.StoryItem, 0, len(frames))
	for _, frame := range frames {
		mediaType := types.MediaImage
		link := frame.Image
		if frame.VideoURL != "" {
			mediaType = types.MediaVideo
			link = frame.VideoURL
		}
		stories = append(stories, types.StoryItem{
			Type:        mediaType,
			URL:         link,
			Thumbnail:   frame.Image,
			DownloadURL: link,
			Quality:     types.QualityHD,
			Timestamp:   now.UnixMilli(),
		})
	}
	return stories
}
