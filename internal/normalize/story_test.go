package normalize

import (
	"testing"
	"time"

	"github.com/vmihiranga/digizigtool/pkg/types"
)

func TestStory(t *testing.T) {
	body := `{
		"status": true,
		"creator": "ASWIN SPARKY",
		"data": [
			{"video_url": "https://cdn.example/s1.mp4", "image": "https://cdn.example/s1.jpg"},
			{"image": "https://cdn.example/s2.jpg"}
		]
	}`
	now := time.Unix(1700000000, 0)

	stories := Story([]byte(body), now)
	if len(stories) != 2 {
		t.Fatalf("story count = %d, want 2", len(stories))
	}

	first := stories[0]
	if first.Type != types.MediaVideo || first.URL != "https://cdn.example/s1.mp4" {
		t.Fatalf("first frame = %+v", first)
	}
	if first.Thumbnail != "https://cdn.example/s1.jpg" || first.DownloadURL != first.URL {
		t.Fatalf("first frame = %+v", first)
	}
	if first.Timestamp != now.UnixMilli() {
		t.Fatalf("timestamp = %d, want %d", first.Timestamp, now.UnixMilli())
	}

	second := stories[1]
	if second.Type != types.MediaImage || second.URL != "https://cdn.example/s2.jpg" {
		t.Fatalf("second frame = %+v", second)
	}
}

func TestStoryUnknownShape(t *testing.T) {
	for _, body := range []string{
		`{"status": true, "creator": "someone else", "data": [{"image": "x"}]}`,
		`{"status": false, "creator": "ASWIN SPARKY", "data": [{"image": "x"}]}`,
		`{"status": 200, "result": {}}`,
		`broken`,
	} {
		stories := Story([]byte(body), time.Now())
		if stories == nil || len(stories) != 0 {
			t.Fatalf("body %q should yield an empty slice, got %v", body, stories)
		}
	}
}
