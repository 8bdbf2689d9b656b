package extractor

import (
	"encoding/json"
	"testing"

	"github.com/vmihiranga/digizigtool/pkg/types"
)

func TestPostDetailsCompleteness(t *testing.T) {
	if got := PostDetailsCompleteness(types.PostDetails{}); got != 0 {
		t.Fatalf("empty details score = %d, want 0", got)
	}
	full := types.PostDetails{
		Caption:   "hello",
		Likes:     1,
		Comments:  2,
		Shares:    3,
		Views:     4,
		CreatedAt: 1700000000,
		Hashtags:  []string{"go"},
		Mentions:  []string{"friend"},
	}
	if got := PostDetailsCompleteness(full); got != 8 {
		t.Fatalf("full details score = %d, want 8", got)
	}
	partial := types.PostDetails{Comments: 2, CreatedAt: 1700000000}
	if got := PostDetailsCompleteness(partial); got != 2 {
		t.Fatalf("partial details score = %d, want 2", got)
	}
}

func TestProfileCompletenessOrdersByInformation(t *testing.T) {
	count := int64(10)
	sparse := types.Profile{Username: "a"}
	richer := types.Profile{
		Username:      "a",
		FullName:      "A A",
		Biography:     "bio",
		FollowerCount: &count,
		IsVerified:    true,
		Posts:         []json.RawMessage{[]byte(`{}`)},
	}
	if ProfileCompleteness(richer) <= ProfileCompleteness(sparse) {
		t.Fatal("richer profile should outscore sparse one")
	}
}

func TestProfileCompletenessCountsDefinedZero(t *testing.T) {
	zero := int64(0)
	withZero := types.Profile{Username: "a", FollowerCount: &zero}
	without := types.Profile{Username: "a"}
	if ProfileCompleteness(withZero) <= ProfileCompleteness(without) {
		t.Fatal("a defined zero count is more information than an absent one")
	}
}
