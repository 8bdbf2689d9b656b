package normalize

import "testing"

func TestUsers(t *testing.T) {
	body := `{
		"status": 200,
		"result": {
			"count": 5,
			"users": [
				{"id": 123, "username": "ann", "full_name": "Ann A", "profile_pic_url": "p1", "is_private": false, "is_verified": true, "latest_reel_media": 1690000000, "profile_pic_id": "pid1"},
				{"id": "456", "username": "bob", "latest_reel_media": 0}
			]
		}
	}`
	count, users := Users([]byte(body))
	if count != 5 {
		t.Fatalf("count = %d, want 5", count)
	}
	if len(users) != 2 {
		t.Fatalf("user count = %d, want 2", len(users))
	}
	// Numeric and string IDs both normalize to strings.
	if users[0].ID != "123" || users[1].ID != "456" {
		t.Fatalf("ids = %q, %q", users[0].ID, users[1].ID)
	}
	if !users[0].HasStories || users[1].HasStories {
		t.Fatalf("hasStories = %v, %v", users[0].HasStories, users[1].HasStories)
	}
	if !users[0].IsVerified || users[0].ProfilePicID != "pid1" {
		t.Fatalf("first user = %+v", users[0])
	}
}

func TestUsersCountFallsBackToLength(t *testing.T) {
	body := `{"status": 200, "result": {"users": [{"id": 1, "username": "solo"}]}}`
	count, users := Users([]byte(body))
	if count != 1 || len(users) != 1 {
		t.Fatalf("count = %d, users = %d", count, len(users))
	}
}

func TestUsersUnknownShape(t *testing.T) {
	for _, body := range []string{`{"status": 200, "result": {}}`, `{"data": []}`, `nope`} {
		count, users := Users([]byte(body))
		if count != 0 || users == nil || len(users) != 0 {
			t.Fatalf("body %q: count = %d, users = %v", body, count, users)
		}
	}
}

func TestHashtags(t *testing.T) {
	body := `{
		"status": 200,
		"result": {
			"count": 1,
			"hashtags": [{"id": 999, "name": "golang", "usage": 120000}]
		}
	}`
	count, hashtags := Hashtags([]byte(body))
	if count != 1 || len(hashtags) != 1 {
		t.Fatalf("count = %d, hashtags = %d", count, len(hashtags))
	}
	h := hashtags[0]
	if h.ID != "999" || h.Name != "golang" || h.Usage != 120000 {
		t.Fatalf("hashtag = %+v", h)
	}
}

func TestHashtagsStringUsage(t *testing.T) {
	body := `{"status": 200, "result": {"hashtags": [{"id": "h1", "name": "x", "usage": "42"}]}}`
	_, hashtags := Hashtags([]byte(body))
	if len(hashtags) != 1 || hashtags[0].Usage != 42 {
		t.Fatalf("hashtags = %+v", hashtags)
	}
}
