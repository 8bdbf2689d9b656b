package extractor

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/vmihiranga/digizigtool/internal/normalize"
	"github.com/vmihiranga/digizigtool/internal/registry"
	"github.com/vmihiranga/digizigtool/internal/upstream"
	"github.com/vmihiranga/digizigtool/pkg/types"
)

// downloadURLPatterns accepts post and reel links, with or without a
// leading username segment.
var downloadURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://(www\.)?instagram\.com/(p|reel)/[A-Za-z0-9_-]+/?.*$`),
	regexp.MustCompile(`^https?://(www\.)?instagram\.com/[A-Za-z0-9_.]+/(p|reel)/[A-Za-z0-9_-]+/?.*$`),
}

// ValidDownloadURL reports whether a URL points at a downloadable post or reel.
func ValidDownloadURL(raw string) bool {
	for _, pattern := range downloadURLPatterns {
		if pattern.MatchString(raw) {
			return true
		}
	}
	return false
}

// Service drives the fetch-with-fallback loop over the endpoint registry.
// Candidates are tried strictly in order, one at a time; the best partial
// result is kept until a candidate clears the capability's early-exit bar.
type Service struct {
	registry *registry.Registry
	client   *upstream.Client
	cache    *Cache
	metrics  *Metrics
	logger   *slog.Logger
	now      func() time.Time
}

// New wires a Service. cache and metrics may be nil to disable them.
func New(reg *registry.Registry, client *upstream.Client, cache *Cache, metrics *Metrics, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		registry: reg,
		client:   client,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// fetch performs one candidate attempt and records its latency.
func (s *Service) fetch(ctx context.Context, capability registry.Capability, cand registry.Candidate, param string) ([]byte, error) {
	target := cand.BuildURL(param)
	s.logger.Info("trying upstream candidate", "capability", capability, "url", cand.Template)

	start := s.now()
	body, err := s.client.Get(ctx, target)
	s.metrics.ObserveUpstreamDuration(time.Since(start))

	if err != nil {
		s.metrics.IncAttempt(string(capability), upstream.ErrorLabel(err))
		s.logger.Warn("upstream candidate failed", "capability", capability, "url", cand.Template, "error", err)
		return nil, err
	}
	return body, nil
}

// Download resolves the media behind a post or reel URL, trying each
// configured source in order. Early exit: a candidate with a caption or a
// positive like count is returned immediately.
func (s *Service) Download(ctx context.Context, rawURL string) (*types.DownloadResult, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" || !ValidDownloadURL(rawURL) {
		return nil, &InputError{Msg: "Invalid Instagram URL provided"}
	}

	if cached, ok := s.cache.Get(registry.Download, rawURL); ok {
		if result, ok := cached.(*types.DownloadResult); ok {
			s.metrics.IncCacheHit()
			return result, nil
		}
	}

	var best *types.DownloadResult
	bestScore := -1
	var lastErr error

	for _, cand := range s.registry.Candidates(registry.Download) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		body, err := s.fetch(ctx, registry.Download, cand, rawURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}

		extract := normalize.Download(body)
		if len(extract.Media) == 0 {
			s.metrics.IncAttempt(string(registry.Download), "empty")
			s.logger.Debug("candidate produced no media", "url", cand.Template)
			continue
		}
		s.metrics.IncAttempt(string(registry.Download), "success")

		result := &types.DownloadResult{
			Author:      extract.Author,
			Media:       extract.Media,
			PostDetails: extract.Details,
			OriginalURL: rawURL,
			ExtractedAt: s.now().UTC(),
		}

		if score := PostDetailsCompleteness(extract.Details); best == nil || score > bestScore {
			best, bestScore = result, score
		}

		// Good enough: stop as soon as a source knows the caption or likes.
		if extract.Details.Caption != "" || extract.Details.Likes > 0 {
			s.metrics.IncRequest(string(registry.Download), "success")
			s.cache.Add(registry.Download, rawURL, result)
			return result, nil
		}
	}

	if best != nil {
		s.metrics.IncRequest(string(registry.Download), "success")
		s.cache.Add(registry.Download, rawURL, best)
		return best, nil
	}

	s.metrics.IncRequest(string(registry.Download), "error")
	return nil, &ExhaustedError{LastErr: lastErr, Fallback: "All APIs failed to fetch content"}
}

// Stories fetches the active stories for a username. The first candidate
// that yields any frame wins.
func (s *Service) Stories(ctx context.Context, username string) (*types.StoryResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, &InputError{Msg: "Username is required"}
	}

	if cached, ok := s.cache.Get(registry.Story, username); ok {
		if result, ok := cached.(*types.StoryResult); ok {
			s.metrics.IncCacheHit()
			return result, nil
		}
	}

	var lastErr error
	for _, cand := range s.registry.Candidates(registry.Story) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		body, err := s.fetch(ctx, registry.Story, cand, username)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}

		stories := normalize.Story(body, s.now())
		if len(stories) == 0 {
			s.metrics.IncAttempt(string(registry.Story), "empty")
			continue
		}
		s.metrics.IncAttempt(string(registry.Story), "success")
		s.metrics.IncRequest(string(registry.Story), "success")

		result := &types.StoryResult{
			Username:    username,
			Stories:     stories,
			Count:       len(stories),
			ExtractedAt: s.now().UTC(),
		}
		s.cache.Add(registry.Story, username, result)
		return result, nil
	}

	s.metrics.IncRequest(string(registry.Story), "error")
	if lastErr != nil {
		return nil, &ExhaustedError{LastErr: lastErr, Fallback: "All APIs failed to fetch content"}
	}
	return nil, &NotFoundError{Msg: "No stories found or user not found"}
}

// SearchUsers looks up accounts matching a query. The first candidate that
// yields any match wins.
func (s *Service) SearchUsers(ctx context.Context, query string) (*types.UserSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &InputError{Msg: "Search query is required"}
	}

	if cached, ok := s.cache.Get(registry.UserSearch, query); ok {
		if result, ok := cached.(*types.UserSearchResult); ok {
			s.metrics.IncCacheHit()
			return result, nil
		}
	}

	var lastErr error
	for _, cand := range s.registry.Candidates(registry.UserSearch) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		body, err := s.fetch(ctx, registry.UserSearch, cand, query)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}

		count, users := normalize.Users(body)
		if len(users) == 0 {
			s.metrics.IncAttempt(string(registry.UserSearch), "empty")
			continue
		}
		s.metrics.IncAttempt(string(registry.UserSearch), "success")
		s.metrics.IncRequest(string(registry.UserSearch), "success")

		result := &types.UserSearchResult{
			Count:      count,
			Users:      users,
			SearchedAt: s.now().UTC(),
		}
		s.cache.Add(registry.UserSearch, query, result)
		return result, nil
	}

	s.metrics.IncRequest(string(registry.UserSearch), "error")
	if lastErr != nil {
		return nil, &ExhaustedError{LastErr: lastErr, Fallback: "All APIs failed to fetch content"}
	}
	return nil, &NotFoundError{Msg: "No users found"}
}

// SearchHashtags looks up hashtags matching a query. The first candidate
// that yields any match wins.
func (s *Service) SearchHashtags(ctx context.Context, query string) (*types.HashtagSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &InputError{Msg: "Search query is required"}
	}

	if cached, ok := s.cache.Get(registry.HashtagSearch, query); ok {
		if result, ok := cached.(*types.HashtagSearchResult); ok {
			s.metrics.IncCacheHit()
			return result, nil
		}
	}

	var lastErr error
	for _, cand := range s.registry.Candidates(registry.HashtagSearch) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		body, err := s.fetch(ctx, registry.HashtagSearch, cand, query)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}

		count, hashtags := normalize.Hashtags(body)
		if len(hashtags) == 0 {
			s.metrics.IncAttempt(string(registry.HashtagSearch), "empty")
			continue
		}
		s.metrics.IncAttempt(string(registry.HashtagSearch), "success")
		s.metrics.IncRequest(string(registry.HashtagSearch), "success")

		result := &types.HashtagSearchResult{
			Count:      count,
			Hashtags:   hashtags,
			SearchedAt: s.now().UTC(),
		}
		s.cache.Add(registry.HashtagSearch, query, result)
		return result, nil
	}

	s.metrics.IncRequest(string(registry.HashtagSearch), "error")
	if lastErr != nil {
		return nil, &ExhaustedError{LastErr: lastErr, Fallback: "All APIs failed to fetch content"}
	}
	return nil, &NotFoundError{Msg: "No hashtags found"}
}

// Stalk resolves a profile, combining sources by richness. Early exit: once
// a candidate knows both the follower count and the biography, the richest
// profile seen so far is returned.
func (s *Service) Stalk(ctx context.Context, username string) (*types.Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, &InputError{Msg: "Username is required"}
	}

	if cached, ok := s.cache.Get(registry.UserStalk, username); ok {
		if result, ok := cached.(*types.Profile); ok {
			s.metrics.IncCacheHit()
			return result, nil
		}
	}

	var best *types.Profile
	bestScore := -1
	var lastErr error

	for _, cand := range s.registry.Candidates(registry.UserStalk) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		body, err := s.fetch(ctx, registry.UserStalk, cand, username)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}

		profile := normalize.Profile(body, string(cand.Dialect))
		if profile.Username == "" {
			s.metrics.IncAttempt(string(registry.UserStalk), "empty")
			continue
		}
		s.metrics.IncAttempt(string(registry.UserStalk), "success")

		profile.DataSource = string(cand.Dialect)
		profile.ExtractedAt = s.now().UTC()

		if score := ProfileCompleteness(profile); best == nil || score > bestScore {
			snapshot := profile
			best, bestScore = &snapshot, score
		}

		// Good enough: the source knows both audience size and biography.
		if profile.FollowerCount != nil && profile.Biography != "" {
			s.metrics.IncRequest(string(registry.UserStalk), "success")
			s.cache.Add(registry.UserStalk, username, best)
			return best, nil
		}
	}

	if best != nil {
		s.metrics.IncRequest(string(registry.UserStalk), "success")
		s.cache.Add(registry.UserStalk, username, best)
		return best, nil
	}

	s.metrics.IncRequest(string(registry.UserStalk), "error")
	return nil, &ExhaustedError{LastErr: lastErr, Fallback: "All profile APIs failed"}
}
