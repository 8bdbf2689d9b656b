package registry

import (
	"fmt"
	"net/url"

	"github.com/vmihiranga/digizigtool/internal/config"
)

// Capability names one of the supported extraction operations.
type Capability string

const (
	Download      Capability = "download"
	Story         Capability = "story"
	UserSearch    Capability = "userSearch"
	HashtagSearch Capability = "hashtagSearch"
	UserStalk     Capability = "userStalk"
)

// ProfileDialect selects the profile extractor for a stalk candidate.
// Profile responses are not sniffed; the endpoint that answered decides.
type ProfileDialect string

const (
	DialectVreden    ProfileDialect = "vreden"
	DialectGokublack ProfileDialect = "gokublack"
)

// Candidate is one configured upstream endpoint template. The outbound URL
// is the template concatenated with the percent-encoded caller parameter.
type Candidate struct {
	Template string
	Dialect  ProfileDialect
}

// BuildURL appends the percent-encoded parameter to the endpoint template.
func (c Candidate) BuildURL(param string) string {
	return c.Template + url.QueryEscape(param)
}

// Registry holds the ordered endpoint candidates per capability. It is
// immutable after construction; order is the only priority signal.
type Registry struct {
	groups map[Capability][]Candidate
}

// FromConfig builds a Registry from validated configuration.
func FromConfig(cfg config.RegistryConfig) (*Registry, error) {
	groups := map[Capability][]Candidate{
		Download:      toCandidates(cfg.Download),
		Story:         toCandidates(cfg.Story),
		UserSearch:    toCandidates(cfg.UserSearch),
		HashtagSearch: toCandidates(cfg.HashtagSearch),
		UserStalk:     toCandidates(cfg.UserStalk),
	}
	for capability, candidates := range groups {
		if len(candidates) == 0 {
			return nil, fmt.Errorf("capability %s has no endpoint candidates", capability)
		}
	}
	return &Registry{groups: groups}, nil
}

func toCandidates(endpoints []config.EndpointConfig) []Candidate {
	candidates := make([]Candidate, 0, len(endpoints))
	for _, ep := range endpoints {
		candidates = append(candidates, Candidate{
			Template: ep.URL,
			Dialect:  ProfileDialect(ep.Dialect),
		})
	}
	return candidates
}

// Candidates returns the ordered candidate list for a capability.
func (r *Registry) Candidates(capability Capability) []Candidate {
	return r.groups[capability]
}
