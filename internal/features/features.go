package features

import "glitchterm/internal/config"

// Known feature names
const (
	ProfileRedesign = "profile_redesign"
	Collections     = "collections"
)

// Set holds the feature flags in effect for a session
type Set struct {
	server map[string]bool
	client map[string]bool
}

// New builds a Set from the server-advertised and locally enabled names
func New(server, client []string) Set {
	s := Set{server: make(map[string]bool), client: make(map[string]bool)}
	for _, name := range server {
		s.server[name] = true
	}
	for _, name := range client {
		s.client[name] = true
	}
	return s
}

// FromConfig reads the [features] table
func FromConfig(cfg *config.Config) Set {
	return New(cfg.Features.Server, cfg.Features.Client)
}

func (s Set) IsServerFeatureEnabled(name string) bool { return s.server[name] }

func (s Set) IsClientFeatureEnabled(name string) bool { return s.client[name] }

// RedesignEnabled reports whether the redesigned profile layout is in use
func (s Set) RedesignEnabled() bool {
	return s.IsServerFeatureEnabled(ProfileRedesign)
}

// CollectionsEnabled needs both the server and the client to opt in
func (s Set) CollectionsEnabled() bool {
	return s.IsClientFeatureEnabled(Collections) && s.IsServerFeatureEnabled(Collections)
}
