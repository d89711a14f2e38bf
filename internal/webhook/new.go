package webhook

import (
	"strings"

	"deploy-monitor/internal/eventlog"
	pkgLog "deploy-monitor/pkg/log"
)

// Handler owns the webhook ingress and the status surface.
type Handler struct {
	store    *eventlog.Store
	recorder eventlog.Recorder
	security *SecurityValidator
	github   *GitHubNormalizer
	do       *DigitalOceanNormalizer
	baseURL  string
	l        pkgLog.Logger
}

// NewHandler builds the webhook handler. recorder is the write path used
// by the ingress endpoints; pass nil to record straight into store.
// baseURL is the externally reachable base URL of this instance, used to
// build the delivery URLs returned as setup hints.
func NewHandler(
	store *eventlog.Store,
	recorder eventlog.Recorder,
	securityConfig SecurityConfig,
	baseURL string,
	l pkgLog.Logger,
) *Handler {
	if recorder == nil {
		recorder = store
	}
	return &Handler{
		store:    store,
		recorder: recorder,
		security: NewSecurityValidator(securityConfig),
		github:   NewGitHubNormalizer(),
		do:       NewDigitalOceanNormalizer(),
		baseURL:  strings.TrimRight(baseURL, "/"),
		l:        l,
	}
}

// webhookURL returns the externally reachable delivery URL for an
// ingress path.
func (h *Handler) webhookURL(path string) string {
	return h.baseURL + path
}

// SignatureSkipped reports whether GitHub deliveries are accepted
// unverified, so the caller can warn at startup.
func (h *Handler) SignatureSkipped() bool {
	return h.security.SignatureSkipped()
}
