package webhook

// Header names consumed from provider deliveries.
const (
	GitHubEventHeader     = "X-GitHub-Event"
	GitHubSignatureHeader = "X-Hub-Signature-256"
	DigitalOceanHeader    = "X-DigitalOcean-Event"
)

// SecurityConfig holds webhook ingress security settings.
type SecurityConfig struct {
	Secret          string   // Shared secret for GitHub signature verification; empty skips verification
	AllowedIPs      []string // IP whitelist (optional)
	RateLimitPerMin int      // Max requests per minute per source
}

// GitHubSupportedEvents lists the GitHub event kinds with dedicated handling.
var GitHubSupportedEvents = []string{"push", "pull_request", "deployment_status"}

// DigitalOceanSupportedEvents lists the deployment-platform kinds with
// dedicated handling, in their canonical `app.`-prefixed form.
var DigitalOceanSupportedEvents = []string{
	"app.deployment.started",
	"app.deployment.completed",
	"app.deployment.failed",
	"app.build.completed",
	"app.build.failed",
}
