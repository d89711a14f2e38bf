// Command sendwebhook posts sample provider payloads at a running
// instance, signing GitHub deliveries when a secret is given. Useful for
// exercising the ingestion pipeline without real provider traffic.
package main

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const githubPushPayload = `{
  "ref": "refs/heads/main",
  "after": "0f1e2d3c4b5a6978",
  "repository": {"full_name": "acme/manager"},
  "commits": [{"id": "a"}, {"id": "b"}, {"id": "c"}],
  "pusher": {"name": "sendwebhook"}
}`

const doDeploymentPayload = `{
  "type": "app.deployment.completed",
  "app": {"id": "sample-app", "live_url": "https://sample-app.ondigitalocean.app"}
}`

func main() {
	target := flag.String("target", "http://localhost:8080", "base URL of the deploy-monitor instance")
	provider := flag.String("provider", "github", "payload provider: github | digitalocean")
	event := flag.String("event", "", "event kind header; defaults per provider")
	secret := flag.String("secret", "", "GitHub webhook secret used to sign the payload")
	flag.Parse()

	var path, body, kindHeader, kind string
	switch *provider {
	case "github":
		path = "/webhook"
		body = githubPushPayload
		kindHeader = "X-GitHub-Event"
		kind = "push"
	case "digitalocean":
		path = "/webhook/platform"
		body = doDeploymentPayload
		kindHeader = "X-DigitalOcean-Event"
		kind = "app.deployment.completed"
	default:
		fmt.Fprintf(os.Stderr, "unknown provider %q\n", *provider)
		os.Exit(1)
	}
	if *event != "" {
		kind = *event
	}

	req, err := http.NewRequest(http.MethodPost, *target+path, bytes.NewReader([]byte(body)))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(kindHeader, kind)

	if *provider == "github" && *secret != "" {
		mac := hmac.New(sha256.New, []byte(*secret))
		mac.Write([]byte(body))
		req.Header.Set("X-Hub-Signature-256", "sha256="+hex.EncodeToString(mac.Sum(nil)))
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Fprintln(os.Stderr, "request failed:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	out, _ := io.ReadAll(resp.Body)
	fmt.Printf("%s\n%s\n", resp.Status, out)
}
