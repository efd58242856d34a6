package update

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// releasesURL is a var so tests can point it at a local server.
var releasesURL = "https://api.github.com/repos/UgbabeOG/the-circuit-soul-blog/releases/latest"

var client = &http.Client{Timeout: 5 * time.Second}

type release struct {
	TagName    string `json:"tag_name"`
	Draft      bool   `json:"draft"`
	Prerelease bool   `json:"prerelease"`
}

// Check asks GitHub for the latest release tag and reports whether it
// is newer than the running build. Any failure, a draft or prerelease
// tag, and dev builds all read as "nothing newer".
func Check(ctx context.Context, current string) (string, bool) {
	cur := normalize(current)
	if cur == "" || cur == "dev" {
		return "", false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, releasesURL, nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", false
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return "", false
	}
	if rel.Draft || rel.Prerelease {
		return "", false
	}

	latest := normalize(rel.TagName)
	if latest == "" || latest == cur {
		return "", false
	}
	return latest, true
}

func normalize(v string) string {
	return strings.TrimPrefix(strings.TrimSpace(v), "v")
}
