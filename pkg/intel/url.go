package intel

import (
	"net/url"
	"regexp"
	"strings"
)

var reIPv4Host = regexp.MustCompile(`^\d+\.\d+\.\d+\.\d+$`)

// suspiciousTLDs are cheap/free registries heavily abused for phishing.
var suspiciousTLDs = []string{".tk", ".ml", ".ga", ".cf", ".gq", ".xyz", ".top"}

// suspiciousHostWords are brand-impersonation words embedded in phishing
// hostnames ("secure-bank-verify.xyz").
var suspiciousHostWords = []string{"verify", "secure", "account", "update", "confirm", "banking"}

// LinkAnalysis is the result of a URL risk check.
type LinkAnalysis struct {
	URL        string   `json:"url"`
	Suspicious bool     `json:"is_suspicious"`
	Reasons    []string `json:"indicators"`
}

// AnalyzeLink flags structurally suspicious URLs: raw-IP hosts, disallowed
// TLDs, more than four domain labels, or impersonation words in the host.
// Every check that applies is reported. A URL that cannot be parsed is
// itself suspicious with reason "malformed".
//
// Not on the per-turn hot path; exposed for reporting and scoring layers
// that want to grade collected links.
func AnalyzeLink(raw string) LinkAnalysis {
	a := LinkAnalysis{URL: raw}

	host := hostOf(raw)
	if host == "" {
		a.Suspicious = true
		a.Reasons = append(a.Reasons, "malformed")
		return a
	}

	if reIPv4Host.MatchString(host) {
		a.Suspicious = true
		a.Reasons = append(a.Reasons, "IP address instead of domain")
	}

	for _, tld := range suspiciousTLDs {
		if strings.HasSuffix(host, tld) {
			a.Suspicious = true
			a.Reasons = append(a.Reasons, "suspicious TLD")
			break
		}
	}

	if len(strings.Split(host, ".")) > 4 {
		a.Suspicious = true
		a.Reasons = append(a.Reasons, "excessive subdomains")
	}

	lowerHost := strings.ToLower(host)
	for _, word := range suspiciousHostWords {
		if strings.Contains(lowerHost, word) {
			a.Suspicious = true
			a.Reasons = append(a.Reasons, "suspicious keywords in domain")
			break
		}
	}

	return a
}

// hostOf extracts the hostname, tolerating scheme-less "www." links the
// extractor captures. Returns "" if no usable host can be recovered.
func hostOf(raw string) string {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return ""
	}
	if !strings.Contains(candidate, "://") {
		candidate = "http://" + candidate
	}
	u, err := url.Parse(candidate)
	if err != nil {
		return ""
	}
	// Strip an explicit port; risk checks operate on the name alone.
	host := u.Hostname()
	return host
}
