package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

// Known platforms
const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformAshby      Platform = "ashby"
	PlatformUnknown    Platform = "unknown"
)

type platformProfile struct {
	hosts   []string
	content []string
	noise   []string
}

var platformProfiles = map[Platform]platformProfile{
	PlatformGreenhouse: {
		hosts:   []string{"greenhouse.io"},
		content: []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
		noise:   []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	},
	PlatformLever: {
		hosts:   []string{"lever.co"},
		content: []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:   []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	PlatformWorkday: {
		hosts:   []string{"workday.com", "myworkdayjobs.com"},
		content: []string{"[data-automation-id='jobDescription']", ".job-description"},
		noise:   []string{"[data-automation-id='applyButton']", ".application-section"},
	},
	PlatformAshby: {
		hosts:   []string{"ashbyhq.com"},
		content: []string{"[class*='_descriptionText']", "main"},
		noise:   []string{"[class*='_applicationForm']"},
	},
}

// commonNoise is removed on every platform: application forms, EEO text, share and cookie widgets
var commonNoise = []string{
	"form", "#application-form", ".application-form", ".apply-button-container",
	".eeo-statement", ".eeo-section", ".legal-disclosure", ".self-identification",
	".social-share", ".share-buttons", ".cookie-consent", ".gdpr-notice",
}

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for _, p := range []Platform{PlatformGreenhouse, PlatformLever, PlatformWorkday, PlatformAshby} {
		for _, h := range platformProfiles[p].hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return p
			}
		}
	}
	return PlatformUnknown
}

// PlatformContentSelectors returns content selectors for a platform, falling
// back to the generic job posting selectors.
func PlatformContentSelectors(platform Platform) []string {
	if p, ok := platformProfiles[platform]; ok {
		return append(append([]string{}, p.content...), JobPostingSelectors()...)
	}
	return JobPostingSelectors()
}

// PlatformNoiseSelectors returns noise exclusion selectors for a platform.
func PlatformNoiseSelectors(platform Platform) []string {
	out := append([]string{}, commonNoise...)
	return append(out, platformProfiles[platform].noise...)
}
