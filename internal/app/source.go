package app

import (
	"net/url"
	"strings"
)

const (
	githubHost    = "github.com"
	githubBase    = "https://" + githubHost
	githubSSH     = "git@" + githubHost
	gitSuffix     = ".git"
	botSuffix     = "[bot]"
	registryKey   = "registry,"
	tokenKey      = "github_access_token"
	httpsPrefix   = "https://"
	gitPlusPrefix = "git+"
)

// Classify maps repository url to a Source.
// It never fails: anything it can't parse is returned as SourceUnsupported.
func Classify(raw string) Source {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, gitPlusPrefix)

	// git@github.com:owner/repo
	if strings.HasPrefix(s, githubSSH) {
		rest := strings.TrimPrefix(s, githubSSH)
		rest = strings.TrimLeft(rest, ":/")
		s = githubBase + "/" + rest
	}
	if strings.HasPrefix(s, "http://") {
		s = httpsPrefix + strings.TrimPrefix(s, "http://")
	}

	unsupported := Source{Kind: SourceUnsupported, Raw: raw}
	if !strings.HasPrefix(s, httpsPrefix) {
		return unsupported
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return unsupported
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 {
		return unsupported
	}
	owner := segments[0]
	// Extra segments are monorepo subpaths.
	repo := segments[1]
	for strings.HasSuffix(repo, gitSuffix) {
		repo = strings.TrimSuffix(repo, gitSuffix)
	}
	if !validSegment(owner) || !validSegment(repo) {
		return unsupported
	}

	host := strings.ToLower(u.Host)
	if host == githubHost || host == "www."+githubHost {
		return Source{
			Kind:  SourceGitHub,
			Owner: owner,
			Repo:  repo,
		}
	}

	return Source{
		Kind:  SourceGenericHost,
		Host:  host,
		Owner: owner,
		Repo:  repo,
	}
}

// validSegment reports whether s can be used as owner or repo name
// and put back into a url without escaping.
func validSegment(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}
