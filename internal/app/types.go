package app

import (
	"fmt"
	"strings"
)

// SourceKind tells which hosting service a Source points to.
type SourceKind int

// Supported source kinds.
const (
	SourceUnsupported SourceKind = iota
	SourceGitHub
	SourceGenericHost
)

func (k SourceKind) String() string {
	switch k {
	case SourceGitHub:
		return "github"
	case SourceGenericHost:
		return "generic"
	default:
		return "unsupported"
	}
}

// Source is a classified origin of contributors data.
// Host is set for generic hosts only, Raw keeps the unparsed input of unsupported sources.
type Source struct {
	Kind  SourceKind
	Host  string
	Owner string
	Repo  string
	Raw   string
}

// URL returns normalized https url of the source.
// Unsupported sources return their raw input.
func (s Source) URL() string {
	switch s.Kind {
	case SourceGitHub:
		return fmt.Sprintf("%s/%s/%s", githubBase, s.Owner, s.Repo)
	case SourceGenericHost:
		return fmt.Sprintf("https://%s/%s/%s", s.Host, s.Owner, s.Repo)
	default:
		return s.Raw
	}
}

// Dependency is a single manifest entry.
type Dependency struct {
	// Name of the package in the registry.
	Name string
	// Source is an explicit repository url, empty if the package comes from the registry.
	Source string
	// Local marks dependencies given by a filesystem path.
	Local bool
	// Optional marks dependencies enabled only by features.
	Optional bool
}

// Project entity.
type Project struct {
	Name string `json:"name"`
}

// Contributor entity.
type Contributor struct {
	Login         string `json:"login"`
	ProfileURL    string `json:"profile_url"`
	Contributions uint   `json:"contributions"`
}

// ContributorRecord is a single (project, contributor) pair streamed by fetchers.
type ContributorRecord struct {
	Project       string
	Login         string
	ProfileURL    string
	Contributions uint
}

// IsBot tells if the record was made by an automation account.
func (r ContributorRecord) IsBot() bool {
	return strings.HasSuffix(r.Login, botSuffix)
}

// Quota is a snapshot of the github core rate limit.
type Quota struct {
	Limit     int
	Remaining int
	Reset     int64
}

// ContributorsPage is one page of github contributors list.
// LastPage is the number of the last page, 0 if there are no more pages.
type ContributorsPage struct {
	Contributors []Contributor
	LastPage     int
}

// Format selects the shape of the report.
type Format string

// Report formats.
const (
	FormatNameAndCount Format = "NameAndCount"
	FormatDepAndNames  Format = "DepAndNames"
	FormatNameAndDeps  Format = "NameAndDeps"
)

// ParseFormat returns Format for given name.
func ParseFormat(s string) (Format, error) {
	for _, f := range []Format{FormatNameAndCount, FormatDepAndNames, FormatNameAndDeps} {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", InvalidRequestError(fmt.Sprintf("unknown format %q", s))
}

// Breadth selects which dependencies are analyzed.
type Breadth string

// Breadth policies.
const (
	BreadthNonOpt      Breadth = "NonOpt"
	BreadthAll         Breadth = "All"
	BreadthBuildAndDev Breadth = "BuildAndDev"
)

// ParseBreadth returns Breadth for given name.
func ParseBreadth(s string) (Breadth, error) {
	for _, b := range []Breadth{BreadthNonOpt, BreadthAll, BreadthBuildAndDev} {
		if strings.EqualFold(s, string(b)) {
			return b, nil
		}
	}
	return "", InvalidRequestError(fmt.Sprintf("unknown breadth %q", s))
}

// NameAndCount entry: contributor with a sum of contributions.
type NameAndCount struct {
	Name       string
	ProfileURL string
	Count      uint
}

// Credit is a contributor mentioned in a dependency entry.
type Credit struct {
	Name       string
	ProfileURL string
}

// DepAndNames entry: dependency with its contributors.
type DepAndNames struct {
	Name         string
	Contributors []Credit
}

// NameAndDeps entry: contributor with dependencies they contributed to.
type NameAndDeps struct {
	Name         string
	ProfileURL   string
	Dependencies []string
}

// Report is the data handed to the renderer.
// Only the slice matching Format is filled.
type Report struct {
	Format       Format
	NameAndCount []NameAndCount
	DepAndNames  []DepAndNames
	NameAndDeps  []NameAndDeps
	Others       int
	Mention      bool
}

// Len returns number of entries in the report.
func (r *Report) Len() int {
	switch r.Format {
	case FormatDepAndNames:
		return len(r.DepAndNames)
	case FormatNameAndDeps:
		return len(r.NameAndDeps)
	default:
		return len(r.NameAndCount)
	}
}
