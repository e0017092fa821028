package app

import (
	"sort"
)

// Aggregator groups contributor records by project and builds the report.
// It is not safe for concurrent use: a single goroutine should drain the records channel.
type Aggregator struct {
	threshold uint
	projects  map[string]*projectContributions
}

type projectContributions struct {
	// logins in discovery order
	logins  []string
	byLogin map[string]*ContributorRecord
}

// judgement is a verdict for single contributor on a single project.
type judgement struct {
	record ContributorRecord
	kept   bool
}

// NewAggregator creates new Aggregator instance.
// threshold is a minimum number of contributions for non sole contributors.
func NewAggregator(threshold uint) *Aggregator {
	return &Aggregator{
		threshold: threshold,
		projects:  make(map[string]*projectContributions),
	}
}

// Add accumulates a record. Bot accounts are dropped.
// Records of the same login within one project are summed.
func (a *Aggregator) Add(r ContributorRecord) {
	if r.IsBot() {
		return
	}

	p, ok := a.projects[r.Project]
	if !ok {
		p = &projectContributions{
			byLogin: make(map[string]*ContributorRecord),
		}
		a.projects[r.Project] = p
	}

	if existing, ok := p.byLogin[r.Login]; ok {
		existing.Contributions += r.Contributions
		if existing.ProfileURL == "" {
			existing.ProfileURL = r.ProfileURL
		}
		return
	}
	rec := r
	p.byLogin[r.Login] = &rec
	p.logins = append(p.logins, r.Login)
}

// Consume adds all records from the channel. Returns when the channel is closed.
func (a *Aggregator) Consume(records <-chan ContributorRecord) {
	for r := range records {
		a.Add(r)
	}
}

// Report builds report in given format.
func (a *Aggregator) Report(format Format, mention bool) *Report {
	judgements, others := a.judge()

	r := Report{
		Format:  format,
		Others:  others,
		Mention: mention,
	}
	switch format {
	case FormatDepAndNames:
		r.DepAndNames = depAndNames(judgements)
	case FormatNameAndDeps:
		r.NameAndDeps = nameAndDeps(judgements)
	default:
		r.Format = FormatNameAndCount
		r.NameAndCount = nameAndCount(judgements)
	}

	return &r
}

// judge decides which contributors are kept on each project.
// Returns verdicts in project name order and the number of logins that weren't kept anywhere.
//
// A login lands in the exclusion set when it misses the threshold on a project and leaves it
// for good as soon as it is kept on any project, so the result doesn't depend on arrival order.
func (a *Aggregator) judge() ([]judgement, int) {
	names := make([]string, 0, len(a.projects))
	for name := range a.projects {
		names = append(names, name)
	}
	sort.Strings(names)

	qualified := make(map[string]bool)
	excluded := make(map[string]struct{})
	var judgements []judgement

	for _, name := range names {
		p := a.projects[name]
		sole := len(p.logins) == 1

		for _, login := range p.logins {
			rec := *p.byLogin[login]
			kept := sole || rec.Contributions >= a.threshold
			if kept {
				qualified[login] = true
				delete(excluded, login)
			} else if !qualified[login] {
				excluded[login] = struct{}{}
			}
			judgements = append(judgements, judgement{record: rec, kept: kept})
		}
	}

	return judgements, len(excluded)
}

func nameAndCount(judgements []judgement) []NameAndCount {
	index := make(map[string]int)
	var result []NameAndCount
	for _, j := range judgements {
		if !j.kept {
			continue
		}
		i, ok := index[j.record.Login]
		if !ok {
			i = len(result)
			index[j.record.Login] = i
			result = append(result, NameAndCount{
				Name:       j.record.Login,
				ProfileURL: j.record.ProfileURL,
			})
		}
		result[i].Count += j.record.Contributions
		if result[i].ProfileURL == "" {
			result[i].ProfileURL = j.record.ProfileURL
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Name < result[j].Name
	})

	return result
}

func depAndNames(judgements []judgement) []DepAndNames {
	index := make(map[string]int)
	var result []DepAndNames
	for _, j := range judgements {
		if !j.kept {
			continue
		}
		i, ok := index[j.record.Project]
		if !ok {
			i = len(result)
			index[j.record.Project] = i
			result = append(result, DepAndNames{Name: j.record.Project})
		}
		result[i].Contributors = append(result[i].Contributors, Credit{
			Name:       j.record.Login,
			ProfileURL: j.record.ProfileURL,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	for _, d := range result {
		credits := d.Contributors
		sort.Slice(credits, func(i, j int) bool {
			if credits[i].Name != credits[j].Name {
				return credits[i].Name < credits[j].Name
			}
			return credits[i].ProfileURL < credits[j].ProfileURL
		})
	}

	return result
}

func nameAndDeps(judgements []judgement) []NameAndDeps {
	index := make(map[string]int)
	var result []NameAndDeps
	for _, j := range judgements {
		if !j.kept {
			continue
		}
		i, ok := index[j.record.Login]
		if !ok {
			i = len(result)
			index[j.record.Login] = i
			result = append(result, NameAndDeps{
				Name:       j.record.Login,
				ProfileURL: j.record.ProfileURL,
			})
		}
		if result[i].ProfileURL == "" {
			result[i].ProfileURL = j.record.ProfileURL
		}
		result[i].Dependencies = append(result[i].Dependencies, j.record.Project)
	}

	for _, n := range result {
		sort.Strings(n.Dependencies)
	}
	sort.Slice(result, func(i, j int) bool {
		if len(result[i].Dependencies) != len(result[j].Dependencies) {
			return len(result[i].Dependencies) > len(result[j].Dependencies)
		}
		return result[i].Name < result[j].Name
	})

	return result
}
