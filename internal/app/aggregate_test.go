package app

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(project, login string, contributions uint) ContributorRecord {
	return ContributorRecord{
		Project:       project,
		Login:         login,
		ProfileURL:    "https://github.com/" + login,
		Contributions: contributions,
	}
}

func aggregate(threshold uint, records ...ContributorRecord) *Aggregator {
	a := NewAggregator(threshold)
	for _, r := range records {
		a.Add(r)
	}
	return a
}

func TestAggregatorSoleContributor(t *testing.T) {
	t.Parallel()

	a := aggregate(5, rec("tiny", "alone", 1))
	got := a.Report(FormatNameAndCount, false)

	require.Len(t, got.NameAndCount, 1)
	assert.Equal(t, NameAndCount{Name: "alone", ProfileURL: "https://github.com/alone", Count: 1}, got.NameAndCount[0])
	assert.Equal(t, 0, got.Others)
}

func TestAggregatorThresholdReinstatement(t *testing.T) {
	t.Parallel()

	records := []ContributorRecord{
		rec("A", "x", 1),
		rec("A", "y", 10),
		rec("B", "x", 4),
		rec("B", "z", 7),
	}

	// Order of arrival must not matter.
	for _, order := range [][]int{{0, 1, 2, 3}, {2, 3, 0, 1}, {3, 2, 1, 0}} {
		a := NewAggregator(3)
		for _, i := range order {
			a.Add(records[i])
		}

		got := a.Report(FormatNameAndCount, false)
		assert.Equal(t, []NameAndCount{
			{Name: "y", ProfileURL: "https://github.com/y", Count: 10},
			{Name: "z", ProfileURL: "https://github.com/z", Count: 7},
			{Name: "x", ProfileURL: "https://github.com/x", Count: 4},
		}, got.NameAndCount)
		assert.Equal(t, 0, got.Others)

		deps := a.Report(FormatDepAndNames, false)
		require.Len(t, deps.DepAndNames, 2)
		assert.Equal(t, "A", deps.DepAndNames[0].Name)
		assert.Equal(t, []Credit{{Name: "y", ProfileURL: "https://github.com/y"}}, deps.DepAndNames[0].Contributors)
	}
}

func TestAggregatorOthers(t *testing.T) {
	t.Parallel()

	a := aggregate(3,
		rec("A", "big", 10),
		rec("A", "small", 1),
		rec("A", "tiny", 2),
		rec("B", "big", 5),
		rec("B", "small", 1),
		rec("C", "tiny", 1),
	)

	got := a.Report(FormatNameAndCount, true)
	// "small" never qualified, "tiny" is sole contributor of C.
	assert.Equal(t, 1, got.Others)
	assert.True(t, got.Mention)
	assert.Equal(t, []NameAndCount{
		{Name: "big", ProfileURL: "https://github.com/big", Count: 15},
		{Name: "tiny", ProfileURL: "https://github.com/tiny", Count: 1},
	}, got.NameAndCount)
}

func TestAggregatorBotsFiltered(t *testing.T) {
	t.Parallel()

	a := aggregate(1,
		rec("A", "dependabot[bot]", 1000),
		rec("A", "human", 3),
		rec("B", "renovate[bot]", 50),
	)

	for _, f := range []Format{FormatNameAndCount, FormatDepAndNames, FormatNameAndDeps} {
		got := a.Report(f, false)
		assert.Equal(t, 1, got.Len(), f)
		assert.Equal(t, 0, got.Others, f)
	}

	deps := a.Report(FormatDepAndNames, false)
	assert.Equal(t, []DepAndNames{
		{Name: "A", Contributors: []Credit{{Name: "human", ProfileURL: "https://github.com/human"}}},
	}, deps.DepAndNames)
}

func TestAggregatorSortDeterminism(t *testing.T) {
	t.Parallel()

	a := aggregate(1,
		rec("P", "c", 3),
		rec("P", "b", 5),
		rec("P", "a", 5),
	)

	got := a.Report(FormatNameAndCount, false)
	var names []string
	for _, e := range got.NameAndCount {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestAggregatorNameAndDeps(t *testing.T) {
	t.Parallel()

	a := aggregate(2,
		rec("serde", "dtolnay", 900),
		rec("serde", "oli", 40),
		rec("anyhow", "dtolnay", 300),
		rec("anyhow", "someone", 1),
		rec("tokio", "carllerche", 1000),
		rec("tokio", "oli", 2),
	)

	got := a.Report(FormatNameAndDeps, false)
	assert.Equal(t, []NameAndDeps{
		{Name: "dtolnay", ProfileURL: "https://github.com/dtolnay", Dependencies: []string{"anyhow", "serde"}},
		{Name: "oli", ProfileURL: "https://github.com/oli", Dependencies: []string{"serde", "tokio"}},
		{Name: "carllerche", ProfileURL: "https://github.com/carllerche", Dependencies: []string{"tokio"}},
	}, got.NameAndDeps)
	assert.Equal(t, 1, got.Others)
}

func TestAggregatorDuplicateLoginWithinProject(t *testing.T) {
	t.Parallel()

	a := aggregate(3,
		ContributorRecord{Project: "lib", Login: "Jane Doe", Contributions: 2},
		ContributorRecord{Project: "lib", Login: "Jane Doe", Contributions: 2},
		ContributorRecord{Project: "lib", Login: "John", Contributions: 1},
	)

	got := a.Report(FormatNameAndCount, false)
	assert.Equal(t, []NameAndCount{{Name: "Jane Doe", Count: 4}}, got.NameAndCount)
	assert.Equal(t, 1, got.Others)
}

func TestAggregatorConsume(t *testing.T) {
	t.Parallel()

	records := make(chan ContributorRecord)
	a := NewAggregator(1)
	done := make(chan struct{})
	go func() {
		a.Consume(records)
		close(done)
	}()

	records <- rec("A", "a", 1)
	records <- rec("B", "a", 2)
	close(records)
	<-done

	got := a.Report(FormatNameAndCount, false)
	assert.Equal(t, []NameAndCount{{Name: "a", ProfileURL: "https://github.com/a", Count: 3}}, got.NameAndCount)
}

// TestAggregatorOthersMatchesNeverQualified checks others count against a brute force
// computation over random streams.
func TestAggregatorOthersMatchesNeverQualified(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		threshold := uint(rnd.Intn(5) + 1)
		var records []ContributorRecord
		for j := 0; j < rnd.Intn(30); j++ {
			records = append(records, ContributorRecord{
				Project:       fmt.Sprintf("p%d", rnd.Intn(5)),
				Login:         fmt.Sprintf("u%d", rnd.Intn(8)),
				Contributions: uint(rnd.Intn(6)),
			})
		}

		sums := make(map[string]map[string]uint)
		for _, r := range records {
			if sums[r.Project] == nil {
				sums[r.Project] = make(map[string]uint)
			}
			sums[r.Project][r.Login] += r.Contributions
		}
		seen := make(map[string]bool)
		qualified := make(map[string]bool)
		for _, logins := range sums {
			for login, n := range logins {
				seen[login] = true
				if len(logins) == 1 || n >= threshold {
					qualified[login] = true
				}
			}
		}
		want := len(seen) - len(qualified)

		rnd.Shuffle(len(records), func(a, b int) { records[a], records[b] = records[b], records[a] })
		got := aggregate(threshold, records...).Report(FormatNameAndCount, false)
		require.Equal(t, want, got.Others, "iteration %d", i)
	}
}
