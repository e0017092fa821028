package app

import "time"

// Producer names used when reporting pipeline events.
const (
	ProducerRegistry = "registry"
	ProducerGithub   = "github"
	ProducerGeneric  = "generic"
)

// Recorder receives pipeline events, e.g. for metrics.
type Recorder interface {
	RecordCacheLookup(producer string, hit bool)
	RecordQuotaWait(d time.Duration)
	RecordContributors(producer string, count int)
}

type nopRecorder struct{}

func (nopRecorder) RecordCacheLookup(string, bool) {}
func (nopRecorder) RecordQuotaWait(time.Duration)  {}
func (nopRecorder) RecordContributors(string, int) {}
