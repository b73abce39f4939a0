package publishers

import (
	"time"

	"github.com/samvad-hq/wpcom-harvester/internal/domain"
)

// Event is the payload published downstream for each new item.
type Event struct {
	JobID       string      `json:"job_id"`
	JobName     string      `json:"job_name"`
	Kind        string      `json:"kind"`
	Site        string      `json:"site,omitempty"`
	Item        domain.Item `json:"item"`
	CollectedAt time.Time   `json:"collected_at"`
}

// NewEvent constructs an Event for an item harvested by the given job.
func NewEvent(jobID, jobName string, item domain.Item) Event {
	return Event{
		JobID:       jobID,
		JobName:     jobName,
		Kind:        item.Kind,
		Site:        item.Site,
		Item:        item,
		CollectedAt: time.Now().UTC(),
	}
}

// attributes are the routing attributes attached to queue messages.
func (e Event) attributes() map[string]string {
	attrs := map[string]string{"job_id": e.JobID}
	if e.Kind != "" {
		attrs["kind"] = e.Kind
	}
	if e.Site != "" {
		attrs["site"] = e.Site
	}
	return attrs
}
