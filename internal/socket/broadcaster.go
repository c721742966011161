// internal/socket/broadcaster.go
package socket

// Broadcaster pushes poll events to connected viewers. Services hold it
// as a narrow interface so tests can swap in a no-op.
type Broadcaster interface {
	TallyUpdated(pollToken, jobID string, votes int)
	JobPosted(pollToken, jobID, title string)
	JobStatusChanged(pollToken, jobID, status string)
	PollClosed(pollToken string)
}

type hubBroadcaster struct {
	hub *Hub
}

// NewBroadcaster wraps a hub for use by the service layer.
func NewBroadcaster(hub *Hub) Broadcaster {
	return &hubBroadcaster{hub: hub}
}

func (b *hubBroadcaster) TallyUpdated(pollToken, jobID string, votes int) {
	b.hub.SendToPoll(pollToken, MessageTallyUpdated, map[string]interface{}{
		"jobId": jobID,
		"votes": votes,
	})
}

func (b *hubBroadcaster) JobPosted(pollToken, jobID, title string) {
	b.hub.SendToPoll(pollToken, MessageJobPosted, map[string]interface{}{
		"jobId": jobID,
		"title": title,
	})
}

func (b *hubBroadcaster) JobStatusChanged(pollToken, jobID, status string) {
	b.hub.SendToPoll(pollToken, MessageJobStatusChanged, map[string]interface{}{
		"jobId":  jobID,
		"status": status,
	})
}

func (b *hubBroadcaster) PollClosed(pollToken string) {
	b.hub.SendToPoll(pollToken, MessagePollClosed, map[string]interface{}{})
}

// NoopBroadcaster is used when no hub is running.
type NoopBroadcaster struct{}

func (NoopBroadcaster) TallyUpdated(string, string, int)        {}
func (NoopBroadcaster) JobPosted(string, string, string)        {}
func (NoopBroadcaster) JobStatusChanged(string, string, string) {}
func (NoopBroadcaster) PollClosed(string)                       {}
