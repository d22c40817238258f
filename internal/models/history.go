package models

import "time"

type GenerationKind string

const (
	KindText  GenerationKind = "text"
	KindImage GenerationKind = "image"
)

// AnonymousUser is recorded as the owner of history entries produced by
// endpoints that do not require a session.
const AnonymousUser = "anonymous"

// HistoryEntry is one generation request and its outcome. Entries are
// append-only; Result holds the generated text or, for images, the
// fetchable path of the stored artifact.
type HistoryEntry struct {
	ID        string
	Username  string
	Kind      GenerationKind
	Prompt    string
	Result    string
	CreatedAt time.Time
}
