package models

import "time"

// StorageObject is one entry of the object-storage bucket. Its identity is
// the object name and is unrelated to backend FileRecords.
type StorageObject struct {
	Name      string          `json:"name"`
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Metadata  *ObjectMetadata `json:"metadata,omitempty"`
}

type ObjectMetadata struct {
	Size     int64  `json:"size"`
	Mimetype string `json:"mimetype"`
}

// Size reports the object size, or 0 when the listing carried no metadata.
func (o StorageObject) Size() int64 {
	if o.Metadata == nil {
		return 0
	}
	return o.Metadata.Size
}

// SignedURL is a time-limited read capability for one StorageObject.
// It is never reused across preview sessions.
type SignedURL struct {
	URL       string
	ExpiresAt time.Time
}

// ActiveView selects the top-level screen.
type ActiveView string

const (
	ViewDocuments ActiveView = "documents"
	ViewStorage   ActiveView = "viewDocuments"
)

func (v ActiveView) Valid() bool {
	return v == ViewDocuments || v == ViewStorage
}
