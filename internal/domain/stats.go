package domain

// SessionStats summarises the running session.
type SessionStats struct {
	Peers        int   `json:"peers"`
	Messages     int   `json:"messages"`
	TextMessages int   `json:"text_messages"`
	FileMessages int   `json:"file_messages"`
	StoredFiles  int   `json:"stored_files"`
	StoredBytes  int64 `json:"stored_bytes"`
}
