package models

// AuthUser is the administrator identity returned by the backend on login
// and on session verification.
type AuthUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email"`
}

// DisplayName prefers the full name and falls back to the username.
func (u AuthUser) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// PhotoStats is an aggregate over the admin-visible collection. It is
// computed by the backend and only ever replaced as a whole on the client.
type PhotoStats struct {
	TotalPhotos     int64   `json:"totalPhotos"`
	TotalSize       int64   `json:"totalSize"`
	ThisMonthPhotos int64   `json:"thisMonthPhotos"`
	AverageSize     float64 `json:"averageSize"`
}
