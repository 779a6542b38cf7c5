// Package notify carries user-facing notifications and change events out
// of the client stores. Rendering is up to the front end.
package notify

// Notifier shows short messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Discard drops every notification.
type Discard struct{}

func (Discard) Success(string) {}
func (Discard) Error(string)   {}
