// internal/pkg/notify/notify.go
package notify

import "github.com/sirupsen/logrus"

// Notifier emits transient user-facing feedback messages.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// LogNotifier writes notifications to the application logger.
type LogNotifier struct {
	logger *logrus.Logger
}

// NewLogNotifier creates a logger-backed notifier.
func NewLogNotifier(logger *logrus.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Success logs a success notification.
func (n *LogNotifier) Success(message string) {
	n.logger.WithField("notification", "success").Info(message)
}

// Error logs an error notification.
func (n *LogNotifier) Error(message string) {
	n.logger.WithField("notification", "error").Warn(message)
}

// Notification is a single recorded feedback message.
type Notification struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Recorder collects notifications so the HTTP layer can attach them to the
// response for the storefront to display. Also used by tests.
type Recorder struct {
	Notifications []Notification
}

// NewRecorder creates an empty notification recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Success records a success notification.
func (r *Recorder) Success(message string) {
	r.Notifications = append(r.Notifications, Notification{Level: "success", Message: message})
}

// Error records an error notification.
func (r *Recorder) Error(message string) {
	r.Notifications = append(r.Notifications, Notification{Level: "error", Message: message})
}

// Messages returns the recorded messages in order.
func (r *Recorder) Messages() []string {
	out := make([]string, len(r.Notifications))
	for i, n := range r.Notifications {
		out[i] = n.Message
	}
	return out
}
