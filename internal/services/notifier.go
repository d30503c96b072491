package services

import "log"

// Notifier is the port for the one-line user notifications raised at the end
// of every composer/browser operation. Exactly one notification is emitted
// per failed operation.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type logNotifier struct{}

func NewLogNotifier() Notifier {
	return logNotifier{}
}

func (logNotifier) Success(msg string) {
	log.Printf("notice: %s", msg)
}

func (logNotifier) Error(msg string) {
	log.Printf("error: %s", msg)
}
