package services

import "log"

// Notifier surfaces localized user-facing messages. Message keys (e.g.
// "error.phone.notvalid") are resolved by the hosting application's
// translation layer; this service only emits the keys.
type Notifier interface {
	Notify(messageKey string)
}

// LogNotifier writes message keys to the process log. Used when no
// flash-message sink is wired in.
type LogNotifier struct{}

func (LogNotifier) Notify(messageKey string) {
	log.Printf("⚠️  User notification: %s", messageKey)
}
