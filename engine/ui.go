/*
ui.go - UI preference and notification state

Theme is the only durable preference; anything unexpected in the store
degrades to light. Notifications are in-memory only.
*/
package engine

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// THEME
// =============================================================================

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Theme returns the current theme preference.
func (e *Engine) Theme() Theme {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ui.theme
}

// SetTheme sets and persists the theme. Unknown values are ignored.
func (e *Engine) SetTheme(t Theme) {
	if t != ThemeLight && t != ThemeDark {
		return
	}
	e.mu.Lock()
	e.ui.theme = t
	e.kv.Set(KeyTheme, string(t))
	e.mu.Unlock()
}

// ToggleTheme flips between light and dark and persists the result.
func (e *Engine) ToggleTheme() Theme {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ui.theme == ThemeLight {
		e.ui.theme = ThemeDark
	} else {
		e.ui.theme = ThemeLight
	}
	e.kv.Set(KeyTheme, string(e.ui.theme))
	return e.ui.theme
}

func (e *Engine) loadTheme() {
	if raw, ok := e.kv.Get(KeyTheme); ok {
		if t := Theme(raw); t == ThemeLight || t == ThemeDark {
			e.ui.theme = t
		}
	}
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

type NotificationType string

const (
	NotifySuccess NotificationType = "success"
	NotifyError   NotificationType = "error"
	NotifyInfo    NotificationType = "info"
	NotifyWarning NotificationType = "warning"
)

// Notification is a transient message for the UI to render.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	Timestamp time.Time
	Read      bool
}

type uiState struct {
	theme         Theme
	notifications []Notification
}

// Notifications returns a copy of the notification list.
func (e *Engine) Notifications() []Notification {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]Notification(nil), e.ui.notifications...)
}

// AddNotification appends a notification and returns its generated id.
func (e *Engine) AddNotification(kind NotificationType, message string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := Notification{
		ID:        uuid.NewString(),
		Type:      kind,
		Message:   message,
		Timestamp: e.now(),
	}
	e.ui.notifications = append(e.ui.notifications, n)
	return n.ID
}

// MarkNotificationRead marks the notification with the given id as read.
func (e *Engine) MarkNotificationRead(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.ui.notifications {
		if e.ui.notifications[i].ID == id {
			e.ui.notifications[i].Read = true
			return
		}
	}
}

// RemoveNotification drops the notification with the given id.
func (e *Engine) RemoveNotification(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	kept := e.ui.notifications[:0]
	for _, n := range e.ui.notifications {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	e.ui.notifications = kept
}

// ClearNotifications drops every notification.
func (e *Engine) ClearNotifications() {
	e.mu.Lock()
	e.ui.notifications = nil
	e.mu.Unlock()
}
