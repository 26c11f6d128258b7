// Package notify carries advisory events out of the editing core.
// Presentation is entirely the consumer's concern.
package notify

import (
	"sync"

	"github.com/rs/zerolog"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelWarn    Level = "warn"
	LevelError   Level = "error"
	LevelSuccess Level = "success"
)

// Event is a short advisory message with an auto-dismiss hint.
type Event struct {
	Level       Level  `json:"level"`
	Message     string `json:"message"`
	AutoDismiss bool   `json:"auto_dismiss"`
}

type Notifier interface {
	Notify(ev Event)
}

func Info(n Notifier, msg string) {
	n.Notify(Event{Level: LevelInfo, Message: msg, AutoDismiss: true})
}

func Warn(n Notifier, msg string) {
	n.Notify(Event{Level: LevelWarn, Message: msg})
}

func Error(n Notifier, msg string) {
	n.Notify(Event{Level: LevelError, Message: msg})
}

func Success(n Notifier, msg string) {
	n.Notify(Event{Level: LevelSuccess, Message: msg, AutoDismiss: true})
}

// Client is one advisory-event consumer, typically an SSE connection.
type Client struct {
	Events chan Event
}

// Clients fans advisory events out to every registered consumer.
// Slow consumers drop events rather than block the session.
type Clients struct { // implements Notifier
	clients map[*Client]bool
	mu      sync.RWMutex
}

func NewClients() *Clients {
	return &Clients{
		clients: make(map[*Client]bool),
	}
}

func (c *Clients) Add(client *Client) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clients[client] = true
}

func (c *Clients) Delete(client *Client) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.clients, client)
	close(client.Events)
}

func (c *Clients) Notify(ev Event) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for client := range c.clients {
		select {
		case client.Events <- ev:
		default:
		}
	}
}

// LogNotifier writes advisory events to the service log. Used where no
// interactive consumer is attached.
type LogNotifier struct { // implements Notifier
	Logger zerolog.Logger
}

func (l LogNotifier) Notify(ev Event) {
	entry := l.Logger.Info()
	switch ev.Level {
	case LevelWarn:
		entry = l.Logger.Warn()
	case LevelError:
		entry = l.Logger.Error()
	}
	entry.Str("level", string(ev.Level)).Msg(ev.Message)
}
