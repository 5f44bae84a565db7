// Package redis keeps a transcript of the chat in Redis and publishes every
// recorded line, so several client sessions can share history.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/tehcyx/girc-client/pkg/client"
)

// MessagesChannel is the pub/sub channel every recorded entry is published on.
const MessagesChannel = "girc-client:messages"

// DefaultHistorySize is the number of entries kept per channel.
const DefaultHistorySize = 500

// statusChannel names the transcript of lines received outside any channel.
const statusChannel = "*status*"

// Store wraps the Redis client and provides transcript storage
type Store struct {
	rdb         *redis.Client
	pubsub      *redis.PubSub
	sessionID   string // session that records through this store
	historySize int64
}

// Entry is one recorded line of the conversation
type Entry struct {
	SessionID string    `json:"session_id"`
	Server    string    `json:"server"`
	Channel   string    `json:"channel"`
	User      string    `json:"user"`
	Text      string    `json:"text"`
	Type      string    `json:"type"` // user, server, private
	Timestamp time.Time `json:"timestamp"`
}

// Message converts the entry back into a displayable message.
func (e Entry) Message() client.Message {
	msgType := client.MessageServer
	switch e.Type {
	case client.MessageUser.String():
		msgType = client.MessageUser
	case client.MessagePrivate.String():
		msgType = client.MessagePrivate
	}
	return client.Message{User: e.User, Text: e.Text, Type: msgType}
}

// HistoryKey is the list holding the transcript of channel on server.
func HistoryKey(server, channel string) string {
	if channel == "" {
		channel = statusChannel
	}
	return fmt.Sprintf("history:%s:%s", server, channel)
}

// NewStore connects to Redis. historySize <= 0 uses DefaultHistorySize.
func NewStore(redisURL string, sessionID string, historySize int64) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opts)

	// Fail fast, the client runs fine without a transcript
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if historySize <= 0 {
		historySize = DefaultHistorySize
	}
	return &Store{
		rdb:         rdb,
		sessionID:   sessionID,
		historySize: historySize,
	}, nil
}

// Close closes the Redis connection
func (s *Store) Close() error {
	if s.pubsub != nil {
		if err := s.pubsub.Close(); err != nil {
			return fmt.Errorf("failed to close pubsub: %w", err)
		}
	}
	return s.rdb.Close()
}

// Append records an entry, trims the transcript to the history size and
// publishes the entry.
func (s *Store) Append(ctx context.Context, entry Entry) error {
	entry.SessionID = s.sessionID
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	key := HistoryKey(entry.Server, entry.Channel)

	pipe := s.rdb.Pipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, s.historySize-1)
	pipe.Publish(ctx, MessagesChannel, data)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append entry: %w", err)
	}
	return nil
}

// Recent returns up to n entries of the transcript, oldest first.
func (s *Store) Recent(ctx context.Context, server, channel string, n int64) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}
	raw, err := s.rdb.LRange(ctx, HistoryKey(server, channel), 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	// the list is newest first
	for i := len(raw) - 1; i >= 0; i-- {
		var entry Entry
		if err := json.Unmarshal([]byte(raw[i]), &entry); err != nil {
			log.Warnf("Skipping unreadable history entry in %s: %v", HistoryKey(server, channel), err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Subscribe delivers entries recorded by other sessions until ctx is done.
func (s *Store) Subscribe(ctx context.Context) (<-chan *Entry, error) {
	s.pubsub = s.rdb.Subscribe(ctx, MessagesChannel)

	// Wait for subscription confirmation
	if _, err := s.pubsub.Receive(ctx); err != nil {
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	entries := make(chan *Entry)

	go func() {
		defer close(entries)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-s.pubsub.Channel():
				if !ok {
					return
				}
				if msg == nil {
					continue
				}
				var entry Entry
				if err := json.Unmarshal([]byte(msg.Payload), &entry); err != nil {
					log.Debugf("Ignoring malformed transcript entry: %v", err)
					continue
				}
				if entry.SessionID == s.sessionID {
					continue
				}
				select {
				case entries <- &entry:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return entries, nil
}

// Recorder returns a message handler that appends every message to the
// transcript of the channel reported by channel at that moment. Append
// failures are logged only, losing the transcript must not affect the chat.
func (s *Store) Recorder(ctx context.Context, server string, channel func() string) func(client.Message) error {
	return func(msg client.Message) error {
		err := s.Append(ctx, Entry{
			Server:  server,
			Channel: channel(),
			User:    msg.User,
			Text:    msg.Text,
			Type:    msg.Type.String(),
		})
		if err != nil {
			log.Warnf("Transcript not recorded: %v", err)
		}
		return nil
	}
}
