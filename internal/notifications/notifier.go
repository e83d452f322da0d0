package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"strconv"

	"quill/internal/middleware"

	"github.com/redis/go-redis/v9"
)

const (
	userChannelPrefix = "notifications:user:"
	broadcastChannel  = "notifications:broadcast"
)

// Event is the wire shape of every websocket notification.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Notifier publishes notifications into Redis channels so they reach
// every server instance's hub. A nil Redis client disables delivery.
type Notifier struct {
	rdb *redis.Client
}

func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// NotifyNewFollower tells an author that follower started following them.
func (n *Notifier) NotifyNewFollower(ctx context.Context, authorID uint, followerUsername string) error {
	return n.publishUser(ctx, authorID, Event{
		Type:    "new_follower",
		Payload: map[string]string{"username": followerUsername},
	})
}

// NotifyPostPublished hints every connected client that the home feed
// has new content.
func (n *Notifier) NotifyPostPublished(ctx context.Context, postID uint, authorUsername string) error {
	return n.publishBroadcast(ctx, Event{
		Type:    "post_published",
		Payload: map[string]interface{}{"post_id": postID, "username": authorUsername},
	})
}

func (n *Notifier) publishUser(ctx context.Context, userID uint, event Event) error {
	if n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return n.rdb.Publish(ctx, UserChannel(userID), payload).Err()
}

func (n *Notifier) publishBroadcast(ctx context.Context, event Event) error {
	if n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return n.rdb.Publish(ctx, broadcastChannel, payload).Err()
}

// StartPatternSubscriber subscribes to the user and broadcast channels
// and calls onMessage for each incoming message.
func (n *Notifier) StartPatternSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, userChannelPrefix+"*", broadcastChannel)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("panic in notification subscriber",
								"panic", r, "stack", string(debug.Stack()))
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}

// UserChannel derives the Redis channel name for a user.
func UserChannel(userID uint) string {
	return userChannelPrefix + strconv.FormatUint(uint64(userID), 10)
}
