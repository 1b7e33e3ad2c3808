package realtime

import "fmt"

// Topic constructors. Topics are colon-separated paths; subscriptions may
// use glob patterns with ':' as the separator, e.g. "channel:*:messages".

// ChannelMessagesTopic scopes message insert/update/delete events.
func ChannelMessagesTopic(channelID string) string {
	return fmt.Sprintf("channel:%s:messages", channelID)
}

// ChannelReactionsTopic scopes reaction add/remove events.
func ChannelReactionsTopic(channelID string) string {
	return fmt.Sprintf("channel:%s:reactions", channelID)
}

// ChannelPresenceTopic scopes presence sync/join/leave events.
func ChannelPresenceTopic(channelID string) string {
	return fmt.Sprintf("channel:%s:presence", channelID)
}

// ChannelTypingTopic scopes typing broadcasts.
func ChannelTypingTopic(channelID string) string {
	return fmt.Sprintf("channel:%s:typing", channelID)
}

// ThreadRepliesTopic scopes reply inserts under one thread root.
func ThreadRepliesTopic(rootID string) string {
	return fmt.Sprintf("thread:%s:replies", rootID)
}

// UserNotificationsTopic scopes notification fan-out for one user. This is a
// process-lifetime subscription, never torn down on channel switch.
func UserNotificationsTopic(userID string) string {
	return fmt.Sprintf("user:%s:notifications", userID)
}

// Board-wide topics, also process-lifetime.
const (
	BoardCategoriesTopic = "board:categories"
	BoardChannelsTopic   = "board:channels"

	// AllChannelMessagesTopic matches every channel's message topic. Used
	// for unread counting on channels the user is not looking at.
	AllChannelMessagesTopic = "channel:*:messages"
)
