package slack

var (
	BuildMessage       = buildMessage
	TruncateToMaxBytes = truncateToMaxBytes
)
