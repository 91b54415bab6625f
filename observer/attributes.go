package observer

import "go.opentelemetry.io/otel/attribute"

// Attribute keys for Bot API spans and metrics.
var (
	AttrMethod     = attribute.Key("tgbot.method")
	AttrHTTPMethod = attribute.Key("http.request.method")
	AttrBodyKind   = attribute.Key("tgbot.body")
	AttrStatus     = attribute.Key("tgbot.status")
	AttrErrorCode  = attribute.Key("tgbot.error_code")
	AttrRetryAfter = attribute.Key("tgbot.retry_after_s")
	AttrResultSize = attribute.Key("tgbot.result_bytes")

	AttrUpdateID   = attribute.Key("tgbot.update_id")
	AttrUpdateKind = attribute.Key("tgbot.update_kind")
)
