package redisx

import "time"

const (
	// Session hash: sess:{session_id} -> field per session key (cart, wishlist, user_email, ...)
	KeySession = "sess:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLSession = 7 * 24 * time.Hour
	TTLDedup   = 48 * time.Hour
)
