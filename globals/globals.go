package globals

// Context keys
type ContextKey string

const SessionKey ContextKey = "session"

// SessionCookie names the cookie that ties a browser to its unfinished draft.
const SessionCookie = "yatra_session"
