package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alltabs/alltabsd/internal/coordinator"
	"github.com/alltabs/alltabsd/internal/logger"
	"github.com/alltabs/alltabsd/internal/session"
	"github.com/alltabs/alltabsd/internal/store"
)

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	Coordinator    *coordinator.Coordinator // mutation + view entry point
	Store          *store.Store             // read-only status introspection
	Gate           *session.Gate            // session state for /api/session
	Notifications  *coordinator.Ring        // transient messages for the UI to poll
	RedisClient    *redis.Client            // nil when the snapshot cache is disabled
	RefreshTrigger chan struct{}            // channel to trigger a manual refresh
	AllowedOrigins []string                 // origins allowed to call the API (CORS)
	BackendURL     string                   // remote backend base URL, for status reporting
}
