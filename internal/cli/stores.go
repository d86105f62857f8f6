package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/driftkit/sway/pkg/adapters/file"
	"github.com/driftkit/sway/pkg/adapters/memory"
	redisadapter "github.com/driftkit/sway/pkg/adapters/redis"
	"github.com/driftkit/sway/pkg/persistence/middleware"
	"github.com/driftkit/sway/pkg/ports"
)

// StoreOptions selects and configures a snapshot backend.
type StoreOptions struct {
	Backend string // "memory", "file", or "redis"
	Dir     string // file backend: base directory
	Redis   string // redis backend: address host:port

	// EncryptionKey is a hex-encoded 32-byte key. When set, snapshots are
	// sealed before they reach the backend.
	EncryptionKey string

	// RedactPatterns are regexps; matching item labels are masked before
	// persistence.
	RedactPatterns []string
}

// BuildStore constructs the snapshot store described by opts, wrapped in the
// requested middlewares. The returned closer releases backend resources.
func BuildStore(opts StoreOptions) (ports.SnapshotStore, func() error, error) {
	var store ports.SnapshotStore
	closer := func() error { return nil }

	switch opts.Backend {
	case "", "memory":
		store = memory.NewStore()
	case "file":
		store = file.New(opts.Dir)
	case "redis":
		if opts.Redis == "" {
			return nil, nil, fmt.Errorf("redis backend requires an address")
		}
		rs := redisadapter.New(opts.Redis, "", 0)
		store = rs
		closer = rs.Close
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}

	var mws []middleware.Middleware
	if len(opts.RedactPatterns) > 0 {
		mws = append(mws, middleware.NewRedactMiddleware(opts.RedactPatterns))
	}
	if opts.EncryptionKey != "" {
		key, err := hex.DecodeString(opts.EncryptionKey)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid encryption key: %w", err)
		}
		if len(key) != 32 {
			return nil, nil, fmt.Errorf("encryption key must be 32 bytes, got %d", len(key))
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}))
	}

	return middleware.Chain(store, mws...), closer, nil
}
