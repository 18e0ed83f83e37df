package cli

import (
	"fmt"

	"github.com/yiblet/clipstash/internal/clipboard"
	"github.com/yiblet/clipstash/internal/clipboard/nativeboard"
	"github.com/yiblet/clipstash/internal/clipboard/sysboard"
	"github.com/yiblet/clipstash/internal/datadir"
	"github.com/yiblet/clipstash/internal/store"
	"github.com/yiblet/clipstash/internal/store/boltstore"
	"github.com/yiblet/clipstash/internal/store/dbstore"
	"github.com/yiblet/clipstash/internal/store/memstore"
)

// Database file names inside the data directory.
const (
	SQLiteFile = "clipstash.db"
	BoltFile   = "clipstash.bolt"
	LogFile    = "clipstash.log"
)

// OpenStore opens the KV backend named by backend inside dir.
func OpenStore(backend string, dir *datadir.Dir) (store.KV, error) {
	switch backend {
	case store.BackendSQLite, "":
		path, err := dir.Path(SQLiteFile)
		if err != nil {
			return nil, err
		}
		return dbstore.NewSQLiteStore(path)
	case store.BackendBolt:
		path, err := dir.Path(BoltFile)
		if err != nil {
			return nil, err
		}
		return boltstore.NewBoltStore(path)
	case store.BackendMemory:
		return memstore.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", backend)
	}
}

// SystemClipboard picks the helper-command clipboard when its tools are
// installed and the native clipboard otherwise.
func SystemClipboard() clipboard.Clipboard {
	if sb := sysboard.New(); sb.IsSupported() {
		return sb
	}
	return nativeboard.New()
}
