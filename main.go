// main.go
//
// Process wiring for NovaTap.
// Responsibilities:
//   - Load .env and configure zerolog. The log writer goes to a file
//     (NOVATAP_LOG_FILE) or is discarded entirely: stderr belongs to the
//     terminal UI.
//   - Open the SQLite leaderboard store; fall back to the in-memory store
//     if the file cannot be opened, so gameplay never depends on disk.
//   - Run the terminal UI until the player quits.

package main

import (
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/novatap/internal/leaderboard"
	"github.com/robalobadob/novatap/internal/tui"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	closeLog := setupLogWriter()
	defer closeLog()

	dbPath := getEnv("NOVATAP_DB", "data/novatap.db")
	store, err := leaderboard.NewSQLiteStore(dbPath)
	if err != nil {
		log.Warn().Err(err).Str("path", dbPath).Msg("leaderboard db unavailable, scores won't persist")
		store = leaderboard.NewMemoryStore()
	}
	defer store.Close()

	if err := tui.Run(store); err != nil {
		// The screen is down by now, stderr is safe again.
		os.Stderr.WriteString("novatap: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// setupLogWriter points the global logger at NOVATAP_LOG_FILE, or
// discards output when unset. Returns a cleanup func.
func setupLogWriter() func() {
	path := os.Getenv("NOVATAP_LOG_FILE")
	if path == "" {
		log.Logger = zerolog.New(io.Discard)
		return func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Logger = zerolog.New(io.Discard)
		return func() {}
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { _ = f.Close() }
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
