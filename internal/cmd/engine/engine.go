// Package engine parses engine command flags and runs the replay pipeline.
package engine

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/doshidak/calcdex/internal/battle/session"
	"github.com/doshidak/calcdex/internal/dex"
	"github.com/doshidak/calcdex/internal/format"
	entrypoint "github.com/doshidak/calcdex/internal/platform/cmd"
	"github.com/doshidak/calcdex/internal/preset/storage"
	"github.com/doshidak/calcdex/internal/preset/storage/memory"
	"github.com/doshidak/calcdex/internal/preset/storage/sqlite"
)

// maxObservationBytes bounds a single observation line. Feed lines are
// small; anything past this is a corrupt stream.
const maxObservationBytes = 1 << 20

// Config holds engine command configuration.
type Config struct {
	Format      string `env:"CALCDEX_ENGINE_FORMAT" envDefault:"gen9ou"`
	Battle      string `env:"CALCDEX_ENGINE_BATTLE" envDefault:"battle-1"`
	Input       string `env:"CALCDEX_ENGINE_INPUT"`
	PresetCache string `env:"CALCDEX_ENGINE_PRESET_CACHE"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Format, "format", cfg.Format, "The battle format identifier, e.g. gen9ou")
	fs.StringVar(&cfg.Battle, "battle", cfg.Battle, "The battle identifier attached to snapshots")
	fs.StringVar(&cfg.Input, "input", cfg.Input, "The observation stream file (defaults to stdin)")
	fs.StringVar(&cfg.PresetCache, "preset-cache", cfg.PresetCache, "The sqlite preset cache path (defaults to in-memory)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run replays the configured observation stream through a battle session.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceEngine, func(ctx context.Context) error {
		in := io.Reader(os.Stdin)
		if cfg.Input != "" {
			f, err := os.Open(cfg.Input)
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			defer f.Close()
			in = f
		}
		return Replay(ctx, cfg, in, os.Stdout)
	})
}

// Replay feeds newline-delimited JSON observations from in through a single
// session, in arrival order, and writes each published snapshot to out as a
// JSON line. Malformed lines are logged and skipped.
func Replay(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	f, err := format.Parse(cfg.Format)
	if err != nil {
		return err
	}

	var backend storage.Backend
	if cfg.PresetCache != "" {
		b, err := sqlite.Open(cfg.PresetCache)
		if err != nil {
			return fmt.Errorf("open preset cache: %w", err)
		}
		backend = b
	} else {
		backend = memory.New()
	}
	store := storage.NewStore(backend, nil)
	defer store.Close()

	s := session.New(cfg.Battle, f, dex.New(), store, log.Default())
	defer s.Close()

	enc := json.NewEncoder(out)
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxObservationBytes)

	line := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var obs session.Observation
		if err := json.Unmarshal(raw, &obs); err != nil {
			log.Printf("line %d: skipping malformed observation: %v", line, err)
			continue
		}
		snapshot, changed := s.Apply(ctx, obs)
		if !changed {
			continue
		}
		if err := enc.Encode(snapshot); err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
	}
	return scanner.Err()
}
