package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tanno-Finn/pockethero-3/internal/data"
	"github.com/Tanno-Finn/pockethero-3/internal/domain"
	"github.com/Tanno-Finn/pockethero-3/internal/engine"
	"github.com/Tanno-Finn/pockethero-3/internal/eventbus"
	"github.com/Tanno-Finn/pockethero-3/internal/infrastructure/storage"
	"github.com/Tanno-Finn/pockethero-3/internal/server"
	"github.com/Tanno-Finn/pockethero-3/internal/version"
	"github.com/Tanno-Finn/pockethero-3/pkg/logger"
	"github.com/Tanno-Finn/pockethero-3/pkg/utils"
)

func init() {
	logger.Init()
}

func main() {
	var configPath string
	var seed int64
	var journalDump string
	flag.StringVar(&configPath, "config", "", "Path to YAML config (or PH_CONFIG env)")
	flag.Int64Var(&seed, "seed", 0, "World seed (0 for random)")
	flag.StringVar(&journalDump, "journal-dump", "", "Path to .phej journal to inspect and exit")
	flag.Parse()

	logger.Log.Info("Starting Pockethero server...")
	logger.Log.Info(version.String())

	// Режим инспекции журнала
	if journalDump != "" {
		dumpJournal(journalDump)
		return
	}

	cfg, err := engine.LoadConfig(configPath)
	if err != nil {
		logger.Log.Fatal("Failed to load config:", err)
	}
	if cfg == nil {
		cfg = &engine.Config{}
	}
	if seed != 0 {
		cfg.World.Seed = seed
	}
	if cfg.World.Seed == 0 {
		cfg.World.Seed = utils.NewSeed()
	}
	logger.Log.Infof("Using world seed: %d", cfg.World.Seed)

	zones, interactions, defaultZone, spawn := buildWorld(cfg)

	session, err := engine.NewSession(zones, interactions, defaultZone, cfg.World.Seed, cfg.Events.GetLogCapacity())
	if err != nil {
		logger.Log.Fatal("Failed to create session:", err)
	}
	session.Bus.AttachMetrics(eventbus.NewMetrics())

	if _, err := session.SpawnPlayer("Герой", spawn); err != nil {
		logger.Log.Fatal("Failed to spawn player:", err)
	}

	service := engine.NewService(session, cfg.World.GetTickRate())
	hub := server.NewHub()
	service.SetBroadcaster(hub)
	service.Start()

	srv := server.New(service, hub, cfg.Server.GetPort())
	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error:", err)
		}
	}()

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Warn("HTTP shutdown failed")
	}

	service.Stop()

	// Сбрасываем журнал событий сессии на диск
	if dir := cfg.Events.JournalDir; dir != "" {
		journal := storage.NewJournalService(dir)
		path, err := journal.Save(cfg.World.Seed, session.Bus.Log())
		if err != nil {
			logger.Log.WithError(err).Warn("Failed to save event journal")
		} else {
			logger.Log.WithField("path", path).Info("Event journal saved")
		}
	}

	logger.Log.Info("Done.")
}

// buildWorld собирает зоны: из каталога данных, если он задан и несет
// хоть одну зону, иначе встроенный мир по умолчанию
func buildWorld(cfg *engine.Config) (map[string]*domain.Zone, []*domain.Interaction, string, domain.Position) {
	if dir := cfg.World.GetDataDir(); dir != "" {
		loader := data.NewLoader(dir)
		n := loader.LoadAll()
		if loader.HasZones() {
			logger.Log.WithField("documents", n).WithField("dir", dir).Info("World loaded from data")
			zones := loader.BuildZones()
			defaultZone := loader.ZoneIDs()[0]
			return zones, loader.Interactions(), defaultZone, domain.Position{X: 1, Y: 1}
		}
		logger.Log.WithField("dir", dir).Warn("Data directory has no zones, using default world")
	}

	zones, interactions := engine.BuildDefaultWorld(cfg.World.Seed)
	return zones, interactions, engine.DefaultZoneID, engine.DefaultSpawn
}

func dumpJournal(path string) {
	j, err := storage.NewJournalService(".").Load(path)
	if err != nil {
		logger.Log.Fatal("Failed to load journal:", err)
	}
	logger.Log.WithField("seed", j.Seed).WithField("events", len(j.Events)).Info("Journal loaded")
	for _, ev := range j.Events {
		logger.Log.WithField("seq", ev.Seq).WithField("type", ev.Type).
			WithField("at", ev.At.Format(time.RFC3339Nano)).Info("event")
	}
}
