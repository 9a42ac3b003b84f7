// Command vcrplay plays back recorded space battles: locally against the
// built-in sample fight or an archived recording, as a websocket event
// service hosting a session, or as a viewer connected to one.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"stellarsiege/client/internal/config"
	"stellarsiege/client/internal/dispatch"
	"stellarsiege/client/internal/game"
	"stellarsiege/client/internal/instructionlist"
	"stellarsiege/client/internal/logging"
	"stellarsiege/client/internal/playback"
	"stellarsiege/client/internal/proxy"
	"stellarsiege/client/internal/replayfile"
	"stellarsiege/client/internal/transport"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a TOML configuration file")
		mode       = flag.String("mode", "local", "local, serve, or connect")
		serviceURL = flag.String("url", "ws://127.0.0.1:43311/events", "event service URL for -mode connect")
		replayPath = flag.String("replay", "", "play an archived recording instead of the sample battle")
		saveReplay = flag.Bool("save-replay", false, "archive the sample battle and exit")
		index      = flag.Int("battle", 0, "battle index to play")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *saveReplay {
		if err := archiveSample(cfg, logger); err != nil {
			logger.Fatal("archiving failed", zap.Error(err))
		}
		return
	}

	session, err := buildSession(logger, *replayPath)
	if err != nil {
		logger.Fatal("session setup failed", zap.Error(err))
	}

	switch *mode {
	case "local":
		runLocal(cfg, logger, session, *index)
	case "serve":
		runServe(cfg, logger, session)
	case "connect":
		runConnect(cfg, logger, *serviceURL, *index)
	default:
		logger.Fatal("unknown mode", zap.String("mode", *mode))
	}
}

func archiveSample(cfg *config.Config, logger *zap.Logger) error {
	b, err := game.RecordBattle(game.SampleBattle)
	if err != nil {
		return err
	}
	dir, manifest, err := replayfile.Save(cfg.Replay.Dir, "sample-battle", b.Tape())
	if err != nil {
		return err
	}
	logger.Info("recording archived", zap.String("dir", dir), zap.String("id", manifest.ID))
	return nil
}

func buildSession(logger *zap.Logger, replayPath string) (*game.Session, error) {
	session := game.NewSession(logger)
	if replayPath != "" {
		list, manifest, err := replayfile.Load(replayPath)
		if err != nil {
			return nil, err
		}
		session.AddBattle(game.LoadBattle(list))
		logger.Info("recording loaded", zap.String("id", manifest.ID), zap.String("name", manifest.Name))
		return session, nil
	}
	b, err := game.RecordBattle(game.SampleBattle)
	if err != nil {
		return nil, err
	}
	session.AddBattle(b)
	return session, nil
}

// runLocal hosts the session in-process and plays on the terminal.
func runLocal(cfg *config.Config, logger *zap.Logger, session *game.Session, index int) {
	gameDisp := dispatch.NewQueueDispatcher()
	receiver := dispatch.NewReceiver(gameDisp, session)
	defer receiver.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go gameDisp.Run(ctx)

	ui := dispatch.NewQueueDispatcher()
	var controller *playback.Controller
	player := proxy.NewPlayerProxy(ui, receiver.Sender(), func(list *instructionlist.StringInstructionList, finish bool) {
		controller.HandleEvents(list, finish)
	})
	defer player.Close()

	controller = newController(cfg, logger, player, ui)
	player.RequestInit(index)
	ui.RunUntil(func() bool { return controller.State() == playback.Finished })
	logger.Info("playback finished", zap.Int32("time", controller.CurrentTime()))
}

// runServe hosts the session behind the websocket event service.
func runServe(cfg *config.Config, logger *zap.Logger, session *game.Session) {
	gameDisp := dispatch.NewQueueDispatcher()
	receiver := dispatch.NewReceiver(gameDisp, session)
	defer receiver.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go gameDisp.Run(ctx)

	mux := http.NewServeMux()
	mux.Handle("/events", transport.NewServer(logger, receiver.Sender(), cfg.Transport))
	logger.Info("event service listening", zap.String("addr", cfg.Transport.Address))
	if err := http.ListenAndServe(cfg.Transport.Address, mux); err != nil {
		logger.Fatal("event service failed", zap.Error(err))
	}
}

// runConnect plays a battle hosted by a remote event service.
func runConnect(cfg *config.Config, logger *zap.Logger, serviceURL string, index int) {
	ui := dispatch.NewQueueDispatcher()
	var controller *playback.Controller
	client, err := transport.Dial(context.Background(), serviceURL, ui,
		func(list *instructionlist.StringInstructionList, finish bool) {
			controller.HandleEvents(list, finish)
		}, logger)
	if err != nil {
		logger.Fatal("connect failed", zap.Error(err))
	}
	defer client.Close()

	controller = newController(cfg, logger, client, ui)
	client.RequestInit(index)
	ui.RunUntil(func() bool { return controller.State() == playback.Finished })
	logger.Info("playback finished", zap.Int32("time", controller.CurrentTime()))
}

func newController(cfg *config.Config, logger *zap.Logger, producer playback.Producer, ui *dispatch.QueueDispatcher) *playback.Controller {
	renderer := newTextRenderer(os.Stdout)
	return playback.NewController(playback.Config{
		BufferTime:          cfg.Playback.BufferTime,
		TickInterval:        cfg.Playback.TickInterval,
		TicksPerBattleCycle: cfg.Playback.TicksPerBattleCycle,
		Scheduler:           cfg.Playback.Scheduler,
	}, logger, renderer, playback.NewUnitStatusModel(), playback.NewUnitStatusModel(), producer,
		func(fn func()) playback.Timer { return playback.NewTimer(ui, fn) })
}
