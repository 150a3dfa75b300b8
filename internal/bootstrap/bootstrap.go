package bootstrap

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	deviceinadapter "serene/internal/modules/device/adapter/in"
	deviceoutadapter "serene/internal/modules/device/adapter/out"
	deviceservice "serene/internal/modules/device/service"
	deviceusecase "serene/internal/modules/device/usecase"
	journalinadapter "serene/internal/modules/journal/adapter/in"
	journaloutadapter "serene/internal/modules/journal/adapter/out"
	journalservice "serene/internal/modules/journal/service"
	journalusecase "serene/internal/modules/journal/usecase"
	progressinadapter "serene/internal/modules/progress/adapter/in"
	progressoutadapter "serene/internal/modules/progress/adapter/out"
	progressout "serene/internal/modules/progress/port/out"
	progressservice "serene/internal/modules/progress/service"
	progressusecase "serene/internal/modules/progress/usecase"
	sessioninadapter "serene/internal/modules/session/adapter/in"
	sessionoutadapter "serene/internal/modules/session/adapter/out"
	sessionin "serene/internal/modules/session/port/in"
	sessionout "serene/internal/modules/session/port/out"
	sessionservice "serene/internal/modules/session/service"
	sessionusecase "serene/internal/modules/session/usecase"
	themeinadapter "serene/internal/modules/theme/adapter/in"
	themedomain "serene/internal/modules/theme/domain"
	themeusecase "serene/internal/modules/theme/usecase"
	"serene/internal/platform/clock"
	"serene/internal/platform/config"
	"serene/internal/platform/id"
	"serene/internal/platform/logging"
	uiapp "serene/internal/ui/app"
)

type App struct {
	ThemeCLI    themeinadapter.CLIHandler
	SessionCLI  sessioninadapter.CLIHandler
	SessionTUI  sessioninadapter.TUIHandler
	ProgressCLI progressinadapter.CLIHandler
	JournalCLI  journalinadapter.CLIHandler
	DeviceCLI   deviceinadapter.CLIHandler

	session sessionin.Usecase
	haptics *sessionoutadapter.DeviceHaptics
	device  interface{ Close() error }
	kv      interface{ Close() error }
}

// New wires every module for cfg. Persistence problems degrade to in-memory
// state and are logged; they never stop the app from starting.
func New(cfg config.Config, logger hclog.Logger) (*App, error) {
	ctx := context.Background()
	logger = logging.OrNull(logger)
	clk := clock.SystemClock{}

	themeUC := themeusecase.NewInteractor()

	var kv progressout.KeyValueStore
	var kvCloser interface{ Close() error }
	sqliteKV, err := progressoutadapter.NewSQLiteKVStore(cfg.DBPath)
	if err != nil {
		logger.Warn("progress database unavailable, keeping progress in memory", "path", cfg.DBPath, "error", err)
		kv = progressoutadapter.NewMemoryKVStore()
	} else {
		kv, kvCloser = sqliteKV, sqliteKV
	}
	progressSvc := progressservice.NewProgressService(kv, progressoutadapter.NewThemeCatalogAdapter(themeUC), clk, logger)
	if err := progressSvc.Load(ctx); err != nil {
		logger.Warn("starting with empty progress", "error", err)
	}
	progressUC := progressusecase.NewInteractor(progressSvc, clk)

	journalSvc := journalservice.NewJournalService(journaloutadapter.NewVaultEntryStore(cfg.JournalPath, logger), logger)
	if err := journalSvc.Load(ctx); err != nil {
		logger.Warn("starting with empty journal", "error", err)
	}
	journalUC := journalusecase.NewInteractor(journalSvc, themeUC, clk, id.UUID{})

	deviceUC := deviceusecase.NewInteractor(deviceservice.NewDeviceService(
		deviceoutadapter.NewFileManifestStore(cfg.PluginsPath),
		deviceoutadapter.NewGRPCHost(logger),
		logger,
	))
	haptics := sessionoutadapter.NewDeviceHaptics(deviceUC, cfg.HapticsPlugin, logger)

	var audio sessionout.AudioEngine = sessionoutadapter.NullEngine{}
	if cfg.AudioEnabled {
		audio = sessionoutadapter.NewBeepEngine(cfg.SoundsPath, logger)
	}

	startTheme, ok := themedomain.Find(cfg.DefaultTheme)
	if !ok {
		logger.Warn("unknown default theme, using the first catalog theme", "theme", cfg.DefaultTheme)
		startTheme = themedomain.Default()
	}
	controller := sessionservice.NewController(audio, haptics, startTheme, cfg.DefaultIntensity, logger)
	sessionUC := sessionusecase.NewInteractor(controller, sessionservice.NewCountdown(), progressUC, clk, cfg.DefaultDuration, logger)

	return &App{
		ThemeCLI:    themeinadapter.NewCLIHandler(themeUC),
		SessionCLI:  sessioninadapter.NewCLIHandler(sessionUC),
		SessionTUI:  sessioninadapter.NewTUIHandler(sessionUC),
		ProgressCLI: progressinadapter.NewCLIHandler(progressUC),
		JournalCLI:  journalinadapter.NewCLIHandler(journalUC),
		DeviceCLI:   deviceinadapter.NewCLIHandler(deviceUC),
		session:     sessionUC,
		haptics:     haptics,
		device:      deviceUC,
		kv:          kvCloser,
	}, nil
}

// Close stops playback, waits for in-flight pulses, then shuts down driver
// processes and the database.
func (a *App) Close() error {
	var errs []error
	if err := a.session.Close(); err != nil {
		errs = append(errs, err)
	}
	a.haptics.Wait()
	if err := a.device.Close(); err != nil {
		errs = append(errs, err)
	}
	if a.kv != nil {
		if err := a.kv.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.SessionTUI, app.ThemeCLI, app.ProgressCLI, app.JournalCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
