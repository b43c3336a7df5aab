package app

import (
	"context"
	"fmt"
	"time"

	"conductor/internal/api"
	"conductor/internal/bridge"
	"conductor/internal/catalog"
	"conductor/internal/config"
	"conductor/internal/engine"
	"conductor/internal/manifest"
	"conductor/internal/mcpserver"
	"conductor/internal/strategy"
	"conductor/pkg/logging"

	"golang.org/x/sync/errgroup"
)

// Application wires the manifest, the engine, the orchestrator and the MCP
// surface together for the serve command.
type Application struct {
	cfg          config.ConductorConfig
	engine       *engine.Engine
	orchestrator *strategy.Orchestrator
	bridge       *bridge.StdioClient
	server       *mcpserver.Server
}

// Build constructs the full application from configuration. Handlers and
// checkers come from the configured tool bridge; when no bridge command is
// configured the manifest must declare no handler references, since the
// engine's wiring check would otherwise fail here.
func Build(ctx context.Context, cfg config.ConductorConfig, version string) (*Application, error) {
	m, err := manifest.Load(cfg.Manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	directory, err := catalog.New(m)
	if err != nil {
		return nil, err
	}

	app := &Application{cfg: cfg}

	handlers := map[string]api.Handler{}
	checkers := map[string]api.Checker{}
	if cfg.Bridge.Command != "" {
		client := bridge.NewStdioClient(cfg.Bridge.Command, cfg.Bridge.Args, cfg.Bridge.Env)
		if err := client.Initialize(ctx); err != nil {
			return nil, fmt.Errorf("failed to initialize tool bridge: %w", err)
		}
		app.bridge = client

		bindings := bridge.Bindings{Handlers: cfg.Bridge.Handlers, Checkers: cfg.Bridge.Checkers}
		handlers = bridge.HandlerMap(client, handlerRefs(directory), bindings)
		checkers = bridge.CheckerMap(client, checkerRefs(directory), bindings)
	}

	eng, err := engine.New(directory, handlers, checkers)
	if err != nil {
		app.Close()
		return nil, err
	}
	eng.SetDefaultTimeout(time.Duration(cfg.Engine.DefaultTimeout))

	app.engine = eng
	app.orchestrator = strategy.New(eng)
	app.server = mcpserver.New(eng, app.orchestrator, version)

	name, _ := directory.Application()
	logging.Info("App", "Built application %s with %d capabilities", name, len(directory.Capabilities()))
	return app, nil
}

// Run serves MCP over stdio and watches the manifest for changes until the
// context is cancelled.
func (a *Application) Run(ctx context.Context) error {
	watcher := manifest.NewWatcher(a.cfg.Manifest, a.reloadManifest)
	if err := watcher.Start(); err != nil {
		logging.Warn("App", "Manifest watching disabled: %v", err)
	} else {
		defer watcher.Stop()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.server.ServeStdio(ctx)
	})
	return g.Wait()
}

// reloadManifest re-reads the manifest and swaps it into the engine. Any
// load or wiring error keeps the previous directory in place.
func (a *Application) reloadManifest() {
	m, err := manifest.Load(a.cfg.Manifest)
	if err != nil {
		logging.Error("App", err, "Manifest reload failed, keeping previous catalog")
		return
	}
	directory, err := catalog.New(m)
	if err != nil {
		logging.Error("App", err, "Manifest reload failed, keeping previous catalog")
		return
	}
	if a.bridge != nil {
		// New manifests may reference tools the previous one did not.
		bindings := bridge.Bindings{Handlers: a.cfg.Bridge.Handlers, Checkers: a.cfg.Bridge.Checkers}
		for ref, handler := range bridge.HandlerMap(a.bridge, handlerRefs(directory), bindings) {
			a.engine.RegisterHandler(ref, handler)
		}
		for ref, checker := range bridge.CheckerMap(a.bridge, checkerRefs(directory), bindings) {
			a.engine.RegisterChecker(ref, checker)
		}
	}
	if err := a.engine.Reload(directory); err != nil {
		logging.Error("App", err, "Manifest reload rejected, keeping previous catalog")
	}
}

// Engine exposes the built execution engine.
func (a *Application) Engine() *engine.Engine {
	return a.engine
}

// Orchestrator exposes the built strategy orchestrator.
func (a *Application) Orchestrator() *strategy.Orchestrator {
	return a.orchestrator
}

// Close releases the tool bridge, if one was started.
func (a *Application) Close() {
	if a.bridge != nil {
		if err := a.bridge.Close(); err != nil {
			logging.Warn("App", "Error closing tool bridge: %v", err)
		}
	}
}

// handlerRefs collects the distinct handler references the manifest names,
// in manifest order.
func handlerRefs(directory *catalog.Directory) []string {
	seen := map[string]bool{}
	refs := []string{}
	for _, capability := range directory.Capabilities() {
		if capability.Handler != "" && !seen[capability.Handler] {
			seen[capability.Handler] = true
			refs = append(refs, capability.Handler)
		}
	}
	return refs
}

// checkerRefs collects the distinct precondition checker references.
func checkerRefs(directory *catalog.Directory) []string {
	seen := map[string]bool{}
	refs := []string{}
	for _, capability := range directory.Capabilities() {
		for _, precondition := range capability.Preconditions {
			if precondition.Checker != "" && !seen[precondition.Checker] {
				seen[precondition.Checker] = true
				refs = append(refs, precondition.Checker)
			}
		}
	}
	return refs
}
