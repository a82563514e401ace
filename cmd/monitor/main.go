package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pangolin-monitor/internal/application/config"
	"pangolin-monitor/internal/application/monitor"
	"pangolin-monitor/internal/domain/model"
	dockerinfra "pangolin-monitor/internal/infra/docker"
	"pangolin-monitor/internal/infra/pangolin"
	"pangolin-monitor/internal/infra/pushover"
	"pangolin-monitor/pkg/capabilities"
	"pangolin-monitor/pkg/log"
	"pangolin-monitor/pkg/version"
)

const notificationTitle = "Pangolin Monitor"

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	showHelp := flag.Bool("help", false, "Show help information")
	configPath := flag.String("config", "monitor.config.yaml", "Path to configuration file")
	flag.Parse()

	if *showVersion {
		fmt.Printf("Pangolin Monitor version: %s (#%d)\n", version.GetVersion(), version.GetNumericVersion())
		os.Exit(0)
	}

	if *showHelp {
		fmt.Println("Pangolin Monitor")
		fmt.Println("Usage: pangolin-monitor [options]")
		fmt.Println("Options:")
		fmt.Println("  --version  Show version information")
		fmt.Println("  --help     Show help information")
		fmt.Println("  --config   Path to configuration file (default: monitor.config.yaml)")
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log.InitLog(cfg.LogLevel)
	log.Info("pangolin monitor starting", "version", version.GetVersion(), "base_url", cfg.BaseURL, "org_id", cfg.OrgID)

	preflight(cfg)

	notifier := pushover.New(cfg.Pushover.Endpoint, cfg.Pushover.Token, cfg.Pushover.User, notificationTitle, cfg.HTTPTimeout())
	session := pangolin.NewSessionManager(
		cfg.BaseURL,
		pangolin.Credentials{Email: cfg.Email, Password: cfg.Password},
		cfg.SessionFile,
		cfg.HTTPTimeout(),
		notifier,
	)
	client := pangolin.NewClient(cfg.BaseURL, session, cfg.HTTPTimeout())

	var runtime monitor.Runtime
	if len(cfg.Containers) > 0 {
		rt, err := dockerinfra.NewRuntime(cfg.DockerSocket)
		if err != nil {
			log.Error("container runtime unavailable", "error", err)
			notifyCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if sendErr := notifier.Send(notifyCtx, fmt.Sprintf("Pangolin monitor could not start: %v", err), model.PriorityHigh); sendErr != nil {
				log.Warn("startup failure notification not delivered", "error", sendErr)
			}
			cancel()
			os.Exit(1)
		}
		runtime = rt
	}

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	// Handle signals in a separate goroutine
	go func() {
		sig := <-sigChan
		log.Info("received signal, shutting down", "signal", sig.String())
		cancel()

		// The run loop exits on its own and performs session cleanup.
		// If it is stuck on a hung call, force the exit but still drop
		// the session artifact first.
		time.Sleep(10 * time.Second)
		log.Warn("shutdown timed out, forcing exit")
		_ = os.Remove(cfg.SessionFile)
		os.Exit(1)
	}()

	m := monitor.New(cfg, session, client, runtime, notifier)
	if err := m.Run(ctx); err != nil {
		log.Error("monitor exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("monitor stopped")
}

// preflight logs which of the monitor's external capabilities are present.
// Findings are informational: a missing docker CLI, for example, does not
// stop the monitor when no containers are configured.
func preflight(cfg *config.Config) {
	factory := capabilities.NewCapabilityFactory(cfg.DockerSocket)
	for _, cap := range factory.GetAllCapabilities() {
		if cap.IsAvailable() {
			log.Info("capability available", "capability", cap.Name(), "version", cap.Version())
			continue
		}
		if len(cfg.Containers) > 0 {
			log.Warn("capability missing", "capability", cap.Name())
		} else {
			log.Debug("capability missing", "capability", cap.Name())
		}
	}
	info := capabilities.GetSystemInfo()
	log.Debug("system info", "os", info.OS, "arch", info.Arch)
}
