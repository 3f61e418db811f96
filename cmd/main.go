// mousekeys - keyboard-driven pointer control
// Moves the real OS cursor with the keyboard while staying a normal
// system cursor to every other application.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"mousekeys/internal/api"
	"mousekeys/internal/autostart"
	"mousekeys/internal/config"
	"mousekeys/internal/controller"
	"mousekeys/internal/input"
	"mousekeys/internal/osutils"
	"mousekeys/internal/physics"
	"mousekeys/internal/tray"
)

var (
	version    = "0.1.0"
	showVer    = flag.Bool("version", false, "Show version")
	showStatus = flag.Bool("status", false, "Query a running instance's status API and exit")
	noTray     = flag.Bool("no-tray", false, "Run without the system tray icon")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("mousekeys version %s\n", version)
		return
	}

	// Initialize config
	cfgMgr, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}
	if err := cfgMgr.Load(); err != nil {
		log.Printf("Warning: failed to load config: %v", err)
	}

	if *showStatus {
		queryStatus(cfgMgr)
		return
	}

	runService(cfgMgr)
}

// queryStatus asks a running instance for its state via the status API.
func queryStatus(cfgMgr *config.Manager) {
	cfg := cfgMgr.Get()
	url := fmt.Sprintf("http://127.0.0.1:%d/api/status", cfg.General.APIPort)

	client := &http.Client{Timeout: 3 * time.Second}
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		log.Fatalf("Failed to build status request: %v", err)
	}
	if cfg.General.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.General.APIToken)
	}

	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("No running instance answered on port %d: %v", cfg.General.APIPort, err)
	}
	defer resp.Body.Close()

	var status map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		log.Fatalf("Bad status response: %v", err)
	}
	fmt.Printf("enabled: %v\nposition: (%v, %v)\n", status["enabled"], status["x"], status["y"])
}

func runService(cfgMgr *config.Manager) {
	log.Println("mousekeys starting...")
	cfg := cfgMgr.Get()

	if runtime.GOOS == "windows" && !osutils.IsAdmin() {
		log.Println("Note: running without elevation; keystrokes aimed at elevated windows are not intercepted")
	}

	pointer, err := input.NewPointer()
	if err != nil {
		log.Fatalf("Failed to initialize pointer output: %v", err)
	}

	ctrl := controller.New()
	loop := physics.NewLoop(ctrl, pointer, buildModel(&cfg.Tuning), cfg.Tuning.TickRate)

	// Status API server (optional)
	var apiServer *api.Server
	if cfg.General.APIEnabled {
		apiServer = api.NewServer(cfgMgr, ctrl, loop)
		go func() {
			if err := apiServer.Start(cfg.General.APIPort); err != nil {
				log.Printf("API server error: %v", err)
			}
		}()
	}

	// Reconcile the autostart entry with the configured preference
	if cfg.General.StartOnBoot && !autostart.IsEnabled() {
		if err := autostart.Enable(); err != nil {
			log.Printf("Autostart: %v", err)
		}
	}

	// Tray instance
	var t *tray.Tray
	statusItem := -1
	if cfg.General.ShowTray && !*noTray {
		t = tray.New("mousekeys - CapsLock to toggle")
		statusItem = t.AddMenuItem("Disabled", nil)
		t.AddSeparator()
		t.AddMenuItem("Toggle", func() {
			ctrl.Toggle()
		})

		var loginItem int
		loginItem = t.AddMenuItem("Run on Login", func() {
			if autostart.IsEnabled() {
				if err := autostart.Disable(); err != nil {
					log.Printf("Autostart: %v", err)
					return
				}
				t.SetItemChecked(loginItem, false)
			} else {
				if err := autostart.Enable(); err != nil {
					log.Printf("Autostart: %v", err)
					return
				}
				t.SetItemChecked(loginItem, true)
			}
		})
		if autostart.IsEnabled() {
			t.SetItemChecked(loginItem, true)
		}

		t.AddSeparator()
		t.AddMenuItem("Quit", func() {
			t.Stop()
		})
	}

	// Mode transitions fan out to the tray and the API watchers. The
	// callback runs on its own goroutine, never inside the hook.
	ctrl.SetModeChangeCallback(func(enabled bool) {
		if enabled {
			log.Println("Controller enabled")
		} else {
			log.Println("Controller disabled")
		}
		if t != nil && statusItem >= 0 {
			if enabled {
				t.SetItemTitle(statusItem, "Enabled")
			} else {
				t.SetItemTitle(statusItem, "Disabled")
			}
		}
		if apiServer != nil {
			apiServer.BroadcastState(enabled)
		}
	})

	// Install the global keyboard hook. Without it the tool cannot
	// function, so failure is fatal.
	hook := input.NewHook(ctrl.HandleKey)
	if err := hook.Start(); err != nil {
		log.Fatalf("Failed to install keyboard hook: %v", err)
	}

	go loop.Run()

	shutdown := func() {
		log.Println("Shutting down...")
		hook.Stop()
		// Stop waits for the loop to finish its last tick, releasing
		// any button still logically held.
		loop.Stop()
	}

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	log.Println("mousekeys running. Press CapsLock to toggle, Ctrl+C to stop.")

	if t != nil {
		go func() {
			<-sigCh
			t.Stop()
		}()
		t.Run() // blocks until Quit
		shutdown()
		return
	}

	<-sigCh
	shutdown()
}

// buildModel selects the movement model from the tuning config.
func buildModel(tuning *config.TuningConfig) physics.Model {
	switch tuning.Model {
	case "inertia":
		return &physics.Inertia{
			Accel:          tuning.Accel,
			Friction:       tuning.Friction,
			MaxSpeed:       tuning.MaxSpeed,
			SlowMultiplier: tuning.SlowMultiplier,
		}
	default:
		return &physics.Linear{
			MaxSpeed:       tuning.MaxSpeed,
			SlowMultiplier: tuning.SlowMultiplier,
		}
	}
}
