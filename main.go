package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"dictate/audio"
	"dictate/beep"
	"dictate/config"
	"dictate/encoder"
	"dictate/hotkey"
	"dictate/log"
	"dictate/notify"
	"dictate/output"
	"dictate/recognizer"
	"dictate/rewrite"
	"dictate/tray"
)

var version = "dev"

var shutdownOnce sync.Once

var activeSession *Session

func gracefulShutdown() {
	shutdownOnce.Do(func() {
		if activeSession != nil {
			log.SessionEnd(activeSession.Count())
		}
		log.Close()
		removePidFile(pidPath())
		tray.Quit()
		tuiMu.Lock()
		p := tuiProgram
		tuiMu.Unlock()
		if p != nil {
			p.Quit()
		}
		os.Exit(0)
	})
}

func modeLineText(engine, model, lang string, mode output.Mode) string {
	if lang == "" {
		lang = "auto"
	}
	return fmt.Sprintf("[%s | %s/%s | %s]", engine, model, lang, mode)
}

// resultPreview shortens text for a desktop notification.
func resultPreview(text string) string {
	const max = 80
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max-1]) + "…"
}

// openPath hands a file to the desktop's default handler.
func openPath(path string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		log.Warnf("open %s: %v", path, err)
	}
}

func run() {
	// `dictate toggle` signals the running daemon and exits.
	if len(os.Args) > 1 && os.Args[1] == "toggle" {
		pid := readPid(pidPath())
		if pid == 0 || !processAlive(pid) {
			fmt.Fprintln(os.Stderr, "dictate is not running")
			os.Exit(1)
		}
		if err := sendToggle(pid); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	configFlag := flag.String("config", "", "Config file path (default: ~/.config/dictate/config.json)")
	modeFlag := flag.String("mode", "", "Output mode: type, clipboard, or both (overrides config)")
	modelFlag := flag.String("model", "", "Recognition model: tiny, base, small, medium, large (overrides config)")
	langFlag := flag.String("language", "", "Language code, e.g. en, de. Empty = auto-detect (overrides config)")
	engineFlag := flag.String("engine", "", "Transcription endpoint URL (overrides config)")
	setupFlag := flag.Bool("setup", false, "Select microphone device (otherwise uses system default)")
	deviceFlag := flag.String("device", "", "Use named microphone device")
	logPathFlag := flag.String("logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	formatFlag := flag.String("format", "flac", "Upload container: flac or wav (for engines that reject flac)")
	testFlag := flag.Bool("test", false, "Test mode (headless, stdin-driven, WAV file instead of mic)")
	tuiFlag := flag.Bool("tui", false, "Run in the foreground with a terminal UI instead of daemonizing")
	longPressFlag := flag.Duration("longpress", hotkey.DefaultLongPress, "Hold threshold for push-to-talk vs tap (e.g. 350ms)")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("dictate %s\n", version)
		os.Exit(0)
	}

	// Resolve log directory early
	logPath, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)

	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	}

	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
		debug.SetCrashOutput(crashFile, debug.CrashOptions{})
	}

	cfgPath, err := config.Path(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot resolve config path: %v\n", err)
		os.Exit(1)
	}
	cfg, warnings, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	// Flags override the file; only flags the user actually set count,
	// so an explicitly empty -language still means auto-detect.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.OutputMode = *modeFlag
		case "model":
			cfg.Model = *modelFlag
		case "language":
			cfg.Language = *langFlag
		case "engine":
			cfg.EngineURL = *engineFlag
		}
	})

	mode, err := output.ParseMode(cfg.OutputMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var newEnc func() (encoder.Encoder, error)
	switch *formatFlag {
	case "flac":
		newEnc = encoder.NewFlac
	case "wav":
		newEnc = encoder.NewWav
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (use flac or wav)\n", *formatFlag)
		os.Exit(1)
	}

	combo, err := hotkey.ParseCombo(cfg.Hotkey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: bad hotkey %q: %v\n", cfg.Hotkey, err)
		os.Exit(1)
	}

	client, err := recognizer.New(recognizer.Config{
		URL:      cfg.EngineURL,
		APIKey:   os.Getenv("DICTATE_API_KEY"),
		Model:    cfg.Model,
		Language: cfg.Language,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rules, err := rewrite.Load(config.ReplacementsPath(cfg, cfgPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (continuing without replacements)\n", err)
		rules = nil
	}

	if *testFlag {
		args := flag.Args()
		if len(args) == 0 {
			fmt.Fprintln(os.Stderr, "Usage: dictate -test <wav-file>")
			os.Exit(1)
		}
		runTestMode(args[0], client, rules, mode)
		return
	}

	// Resolve -setup into -device early (before daemonization)
	if *setupFlag && *deviceFlag == "" {
		ctx, err := audio.NewContext()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing audio: %v\n", err)
			os.Exit(1)
		}
		if dev, _ := audio.SelectDevice(ctx); dev != nil {
			*deviceFlag = dev.Name
		}
		ctx.Close()
	}

	// Daemonize in non-TUI mode: re-exec in background, return shell prompt
	if !*tuiFlag && os.Getenv("_DICTATE_BG") == "" {
		args := os.Args[1:]
		if *deviceFlag != "" {
			args = append(args, "-device", *deviceFlag)
		}
		exe, _ := os.Executable()
		cmd := exec.Command(exe, args...)
		cmd.Env = append(os.Environ(), "_DICTATE_BG=1")
		devnull, _ := os.Open(os.DevNull)
		cmd.Stdin, cmd.Stdout, cmd.Stderr = devnull, devnull, devnull
		if err := cmd.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if err := writePidFile(pidPath()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	} else {
		log.SessionStart(client.Name(), string(mode), cfg.Hotkey)
		for _, w := range warnings {
			log.Warn(w)
		}
	}

	ctx, err := audio.NewContext()
	if err != nil {
		log.Errorf("audio context init error: %v", err)
		fmt.Fprintf(os.Stderr, "Error initializing audio context: %v\n", err)
		os.Exit(1)
	}
	defer ctx.Close()

	var selectedDevice *audio.DeviceInfo
	if *deviceFlag != "" {
		if devices, err := ctx.Devices(); err == nil {
			for i := range devices {
				if devices[i].Name == *deviceFlag {
					selectedDevice = &devices[i]
					break
				}
			}
		}
	}

	captureDevice, err := ctx.NewCapture(selectedDevice, audio.CaptureConfig{
		SampleRate: encoder.SampleRate,
		Channels:   encoder.Channels,
	})
	if err != nil {
		log.Errorf("capture device init error: %v", err)
		fmt.Fprintf(os.Stderr, "Error initializing capture device: %v\n", err)
		os.Exit(1)
	}
	defer captureDevice.Close()

	if !cfg.Sounds {
		beep.Disable()
	}
	go beep.Init()

	dispatcher := output.New(log.Warnf)

	hooks := Hooks{
		OnRecording: func(on bool) {
			tray.SetRecording(on)
			if on {
				tuiSend(RecordingStartMsg{})
				go beep.PlayStart()
			} else {
				tuiSend(RecordingStopMsg{})
				go beep.PlayEnd()
			}
		},
		OnLevel: func(level float64) { tuiSend(AudioLevelMsg{Level: level}) },
		OnResult: func(text string, noSpeech bool) {
			tuiSend(ResultMsg{Text: text, NoSpeech: noSpeech})
			if noSpeech {
				notify.Send("Dictate", "(no speech detected)")
				return
			}
			notify.Send("Dictate", resultPreview(text))
		},
		OnError: func(err error) {
			tuiSend(ErrorMsg{Text: err.Error()})
			tray.SetError(err.Error())
			notify.Send("Dictate error", err.Error())
			go beep.PlayError()
		},
	}

	session := NewSession(captureDevice, client, rules, dispatcher, mode, newEnc, hooks)
	activeSession = session

	trayToggle := make(chan struct{}, 1)
	trayQuit := tray.Init(tray.Options{
		Mode:     string(mode),
		Model:    cfg.Model,
		Language: cfg.Language,
		OnToggle: func() {
			select {
			case trayToggle <- struct{}{}:
			default:
			}
		},
		OnMode: func(name string) {
			m, err := output.ParseMode(name)
			if err != nil {
				return
			}
			session.SetMode(m)
			cfg.OutputMode = name
			if err := config.Save(cfgPath, cfg); err != nil {
				log.Warnf("saving config: %v", err)
			}
			tuiSend(ModeLineMsg{Text: modeLineText(client.Name(), cfg.Model, cfg.Language, m)})
		},
		OnOpen: func() { openPath(cfgPath) },
	})

	if *tuiFlag {
		tuiMu.Lock()
		tuiProgram = NewTUIProgram(modeLineText(client.Name(), cfg.Model, cfg.Language, mode))
		tuiMu.Unlock()

		go func() {
			if _, err := tuiProgram.Run(); err != nil {
				log.Errorf("TUI error: %v", err)
				os.Exit(1)
			}
			gracefulShutdown()
		}()
		<-tuiReady
	}

	sigToggle := make(chan os.Signal, 1)
	notifyToggle(sigToggle)

	sigQuit := make(chan os.Signal, 1)
	notifyShutdown(sigQuit)
	go func() {
		select {
		case <-sigQuit:
		case <-trayQuit:
		}
		gracefulShutdown()
	}()

	hk := hotkey.New(combo)
	if err := hk.Register(); err != nil {
		log.Errorf("hotkey register error: %v", err)
		fmt.Fprintf(os.Stderr, "Error registering hotkey: %v\n", err)
		os.Exit(1)
	}
	defer hk.Unregister()

	toggler := hotkey.NewToggler(hk, *longPressFlag)

	for {
		select {
		case <-toggler.Events():
			session.Toggle()
		case <-trayToggle:
			session.Toggle()
		case <-sigToggle:
			log.Info("signal_toggle")
			session.Toggle()
		}
	}
}
