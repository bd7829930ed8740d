package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ryan-rushton/unilaunch/internal/app"
	"github.com/ryan-rushton/unilaunch/internal/config"
	"github.com/ryan-rushton/unilaunch/internal/crash"
	"github.com/ryan-rushton/unilaunch/internal/launch"
	"github.com/ryan-rushton/unilaunch/internal/paths"
)

// LogName is the session log written inside the program directory.
const LogName = "launcher.log"

var (
	reportError = crash.Report
	reportPanic = crash.Panic
)

var rootCmd = &cobra.Command{
	Use:   "unilaunch [config]",
	Short: "Unified tool launcher",
	Long: "unilaunch - a card-based launcher for scripts, programs, documents and links.\n\n" +
		"The tool list is read from the given config file, or tools.json next to the program.",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(paths.AppBaseDir(), args)
	},
}

// SetVersion sets the version string shown by --version.
func SetVersion(v string) {
	rootCmd.Version = v
}

func Execute() {
	defer func() {
		if r := recover(); r != nil {
			reportPanic(paths.AppBaseDir(), r)
			os.Exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(baseDir string, args []string) error {
	configPath := config.DefaultPath(baseDir)
	if len(args) == 1 {
		configPath = args[0]
	}
	if abs, err := filepath.Abs(configPath); err == nil {
		configPath = abs
	}

	logFile, err := tea.LogToFile(filepath.Join(baseDir, LogName), "unilaunch")
	if err != nil {
		log.SetOutput(io.Discard)
	} else {
		defer logFile.Close()
	}
	log.Printf("starting with config %s", configPath)

	doc, err := config.Load(configPath)
	if err != nil {
		log.Printf("startup failed: %v", err)
		reportError(baseDir, "Config Error", err)
		return err
	}

	dispatcher := launch.New(launch.OS{}, paths.NewResolver(baseDir, configPath))
	p := tea.NewProgram(app.New(doc, configPath, dispatcher),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithoutCatchPanics(),
	)
	return runProgram(p, baseDir)
}

// runProgram runs p and reports how it ended. The program must be built with
// tea.WithoutCatchPanics so panics reach the recover here with their stack.
func runProgram(p *tea.Program, baseDir string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			_ = p.ReleaseTerminal()
			log.Printf("panic: %v", r)
			reportPanic(baseDir, r)
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	if _, err := p.Run(); err != nil {
		log.Printf("program exited with error: %v", err)
		reportError(baseDir, "Launcher Error", err)
		return err
	}
	return nil
}
