package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/srlehn/fbport"
	_ "github.com/srlehn/fbport/backend/bdefault"
	"github.com/srlehn/fbport/internal/errors"
)

var rootCmd = &cobra.Command{
	Use:              filepath.Base(os.Args[0]),
	Short:            "fbport drives an 800x480 canvas on a framebuffer or X11 window",
	Long:             "fbport drives an 800x480 canvas on a framebuffer or X11 window",
	SilenceUsage:     true,
	TraverseChildren: true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	cobra.EnablePrefixMatching = true
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&debugFlag, `debug`, `d`, false, `debug errors`)
	pf.BoolVarP(&silentFlag, `silent`, `s`, false, `silence errors`)
	pf.StringVarP(&logFileFlag, `log-file`, `l`, ``, `log file`)
	pf.StringVarP(&configFlag, `config`, `c`, ``, `config file (default `+fbport.DefaultConfigFile()+`)`)
	pf.StringVarP(&backendFlag, `backend`, `b`, ``, `backend name, empty selects the first applicable`)
	pf.IntVar(&scaleFlag, `scale`, 0, `native pixels per logical pixel, 0 picks the largest that fits`)
	pf.StringVar(&deviceFlag, `device`, ``, `framebuffer device`)
	pf.StringVar(&xDisplayFlag, `x-display`, ``, `X display, overrides DISPLAY`)
	pf.BoolVarP(&fullscreenFlag, `fullscreen`, `f`, false, `fullscreen window`)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	debugFlag      bool
	silentFlag     bool
	logFileFlag    string
	configFlag     string
	backendFlag    string
	scaleFlag      int
	deviceFlag     string
	xDisplayFlag   string
	fullscreenFlag bool
	cpuProfileFlag string
	cpuProfilefunc func(profileFile string) func()
)

// displayOptions turns the flags that were set into options, flags left
// alone fall through to the config file.
func displayOptions(cmd *cobra.Command) fbport.Options {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	opts := fbport.Options{fbport.SetConfigFile(configFlag)}
	if len(logFileFlag) > 0 {
		opts = append(opts, fbport.SetLogFile(logFileFlag, true))
	}
	if changed(`backend`) {
		opts = append(opts, fbport.SetBackend(backendFlag))
	}
	if changed(`scale`) {
		opts = append(opts, fbport.SetScale(scaleFlag))
	}
	if changed(`device`) {
		opts = append(opts, fbport.SetDevice(deviceFlag))
	}
	if changed(`x-display`) {
		opts = append(opts, fbport.SetXDisplay(xDisplayFlag))
	}
	if changed(`fullscreen`) {
		opts = append(opts, fbport.SetFullscreen(fullscreenFlag))
	}
	return opts
}

// startDisplay starts a display and waits for its first frame.
func startDisplay(ctx context.Context, dp **fbport.Display, opts ...fbport.Option) (*fbport.Display, error) {
	d, err := fbport.New(opts...)
	if err != nil {
		return nil, err
	}
	*dp = d
	if err := d.Start(ctx); err != nil {
		return nil, err
	}
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	for !d.DisplayReady() {
		select {
		case <-ctx.Done():
			return nil, errors.New(ctx.Err())
		case <-deadline:
			return nil, errors.New(`display did not become ready`)
		case <-tick.C:
			if err := d.Err(); err != nil {
				return nil, err
			}
		}
	}
	return d, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

type displaySwapper func(d **fbport.Display) error

func run(fn displaySwapper) {
	var err error
	if fn == nil {
		err = errors.NilParam()
	}
	var d *fbport.Display
	var exitCode int
	defer func() {
		// catch panics so that the console is restored
		if r := recover(); r != nil {
			exitCode = 1
			if !silentFlag {
				if stackFramer, ok := r.(interface{ ErrorStack() string }); ok {
					fmt.Fprintln(os.Stderr, "\n"+stackFramer.ErrorStack())
				} else {
					debug.PrintStack()
				}
			}
		}
		if err := d.Close(); err != nil && !silentFlag {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		os.Exit(exitCode)
	}()
	if len(cpuProfileFlag) > 0 && cpuProfilefunc != nil {
		if stop := cpuProfilefunc(cpuProfileFlag); stop != nil {
			defer stop()
		}
	}
	if err == nil {
		err = fn(&d)
	}
	if err != nil {
		exitCode = 1
		if !silentFlag {
			if stackFramer, ok := err.(interface{ ErrorStack() string }); debugFlag && ok {
				fmt.Fprintln(os.Stderr, "\n"+stackFramer.ErrorStack())
			} else {
				fmt.Fprintln(os.Stderr, "\n"+err.Error())
			}
		}
	}
}
