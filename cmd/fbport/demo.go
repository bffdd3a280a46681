package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/srlehn/fbport"
	"github.com/srlehn/fbport/input"
	"github.com/srlehn/fbport/internal/logx"
	"github.com/srlehn/fbport/pixfmt"
)

func init() {
	addSceneFlags(demoCmd.Flags())
	demoCmd.Flags().DurationVar(&durationFlag, `duration`, 0, `quit after this long, 0 runs until Esc or interrupt`)
	rootCmd.AddCommand(demoCmd)
}

var durationFlag time.Duration

var demoCmd = &cobra.Command{
	Use:   `demo`,
	Short: `draw a test scene and echo input`,
	Long:  `draw a test scene or the earth map and echo key presses and touches until Esc`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(demoFunc(cmd))
	},
}

var buttonColors = map[int]pixfmt.RGB565{
	input.ButtonLeft:   fbport.Color(0xff, 0xff, 0),
	input.ButtonMiddle: fbport.Color(0, 0xff, 0),
	input.ButtonRight:  fbport.Color(0xff, 0, 0xff),
}

func demoFunc(cmd *cobra.Command) displaySwapper {
	return func(dp **fbport.Display) error {
		ctx, stop := signalContext()
		defer stop()
		if durationFlag > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, durationFlag)
			defer cancel()
		}
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		d, err := startDisplay(ctx, dp, displayOptions(cmd), fbport.SetOnClose(cancel))
		if err != nil {
			return err
		}
		if err := drawScene(d, time.Now()); err != nil {
			return err
		}
		d.SetCursor(8, d.Height()/4+60)
		fullscreen = fullscreenFlag

		tick := time.NewTicker(20 * time.Millisecond)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-tick.C:
			}
			if err := d.Err(); err != nil {
				return err
			}
			if d.Touched() {
				x, y, button := d.TouchReadButton()
				c, ok := buttonColors[button]
				if !ok {
					c = fbport.Color(0xff, 0xff, 0xff)
				}
				d.FillCircle(x, y, 3, c)
				logx.Debug(`touch`, d, `x`, x, `y`, y, `button`, button)
			}
			for {
				k, ok := d.GetChar()
				if !ok {
					break
				}
				switch {
				case k.Char == input.CharEsc:
					return nil
				case k.Ctrl && (k.Char == 'f' || k.Char == 'F'):
					if err := toggleFullscreen(d); err != nil {
						logx.IsErr(err, d, slog.LevelWarn)
					}
				case k.Char == input.CharEnter:
					d.Print("\n")
				case k.Char >= 0x20 && k.Char < 0x7f:
					d.Print(string(k.Char))
				}
			}
		}
	}
}

var fullscreen bool

func toggleFullscreen(d *fbport.Display) error {
	if err := d.SetFullscreen(!fullscreen); err != nil {
		return err
	}
	fullscreen = !fullscreen
	return nil
}
