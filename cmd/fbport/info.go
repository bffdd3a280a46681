package main

import (
	"os"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/process"
	"github.com/spf13/cobra"

	"github.com/srlehn/fbport"
	"github.com/srlehn/fbport/internal/consts"
	"github.com/srlehn/fbport/internal/errors"
)

func init() {
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   `info`,
	Short: `show host and session details`,
	Long:  `show the host, the controlling terminal and the environment that backend selection looks at`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(func(**fbport.Display) error {
			w := os.Stdout
			hi, err := host.Info()
			if err != nil {
				return errors.New(err)
			}
			printHeader(w, `host`)
			printField(w, `hostname`, hi.Hostname)
			printField(w, `platform`, hi.Platform+` `+hi.PlatformVersion)
			printField(w, `kernel`, hi.KernelVersion+` `+hi.KernelArch)
			if len(hi.VirtualizationSystem) > 0 {
				printField(w, `virtualization`, hi.VirtualizationSystem+` `+hi.VirtualizationRole)
			}

			printHeader(w, `session`)
			if pr, err := process.NewProcess(int32(os.Getpid())); err == nil {
				if tty, err := pr.Terminal(); err == nil && len(tty) > 0 {
					printField(w, `terminal`, tty)
				}
				if parent, err := pr.Parent(); err == nil {
					name, _ := parent.Name()
					printField(w, `parent`, name)
				}
			}
			for _, v := range []string{`XDG_SESSION_TYPE`, `DISPLAY`, `WAYLAND_DISPLAY`} {
				val := os.Getenv(v)
				if len(val) == 0 {
					val = styleDim.Render(`unset`)
				}
				printField(w, v, val)
			}
			dev := deviceFlag
			if len(dev) == 0 {
				dev = consts.DefaultFBDevice
			}
			_, errStat := os.Stat(dev)
			printField(w, `framebuffer`, dev+` `+yesNo(errStat == nil))
			cfg := configFlag
			if len(cfg) == 0 {
				cfg = fbport.DefaultConfigFile()
			}
			_, errStat = os.Stat(cfg)
			printField(w, `config`, cfg+` `+yesNo(errStat == nil))
			return nil
		})
	},
}
