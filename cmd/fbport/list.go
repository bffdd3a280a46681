package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/srlehn/fbport"
	"github.com/srlehn/fbport/backend"
	"github.com/srlehn/fbport/input"
	"github.com/srlehn/fbport/internal/consts"
)

func init() {
	rootCmd.AddCommand(backendsCmd)
	devicesCmd.Flags().StringVar(&inputDirFlag, `input-dir`, consts.DefaultInputDir, `evdev directory`)
	rootCmd.AddCommand(devicesCmd)
}

var inputDirFlag string

var backendsCmd = &cobra.Command{
	Use:   `backends`,
	Short: `list backends`,
	Long:  `list the registered backends in selection order and whether they apply here`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(func(**fbport.Display) error {
			env := &backend.Env{
				Device:   deviceFlag,
				XDisplay: xDisplayFlag,
				Getenv:   os.Getenv,
			}
			printHeader(os.Stdout, `backends`)
			for _, name := range backend.Names() {
				b, err := backend.Get(name)
				if err != nil {
					return err
				}
				printField(os.Stdout, name, yesNo(b.IsApplicable(env)))
			}
			return nil
		})
	},
}

var devicesCmd = &cobra.Command{
	Use:   `devices`,
	Short: `list input devices`,
	Long:  `list the evdev devices with their name and class`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(func(**fbport.Display) error {
			disc := &input.Discoverer{Dir: inputDirFlag}
			paths, err := disc.Devices()
			if err != nil {
				return err
			}
			printHeader(os.Stdout, `input devices in `+inputDirFlag)
			for _, p := range paths {
				dev, err := input.Open(p)
				if err != nil {
					printField(os.Stdout, p, styleDim.Render(err.Error()))
					continue
				}
				printField(os.Stdout, p, dev.Name+` `+styleDim.Render(`(`+dev.Class.String()+`)`))
				_ = dev.Close()
			}
			return nil
		})
	},
}
