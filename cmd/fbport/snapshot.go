package main

import (
	"fmt"
	"image"
	"os"
	"time"

	imagingOrig "github.com/kovidgoyal/imaging"
	"github.com/spf13/cobra"
	"golang.org/x/image/bmp"

	"github.com/srlehn/fbport"
	"github.com/srlehn/fbport/internal/errors"
)

func init() {
	addSceneFlags(snapshotCmd.Flags())
	snapshotCmd.Flags().StringVar(&regionFlag, `region`, ``, `native region x,y,w,h to save instead of the whole canvas`)
	rootCmd.AddCommand(snapshotCmd)
}

var regionFlag string

var snapshotCmd = &cobra.Command{
	Use:   `snapshot <file.bmp>`,
	Short: `draw the test scene and save it as BMP`,
	Long:  `draw the test scene or the earth map and save the canvas as BMP`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(dp **fbport.Display) error {
			region, err := parseRegion(regionFlag)
			if err != nil {
				return err
			}
			ctx, stop := signalContext()
			defer stop()
			d, err := startDisplay(ctx, dp, displayOptions(cmd), fbport.SetOnClose(stop))
			if err != nil {
				return err
			}
			if err := drawScene(d, time.Now()); err != nil {
				return err
			}
			f, err := os.Create(args[0])
			if err != nil {
				return errors.New(err)
			}
			if region.Empty() {
				err = d.WriteBMP(f)
			} else {
				err = writeRegion(f, d.Snapshot(), region)
			}
			if err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return errors.New(err)
			}
			return nil
		})
	},
}

func parseRegion(s string) (image.Rectangle, error) {
	if len(s) == 0 {
		return image.Rectangle{}, nil
	}
	var x, y, w, h int
	if _, err := fmt.Sscanf(s, `%d,%d,%d,%d`, &x, &y, &w, &h); err != nil {
		return image.Rectangle{}, errors.WrapPrefix(err, `region `+s, 0)
	}
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, errors.Errorf(`region %s: empty`, s)
	}
	return image.Rect(x, y, x+w, y+h), nil
}

func writeRegion(f *os.File, img image.Image, region image.Rectangle) error {
	if img == nil {
		return errors.New(`no canvas`)
	}
	if !region.In(img.Bounds()) {
		return errors.Errorf(`region %v outside of canvas %v`, region, img.Bounds())
	}
	if err := bmp.Encode(f, imagingOrig.Crop(img, region)); err != nil {
		return errors.New(err)
	}
	return nil
}
