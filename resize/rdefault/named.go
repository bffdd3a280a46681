package rdefault

import (
	"slices"

	"github.com/srlehn/fbport/internal/errors"
	"github.com/srlehn/fbport/resize"
	"github.com/srlehn/fbport/resize/bild"
	"github.com/srlehn/fbport/resize/gift"
	"github.com/srlehn/fbport/resize/imaging"
	"github.com/srlehn/fbport/resize/nfnt"
	"github.com/srlehn/fbport/resize/rez"
	"github.com/srlehn/fbport/resize/xdraw"
)

var named = map[string]func() resize.Resizer{
	`default`:    func() resize.Resizer { return &Resizer{} },
	`bild`:       func() resize.Resizer { return &bild.Resizer{} },
	`gift`:       func() resize.Resizer { return &gift.Resizer{} },
	`imaging`:    func() resize.Resizer { return &imaging.Resizer{} },
	`nfnt`:       func() resize.Resizer { return &nfnt.Resizer{} },
	`rez`:        func() resize.Resizer { return rez.Resizer{} },
	`xdraw`:      func() resize.Resizer { return xdraw.ApproxBiLinear() },
	`bilinear`:   func() resize.Resizer { return xdraw.BiLinear() },
	`catmullrom`: func() resize.Resizer { return xdraw.CatmullRom() },
	`nearest`:    func() resize.Resizer { return xdraw.NearestNeighbor() },
}

// ByName returns the resizer registered as name, an empty name is the
// default one.
func ByName(name string) (resize.Resizer, error) {
	if len(name) == 0 {
		name = `default`
	}
	newResizer, ok := named[name]
	if !ok {
		return nil, errors.Errorf(`unknown resizer %q, known: %v`, name, Names())
	}
	return newResizer(), nil
}

// Names lists the resizer names accepted by ByName.
func Names() []string {
	names := make([]string, 0, len(named))
	for n := range named {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
