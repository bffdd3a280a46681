package fbdev

import (
	"testing"

	ps "github.com/mitchellh/go-ps"
	"github.com/stretchr/testify/assert"
)

type fakeProc string

func (p fakeProc) Pid() int           { return 1 }
func (p fakeProc) PPid() int          { return 0 }
func (p fakeProc) Executable() string { return string(p) }

func withProcesses(t *testing.T, names ...string) {
	t.Helper()
	orig := processes
	t.Cleanup(func() { processes = orig })
	processes = func() ([]ps.Process, error) {
		procs := make([]ps.Process, 0, len(names))
		for _, n := range names {
			procs = append(procs, fakeProc(n))
		}
		return procs, nil
	}
}

func TestDisplayServerRunning(t *testing.T) {
	withProcesses(t, `init`, `bash`, `getty`)
	_, ok := displayServerRunning()
	assert.False(t, ok)

	withProcesses(t, `init`, `Xorg.wrap`)
	name, ok := displayServerRunning()
	assert.True(t, ok)
	assert.Equal(t, `Xorg.wrap`, name)

	withProcesses(t, `sway`)
	name, ok = displayServerRunning()
	assert.True(t, ok)
	assert.Equal(t, `sway`, name)
}
