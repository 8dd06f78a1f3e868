package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
	"github.com/pkg/errors"
)

// PagerOps hands the terminal to the ov pager and takes it back afterwards
type PagerOps struct {
	program *tea.Program
}

func NewPagerOps() *PagerOps {
	return &PagerOps{}
}

// SetProgram sets the program reference for terminal management
func (p *PagerOps) SetProgram(program *tea.Program) {
	p.program = program
}

// Show pages content with ov
func (p *PagerOps) Show(content string) error {
	if p.program == nil {
		return errors.New("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return errors.Wrap(err, "release terminal")
	}
	defer func() {
		// Let ov finish tearing down its screen first
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return errors.Wrap(err, "open pager")
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
