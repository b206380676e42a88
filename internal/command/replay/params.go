package replay

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/pavanmanishd/slotvec/internal/script"
)

const (
	fileFlag = "file"
)

var (
	errMissingFile = errors.New("no script file passed in")
)

type replayParams struct {
	file     string
	logLevel string
}

func (p *replayParams) validateFlags() error {
	if p.file == "" {
		return errMissingFile
	}

	return nil
}

func (p *replayParams) loadScript() (*script.Script, error) {
	f, err := os.Open(p.file)
	if err != nil {
		return nil, fmt.Errorf("unable to open script, %w", err)
	}
	defer f.Close()

	s, err := script.Load(f)
	if err != nil {
		return nil, fmt.Errorf("unable to load script %s, %w", p.file, err)
	}

	return s, nil
}

func (p *replayParams) replay(logger hclog.Logger) (*ReplayResult, error) {
	s, err := p.loadScript()
	if err != nil {
		return nil, err
	}

	report, err := s.Run(logger)
	if err != nil {
		return nil, fmt.Errorf("unable to replay script %s, %w", p.file, err)
	}

	return &ReplayResult{
		File:   p.file,
		Report: report,
	}, nil
}
