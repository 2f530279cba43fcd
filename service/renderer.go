package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// ErrRendererUnavailable reports that the external diagram renderer cannot be started
var ErrRendererUnavailable = errors.New("plantuml renderer unavailable")

// Renderer turns a diagram document on the local file system into an image next to it
type Renderer interface {
	Render(ctx context.Context, diagramPath string) error
}

// PlantUML runs `java -jar plantuml.jar <file>`
type PlantUML struct {
	Java string
	Jar  string
}

func (p *PlantUML) Render(ctx context.Context, diagramPath string) error {
	if _, err := os.Stat(p.Jar); err != nil {
		return fmt.Errorf("%w: %v", ErrRendererUnavailable, err)
	}
	java, err := exec.LookPath(p.Java)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRendererUnavailable, err)
	}
	output, err := exec.CommandContext(ctx, java, "-jar", p.Jar, diagramPath).CombinedOutput()
	if err != nil {
		return fmt.Errorf("plantuml failed for %s: %w: %s", diagramPath, err, output)
	}
	return nil
}
