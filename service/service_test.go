package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/phpuml/analyzer"
	"github.com/viant/phpuml/config"
)

type fakeRenderer struct {
	mux   sync.Mutex
	paths []string
	err   error
}

func (f *fakeRenderer) Render(ctx context.Context, diagramPath string) error {
	f.mux.Lock()
	defer f.mux.Unlock()
	f.paths = append(f.paths, diagramPath)
	return f.err
}

func upload(t *testing.T, fs afs.Service, URL, content string) {
	t.Helper()
	require.NoError(t, fs.Upload(context.Background(), URL, file.DefaultFileOsMode, bytes.NewReader([]byte(content))))
}

func newService(outputDir string, render bool, renderer Renderer) (*Service, afs.Service) {
	cfg := config.DefaultConfig()
	cfg.OutputDir = outputDir
	cfg.Render = render
	fs := afs.New()
	return New(cfg, WithFS(fs), WithRenderer(renderer), WithLogger(zerolog.Nop())), fs
}

func TestService_Run(t *testing.T) {
	ctx := context.Background()
	srv, fs := newService("mem://localhost/phpuml/run/out", true, &fakeRenderer{})
	sourceURL := "mem://localhost/phpuml/run/src/example.php"
	upload(t, fs, sourceURL, "<?php\n$a = 5;\nif ($a > 0) { echo $a; } else { echo 0; }\n")

	output, err := srv.Run(ctx, sourceURL)
	require.NoError(t, err)
	assert.Equal(t, "mem://localhost/phpuml/run/out/example.uml", output.DiagramURL)
	assert.False(t, output.Unchanged)
	assert.Empty(t, output.ImageURL, "images are only rendered from local storage")

	written, err := fs.DownloadWithURL(ctx, output.DiagramURL)
	require.NoError(t, err)
	assert.Equal(t, output.Diagram, written)
	assert.Contains(t, string(written), "if (IF $a > 0) then (true)")

	again, err := srv.Run(ctx, sourceURL)
	require.NoError(t, err)
	assert.True(t, again.Unchanged)

	upload(t, fs, sourceURL, "<?php\n$a = 6;\nif ($a > 0) { echo $a; } else { echo 0; }\n")
	changed, err := srv.Run(ctx, sourceURL)
	require.NoError(t, err)
	assert.False(t, changed.Unchanged)
	written, err = fs.DownloadWithURL(ctx, changed.DiagramURL)
	require.NoError(t, err)
	assert.Contains(t, string(written), ":$a = 6;")
}

func TestService_Run_SemanticError(t *testing.T) {
	ctx := context.Background()
	srv, fs := newService("mem://localhost/phpuml/semantic/out", false, &fakeRenderer{})
	sourceURL := "mem://localhost/phpuml/semantic/src/broken.php"
	upload(t, fs, sourceURL, "<?php\nforeach ($items as $x) { $y = $x; }\n")

	output, err := srv.Run(ctx, sourceURL)
	require.Error(t, err)
	assert.Nil(t, output)
	var semanticErr *analyzer.SemanticError
	require.True(t, errors.As(err, &semanticErr))
	assert.Equal(t, analyzer.UndeclaredVariable, semanticErr.Kind)
	assert.Contains(t, err.Error(), sourceURL)

	exists, _ := fs.Exists(ctx, "mem://localhost/phpuml/semantic/out/broken.uml")
	assert.False(t, exists, "no diagram is written for a failed analysis")
}

func TestService_Run_LocalRender(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	tests := []struct {
		name      string
		renderErr error
		wantImage bool
		wantErr   bool
	}{
		{name: "rendered", wantImage: true},
		{name: "renderer unavailable", renderErr: ErrRendererUnavailable},
		{name: "renderer failure", renderErr: errors.New("exit status 1"), wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			renderer := &fakeRenderer{err: tc.renderErr}
			outputDir := dir + "/" + strings.ReplaceAll(tc.name, " ", "_")
			srv, fs := newService(outputDir, true, renderer)
			sourceURL := "mem://localhost/phpuml/render/" + strings.ReplaceAll(tc.name, " ", "_") + ".php"
			upload(t, fs, sourceURL, "<?php\necho 1;\n")

			output, err := srv.Run(ctx, sourceURL)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, renderer.paths, 1)
			assert.True(t, strings.HasSuffix(renderer.paths[0], ".uml"))
			if tc.wantImage {
				assert.True(t, strings.HasSuffix(output.ImageURL, ".png"))
			} else {
				assert.Empty(t, output.ImageURL)
			}
		})
	}
}

func TestService_RunDir(t *testing.T) {
	ctx := context.Background()
	srv, fs := newService("mem://localhost/phpuml/dir/out", false, &fakeRenderer{})
	upload(t, fs, "mem://localhost/phpuml/dir/src/a.php", "<?php\n$a = 1;\n")
	upload(t, fs, "mem://localhost/phpuml/dir/src/nested/b.php", "<?php\necho $missing;\n")
	upload(t, fs, "mem://localhost/phpuml/dir/src/readme.txt", "not php")

	outputs, err := srv.RunDir(ctx, "mem://localhost/phpuml/dir/src")
	require.NoError(t, err)
	require.Len(t, outputs, 2)

	assert.Equal(t, "mem://localhost/phpuml/dir/src/a.php", outputs[0].SourceURL)
	assert.NoError(t, outputs[0].Err)
	assert.Equal(t, "mem://localhost/phpuml/dir/out/a.uml", outputs[0].DiagramURL)

	assert.Equal(t, "mem://localhost/phpuml/dir/src/nested/b.php", outputs[1].SourceURL)
	assert.Error(t, outputs[1].Err)

	upload(t, fs, "mem://localhost/phpuml/dir/src/nested/b.php", "<?php\n$b = 1;\n")
	outputs, err = srv.RunDir(ctx, "mem://localhost/phpuml/dir/src")
	require.NoError(t, err)
	require.Len(t, outputs, 2)
	require.NoError(t, outputs[1].Err)
	assert.Equal(t, "mem://localhost/phpuml/dir/out/nested/b.uml", outputs[1].DiagramURL)
}

func TestService_Analyze(t *testing.T) {
	ctx := context.Background()
	srv, fs := newService("mem://localhost/phpuml/analyze/out", false, &fakeRenderer{})
	sourceURL := "mem://localhost/phpuml/analyze/src/calls.php"
	upload(t, fs, sourceURL, "<?php\nfunction f($a, $b) { echo $a; }\nf(1);\n")

	result, diagram, err := srv.Analyze(ctx, sourceURL)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0].Message, "1 argument(s), expected 2")
	assert.Contains(t, string(diagram), ":Call function f(1);")
	assert.Contains(t, string(diagram), ":EXIT FUNCTION f;")

	exists, _ := fs.Exists(ctx, "mem://localhost/phpuml/analyze/out/calls.uml")
	assert.False(t, exists)
}
