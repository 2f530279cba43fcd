package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/viant/afs"
	"github.com/viant/phpuml/analyzer/activity"
	"github.com/viant/phpuml/config"
	"github.com/viant/phpuml/logging"
	"github.com/viant/phpuml/service"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

func main() {
	app := &cli.App{
		Name:      "phpuml",
		Usage:     "builds a PlantUML activity diagram from a PHP source file",
		ArgsUsage: "<file.php|directory>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config URL"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output directory for .uml and .png files"},
			&cli.StringFlag{Name: "jar", Usage: "path to plantuml.jar"},
			&cli.StringFlag{Name: "java", Usage: "java executable"},
			&cli.BoolFlag{Name: "no-render", Usage: "skip image generation"},
			&cli.StringSliceFlag{Name: "builtin", Usage: "call name accepted without declaration (repeatable)"},
			&cli.BoolFlag{Name: "no-hoist", Usage: "register functions in source order instead of before the walk"},
			&cli.IntFlag{Name: "max-depth", Usage: "maximum nested call inline depth"},
			&cli.IntFlag{Name: "concurrency", Usage: "files analysed in parallel in directory mode"},
			&cli.StringFlag{Name: "log-level", Usage: "trace, debug, info, warn or error"},
			&cli.BoolFlag{Name: "dump", Usage: "print the activity tree as YAML"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "\nanalysis aborted: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.ShowAppHelp(c)
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err = logging.SetLevel(cfg.LogLevel); err != nil {
		return xerrors.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	srv := service.New(cfg, service.WithLogger(logging.RootLogger))
	location := c.Args().First()
	info, err := os.Stat(location)
	if err == nil && info.IsDir() {
		return runDir(c, srv, location)
	}
	output, err := srv.Run(c.Context, location)
	if err != nil {
		return err
	}
	return report(c, output)
}

func runDir(c *cli.Context, srv *service.Service, location string) error {
	outputs, err := srv.RunDir(c.Context, location)
	if err != nil {
		return err
	}
	failed := 0
	for _, output := range outputs {
		if output.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", output.SourceURL, output.Err)
			continue
		}
		if err = report(c, output); err != nil {
			return err
		}
	}
	if failed > 0 {
		return xerrors.Errorf("%d of %d file(s) failed", failed, len(outputs))
	}
	return nil
}

func report(c *cli.Context, output *service.Output) error {
	for _, warning := range output.Result.Warnings {
		fmt.Fprintf(os.Stderr, "[SEMANTIC WARNING] %s\n", warning)
	}
	if c.Bool("dump") {
		if err := dump(output.SourceURL, output.Result.Forest); err != nil {
			return err
		}
	}
	fmt.Printf("PlantUML code saved in: %s\n", output.DiagramURL)
	if output.ImageURL != "" {
		fmt.Printf("Diagram created: %s\n", output.ImageURL)
	}
	return nil
}

func dump(source string, forest activity.Forest) error {
	data, err := yaml.Marshal(forest)
	if err != nil {
		return xerrors.Errorf("failed to encode activities of %s: %w", source, err)
	}
	fmt.Printf("# %s\n%s", source, data)
	return nil
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if URL := c.String("config"); URL != "" {
		loaded, err := config.Load(c.Context, URL)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if ok, _ := afs.New().Exists(c.Context, defaultConfigFile); ok {
		loaded, err := config.Load(c.Context, defaultConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if c.IsSet("output") {
		cfg.OutputDir = c.String("output")
	}
	if c.IsSet("jar") {
		cfg.PlantUMLJar = c.String("jar")
	}
	if c.IsSet("java") {
		cfg.Java = c.String("java")
	}
	if c.Bool("no-render") {
		cfg.Render = false
	}
	if builtins := c.StringSlice("builtin"); len(builtins) > 0 {
		cfg.Builtins = append(cfg.Builtins, builtins...)
	}
	if c.Bool("no-hoist") {
		cfg.HoistFunctions = false
	}
	if c.IsSet("max-depth") {
		cfg.MaxCallDepth = c.Int("max-depth")
	}
	if c.IsSet("concurrency") {
		cfg.Concurrency = c.Int("concurrency")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	return cfg, cfg.Validate()
}

const defaultConfigFile = "phpuml.yaml"
