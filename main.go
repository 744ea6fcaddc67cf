package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ardanlabs/imgui-converter/config"
	"github.com/ardanlabs/imgui-converter/generator"
	"github.com/ardanlabs/imgui-converter/logger"
	"github.com/ardanlabs/imgui-converter/parser"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	typedefsPath := flag.String("typedefs", "", "Path to typedefs_dict.json")
	structsPath := flag.String("structs", "", "Path to structs_and_enums.json")
	commandsPath := flag.String("commands", "", "Path to definitions.json")
	preamblePath := flag.String("preamble", "", "Path to the hand-written preamble copied to the top of the output")
	outputPath := flag.String("output", "", "Path of the generated Zig file")
	strict := flag.Bool("strict", false, "Fail when a default argument cannot be converted")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	logFormat := flag.String("log-format", "", "Log format: text or json")
	flag.Parse()

	cfg := config.FromEnv(os.LookupEnv)
	if *configPath != "" {
		fileCfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		cfg = cfg.Merge(fileCfg)
	}
	cfg = cfg.Merge(config.Config{
		TypedefsFile: *typedefsPath,
		StructsFile:  *structsPath,
		CommandsFile: *commandsPath,
		PreambleFile: *preamblePath,
		OutputPath:   *outputPath,
		Strict:       *strict,
		Log:          config.Log{Level: *logLevel, Format: *logFormat},
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logCfg := logger.DefaultConfig()
	logCfg.Level = level
	if cfg.Log.Format != "" {
		logCfg.Format = cfg.Log.Format
	}
	log, err := logger.Init(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger.LogPhase(log, "load")
	var docs parser.Documents
	for _, f := range []struct {
		path string
		dst  *[]byte
	}{
		{cfg.TypedefsFile, &docs.Typedefs},
		{cfg.StructsFile, &docs.StructsAndEnums},
		{cfg.CommandsFile, &docs.Commands},
	} {
		data, err := os.ReadFile(f.path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error reading metadata: %v\n", err)
			os.Exit(1)
		}
		*f.dst = data
	}

	preamble, err := os.ReadFile(cfg.PreambleFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading preamble: %v\n", err)
		os.Exit(1)
	}

	md, err := parser.Parse(docs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error parsing metadata: %v\n", err)
		os.Exit(1)
	}
	logger.LogPhaseComplete(log, "load",
		"typedefs", len(md.Typedefs), "enums", len(md.Enums),
		"structs", len(md.Structs), "functions", len(md.Functions))

	gen := generator.New(md, generator.Options{
		Preamble: string(preamble),
		Logger:   log,
		Strict:   cfg.Strict,
	})

	logger.LogPhase(log, "generate")
	out, err := gen.Generate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating code: %v\n", err)
		os.Exit(1)
	}

	rep := gen.Report()
	logger.LogPhaseComplete(log, "generate",
		"unused_rules", len(rep.UnusedRules),
		"unresolved_pointers", rep.UnresolvedPointers,
		"unknown_types", rep.UnknownTypes,
		"unconverted_defaults", len(rep.UnconvertedDefaults),
		"skipped", rep.Skipped)

	if err := os.MkdirAll(filepath.Dir(cfg.OutputPath), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "error creating output directory: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(cfg.OutputPath, []byte(out), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", cfg.OutputPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generated: %s\n", cfg.OutputPath)
}
