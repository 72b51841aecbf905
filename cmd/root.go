// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package cmd provides the command line interface for rmegen.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"rmegen/internal/app"
	"rmegen/internal/arch/armv7m"
	"rmegen/internal/generrors"
	"rmegen/internal/pipeline"
	"rmegen/internal/progress"
	"rmegen/internal/util"

	"github.com/spf13/cobra"
)

var gLogFile *os.File
var gVersion = "0.0.0" // overwritten by ldflags in Makefile

var examples = []string{
	fmt.Sprintf("  Generate a Keil project from a project description:    $ %s -i project.xml -o ./out -k ./rme -u ./rvm -f keil", app.Name),
	fmt.Sprintf("  Generate a Makefile project with debug logging:        $ %s -i project.xml -o ./out -k ./rme -u ./rvm -f makefile --debug", app.Name),
}

var rootCmd = &cobra.Command{
	Use:                app.Name,
	Short:              "Generates RME/RVM kernel configuration and IDE project files from a project description",
	Long:               fmt.Sprintf(`%s reads a project XML and a chip XML, lays out memory, synthesizes MPU page tables, assigns capability IDs, and emits linker scripts, boot capability code, and an IDE or Makefile project.`, app.Name),
	Example:            strings.Join(examples, "\n"),
	PersistentPreRunE:  initializeApplication,
	PersistentPostRunE: terminateApplication,
	RunE:               runGenerate,
	Version:            gVersion,
}

var (
	flagDebug     bool
	flagLogStdOut bool

	flagInput   string
	flagOutput  string
	flagRMERoot string
	flagRVMRoot string
	flagFormat  string
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, app.FlagDebugName, false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagLogStdOut, app.FlagLogStdOutName, false, "write logs to stdout instead of a log file")

	rootCmd.Flags().StringVarP(&flagInput, app.FlagInputName, app.FlagInputName, "", "path to the project XML file (required)")
	rootCmd.Flags().StringVarP(&flagOutput, app.FlagOutputName, app.FlagOutputName, "", "output directory; must exist and be empty (required)")
	rootCmd.Flags().StringVarP(&flagRMERoot, app.FlagRMERootName, app.FlagRMERootName, "", "RME kernel source root (required)")
	rootCmd.Flags().StringVarP(&flagRVMRoot, app.FlagRVMRootName, app.FlagRVMRootName, "", "RVM runtime source root (required)")
	rootCmd.Flags().StringVarP(&flagFormat, app.FlagFormatName, app.FlagFormatName, "", fmt.Sprintf("project format to emit: one of %v (required)", app.ValidFormats))
	for _, name := range []string{app.FlagInputName, app.FlagOutputName, app.FlagRMERootName, app.FlagRVMRootName, app.FlagFormatName} {
		_ = rootCmd.MarkFlagRequired(name)
	}
}

// Execute runs the root command. It is called once from main.main.
func Execute() {
	cobra.EnableCommandSorting = false
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initializeApplication(cmd *cobra.Command, args []string) error {
	timestamp := time.Now().Local().Format("2006-01-02_15-04-05")

	outputDir, err := util.AbsPath(flagOutput)
	if err != nil {
		return generrors.Wrap(err, generrors.CommandLine, flagOutput)
	}
	exists, err := util.DirectoryExists(outputDir)
	if err != nil {
		return generrors.Wrap(err, generrors.CommandLine, outputDir)
	}
	if !exists {
		return generrors.New(generrors.CommandLine, outputDir, "output directory must exist")
	}
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return generrors.Wrap(err, generrors.CommandLine, outputDir)
	}
	if len(entries) != 0 {
		return generrors.New(generrors.CommandLine, outputDir, "output directory must be empty")
	}

	var logOpts slog.HandlerOptions
	if flagDebug {
		logOpts.Level = slog.LevelDebug
		logOpts.AddSource = true
	} else {
		logOpts.Level = slog.LevelInfo
	}
	if flagLogStdOut {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &logOpts)))
	} else {
		gLogFile, err = os.OpenFile(app.Name+".log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644) // #nosec G302
		if err != nil {
			return generrors.Wrap(err, generrors.CommandLine, app.Name+".log")
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(gLogFile, &logOpts)))
	}
	slog.Info("starting up", slog.String("app", app.Name), slog.String("version", gVersion), slog.Int("pid", os.Getpid()))

	rmeRoot, err := util.AbsPath(flagRMERoot)
	if err != nil {
		return generrors.Wrap(err, generrors.CommandLine, flagRMERoot)
	}
	rvmRoot, err := util.AbsPath(flagRVMRoot)
	if err != nil {
		return generrors.Wrap(err, generrors.CommandLine, flagRVMRoot)
	}
	if !app.IsValidFormat(flagFormat) {
		return generrors.New(generrors.CommandLine, flagFormat, fmt.Sprintf("unsupported format, must be one of %v", app.ValidFormats))
	}

	cmd.SetContext(
		context.WithValue(
			context.Background(),
			app.Context{},
			app.Context{
				Timestamp: timestamp,
				OutputDir: outputDir,
				RMERoot:   rmeRoot,
				RVMRoot:   rvmRoot,
				Format:    flagFormat,
				Version:   gVersion,
				Debug:     flagDebug,
			},
		),
	)
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	appCtx := cmd.Context().Value(app.Context{}).(app.Context)

	inputPath, err := util.AbsPath(flagInput)
	if err != nil {
		return generrors.Wrap(err, generrors.CommandLine, flagInput)
	}

	sp := progress.NewStageSpinner()
	for _, stage := range pipeline.Stages {
		_ = sp.AddStage(stage)
	}
	sp.Start()

	result, err := pipeline.Run(pipeline.Options{
		ProjectXMLPath: inputPath,
		OutputDir:      appCtx.OutputDir,
		RMERoot:        appCtx.RMERoot,
		RVMRoot:        appCtx.RVMRoot,
		Format:         app.Format(appCtx.Format),
		Arch:           armv7m.New(),
		Version:        appCtx.Version,
		Timestamp:      appCtx.Timestamp,
	}, sp)
	sp.Finish()
	if err != nil {
		slog.Error("generation failed", slog.String("error", err.Error()))
		return err
	}

	fmt.Printf("Generated %s project for %q in %s\n", appCtx.Format, result.Project.Name, appCtx.OutputDir)
	fmt.Printf("Manifest written to %s\n", result.ManifestPath)
	return nil
}

func terminateApplication(cmd *cobra.Command, args []string) error {
	slog.Info("shutting down", slog.String("app", app.Name), slog.String("version", gVersion))
	if gLogFile != nil {
		if err := gLogFile.Close(); err != nil {
			return err
		}
	}
	return nil
}
