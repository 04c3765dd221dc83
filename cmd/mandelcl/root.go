package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "mandelcl",
	Short: "Render the Mandelbrot set on an OpenCL GPU",
	Long: `mandelcl builds mandelbrot.cl for the first GPU of the first OpenCL
platform, renders a 1200x640 escape-time image and writes it to mandelbrot.ppm.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		opts := &slog.HandlerOptions{Level: parseLevel(logLevel)}
		handler := slog.NewJSONHandler(os.Stdout, opts)
		slog.SetDefault(slog.New(handler))
	},
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&backendName, "backend", "opencl", "Renderer backend: "+backendUsage())
}

func parseLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
