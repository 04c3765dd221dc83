package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/cwbudde/mandelcl/internal/mandel"
	"github.com/cwbudde/mandelcl/internal/mandel/renderer"
	"github.com/cwbudde/mandelcl/internal/pipeline"
	"github.com/spf13/cobra"
)

var backendName string

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the fractal to mandelbrot.ppm",
	Long: `Selects the GPU, builds mandelbrot.cl, dispatches draw_mandelbrot over a
1280x640 grid of 256x1 work-groups and writes the 1200x640 result as a P6 image.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func backendUsage() string {
	names := make([]string, 0, len(renderer.SupportedBackends()))
	for _, b := range renderer.SupportedBackends() {
		names = append(names, string(b))
	}
	return strings.Join(names, ", ")
}

func runRender(cmd *cobra.Command, args []string) error {
	run, err := pipeline.Execute(cmd.Context(), pipeline.Config{
		Backend:    backendName,
		KernelPath: mandel.DefaultKernelPath,
		OutputPath: mandel.DefaultOutputPath,
		View:       mandel.DefaultView(),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s, %s)\n", run.Output, run.Backend, run.Elapsed.Round(time.Millisecond))
	return nil
}
