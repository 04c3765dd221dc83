package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/mandelcl/internal/mandel/gpu"
	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List OpenCL platforms and devices",
	Long:  `Lists every OpenCL platform and device. The device marked with * is the one render uses.`,
	Args:  cobra.NoArgs,
	RunE:  runDevices,
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}

func runDevices(cmd *cobra.Command, args []string) error {
	platforms, err := gpu.EnumeratePlatforms()
	if err != nil {
		return fmt.Errorf("failed to enumerate OpenCL platforms: %w", err)
	}
	return printPlatforms(cmd.OutOrStdout(), platforms)
}

func printPlatforms(out io.Writer, platforms []gpu.PlatformInfo) error {
	if len(platforms) == 0 {
		fmt.Fprintln(out, "No OpenCL platforms found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, " \tPLATFORM\tDEVICE\tTYPE\tCOMPUTE UNITS\tMAX GROUP\tVERSION")
	fmt.Fprintln(w, " \t--------\t------\t----\t-------------\t---------\t-------")

	for _, p := range platforms {
		if len(p.Devices) == 0 {
			fmt.Fprintf(w, " \t%s\t(none)\t\t\t\t%s\n", p.Name, p.Version)
			continue
		}
		for _, d := range p.Devices {
			mark := " "
			if d.Selected {
				mark = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
				mark,
				p.Name,
				d.Name,
				d.Type,
				d.MaxComputeUnits,
				d.MaxWorkGroup,
				d.Version,
			)
		}
	}

	return w.Flush()
}
