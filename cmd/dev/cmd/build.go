package cmd

import (
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gophertribe/devtool/build"

	"github.com/mklimuk/hdc302x/config"
)

// target is a deployment of the hdc cli and the adapters it talks to there.
type target struct {
	OS       string
	Arch     string
	Adapters []string
}

var targets = map[string]target{
	"host":   {OS: runtime.GOOS, Arch: runtime.GOARCH, Adapters: []string{config.AdapterMCP2221, config.AdapterGeneric, config.AdapterSim}},
	"nanopi": {OS: "linux", Arch: "arm", Adapters: []string{config.AdapterNanoPi, config.AdapterGeneric, config.AdapterSim}},
	"rpi":    {OS: "linux", Arch: "arm64", Adapters: []string{config.AdapterGeneric, config.AdapterSim}},
}

func targetNames() []string {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// needsCgo reports whether one of the target adapters goes through USB HID.
func (t target) needsCgo() bool {
	return slices.Contains(t.Adapters, config.AdapterMCP2221)
}

func (t target) native() bool {
	return t.OS == runtime.GOOS && t.Arch == runtime.GOARCH
}

// buildOpts resolves the go build options for a named target.
func buildOpts(name, version string) (string, build.GoBuildOpts, error) {
	t, ok := targets[name]
	if !ok {
		return "", build.GoBuildOpts{}, fmt.Errorf("unknown target %q, expected one of %v", name, targetNames())
	}
	output := "dist/hdc"
	if name != "host" {
		output = fmt.Sprintf("dist/hdc-%s-%s", t.OS, t.Arch)
	}
	return output, build.GoBuildOpts{
		Version:       version,
		InjectVersion: true,
		ConfigPackage: "github.com/mklimuk/hdc302x/config",
		EnableCgo:     t.needsCgo(),
		Arch:          t.Arch,
		OS:            t.OS,
	}, nil
}

func BuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the hdc cli for a deployment target",
		RunE: func(cmd *cobra.Command, args []string) error {
			name := cmd.Flag("target").Value.String()
			version := cmd.Flag("version").Value.String()
			output, opts, err := buildOpts(name, version)
			if err != nil {
				return err
			}
			t := targets[name]
			slog.Info("building hdc", "target", name, "os", t.OS, "arch", t.Arch, "adapters", t.Adapters, "cgo", opts.EnableCgo)

			// cgo cross builds need the target toolchain from the build image
			if t.native() || !opts.EnableCgo {
				return build.GoBuild(output, "./cmd/hdc", opts)
			}
			noCache, err := cmd.Flags().GetBool("no-cache")
			if err != nil {
				return fmt.Errorf("could not get no-cache flag: %w", err)
			}
			return build.Docker(cmd.Context(), fmt.Sprintf("./dev-%s-%s", t.OS, t.Arch), []string{"build", "--version", version, "--target", name}, build.DockerBuildOpts{
				NoCache: noCache,
				Arch:    t.Arch,
				Image:   "gophertribe/gobuild:1.25-bookworm",
			})
		},
	}
	cmd.Flags().Bool("no-cache", false, "do not use cache when building the app")
	cmd.Flags().String("version", "latest", "version of the cli")
	cmd.Flags().String("target", "host", fmt.Sprintf("deployment target, one of %v", targetNames()))

	return cmd
}

// TargetsCmd lists the deployment targets and the adapters built into each.
func TargetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List build targets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range targetNames() {
				t := targets[name]
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s/%s cgo=%t adapters=%v\n", name, t.OS, t.Arch, t.needsCgo(), t.Adapters)
			}
		},
	}
}
