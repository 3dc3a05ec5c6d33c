package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fabic/libcsdbg/pkg/config"
	"github.com/fabic/libcsdbg/pkg/logflags"
	"github.com/fabic/libcsdbg/pkg/render"
	"github.com/fabic/libcsdbg/pkg/tracer"
	"github.com/fabic/libcsdbg/pkg/version"
)

var (
	logEnabled bool
	logFlags   string
)

func main() {
	rootCommand := &cobra.Command{
		Use:   "csdbgctl",
		Short: "Exercise the libcsdbg tracer inside this process and inspect its configuration.",
	}
	rootCommand.PersistentFlags().BoolVar(&logEnabled, "log", false, "enable diagnostic logging")
	rootCommand.PersistentFlags().StringVar(&logFlags, "log-subsystems", "", "comma-separated subsystems to log (hooks,namespace,render,lifecycle)")

	rootCommand.AddCommand(versionCommand())
	rootCommand.AddCommand(modulesCommand())
	rootCommand.AddCommand(traceCommand())
	rootCommand.AddCommand(dumpCommand())
	rootCommand.AddCommand(configCommand())

	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging() {
	if err := logflags.Setup(logEnabled, logFlags); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

func initTracer(cmd *cobra.Command, args []string) error {
	setupLogging()
	cfg := config.LoadConfig()
	return tracer.Init(cfg)
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the library version.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.LibraryVersion.String())
		},
	}
}

func modulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "modules",
		Short:   "Print how many modules and symbols this process's tracer has loaded.",
		PreRunE: initTracer,
		Run: func(cmd *cobra.Command, args []string) {
			ns := tracer.Instance().Namespace()
			fmt.Printf("%d module(s), %d symbol(s)\n", ns.ModuleCount(), ns.SymbolCount())
		},
	}
}

func traceCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "trace",
		Short:   "Render the current thread's shadow-stack trace.",
		PreRunE: initTracer,
		Run: func(cmd *cobra.Command, args []string) {
			ns := tracer.Instance().Namespace()
			if err := render.Trace(os.Stdout, ns, ns.CurrentThread()); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		},
	}
}

func dumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "dump",
		Short:   "Render every registered thread's trace.",
		PreRunE: initTracer,
		Run: func(cmd *cobra.Command, args []string) {
			ns := tracer.Instance().Namespace()
			if err := render.Dump(os.Stdout, ns); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		},
	}
}

func configCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "config",
		Short: "Inspect the persisted ~/.csdbg/config.yml.",
	}
	root.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the active configuration.",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.LoadConfig()
			fmt.Printf("cache-capacity: %d\ndefault-lib-filter: %q\ncolor: %v\n",
				cfg.CacheCapacity, cfg.DefaultLibFilter, cfg.Color)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the path to the configuration file.",
		Run: func(cmd *cobra.Command, args []string) {
			path, err := config.ConfigFilePath("config.yml")
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			fmt.Println(path)
		},
	})
	return root
}
