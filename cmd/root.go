package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jinyoung/classdiag/cmd/watch"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "classdiag",
	Short: "Build and serve UML class diagrams from understanding-graph exports",
	Long: `Classdiag turns the property graph produced by the understanding backend
into laid-out UML class diagrams. It filters noise dependencies, restricts
the graph to the neighborhood of focal classes, and renders the result as
Mermaid, Graphviz DOT, or JSON.

Use 'classdiag --help' to see all available commands, or
'classdiag <command> --help' for detailed information about a command.`,
	Version: version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Register subcommands
	rootCmd.AddCommand(diagramCmd)
	rootCmd.AddCommand(watch.Cmd)

	// Initialize annotations for version template
	if rootCmd.Annotations == nil {
		rootCmd.Annotations = make(map[string]string)
	}
	rootCmd.Annotations["buildDate"] = buildDate
	rootCmd.Annotations["commit"] = commit

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)
}

// initConfig loads defaults from classdiag.yaml and CLASSDIAG_* environment
// variables. Flags still win when set explicitly.
func initConfig() {
	viper.SetConfigName("classdiag")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}

	viper.SetEnvPrefix("classdiag")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("depth", 2)
	viper.SetDefault("layout", "stress")
	viper.SetDefault("format", "mermaid")
	viper.SetDefault("port", 4900)

	// A missing config file is fine; defaults and env cover it.
	_ = viper.ReadInConfig()
}
