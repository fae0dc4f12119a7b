package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/debamax/apt-webindex/internal/config"
)

// NewRootCmd creates the root command. The render action sits on the
// root itself because the CGI invocation path runs the binary with no
// arguments.
func NewRootCmd() *cobra.Command {
	var configPath string
	var outputPath string

	rootCmd := &cobra.Command{
		Use:   "apt-webindex",
		Short: "Build an HTML overview of an APT repository",
		Long: `Apt-webindex reads the Packages indices of every distribution under
dists/ and renders a single HTML page listing, per package, the newest
version (Debian ordering), its per-architecture debs, older versions,
and a freshness color derived from the artifact's mtime.

It runs from the command line or as a CGI program; under CGI the
Content-Type header is emitted before the document and configuration
comes from apt-webindex.yaml or APT_WEBINDEX_* environment variables.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.Load(configPath)
			if err != nil {
				return err
			}

			// Flags override file and environment.
			applyFlagOverrides(cmd, conf)

			out := os.Stdout
			if outputPath != "" {
				out, err = os.Create(outputPath)
				if err != nil {
					return err
				}
				defer out.Close()
			}

			return run(conf, out, IsCGI())
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the page to a file instead of stdout")
	rootCmd.Flags().StringP("root", "r", "", "Repository root containing dists/ and pool/")
	rootCmd.Flags().String("component", "", "Archive component to index")
	rootCmd.Flags().String("fast-arch", "", "Architecture whose builds land first")
	rootCmd.Flags().String("title", "", "Page title")
	rootCmd.Flags().String("keyring", "", "Public keyring for InRelease verification")

	return rootCmd
}

func applyFlagOverrides(cmd *cobra.Command, conf *config.Config) {
	if cmd.Flags().Changed("root") {
		conf.Root, _ = cmd.Flags().GetString("root")
	}
	if cmd.Flags().Changed("component") {
		conf.Component, _ = cmd.Flags().GetString("component")
	}
	if cmd.Flags().Changed("fast-arch") {
		conf.FastArch, _ = cmd.Flags().GetString("fast-arch")
	}
	if cmd.Flags().Changed("title") {
		conf.Title, _ = cmd.Flags().GetString("title")
	}
	if cmd.Flags().Changed("keyring") {
		conf.Keyring, _ = cmd.Flags().GetString("keyring")
	}
}

// IsCGI reports whether we were invoked as a CGI program.
func IsCGI() bool {
	_, ok := os.LookupEnv("REQUEST_METHOD")
	return ok
}
