package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hiddenclip/tubescope/internal/utils"
	"github.com/hiddenclip/tubescope/pkg/search"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

const (
	LOGO = `  _         _
 | |_ _   _| |__   ___  ___  ___ ___  _ __   ___
 | __| | | | '_ \ / _ \/ __|/ __/ _ \| '_ \ / _ \
 | |_| |_| | |_) |  __/\__ \ (_| (_) | |_) |  __/
  \__|\__,_|_.__/ \___||___/\___\___/| .__/ \___|
                                     |_|

`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tubescope",
	Short: "A search-term randomizer for surfacing raw, untitled footage.",
	Long: LOGO + `tubescope keeps a catalog of default-filename search patterns (IMG XXXX,
DSC XXXX, VID YYYYMMDD, ...), picks one at random, fills in its
placeholders and hands you a ready-made video search URL, optionally
bounded by an upload-date qualifier.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tubescope.yaml)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".tubescope")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.tubescope.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	viper.SetDefault("search.base_url", search.DefaultBaseURL)
	viper.SetDefault("search.sort_param", search.DefaultSortParam)
	viper.SetDefault("db.path", "")
	viper.SetDefault("catalog.path", "")
	viper.SetDefault("catalog.url", "https://raw.githubusercontent.com/hiddenclip/tubescope/main/catalog.json")

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}
