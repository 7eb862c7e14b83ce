package cmd

import (
	"log"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Rorical/flightai/internal/app"
	"github.com/Rorical/flightai/internal/config"
)

// chatOptions switch off side effects for a single run without touching the config file
type chatOptions struct {
	noImages      bool
	noSpeech      bool
	noTranslation bool
}

func (o *chatOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.noImages, "no-images", false, "Do not generate destination images")
	cmd.Flags().BoolVar(&o.noSpeech, "no-speech", false, "Do not speak assistant replies")
	cmd.Flags().BoolVar(&o.noTranslation, "no-translation", false, "Do not translate assistant replies")
}

func (o *chatOptions) apply(cfg *config.Config) {
	if o.noImages {
		cfg.Images.Enabled = false
	}
	if o.noSpeech {
		cfg.Speech.Enabled = false
	}
	if o.noTranslation {
		cfg.Translation.Enabled = false
	}
}

var rootOptions chatOptions

var rootCmd = &cobra.Command{
	Use:   "flightai",
	Short: "Customer support assistant for the FlightAI airline",
	Long: heredoc.Doc(`
		FlightAI is a customer support assistant for an airline.

		It answers questions about ticket prices and books flights, shows a picture
		of the destination, reads replies aloud and translates them into a second language.`),
	Run: func(cmd *cobra.Command, args []string) {
		runChat(&rootOptions, "")
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the terminal chat window",
	Run: func(cmd *cobra.Command, args []string) {
		runChat(&rootOptions, "")
	},
}

// runChat loads the config, optionally switches profile, and runs the terminal shell
func runChat(opts *chatOptions, profileName string) {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if profileName = config.ProfileName(profileName); profileName != "" {
		if _, exists := cfg.Profiles[profileName]; !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}
		cfg.ActiveProfile = profileName
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}
		if cfg, err = config.LoadConfig(); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	opts.apply(cfg)

	application, err := app.NewApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	defer application.Stop()

	if err := application.Start(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	rootOptions.addFlags(rootCmd)
	rootOptions.addFlags(chatCmd)

	// Add subcommands
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(profileCmd)
}
