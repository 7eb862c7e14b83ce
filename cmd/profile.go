package cmd

import (
	"fmt"
	"log"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Rorical/flightai/internal/config"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage API profiles",
	Long:  `Manage API profiles for different providers, models and voices.`,
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		table := uitable.New()
		table.MaxColWidth = 48
		table.AddRow("", "NAME", "MODEL", "IMAGE MODEL", "VOICE", "BASE URL", "API KEY")
		for _, name := range cfg.ProfileNames() {
			profile := cfg.Profiles[name]
			marker := ""
			if name == cfg.ActiveProfile {
				marker = color.GreenString("*")
			}
			table.AddRow(marker, name, profile.Model, profile.ImageModel, profile.Voice, profile.BaseURL, keyStatus(profile.APIKey))
		}
		fmt.Println(table)
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show [profile-name]",
	Short: "Show profile details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		profileName := config.ProfileName(args[0])
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		table := uitable.New()
		table.AddRow("Profile:", color.CyanString(profileName))
		table.AddRow("Model:", profile.Model)
		table.AddRow("Image Model:", profile.ImageModel)
		table.AddRow("Speech Model:", profile.SpeechModel)
		table.AddRow("Voice:", profile.Voice)
		table.AddRow("Base URL:", profile.BaseURL)
		table.AddRow("API Key:", keyStatus(profile.APIKey))
		fmt.Println(table)
	},
}

var addProfileCmd = &cobra.Command{
	Use:   "add [profile-name]",
	Short: "Add a new profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else {
			prompt := promptui.Prompt{
				Label: "Profile name",
			}
			var err error
			profileName, err = prompt.Run()
			if err != nil {
				log.Fatalf("Prompt failed: %v", err)
			}
		}

		profileName = config.ProfileName(profileName)
		if profileName == "" {
			log.Fatalf("Profile name must not be empty")
		}
		if _, exists := cfg.Profiles[profileName]; exists {
			log.Fatalf("Profile '%s' already exists", profileName)
		}

		profile := config.DefaultProfile()
		if err := promptProfile(&profile); err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}

		cfg.Profiles[profileName] = profile
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		color.Green("Profile '%s' added successfully!", profileName)
	},
}

var editProfileCmd = &cobra.Command{
	Use:   "edit [profile-name]",
	Short: "Edit an existing profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		profileName := profileArg(args, cfg.ProfileNames(), "Select profile to edit")
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		if err := promptProfile(&profile); err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}

		cfg.Profiles[profileName] = profile
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		color.Green("Profile '%s' updated successfully!", profileName)
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete [profile-name]",
	Short: "Delete a profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		profileName := profileArg(args, cfg.ProfileNames(), "Select profile to delete")
		if _, exists := cfg.Profiles[profileName]; !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Delete profile '%s'", profileName),
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			fmt.Println("Deletion cancelled")
			return
		}

		delete(cfg.Profiles, profileName)

		if cfg.ActiveProfile == profileName {
			if names := cfg.ProfileNames(); len(names) > 0 {
				cfg.ActiveProfile = names[0]
			} else {
				// The last profile is gone, start over from a default one
				cfg.ActiveProfile = "default"
				cfg.Profiles["default"] = config.DefaultProfile()
			}
		}

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		color.Green("Profile '%s' deleted successfully!", profileName)
	},
}

var switchProfileCmd = &cobra.Command{
	Use:   "switch [profile-name]",
	Short: "Switch to a different profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		var others []string
		for _, name := range cfg.ProfileNames() {
			if name != cfg.ActiveProfile {
				others = append(others, name)
			}
		}
		if len(args) == 0 && len(others) == 0 {
			fmt.Println("No other profiles available to switch to")
			return
		}

		profileName := profileArg(args, others, "Select profile to switch to")
		if _, exists := cfg.Profiles[profileName]; !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		cfg.ActiveProfile = profileName
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		color.Green("Switched to profile '%s'", profileName)
	},
}

func mustLoadConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// profileArg returns the profile named on the command line, or lets the user pick one
func profileArg(args []string, names []string, label string) string {
	if len(args) > 0 {
		return config.ProfileName(args[0])
	}
	if len(names) == 0 {
		log.Fatalf("No profiles available")
	}

	prompt := promptui.Select{
		Label: label,
		Items: names,
	}
	_, name, err := prompt.Run()
	if err != nil {
		log.Fatalf("Selection failed: %v", err)
	}
	return name
}

// promptProfile asks for every profile field, defaulting to the current values
func promptProfile(profile *config.Profile) error {
	fields := []struct {
		label  string
		value  *string
		masked bool
	}{
		{"API Key", &profile.APIKey, true},
		{"Model", &profile.Model, false},
		{"Image Model", &profile.ImageModel, false},
		{"Speech Model", &profile.SpeechModel, false},
		{"Voice", &profile.Voice, false},
		{"Base URL (optional)", &profile.BaseURL, false},
	}

	for _, field := range fields {
		prompt := promptui.Prompt{
			Label:   field.label,
			Default: *field.value,
		}
		if field.masked {
			prompt.Mask = '*'
		}
		value, err := prompt.Run()
		if err != nil {
			return err
		}
		*field.value = value
	}
	return nil
}

func keyStatus(key string) string {
	if key == "" {
		return color.YellowString("not set")
	}
	return "set"
}

func init() {
	// Add subcommands to profile
	profileCmd.AddCommand(listProfilesCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(addProfileCmd)
	profileCmd.AddCommand(editProfileCmd)
	profileCmd.AddCommand(deleteProfileCmd)
	profileCmd.AddCommand(switchProfileCmd)
}
