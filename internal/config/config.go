package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultModel       = "gpt-4o-mini"
	DefaultImageModel  = "dall-e-3"
	DefaultSpeechModel = "tts-1"
	DefaultVoice       = "onyx"
)

type Profile struct {
	APIKey      string `json:"api_key" mapstructure:"api_key"`
	BaseURL     string `json:"base_url,omitempty" mapstructure:"base_url"`
	Model       string `json:"model" mapstructure:"model"`
	ImageModel  string `json:"image_model,omitempty" mapstructure:"image_model"`
	SpeechModel string `json:"speech_model,omitempty" mapstructure:"speech_model"`
	Voice       string `json:"voice,omitempty" mapstructure:"voice"`
}

// TranslationConfig points at a local OpenAI-compatible model runtime
type TranslationConfig struct {
	Enabled  bool   `json:"enabled" mapstructure:"enabled"`
	BaseURL  string `json:"base_url" mapstructure:"base_url"`
	APIKey   string `json:"api_key,omitempty" mapstructure:"api_key"`
	Model    string `json:"model" mapstructure:"model"`
	Language string `json:"language" mapstructure:"language"`
}

type ImagesConfig struct {
	Enabled   bool   `json:"enabled" mapstructure:"enabled"`
	Size      string `json:"size" mapstructure:"size"`
	OutputDir string `json:"output_dir" mapstructure:"output_dir"`
}

type SpeechConfig struct {
	Enabled   bool   `json:"enabled" mapstructure:"enabled"`
	OutputDir string `json:"output_dir" mapstructure:"output_dir"`
	Player    string `json:"player,omitempty" mapstructure:"player"`
}

type BookingsConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

type ServerConfig struct {
	Addr string `json:"addr" mapstructure:"addr"`
}

type Config struct {
	Profiles      map[string]Profile `json:"profiles" mapstructure:"profiles"`
	ActiveProfile string             `json:"active_profile" mapstructure:"active_profile"`
	Translation   TranslationConfig  `json:"translation" mapstructure:"translation"`
	Images        ImagesConfig       `json:"images" mapstructure:"images"`
	Speech        SpeechConfig       `json:"speech" mapstructure:"speech"`
	Bookings      BookingsConfig     `json:"bookings" mapstructure:"bookings"`
	Server        ServerConfig       `json:"server" mapstructure:"server"`
	LogLevel      string             `json:"log_level" mapstructure:"log_level"`
	LogFile       string             `json:"log_file" mapstructure:"log_file"`

	path           string
	envAPIKey      string
	currentProfile *Profile
}

func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadConfigFrom(configPath)
}

// LoadConfigFrom loads the config file at configPath, creating it with defaults if missing
func LoadConfigFrom(configPath string) (*Config, error) {
	// .env values override the process environment
	_ = godotenv.Overload()

	// Ensure config directory exists
	if err := ensureConfigDir(configPath); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// Load existing config or create default
	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	config.path = configPath
	config.envAPIKey = os.Getenv("OPENAI_API_KEY")

	// Validate and set current profile
	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}

	return config, nil
}

func (c *Config) IsValid() bool {
	return c.GetAPIKey() != ""
}

// GetAPIKey returns the active profile's key, falling back to OPENAI_API_KEY
func (c *Config) GetAPIKey() string {
	if c.currentProfile != nil && c.currentProfile.APIKey != "" {
		return c.currentProfile.APIKey
	}
	return c.envAPIKey
}

func (c *Config) GetModel() string {
	if c.currentProfile == nil || c.currentProfile.Model == "" {
		return DefaultModel
	}
	return c.currentProfile.Model
}

func (c *Config) GetImageModel() string {
	if c.currentProfile == nil || c.currentProfile.ImageModel == "" {
		return DefaultImageModel
	}
	return c.currentProfile.ImageModel
}

func (c *Config) GetSpeechModel() string {
	if c.currentProfile == nil || c.currentProfile.SpeechModel == "" {
		return DefaultSpeechModel
	}
	return c.currentProfile.SpeechModel
}

func (c *Config) GetVoice() string {
	if c.currentProfile == nil || c.currentProfile.Voice == "" {
		return DefaultVoice
	}
	return c.currentProfile.Voice
}

func (c *Config) GetBaseURL() string {
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.BaseURL
}

// Dir is the directory holding the config file and default data paths
func (c *Config) Dir() string {
	return filepath.Dir(c.path)
}

// ProfileNames returns the configured profile names in sorted order
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func getConfigPath() (string, error) {
	var configDir string

	// Use FLIGHTAI_HOME if set, otherwise use user's home directory
	if home := os.Getenv("FLIGHTAI_HOME"); home != "" {
		configDir = home
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = homeDir
	}

	return filepath.Join(configDir, ".flightai", "config.json"), nil
}

func ensureConfigDir(configPath string) error {
	configDir := filepath.Dir(configPath)
	return os.MkdirAll(configDir, 0755)
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("active_profile", "default")
	v.SetDefault("translation.enabled", true)
	v.SetDefault("translation.base_url", "http://localhost:11434/v1")
	v.SetDefault("translation.api_key", "ollama")
	v.SetDefault("translation.model", "llama3.2")
	v.SetDefault("translation.language", "Spanish")
	v.SetDefault("images.enabled", true)
	v.SetDefault("images.size", "1024x1024")
	v.SetDefault("images.output_dir", filepath.Join(configDir, "images"))
	v.SetDefault("speech.enabled", true)
	v.SetDefault("speech.output_dir", filepath.Join(configDir, "audio"))
	v.SetDefault("speech.player", "")
	v.SetDefault("bookings.path", filepath.Join(configDir, "bookings.db"))
	v.SetDefault("server.addr", ":7860")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", filepath.Join(configDir, "flightai.log"))
}

func loadConfigFile(configPath string) (*Config, error) {
	// If config file doesn't exist, create default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	setDefaults(v, filepath.Dir(configPath))

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createDefaultConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v, filepath.Dir(configPath))

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	config.Profiles = map[string]Profile{
		"default": DefaultProfile(),
	}

	// Save default config to file
	if err := saveConfig(&config, configPath); err != nil {
		return nil, err
	}

	return &config, nil
}

// DefaultProfile is the profile written for new installs and after the last profile is deleted
func DefaultProfile() Profile {
	return Profile{
		Model:       DefaultModel,
		ImageModel:  DefaultImageModel,
		SpeechModel: DefaultSpeechModel,
		Voice:       DefaultVoice,
	}
}

func saveConfig(config *Config, configPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

func (c *Config) Save() error {
	configPath := c.path
	if configPath == "" {
		var err error
		if configPath, err = getConfigPath(); err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}

	c.normalizeProfiles()
	return saveConfig(c, configPath)
}

// ProfileName returns the canonical form of a profile name. Names are
// case-insensitive since viper lower-cases map keys on load.
func ProfileName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (c *Config) normalizeProfiles() {
	profiles := make(map[string]Profile, len(c.Profiles))
	for name, profile := range c.Profiles {
		profiles[ProfileName(name)] = profile
	}
	c.Profiles = profiles
	c.ActiveProfile = ProfileName(c.ActiveProfile)
}

func (c *Config) setCurrentProfile() error {
	if len(c.Profiles) == 0 {
		return fmt.Errorf("no profiles defined")
	}
	c.normalizeProfiles()

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// If active profile doesn't exist, fall back to the first profile by name
		c.ActiveProfile = c.ProfileNames()[0]
		profile = c.Profiles[c.ActiveProfile]
	}

	c.currentProfile = &profile
	return nil
}
