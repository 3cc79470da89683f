package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/qawatake/md2jira/pkg/markdown"
	"github.com/spf13/viper"
)

// TokenEnv is the environment variable holding the Jira API token.
const TokenEnv = "JIRA_API_TOKEN"

// Config is the content of the configuration file.
type Config struct {
	Server   string `mapstructure:"server"`
	Login    string `mapstructure:"login"`
	AuthType string `mapstructure:"auth_type"`
	Render   struct {
		CodeColor     string `mapstructure:"code_color"`
		CodeTheme     string `mapstructure:"code_theme"`
		CollapseLines int    `mapstructure:"collapse_lines"`
	} `mapstructure:"render"`
	Preview struct {
		Style string `mapstructure:"style"`
	} `mapstructure:"preview"`

	// Token is read from TokenEnv, never from the file.
	Token string `mapstructure:"-"`
	// File is the path the configuration was read from, empty when no file was found.
	File string `mapstructure:"-"`
}

// SearchPaths returns the files tried, in order, when no path is given.
func SearchPaths() []string {
	return []string{
		".md2jira.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "md2jira", "config.yml"),
	}
}

// LoadConfig reads the configuration from path, or from the first existing
// file of SearchPaths when path is empty. A missing file is only an error
// when path was given explicitly. MD2JIRA_* environment variables override
// file values, e.g. MD2JIRA_RENDER_CODE_THEME.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix("md2jira")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	file := path
	if file == "" {
		for _, p := range SearchPaths() {
			if _, err := os.Stat(p); err == nil {
				file = p
				break
			}
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Token = os.Getenv(TokenEnv)
	cfg.File = file
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server", "")
	v.SetDefault("login", "")
	v.SetDefault("auth_type", "basic")
	v.SetDefault("render.code_color", markdown.DefaultCodeColor)
	v.SetDefault("render.code_theme", markdown.DefaultCodeTheme)
	v.SetDefault("render.collapse_lines", markdown.DefaultCollapseThreshold)
	v.SetDefault("preview.style", "auto")
}

// MarkdownOptions returns the conversion options set by the render section.
func (c *Config) MarkdownOptions() []markdown.Option {
	return []markdown.Option{
		markdown.WithCodeColor(c.Render.CodeColor),
		markdown.WithCodeTheme(c.Render.CodeTheme),
		markdown.WithCollapseThreshold(c.Render.CollapseLines),
	}
}

// ValidateJira reports what is missing to talk to the Jira API.
func (c *Config) ValidateJira() error {
	var errs []error
	if c.Server == "" {
		errs = append(errs, errors.New("server is not set"))
	}
	switch c.AuthType {
	case "basic":
		if c.Login == "" {
			errs = append(errs, errors.New("login is required for basic auth"))
		}
	case "bearer":
	default:
		errs = append(errs, fmt.Errorf("unsupported auth_type: %q", c.AuthType))
	}
	if c.Token == "" {
		errs = append(errs, fmt.Errorf("%s is not set", TokenEnv))
	}
	return errors.Join(errs...)
}
