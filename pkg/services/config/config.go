package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/mcp-analytics/resort-dmr/pkg/models/domain"
)

// Resort is one property entry in a profile. Revenue is fetched by database
// and group number; every other source is keyed by the resort name. A group
// number of -1 means "all groups" for single-property databases.
type Resort struct {
	Name     string `mapstructure:"name"`
	Database string `mapstructure:"database"`
	GroupNo  int    `mapstructure:"group_no"`
}

// Profile is the full runtime configuration for a report run.
type Profile struct {
	DSN         string   `mapstructure:"dsn"`
	OutputDir   string   `mapstructure:"output_dir"`
	WebhookURLs []string `mapstructure:"webhook_urls"`
	Resorts     []Resort `mapstructure:"resorts"`
}

// LoadProfile reads a profile file, with DMR_-prefixed environment variables
// taking precedence over file values (DMR_DSN, DMR_OUTPUT_DIR, ...).
func LoadProfile(path string) (*Profile, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("DMR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("output_dir", "reports")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read profile %s: %w", path, err)
	}

	var profile Profile
	if err := v.Unmarshal(&profile); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if profile.DSN == "" {
		return nil, fmt.Errorf("profile %s: dsn is required", path)
	}
	if len(profile.Resorts) == 0 {
		profile.Resorts = DefaultResorts
	}
	return &profile, nil
}

var ErrUnknownResort = errors.New("unknown resort")

// Resort finds a resort entry by name, case-insensitively.
func (p *Profile) Resort(name string) (domain.Resort, error) {
	for _, r := range p.Resorts {
		if strings.EqualFold(r.Name, name) {
			return domain.Resort{Name: r.Name, Database: r.Database, GroupNo: r.GroupNo}, nil
		}
	}
	return domain.Resort{}, fmt.Errorf("%w: %q", ErrUnknownResort, name)
}

// ResortNames lists the configured resorts in declaration order.
func (p *Profile) ResortNames() []string {
	names := make([]string, 0, len(p.Resorts))
	for _, r := range p.Resorts {
		names = append(names, r.Name)
	}
	return names
}

// DefaultResorts mirrors the portfolio mapping used when a profile does not
// declare its own resort list.
var DefaultResorts = []Resort{
	{Database: "Purgatory", Name: "PURGATORY", GroupNo: 46},
	{Database: "Purgatory", Name: "HESPERUS", GroupNo: 54},
	{Database: "Purgatory", Name: "SNOWCAT", GroupNo: 59},
	{Database: "Purgatory", Name: "SPIDER MOUNTAIN", GroupNo: 67},
	{Database: "Purgatory", Name: "DMMA", GroupNo: 70},
	{Database: "Purgatory", Name: "WILLAMETTE", GroupNo: 71},
	{Database: "MCP", Name: "PAJARITO", GroupNo: 9},
	{Database: "MCP", Name: "SANDIA", GroupNo: 10},
	{Database: "MCP", Name: "WILLAMETTE", GroupNo: 12},
	{Database: "Snowbowl", Name: "Snowbowl", GroupNo: -1},
	{Database: "Lee Canyon", Name: "Lee Canyon", GroupNo: -1},
	{Database: "Sipapu", Name: "Sipapu", GroupNo: -1},
	{Database: "Nordic", Name: "Nordic", GroupNo: -1},
	{Database: "Brian", Name: "Brian", GroupNo: -1},
}
