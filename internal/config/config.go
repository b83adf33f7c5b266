package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the persisted application configuration. It is read at
// startup and written back on settings changes and after successful
// runs, so operators keep their file locations and pricing inputs
// between sessions.
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Inputs InputsConfig `toml:"inputs"`
	Tulero TuleroConfig `toml:"tulero"`
	Tyre24 Tyre24Config `toml:"tyre24"`
}

// ServerConfig controls the local control surface.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// InputsConfig holds the source files and the output folder.
type InputsConfig struct {
	ArticlesFile  string `toml:"articles_file"`
	WarehouseFile string `toml:"warehouse_file"`
	OEMFolder     string `toml:"oem_folder"`
	BrandsFile    string `toml:"brands_file"`
	TecdocFile    string `toml:"tecdoc_file"`
	OutputFolder  string `toml:"output_folder"`
}

// FTPConfig is the credential tuple for one marketplace destination.
type FTPConfig struct {
	Host     string `toml:"host"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Dir      string `toml:"dir"`
}

// TuleroConfig carries the Tulero pricing inputs and upload destination.
// Markup is the fractional multiplier (1.25 = +25%).
type TuleroConfig struct {
	Markup   float64   `toml:"markup"`
	Shipping float64   `toml:"shipping"`
	Upload   bool      `toml:"upload"`
	FTP      FTPConfig `toml:"ftp"`
}

// Tyre24Config prices the same stock twice, once per destination country.
type Tyre24Config struct {
	MarkupIT   float64   `toml:"markup_it"`
	ShippingIT float64   `toml:"shipping_it"`
	MarkupDE   float64   `toml:"markup_de"`
	ShippingDE float64   `toml:"shipping_de"`
	Upload     bool      `toml:"upload"`
	FTP        FTPConfig `toml:"ftp"`
}

// Operator-facing bounds. Markup is entered as a percentage (10-35) and
// stored as a multiplier; shipping is a flat amount in euro.
const (
	MinMarkup   = 1.10
	MaxMarkup   = 1.35
	MinShipping = 4.0
	MaxShipping = 20.0
)

// DefaultConfig mirrors the defaults the original tool shipped with.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20412,
			DevMode: false,
		},
		Inputs: InputsConfig{
			ArticlesFile:  filepath.Join("Data", "articles.xls"),
			WarehouseFile: filepath.Join("Data", "warehouse.xls"),
			OEMFolder:     filepath.Join("Data", "oems"),
			BrandsFile:    filepath.Join("Data", "brands.csv"),
			TecdocFile:    filepath.Join("Data", "tecdoc_brand_id.csv"),
			OutputFolder:  "Output",
		},
		Tulero: TuleroConfig{
			Markup:   1.25,
			Shipping: 7.5,
			Upload:   true,
			FTP:      FTPConfig{Dir: "/"},
		},
		Tyre24: Tyre24Config{
			MarkupIT:   1.25,
			ShippingIT: 7.5,
			MarkupDE:   1.25,
			ShippingDE: 10.5,
			Upload:     true,
			FTP:        FTPConfig{Dir: "/"},
		},
	}
}

// GetExeDir returns the directory of the running executable. Config and
// relative data paths are resolved against it, not the working directory.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

func configPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, "config.toml")
}

// LoadConfig reads config.toml from the executable directory. A missing
// file is not an error: defaults are returned.
func LoadConfig() (*AppConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.Clamp()
	return cfg, nil
}

// SaveConfig writes the configuration back to config.toml.
func SaveConfig(cfg *AppConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(configPath(), data, 0644)
}

// Clamp forces the pricing inputs back into their allowed ranges. The old
// UI validated these fields; with a hand-edited TOML file the bounds
// still have to hold before anything is priced.
func (c *AppConfig) Clamp() {
	c.Tulero.Markup = clampFloat(c.Tulero.Markup, MinMarkup, MaxMarkup)
	c.Tyre24.MarkupIT = clampFloat(c.Tyre24.MarkupIT, MinMarkup, MaxMarkup)
	c.Tyre24.MarkupDE = clampFloat(c.Tyre24.MarkupDE, MinMarkup, MaxMarkup)

	c.Tulero.Shipping = clampFloat(c.Tulero.Shipping, MinShipping, MaxShipping)
	c.Tyre24.ShippingIT = clampFloat(c.Tyre24.ShippingIT, MinShipping, MaxShipping)
	c.Tyre24.ShippingDE = clampFloat(c.Tyre24.ShippingDE, MinShipping, MaxShipping)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ResolvePath resolves a configured relative path against the executable
// directory, matching how the config file itself is located.
func ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	exeDir, err := GetExeDir()
	if err != nil {
		return p
	}
	return filepath.Join(exeDir, p)
}

// EnsureOutputFolder creates the output folder if needed and returns its
// absolute path.
func EnsureOutputFolder(cfg *AppConfig) (string, error) {
	dir := ResolvePath(cfg.Inputs.OutputFolder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
