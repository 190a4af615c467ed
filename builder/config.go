package builder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// DataFile is one extra file bundled next to the packaged application.
type DataFile struct {
	Source string `yaml:"source" toml:"source"`
	Dest   string `yaml:"dest" toml:"dest"`
}

// Config describes one packaging run. Paths are relative to WorkDir.
type Config struct {
	WorkDir string `yaml:"work_dir" toml:"work_dir"`
	// Python is the host interpreter used to create the isolated environment.
	Python  string `yaml:"python" toml:"python"`
	VenvDir string `yaml:"venv_dir" toml:"venv_dir"`

	BuildDir string `yaml:"build_dir" toml:"build_dir"`
	DistDir  string `yaml:"dist_dir" toml:"dist_dir"`

	AppName      string `yaml:"app_name" toml:"app_name"`
	EntryPoint   string `yaml:"entry_point" toml:"entry_point"`
	Requirements string `yaml:"requirements" toml:"requirements"`

	// Packager is the pip requirement that provides PackagerModule.
	Packager       string `yaml:"packager" toml:"packager"`
	PackagerModule string `yaml:"packager_module" toml:"packager_module"`

	DataFiles     []DataFile `yaml:"data_files" toml:"data_files"`
	HiddenImports []string   `yaml:"hidden_imports" toml:"hidden_imports"`
	LogLevel      string     `yaml:"log_level" toml:"log_level"`
	OneFile       bool       `yaml:"onefile" toml:"onefile"`
	Windowed      bool       `yaml:"windowed" toml:"windowed"`
	Clean         bool       `yaml:"clean" toml:"clean"`

	// CacheDirs are removed together with VenvDir after packaging.
	CacheDirs []string `yaml:"cache_dirs" toml:"cache_dirs"`

	Pause  bool `yaml:"pause" toml:"pause"`
	Launch bool `yaml:"launch" toml:"launch"`
	// Strict turns provisioning and installation failures into hard errors.
	Strict bool `yaml:"strict" toml:"strict"`
}

func DefaultConfig() *Config {
	python := "python3"
	if runtime.GOOS == "windows" {
		python = "python"
	}
	return &Config{
		WorkDir:        ".",
		Python:         python,
		VenvDir:        "venv",
		BuildDir:       "build",
		DistDir:        "dist",
		AppName:        "ADBExplorer",
		EntryPoint:     "main.py",
		Requirements:   "requirements.txt",
		Packager:       "pyinstaller",
		PackagerModule: "PyInstaller",
		DataFiles: []DataFile{
			{Source: "logging_config.py", Dest: "."},
		},
		HiddenImports: []string{
			"PyQt6.QtCore",
			"PyQt6.QtGui",
			"PyQt6.QtWidgets",
			"logging.handlers",
		},
		LogLevel:  "ERROR",
		OneFile:   true,
		Windowed:  true,
		Clean:     true,
		CacheDirs: []string{"__pycache__"},
		Pause:     true,
		Launch:    true,
	}
}

// LoadConfig overlays the YAML or TOML file at path on DefaultConfig.
// An empty path yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c *Config) Clone() *Config {
	var out Config
	if err := copier.CopyWithOption(&out, c, copier.Option{DeepCopy: true}); err != nil {
		panic(err)
	}
	return &out
}

func (c *Config) Validate() error {
	var errs []error
	if c.AppName == "" {
		errs = append(errs, errors.New("app_name is required"))
	}
	if c.EntryPoint == "" {
		errs = append(errs, errors.New("entry_point is required"))
	}
	if c.DistDir == "" {
		errs = append(errs, errors.New("dist_dir is required"))
	}
	if c.VenvDir == "" {
		errs = append(errs, errors.New("venv_dir is required"))
	}
	if c.Python == "" {
		errs = append(errs, errors.New("python is required"))
	}
	for _, d := range c.DataFiles {
		if d.Source == "" || d.Dest == "" {
			errs = append(errs, fmt.Errorf("data file %+v needs source and dest", d))
		}
	}
	return errors.Join(errs...)
}

// SpecFile is the descriptor the packaging tool generates for AppName.
func (c *Config) SpecFile() string {
	return c.AppName + ".spec"
}

// ArtifactPath is where the packaged executable is expected for goos,
// relative to WorkDir.
func (c *Config) ArtifactPath(goos string) string {
	return filepath.Join(c.DistDir, c.AppName+exeExt(goos))
}

// VenvPython is the interpreter inside the isolated environment.
func (c *Config) VenvPython(goos string) string {
	if goos == "windows" {
		return filepath.Join(c.VenvDir, "Scripts", "python.exe")
	}
	return filepath.Join(c.VenvDir, "bin", "python")
}

func exeExt(goos string) string {
	if goos == "windows" {
		return ".exe"
	}
	return ""
}
