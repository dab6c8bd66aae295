package config

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/squirrel-ui/squirrel/internal/errors"
	"github.com/squirrel-ui/squirrel/pkg/atome"
	"github.com/squirrel-ui/squirrel/pkg/component"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "squirrel.json"

	// DefaultPort is the default preview server port.
	DefaultPort = 7070

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultComponentsDir holds the built-in widgets.
	DefaultComponentsDir = "pkg/widgets"

	// DefaultSuffix marks builder files.
	DefaultSuffix = "_builder"

	// DefaultDeclarationVar is the variable rewritten by sync.
	DefaultDeclarationVar = "Available"
)

// Config represents squirrel.json.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	Factory    FactoryConfig    `json:"factory"`
	Components ComponentsConfig `json:"components"`
	Preview    PreviewConfig    `json:"preview"`

	// Templates is the path to a YAML template file, relative to the
	// project root.
	Templates string `json:"templates,omitempty"`

	Drag DragConfig `json:"drag"`
	Log  LogConfig  `json:"log"`

	// configPath is where the config was loaded from.
	configPath string
}

// FactoryConfig configures the element factory.
type FactoryConfig struct {
	// IDPrefix is used for generated ids ("atome" gives atome_1, ...).
	IDPrefix string `json:"idPrefix,omitempty"`

	// RootSelector locates the default parent.
	RootSelector string `json:"rootSelector,omitempty"`
}

// ComponentsConfig configures component discovery and the backing
// declaration rewritten by `squirrel sync`.
type ComponentsConfig struct {
	Dir        string   `json:"dir,omitempty"`
	Extensions []string `json:"extensions,omitempty"`
	Exclude    []string `json:"exclude,omitempty"`
	Suffix     string   `json:"suffix,omitempty"`

	DeclarationFile string `json:"declarationFile,omitempty"`
	DeclarationVar  string `json:"declarationVar,omitempty"`

	// S3, when a bucket is set, replaces Dir as the listing source.
	S3 S3Config `json:"s3,omitempty"`

	root string
}

// S3Config locates components in a bucket.
type S3Config struct {
	Bucket string `json:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty"`
	Region string `json:"region,omitempty"`

	// Endpoint overrides the service endpoint, e.g. for MinIO.
	Endpoint string `json:"endpoint,omitempty"`
}

// PreviewConfig configures the preview server.
type PreviewConfig struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`
}

// DragConfig holds drag defaults.
type DragConfig struct {
	Cursor string `json:"cursor,omitempty"`
}

// LogConfig configures the default logger.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `json:"level,omitempty"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty"`
}

// New returns a configuration with defaults.
func New() *Config {
	return &Config{
		Factory: FactoryConfig{
			IDPrefix:     atome.DefaultIDPrefix,
			RootSelector: atome.DefaultRootSelector,
		},
		Components: ComponentsConfig{
			Dir:             DefaultComponentsDir,
			Extensions:      []string{".go"},
			Exclude:         []string{"*_test.go", "*_gen.go", "doc.go"},
			Suffix:          DefaultSuffix,
			DeclarationFile: filepath.Join(DefaultComponentsDir, "available_gen.go"),
			DeclarationVar:  DefaultDeclarationVar,
		},
		Preview: PreviewConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Drag: DragConfig{Cursor: "grab"},
		Log:  LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads squirrel.json from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from path. Fields missing from the file
// keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeConfigNotFound).
				WithDetail("No squirrel.json found in " + filepath.Dir(path)).
				WithSuggestion("Create squirrel.json at the project root or run the command from inside the project")
		}
		return nil, errors.New(errors.CodeInvalidConfig).Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		se := errors.New(errors.CodeInvalidConfig).
			WithDetail("Failed to parse squirrel.json: " + err.Error()).
			WithSuggestion("Check that squirrel.json is valid JSON")
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &syntaxErr):
			se.AtOffset(path, data, syntaxErr.Offset)
		case errors.As(err, &typeErr):
			se.AtOffset(path, data, typeErr.Offset)
		}
		return nil, se
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New(errors.CodeInvalidConfig).Wrap(err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New(errors.CodeInvalidConfig).Wrap(err)
	}
	c.configPath = path
	c.applyDefaults()
	return nil
}

// Path returns the path the config was loaded from.
func (c *Config) Path() string { return c.configPath }

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

func (c *Config) applyDefaults() {
	d := New()
	if c.Factory.IDPrefix == "" {
		c.Factory.IDPrefix = d.Factory.IDPrefix
	}
	if c.Factory.RootSelector == "" {
		c.Factory.RootSelector = d.Factory.RootSelector
	}
	if c.Components.Dir == "" {
		c.Components.Dir = d.Components.Dir
	}
	if c.Components.DeclarationVar == "" {
		c.Components.DeclarationVar = d.Components.DeclarationVar
	}
	if c.Preview.Host == "" {
		c.Preview.Host = d.Preview.Host
	}
	if c.Drag.Cursor == "" {
		c.Drag.Cursor = d.Drag.Cursor
	}
	c.Components.root = c.Dir()
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Preview.Port < 0 || c.Preview.Port > 65535 {
		return errors.New(errors.CodeInvalidPort).
			WithDetail("Port must be between 0 and 65535, got " + strconv.Itoa(c.Preview.Port))
	}
	if strings.ContainsAny(c.Factory.IDPrefix, " \t\n#.") {
		return errors.New(errors.CodeInvalidConfig).
			WithDetail("factory.idPrefix " + strconv.Quote(c.Factory.IDPrefix) + " cannot be used in an id selector")
	}
	for _, ext := range c.Components.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return errors.New(errors.CodeInvalidConfig).
				WithDetail("components.extensions entries must start with a dot, got " + strconv.Quote(ext))
		}
	}
	for _, pattern := range c.Components.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return errors.New(errors.CodeInvalidConfig).
				WithDetail("components.exclude pattern " + strconv.Quote(pattern) + " is malformed").
				Wrap(err)
		}
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// PreviewAddress returns the preview server listen address.
func (c *Config) PreviewAddress() string {
	return c.Preview.Host + ":" + strconv.Itoa(c.Preview.Port)
}

// PreviewURL returns the preview server URL.
func (c *Config) PreviewURL() string {
	return "http://" + c.PreviewAddress()
}

// TemplatesPath returns the absolute templates path, or "" when unset.
func (c *Config) TemplatesPath() string {
	if c.Templates == "" {
		return ""
	}
	return c.resolve(c.Templates)
}

// FactoryOptions converts the factory section into factory options.
func (c *Config) FactoryOptions() []atome.Option {
	return []atome.Option{
		atome.WithIDPrefix(c.Factory.IDPrefix),
		atome.WithRootSelector(c.Factory.RootSelector),
	}
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) || c.Dir() == "" {
		return p
	}
	return filepath.Join(c.Dir(), p)
}

// Path returns the absolute components directory.
func (cc ComponentsConfig) Path() string {
	if filepath.IsAbs(cc.Dir) || cc.root == "" {
		return cc.Dir
	}
	return filepath.Join(cc.root, cc.Dir)
}

// DeclarationPath returns the absolute path of the backing declaration.
func (cc ComponentsConfig) DeclarationPath() string {
	if filepath.IsAbs(cc.DeclarationFile) || cc.root == "" {
		return cc.DeclarationFile
	}
	return filepath.Join(cc.root, cc.DeclarationFile)
}

// ScanOptions converts the section into scan options.
func (cc ComponentsConfig) ScanOptions() component.ScanOptions {
	return component.ScanOptions{
		Extensions: cc.Extensions,
		Exclude:    cc.Exclude,
		Suffix:     cc.Suffix,
	}
}

// Declaration returns the reconcile target description.
func (cc ComponentsConfig) Declaration(logger *slog.Logger) component.Declaration {
	return component.Declaration{Var: cc.DeclarationVar, Logger: logger}
}

// Source returns the listing source: S3 when a bucket is configured,
// the components directory otherwise.
func (cc ComponentsConfig) Source() component.Source {
	if cc.S3.Bucket == "" {
		return component.DirSource{Dir: cc.Path()}
	}
	return component.S3Source{
		Client: NewS3Client(cc.S3),
		Bucket: cc.S3.Bucket,
		Prefix: cc.S3.Prefix,
	}
}

// NewS3Client builds a client from the section and the standard
// AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN
// variables. Without keys requests are sent unsigned.
func NewS3Client(sc S3Config) *s3.Client {
	region := sc.Region
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if region == "" {
		region = "us-east-1"
	}
	var creds aws.CredentialsProvider = aws.AnonymousCredentials{}
	if key := os.Getenv("AWS_ACCESS_KEY_ID"); key != "" {
		creds = aws.NewCredentialsCache(aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     key,
				SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
				SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
				Source:          "environment",
			}, nil
		}))
	}
	return s3.New(s3.Options{
		Region:      region,
		Credentials: creds,
	}, func(o *s3.Options) {
		if sc.Endpoint != "" {
			o.BaseEndpoint = aws.String(sc.Endpoint)
			o.UsePathStyle = true
		}
	})
}

// SlogLevel parses the configured level. Empty means info.
func (lc LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if lc.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
		return 0, errors.New(errors.CodeInvalidConfig).
			WithDetail("log.level " + strconv.Quote(lc.Level) + " is not one of debug, info, warn or error")
	}
	return level, nil
}

// Exists reports whether a config file exists in dir.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up from startDir to the directory containing
// squirrel.json.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	for {
		if Exists(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New(errors.CodeConfigNotFound).
				WithDetail("No squirrel.json found in " + startDir + " or any parent directory").
				WithSuggestion("Create squirrel.json at the project root")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the working directory or
// the nearest parent holding squirrel.json.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}
	return Load(root)
}
