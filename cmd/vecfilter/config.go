package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hupe1980/vecfilter/metadata"
	"github.com/spf13/pflag"
)

// Config is the command configuration. It can be loaded from a TOML file;
// flags given on the command line override file values.
type Config struct {
	Records         string            `toml:"records"`
	Where           string            `toml:"where"`
	WhereDocument   string            `toml:"where_document"`
	IDs             []string          `toml:"ids"`
	Limit           int               `toml:"limit"`
	Offset          int               `toml:"offset"`
	Parallelism     int               `toml:"parallelism"`
	Schema          map[string]string `toml:"schema"`
	JSONSchema      string            `toml:"json_schema"`
	CaseInsensitive bool              `toml:"case_insensitive"`
	Output          string            `toml:"output"`
	LogFormat       string            `toml:"log_format"`
	LogLevel        string            `toml:"log_level"`
	MinIO           MinIOConfig       `toml:"minio"`
}

// MinIOConfig enables minio:// URIs.
type MinIOConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Secure    bool   `toml:"secure"`
}

func defaultConfig() Config {
	return Config{
		Parallelism: 1,
		Output:      "ids",
		LogFormat:   "text",
		LogLevel:    "warn",
	}
}

func loadConfig(conf *Config, path string) error {
	if _, err := toml.DecodeFile(path, conf); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

// parseArgs builds the configuration from an optional --config file and
// the command line flags.
func parseArgs(args []string) (Config, error) {
	conf := defaultConfig()

	var (
		flagConf Config
		confPath string
	)

	fs := pflag.NewFlagSet("vecfilter", pflag.ContinueOnError)
	fs.StringVar(&confPath, "config", "", "TOML configuration file")
	fs.StringVarP(&flagConf.Records, "records", "r", "", "record snapshot: path, file://, minio:// or s3:// URI (.gz, .zst and .lz4 are decompressed)")
	fs.StringVarP(&flagConf.Where, "where", "w", "", `metadata filter as JSON, e.g. '{"category": "ml"}'`)
	fs.StringVarP(&flagConf.WhereDocument, "where-document", "d", "", `document filter as JSON, e.g. '{"$contains": "learning"}'`)
	fs.StringSliceVar(&flagConf.IDs, "ids", nil, "restrict the result to these ids")
	fs.IntVar(&flagConf.Limit, "limit", 0, "maximum number of results (0 = unlimited)")
	fs.IntVar(&flagConf.Offset, "offset", 0, "number of matching records to skip")
	fs.IntVar(&flagConf.Parallelism, "parallelism", 1, "number of goroutines evaluating filters")
	fs.StringToStringVar(&flagConf.Schema, "schema", nil, "metadata field types, e.g. year=int,category=string")
	fs.StringVar(&flagConf.JSONSchema, "json-schema", "", "JSON Schema file validating record metadata")
	fs.BoolVarP(&flagConf.CaseInsensitive, "case-insensitive", "i", false, "case-insensitive document matching")
	fs.StringVarP(&flagConf.Output, "output", "o", "ids", "output format: ids or jsonl")
	fs.StringVar(&flagConf.LogFormat, "log-format", "text", "log format: text or json")
	fs.StringVar(&flagConf.LogLevel, "log-level", "warn", "log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if confPath != "" {
		if err := loadConfig(&conf, confPath); err != nil {
			return Config{}, err
		}
	}

	override := map[string]func(){
		"records":          func() { conf.Records = flagConf.Records },
		"where":            func() { conf.Where = flagConf.Where },
		"where-document":   func() { conf.WhereDocument = flagConf.WhereDocument },
		"ids":              func() { conf.IDs = flagConf.IDs },
		"limit":            func() { conf.Limit = flagConf.Limit },
		"offset":           func() { conf.Offset = flagConf.Offset },
		"parallelism":      func() { conf.Parallelism = flagConf.Parallelism },
		"schema":           func() { conf.Schema = flagConf.Schema },
		"json-schema":      func() { conf.JSONSchema = flagConf.JSONSchema },
		"case-insensitive": func() { conf.CaseInsensitive = flagConf.CaseInsensitive },
		"output":           func() { conf.Output = flagConf.Output },
		"log-format":       func() { conf.LogFormat = flagConf.LogFormat },
		"log-level":        func() { conf.LogLevel = flagConf.LogLevel },
	}
	for name, apply := range override {
		if fs.Changed(name) {
			apply()
		}
	}

	if conf.Records == "" && fs.NArg() > 0 {
		conf.Records = fs.Arg(0)
	}

	return conf, conf.validate()
}

func (c Config) validate() error {
	if c.Records == "" {
		return fmt.Errorf("no records given: use --records or a positional argument")
	}
	switch c.Output {
	case "ids", "jsonl":
	default:
		return fmt.Errorf("unknown output format %q", c.Output)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

func (c Config) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return l, nil
}

// schema converts the name=type pairs into a metadata.Schema.
func (c Config) schema() (metadata.Schema, error) {
	if len(c.Schema) == 0 {
		return nil, nil
	}
	keys := make([]string, 0, len(c.Schema))
	for k := range c.Schema {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := make(metadata.Schema, len(c.Schema))
	for _, k := range keys {
		t, err := metadata.ParseFieldType(strings.TrimSpace(c.Schema[k]))
		if err != nil {
			return nil, fmt.Errorf("schema field %q: %w", k, err)
		}
		s[k] = t
	}
	return s, nil
}

func (c Config) jsonSchema() (*metadata.JSONSchema, error) {
	if c.JSONSchema == "" {
		return nil, nil
	}
	b, err := os.ReadFile(c.JSONSchema)
	if err != nil {
		return nil, err
	}
	return metadata.NewJSONSchema(b)
}
