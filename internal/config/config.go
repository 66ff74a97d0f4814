// Package config holds the job configuration read by the multiout CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/multiout/internal/version"
	"github.com/rxtech-lab/multiout/pkg/errors"
	"github.com/rxtech-lab/multiout/pkg/task"
	"gopkg.in/yaml.v3"
)

// Format selects the writer factory.
type Format string

const (
	FormatText    Format = "text"
	FormatParquet Format = "parquet"
)

// AllFormats lists every supported Format.
var AllFormats = []any{FormatText, FormatParquet}

// Route selects how record keys map to destinations.
type Route string

const (
	// RouteNone sends every record to the base leaf.
	RouteNone Route = "none"
	// RouteKeyDir writes each key to <key>/<base leaf>.
	RouteKeyDir Route = "key_dir"
	// RouteKeyPrefix writes each key to <key>-<base leaf>.
	RouteKeyPrefix Route = "key_prefix"
)

// AllRoutes lists every supported Route.
var AllRoutes = []any{RouteNone, RouteKeyDir, RouteKeyPrefix}

// JobConfig describes one multiout run.
type JobConfig struct {
	OutputDir        string            `yaml:"output_dir" json:"output_dir" jsonschema:"title=Output Directory,description=Directory that receives committed destinations,required" validate:"required"`
	Format           Format            `yaml:"format" json:"format" jsonschema:"title=Format,description=Output file format" validate:"required,oneof=text parquet"`
	BaseName         string            `yaml:"base_name" json:"base_name" jsonschema:"title=Base Name,description=Prefix of the per-task unique file name" validate:"required,excludesall=/\\"`
	Route            Route             `yaml:"route" json:"route" jsonschema:"title=Route,description=How record keys select a destination" validate:"required,oneof=none key_dir key_prefix"`
	EmitKey          bool              `yaml:"emit_key" json:"emit_key" jsonschema:"title=Emit Key,description=Write the record key next to the value"`
	TrailingSegments int               `yaml:"trailing_segments" json:"trailing_segments" jsonschema:"title=Trailing Segments,description=Number of trailing input directories prepended to every destination,minimum=0" validate:"min=0"`
	Separator        string            `yaml:"separator" json:"separator" jsonschema:"title=Separator,description=Key/value separator of text output"`
	InputSeparator   string            `yaml:"input_separator" json:"input_separator" jsonschema:"title=Input Separator,description=Key/value separator of input lines" validate:"required"`
	Compress         bool              `yaml:"compress" json:"compress" jsonschema:"title=Compress,description=Gzip text output"`
	RequiredVersion  string            `yaml:"required_version" json:"required_version,omitempty" jsonschema:"title=Required Version,description=Semver constraint the multiout binary must satisfy (e.g. >= 1.2)"`
	Properties       map[string]string `yaml:"properties" json:"properties,omitempty" jsonschema:"title=Properties,description=Extra task configuration properties"`
}

// EmptyConfig returns a JobConfig with default values.
func EmptyConfig() JobConfig {
	return JobConfig{
		OutputDir:        "",
		Format:           FormatText,
		BaseName:         task.DefaultOutputBaseName,
		Route:            RouteKeyDir,
		EmitKey:          true,
		TrailingSegments: 0,
		Separator:        "\t",
		InputSeparator:   "\t",
		Compress:         false,
		RequiredVersion:  "",
		Properties:       map[string]string{},
	}
}

// LoadConfig reads and validates a YAML job file. Unset fields keep their
// EmptyConfig defaults.
func LoadConfig(path string) (JobConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return JobConfig{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	return ParseConfig(data)
}

// ParseConfig decodes and validates YAML job configuration.
func ParseConfig(data []byte) (JobConfig, error) {
	config := EmptyConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return JobConfig{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if err := config.Validate(); err != nil {
		return JobConfig{}, err
	}

	return config, nil
}

// Validate checks the struct tags of the configuration and its version constraint.
func (c *JobConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if err := version.CheckConstraint(version.GetVersion(), c.RequiredVersion); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "incompatible config", err)
	}

	return nil
}

// Configuration flattens the job into task configuration properties.
// Typed fields take precedence over Properties.
func (c *JobConfig) Configuration() task.MapConfiguration {
	conf := make(task.MapConfiguration, len(c.Properties)+4)
	for k, v := range c.Properties {
		conf[k] = v
	}

	conf[task.ConfOutputBaseName] = c.BaseName
	conf[task.ConfTrailingSegments] = strconv.Itoa(c.TrailingSegments)
	conf[task.ConfTextSeparator] = c.Separator
	conf[task.ConfCompressOutput] = strconv.FormatBool(c.Compress)

	return conf
}

// GenerateSchema generates a JSON schema for the JobConfig.
func (c *JobConfig) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			switch t {
			case reflect.TypeOf(Format("")):
				return &jsonschema.Schema{Type: "string", Enum: AllFormats}
			case reflect.TypeOf(Route("")):
				return &jsonschema.Schema{Type: "string", Enum: AllRoutes}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)
	if schema == nil {
		return nil, fmt.Errorf("failed to reflect job config schema")
	}

	schema.Title = "multiout-job-config"
	schema.Description = "Configuration schema for a multiout job"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the JobConfig.
func (c *JobConfig) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
