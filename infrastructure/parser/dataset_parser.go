package parser

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/embodied-nav/vln-sdk/application/episode"
	"github.com/embodied-nav/vln-sdk/domain/entities"
	"github.com/embodied-nav/vln-sdk/domain/errors"
	"github.com/embodied-nav/vln-sdk/domain/ports"
)

// datasetParserConfig holds configuration for the JSONDatasetParser.
type datasetParserConfig struct {
	strict    bool   // Fail on the first invalid episode
	source    string // Name used in errors and logs
	task      string // Task whose episode schema is checked
	validator ports.EpisodeValidator
}

func defaultDatasetParserConfig() datasetParserConfig {
	return datasetParserConfig{
		strict: true,
		task:   entities.DefaultTaskType,
	}
}

// DatasetOption configures a JSONDatasetParser.
type DatasetOption func(*datasetParserConfig)

// WithStrict makes the parser fail on the first invalid episode (default) or,
// when disabled, skip and log invalid episodes.
func WithStrict(strict bool) DatasetOption {
	return func(c *datasetParserConfig) {
		c.strict = strict
	}
}

// WithSource names the dataset in errors and logs.
func WithSource(name string) DatasetOption {
	return func(c *datasetParserConfig) {
		c.source = name
	}
}

// WithSchemaCheck validates raw episode records against task's episode schema
// before decoding them.
func WithSchemaCheck(v ports.EpisodeValidator, task string) DatasetOption {
	return func(c *datasetParserConfig) {
		c.validator = v
		if task != "" {
			c.task = task
		}
	}
}

// datasetDocument is the on-disk layout of an episode file.
type datasetDocument struct {
	Episodes []json.RawMessage `json:"episodes"`
}

// JSONDatasetParser implements ports.DatasetParser for JSON episode files.
type JSONDatasetParser struct {
	config datasetParserConfig
}

var _ ports.DatasetParser = (*JSONDatasetParser)(nil)

// NewJSONDatasetParser creates a parser with the given options.
func NewJSONDatasetParser(opts ...DatasetOption) *JSONDatasetParser {
	cfg := defaultDatasetParserConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &JSONDatasetParser{config: cfg}
}

// Parse decodes a JSON document of the form {"episodes": [...]} and builds
// every episode through the validating builder. Gzip-compressed input is
// detected and decompressed.
func (p *JSONDatasetParser) Parse(data []byte) (*entities.Dataset, error) {
	data, err := maybeGunzip(data)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", p.config.source, err)
	}

	var doc datasetDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("dataset %s: failed to decode: %w", p.config.source, err)
	}
	if doc.Episodes == nil {
		return nil, fmt.Errorf("dataset %s: missing \"episodes\" list", p.config.source)
	}

	rejected, err := p.schemaCheck(doc.Episodes)
	if err != nil {
		return nil, err
	}

	ds := &entities.Dataset{Episodes: make([]*entities.VLNEpisode, 0, len(doc.Episodes))}
	seen := make(map[string]struct{}, len(doc.Episodes))
	skipped := 0

	for i, raw := range doc.Episodes {
		if _, bad := rejected[i]; bad {
			skipped++
			continue
		}

		ep, err := p.build(raw, seen)
		if err != nil {
			dsErr := &errors.DatasetError{Source: p.config.source, Index: i, EpisodeID: episodeID(raw), Err: err}
			if p.config.strict {
				return nil, dsErr
			}
			slog.Warn("skipping invalid episode", "error", dsErr)
			skipped++
			continue
		}
		seen[ep.EpisodeID] = struct{}{}
		ds.Episodes = append(ds.Episodes, ep)
	}

	slog.Info("dataset loaded",
		"source", p.config.source,
		"episodes", len(ds.Episodes),
		"skipped", skipped)
	return ds, nil
}

func (p *JSONDatasetParser) build(raw json.RawMessage, seen map[string]struct{}) (*entities.VLNEpisode, error) {
	var params episode.Params
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, err
	}
	ep, err := episode.New(params)
	if err != nil {
		return nil, err
	}
	if _, dup := seen[ep.EpisodeID]; dup {
		return nil, fmt.Errorf("duplicate episode_id %q", ep.EpisodeID)
	}
	return ep, nil
}

// schemaCheck returns the indices of records failing the schema. In strict mode
// the first failure is returned as an error instead.
func (p *JSONDatasetParser) schemaCheck(records []json.RawMessage) (map[int]struct{}, error) {
	if p.config.validator == nil {
		return nil, nil
	}

	raws := make([][]byte, len(records))
	for i, r := range records {
		raws[i] = r
	}
	result, err := p.config.validator.Validate(p.config.task, raws)
	if err != nil {
		return nil, err
	}
	if result.Valid {
		return nil, nil
	}

	rejected := make(map[int]struct{}, len(result.Errors))
	for _, ve := range result.Errors {
		schemaErr := &errors.SchemaError{
			Type: p.config.task,
			Err:  fmt.Errorf("%s: %s", ve.Field, ve.Message),
		}
		dsErr := &errors.DatasetError{
			Source:    p.config.source,
			Index:     ve.Index,
			EpisodeID: episodeID(records[ve.Index]),
			Err:       schemaErr,
		}
		if p.config.strict {
			return nil, dsErr
		}
		if _, done := rejected[ve.Index]; !done {
			slog.Warn("skipping episode failing schema", "error", dsErr)
		}
		rejected[ve.Index] = struct{}{}
	}
	return rejected, nil
}

// LoadDatasetFile reads and parses an episode file. The file name becomes the
// dataset source unless WithSource overrides it.
func LoadDatasetFile(path string, opts ...DatasetOption) (*entities.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	opts = append([]DatasetOption{WithSource(filepath.Base(path))}, opts...)
	return NewJSONDatasetParser(opts...).Parse(data)
}

var gzipMagic = []byte{0x1f, 0x8b}

func maybeGunzip(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, gzipMagic) {
		return data, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	return out, nil
}

// episodeID extracts the id of a raw record for error messages, best effort.
func episodeID(raw json.RawMessage) string {
	var head struct {
		EpisodeID json.RawMessage `json:"episode_id"`
	}
	if err := json.Unmarshal(raw, &head); err != nil || len(head.EpisodeID) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(head.EpisodeID, &s); err == nil {
		return s
	}
	return string(head.EpisodeID)
}
