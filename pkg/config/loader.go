// Copyright 2025 The fileshuttle Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🎯 Load reads the configuration at path. The format is chosen by
// extension: .json, .yaml/.yml or .hcl. A missing file yields the
// defaults; keys absent from the document keep their default values.
// Unknown keys are tolerated so that documents written by older or newer
// releases still load.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("no configuration file, using defaults")
			return Default(), nil
		}
		return nil, errors.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.NewDecoder(bytes.NewReader(data)).Decode(cfg); err != nil {
			return nil, errors.Errorf("parsing JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(cfg); err != nil {
			return nil, errors.Errorf("parsing YAML: %w", err)
		}
	case ".hcl":
		if err := decodeHCL(data, path, cfg); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Errorf("unsupported config file extension %q", ext)
	}

	logger.Debug().Str("path", path).Msg("configuration loaded")
	return cfg, nil
}

// decodeHCL decodes HCL data over the prepared defaults
func decodeHCL(data []byte, filename string, cfg *Config) error {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, cfg)
	if diags.HasErrors() {
		return errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return nil
}

// 💾 Save writes the configuration to path as indented JSON, the format
// the scheduler-registered batch runs read back.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return errors.Errorf("writing config file: %w", err)
	}

	return nil
}
