// Package regfile reads the YAML or JSON registry files that declare jobs and
// publishers.
package regfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type decoder struct {
	name string
	fn   func([]byte, any) error
}

var decoders = map[string]decoder{
	".yaml": {name: "yaml", fn: yaml.Unmarshal},
	".yml":  {name: "yaml", fn: yaml.Unmarshal},
	".json": {name: "json", fn: json.Unmarshal},
}

// Load reads path and decodes it into out. The extension picks the decoder;
// files without a known extension are tried as YAML and then JSON. what names
// the file in error messages. Open errors wrap the fs error so callers can
// test for fs.ErrNotExist.
func Load(path, what string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("%s file path is empty", what)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s file: %w", what, err)
	}
	return Decode(raw, filepath.Ext(path), what, out)
}

// Decode decodes data with the decoder registered for ext.
func Decode(data []byte, ext, what string, out any) error {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if d, ok := decoders[ext]; ok {
		if err := d.fn(data, out); err != nil {
			return fmt.Errorf("decode %s %s: %w", d.name, what, err)
		}
		return nil
	}

	for _, d := range []decoder{decoders[".yaml"], decoders[".json"]} {
		if err := d.fn(data, out); err == nil {
			return nil
		}
	}
	return errors.New(what + " file format not recognized (expected YAML or JSON)")
}
