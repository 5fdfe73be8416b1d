package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// validate is shared; validator.Validate caches struct metadata and is safe
// for concurrent use.
var validate = validator.New()

func errorf(sentinel error, name string) error {
	return fmt.Errorf("%w: %q", sentinel, name)
}

// Load decodes and validates a catalog document.
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, errors.Wrap(err, "catalog: decode")
	}
	if err := validate.Struct(&c); err != nil {
		return nil, errors.Wrap(err, "catalog: validate")
	}
	for _, m := range c.Pipes {
		m.sortSizes()
	}

	return &c, nil
}

// LoadFile reads a catalog from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog: open %s", path)
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog: %s", path)
	}

	return c, nil
}

// Default returns a fresh copy of the built-in catalog. It panics if the
// embedded document is invalid, which only a broken build can cause.
func Default() *Catalog {
	c, err := Load(bytes.NewReader(defaultYAML))
	if err != nil {
		panic(err)
	}

	return c
}

// DefaultYAML returns the embedded catalog document.
func DefaultYAML() []byte { return append([]byte(nil), defaultYAML...) }

// Encode writes c as YAML.
func Encode(w io.Writer, c *Catalog) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return errors.Wrap(err, "catalog: encode")
	}

	return enc.Close()
}
