package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/jonathan/studentjobs/internal/types"
	"gopkg.in/yaml.v3"
)

// DateLayout is the layout of datePosted and validThrough.
const DateLayout = "2006-01-02"

//go:embed data/jobs.yaml
var jobsYAML []byte

type dataset struct {
	Jobs []types.RawJob `yaml:"jobs"`
}

var loadEmbedded = sync.OnceValues(func() (*Catalog, error) {
	return Parse(jobsYAML, time.Now())
})

// Load returns the catalog built from the dataset compiled into the binary.
// The dataset is parsed on the first call only; later calls share the result.
func Load() (*Catalog, error) {
	return loadEmbedded()
}

// RawJobs decodes the embedded dataset without building it. Used by the lint command.
func RawJobs(now time.Time) ([]types.RawJob, error) {
	return decode(jobsYAML, now)
}

// Parse decodes a YAML dataset and builds a catalog from it. Records without a
// datePosted are stamped with now's date.
func Parse(data []byte, now time.Time) (*Catalog, error) {
	raw, err := decode(data, now)
	if err != nil {
		return nil, err
	}
	return Build(raw), nil
}

func decode(data []byte, now time.Time) ([]types.RawJob, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var ds dataset
	if err := dec.Decode(&ds); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, &ParseError{Message: "failed to decode job dataset", Cause: err}
	}

	today := now.Format(DateLayout)
	for i := range ds.Jobs {
		if ds.Jobs[i].DatePosted == "" {
			ds.Jobs[i].DatePosted = today
		}
	}
	return ds.Jobs, nil
}
