package parse

import (
	"encoding/json"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Parse decodes a chart. Input may carry a UTF-8 or UTF-16 byte order mark,
// which the editor writes on some platforms.
func Parse(raw []byte) (Chart, error) {
	text, err := decodeText(raw)
	if err != nil {
		return Chart{}, err
	}
	var chart Chart
	if err := json.Unmarshal(text, &chart); err != nil {
		return Chart{}, errors.Wrap(err, "decode chart")
	}
	return chart, nil
}

func Marshal(chart Chart) ([]byte, error) {
	out, err := json.Marshal(chart)
	if err != nil {
		return nil, errors.Wrap(err, "encode chart")
	}
	return out, nil
}

func decodeText(raw []byte) ([]byte, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	text, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return nil, errors.Wrap(err, "decode text")
	}
	return text, nil
}
