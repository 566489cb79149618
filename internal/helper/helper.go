// Description: This package contains helper functions shared by the command and its tests.
package helper

import (
	"context"

	"github.com/PaesslerAG/jsonpath"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// ExtractJSONPath evaluates path against the json document raw and returns
// the json encoded result. An empty path returns raw untouched.
func ExtractJSONPath(raw []byte, path string) ([]byte, error) {
	if path == "" {
		return raw, nil
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "response body is not json")
	}

	eval, err := jsonpath.New(path)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid jsonpath %q", path)
	}
	v, err := eval(context.Background(), doc)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to evaluate jsonpath %q", path)
	}

	out, err := json.Marshal(v)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return out, nil
}
