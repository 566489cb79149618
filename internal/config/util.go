package config

import (
	"bufio"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// parse parses the environment variables and returns the configuration.
func parse[T any](envs ...string) (*T, error) {
	c, err := env.ParseAsWithOptions[T](env.Options{
		Environment: Environ(envs...),
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &c, nil
}

// Environ returns the process environment merged with the given
// "KEY=VALUE" pairs. Values from envs take precedence.
func Environ(envs ...string) map[string]string {
	return mergeMaps(toMap(os.Environ()), toMap(envs))
}

// toMap converts the environment variables to a map.
// for example "KEY=VALUE" to map["KEY"] = "VALUE".
func toMap(env []string) map[string]string {
	r := map[string]string{}
	for _, e := range env {
		p := strings.SplitN(e, "=", 2)
		if len(p) == 2 {
			r[p[0]] = p[1]
		}
	}
	return r
}

// mergeMaps merges multiple maps into one.
// If there are duplicate keys, the value from the last map will be used.
func mergeMaps(maps ...map[string]string) map[string]string {
	r := map[string]string{}
	for _, m := range maps {
		for k, v := range m {
			r[k] = v
		}
	}
	return r
}

// parseKeyValueLines reads "key=value" pairs, one per line.
// Blank lines and lines starting with # are skipped.
func parseKeyValueLines(content string) (map[string]string, error) {
	r := map[string]string{}
	sc := bufio.NewScanner(strings.NewReader(content))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p := strings.SplitN(line, "=", 2)
		if len(p) != 2 {
			return nil, errors.Errorf("invalid line format %q, expected 'key=value'", line)
		}
		r[strings.TrimSpace(p[0])] = strings.TrimSpace(p[1])
	}
	if err := sc.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return r, nil
}
