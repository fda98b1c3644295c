package utils

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// UniqueFile returns "<base>.<ext>" or, when that exists, the first free
// "<base>_<n>.<ext>" counting from 0
func UniqueFile(base, ext string) (string, error) {
	name := fmt.Sprintf("%s.%s", base, ext)
	for n := 0; ; n++ {
		_, err := os.Stat(name)
		if os.IsNotExist(err) {
			return name, nil
		}
		if err != nil {
			return "", errors.Wrapf(err, "[UniqueFile] failed to stat %s", name)
		}
		name = fmt.Sprintf("%s_%d.%s", base, n, ext)
	}
}

// EnsureDir creates dir and any missing parents
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "[EnsureDir] failed to create %s", dir)
	}
	return nil
}
