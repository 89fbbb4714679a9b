// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package interp

import (
	"fmt"
	"path/filepath"
	"strings"
)

// resolve finds the absolute, executable path for argv[0] per
// spec.md §4.4's dispatch order for external commands:
//
//  1. An absolute path is used as-is, requiring execute permission.
//  2. A cached resolution for this basename is reused.
//  3. PATH directories are searched left-to-right; the first hit is
//     cached against name and returned.
func (s *Session) resolve(name string) (string, error) {
	if strings.HasPrefix(name, "/") {
		if !isExecutable(name) {
			return "", fmt.Errorf("%s: command not found", name)
		}
		return name, nil
	}

	if cached, ok := s.pathCache[name]; ok {
		return cached, nil
	}

	for _, dir := range s.pathDirs {
		candidate := filepath.Join(dir, name)
		if isExecutable(candidate) {
			if abs, err := filepath.Abs(candidate); err == nil {
				candidate = abs
			}
			s.pathCache[name] = candidate
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%s: command not found", name)
}
