package util

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// IgnoreList is the set of tables never synced. It is backed by a plain text
// file holding one lower-case table name per line; Add appends to the file.
type IgnoreList struct {
	path  string
	names map[string]struct{}
}

// LoadIgnoreList reads path; a missing file is an empty list.
func LoadIgnoreList(path string) (*IgnoreList, error) {
	self := &IgnoreList{path: path, names: make(map[string]struct{})}
	if path == "" {
		return self, nil
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return self, nil
	}
	if err != nil {
		return nil, fmt.Errorf("LoadIgnoreList(%s) -> %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if name == "" || strings.HasPrefix(name, "#") {
			continue
		}
		self.names[name] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("LoadIgnoreList(%s) -> %w", path, err)
	}
	return self, nil
}

func (self *IgnoreList) Contains(table string) bool {
	_, ok := self.names[strings.ToLower(strings.TrimSpace(table))]
	return ok
}

// Add records tables not already present and appends them to the file.
func (self *IgnoreList) Add(tables ...string) error {
	var buf strings.Builder
	for _, t := range tables {
		name := strings.ToLower(strings.TrimSpace(t))
		if name == "" || self.Contains(name) {
			continue
		}
		self.names[name] = struct{}{}
		buf.WriteString(name + "\n")
	}
	if buf.Len() == 0 || self.path == "" {
		return nil
	}
	return WriteFileTail(self.path, buf.String())
}

func (self *IgnoreList) Names() []string {
	list := make([]string, 0, len(self.names))
	for name := range self.names {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}
