package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Logger interface {
	Infof(format string, args ...any)
}

func Mkdir(dirName string) error {
	if dirName == "" || dirName == "." {
		return nil
	}
	if _, err := os.Stat(dirName); os.IsNotExist(err) {
		err := os.MkdirAll(dirName, 0775)
		if err != nil {
			return fmt.Errorf("mkdir(%s) -> %w", dirName, err)
		}
	}
	return nil
}

// TimeCost logs the elapsed time when the returned func is called.
// usage: defer util.TimeCost(logger)("[orders] done")
func TimeCost(logger Logger) func(str string) {
	bts := time.Now()
	return func(str string) {
		logger.Infof("%s, cost %.2fs", str, time.Since(bts).Seconds())
	}
}

func InSlice[T comparable](target T, list []T) bool {
	for i := range list {
		if target == list[i] {
			return true
		}
	}
	return false
}

// EncloseStr quotes an identifier; a quote char inside the name is doubled.
// "[" encloses as [name].
func EncloseStr(str string, quote string) string {
	if quote == "[" {
		return "[" + strings.ReplaceAll(str, "]", "]]") + "]"
	}
	return quote + strings.ReplaceAll(str, quote, quote+quote) + quote
}

func EncloseStringArray(strlist []string, quote string) []string {
	var list = make([]string, len(strlist))
	for i, v := range strlist {
		list[i] = EncloseStr(v, quote)
	}
	return list
}

func EncloseAndJoin(strlist []string, quote string) string {
	return strings.Join(EncloseStringArray(strlist, quote), ", ")
}

func WriteFile(filename string, text string) error {
	if err := Mkdir(filepath.Dir(filename)); err != nil {
		return err
	}
	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0664)
	if err != nil {
		return fmt.Errorf("WriteFile(%s) -> %w", filename, err)
	}
	defer f.Close()
	_, err = f.WriteString(text)
	return err
}

func WriteFileTail(filename string, text string) error {
	if err := Mkdir(filepath.Dir(filename)); err != nil {
		return err
	}
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0664)
	if err != nil {
		return fmt.Errorf("WriteFileTail(%s) -> %w", filename, err)
	}
	defer f.Close()
	_, err = f.WriteString(text)
	return err
}
