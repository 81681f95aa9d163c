package util

import (
	"os"
	"strconv"
	"strings"
)

func ParseMemSizeStrToBytes(size string) (uint32, error) {
	size = strings.ToUpper(size)
	switch true {
	case strings.HasSuffix(size, "KB"), strings.HasSuffix(size, "K"):
		sizeVal, err := strconv.ParseUint(strings.TrimRight(strings.TrimRight(size, "K"), "KB"), 10, 32)
		if err != nil {
			return 0, err
		}
		return uint32(sizeVal) * 1024, nil
	case strings.HasSuffix(size, "M"), strings.HasSuffix(size, "MB"):
		sizeVal, err := strconv.ParseUint(strings.TrimRight(strings.TrimRight(size, "M"), "MB"), 10, 32)
		if err != nil {
			return 0, err
		}
		return uint32(sizeVal) * 1024 * 1024, nil
	case strings.HasSuffix(size, "G"), strings.HasSuffix(size, "GB"):
		sizeVal, err := strconv.ParseUint(strings.TrimRight(strings.TrimRight(size, "G"), "GB"), 10, 32)
		if err != nil {
			return 0, err
		}
		return uint32(sizeVal) * 1024 * 1024 * 1024, nil
	case strings.HasSuffix(size, "B"):
		sizeVal, err := strconv.ParseUint(strings.TrimRight(size, "B"), 10, 32)
		if err != nil {
			return 0, err
		}
		return uint32(sizeVal), nil
	}
	sizeVal, err := strconv.ParseUint(size, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(sizeVal), nil
}

// MkdirIfNotExist creates dir (and parents) if it does not already exist.
func MkdirIfNotExist(dir string) error {
	if _, err := os.Stat(dir); err != nil {
		if !os.IsNotExist(err) {
			return err
		}

		if err = os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
	}
	return nil
}

// DirExistsAndNotEmpty reports whether dir exists and has at least one entry.
func DirExistsAndNotEmpty(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return len(entries) > 0, nil
}
