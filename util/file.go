package util

import (
	"fmt"
	"os"
	"path"
)

// takes a save path and a variable number of strings and writes them to file separated by new lines
func WriteToFile(savePath string, content ...string) error {
	if err := EnsureDir(path.Dir(savePath)); err != nil {
		return err
	}
	singleString := ""
	for _, c := range content {
		singleString = fmt.Sprintf("%s%s\n", singleString, c)
	}

	return os.WriteFile(savePath, []byte(singleString), 0644)
}

func AppendToFile(savePath string, content ...string) error {
	if err := EnsureDir(path.Dir(savePath)); err != nil {
		return err
	}
	f, err := os.OpenFile(savePath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0600)
	if err != nil {
		return err
	}

	defer f.Close()

	for _, s := range content {
		if _, err = f.WriteString(s + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// EnsureDir creates the directory if it does not exist yet
func EnsureDir(dirPath string) error {
	if _, err := os.Stat(dirPath); err != nil {
		return os.MkdirAll(dirPath, os.ModePerm)
	}
	return nil
}
