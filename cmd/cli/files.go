package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/honeybbq/iosconfig/pkg/iosconfig"
)

// writeBundleFiles 写入附加文件，路径不能逃出 dir。
func writeBundleFiles(dir string, files []iosconfig.File) error {
	root := filepath.Clean(dir)
	for _, file := range files {
		if file.Path == "" {
			continue
		}
		rel := strings.TrimLeft(file.Path, "/"+string(filepath.Separator))
		if rel == "" {
			return fmt.Errorf("invalid additional file path %q", file.Path)
		}
		target := filepath.Join(root, filepath.Clean(rel))
		if !strings.HasPrefix(target, root+string(filepath.Separator)) {
			return fmt.Errorf("additional file escapes files-dir: %q", file.Path)
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("create directories for %q: %w", target, err)
		}
		mode := file.Mode
		if mode == 0 {
			mode = 0o644
		}
		if err := os.WriteFile(target, file.Content, mode); err != nil {
			return fmt.Errorf("write additional file %q: %w", target, err)
		}
	}
	return nil
}
