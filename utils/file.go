package utils

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// 同目录下的唯一临时文件名（保留扩展名），用于先写后改名的落盘方式
func TmpSibling(path string) string {
	return filepath.Join(filepath.Dir(path), uuid.NewString()+filepath.Ext(path))
}

func GetFilenameWithoutExt(path string) (name string) {
	name = filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(path))
	return
}
