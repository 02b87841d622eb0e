package util

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// SanitizeObjectName 基于原始文件名生成唯一且安全的对象名
// 仅保留白名单字符的扩展名，文件主体用 UUID 代替
func SanitizeObjectName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))

	var b strings.Builder
	for _, r := range ext {
		if r == '.' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	return uuid.NewString() + b.String()
}

// StrSliceToUInt64Slice 字符串切片转 uint64 切片
func StrSliceToUInt64Slice(strs []string) ([]uint64, error) {
	res := make([]uint64, 0, len(strs))
	for _, s := range strs {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}
