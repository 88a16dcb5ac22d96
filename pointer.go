package jsoncomb

import (
	"strconv"
	"strings"
)

// AppendKey extends a JSON Pointer with an object member, escaping it per
// RFC 6901. Drivers use it to report enforcement failures.
func AppendKey(ptr, key string) string {
	if strings.ContainsAny(key, "~/") {
		key = strings.ReplaceAll(strings.ReplaceAll(key, "~", "~0"), "/", "~1")
	}
	return ptr + "/" + key
}

// AppendIndex extends a JSON Pointer with an array index.
func AppendIndex(ptr string, i int) string {
	return ptr + "/" + strconv.Itoa(i)
}
