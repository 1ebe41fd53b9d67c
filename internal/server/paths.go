package server

import (
	"strconv"
	"strings"
)

// parseResourcePath splits "<prefix><id>[/<action>]" into id and action.
func parseResourcePath(prefix, path string) (int, string, bool) {
	if !strings.HasPrefix(path, prefix) {
		return 0, "", false
	}
	rest := strings.TrimPrefix(path, prefix)
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return 0, "", false
	}
	id, err := strconv.Atoi(parts[0])
	if err != nil || id <= 0 {
		return 0, "", false
	}
	if len(parts) == 1 {
		return id, "", true
	}
	if len(parts) == 2 {
		return id, parts[1], true
	}
	return 0, "", false
}

func parseWebsocketPath(path string) (int, bool) {
	const prefix = "/ws/rooms/"
	if !strings.HasPrefix(path, prefix) {
		return 0, false
	}
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if rest == "" || strings.Contains(rest, "/") {
		return 0, false
	}
	id, err := strconv.Atoi(rest)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseAdminPath splits "/api/admin/<resource>[/<id>]".
func parseAdminPath(path string) (string, int, bool, bool) {
	const prefix = "/api/admin/"
	if !strings.HasPrefix(path, prefix) {
		return "", 0, false, false
	}
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	parts := strings.Split(rest, "/")
	if len(parts) == 0 || parts[0] == "" {
		return "", 0, false, false
	}
	resource := parts[0]
	if len(parts) == 1 {
		return resource, 0, false, true
	}
	if len(parts) == 2 {
		id, err := strconv.Atoi(parts[1])
		if err != nil || id <= 0 {
			return "", 0, false, false
		}
		return resource, id, true, true
	}
	return "", 0, false, false
}
