package config

import "os"

// ConnectTargetRole controls who may receive connection requests. The default
// restricts targets to mentors; setting CONNECT_TARGET_ROLE=any opens
// requests between any two users.
func ConnectTargetRole() string {
	switch os.Getenv("CONNECT_TARGET_ROLE") {
	case "any":
		return ""
	case "":
		return "mentor"
	default:
		return os.Getenv("CONNECT_TARGET_ROLE")
	}
}
