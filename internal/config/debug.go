package config

import "os"

func IsDebug() bool {
	return os.Getenv("LORE_DEBUG") == "1"
}
