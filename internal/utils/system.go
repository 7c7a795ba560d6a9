package utils

import (
	"os"
	"os/user"
)

// GetUsername returns the current username.
func GetUsername() (string, error) {
	user, err := user.Current()
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

// GetHostname returns the system hostname.
func GetHostname() (string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return "", err
	}
	return hostname, nil
}

// IsElevated reports whether the process runs as root. dmidecode needs it
// to read the machine UUID on most systems.
func IsElevated() bool {
	return os.Geteuid() == 0
}
