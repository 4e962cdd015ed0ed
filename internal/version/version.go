package version

import "fmt"

// Version is the service current released version.
var Version = "0.3.1"

// DevVersion is the service current development version.
var DevVersion = "0.3.1"

func GetCurrentVersion(mode string) string {
	if mode == "dev" || mode == "demo" {
		return DevVersion
	}
	return Version
}

func GetMinorVersion(version string) string {
	versionList := []rune(version)
	dotCount := 0
	end := len(versionList)
	for i, c := range versionList {
		if c == '.' {
			dotCount++
			if dotCount == 2 {
				end = i
				break
			}
		}
	}
	return string(versionList[:end])
}

func String() string {
	return fmt.Sprintf("v%s", Version)
}
