package handler

import (
	"net/http"
	"runtime"
	"runtime/debug"
)

// VersionInfo is the body of GET /version
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Revision  string `json:"revision,omitempty"`
	BuiltAt   string `json:"built_at,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
}

// readVersionInfo fills the VCS fields from the embedded build settings
func readVersionInfo(version string, read func() (*debug.BuildInfo, bool)) VersionInfo {
	info := VersionInfo{Version: version, GoVersion: runtime.Version()}
	bi, ok := read()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.time":
			info.BuiltAt = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

func HandleVersion(version string) http.HandlerFunc {
	info := readVersionInfo(version, debug.ReadBuildInfo)
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, info)
	}
}
