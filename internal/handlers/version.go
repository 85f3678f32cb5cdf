package handlers

import (
	"encoding/json"
	"net/http"
)

// Version metadata, set at build time via -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// VersionResponse reports the build metadata
type VersionResponse struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
}

// VersionHandler handles the /version endpoint
func VersionHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(VersionResponse{
		Version:   Version,
		GitCommit: GitCommit,
	})
}
