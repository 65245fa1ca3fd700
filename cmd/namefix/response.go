package main

import (
	"namefix/internal/history"
	"namefix/internal/tier"
)

// LogResponseCLI contains rename journal entries for CLI output
type LogResponseCLI struct {
	Count   int                    `json:"count"`
	Entries []history.HistoryEntry `json:"entries"`
}

// DoctorResponseCLI contains diagnostic results for CLI output
type DoctorResponseCLI struct {
	Healthy   bool                `json:"healthy"`
	Checks    []DoctorCheckCLI    `json:"checks"`
	Languages []tier.LanguageInfo `json:"languages"`
}

// DoctorCheckCLI represents a single diagnostic check
type DoctorCheckCLI struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "pass", "warn", "fail"
	Message string `json:"message"`
}
