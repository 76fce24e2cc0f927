package version

import (
	"fmt"
	"time"
)

// Заполняются линкером при сборке:
//
//	-ldflags "-X .../internal/version.BuildDate=2024-03-16 -X .../internal/version.BuildCommit=abc1234"
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
)

// buildEpoch - точка отсчета порядкового номера сборки
var buildEpoch = time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

// VersionInfo - метаданные сборки для эндпоинта /version
type VersionInfo struct {
	BuildID   int    `json:"buildId"`
	BuildDate string `json:"buildDate,omitempty"`
	Commit    string `json:"commit,omitempty"`
	Error     string `json:"error,omitempty"`
}

// CalculateBuildID - номер сборки: полных дней от эпохи до BuildDate.
// Счет в часах, обе даты в UTC, так что переводы часов не мешают.
func CalculateBuildID() (int, error) {
	if BuildDate == "" {
		return 0, fmt.Errorf("BuildDate is empty")
	}

	t, err := time.ParseInLocation("2006-01-02", BuildDate, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid BuildDate %q: %w", BuildDate, err)
	}
	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("BuildDate %s is before epoch", BuildDate)
	}

	return int(t.Sub(buildEpoch).Hours() / 24), nil
}

func Info() VersionInfo {
	info := VersionInfo{BuildDate: BuildDate, Commit: BuildCommit}

	id, err := CalculateBuildID()
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.BuildID = id
	return info
}

// String - строка для стартового лога
func String() string {
	info := Info()
	if info.Error != "" {
		return fmt.Sprintf("Build unknown (%s)", info.Error)
	}
	if info.Commit == "" {
		return fmt.Sprintf("Build %d (%s)", info.BuildID, info.BuildDate)
	}
	return fmt.Sprintf("Build %d (%s) commit[%s]", info.BuildID, info.BuildDate, info.Commit)
}
