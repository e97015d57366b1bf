package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

// Name é usado no User-Agent e no --version.
const Name = "aws-cost-report"

const devVersion = "0.0.0-dev"

// Valores padrão (sobrescritos por ldflags ou por build info)
var Version = devVersion
var Commit = ""
var BuildTime = ""

func init() {
	if bi, ok := debug.ReadBuildInfo(); ok {
		applyBuildInfo(bi)
	}
}

// applyBuildInfo preenche Version/Commit/BuildTime a partir das configurações
// vcs.* embutidas pelo Go. Valores vindos de ldflags têm precedência.
func applyBuildInfo(bi *debug.BuildInfo) {
	if bi == nil || (Version != "" && Version != devVersion) {
		return
	}

	settings := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}

	if Commit == "" {
		if rev := settings["vcs.revision"]; len(rev) >= 7 {
			Commit = rev[:7]
		}
	}

	if BuildTime == "" {
		if ts, err := time.Parse(time.RFC3339, settings["vcs.time"]); err == nil {
			BuildTime = ts.UTC().Format("2006-01-02T15:04:05Z")
		}
	}

	// Lambda zips built with `go build` from a tag carry the module version.
	tag := settings["vcs.tag"]
	if tag == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		tag = bi.Main.Version
	}
	if tag != "" {
		Version = strings.TrimPrefix(tag, "v")
		if strings.EqualFold(settings["vcs.modified"], "true") {
			Version += "-dirty"
		}
	}
}

// FormatVersion retorna a versão formatada com commit e build time.
// Ex.: "1.2.3 (commit: abc1234, built at: 2026-10-19T06:00:00Z)"
func FormatVersion() string {
	ver := Version
	if ver == "" {
		ver = devVersion
	}

	if Commit == "" && BuildTime == "" {
		return fmt.Sprintf("%s (development)", ver)
	}

	commit := Commit
	if commit == "" {
		commit = "development"
	}
	if BuildTime != "" {
		return fmt.Sprintf("%s (commit: %s, built at: %s)", ver, commit, BuildTime)
	}
	return fmt.Sprintf("%s (commit: %s)", ver, commit)
}

// UserAgent identifica o binário nas chamadas HTTP de saída.
func UserAgent() string {
	ver := Version
	if ver == "" {
		ver = devVersion
	}
	return Name + "/" + ver
}
