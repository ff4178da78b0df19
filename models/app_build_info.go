package models

// AppBuildInfo holds build-time metadata injected via -ldflags and exposed
// by GET /api/version and the startup banner.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo substitutes "N/A" for empty values.
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: orNA(buildVersion),
		buildDate:    orNA(buildDate),
		buildCommit:  orNA(buildCommit),
	}
}

func (a AppBuildInfo) BuildVersion() string {
	return a.buildVersion
}

func (a AppBuildInfo) BuildDate() string {
	return a.buildDate
}

func (a AppBuildInfo) BuildCommit() string {
	return a.buildCommit
}

// VersionResponse converts the build info into its API representation.
func (a AppBuildInfo) VersionResponse() VersionResponse {
	return VersionResponse{
		Version: a.buildVersion,
		Commit:  a.buildCommit,
		Date:    a.buildDate,
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
