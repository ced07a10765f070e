package constants

const (
	LogPrefixFmt = "%-17s "
)
