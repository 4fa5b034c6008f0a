package commands

const (
	DEFAULT_WORKDIR = "/usr/local/var/sheetkit"
)
