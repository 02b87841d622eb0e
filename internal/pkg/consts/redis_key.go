package consts

const (
	TokenBlacklistKey = "auth:token:blacklist:"
	FileDownloadKey   = "release:file:download:"
	FileDownloadDirty = "release:file:download:dirty"
)
