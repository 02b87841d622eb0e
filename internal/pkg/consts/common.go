package consts

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// DeletedContent 软删除评论后写入的占位内容
const DeletedContent = "[deleted]"

const (
	MimePrefixImage = "image"
	MimePrefixVideo = "video"
)
